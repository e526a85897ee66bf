package store

import (
	"context"

	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
)

// CreateAbility stores a. A zero ID is assigned by the database and written
// back to a.
func (s *Store) CreateAbility(ctx context.Context, a *pokedex.Ability) error {
	id, err := s.insertID(ctx, pokedex.LabelAbility, s.schema.Ability, a.ID,
		[]string{pokedex.ColumnName}, []any{a.Name})
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (s *Store) CreatePokemonType(ctx context.Context, t *pokedex.PokemonType) error {
	id, err := s.insertID(ctx, pokedex.LabelPokemonType, s.schema.PokemonType, t.ID,
		[]string{pokedex.ColumnName}, []any{t.Name})
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (s *Store) CreateEggGroup(ctx context.Context, g *pokedex.EggGroup) error {
	id, err := s.insertID(ctx, pokedex.LabelEggGroup, s.schema.EggGroup, g.ID,
		[]string{pokedex.ColumnName}, []any{g.Name})
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (s *Store) CreateGeneration(ctx context.Context, g *pokedex.Generation) error {
	id, err := s.insertID(ctx, pokedex.LabelGeneration, s.schema.Generation, g.ID,
		[]string{pokedex.ColumnName}, []any{g.Name})
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (s *Store) CreateRegion(ctx context.Context, r *pokedex.Region) error {
	id, err := s.insertID(ctx, pokedex.LabelRegion, s.schema.Region, r.ID,
		[]string{pokedex.ColumnName, pokedex.ColumnDescriptor}, []any{r.Name, r.Descriptor})
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// CreatePokemon stores a species under its national dex number.
func (s *Store) CreatePokemon(ctx context.Context, p *pokedex.Pokemon) error {
	var generation any
	if p.IntroducedGeneration != nil {
		generation = *p.IntroducedGeneration
	}
	return s.insert(ctx, pokedex.LabelPokemon, s.schema.Pokemon,
		pokemonColumns,
		[]any{
			p.NationalDex,
			p.Name,
			p.JapaneseName,
			p.JapaneseTransliteration,
			p.JapaneseRomanized,
			p.HasMega,
			p.Category,
			p.HatchTime,
			p.ExperienceYield,
			p.GenderCode,
			p.CatchRate,
			generation,
			p.BaseFriendship,
			p.URL,
		},
	)
}

func (s *Store) CreateForm(ctx context.Context, f *pokedex.Form) error {
	id, err := s.insertID(ctx, pokedex.LabelForm, s.schema.Form, f.ID,
		[]string{
			pokedex.ColumnName,
			pokedex.ColumnImageRelativeLink,
			pokedex.ColumnSpriteRelativeLink,
			pokedex.ColumnWeight,
			pokedex.ColumnHeight,
			pokedex.ColumnPokemonID,
		},
		[]any{f.Name, f.ImageRelativeLink, f.SpriteRelativeLink, f.Weight, f.Height, f.PokemonID},
	)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (s *Store) CreateMegaStonePicture(ctx context.Context, m *pokedex.MegaStonePicture) error {
	id, err := s.insertID(ctx, pokedex.LabelMegaStonePicture, s.schema.MegaStonePicture, m.ID,
		[]string{pokedex.ColumnName, pokedex.ColumnImageRelativeLink, pokedex.ColumnPokemonID},
		[]any{m.Name, m.ImageRelativeLink, m.PokemonID},
	)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

// AddRegionalNumber records the number a species has in a regional dex.
func (s *Store) AddRegionalNumber(ctx context.Context, d pokedex.PokemonDex) error {
	return s.insert(ctx, pokedex.LabelPokemonDex, s.schema.PokemonDex,
		[]string{pokedex.ColumnRegionID, pokedex.ColumnPokemonID, pokedex.ColumnRegionalDex},
		[]any{d.RegionID, d.PokemonID, d.RegionalDex},
	)
}

// AddEggGroup links a species to an egg group.
func (s *Store) AddEggGroup(ctx context.Context, nationalDex, eggGroupID int) error {
	return s.insert(ctx, pokedex.AssociationPokemonEggGroup, s.schema.PokemonEggGroup,
		[]string{pokedex.ColumnPokemonID, pokedex.ColumnEggGroupID},
		[]any{nationalDex, eggGroupID},
	)
}

// AddFormAbility assigns an ability to a form. The slot is validated before
// anything is written.
func (s *Store) AddFormAbility(ctx context.Context, fa pokedex.FormAbility) error {
	if err := fa.Slot.Validate(); err != nil {
		return &ValidationError{Name: pokedex.ColumnSlot, err: err}
	}
	return s.insert(ctx, pokedex.LabelFormAbility, s.schema.FormAbility,
		[]string{pokedex.ColumnAbilityID, pokedex.ColumnFormID, pokedex.ColumnSlot},
		[]any{fa.AbilityID, fa.FormID, string(fa.Slot)},
	)
}

// AddFormType assigns a type to a form.
func (s *Store) AddFormType(ctx context.Context, ft pokedex.FormType) error {
	if err := ft.Slot.Validate(); err != nil {
		return &ValidationError{Name: pokedex.ColumnSlot, err: err}
	}
	return s.insert(ctx, pokedex.LabelFormType, s.schema.FormType,
		[]string{pokedex.ColumnPokemonTypeID, pokedex.ColumnFormID, pokedex.ColumnSlot},
		[]any{ft.PokemonTypeID, ft.FormID, string(ft.Slot)},
	)
}
