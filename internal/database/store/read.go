package store

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
)

var pokemonColumns = []string{
	pokedex.ColumnNationalDex,
	pokedex.ColumnName,
	pokedex.ColumnJapaneseName,
	pokedex.ColumnJapaneseTransliteration,
	pokedex.ColumnJapaneseRomanized,
	pokedex.ColumnHasMega,
	pokedex.ColumnCategory,
	pokedex.ColumnHatchTime,
	pokedex.ColumnExperienceYield,
	pokedex.ColumnGenderCode,
	pokedex.ColumnCatchRate,
	pokedex.ColumnIntroducedGeneration,
	pokedex.ColumnBaseFriendship,
	pokedex.ColumnURL,
}

// AbilityAssignment is an ability as it appears on one form.
type AbilityAssignment struct {
	FormID  int                 `json:"form_id"`
	Ability pokedex.Ability     `json:"ability"`
	Slot    pokedex.AbilitySlot `json:"slot"`
}

// TypeAssignment is a type as it appears on one form.
type TypeAssignment struct {
	FormID int                 `json:"form_id"`
	Type   pokedex.PokemonType `json:"type"`
	Slot   pokedex.TypeSlot    `json:"slot"`
}

// Pokemon returns the species with the given national dex number.
func (s *Store) Pokemon(ctx context.Context, nationalDex int) (*pokedex.Pokemon, error) {
	b := s.builder()
	sel := b.Select(pokemonColumns...).
		From(b.Table(s.schema.Pokemon.Name)).
		Where(entsql.EQ(pokedex.ColumnNationalDex, nationalDex))

	var found *pokedex.Pokemon
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			p          pokedex.Pokemon
			generation sql.NullInt64
		)
		if err := rows.Scan(
			&p.NationalDex,
			&p.Name,
			&p.JapaneseName,
			&p.JapaneseTransliteration,
			&p.JapaneseRomanized,
			&p.HasMega,
			&p.Category,
			&p.HatchTime,
			&p.ExperienceYield,
			&p.GenderCode,
			&p.CatchRate,
			&generation,
			&p.BaseFriendship,
			&p.URL,
		); err != nil {
			return err
		}
		if generation.Valid {
			g := int(generation.Int64)
			p.IntroducedGeneration = &g
		}
		found = &p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: querying pokemon %d: %w", nationalDex, err)
	}
	if found == nil {
		return nil, &NotFoundError{label: pokedex.LabelPokemon, id: nationalDex}
	}
	return found, nil
}

// RegionalNumbers returns every regional dex entry of a species, ordered by
// region.
func (s *Store) RegionalNumbers(ctx context.Context, nationalDex int) ([]pokedex.PokemonDex, error) {
	b := s.builder()
	sel := b.Select(pokedex.ColumnRegionID, pokedex.ColumnPokemonID, pokedex.ColumnRegionalDex).
		From(b.Table(s.schema.PokemonDex.Name)).
		Where(entsql.EQ(pokedex.ColumnPokemonID, nationalDex)).
		OrderBy(pokedex.ColumnRegionID)

	var entries []pokedex.PokemonDex
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var d pokedex.PokemonDex
		if err := rows.Scan(&d.RegionID, &d.PokemonID, &d.RegionalDex); err != nil {
			return err
		}
		entries = append(entries, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: querying regional numbers of %d: %w", nationalDex, err)
	}
	return entries, nil
}

// EggGroups returns the egg groups of a species, ordered by id.
func (s *Store) EggGroups(ctx context.Context, nationalDex int) ([]pokedex.EggGroup, error) {
	b := s.builder()
	groups := b.Table(s.schema.EggGroup.Name)
	link := b.Table(s.schema.PokemonEggGroup.Name)
	// Join aliases the joined table, so columns are taken after it.
	sel := b.Select().From(groups).Join(link)
	sel.Select(groups.C(pokedex.ColumnID), groups.C(pokedex.ColumnName)).
		On(groups.C(pokedex.ColumnID), link.C(pokedex.ColumnEggGroupID)).
		Where(entsql.EQ(link.C(pokedex.ColumnPokemonID), nationalDex)).
		OrderBy(groups.C(pokedex.ColumnID))

	var result []pokedex.EggGroup
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var g pokedex.EggGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return err
		}
		result = append(result, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: querying egg groups of %d: %w", nationalDex, err)
	}
	return result, nil
}

// MegaStonePictures returns the mega stone pictures of a species.
func (s *Store) MegaStonePictures(ctx context.Context, nationalDex int) ([]pokedex.MegaStonePicture, error) {
	b := s.builder()
	sel := b.Select(pokedex.ColumnID, pokedex.ColumnName, pokedex.ColumnImageRelativeLink, pokedex.ColumnPokemonID).
		From(b.Table(s.schema.MegaStonePicture.Name)).
		Where(entsql.EQ(pokedex.ColumnPokemonID, nationalDex)).
		OrderBy(pokedex.ColumnID)

	var pictures []pokedex.MegaStonePicture
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var m pokedex.MegaStonePicture
		if err := rows.Scan(&m.ID, &m.Name, &m.ImageRelativeLink, &m.PokemonID); err != nil {
			return err
		}
		pictures = append(pictures, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: querying mega stone pictures of %d: %w", nationalDex, err)
	}
	return pictures, nil
}

// Forms returns the forms of a species in insertion order.
func (s *Store) Forms(ctx context.Context, nationalDex int) ([]pokedex.Form, error) {
	b := s.builder()
	sel := b.Select(
		pokedex.ColumnID,
		pokedex.ColumnName,
		pokedex.ColumnImageRelativeLink,
		pokedex.ColumnSpriteRelativeLink,
		pokedex.ColumnWeight,
		pokedex.ColumnHeight,
		pokedex.ColumnPokemonID,
	).
		From(b.Table(s.schema.Form.Name)).
		Where(entsql.EQ(pokedex.ColumnPokemonID, nationalDex)).
		OrderBy(pokedex.ColumnID)

	var forms []pokedex.Form
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var f pokedex.Form
		if err := rows.Scan(&f.ID, &f.Name, &f.ImageRelativeLink, &f.SpriteRelativeLink, &f.Weight, &f.Height, &f.PokemonID); err != nil {
			return err
		}
		forms = append(forms, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: querying forms of %d: %w", nationalDex, err)
	}
	return forms, nil
}

// FormAbilities returns the abilities of a form ordered First, Second,
// Hidden, Mega.
func (s *Store) FormAbilities(ctx context.Context, formID int) ([]AbilityAssignment, error) {
	b := s.builder()
	abilities := b.Table(s.schema.Ability.Name)
	link := b.Table(s.schema.FormAbility.Name)
	sel := b.Select().From(link).Join(abilities)
	sel.Select(link.C(pokedex.ColumnFormID), abilities.C(pokedex.ColumnID), abilities.C(pokedex.ColumnName), link.C(pokedex.ColumnSlot)).
		On(link.C(pokedex.ColumnAbilityID), abilities.C(pokedex.ColumnID)).
		Where(entsql.EQ(link.C(pokedex.ColumnFormID), formID))

	var result []AbilityAssignment
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var a AbilityAssignment
		if err := rows.Scan(&a.FormID, &a.Ability.ID, &a.Ability.Name, &a.Slot); err != nil {
			return err
		}
		result = append(result, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: querying abilities of form %d: %w", formID, err)
	}
	slices.SortStableFunc(result, func(a, b AbilityAssignment) int {
		return cmp.Or(cmp.Compare(a.Slot.Rank(), b.Slot.Rank()), cmp.Compare(a.Ability.ID, b.Ability.ID))
	})
	return result, nil
}

// FormTypes returns the types of a form ordered Primary, Secondary.
func (s *Store) FormTypes(ctx context.Context, formID int) ([]TypeAssignment, error) {
	b := s.builder()
	types := b.Table(s.schema.PokemonType.Name)
	link := b.Table(s.schema.FormType.Name)
	sel := b.Select().From(link).Join(types)
	sel.Select(link.C(pokedex.ColumnFormID), types.C(pokedex.ColumnID), types.C(pokedex.ColumnName), link.C(pokedex.ColumnSlot)).
		On(link.C(pokedex.ColumnPokemonTypeID), types.C(pokedex.ColumnID)).
		Where(entsql.EQ(link.C(pokedex.ColumnFormID), formID))

	result, err := s.scanTypes(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("store: querying types of form %d: %w", formID, err)
	}
	return result, nil
}

// Types returns the types of every form of a species, grouped by form and
// ordered Primary, Secondary within each form.
func (s *Store) Types(ctx context.Context, nationalDex int) ([]TypeAssignment, error) {
	b := s.builder()
	types := b.Table(s.schema.PokemonType.Name)
	link := b.Table(s.schema.FormType.Name)
	forms := b.Table(s.schema.Form.Name)
	sel := b.Select().From(link).Join(types)
	sel.On(link.C(pokedex.ColumnPokemonTypeID), types.C(pokedex.ColumnID)).
		Join(forms)
	sel.Select(link.C(pokedex.ColumnFormID), types.C(pokedex.ColumnID), types.C(pokedex.ColumnName), link.C(pokedex.ColumnSlot)).
		On(link.C(pokedex.ColumnFormID), forms.C(pokedex.ColumnID)).
		Where(entsql.EQ(forms.C(pokedex.ColumnPokemonID), nationalDex))

	result, err := s.scanTypes(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("store: querying types of %d: %w", nationalDex, err)
	}
	return result, nil
}

func (s *Store) scanTypes(ctx context.Context, sel *entsql.Selector) ([]TypeAssignment, error) {
	var result []TypeAssignment
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var t TypeAssignment
		if err := rows.Scan(&t.FormID, &t.Type.ID, &t.Type.Name, &t.Slot); err != nil {
			return err
		}
		result = append(result, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(result, func(a, b TypeAssignment) int {
		return cmp.Or(cmp.Compare(a.FormID, b.FormID), cmp.Compare(a.Slot.Rank(), b.Slot.Rank()))
	})
	return result, nil
}
