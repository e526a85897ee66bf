package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/pokemon-commons/internal/database"
	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"github.com/FlagBrew/pokemon-commons/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openSqlite(t *testing.T) *entsql.Driver {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokedex.db")
	drv, err := database.Open(context.Background(), &models.DatabaseConfig{
		DBType:           "sqlite",
		ConnectionString: fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path),
	})
	require.NoError(t, err)
	t.Cleanup(func() { drv.Close() })
	return drv
}

func newStore(t *testing.T, drv *entsql.Driver, prefix string) *Store {
	t.Helper()
	s, err := pokedex.New(pokedex.WithPrefix(prefix))
	require.NoError(t, err)
	require.NoError(t, database.Apply(context.Background(), drv, s))
	return New(drv, s)
}

type bulbasaur struct {
	grass, poison      pokedex.PokemonType
	overgrow, chloro   pokedex.Ability
	monster, grassEggs pokedex.EggGroup
	gen                pokedex.Generation
	kanto, johto       pokedex.Region
	form               pokedex.Form
}

// seedBulbasaur stores national dex #1 with one form and its lookups.
func seedBulbasaur(t *testing.T, ctx context.Context, s *Store) *bulbasaur {
	t.Helper()
	b := &bulbasaur{
		grass:     pokedex.PokemonType{Name: "Grass"},
		poison:    pokedex.PokemonType{Name: "Poison"},
		overgrow:  pokedex.Ability{Name: "Overgrow"},
		chloro:    pokedex.Ability{Name: "Chlorophyll"},
		monster:   pokedex.EggGroup{Name: "Monster"},
		grassEggs: pokedex.EggGroup{Name: "Grass"},
		gen:       pokedex.Generation{Name: "Generation I"},
		kanto:     pokedex.Region{Name: "Kanto", Descriptor: "RBY"},
		johto:     pokedex.Region{Name: "Johto", Descriptor: "GSC"},
	}
	require.NoError(t, s.CreatePokemonType(ctx, &b.grass))
	require.NoError(t, s.CreatePokemonType(ctx, &b.poison))
	require.NoError(t, s.CreateAbility(ctx, &b.overgrow))
	require.NoError(t, s.CreateAbility(ctx, &b.chloro))
	require.NoError(t, s.CreateEggGroup(ctx, &b.monster))
	require.NoError(t, s.CreateEggGroup(ctx, &b.grassEggs))
	require.NoError(t, s.CreateGeneration(ctx, &b.gen))
	require.NoError(t, s.CreateRegion(ctx, &b.kanto))
	require.NoError(t, s.CreateRegion(ctx, &b.johto))

	require.NoError(t, s.CreatePokemon(ctx, &pokedex.Pokemon{
		NationalDex:             1,
		Name:                    "Bulbasaur",
		JapaneseName:            "フシギダネ",
		JapaneseTransliteration: "Fushigidane",
		JapaneseRomanized:       "Fushigidane",
		Category:                "Seed",
		HatchTime:               5120,
		ExperienceYield:         64,
		GenderCode:              decimal.RequireFromString("87.5"),
		CatchRate:               45,
		IntroducedGeneration:    &b.gen.ID,
		BaseFriendship:          70,
		URL:                     "https://example.com/pokedex/bulbasaur",
	}))

	b.form = pokedex.Form{
		Name:               "Bulbasaur",
		ImageRelativeLink:  "images/001.png",
		SpriteRelativeLink: "sprites/001.png",
		Weight:             decimal.RequireFromString("6.9"),
		Height:             decimal.RequireFromString("0.7"),
		PokemonID:          1,
	}
	require.NoError(t, s.CreateForm(ctx, &b.form))
	require.NotZero(t, b.form.ID)

	// Secondary first, reads must still come back Primary first.
	require.NoError(t, s.AddFormType(ctx, pokedex.FormType{PokemonTypeID: b.poison.ID, FormID: b.form.ID, Slot: pokedex.TypeSlotSecondary}))
	require.NoError(t, s.AddFormType(ctx, pokedex.FormType{PokemonTypeID: b.grass.ID, FormID: b.form.ID, Slot: pokedex.TypeSlotPrimary}))
	require.NoError(t, s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: b.chloro.ID, FormID: b.form.ID, Slot: pokedex.AbilitySlotHidden}))
	require.NoError(t, s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: b.overgrow.ID, FormID: b.form.ID, Slot: pokedex.AbilitySlotFirst}))

	require.NoError(t, s.AddEggGroup(ctx, 1, b.grassEggs.ID))
	require.NoError(t, s.AddEggGroup(ctx, 1, b.monster.ID))
	require.NoError(t, s.AddRegionalNumber(ctx, pokedex.PokemonDex{RegionID: b.johto.ID, PokemonID: 1, RegionalDex: 226}))
	require.NoError(t, s.AddRegionalNumber(ctx, pokedex.PokemonDex{RegionID: b.kanto.ID, PokemonID: 1, RegionalDex: 1}))
	return b
}

func TestFormTypesOrderedBySlot(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, openSqlite(t), pokedex.DefaultPrefix)
	b := seedBulbasaur(t, ctx, s)

	types, err := s.FormTypes(ctx, b.form.ID)
	require.NoError(t, err)
	require.Equal(t, []TypeAssignment{
		{FormID: b.form.ID, Type: b.grass, Slot: pokedex.TypeSlotPrimary},
		{FormID: b.form.ID, Type: b.poison, Slot: pokedex.TypeSlotSecondary},
	}, types)

	all, err := s.Types(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, types, all)

	abilities, err := s.FormAbilities(ctx, b.form.ID)
	require.NoError(t, err)
	require.Len(t, abilities, 2)
	require.Equal(t, b.overgrow, abilities[0].Ability)
	require.Equal(t, pokedex.AbilitySlotFirst, abilities[0].Slot)
	require.Equal(t, b.chloro, abilities[1].Ability)
	require.Equal(t, pokedex.AbilitySlotHidden, abilities[1].Slot)
}

func TestGraph(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, openSqlite(t), pokedex.DefaultPrefix)
	b := seedBulbasaur(t, ctx, s)

	venusaur := pokedex.Pokemon{
		NationalDex:             3,
		Name:                    "Venusaur",
		JapaneseName:            "フシギバナ",
		JapaneseTransliteration: "Fushigibana",
		JapaneseRomanized:       "Fushigibana",
		HasMega:                 true,
		Category:                "Seed",
		HatchTime:               5140,
		ExperienceYield:         236,
		GenderCode:              decimal.RequireFromString("87.5"),
		CatchRate:               45,
		IntroducedGeneration:    &b.gen.ID,
		BaseFriendship:          70,
		URL:                     "https://example.com/pokedex/venusaur",
	}
	require.NoError(t, s.CreatePokemon(ctx, &venusaur))

	forms := []pokedex.Form{
		{
			Name:               "Venusaur",
			ImageRelativeLink:  "images/003.png",
			SpriteRelativeLink: "sprites/003.png",
			Weight:             decimal.RequireFromString("100"),
			Height:             decimal.RequireFromString("2"),
			PokemonID:          3,
		},
		{
			Name:               "Mega Venusaur",
			ImageRelativeLink:  "images/003-mega.png",
			SpriteRelativeLink: "sprites/003-mega.png",
			Weight:             decimal.RequireFromString("155.5"),
			Height:             decimal.RequireFromString("2.4"),
			PokemonID:          3,
		},
	}
	for i := range forms {
		require.NoError(t, s.CreateForm(ctx, &forms[i]))
	}
	thickFat := pokedex.Ability{Name: "Thick Fat"}
	require.NoError(t, s.CreateAbility(ctx, &thickFat))

	for _, f := range forms {
		require.NoError(t, s.AddFormType(ctx, pokedex.FormType{PokemonTypeID: b.grass.ID, FormID: f.ID, Slot: pokedex.TypeSlotPrimary}))
		require.NoError(t, s.AddFormType(ctx, pokedex.FormType{PokemonTypeID: b.poison.ID, FormID: f.ID, Slot: pokedex.TypeSlotSecondary}))
	}
	require.NoError(t, s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: b.chloro.ID, FormID: forms[0].ID, Slot: pokedex.AbilitySlotHidden}))
	require.NoError(t, s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: b.overgrow.ID, FormID: forms[0].ID, Slot: pokedex.AbilitySlotFirst}))
	require.NoError(t, s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: thickFat.ID, FormID: forms[1].ID, Slot: pokedex.AbilitySlotMega}))

	require.NoError(t, s.AddEggGroup(ctx, 3, b.monster.ID))
	require.NoError(t, s.AddEggGroup(ctx, 3, b.grassEggs.ID))
	require.NoError(t, s.AddRegionalNumber(ctx, pokedex.PokemonDex{RegionID: b.kanto.ID, PokemonID: 3, RegionalDex: 3}))
	require.NoError(t, s.AddRegionalNumber(ctx, pokedex.PokemonDex{RegionID: b.johto.ID, PokemonID: 3, RegionalDex: 228}))

	mega := pokedex.MegaStonePicture{Name: "Venusaurite", ImageRelativeLink: "stones/venusaurite.png", PokemonID: 3}
	require.NoError(t, s.CreateMegaStonePicture(ctx, &mega))

	g, err := s.Graph(ctx, 3)
	require.NoError(t, err)

	got := g.Pokemon
	require.True(t, venusaur.GenderCode.Equal(got.GenderCode), got.GenderCode.String())
	got.GenderCode = venusaur.GenderCode
	require.Equal(t, venusaur, got)

	require.Equal(t, []pokedex.PokemonDex{
		{RegionID: b.kanto.ID, PokemonID: 3, RegionalDex: 3},
		{RegionID: b.johto.ID, PokemonID: 3, RegionalDex: 228},
	}, g.RegionalNumbers)
	require.Equal(t, []pokedex.EggGroup{b.monster, b.grassEggs}, g.EggGroups)
	require.Equal(t, []pokedex.MegaStonePicture{mega}, g.MegaStonePictures)

	require.Len(t, g.Forms, len(forms))
	for i, want := range forms {
		f := g.Forms[i].Form
		require.True(t, want.Weight.Equal(f.Weight), f.Weight.String())
		require.True(t, want.Height.Equal(f.Height), f.Height.String())
		f.Weight, f.Height = want.Weight, want.Height
		require.Equal(t, want, f)

		require.Equal(t, []TypeAssignment{
			{FormID: want.ID, Type: b.grass, Slot: pokedex.TypeSlotPrimary},
			{FormID: want.ID, Type: b.poison, Slot: pokedex.TypeSlotSecondary},
		}, g.Forms[i].Types)
	}
	require.Equal(t, []AbilityAssignment{
		{FormID: forms[0].ID, Ability: b.overgrow, Slot: pokedex.AbilitySlotFirst},
		{FormID: forms[0].ID, Ability: b.chloro, Slot: pokedex.AbilitySlotHidden},
	}, g.Forms[0].Abilities)
	require.Equal(t, []AbilityAssignment{
		{FormID: forms[1].ID, Ability: thickFat, Slot: pokedex.AbilitySlotMega},
	}, g.Forms[1].Abilities)

	// Rows of other species stay out of the graph.
	types, err := s.Types(ctx, 3)
	require.NoError(t, err)
	require.Len(t, types, 4)
	for _, ta := range types {
		require.NotEqual(t, b.form.ID, ta.FormID)
	}
}

func TestPokemonWithoutGeneration(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, openSqlite(t), pokedex.DefaultPrefix)

	require.NoError(t, s.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 151, Name: "Mew", GenderCode: decimal.NewFromInt(-1)}))

	p, err := s.Pokemon(ctx, 151)
	require.NoError(t, err)
	require.Nil(t, p.IntroducedGeneration)
	require.True(t, decimal.NewFromInt(-1).Equal(p.GenderCode))

	g, err := s.Graph(ctx, 151)
	require.NoError(t, err)
	require.Empty(t, g.Forms)
	require.Empty(t, g.EggGroups)
}

func TestNotFound(t *testing.T) {
	s := newStore(t, openSqlite(t), pokedex.DefaultPrefix)

	_, err := s.Pokemon(context.Background(), 25)
	require.True(t, IsNotFound(err))

	_, err = s.Graph(context.Background(), 25)
	require.True(t, IsNotFound(err))
}

func TestConstraints(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, openSqlite(t), pokedex.DefaultPrefix)
	b := seedBulbasaur(t, ctx, s)

	t.Run("duplicate species", func(t *testing.T) {
		err := s.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 1, Name: "Bulbasaur"})
		require.True(t, IsConstraintError(err))
		require.Equal(t, ConstraintUnique, ConstraintKindOf(err))
	})

	t.Run("duplicate form type", func(t *testing.T) {
		err := s.AddFormType(ctx, pokedex.FormType{PokemonTypeID: b.grass.ID, FormID: b.form.ID, Slot: pokedex.TypeSlotSecondary})
		require.Equal(t, ConstraintUnique, ConstraintKindOf(err))
	})

	t.Run("duplicate egg group", func(t *testing.T) {
		err := s.AddEggGroup(ctx, 1, b.monster.ID)
		require.Equal(t, ConstraintUnique, ConstraintKindOf(err))
	})

	t.Run("duplicate regional number", func(t *testing.T) {
		err := s.AddRegionalNumber(ctx, pokedex.PokemonDex{RegionID: b.kanto.ID, PokemonID: 1, RegionalDex: 2})
		require.Equal(t, ConstraintUnique, ConstraintKindOf(err))
	})

	t.Run("missing species", func(t *testing.T) {
		err := s.CreateForm(ctx, &pokedex.Form{Name: "Ghost", PokemonID: 9999})
		require.Equal(t, ConstraintForeignKey, ConstraintKindOf(err))

		err = s.AddEggGroup(ctx, 9999, b.monster.ID)
		require.Equal(t, ConstraintForeignKey, ConstraintKindOf(err))
	})

	t.Run("missing ability", func(t *testing.T) {
		err := s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: 9999, FormID: b.form.ID, Slot: pokedex.AbilitySlotSecond})
		require.Equal(t, ConstraintForeignKey, ConstraintKindOf(err))
	})

	t.Run("invalid slot", func(t *testing.T) {
		err := s.AddFormType(ctx, pokedex.FormType{PokemonTypeID: b.grass.ID, FormID: b.form.ID, Slot: "T"})
		require.True(t, IsValidationError(err))
		require.False(t, IsConstraintError(err))

		err = s.AddFormAbility(ctx, pokedex.FormAbility{AbilityID: b.chloro.ID, FormID: b.form.ID, Slot: "Hidden"})
		require.True(t, IsValidationError(err))
	})

	t.Run("slot check", func(t *testing.T) {
		err := s.insert(ctx, pokedex.LabelFormAbility, s.schema.FormAbility,
			[]string{pokedex.ColumnAbilityID, pokedex.ColumnFormID, pokedex.ColumnSlot},
			[]any{b.chloro.ID, b.form.ID, "X"},
		)
		require.Equal(t, ConstraintCheck, ConstraintKindOf(err))
	})

	t.Run("not null", func(t *testing.T) {
		err := s.insert(ctx, pokedex.LabelMegaStonePicture, s.schema.MegaStonePicture,
			[]string{pokedex.ColumnName, pokedex.ColumnImageRelativeLink},
			[]any{"Venusaurite", "stones/venusaurite.png"},
		)
		require.Equal(t, ConstraintNotNull, ConstraintKindOf(err))
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, openSqlite(t), pokedex.DefaultPrefix)
	failure := errors.New("abort")

	err := s.WithTx(ctx, func(tx *Store) error {
		require.NoError(t, tx.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 4, Name: "Charmander"}))
		require.ErrorIs(t, tx.WithTx(ctx, func(*Store) error { return nil }), ErrTxStarted)
		return failure
	})
	require.ErrorIs(t, err, failure)

	_, err = s.Pokemon(ctx, 4)
	require.True(t, IsNotFound(err))

	err = s.WithTx(ctx, func(tx *Store) error {
		if err := tx.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 4, Name: "Charmander"}); err != nil {
			return err
		}
		f := pokedex.Form{Name: "Charmander", PokemonID: 4}
		if err := tx.CreateForm(ctx, &f); err != nil {
			return err
		}
		g, err := tx.Graph(ctx, 4)
		if err != nil {
			return err
		}
		require.Len(t, g.Forms, 1)
		return nil
	})
	require.NoError(t, err)

	p, err := s.Pokemon(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, "Charmander", p.Name)
}

func TestPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	drv := openSqlite(t)
	kanto := newStore(t, drv, "kanto")
	johto := newStore(t, drv, "johto")

	require.NoError(t, kanto.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 7, Name: "Squirtle"}))

	_, err := johto.Pokemon(ctx, 7)
	require.True(t, IsNotFound(err))

	// Both prefixes hold their own copy of the rows.
	require.NoError(t, johto.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 7, Name: "Squirtle"}))
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	drv := openSqlite(t)
	s := newStore(t, drv, pokedex.DefaultPrefix)
	require.NoError(t, s.CreatePokemon(ctx, &pokedex.Pokemon{NationalDex: 1, Name: "Bulbasaur"}))

	require.NoError(t, database.Apply(ctx, drv, s.Schema()))

	_, err := s.Pokemon(ctx, 1)
	require.NoError(t, err)
}
