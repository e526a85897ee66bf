package pokedex

import "github.com/shopspring/decimal"

// Entity names. Physical table names are derived from these by Naming.
const (
	LabelAbility          = "Ability"
	LabelPokemonType      = "PokemonType"
	LabelEggGroup         = "EggGroup"
	LabelGeneration       = "Generation"
	LabelRegion           = "Region"
	LabelPokemonDex       = "PokemonDex"
	LabelPokemon          = "Pokemon"
	LabelForm             = "Form"
	LabelFormAbility      = "FormAbility"
	LabelFormType         = "FormType"
	LabelMegaStonePicture = "MegaStonePicture"

	// AssociationPokemonEggGroup names the Pokemon to EggGroup join table.
	AssociationPokemonEggGroup = "pokemon_egg_group"
)

// Column names shared by the table definitions and the store.
const (
	ColumnID                      = "id"
	ColumnName                    = "name"
	ColumnDescriptor              = "descriptor"
	ColumnRegionID                = "region_id"
	ColumnPokemonID               = "pokemon_id"
	ColumnRegionalDex             = "regional_dex"
	ColumnEggGroupID              = "egg_group_id"
	ColumnNationalDex             = "national_dex"
	ColumnJapaneseName            = "japanese_name"
	ColumnJapaneseTransliteration = "japanese_transliteration"
	ColumnJapaneseRomanized       = "japanese_romanized"
	ColumnHasMega                 = "has_mega"
	ColumnCategory                = "category"
	ColumnHatchTime               = "hatch_time"
	ColumnExperienceYield         = "experience_yield"
	ColumnGenderCode              = "gender_code"
	ColumnCatchRate               = "catch_rate"
	ColumnIntroducedGeneration    = "introduced_generation"
	ColumnBaseFriendship          = "base_friendship"
	ColumnURL                     = "url"
	ColumnImageRelativeLink       = "image_relative_link"
	ColumnSpriteRelativeLink      = "sprite_relative_link"
	ColumnWeight                  = "weight"
	ColumnHeight                  = "height"
	ColumnAbilityID               = "ability_id"
	ColumnFormID                  = "form_id"
	ColumnPokemonTypeID           = "pokemon_type_id"
	ColumnSlot                    = "slot"
)

type Ability struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PokemonType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type EggGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Generation struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Region struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
}

// PokemonDex is one regional appearance of a species.
type PokemonDex struct {
	RegionID    int `json:"region_id"`
	PokemonID   int `json:"pokemon_id"`
	RegionalDex int `json:"regional_dex"`
}

// Pokemon is a species, keyed by its national dex number.
type Pokemon struct {
	NationalDex             int             `json:"national_dex"`
	Name                    string          `json:"name"`
	JapaneseName            string          `json:"japanese_name"`
	JapaneseTransliteration string          `json:"japanese_transliteration"`
	JapaneseRomanized       string          `json:"japanese_romanized"`
	HasMega                 bool            `json:"has_mega"`
	Category                string          `json:"category"`
	HatchTime               int             `json:"hatch_time"`
	ExperienceYield         int             `json:"experience_yield"`
	GenderCode              decimal.Decimal `json:"gender_code"`
	CatchRate               int             `json:"catch_rate"`
	IntroducedGeneration    *int            `json:"introduced_generation,omitempty"`
	BaseFriendship          int             `json:"base_friendship"`
	URL                     string          `json:"url"`
}

type Form struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	ImageRelativeLink  string          `json:"image_relative_link"`
	SpriteRelativeLink string          `json:"sprite_relative_link"`
	Weight             decimal.Decimal `json:"weight"`
	Height             decimal.Decimal `json:"height"`
	PokemonID          int             `json:"pokemon_id"`
}

type FormAbility struct {
	AbilityID int         `json:"ability_id"`
	FormID    int         `json:"form_id"`
	Slot      AbilitySlot `json:"slot"`
}

type FormType struct {
	PokemonTypeID int      `json:"pokemon_type_id"`
	FormID        int      `json:"form_id"`
	Slot          TypeSlot `json:"slot"`
}

type MegaStonePicture struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	ImageRelativeLink string `json:"image_relative_link"`
	PokemonID         int    `json:"pokemon_id"`
}
