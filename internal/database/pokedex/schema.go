// Package pokedex declares the relational schema of the Pokémon reference
// data: species, forms, abilities, types, egg groups, regional dexes and mega
// stone pictures.
//
// The definitions are plain entgo.io/ent/dialect/sql/schema tables, so any
// ent driver can create them:
//
//	s, err := pokedex.New(pokedex.WithPrefix("kanto"))
//	if err != nil {
//		return err
//	}
//	m, err := schema.NewMigrate(drv)
//	if err != nil {
//		return err
//	}
//	err = m.Create(ctx, s.Tables()...)
package pokedex

import (
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Option configures a Schema.
type Option func(*Schema)

// WithPrefix sets the table name prefix. An empty prefix disables it.
func WithPrefix(prefix string) Option {
	return func(s *Schema) {
		s.naming.Prefix = prefix
	}
}

// WithNaming replaces the whole naming configuration.
func WithNaming(n Naming) Option {
	return func(s *Schema) {
		s.naming = n
	}
}

// Schema holds one table definition per entity. Tables must not be modified
// after New returns.
type Schema struct {
	naming Naming

	Ability          *schema.Table
	PokemonType      *schema.Table
	EggGroup         *schema.Table
	Generation       *schema.Table
	Region           *schema.Table
	Pokemon          *schema.Table
	PokemonDex       *schema.Table
	PokemonEggGroup  *schema.Table
	Form             *schema.Table
	FormAbility      *schema.Table
	FormType         *schema.Table
	MegaStonePicture *schema.Table
}

// New builds the schema. The prefix defaults to DefaultPrefix.
func New(opts ...Option) (*Schema, error) {
	s := &Schema{naming: Naming{Prefix: DefaultPrefix}}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.naming.Validate(); err != nil {
		return nil, err
	}
	s.build()
	return s, nil
}

// Naming returns the naming configuration the tables were built with.
func (s *Schema) Naming() Naming {
	return s.naming
}

// Tables returns every table, parents before the tables referencing them.
func (s *Schema) Tables() []*schema.Table {
	return []*schema.Table{
		s.Ability,
		s.PokemonType,
		s.EggGroup,
		s.Generation,
		s.Region,
		s.Pokemon,
		s.PokemonDex,
		s.PokemonEggGroup,
		s.Form,
		s.FormAbility,
		s.FormType,
		s.MegaStonePicture,
	}
}

var (
	// decimalGenderCode holds ratios such as 87.5 or -1 for genderless species.
	decimalGenderCode = map[string]string{
		dialect.MySQL:    "decimal(7,4)",
		dialect.Postgres: "numeric(7,4)",
		dialect.SQLite:   "real",
	}
	decimalMeasure = map[string]string{
		dialect.MySQL:    "decimal(8,2)",
		dialect.Postgres: "numeric(8,2)",
		dialect.SQLite:   "real",
	}
	longText = map[string]string{
		dialect.MySQL:    "text",
		dialect.Postgres: "text",
	}
)

func (s *Schema) build() {
	n := s.naming

	s.Ability = lookupTable(n.Table(LabelAbility), 0)
	s.PokemonType = lookupTable(n.Table(LabelPokemonType), 20)
	s.EggGroup = lookupTable(n.Table(LabelEggGroup), 20)
	s.Generation = lookupTable(n.Table(LabelGeneration), 20)

	regionColumns := []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnName, Type: field.TypeString, Size: 20},
		{Name: ColumnDescriptor, Type: field.TypeString, Size: 10},
	}
	s.Region = &schema.Table{
		Name:       n.Table(LabelRegion),
		Columns:    regionColumns,
		PrimaryKey: regionColumns[:1],
	}

	pokemonColumns := []*schema.Column{
		{Name: ColumnNationalDex, Type: field.TypeInt},
		{Name: ColumnName, Type: field.TypeString, Size: 20},
		{Name: ColumnJapaneseName, Type: field.TypeString, Size: 20},
		{Name: ColumnJapaneseTransliteration, Type: field.TypeString, Size: 50},
		{Name: ColumnJapaneseRomanized, Type: field.TypeString, Size: 50},
		{Name: ColumnHasMega, Type: field.TypeBool},
		{Name: ColumnCategory, Type: field.TypeString, Size: 20},
		{Name: ColumnHatchTime, Type: field.TypeInt},
		{Name: ColumnExperienceYield, Type: field.TypeInt},
		{Name: ColumnGenderCode, Type: field.TypeOther, SchemaType: decimalGenderCode},
		{Name: ColumnCatchRate, Type: field.TypeInt},
		{Name: ColumnIntroducedGeneration, Type: field.TypeInt, Nullable: true},
		{Name: ColumnBaseFriendship, Type: field.TypeInt},
		{Name: ColumnURL, Type: field.TypeString, SchemaType: longText},
	}
	s.Pokemon = &schema.Table{
		Name:       n.Table(LabelPokemon),
		Columns:    pokemonColumns,
		PrimaryKey: pokemonColumns[:1],
	}
	s.Pokemon.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.Pokemon, pokemonColumns[11], s.Generation, schema.SetNull),
	}

	pokemonDexColumns := []*schema.Column{
		{Name: ColumnRegionID, Type: field.TypeInt},
		{Name: ColumnPokemonID, Type: field.TypeInt},
		{Name: ColumnRegionalDex, Type: field.TypeInt},
	}
	s.PokemonDex = &schema.Table{
		Name:       n.Table(LabelPokemonDex),
		Columns:    pokemonDexColumns,
		PrimaryKey: pokemonDexColumns[:2],
	}
	s.PokemonDex.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.PokemonDex, pokemonDexColumns[0], s.Region, schema.Cascade),
		foreignKey(s.PokemonDex, pokemonDexColumns[1], s.Pokemon, schema.Cascade),
	}

	eggGroupLinkColumns := []*schema.Column{
		{Name: ColumnPokemonID, Type: field.TypeInt},
		{Name: ColumnEggGroupID, Type: field.TypeInt},
	}
	s.PokemonEggGroup = &schema.Table{
		Name:       n.Association(LabelPokemon, AssociationPokemonEggGroup),
		Columns:    eggGroupLinkColumns,
		PrimaryKey: eggGroupLinkColumns,
	}
	s.PokemonEggGroup.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.PokemonEggGroup, eggGroupLinkColumns[0], s.Pokemon, schema.Cascade),
		foreignKey(s.PokemonEggGroup, eggGroupLinkColumns[1], s.EggGroup, schema.Cascade),
	}

	formColumns := []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnName, Type: field.TypeString, Size: 20},
		{Name: ColumnImageRelativeLink, Type: field.TypeString, Size: 500},
		{Name: ColumnSpriteRelativeLink, Type: field.TypeString, Size: 500},
		{Name: ColumnWeight, Type: field.TypeOther, SchemaType: decimalMeasure},
		{Name: ColumnHeight, Type: field.TypeOther, SchemaType: decimalMeasure},
		{Name: ColumnPokemonID, Type: field.TypeInt},
	}
	s.Form = &schema.Table{
		Name:       n.Table(LabelForm),
		Columns:    formColumns,
		PrimaryKey: formColumns[:1],
	}
	s.Form.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.Form, formColumns[6], s.Pokemon, schema.Cascade),
	}

	formAbilityColumns := []*schema.Column{
		{Name: ColumnAbilityID, Type: field.TypeInt},
		{Name: ColumnFormID, Type: field.TypeInt},
		{Name: ColumnSlot, Type: field.TypeString, Size: 1},
	}
	s.FormAbility = &schema.Table{
		Name:       n.Table(LabelFormAbility),
		Columns:    formAbilityColumns,
		PrimaryKey: formAbilityColumns[:2],
	}
	s.FormAbility.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.FormAbility, formAbilityColumns[0], s.Ability, schema.Cascade),
		foreignKey(s.FormAbility, formAbilityColumns[1], s.Form, schema.Cascade),
	}
	s.FormAbility.Annotation = slotCheck(s.FormAbility.Name, abilitySlotCodes())

	formTypeColumns := []*schema.Column{
		{Name: ColumnPokemonTypeID, Type: field.TypeInt},
		{Name: ColumnFormID, Type: field.TypeInt},
		{Name: ColumnSlot, Type: field.TypeString, Size: 1},
	}
	s.FormType = &schema.Table{
		Name:       n.Table(LabelFormType),
		Columns:    formTypeColumns,
		PrimaryKey: formTypeColumns[:2],
	}
	s.FormType.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.FormType, formTypeColumns[0], s.PokemonType, schema.Cascade),
		foreignKey(s.FormType, formTypeColumns[1], s.Form, schema.Cascade),
	}
	s.FormType.Annotation = slotCheck(s.FormType.Name, typeSlotCodes())

	megaStoneColumns := []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnName, Type: field.TypeString, Size: 20},
		{Name: ColumnImageRelativeLink, Type: field.TypeString, Size: 50},
		{Name: ColumnPokemonID, Type: field.TypeInt},
	}
	s.MegaStonePicture = &schema.Table{
		Name:       n.Table(LabelMegaStonePicture),
		Columns:    megaStoneColumns,
		PrimaryKey: megaStoneColumns[:1],
	}
	s.MegaStonePicture.ForeignKeys = []*schema.ForeignKey{
		foreignKey(s.MegaStonePicture, megaStoneColumns[3], s.Pokemon, schema.Cascade),
	}
}

// lookupTable declares an id/name reference table. A zero size leaves the
// name length to the dialect default.
func lookupTable(name string, size int64) *schema.Table {
	columns := []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnName, Type: field.TypeString, Size: size},
	}
	return &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: columns[:1],
	}
}

func foreignKey(t *schema.Table, c *schema.Column, ref *schema.Table, onDelete schema.ReferenceOption) *schema.ForeignKey {
	return &schema.ForeignKey{
		Symbol:     t.Name + "_" + c.Name,
		Columns:    []*schema.Column{c},
		RefTable:   ref,
		RefColumns: ref.PrimaryKey[:1],
		OnDelete:   onDelete,
	}
}

func slotCheck(table string, codes []string) *entsql.Annotation {
	quoted := make([]string, len(codes))
	for i, c := range codes {
		quoted[i] = "'" + c + "'"
	}
	return &entsql.Annotation{
		Checks: map[string]string{
			table + "_slot_check": fmt.Sprintf("%s IN (%s)", ColumnSlot, strings.Join(quoted, ", ")),
		},
	}
}
