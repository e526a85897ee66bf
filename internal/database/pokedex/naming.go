package pokedex

import (
	"fmt"
	"regexp"

	"github.com/go-openapi/inflect"
)

// DefaultPrefix is the table prefix used when none is configured.
const DefaultPrefix = "pokedex"

// MaxPrefixLen keeps the longest generated constraint symbol within the
// 63 byte identifier limit of Postgres.
const MaxPrefixLen = 24

var prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Naming maps entity names to physical table names. An empty Prefix yields
// the bare snake_case entity names.
type Naming struct {
	Prefix string
}

// Validate reports whether the prefix can be used as the leading part of a
// SQL identifier.
func (n Naming) Validate() error {
	if n.Prefix == "" {
		return nil
	}
	if len(n.Prefix) > MaxPrefixLen {
		return fmt.Errorf("pokedex: table prefix %q is longer than %d characters", n.Prefix, MaxPrefixLen)
	}
	if !prefixPattern.MatchString(n.Prefix) {
		return fmt.Errorf("pokedex: table prefix %q must match %s", n.Prefix, prefixPattern)
	}
	return nil
}

// Table returns the physical table name of the given entity, for example
// "MegaStonePicture" becomes "pokedex_mega_stone_picture".
func (n Naming) Table(entity string) string {
	return n.qualify(inflect.Underscore(entity))
}

// Association returns the name of a join table owned by the given entity.
// The owner's physical name is kept whole, so the Pokemon egg group
// association becomes "pokedex_pokemon_pokemon_egg_group".
func (n Naming) Association(owner, association string) string {
	return n.Table(owner) + "_" + association
}

func (n Naming) qualify(name string) string {
	if n.Prefix == "" {
		return name
	}
	return n.Prefix + "_" + name
}
