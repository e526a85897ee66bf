package pokedex

import (
	"fmt"
	"slices"
)

// AbilitySlot is the position an ability occupies on a form. Values are
// stored by their one letter code.
type AbilitySlot string

const (
	AbilitySlotFirst  AbilitySlot = "F"
	AbilitySlotSecond AbilitySlot = "S"
	AbilitySlotHidden AbilitySlot = "H"
	AbilitySlotMega   AbilitySlot = "M"
)

var abilitySlots = []AbilitySlot{AbilitySlotFirst, AbilitySlotSecond, AbilitySlotHidden, AbilitySlotMega}

var abilitySlotLabels = map[AbilitySlot]string{
	AbilitySlotFirst:  "First",
	AbilitySlotSecond: "Second",
	AbilitySlotHidden: "Hidden",
	AbilitySlotMega:   "Mega",
}

// AbilitySlots returns every ability slot in declaration order.
func AbilitySlots() []AbilitySlot {
	return slices.Clone(abilitySlots)
}

// Label returns the human readable name of the slot.
func (s AbilitySlot) Label() string {
	if l, ok := abilitySlotLabels[s]; ok {
		return l
	}
	return string(s)
}

// Rank is the declaration order of the slot, or -1 for unknown values.
func (s AbilitySlot) Rank() int {
	return slices.Index(abilitySlots, s)
}

// Validate rejects any value outside First, Second, Hidden and Mega.
func (s AbilitySlot) Validate() error {
	if s.Rank() < 0 {
		return fmt.Errorf("pokedex: invalid ability slot %q", string(s))
	}
	return nil
}

// TypeSlot is the position a type occupies on a form.
type TypeSlot string

const (
	TypeSlotPrimary   TypeSlot = "P"
	TypeSlotSecondary TypeSlot = "S"
)

var typeSlots = []TypeSlot{TypeSlotPrimary, TypeSlotSecondary}

// TypeSlots returns every type slot in declaration order.
func TypeSlots() []TypeSlot {
	return slices.Clone(typeSlots)
}

func (s TypeSlot) Label() string {
	switch s {
	case TypeSlotPrimary:
		return "Primary"
	case TypeSlotSecondary:
		return "Secondary"
	}
	return string(s)
}

func (s TypeSlot) Rank() int {
	return slices.Index(typeSlots, s)
}

// Validate rejects any value outside Primary and Secondary.
func (s TypeSlot) Validate() error {
	if s.Rank() < 0 {
		return fmt.Errorf("pokedex: invalid type slot %q", string(s))
	}
	return nil
}

func abilitySlotCodes() []string {
	codes := make([]string, len(abilitySlots))
	for i, s := range abilitySlots {
		codes[i] = string(s)
	}
	return codes
}

func typeSlotCodes() []string {
	codes := make([]string, len(typeSlots))
	for i, s := range typeSlots {
		codes[i] = string(s)
	}
	return codes
}
