// Package combat resolves attacks between the player and dungeon agents.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// Kind distinguishes the player from agents.
type Kind int

const (
	KindPlayer Kind = iota
	KindAgent
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Element is the damage type an attacker deals. The zero value is physical.
type Element string

const (
	ElementNone   Element = ""
	ElementFire   Element = "fire"
	ElementFrost  Element = "frost"
	ElementPoison Element = "poison"
	ElementShock  Element = "shock"
)

// elementStatus maps each element to the condition it may inflict.
var elementStatus = map[Element]string{
	ElementFire:   "burning",
	ElementFrost:  "chilled",
	ElementPoison: "poisoned",
	ElementShock:  "stunned",
}

// Status returns the condition ID this element may inflict, or "" for none.
func (e Element) Status() string { return elementStatus[e] }

// ParseElement validates an element name. The empty string and "none" are
// physical.
//
// Postcondition: Returns a known Element or a non-nil error.
func ParseElement(s string) (Element, error) {
	switch e := Element(s); e {
	case ElementNone, "none":
		return ElementNone, nil
	case ElementFire, ElementFrost, ElementPoison, ElementShock:
		return e, nil
	default:
		return ElementNone, fmt.Errorf("unknown element %q", s)
	}
}

// Combatant is anything that occupies a cell and can attack or be attacked.
type Combatant struct {
	ID        string
	Kind      Kind
	Name      string
	Pos       grid.Point
	MaxHP     int
	CurrentHP int
	Attack    int
	Defense   int
	Element   Element
	// StatusChance is the probability in [0,1] that a hit inflicts the
	// element's status.
	StatusChance float64
}

// IsPlayer reports whether this combatant is the player.
func (c *Combatant) IsPlayer() bool { return c.Kind == KindPlayer }

// IsDead reports whether the combatant has no health left.
//
// Postcondition: Returns true iff CurrentHP <= 0.
func (c *Combatant) IsDead() bool { return c.CurrentHP <= 0 }

// IsAlive is the negation of IsDead.
func (c *Combatant) IsAlive() bool { return c.CurrentHP > 0 }

// ApplyDamage reduces CurrentHP by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: CurrentHP >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}
