package npc

import (
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// Instance is a live agent occupying a cell.
type Instance struct {
	combat.Combatant
	// TemplateID is the source template's ID.
	TemplateID string
	// Description is copied from the template.
	Description string
	// Glyph is the map character for this agent.
	Glyph rune
	// SightRadius bounds how far the agent can notice the player.
	SightRadius int
	// AIDomain is the HTN domain ID copied from the template at spawn time.
	AIDomain string
	// Taunts is the list of taunt strings copied from the template.
	Taunts []string
	// TauntChance is the probability (0–1) of taunting on each check.
	TauntChance float64
	// Conditions holds the agent's active status effects.
	Conditions *condition.ActiveSet
	// SeenPlayer is set once the agent has had the player in sight.
	SeenPlayer bool
}

// NewInstance creates a live agent from a template at pos with hp health.
//
// Precondition: id must be non-empty; tmpl must be non-nil and valid; hp >= 1.
// Postcondition: CurrentHP == MaxHP == hp.
func NewInstance(id string, tmpl *Template, pos grid.Point, hp int) *Instance {
	elem, _ := combat.ParseElement(tmpl.Element)
	return &Instance{
		Combatant: combat.Combatant{
			ID:           id,
			Kind:         combat.KindAgent,
			Name:         tmpl.Name,
			Pos:          pos,
			MaxHP:        hp,
			CurrentHP:    hp,
			Attack:       tmpl.Attack,
			Defense:      tmpl.Defense,
			Element:      elem,
			StatusChance: tmpl.StatusChance,
		},
		TemplateID:  tmpl.ID,
		Description: tmpl.Description,
		Glyph:       tmpl.GlyphRune(),
		SightRadius: tmpl.SightRadius,
		AIDomain:    tmpl.AIDomain,
		Taunts:      tmpl.Taunts,
		TauntChance: tmpl.TauntChance,
		Conditions:  condition.NewActiveSet(),
	}
}

// TryTaunt attempts to produce a taunt string. It draws once for the chance
// and once more for the line when the chance succeeds.
//
// Postcondition: Returns (taunt, true) if a taunt fires; ("", false) otherwise
// without drawing when there is nothing to say.
func (i *Instance) TryTaunt(src dice.Source) (string, bool) {
	if len(i.Taunts) == 0 || i.TauntChance <= 0 {
		return "", false
	}
	if !dice.Chance(src, i.TauntChance) {
		return "", false
	}
	return i.Taunts[src.Intn(len(i.Taunts))], true
}

// HealthDescription returns a visible health state string.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.CurrentHP <= 0 {
		return "dead"
	}
	pct := float64(i.CurrentHP) / float64(i.MaxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
