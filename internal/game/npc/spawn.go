package npc

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// PickTemplate selects a template by weight with one draw from src.
//
// Precondition: templates must be non-empty.
func PickTemplate(templates []*Template, src dice.Source) *Template {
	total := 0
	for _, t := range templates {
		total += t.weight()
	}
	n := src.Intn(total)
	for _, t := range templates {
		n -= t.weight()
		if n < 0 {
			return t
		}
	}
	return templates[len(templates)-1]
}

// Populate spawns up to count agents onto random walkable cells of g that are
// free and at least minDist steps (Manhattan) from avoid. Per agent it draws
// the template, then its health, then its cell.
//
// Precondition: templates must be non-empty when count > 0.
// Postcondition: Returns the spawned agents in spawn order. Running out of
// eligible cells stops early without error.
func Populate(r *Roster, g *grid.Grid, templates []*Template, count int, avoid grid.Point, minDist int, src dice.Source) ([]*Instance, error) {
	if count > 0 && len(templates) == 0 {
		return nil, fmt.Errorf("npc.Populate: no templates to spawn %d agents", count)
	}
	var spawned []*Instance
	for range count {
		tmpl := PickTemplate(templates, src)
		roll, err := dice.RollExpr(tmpl.HP, src)
		if err != nil {
			return spawned, fmt.Errorf("rolling hp for %q: %w", tmpl.ID, err)
		}
		hp := max(1, roll.Total())

		pos, ok := g.RandomCell(src, func(p grid.Point) bool {
			return g.IsWalkable(p) && p != avoid && p.Manhattan(avoid) >= minDist && !r.Occupied(p)
		})
		if !ok {
			break
		}
		inst, err := r.Spawn(tmpl, pos, hp)
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, inst)
	}
	return spawned, nil
}
