package ai

import (
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/fov"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

// BuildWorldState constructs a WorldState snapshot for inst facing target on g.
// The agent's sight radius is reduced by its conditions' vision penalty.
//
// Precondition: inst and g must not be nil; inst.Pos must be in bounds.
// Postcondition: ws.Agent.UID == inst.ID; ws.Target is nil iff target is nil or dead.
func BuildWorldState(inst *npc.Instance, target *combat.Combatant, g *grid.Grid) *WorldState {
	radius := max(0, inst.SightRadius-condition.VisionPenalty(inst.Conditions))
	ws := &WorldState{
		Agent: &AgentState{
			UID:         inst.ID,
			Name:        inst.Name,
			Pos:         inst.Pos,
			HP:          inst.CurrentHP,
			MaxHP:       inst.MaxHP,
			SightRadius: radius,
			Conditions:  inst.Conditions.IDs(),
		},
		Distance: -1,
	}
	if target == nil || target.IsDead() {
		return ws
	}
	ws.Target = &TargetState{
		UID:   target.ID,
		Name:  target.Name,
		Pos:   target.Pos,
		HP:    target.CurrentHP,
		MaxHP: target.MaxHP,
	}
	ws.Distance = inst.Pos.Manhattan(target.Pos)
	ws.Adjacent = inst.Pos.Adjacent(target.Pos)
	ws.Visible = fov.CanSee(g, inst.Pos, target.Pos, radius)
	return ws
}
