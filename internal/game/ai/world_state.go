package ai

import "github.com/cory-johannsen/delve/internal/game/grid"

// AgentState captures the planning agent's own state.
type AgentState struct {
	UID         string
	Name        string
	Pos         grid.Point
	HP          int
	MaxHP       int
	SightRadius int
	Conditions  []string
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (a *AgentState) HPPercent() float64 {
	return percent(a.HP, a.MaxHP)
}

// TargetState captures what the agent knows about the player.
type TargetState struct {
	UID   string
	Name  string
	Pos   grid.Point
	HP    int
	MaxHP int
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (t *TargetState) HPPercent() float64 {
	return percent(t.HP, t.MaxHP)
}

func percent(hp, maxHP int) float64 {
	if maxHP <= 0 {
		return 0
	}
	return float64(hp) / float64(maxHP) * 100
}

// WorldState is the snapshot passed to the HTN planner for one agent.
//
// Invariant: Agent must not be nil. Visible and Adjacent are false when Target is nil.
type WorldState struct {
	Agent  *AgentState
	Target *TargetState
	// Visible reports line of sight to the target within the agent's sight radius.
	Visible bool
	// Adjacent reports the target is one orthogonal step away.
	Adjacent bool
	// Distance is the Manhattan distance to the target, or -1 without a target.
	Distance int
}

// ResolveTarget maps an operator target token to a UID.
//
// Precondition: ws.Agent must not be nil.
// Postcondition: "target" resolves to the target UID (empty without a target);
// "self" resolves to the agent UID; empty stays empty.
func (ws *WorldState) ResolveTarget(token string) string {
	switch token {
	case TargetPlayer:
		if ws.Target != nil {
			return ws.Target.UID
		}
		return ""
	case TargetSelf:
		return ws.Agent.UID
	default:
		return token
	}
}
