package turn

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

// ErrInvalidAction is returned for an action the Game cannot interpret.
var ErrInvalidAction = errors.New("turn: invalid action")

// ActionKind identifies a player action.
type ActionKind int

const (
	ActionLook ActionKind = iota
	ActionWait
	ActionMove
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActionLook:
		return "look"
	case ActionWait:
		return "wait"
	case ActionMove:
		return "move"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action is one player input.
type Action struct {
	Kind ActionKind
	// Dir is the cardinal step for ActionMove.
	Dir grid.Point
}

// Look observes the surroundings without spending the turn.
func Look() Action { return Action{Kind: ActionLook} }

// Wait spends the turn doing nothing.
func Wait() Action { return Action{Kind: ActionWait} }

// Move steps one cell in dir, attacking a living agent standing there.
func Move(dir grid.Point) Action { return Action{Kind: ActionMove, Dir: dir} }

// Result is the outcome of one Act call.
type Result struct {
	// Consumed reports whether the action spent the player's turn.
	Consumed bool
	// Events lists everything that happened, the agent turn included.
	Events []Event
	// Visible holds the agents in view; set by Look.
	Visible []*npc.Instance
}

func isCardinal(d grid.Point) bool {
	for _, c := range grid.Cardinals {
		if d == c {
			return true
		}
	}
	return false
}
