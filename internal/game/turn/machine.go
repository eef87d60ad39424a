// Package turn drives the player/agent turn cycle: the phase state machine and
// the Game orchestrator that runs visibility, pathfinding, combat, and
// status-effect ticks in a fixed order.
package turn

import (
	"errors"
	"fmt"
)

// Phase is the current stage of the turn cycle.
type Phase int

const (
	PlayerTurn Phase = iota
	AgentTurn
	GameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PlayerTurn:
		return "player_turn"
	case AgentTurn:
		return "agent_turn"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	// ErrGameOver is returned for any transition attempted after the game ended.
	ErrGameOver = errors.New("turn: game is over")
	// ErrWrongPhase is returned for a transition not allowed from the current phase.
	ErrWrongPhase = errors.New("turn: wrong phase")
)

// Machine tracks whose turn it is.
//
// Invariant: once GameOver is reached the phase never changes again.
type Machine struct {
	phase Phase
	turn  int
}

// NewMachine returns a Machine on turn 1 in PlayerTurn.
func NewMachine() *Machine {
	return &Machine{phase: PlayerTurn, turn: 1}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Turn returns the 1-based turn counter.
func (m *Machine) Turn() int { return m.turn }

// Over reports whether the machine reached GameOver.
func (m *Machine) Over() bool { return m.phase == GameOver }

// CommitPlayerAction records a player action. Only a turn-consuming action
// hands the turn to the agents.
//
// Precondition: phase is PlayerTurn.
// Postcondition: phase is AgentTurn iff consumesTurn and no error was returned.
func (m *Machine) CommitPlayerAction(consumesTurn bool) error {
	if err := m.expect(PlayerTurn); err != nil {
		return err
	}
	if consumesTurn {
		m.phase = AgentTurn
	}
	return nil
}

// FinishAgentTurn returns control to the player and advances the turn counter.
//
// Precondition: phase is AgentTurn.
func (m *Machine) FinishAgentTurn() error {
	if err := m.expect(AgentTurn); err != nil {
		return err
	}
	m.phase = PlayerTurn
	m.turn++
	return nil
}

// PlayerDied forces GameOver from any live phase.
func (m *Machine) PlayerDied() error {
	if m.phase == GameOver {
		return ErrGameOver
	}
	m.phase = GameOver
	return nil
}

func (m *Machine) expect(want Phase) error {
	if m.phase == GameOver {
		return ErrGameOver
	}
	if m.phase != want {
		return fmt.Errorf("%w: in %s, want %s", ErrWrongPhase, m.phase, want)
	}
	return nil
}
