package npc

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// ErrOccupied is returned when a cell already holds a living agent.
var ErrOccupied = errors.New("npc: cell occupied")

// ErrNotFound is returned when an agent ID is not in the roster.
var ErrNotFound = errors.New("npc: agent not found")

// Roster is the arena of live agents with a position index.
// Agents are kept in spawn order. It is not safe for concurrent use; the
// owning game mutates it only during its own turn.
type Roster struct {
	order   []string
	agents  map[string]*Instance
	at      map[grid.Point]string
	counter int
}

// NewRoster creates an empty Roster.
func NewRoster() *Roster {
	return &Roster{
		agents: make(map[string]*Instance),
		at:     make(map[grid.Point]string),
	}
}

// Spawn creates a new Instance from tmpl at pos with hp health.
//
// Precondition: tmpl must be non-nil; hp >= 1.
// Postcondition: Returns a new Instance with a unique ID indexed at pos, or
// ErrOccupied if a living agent already stands there.
func (r *Roster) Spawn(tmpl *Template, pos grid.Point, hp int) (*Instance, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("npc.Roster.Spawn: tmpl must not be nil")
	}
	if r.Occupied(pos) {
		return nil, fmt.Errorf("npc.Roster.Spawn %s: %w", pos, ErrOccupied)
	}

	r.counter++
	id := fmt.Sprintf("%s-%d", tmpl.ID, r.counter)
	inst := NewInstance(id, tmpl, pos, hp)

	r.agents[id] = inst
	r.order = append(r.order, id)
	r.at[pos] = id
	return inst, nil
}

// Remove deletes an agent by ID.
//
// Postcondition: Returns ErrNotFound if the agent is not present.
func (r *Roster) Remove(id string) error {
	inst, ok := r.agents[id]
	if !ok {
		return fmt.Errorf("npc.Roster.Remove %q: %w", id, ErrNotFound)
	}
	if r.at[inst.Pos] == id {
		delete(r.at, inst.Pos)
	}
	delete(r.agents, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the agent with the given ID.
//
// Postcondition: Returns (inst, true) if found, or (nil, false) otherwise.
func (r *Roster) Get(id string) (*Instance, bool) {
	inst, ok := r.agents[id]
	return inst, ok
}

// At returns the living agent standing on p.
func (r *Roster) At(p grid.Point) (*Instance, bool) {
	id, ok := r.at[p]
	if !ok {
		return nil, false
	}
	inst := r.agents[id]
	if inst.IsDead() {
		return nil, false
	}
	return inst, true
}

// Occupied reports whether a living agent stands on p.
func (r *Roster) Occupied(p grid.Point) bool {
	_, ok := r.At(p)
	return ok
}

// Move relocates an agent to to.
//
// Precondition: id must identify an existing agent.
// Postcondition: On success inst.Pos == to and the index is updated; moving
// onto a cell held by another living agent returns ErrOccupied.
func (r *Roster) Move(id string, to grid.Point) error {
	inst, ok := r.agents[id]
	if !ok {
		return fmt.Errorf("npc.Roster.Move %q: %w", id, ErrNotFound)
	}
	if other, ok := r.At(to); ok && other.ID != id {
		return fmt.Errorf("npc.Roster.Move %q to %s: %w", id, to, ErrOccupied)
	}
	if r.at[inst.Pos] == id {
		delete(r.at, inst.Pos)
	}
	inst.Pos = to
	r.at[to] = id
	return nil
}

// Living returns a snapshot of the living agents in spawn order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (r *Roster) Living() []*Instance {
	out := make([]*Instance, 0, len(r.order))
	for _, id := range r.order {
		if inst := r.agents[id]; inst.IsAlive() {
			out = append(out, inst)
		}
	}
	return out
}

// Len returns the number of agents in the roster, living or not.
func (r *Roster) Len() int { return len(r.order) }

// Sweep removes every dead agent and returns them in spawn order.
func (r *Roster) Sweep() []*Instance {
	var dead []*Instance
	for _, id := range r.order {
		if inst := r.agents[id]; inst.IsDead() {
			dead = append(dead, inst)
		}
	}
	for _, inst := range dead {
		_ = r.Remove(inst.ID)
	}
	return dead
}
