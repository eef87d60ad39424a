package condition

import (
	"fmt"
	"sort"
)

// ActiveCondition tracks one applied condition on an entity.
type ActiveCondition struct {
	Def               *ConditionDef
	Stacks            int
	DurationRemaining int // -1 = permanent
}

// ActiveSet tracks all conditions currently applied to one combatant.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	conditions map[string]*ActiveCondition
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{conditions: make(map[string]*ActiveCondition)}
}

// Apply adds or updates a condition on this entity.
// If the condition is already present, stacks are incremented (capped at MaxStacks).
// If MaxStacks == 0 (unstackable), stacks is always stored as 1.
// duration is turns remaining; use -1 for permanent.
//
// Precondition: def must not be nil.
// Postcondition: Has(def.ID) is true; stacks are incremented on re-apply (capped at MaxStacks);
// DurationRemaining is updated to max(existing, duration) on re-apply.
func (s *ActiveSet) Apply(def *ConditionDef, stacks, duration int) error {
	if def == nil {
		return fmt.Errorf("Apply: def must not be nil")
	}

	if existing, ok := s.conditions[def.ID]; ok {
		if def.MaxStacks > 0 {
			existing.Stacks = min(existing.Stacks+stacks, def.MaxStacks)
		}
		if duration > existing.DurationRemaining {
			existing.DurationRemaining = duration
		}
		return nil
	}

	effective := stacks
	switch {
	case def.MaxStacks == 0:
		effective = 1
	case effective > def.MaxStacks:
		effective = def.MaxStacks
	}
	s.conditions[def.ID] = &ActiveCondition{
		Def:               def,
		Stacks:            effective,
		DurationRemaining: duration,
	}
	return nil
}

// Remove deletes the condition with the given ID from the set.
// If the condition is not present, Remove is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.conditions, id)
}

// Tick decrements the DurationRemaining of all "turns"-type conditions by 1.
// Conditions that reach 0 are removed. Permanent conditions
// (DurationRemaining == -1) are not affected.
//
// Postcondition: Returns the expired IDs in sorted order; for each, Has(id) is false.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, ac := range s.conditions {
		if ac.Def.DurationType != DurationTurns || ac.DurationRemaining < 0 {
			continue
		}
		ac.DurationRemaining--
		if ac.DurationRemaining <= 0 {
			expired = append(expired, id)
			delete(s.conditions, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// Has reports whether the condition with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.conditions[id]
	return ok
}

// Stacks returns the current stack count for condition id, or 0 if not present.
func (s *ActiveSet) Stacks(id string) int {
	if ac, ok := s.conditions[id]; ok {
		return ac.Stacks
	}
	return 0
}

// Len returns the number of active conditions.
func (s *ActiveSet) Len() int { return len(s.conditions) }

// All returns the active conditions sorted by ID.
// The slice is a new allocation, but the pointed-to ActiveCondition values
// are shared; callers must not modify them.
func (s *ActiveSet) All() []*ActiveCondition {
	out := make([]*ActiveCondition, 0, len(s.conditions))
	for _, ac := range s.conditions {
		out = append(out, ac)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}

// IDs returns the active condition IDs in sorted order.
func (s *ActiveSet) IDs() []string {
	ids := make([]string, 0, len(s.conditions))
	for id := range s.conditions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
