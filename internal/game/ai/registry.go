package ai

import "fmt"

// Registry indexes Planners by domain ID.
//
// Invariant: each domain ID is registered at most once.
type Registry struct {
	planners map[string]*Planner
	fallback string
}

// NewRegistry returns an empty Registry that resolves unknown domain IDs to fallback.
func NewRegistry(fallback string) *Registry {
	return &Registry{planners: make(map[string]*Planner), fallback: fallback}
}

// Register creates and stores a Planner for domain, evaluating its Lua
// preconditions in a scope named after the domain.
//
// Precondition: domain and caller must not be nil.
// Postcondition: returns error on domain ID collision.
func (r *Registry) Register(domain *Domain, caller ScriptCaller) error {
	if _, exists := r.planners[domain.ID]; exists {
		return fmt.Errorf("ai.Registry: domain %q already registered", domain.ID)
	}
	r.planners[domain.ID] = NewPlanner(domain, caller, domain.ID)
	return nil
}

// Has reports whether domainID is registered.
func (r *Registry) Has(domainID string) bool {
	_, ok := r.planners[domainID]
	return ok
}

// PlannerFor returns the Planner for domainID. An empty or unknown ID resolves to
// the fallback domain; false is returned only when that is missing too.
func (r *Registry) PlannerFor(domainID string) (*Planner, bool) {
	if p, ok := r.planners[domainID]; ok {
		return p, true
	}
	p, ok := r.planners[r.fallback]
	return p, ok
}
