package ai

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ScriptCaller is the interface required by the Planner to evaluate Lua preconditions.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the given scope's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(scope, hook string, args ...lua.LValue) (lua.LValue, error)
}

// NopCaller is a ScriptCaller for domains that only use built-in predicates.
// Every hook evaluates to nil.
type NopCaller struct{}

// CallHook returns LNil.
func (NopCaller) CallHook(string, string, ...lua.LValue) (lua.LValue, error) {
	return lua.LNil, nil
}

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	Operator string
	Action   Action
	Target   string // resolved UID; empty when the operator has no target
}

// maxDepth bounds decomposition steps per plan.
const maxDepth = 32

// Planner evaluates an HTN domain for a single agent and produces an ordered
// action plan for the current turn.
//
// Invariant: domain and caller must not be nil.
type Planner struct {
	domain *Domain
	caller ScriptCaller
	scope  string
}

// NewPlanner constructs a Planner whose Lua preconditions run in scope.
//
// Precondition: domain and caller must not be nil.
func NewPlanner(domain *Domain, caller ScriptCaller, scope string) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	if caller == nil {
		panic("ai.NewPlanner: caller must not be nil")
	}
	return &Planner{domain: domain, caller: caller, scope: scope}
}

// Domain returns the planner's domain.
func (p *Planner) Domain() *Domain { return p.domain }

// Plan evaluates the HTN domain against state and returns an ordered plan.
//
// Precondition: state and state.Agent must not be nil.
// Postcondition: returns non-nil slice (may be empty); never returns error for Lua failures
// (they are treated as precondition-false).
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.Agent == nil {
		return nil, fmt.Errorf("ai.Planner.Plan: state and state.Agent must not be nil")
	}

	taskQueue := []string{RootTask}
	result := []PlannedAction{}

	for steps := 0; len(taskQueue) > 0 && steps < maxDepth; steps++ {
		current := taskQueue[0]
		taskQueue = taskQueue[1:]

		if op, ok := p.domain.OperatorByID(current); ok {
			result = append(result, PlannedAction{
				Operator: op.ID,
				Action:   op.Action,
				Target:   state.ResolveTarget(op.Target),
			})
			continue
		}

		method := p.findApplicableMethod(current, state)
		if method == nil {
			continue
		}
		// Prepend subtasks without aliasing the method's slice.
		next := make([]string, 0, len(method.Subtasks)+len(taskQueue))
		next = append(next, method.Subtasks...)
		taskQueue = append(next, taskQueue...)
	}
	return result, nil
}

// Next returns the first planned action, or ActionWait when the plan is empty.
func (p *Planner) Next(state *WorldState) (PlannedAction, error) {
	plan, err := p.Plan(state)
	if err != nil {
		return PlannedAction{}, err
	}
	if len(plan) == 0 {
		return PlannedAction{Action: ActionWait}, nil
	}
	return plan[0], nil
}

// findApplicableMethod returns the first Method for taskID whose precondition passes,
// or nil if none applies.
func (p *Planner) findApplicableMethod(taskID string, state *WorldState) *Method {
	for _, m := range p.domain.MethodsForTask(taskID) {
		if p.holds(m.Precondition, state) {
			return m
		}
	}
	return nil
}

func (p *Planner) holds(pre string, state *WorldState) bool {
	if pre == "" {
		return true
	}
	name, negate := strings.CutPrefix(pre, "!")
	var v bool
	if fn, ok := builtins[name]; ok {
		v = fn(state)
	} else {
		val, _ := p.caller.CallHook(p.scope, name, lua.LString(state.Agent.UID))
		v = val == lua.LTrue
	}
	return v != negate
}
