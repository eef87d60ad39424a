// Package ai implements the Hierarchical Task Network (HTN) planner for agent behavior.
//
// HTN planning decomposes abstract tasks into primitive operators via ordered methods.
// Method preconditions are built-in world-state predicates or Lua hooks; operators
// map to the five agent actions.
package ai

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action is a primitive agent action.
type Action string

const (
	ActionAttack   Action = "attack"
	ActionApproach Action = "approach"
	ActionFlee     Action = "flee"
	ActionWander   Action = "wander"
	ActionWait     Action = "wait"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionAttack, ActionApproach, ActionFlee, ActionWander, ActionWait:
		return true
	}
	return false
}

// Target tokens accepted by operators.
const (
	TargetPlayer = "target"
	TargetSelf   = "self"
)

// RootTask is the task every plan starts from.
const RootTask = "behave"

// Task is an abstract goal that can be decomposed by methods.
//
// Precondition: ID must be non-empty.
type Task struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

// Method decomposes a task into an ordered list of subtasks or operator IDs.
//
// Precondition: TaskID, ID, and Subtasks must be non-empty.
// Precondition: Precondition names a built-in predicate or a Lua function, optionally
// prefixed with "!" to negate it; empty means always applicable.
type Method struct {
	TaskID       string   `yaml:"task"`
	ID           string   `yaml:"id"`
	Precondition string   `yaml:"precondition"`
	Subtasks     []string `yaml:"subtasks"`
}

// Operator is a primitive step that maps directly to an agent action.
//
// Precondition: ID must be non-empty; Action must be valid.
type Operator struct {
	ID     string `yaml:"id"`
	Action Action `yaml:"action"`
	Target string `yaml:"target"` // "target", "self", or empty
}

// Domain holds the full HTN domain loaded from a YAML file.
//
// Invariant: all Task, Method, and Operator IDs are unique within their slice.
type Domain struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Tasks       []*Task     `yaml:"tasks"`
	Methods     []*Method   `yaml:"methods"`
	Operators   []*Operator `yaml:"operators"`
}

// Validate checks all required fields and cross-field constraints.
//
// Postcondition: nil return guarantees non-empty ID, a root task, all Method TaskIDs
// and IDs non-empty with non-empty Subtasks, all Operator IDs non-empty with known
// actions and targets, no duplicate IDs within any slice, and all cross-references valid.
func (d *Domain) Validate() error {
	if d.ID == "" {
		return errors.New("ai.Domain: ID must not be empty")
	}
	if len(d.Tasks) == 0 {
		return fmt.Errorf("ai.Domain %q: must have at least one task", d.ID)
	}
	for _, t := range d.Tasks {
		if t.ID == "" {
			return fmt.Errorf("ai.Domain %q: task has empty ID", d.ID)
		}
	}
	for _, m := range d.Methods {
		if m.TaskID == "" || m.ID == "" {
			return fmt.Errorf("ai.Domain %q: method missing TaskID or ID", d.ID)
		}
		if len(m.Subtasks) == 0 {
			return fmt.Errorf("ai.Domain %q method %q: subtasks must not be empty", d.ID, m.ID)
		}
	}
	for _, op := range d.Operators {
		if op.ID == "" {
			return fmt.Errorf("ai.Domain %q: operator missing ID", d.ID)
		}
		if !op.Action.Valid() {
			return fmt.Errorf("ai.Domain %q operator %q: unknown action %q", d.ID, op.ID, op.Action)
		}
		switch op.Target {
		case "", TargetPlayer, TargetSelf:
		default:
			return fmt.Errorf("ai.Domain %q operator %q: unknown target %q", d.ID, op.ID, op.Target)
		}
	}

	taskIDs := make(map[string]struct{}, len(d.Tasks))
	for _, t := range d.Tasks {
		if _, dup := taskIDs[t.ID]; dup {
			return fmt.Errorf("ai.Domain %q: duplicate task ID %q", d.ID, t.ID)
		}
		taskIDs[t.ID] = struct{}{}
	}
	if _, ok := taskIDs[RootTask]; !ok {
		return fmt.Errorf("ai.Domain %q: missing root task %q", d.ID, RootTask)
	}

	methodIDs := make(map[string]struct{}, len(d.Methods))
	for _, m := range d.Methods {
		if _, dup := methodIDs[m.ID]; dup {
			return fmt.Errorf("ai.Domain %q: duplicate method ID %q", d.ID, m.ID)
		}
		methodIDs[m.ID] = struct{}{}
	}

	operatorIDs := make(map[string]struct{}, len(d.Operators))
	for _, op := range d.Operators {
		if _, dup := operatorIDs[op.ID]; dup {
			return fmt.Errorf("ai.Domain %q: duplicate operator ID %q", d.ID, op.ID)
		}
		if _, clash := taskIDs[op.ID]; clash {
			return fmt.Errorf("ai.Domain %q: operator ID %q shadows a task", d.ID, op.ID)
		}
		operatorIDs[op.ID] = struct{}{}
	}

	for _, m := range d.Methods {
		if _, ok := taskIDs[m.TaskID]; !ok {
			return fmt.Errorf("ai.Domain %q method %q: TaskID %q references unknown task", d.ID, m.ID, m.TaskID)
		}
		for _, sub := range m.Subtasks {
			_, isTask := taskIDs[sub]
			_, isOp := operatorIDs[sub]
			if !isTask && !isOp {
				return fmt.Errorf("ai.Domain %q method %q: subtask %q is neither a task nor an operator", d.ID, m.ID, sub)
			}
		}
	}
	return nil
}

// OperatorByID returns the operator with the given ID, or false if not found.
func (d *Domain) OperatorByID(id string) (*Operator, bool) {
	for _, op := range d.Operators {
		if op.ID == id {
			return op, true
		}
	}
	return nil, false
}

// MethodsForTask returns all methods that decompose taskID, in declaration order.
func (d *Domain) MethodsForTask(taskID string) []*Method {
	var out []*Method
	for _, m := range d.Methods {
		if m.TaskID == taskID {
			out = append(out, m)
		}
	}
	return out
}

// DefaultDomainID is the ID of the domain returned by DefaultDomain.
const DefaultDomainID = "hunter"

// DefaultDomain returns the built-in hunter domain: attack when adjacent to a
// visible target, close in when the target is visible but distant, wander otherwise.
//
// Postcondition: the returned domain is valid and uses built-in predicates only.
func DefaultDomain() *Domain {
	return &Domain{
		ID:          DefaultDomainID,
		Description: "Closes in on a visible target and attacks it; wanders otherwise.",
		Tasks: []*Task{
			{ID: RootTask},
			{ID: "engage"},
		},
		Methods: []*Method{
			{TaskID: RootTask, ID: "hunt", Precondition: PredTargetVisible, Subtasks: []string{"engage"}},
			{TaskID: RootTask, ID: "roam", Subtasks: []string{"wander_about"}},
			{TaskID: "engage", ID: "strike", Precondition: PredTargetAdjacent, Subtasks: []string{"attack_target"}},
			{TaskID: "engage", ID: "close_in", Subtasks: []string{"approach_target"}},
		},
		Operators: []*Operator{
			{ID: "attack_target", Action: ActionAttack, Target: TargetPlayer},
			{ID: "approach_target", Action: ActionApproach, Target: TargetPlayer},
			{ID: "wander_about", Action: ActionWander, Target: TargetSelf},
		},
	}
}

// yamlDomainFile wraps the YAML top-level key.
type yamlDomainFile struct {
	Domain *Domain `yaml:"domain"`
}

// LoadDomains reads all *.yaml files from dir and returns parsed Domains in
// file name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns error if any YAML file fails to parse or validate, or
// uses fields the Domain does not define.
// Postcondition: returns (nil, nil) if dir contains no .yaml files.
func LoadDomains(dir string) ([]*Domain, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadDomains: reading %q: %w", dir, err)
	}
	var domains []*Domain
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: reading %s: %w", e.Name(), err)
		}
		var f yamlDomainFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: parsing %s: %w", e.Name(), err)
		}
		if f.Domain == nil {
			return nil, fmt.Errorf("ai.LoadDomains: %s missing top-level 'domain' key", e.Name())
		}
		if err := f.Domain.Validate(); err != nil {
			return nil, fmt.Errorf("ai.LoadDomains: %s: %w", e.Name(), err)
		}
		domains = append(domains, f.Domain)
	}
	return domains, nil
}
