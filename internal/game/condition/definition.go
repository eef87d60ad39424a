// Package condition models timed status effects such as burning or stunned.
package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Duration types.
const (
	DurationTurns     = "turns"
	DurationPermanent = "permanent"
)

// ConditionDef is the static definition of a condition, loaded from YAML.
type ConditionDef struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DurationType string `yaml:"duration_type"` // "turns" | "permanent"

	// Duration is the turn count used when the condition is inflicted by a hit.
	Duration  int `yaml:"duration"`
	MaxStacks int `yaml:"max_stacks"` // 0 = unstackable

	DamagePerTurn   int      `yaml:"damage_per_turn"`
	AttackPenalty   int      `yaml:"attack_penalty"`
	DefensePenalty  int      `yaml:"defense_penalty"`
	VisionPenalty   int      `yaml:"vision_penalty"`
	SkipsTurn       bool     `yaml:"skips_turn"`
	RestrictActions []string `yaml:"restrict_actions"`
}

// Validate checks the definition for internal consistency.
//
// Postcondition: Returns nil iff ID is non-empty, DurationType is known,
// turn-based conditions have a positive Duration, and no count is negative.
func (d *ConditionDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	switch d.DurationType {
	case DurationTurns:
		if d.Duration <= 0 {
			errs = append(errs, fmt.Errorf("duration must be > 0 for %q conditions, got %d", DurationTurns, d.Duration))
		}
	case DurationPermanent:
	default:
		errs = append(errs, fmt.Errorf("duration_type must be %q or %q, got %q", DurationTurns, DurationPermanent, d.DurationType))
	}
	if d.MaxStacks < 0 || d.DamagePerTurn < 0 || d.AttackPenalty < 0 || d.DefensePenalty < 0 || d.VisionPenalty < 0 {
		errs = append(errs, errors.New("max_stacks and penalties must not be negative"))
	}
	return errors.Join(errs...)
}

// ApplyDuration returns the duration argument for ActiveSet.Apply: Duration for
// turn-based conditions, -1 for permanent ones.
func (d *ConditionDef) ApplyDuration() int {
	if d.DurationType == DurationPermanent {
		return -1
	}
	return d.Duration
}

// Registry holds all known ConditionDefs keyed by ID.
type Registry struct {
	defs map[string]*ConditionDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ConditionDef)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *ConditionDef) {
	r.defs[def.ID] = def
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered ConditionDefs sorted by ID.
func (r *Registry) All() []*ConditionDef {
	out := make([]*ConditionDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultRegistry returns a Registry holding the conditions inflicted by the
// four elements.
//
// Postcondition: burning, chilled, poisoned and stunned are registered.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, def := range []*ConditionDef{
		{
			ID: "burning", Name: "Burning", Description: "Flames lick at you.",
			DurationType: DurationTurns, Duration: 3, MaxStacks: 3, DamagePerTurn: 2,
		},
		{
			ID: "chilled", Name: "Chilled", Description: "Frost slows your limbs.",
			DurationType: DurationTurns, Duration: 3, AttackPenalty: 2, DefensePenalty: 2,
		},
		{
			ID: "poisoned", Name: "Poisoned", Description: "Venom blurs your sight.",
			DurationType: DurationTurns, Duration: 4, MaxStacks: 5, DamagePerTurn: 1, VisionPenalty: 2,
		},
		{
			ID: "stunned", Name: "Stunned", Description: "You cannot act.",
			DurationType: DurationTurns, Duration: 2, SkipsTurn: true, RestrictActions: []string{"move"},
		},
	} {
		reg.Register(def)
	}
	return reg
}

// LoadDirectory reads every *.yaml file in dir, parses and validates each as
// a ConditionDef, and returns a populated Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def ConditionDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
