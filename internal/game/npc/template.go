// Package npc provides agent template definitions and the live agent roster.
package npc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Template defines a reusable agent archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Glyph is the single character drawn for this agent in map snapshots.
	Glyph string `yaml:"glyph"`
	// HP is a dice expression rolled once per spawn, e.g. "2d6+4".
	HP           string  `yaml:"hp"`
	Attack       int     `yaml:"attack"`
	Defense      int     `yaml:"defense"`
	Element      string  `yaml:"element"`
	StatusChance float64 `yaml:"status_chance"`
	SightRadius  int     `yaml:"sight_radius"`
	AIDomain     string  `yaml:"ai_domain"` // HTN domain ID; empty = default hunter domain
	// Weight is the relative spawn frequency; 0 is treated as 1.
	Weight      int      `yaml:"weight"`
	Taunts      []string `yaml:"taunts"`
	TauntChance float64  `yaml:"taunt_chance"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, HP is a valid dice
// expression, Attack and Defense are >= 0, Element is known, both chances are
// in [0,1], SightRadius >= 1, Weight >= 0, and Glyph is at most one character;
// returns an error on the first violation otherwise.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("npc template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("npc template %q: name must not be empty", t.ID)
	}
	if _, err := dice.Parse(t.HP); err != nil {
		return fmt.Errorf("npc template %q: hp: %w", t.ID, err)
	}
	if t.Attack < 0 || t.Defense < 0 {
		return fmt.Errorf("npc template %q: attack and defense must be >= 0", t.ID)
	}
	if _, err := combat.ParseElement(t.Element); err != nil {
		return fmt.Errorf("npc template %q: %w", t.ID, err)
	}
	if t.StatusChance < 0 || t.StatusChance > 1 {
		return fmt.Errorf("npc template %q: status_chance must be in [0,1]", t.ID)
	}
	if t.TauntChance < 0 || t.TauntChance > 1 {
		return fmt.Errorf("npc template %q: taunt_chance must be in [0,1]", t.ID)
	}
	if t.SightRadius < 1 {
		return fmt.Errorf("npc template %q: sight_radius must be >= 1", t.ID)
	}
	if t.Weight < 0 {
		return fmt.Errorf("npc template %q: weight must be >= 0", t.ID)
	}
	if utf8.RuneCountInString(t.Glyph) > 1 {
		return fmt.Errorf("npc template %q: glyph %q must be a single character", t.ID, t.Glyph)
	}
	return nil
}

// GlyphRune returns the map glyph, defaulting to the first letter of the ID.
func (t *Template) GlyphRune() rune {
	if t.Glyph != "" {
		r, _ := utf8.DecodeRuneInString(t.Glyph)
		return r
	}
	r, _ := utf8.DecodeRuneInString(t.ID)
	return r
}

func (t *Template) weight() int {
	if t.Weight <= 0 {
		return 1
	}
	return t.Weight
}

// LoadTemplateFromBytes parses a single agent template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error. Unknown fields
// are rejected.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates
// in file name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
