// Package config provides Viper-based configuration loading for the simulation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RoomsConfig holds room-and-corridor generator settings.
type RoomsConfig struct {
	MaxRooms int `mapstructure:"max_rooms"`
	MinSize  int `mapstructure:"min_size"`
	MaxSize  int `mapstructure:"max_size"`
	Attempts int `mapstructure:"attempts"`
}

// CaveConfig holds cellular-automaton generator settings.
type CaveConfig struct {
	FillProbability float64 `mapstructure:"fill_probability"`
	Iterations      int     `mapstructure:"iterations"`
	DeathThreshold  int     `mapstructure:"death_threshold"`
	BirthThreshold  int     `mapstructure:"birth_threshold"`
}

// BSPConfig holds binary-space-partition generator settings.
type BSPConfig struct {
	MaxDepth     int `mapstructure:"max_depth"`
	MinPartition int `mapstructure:"min_partition"`
	MinRoomSize  int `mapstructure:"min_room_size"`
}

// LevelConfig selects and parameterizes the level generator.
type LevelConfig struct {
	// Algorithm is one of "rooms", "cave", "bsp".
	Algorithm string `mapstructure:"algorithm"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	// Seed fixes the random source; 0 selects a cryptographic source.
	Seed  int64       `mapstructure:"seed"`
	Rooms RoomsConfig `mapstructure:"rooms"`
	Cave  CaveConfig  `mapstructure:"cave"`
	BSP   BSPConfig   `mapstructure:"bsp"`
}

// VisionConfig holds the player's base sight radius.
type VisionConfig struct {
	Radius int `mapstructure:"radius"`
	// Bonus is added to Radius, standing in for upgrades.
	Bonus int `mapstructure:"bonus"`
}

// PathfindingConfig bounds agent path searches.
type PathfindingConfig struct {
	MaxIterations int `mapstructure:"max_iterations"`
}

// CombatConfig holds the attack formula constants.
type CombatConfig struct {
	CritChance     float64 `mapstructure:"crit_chance"`
	CritMultiplier float64 `mapstructure:"crit_multiplier"`
	VarianceMin    float64 `mapstructure:"variance_min"`
	VarianceMax    float64 `mapstructure:"variance_max"`
}

// PlayerConfig holds the player's starting stats.
type PlayerConfig struct {
	Name         string  `mapstructure:"name"`
	HP           int     `mapstructure:"hp"`
	Attack       int     `mapstructure:"attack"`
	Defense      int     `mapstructure:"defense"`
	Element      string  `mapstructure:"element"`
	StatusChance float64 `mapstructure:"status_chance"`
}

// AgentsConfig holds population and content settings.
type AgentsConfig struct {
	Count int `mapstructure:"count"`
	// MinSpawnDistance is the minimum Manhattan distance from the player.
	MinSpawnDistance int    `mapstructure:"min_spawn_distance"`
	TemplatesDir     string `mapstructure:"templates_dir"`
	// DomainsDir, ConditionsDir and ScriptsDir are optional; empty uses the
	// built-in hunter domain, the default conditions, and no scripts.
	DomainsDir             string `mapstructure:"domains_dir"`
	ConditionsDir          string `mapstructure:"conditions_dir"`
	ScriptsDir             string `mapstructure:"scripts_dir"`
	ScriptInstructionLimit int    `mapstructure:"script_instruction_limit"`
}

// RunConfig bounds a headless run.
type RunConfig struct {
	// MaxTurns stops the run after this many player turns; 0 means unbounded.
	MaxTurns int `mapstructure:"max_turns"`
	// TurnDelay pauses between player turns.
	TurnDelay time.Duration `mapstructure:"turn_delay"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Level       LevelConfig       `mapstructure:"level"`
	Vision      VisionConfig      `mapstructure:"vision"`
	Pathfinding PathfindingConfig `mapstructure:"pathfinding"`
	Combat      CombatConfig      `mapstructure:"combat"`
	Player      PlayerConfig      `mapstructure:"player"`
	Agents      AgentsConfig      `mapstructure:"agents"`
	Run         RunConfig         `mapstructure:"run"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	errs = append(errs, validateLogging(c.Logging)...)
	errs = append(errs, validateLevel(c.Level)...)
	errs = append(errs, validateVision(c.Vision)...)
	errs = append(errs, validatePathfinding(c.Pathfinding)...)
	errs = append(errs, validateCombat(c.Combat)...)
	errs = append(errs, validatePlayer(c.Player)...)
	errs = append(errs, validateAgents(c.Agents)...)
	errs = append(errs, validateRun(c.Run)...)

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) []string {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	return errs
}

func validateLevel(l LevelConfig) []string {
	var errs []string
	validAlgorithms := map[string]bool{"rooms": true, "cave": true, "bsp": true}
	if !validAlgorithms[l.Algorithm] {
		errs = append(errs, fmt.Sprintf("level.algorithm must be one of [rooms, cave, bsp], got %q", l.Algorithm))
	}
	if l.Width < 3 || l.Height < 3 {
		errs = append(errs, fmt.Sprintf("level dimensions must be at least 3x3, got %dx%d", l.Width, l.Height))
	}
	r := l.Rooms
	if r.MaxRooms < 1 {
		errs = append(errs, fmt.Sprintf("level.rooms.max_rooms must be >= 1, got %d", r.MaxRooms))
	}
	if r.MinSize < 3 || r.MaxSize < r.MinSize {
		errs = append(errs, fmt.Sprintf("level.rooms sizes must satisfy 3 <= min_size <= max_size, got %d..%d", r.MinSize, r.MaxSize))
	}
	if r.Attempts < 0 {
		errs = append(errs, fmt.Sprintf("level.rooms.attempts must be >= 0, got %d", r.Attempts))
	}
	cv := l.Cave
	if cv.FillProbability < 0 || cv.FillProbability > 1 {
		errs = append(errs, fmt.Sprintf("level.cave.fill_probability must be in [0,1], got %v", cv.FillProbability))
	}
	if cv.Iterations < 0 {
		errs = append(errs, fmt.Sprintf("level.cave.iterations must be >= 0, got %d", cv.Iterations))
	}
	if cv.DeathThreshold < 0 || cv.DeathThreshold > 8 || cv.BirthThreshold < 0 || cv.BirthThreshold > 8 {
		errs = append(errs, "level.cave thresholds must be in [0,8]")
	}
	b := l.BSP
	if b.MaxDepth < 0 {
		errs = append(errs, fmt.Sprintf("level.bsp.max_depth must be >= 0, got %d", b.MaxDepth))
	}
	if b.MinRoomSize < 3 || b.MinPartition < b.MinRoomSize {
		errs = append(errs, fmt.Sprintf("level.bsp sizes must satisfy 3 <= min_room_size <= min_partition, got %d and %d", b.MinRoomSize, b.MinPartition))
	}
	return errs
}

func validateVision(v VisionConfig) []string {
	if v.Radius < 0 {
		return []string{fmt.Sprintf("vision.radius must be >= 0, got %d", v.Radius)}
	}
	return nil
}

func validatePathfinding(p PathfindingConfig) []string {
	if p.MaxIterations < 1 {
		return []string{fmt.Sprintf("pathfinding.max_iterations must be >= 1, got %d", p.MaxIterations)}
	}
	return nil
}

func validateCombat(c CombatConfig) []string {
	var errs []string
	if c.CritChance < 0 || c.CritChance > 1 {
		errs = append(errs, fmt.Sprintf("combat.crit_chance must be in [0,1], got %v", c.CritChance))
	}
	if c.CritMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("combat.crit_multiplier must be >= 1, got %v", c.CritMultiplier))
	}
	if c.VarianceMin <= 0 || c.VarianceMax < c.VarianceMin {
		errs = append(errs, fmt.Sprintf("combat variance must satisfy 0 < variance_min <= variance_max, got %v..%v", c.VarianceMin, c.VarianceMax))
	}
	return errs
}

func validatePlayer(p PlayerConfig) []string {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "player.name must not be empty")
	}
	if p.HP < 1 {
		errs = append(errs, fmt.Sprintf("player.hp must be >= 1, got %d", p.HP))
	}
	if p.Attack < 0 || p.Defense < 0 {
		errs = append(errs, "player.attack and player.defense must be >= 0")
	}
	validElements := map[string]bool{"": true, "none": true, "fire": true, "frost": true, "poison": true, "shock": true}
	if !validElements[p.Element] {
		errs = append(errs, fmt.Sprintf("player.element must be one of [none, fire, frost, poison, shock], got %q", p.Element))
	}
	if p.StatusChance < 0 || p.StatusChance > 1 {
		errs = append(errs, fmt.Sprintf("player.status_chance must be in [0,1], got %v", p.StatusChance))
	}
	return errs
}

func validateAgents(a AgentsConfig) []string {
	var errs []string
	if a.Count < 0 {
		errs = append(errs, fmt.Sprintf("agents.count must be >= 0, got %d", a.Count))
	}
	if a.MinSpawnDistance < 0 {
		errs = append(errs, fmt.Sprintf("agents.min_spawn_distance must be >= 0, got %d", a.MinSpawnDistance))
	}
	if a.Count > 0 && a.TemplatesDir == "" {
		errs = append(errs, "agents.templates_dir must not be empty when agents.count > 0")
	}
	if a.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("agents.script_instruction_limit must be >= 0, got %d", a.ScriptInstructionLimit))
	}
	return errs
}

func validateRun(r RunConfig) []string {
	var errs []string
	if r.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("run.max_turns must be >= 0, got %d", r.MaxTurns))
	}
	if r.TurnDelay < 0 {
		errs = append(errs, "run.turn_delay must not be negative")
	}
	return errs
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DELVE_ prefix
	v.SetEnvPrefix("DELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration produced by an empty file.
//
// Postcondition: The result passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: unmarshalling defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("level.algorithm", "rooms")
	v.SetDefault("level.width", 80)
	v.SetDefault("level.height", 40)
	v.SetDefault("level.seed", 0)
	v.SetDefault("level.rooms.max_rooms", 12)
	v.SetDefault("level.rooms.min_size", 5)
	v.SetDefault("level.rooms.max_size", 11)
	v.SetDefault("level.rooms.attempts", 60)
	v.SetDefault("level.cave.fill_probability", 0.45)
	v.SetDefault("level.cave.iterations", 5)
	v.SetDefault("level.cave.death_threshold", 5)
	v.SetDefault("level.cave.birth_threshold", 4)
	v.SetDefault("level.bsp.max_depth", 4)
	v.SetDefault("level.bsp.min_partition", 7)
	v.SetDefault("level.bsp.min_room_size", 4)

	v.SetDefault("vision.radius", 8)
	v.SetDefault("vision.bonus", 0)

	v.SetDefault("pathfinding.max_iterations", 4096)

	v.SetDefault("combat.crit_chance", 0.10)
	v.SetDefault("combat.crit_multiplier", 2.0)
	v.SetDefault("combat.variance_min", 0.85)
	v.SetDefault("combat.variance_max", 1.15)

	v.SetDefault("player.name", "Delver")
	v.SetDefault("player.hp", 30)
	v.SetDefault("player.attack", 6)
	v.SetDefault("player.defense", 3)
	v.SetDefault("player.element", "")
	v.SetDefault("player.status_chance", 0.0)

	v.SetDefault("agents.count", 8)
	v.SetDefault("agents.min_spawn_distance", 6)
	v.SetDefault("agents.templates_dir", "content/agents")
	v.SetDefault("agents.domains_dir", "")
	v.SetDefault("agents.conditions_dir", "")
	v.SetDefault("agents.scripts_dir", "")
	v.SetDefault("agents.script_instruction_limit", 100000)

	v.SetDefault("run.max_turns", 500)
	v.SetDefault("run.turn_delay", "0s")
}
