package turn

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/ai"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/levelgen"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/pathfind"
	"github.com/cory-johannsen/delve/internal/scripting"
)

// LevelParams converts the level section of the configuration into generator parameters.
func LevelParams(c config.LevelConfig) levelgen.Params {
	return levelgen.Params{
		Rooms: levelgen.RoomsParams{
			MaxRooms: c.Rooms.MaxRooms,
			MinSize:  c.Rooms.MinSize,
			MaxSize:  c.Rooms.MaxSize,
			Attempts: c.Rooms.Attempts,
		},
		Cave: levelgen.CaveParams{
			FillProbability: c.Cave.FillProbability,
			Iterations:      c.Cave.Iterations,
			DeathThreshold:  c.Cave.DeathThreshold,
			BirthThreshold:  c.Cave.BirthThreshold,
		},
		BSP: levelgen.BSPParams{
			MaxDepth:     c.BSP.MaxDepth,
			MinPartition: c.BSP.MinPartition,
			MinRoomSize:  c.BSP.MinRoomSize,
		},
	}
}

// CombatRules converts the combat section of the configuration.
func CombatRules(c config.CombatConfig) combat.Rules {
	return combat.Rules{
		CritChance:     c.CritChance,
		CritMultiplier: c.CritMultiplier,
		VarianceMin:    c.VarianceMin,
		VarianceMax:    c.VarianceMax,
	}
}

// Setup builds a ready-to-play Game: it generates the level, places the player
// on a random walkable cell, loads content, spawns agents away from the
// player, and computes the initial view. Draws from src happen in that order.
//
// Precondition: cfg must pass Validate; src and logger must be non-nil.
// Postcondition: Returns a Game in PlayerTurn, or a wrapped error for content
// and placement failures. Fewer agents than requested is not an error.
func Setup(cfg config.Config, src dice.Source, logger *zap.Logger) (*Game, error) {
	alg, err := levelgen.ParseAlgorithm(cfg.Level.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	rules := CombatRules(cfg.Combat)
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("setup: combat rules: %w", err)
	}
	elem, err := combat.ParseElement(cfg.Player.Element)
	if err != nil {
		return nil, fmt.Errorf("setup: player: %w", err)
	}

	conditions := condition.DefaultRegistry()
	if cfg.Agents.ConditionsDir != "" {
		if conditions, err = condition.LoadDirectory(cfg.Agents.ConditionsDir); err != nil {
			return nil, fmt.Errorf("setup: conditions: %w", err)
		}
	}
	var templates []*npc.Template
	if cfg.Agents.Count > 0 {
		if templates, err = npc.LoadTemplates(cfg.Agents.TemplatesDir); err != nil {
			return nil, fmt.Errorf("setup: templates: %w", err)
		}
	}
	var domains []*ai.Domain
	if cfg.Agents.DomainsDir != "" {
		if domains, err = ai.LoadDomains(cfg.Agents.DomainsDir); err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	scripts := scripting.NewManager(dice.NewLoggedRoller(src, logger), logger, cfg.Agents.ScriptInstructionLimit)
	ok := false
	defer func() {
		if !ok {
			scripts.Close()
		}
	}()
	if cfg.Agents.ScriptsDir != "" {
		if err := scripts.LoadGlobal(cfg.Agents.ScriptsDir); err != nil {
			return nil, fmt.Errorf("setup: scripts: %w", err)
		}
	}
	planners := ai.NewRegistry(ai.DefaultDomainID)
	for _, d := range domains {
		if err := planners.Register(d, scripts); err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
	}
	if !planners.Has(ai.DefaultDomainID) {
		if err := planners.Register(ai.DefaultDomain(), ai.NopCaller{}); err != nil {
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	level, err := levelgen.NewBuilder(LevelParams(cfg.Level), logger).Build(alg, cfg.Level.Width, cfg.Level.Height, src)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	start, found := level.RandomCell(src, nil)
	if !found {
		return nil, fmt.Errorf("setup: no walkable cell for the player")
	}
	player := &combat.Combatant{
		ID:           PlayerID,
		Kind:         combat.KindPlayer,
		Name:         cfg.Player.Name,
		Pos:          start,
		MaxHP:        cfg.Player.HP,
		CurrentHP:    cfg.Player.HP,
		Attack:       cfg.Player.Attack,
		Defense:      cfg.Player.Defense,
		Element:      elem,
		StatusChance: cfg.Player.StatusChance,
	}

	roster := npc.NewRoster()
	spawned, err := npc.Populate(roster, level, templates, cfg.Agents.Count, start, cfg.Agents.MinSpawnDistance, src)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if len(spawned) < cfg.Agents.Count {
		logger.Info("placed fewer agents than requested",
			zap.Int("requested", cfg.Agents.Count),
			zap.Int("placed", len(spawned)),
		)
	}

	g := NewGame(Deps{
		Grid:         level,
		Player:       player,
		Roster:       roster,
		Source:       src,
		Finder:       pathfind.NewFinder(cfg.Pathfinding.MaxIterations, logger),
		Resolver:     combat.NewResolver(rules, logger),
		Planners:     planners,
		Conditions:   conditions,
		Scripts:      scripts,
		VisionRadius: cfg.Vision.Radius,
		VisionBonus:  cfg.Vision.Bonus,
		Logger:       logger,
	})
	ok = true
	g.logger.Info("game ready",
		zap.String("algorithm", string(alg)),
		zap.Int("width", level.Width()),
		zap.Int("height", level.Height()),
		zap.Stringer("start", start),
		zap.Int("agents", len(spawned)),
	)
	return g, nil
}
