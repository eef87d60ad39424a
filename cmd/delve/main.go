// Package main provides the headless delve binary: it generates a level,
// lets the autoplay policy run the player through it, and prints the event
// log, the final map, and a summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/autoplay"
	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/pathfind"
	"github.com/cory-johannsen/delve/internal/game/turn"
	"github.com/cory-johannsen/delve/internal/lifecycle"
	"github.com/cory-johannsen/delve/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/delve.yaml", "path to configuration file")
	seed := flag.Int64("seed", -1, "random seed; overrides level.seed when >= 0, 0 = cryptographic source")
	turns := flag.Int("turns", -1, "maximum player turns; overrides run.max_turns when >= 0")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed >= 0 {
		cfg.Level.Seed = *seed
	}
	if *turns >= 0 {
		cfg.Run.MaxTurns = *turns
	}

	base, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer base.Sync()
	logger := observability.ForRun(base, uuid.NewString(), cfg.Level.Seed)

	var src dice.Source
	if cfg.Level.Seed != 0 {
		src = dice.NewSeededSource(cfg.Level.Seed)
	} else {
		src = dice.NewCryptoSource()
	}

	game, err := turn.Setup(cfg, src, logger)
	if err != nil {
		logger.Fatal("setting up game", zap.Error(err))
	}
	defer game.Close()

	policy := autoplay.NewPolicy(pathfind.NewFinder(cfg.Pathfinding.MaxIterations, logger), logger)
	runner := autoplay.NewRunner(game, policy, autoplay.RunnerConfig{
		MaxTurns: cfg.Run.MaxTurns,
		Delay:    cfg.Run.TurnDelay,
		Out:      os.Stdout,
	}, logger)

	lc := lifecycle.New(logger)
	lc.Add("autoplay", runner)

	logger.Info("delve initialized",
		zap.String("config", *configPath),
		zap.String("algorithm", cfg.Level.Algorithm),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lc.Run(context.Background()); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(runner.Summary())
}
