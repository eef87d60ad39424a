package turn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/turn"
)

func contentConfig() config.Config {
	cfg := config.Default()
	cfg.Level.Width = 40
	cfg.Level.Height = 24
	cfg.Agents.Count = 4
	cfg.Agents.TemplatesDir = "../../../content/agents"
	cfg.Agents.DomainsDir = "../../../content/domains"
	cfg.Agents.ConditionsDir = "../../../content/conditions"
	cfg.Agents.ScriptsDir = "../../../content/scripts"
	return cfg
}

func TestSetup_WithShippedContent(t *testing.T) {
	for _, alg := range []string{"rooms", "cave", "bsp"} {
		t.Run(alg, func(t *testing.T) {
			cfg := contentConfig()
			cfg.Level.Algorithm = alg
			require.NoError(t, cfg.Validate())

			g, err := turn.Setup(cfg, dice.NewSeededSource(7), zap.NewNop())
			require.NoError(t, err)
			defer g.Close()

			assert.Equal(t, turn.PlayerTurn, g.Phase())
			assert.Equal(t, 1, g.Turn())
			assert.True(t, g.Grid().IsWalkable(g.Player().Pos))
			assert.Equal(t, cfg.Player.HP, g.Player().CurrentHP)
			assert.LessOrEqual(t, g.Roster().Len(), cfg.Agents.Count)
			for _, a := range g.Roster().Living() {
				assert.True(t, g.Grid().IsWalkable(a.Pos))
				assert.GreaterOrEqual(t, a.Pos.Manhattan(g.Player().Pos), cfg.Agents.MinSpawnDistance)
			}
			assert.True(t, g.Grid().Cell(g.Player().Pos).Visible)
		})
	}
}

func TestSetup_NoAgents(t *testing.T) {
	cfg := config.Default()
	cfg.Agents.Count = 0
	cfg.Agents.TemplatesDir = ""
	g, err := turn.Setup(cfg, dice.NewSeededSource(1), zap.NewNop())
	require.NoError(t, err)
	defer g.Close()
	assert.Equal(t, 0, g.Roster().Len())

	res, err := g.Act(turn.Wait())
	require.NoError(t, err)
	assert.True(t, res.Consumed)
	assert.Equal(t, 2, g.Turn())
}

func TestSetup_Errors(t *testing.T) {
	cases := map[string]func(*config.Config){
		"bad algorithm":     func(c *config.Config) { c.Level.Algorithm = "maze" },
		"bad element":       func(c *config.Config) { c.Player.Element = "acid" },
		"bad combat rules":  func(c *config.Config) { c.Combat.CritMultiplier = 0.5 },
		"missing templates": func(c *config.Config) { c.Agents.TemplatesDir = "does/not/exist" },
		"missing domains":   func(c *config.Config) { c.Agents.DomainsDir = "does/not/exist" },
		"missing scripts":   func(c *config.Config) { c.Agents.ScriptsDir = "does/not/exist" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := contentConfig()
			mutate(&cfg)
			_, err := turn.Setup(cfg, dice.NewSeededSource(1), zap.NewNop())
			assert.Error(t, err)
		})
	}
}

type snapshot struct {
	render string
	player grid.Point
	agents map[string]grid.Point
}

func playSeed(t *rapid.T, seed int64, turns int) snapshot {
	g, err := turn.Setup(contentConfig(), dice.NewSeededSource(seed), zap.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer g.Close()
	dirs := grid.Cardinals
	for i := 0; i < turns && !g.Over(); i++ {
		if _, err := g.Act(turn.Move(dirs[i%len(dirs)])); err != nil {
			t.Fatalf("act: %v", err)
		}
	}
	s := snapshot{render: g.Render(), player: g.Player().Pos, agents: map[string]grid.Point{}}
	for _, a := range g.Roster().Living() {
		s.agents[a.ID] = a.Pos
	}
	return s
}

// The same seed and inputs always yield the same game.
func TestPropertySetup_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64Range(1, 1<<20).Draw(t, "seed")
		turns := rapid.IntRange(0, 12).Draw(t, "turns")
		a := playSeed(t, seed, turns)
		b := playSeed(t, seed, turns)
		if a.render != b.render || a.player != b.player {
			t.Fatalf("seed %d diverged:\n%s\n---\n%s", seed, a.render, b.render)
		}
		if len(a.agents) != len(b.agents) {
			t.Fatalf("seed %d: agent counts %d vs %d", seed, len(a.agents), len(b.agents))
		}
		for id, p := range a.agents {
			if b.agents[id] != p {
				t.Fatalf("seed %d: agent %s at %s vs %s", seed, id, p, b.agents[id])
			}
		}
	})
}
