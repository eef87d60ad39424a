package autoplay_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/autoplay"
	"github.com/cory-johannsen/delve/internal/game/ai"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/fov"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/pathfind"
	"github.com/cory-johannsen/delve/internal/game/turn"
)

type zeroSource struct{}

func (zeroSource) Intn(int) int      { return 0 }
func (zeroSource) Float64() float64 { return 0.5 }

type placed struct {
	pos grid.Point
	hp  int
	atk int
}

func newGame(t *testing.T, rows []string, player grid.Point, playerHP, playerAtk int, agents ...placed) *turn.Game {
	t.Helper()
	logger := zap.NewNop()
	roster := npc.NewRoster()
	for _, a := range agents {
		tmpl := &npc.Template{ID: "rat", Name: "Rat", HP: "1d4", Attack: a.atk, Defense: 0, SightRadius: 8}
		_, err := roster.Spawn(tmpl, a.pos, a.hp)
		require.NoError(t, err)
	}
	planners := ai.NewRegistry(ai.DefaultDomainID)
	require.NoError(t, planners.Register(ai.DefaultDomain(), ai.NopCaller{}))
	return turn.NewGame(turn.Deps{
		Grid: grid.MustParse(rows...),
		Player: &combat.Combatant{
			ID: turn.PlayerID, Kind: combat.KindPlayer, Name: "Delver",
			Pos: player, MaxHP: playerHP, CurrentHP: playerHP, Attack: playerAtk, Defense: 0,
		},
		Roster:       roster,
		Source:       zeroSource{},
		Finder:       pathfind.NewFinder(0, logger),
		Resolver:     combat.NewResolver(combat.Rules{CritMultiplier: 2, VarianceMin: 1, VarianceMax: 1}, logger),
		Planners:     planners,
		Conditions:   condition.DefaultRegistry(),
		VisionRadius: 8,
		Logger:       logger,
	})
}

func newPolicy() *autoplay.Policy {
	return autoplay.NewPolicy(pathfind.NewFinder(0, zap.NewNop()), zap.NewNop())
}

func TestExplore_HeadsForUnknownGround(t *testing.T) {
	g := grid.MustParse("....................")
	fov.Update(g, grid.Point{X: 0, Y: 0}, 8)
	next, ok := autoplay.Explore(g, grid.Point{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 1, Y: 0}, next)
}

func TestExplore_NothingLeft(t *testing.T) {
	g := grid.MustParse(
		"...",
		"...",
	)
	fov.Update(g, grid.Point{X: 0, Y: 0}, 8)
	_, ok := autoplay.Explore(g, grid.Point{X: 0, Y: 0})
	assert.False(t, ok)
}

func TestExplore_IgnoresUnknownCells(t *testing.T) {
	// The unknown cells beyond the wall cannot be reached through known ones.
	g := grid.MustParse("..#..")
	fov.Update(g, grid.Point{X: 0, Y: 0}, 8)
	_, ok := autoplay.Explore(g, grid.Point{X: 0, Y: 0})
	assert.False(t, ok)
}

func TestPolicy_FightsAdjacentAgent(t *testing.T) {
	g := newGame(t, []string{"....."}, grid.Point{X: 1, Y: 0}, 10, 5, placed{grid.Point{X: 2, Y: 0}, 5, 1})
	d := newPolicy().Decide(g)
	assert.Equal(t, autoplay.IntentFight, d.Intent)
	assert.Equal(t, "rat-1", d.Target)
	assert.Equal(t, turn.Move(grid.East), d.Action)
}

func TestPolicy_ChasesNearestVisibleAgent(t *testing.T) {
	g := newGame(t, []string{"........"}, grid.Point{X: 3, Y: 0}, 10, 5,
		placed{grid.Point{X: 7, Y: 0}, 5, 1},
		placed{grid.Point{X: 0, Y: 0}, 5, 1},
	)
	d := newPolicy().Decide(g)
	assert.Equal(t, autoplay.IntentChase, d.Intent)
	assert.Equal(t, "rat-2", d.Target)
	assert.Equal(t, turn.Move(grid.West), d.Action)
}

func TestPolicy_IdlesWhenNothingToDo(t *testing.T) {
	g := newGame(t, []string{"...", "..."}, grid.Point{X: 0, Y: 0}, 10, 5)
	d := newPolicy().Decide(g)
	assert.Equal(t, autoplay.IntentIdle, d.Intent)
	assert.Equal(t, turn.Wait(), d.Action)
}

func TestRunner_ClearsLevel(t *testing.T) {
	g := newGame(t, []string{"......"}, grid.Point{X: 0, Y: 0}, 10, 20, placed{grid.Point{X: 3, Y: 0}, 4, 1})
	var out bytes.Buffer
	r := autoplay.NewRunner(g, newPolicy(), autoplay.RunnerConfig{MaxTurns: 20, Out: &out}, zap.NewNop())
	require.NoError(t, r.Start())

	s := r.Summary()
	assert.Equal(t, autoplay.OutcomeCleared, s.Outcome)
	assert.Equal(t, 1, s.Kills)
	assert.Equal(t, 2, s.Turns)
	assert.Equal(t, 20, s.DamageOut)
	assert.Equal(t, g.ID(), s.GameID)
	assert.Contains(t, out.String(), "rat-1 dies")
	assert.Contains(t, out.String(), g.Render())
}

func TestRunner_TurnLimit(t *testing.T) {
	g := newGame(t, []string{"...#..."}, grid.Point{X: 0, Y: 0}, 10, 5, placed{grid.Point{X: 6, Y: 0}, 4, 1})
	r := autoplay.NewRunner(g, newPolicy(), autoplay.RunnerConfig{MaxTurns: 3}, zap.NewNop())
	require.NoError(t, r.Start())
	s := r.Summary()
	assert.Equal(t, autoplay.OutcomeTurnLimit, s.Outcome)
	assert.Equal(t, 3, s.Turns)
	assert.Equal(t, 0, s.Kills)
}

func TestRunner_PlayerDies(t *testing.T) {
	g := newGame(t, []string{"..."}, grid.Point{X: 0, Y: 0}, 1, 1, placed{grid.Point{X: 1, Y: 0}, 50, 10})
	r := autoplay.NewRunner(g, newPolicy(), autoplay.RunnerConfig{}, zap.NewNop())
	require.NoError(t, r.Start())
	s := r.Summary()
	assert.Equal(t, autoplay.OutcomeDied, s.Outcome)
	assert.Equal(t, 1, s.Turns)
	assert.Equal(t, 0, s.PlayerHP)
	assert.Equal(t, 10, s.DamageIn)
	assert.True(t, g.Over())
}

func TestRunner_StopBeforeStart(t *testing.T) {
	g := newGame(t, []string{"...#..."}, grid.Point{X: 0, Y: 0}, 10, 5, placed{grid.Point{X: 6, Y: 0}, 4, 1})
	r := autoplay.NewRunner(g, newPolicy(), autoplay.RunnerConfig{}, zap.NewNop())
	r.Stop()
	r.Stop()
	require.NoError(t, r.Start())
	assert.Equal(t, autoplay.OutcomeStopped, r.Summary().Outcome)
	assert.Equal(t, 0, r.Summary().Turns)
}

func TestNewPolicyAndRunner_Panics(t *testing.T) {
	assert.Panics(t, func() { autoplay.NewPolicy(nil, zap.NewNop()) })
	assert.Panics(t, func() { autoplay.NewPolicy(pathfind.NewFinder(0, zap.NewNop()), nil) })
	assert.Panics(t, func() { autoplay.NewRunner(nil, newPolicy(), autoplay.RunnerConfig{}, zap.NewNop()) })
}

// On an open corridor exploration always walks toward the unknown end.
func TestPropertyExplore_Corridor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(12, 40).Draw(t, "width")
		radius := rapid.IntRange(1, 8).Draw(t, "radius")
		row := make([]byte, width)
		for i := range row {
			row[i] = '.'
		}
		g := grid.MustParse(string(row))
		fov.Update(g, grid.Point{X: 0, Y: 0}, radius)
		next, ok := autoplay.Explore(g, grid.Point{X: 0, Y: 0})
		if !ok || next != (grid.Point{X: 1, Y: 0}) {
			t.Fatalf("explore from corridor start = %v %v", next, ok)
		}
	})
}
