package turn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/delve/internal/game/ai"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/pathfind"
	"github.com/cory-johannsen/delve/internal/game/turn"
	"github.com/cory-johannsen/delve/internal/scripting"
)

// fixedSource returns queued values, then zero for Intn and 0.5 for Float64.
type fixedSource struct {
	ints   []int
	floats []float64
}

func (s *fixedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *fixedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// flatRules removes variance and crits so damage equals the base formula.
func flatRules() combat.Rules {
	return combat.Rules{CritChance: 0, CritMultiplier: 2, VarianceMin: 1, VarianceMax: 1}
}

func ratTemplate() *npc.Template {
	return &npc.Template{ID: "rat", Name: "Rat", HP: "1d4", Attack: 3, Defense: 2, SightRadius: 8, AIDomain: ai.DefaultDomainID}
}

type fixture struct {
	game     *turn.Game
	roster   *npc.Roster
	player   *combat.Combatant
	planners *ai.Registry
	logs     *observer.ObservedLogs
}

type spawn struct {
	tmpl *npc.Template
	pos  grid.Point
	hp   int
}

func newFixture(t *testing.T, rows []string, playerPos grid.Point, spawns []spawn, scripts *scripting.Manager, extra ...*ai.Domain) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	roster := npc.NewRoster()
	for _, s := range spawns {
		_, err := roster.Spawn(s.tmpl, s.pos, s.hp)
		require.NoError(t, err)
	}
	planners := ai.NewRegistry(ai.DefaultDomainID)
	require.NoError(t, planners.Register(ai.DefaultDomain(), ai.NopCaller{}))
	for _, d := range extra {
		var caller ai.ScriptCaller = ai.NopCaller{}
		if scripts != nil {
			caller = scripts
		}
		require.NoError(t, planners.Register(d, caller))
	}
	player := &combat.Combatant{
		ID: turn.PlayerID, Kind: combat.KindPlayer, Name: "Delver",
		Pos: playerPos, MaxHP: 20, CurrentHP: 20, Attack: 6, Defense: 2,
	}
	g := turn.NewGame(turn.Deps{
		ID:           "test-game",
		Grid:         grid.MustParse(rows...),
		Player:       player,
		Roster:       roster,
		Source:       &fixedSource{},
		Finder:       pathfind.NewFinder(0, logger),
		Resolver:     combat.NewResolver(flatRules(), logger),
		Planners:     planners,
		Conditions:   condition.DefaultRegistry(),
		Scripts:      scripts,
		VisionRadius: 8,
		Logger:       logger,
	})
	return &fixture{game: g, roster: roster, player: player, planners: planners, logs: logs}
}

func kinds(events []turn.Event) []turn.EventKind {
	out := make([]turn.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func openRoom() []string {
	return []string{
		".....",
		".....",
		".....",
	}
}

func TestGame_BumpAttack(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, []spawn{{ratTemplate(), grid.Point{X: 2, Y: 1}, 10}}, nil)

	res, err := f.game.Act(turn.Move(grid.East))
	require.NoError(t, err)
	assert.True(t, res.Consumed)
	require.Equal(t, []turn.EventKind{turn.EventAttack, turn.EventAttack}, kinds(res.Events))

	// player: 6 - 2/2 = 5; rat: 3 - 2/2 = 2
	assert.Equal(t, turn.PlayerID, res.Events[0].Actor)
	assert.Equal(t, "rat-1", res.Events[0].Target)
	assert.Equal(t, 5, res.Events[0].Damage)
	assert.Equal(t, "rat-1", res.Events[1].Actor)
	assert.Equal(t, 2, res.Events[1].Damage)

	rat, ok := f.roster.Get("rat-1")
	require.True(t, ok)
	assert.Equal(t, 5, rat.CurrentHP)
	assert.Equal(t, grid.Point{X: 2, Y: 1}, rat.Pos, "the defender does not move")
	assert.Equal(t, grid.Point{X: 1, Y: 1}, f.player.Pos, "attacking does not move the player")
	assert.Equal(t, 18, f.player.CurrentHP)
	assert.Equal(t, turn.PlayerTurn, f.game.Phase())
	assert.Equal(t, 2, f.game.Turn())
	for _, e := range res.Events {
		assert.Equal(t, 1, e.Turn)
	}
}

func TestGame_KillRemovesAgent(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, []spawn{{ratTemplate(), grid.Point{X: 2, Y: 1}, 5}}, nil)

	res, err := f.game.Act(turn.Move(grid.East))
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventAttack, turn.EventKill}, kinds(res.Events))
	assert.Equal(t, 0, f.roster.Len())
	assert.False(t, f.roster.Occupied(grid.Point{X: 2, Y: 1}))

	res, err = f.game.Act(turn.Move(grid.East))
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventMove}, kinds(res.Events))
	assert.Equal(t, grid.Point{X: 2, Y: 1}, f.player.Pos)
}

func TestGame_BlockedMoveDoesNotConsume(t *testing.T) {
	rows := []string{
		".#",
		"..",
	}
	f := newFixture(t, rows, grid.Point{X: 0, Y: 0}, nil, nil)
	for _, dir := range []grid.Point{grid.North, grid.West, grid.East} {
		res, err := f.game.Act(turn.Move(dir))
		require.NoError(t, err)
		assert.False(t, res.Consumed)
		assert.Equal(t, []turn.EventKind{turn.EventBlocked}, kinds(res.Events))
	}
	assert.Equal(t, 1, f.game.Turn())
	assert.Equal(t, turn.PlayerTurn, f.game.Phase())
	assert.Equal(t, grid.Point{X: 0, Y: 0}, f.player.Pos)
}

func TestGame_MoveUpdatesVisibility(t *testing.T) {
	f := newFixture(t, []string{"...#...."}, grid.Point{X: 0, Y: 0}, nil, nil)
	assert.False(t, f.game.Grid().Cell(grid.Point{X: 4, Y: 0}).Discovered)
	assert.True(t, f.game.Visible().Has(grid.Point{X: 3, Y: 0}), "the wall itself is seen")

	for range 2 {
		_, err := f.game.Act(turn.Move(grid.East))
		require.NoError(t, err)
	}
	assert.Equal(t, grid.Point{X: 2, Y: 0}, f.player.Pos)
	assert.False(t, f.game.Visible().Has(grid.Point{X: 4, Y: 0}))
	assert.True(t, f.game.Grid().Cell(grid.Point{X: 0, Y: 0}).Discovered)
}

func TestGame_InvalidDirection(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, nil, nil)
	_, err := f.game.Act(turn.Move(grid.Point{X: 1, Y: 1}))
	assert.ErrorIs(t, err, turn.ErrInvalidAction)
	_, err = f.game.Act(turn.Action{Kind: turn.ActionKind(99)})
	assert.ErrorIs(t, err, turn.ErrInvalidAction)
	assert.Equal(t, turn.PlayerTurn, f.game.Phase())
}

func TestGame_LookIsFree(t *testing.T) {
	rows := []string{
		".....",
		"#####",
		".....",
	}
	spawns := []spawn{
		{ratTemplate(), grid.Point{X: 4, Y: 0}, 4},
		{ratTemplate(), grid.Point{X: 4, Y: 2}, 4},
	}
	f := newFixture(t, rows, grid.Point{X: 0, Y: 0}, spawns, nil)
	res, err := f.game.Act(turn.Look())
	require.NoError(t, err)
	assert.False(t, res.Consumed)
	assert.Empty(t, res.Events)
	require.Len(t, res.Visible, 1)
	assert.Equal(t, "rat-1", res.Visible[0].ID)
	assert.Equal(t, 1, f.game.Turn())
}

func TestGame_AgentApproaches(t *testing.T) {
	f := newFixture(t, []string{"........"}, grid.Point{X: 0, Y: 0}, []spawn{{ratTemplate(), grid.Point{X: 5, Y: 0}, 4}}, nil)
	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventMove}, kinds(res.Events))
	assert.Equal(t, grid.Point{X: 5, Y: 0}, res.Events[1].From)
	assert.Equal(t, grid.Point{X: 4, Y: 0}, res.Events[1].To)
}

func TestGame_AgentsActInSpawnOrder(t *testing.T) {
	spawns := []spawn{
		{ratTemplate(), grid.Point{X: 4, Y: 0}, 4},
		{ratTemplate(), grid.Point{X: 5, Y: 0}, 4},
	}
	f := newFixture(t, []string{"......"}, grid.Point{X: 0, Y: 0}, spawns, nil)
	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventMove, turn.EventMove}, kinds(res.Events))
	assert.Equal(t, "rat-1", res.Events[1].Actor)
	assert.Equal(t, grid.Point{X: 3, Y: 0}, res.Events[1].To)
	// rat-2 sees the cell rat-1 just vacated.
	assert.Equal(t, "rat-2", res.Events[2].Actor)
	assert.Equal(t, grid.Point{X: 4, Y: 0}, res.Events[2].To)
}

func singleActionDomain(id string, action ai.Action) *ai.Domain {
	return &ai.Domain{
		ID:        id,
		Tasks:     []*ai.Task{{ID: ai.RootTask}},
		Methods:   []*ai.Method{{TaskID: ai.RootTask, ID: "only", Subtasks: []string{"act"}}},
		Operators: []*ai.Operator{{ID: "act", Action: action, Target: ai.TargetPlayer}},
	}
}

func TestGame_BlockedAgentFallsBackToGreedy(t *testing.T) {
	// The only corridor is held by rat-1; rat-2 cannot path and steps greedily.
	rows := []string{
		"......",
		"#.####",
		"......",
	}
	holder := ratTemplate()
	holder.AIDomain = "hold"
	chaser := ratTemplate()
	chaser.AIDomain = "chase"
	spawns := []spawn{
		{holder, grid.Point{X: 1, Y: 1}, 4},
		{chaser, grid.Point{X: 3, Y: 2}, 4},
	}
	f := newFixture(t, rows, grid.Point{X: 5, Y: 0}, spawns, nil,
		singleActionDomain("hold", ai.ActionWait),
		singleActionDomain("chase", ai.ActionApproach),
	)
	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventWait, turn.EventMove}, kinds(res.Events))
	last := res.Events[2]
	assert.Equal(t, "rat-2", last.Actor)
	assert.Equal(t, grid.Point{X: 4, Y: 2}, last.To)
	assert.Equal(t, "greedy step", last.Message)
	assert.Equal(t, 1, f.logs.FilterMessage("no path").Len())
}

func TestGame_AgentWithNoWayForward(t *testing.T) {
	rows := []string{
		"...",
		"###",
		"...",
	}
	chaser := ratTemplate()
	chaser.AIDomain = "chase"
	f := newFixture(t, rows, grid.Point{X: 1, Y: 0}, []spawn{{chaser, grid.Point{X: 1, Y: 2}, 4}}, nil,
		singleActionDomain("chase", ai.ActionApproach))
	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventBlocked}, kinds(res.Events))
	assert.Equal(t, "no way forward", res.Events[1].Message)
	rat, ok := f.roster.Get("rat-1")
	require.True(t, ok)
	assert.Equal(t, grid.Point{X: 1, Y: 2}, rat.Pos)
}

func TestGame_PlayerDeathEndsGame(t *testing.T) {
	brute := ratTemplate()
	brute.Attack = 50
	spawns := []spawn{
		{brute, grid.Point{X: 2, Y: 1}, 4},
		{ratTemplate(), grid.Point{X: 0, Y: 1}, 4},
	}
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, spawns, nil)

	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventAttack, turn.EventPlayerDeath}, kinds(res.Events),
		"the second agent never acts")
	assert.Equal(t, 0, f.player.CurrentHP)
	assert.True(t, f.game.Over())
	assert.Equal(t, turn.GameOver, f.game.Phase())

	_, err = f.game.Act(turn.Wait())
	assert.ErrorIs(t, err, turn.ErrGameOver)
	_, err = f.game.Act(turn.Look())
	assert.ErrorIs(t, err, turn.ErrGameOver)
	assert.Equal(t, 1, f.logs.FilterMessage("player died").Len())
}

func TestGame_AgentInflictsStatus(t *testing.T) {
	imp := ratTemplate()
	imp.ID = "imp"
	imp.Element = "frost"
	imp.StatusChance = 1
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, []spawn{{imp, grid.Point{X: 2, Y: 1}, 4}}, nil)

	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventAttack, turn.EventStatus}, kinds(res.Events))
	assert.Equal(t, "chilled", res.Events[2].Status)
	assert.True(t, f.game.PlayerConditions().Has("chilled"))
}

func TestGame_KillingBlowInflictsNoStatus(t *testing.T) {
	yeti := ratTemplate()
	yeti.ID = "yeti"
	yeti.Attack = 50
	yeti.Element = "frost"
	yeti.StatusChance = 1
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, []spawn{{yeti, grid.Point{X: 2, Y: 1}, 4}}, nil)

	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventAttack, turn.EventPlayerDeath}, kinds(res.Events))
	assert.Empty(t, res.Events[1].Status)
	assert.False(t, f.game.PlayerConditions().Has("chilled"))
}

func TestGame_StunnedPlayerCannotMove(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, nil, nil)
	stunned, _ := condition.DefaultRegistry().Get("stunned")
	require.NoError(t, f.game.PlayerConditions().Apply(stunned, 1, stunned.ApplyDuration()))

	res, err := f.game.Act(turn.Move(grid.East))
	require.NoError(t, err)
	assert.False(t, res.Consumed)
	assert.Equal(t, []turn.EventKind{turn.EventBlocked}, kinds(res.Events))

	res, err = f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventWait}, kinds(res.Events))
	assert.True(t, f.game.PlayerConditions().Has("stunned"))

	res, err = f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventConditionExpired}, kinds(res.Events))

	res, err = f.game.Act(turn.Move(grid.East))
	require.NoError(t, err)
	assert.True(t, res.Consumed)
}

func TestGame_StunnedAgentSkips(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, []spawn{{ratTemplate(), grid.Point{X: 2, Y: 1}, 9}}, nil)
	rat, _ := f.roster.Get("rat-1")
	stunned, _ := condition.DefaultRegistry().Get("stunned")
	require.NoError(t, rat.Conditions.Apply(stunned, 1, stunned.ApplyDuration()))

	res, _ := f.game.Act(turn.Wait())
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventSkip}, kinds(res.Events))
	res, _ = f.game.Act(turn.Wait())
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventSkip, turn.EventConditionExpired}, kinds(res.Events))
	res, _ = f.game.Act(turn.Wait())
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventAttack}, kinds(res.Events))
}

func TestGame_ConditionDamageKillsAgent(t *testing.T) {
	rows := []string{
		"...#...",
	}
	f := newFixture(t, rows, grid.Point{X: 0, Y: 0}, []spawn{{ratTemplate(), grid.Point{X: 6, Y: 0}, 2}}, nil)
	rat, _ := f.roster.Get("rat-1")
	burning, _ := condition.DefaultRegistry().Get("burning")
	require.NoError(t, rat.Conditions.Apply(burning, 1, burning.ApplyDuration()))

	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t,
		[]turn.EventKind{turn.EventWait, turn.EventMove, turn.EventConditionDamage, turn.EventKill},
		kinds(res.Events))
	assert.Equal(t, "succumbed", res.Events[3].Message)
	assert.Equal(t, 0, f.roster.Len())
	assert.Equal(t, turn.PlayerTurn, f.game.Phase())
}

func TestGame_ConditionDamageKillsPlayer(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, nil, nil)
	f.player.CurrentHP = 2
	burning, _ := condition.DefaultRegistry().Get("burning")
	require.NoError(t, f.game.PlayerConditions().Apply(burning, 1, burning.ApplyDuration()))

	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	assert.Equal(t, []turn.EventKind{turn.EventWait, turn.EventConditionDamage, turn.EventPlayerDeath}, kinds(res.Events))
	assert.True(t, f.game.Over())
}

func TestGame_AgentFlees(t *testing.T) {
	coward := &ai.Domain{
		ID:        "coward",
		Tasks:     []*ai.Task{{ID: ai.RootTask}},
		Methods:   []*ai.Method{{TaskID: ai.RootTask, ID: "run", Subtasks: []string{"flee"}}},
		Operators: []*ai.Operator{{ID: "flee", Action: ai.ActionFlee, Target: ai.TargetSelf}},
	}
	tmpl := ratTemplate()
	tmpl.AIDomain = "coward"
	f := newFixture(t, []string{"....."}, grid.Point{X: 0, Y: 0}, []spawn{{tmpl, grid.Point{X: 3, Y: 0}, 4}}, nil, coward)

	res, _ := f.game.Act(turn.Wait())
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventMove}, kinds(res.Events))
	assert.Equal(t, grid.Point{X: 4, Y: 0}, res.Events[1].To)

	res, _ = f.game.Act(turn.Wait())
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventWait}, kinds(res.Events))
	assert.Equal(t, "cornered", res.Events[1].Message)
}

func TestGame_AgentWandersOutOfSight(t *testing.T) {
	rows := []string{
		"...",
		"###",
		"...",
	}
	f := newFixture(t, rows, grid.Point{X: 0, Y: 0}, []spawn{{ratTemplate(), grid.Point{X: 1, Y: 2}, 4}}, nil)
	res, _ := f.game.Act(turn.Wait())
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventMove}, kinds(res.Events))
	// Options are E then W; the source draws 0.
	assert.Equal(t, grid.Point{X: 2, Y: 2}, res.Events[1].To)
}

func TestGame_LuaPreconditionDrivesBehavior(t *testing.T) {
	logger := zap.NewNop()
	scripts := scripting.NewManager(dice.NewLoggedRoller(dice.NewSeededSource(1), logger), logger, 0)
	require.NoError(t, scripts.LoadString(scripting.GlobalScope, `
		function wounded(uid)
			local a = engine.agent(uid)
			return a ~= nil and a.hp * 3 <= a.max_hp
		end
	`))
	skirmisher := &ai.Domain{
		ID:    "skirmisher",
		Tasks: []*ai.Task{{ID: "behave"}},
		Methods: []*ai.Method{
			{TaskID: "behave", ID: "break_away", Precondition: "wounded", Subtasks: []string{"retreat"}},
			{TaskID: "behave", ID: "fight", Subtasks: []string{"strike"}},
		},
		Operators: []*ai.Operator{
			{ID: "retreat", Action: ai.ActionFlee, Target: ai.TargetSelf},
			{ID: "strike", Action: ai.ActionAttack, Target: ai.TargetPlayer},
		},
	}
	tmpl := ratTemplate()
	tmpl.AIDomain = "skirmisher"
	f := newFixture(t, []string{"......"}, grid.Point{X: 0, Y: 0}, []spawn{
		{tmpl, grid.Point{X: 1, Y: 0}, 9},
		{tmpl, grid.Point{X: 3, Y: 0}, 9},
	}, scripts, skirmisher)
	defer f.game.Close()
	wounded, _ := f.roster.Get("rat-2")
	wounded.CurrentHP = 3

	res, err := f.game.Act(turn.Wait())
	require.NoError(t, err)
	require.Equal(t, []turn.EventKind{turn.EventWait, turn.EventAttack, turn.EventMove}, kinds(res.Events))
	assert.Equal(t, "rat-1", res.Events[1].Actor)
	assert.Equal(t, "rat-2", res.Events[2].Actor)
	assert.Equal(t, grid.Point{X: 4, Y: 0}, res.Events[2].To)
}

func TestGame_VisionRadius(t *testing.T) {
	f := newFixture(t, openRoom(), grid.Point{X: 1, Y: 1}, nil, nil)
	assert.Equal(t, 8, f.game.VisionRadius())
	f.game.SetVisionBonus(2)
	assert.Equal(t, 2, f.game.VisionBonus())
	assert.Equal(t, 10, f.game.VisionRadius())
	poisoned, _ := condition.DefaultRegistry().Get("poisoned")
	require.NoError(t, f.game.PlayerConditions().Apply(poisoned, 5, poisoned.ApplyDuration()))
	assert.Equal(t, 0, f.game.VisionRadius(), "penalties floor the radius at zero")
}

func TestGame_Render(t *testing.T) {
	rows := []string{
		".....",
		"#####",
		".....",
	}
	tmpl := ratTemplate()
	tmpl.Glyph = "r"
	f := newFixture(t, rows, grid.Point{X: 0, Y: 0}, []spawn{{tmpl, grid.Point{X: 3, Y: 0}, 4}}, nil)
	assert.Equal(t, "@..r.\n#####\n     ", f.game.Render())
}

func TestNewGame_Panics(t *testing.T) {
	assert.Panics(t, func() { turn.NewGame(turn.Deps{}) })
	assert.Panics(t, func() {
		logger := zap.NewNop()
		turn.NewGame(turn.Deps{
			Grid:       grid.MustParse("#."),
			Player:     &combat.Combatant{ID: turn.PlayerID, MaxHP: 1, CurrentHP: 1},
			Roster:     npc.NewRoster(),
			Source:     &fixedSource{},
			Finder:     pathfind.NewFinder(0, logger),
			Resolver:   combat.NewResolver(flatRules(), logger),
			Planners:   ai.NewRegistry(ai.DefaultDomainID),
			Conditions: condition.DefaultRegistry(),
			Logger:     logger,
		})
	}, "player on a wall")
}

func TestGame_IDGeneratedWhenEmpty(t *testing.T) {
	logger := zap.NewNop()
	g := turn.NewGame(turn.Deps{
		Grid:       grid.MustParse(".."),
		Player:     &combat.Combatant{ID: turn.PlayerID, MaxHP: 1, CurrentHP: 1},
		Roster:     npc.NewRoster(),
		Source:     &fixedSource{},
		Finder:     pathfind.NewFinder(0, logger),
		Resolver:   combat.NewResolver(flatRules(), logger),
		Planners:   ai.NewRegistry(ai.DefaultDomainID),
		Conditions: condition.DefaultRegistry(),
		Logger:     logger,
	})
	assert.Len(t, g.ID(), 36)
}
