package turn

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/ai"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/fov"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/pathfind"
	"github.com/cory-johannsen/delve/internal/scripting"
)

// PlayerID is the combatant ID of the player.
const PlayerID = "player"

// Deps collects everything a Game needs.
type Deps struct {
	// ID names the game; empty generates a UUID.
	ID         string
	Grid       *grid.Grid
	Player     *combat.Combatant
	Roster     *npc.Roster
	Source     dice.Source
	Finder     *pathfind.Finder
	Resolver   *combat.Resolver
	Planners   *ai.Registry
	Conditions *condition.Registry
	// Scripts is optional; when set, Lua hooks can query the game state.
	Scripts      *scripting.Manager
	VisionRadius int
	VisionBonus  int
	Logger       *zap.Logger
}

// Game owns one level and runs the turn cycle over it.
//
// Invariant: the grid and roster are mutated only inside Act.
type Game struct {
	id               string
	grid             *grid.Grid
	player           *combat.Combatant
	playerConditions *condition.ActiveSet
	roster           *npc.Roster
	machine          *Machine
	src              dice.Source
	finder           *pathfind.Finder
	resolver         *combat.Resolver
	planners         *ai.Registry
	conditions       *condition.Registry
	scripts          *scripting.Manager
	baseVision       int
	visionBonus      int
	visible          mapset.Set[grid.Point]
	logger           *zap.Logger
	pending          []Event
}

// NewGame wires a Game and computes the initial visibility.
//
// Precondition: every Deps field except ID and Scripts must be non-nil;
// d.Player.Pos must be walkable.
// Postcondition: the machine is in PlayerTurn on turn 1.
func NewGame(d Deps) *Game {
	switch {
	case d.Grid == nil:
		panic("turn.NewGame: grid must not be nil")
	case d.Player == nil:
		panic("turn.NewGame: player must not be nil")
	case d.Roster == nil:
		panic("turn.NewGame: roster must not be nil")
	case d.Source == nil:
		panic("turn.NewGame: source must not be nil")
	case d.Finder == nil:
		panic("turn.NewGame: finder must not be nil")
	case d.Resolver == nil:
		panic("turn.NewGame: resolver must not be nil")
	case d.Planners == nil:
		panic("turn.NewGame: planners must not be nil")
	case d.Conditions == nil:
		panic("turn.NewGame: conditions must not be nil")
	case d.Logger == nil:
		panic("turn.NewGame: logger must not be nil")
	}
	if !d.Grid.IsWalkable(d.Player.Pos) {
		panic(fmt.Sprintf("turn.NewGame: player position %s is not walkable", d.Player.Pos))
	}
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	g := &Game{
		id:               id,
		grid:             d.Grid,
		player:           d.Player,
		playerConditions: condition.NewActiveSet(),
		roster:           d.Roster,
		machine:          NewMachine(),
		src:              d.Source,
		finder:           d.Finder,
		resolver:         d.Resolver,
		planners:         d.Planners,
		conditions:       d.Conditions,
		scripts:          d.Scripts,
		baseVision:       d.VisionRadius,
		visionBonus:      d.VisionBonus,
		logger:           d.Logger.With(zap.String("game_id", id)),
	}
	if g.scripts != nil {
		g.scripts.GetAgent = g.agentInfo
		g.scripts.GetTarget = g.targetInfo
	}
	g.refreshVisibility()
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Grid returns the level.
func (g *Game) Grid() *grid.Grid { return g.grid }

// Player returns the player combatant.
func (g *Game) Player() *combat.Combatant { return g.player }

// PlayerConditions returns the player's active status effects.
func (g *Game) PlayerConditions() *condition.ActiveSet { return g.playerConditions }

// Roster returns the agent arena.
func (g *Game) Roster() *npc.Roster { return g.roster }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.machine.Phase() }

// Turn returns the 1-based turn counter.
func (g *Game) Turn() int { return g.machine.Turn() }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.machine.Over() }

// Visible returns the cells currently in the player's view.
func (g *Game) Visible() mapset.Set[grid.Point] { return g.visible }

// VisionRadius returns base + bonus - condition vision penalty, floored at 0.
func (g *Game) VisionRadius() int {
	return max(0, g.baseVision+g.visionBonus-condition.VisionPenalty(g.playerConditions))
}

// VisionBonus returns the external vision bonus.
func (g *Game) VisionBonus() int { return g.visionBonus }

// SetVisionBonus replaces the external vision bonus and recomputes visibility.
func (g *Game) SetVisionBonus(bonus int) {
	g.visionBonus = bonus
	g.refreshVisibility()
}

// VisibleAgents returns the living agents inside the player's view in spawn order.
func (g *Game) VisibleAgents() []*npc.Instance {
	var out []*npc.Instance
	for _, a := range g.roster.Living() {
		if g.visible.Has(a.Pos) {
			out = append(out, a)
		}
	}
	return out
}

// Close releases the game's scripting VMs.
func (g *Game) Close() {
	if g.scripts != nil {
		g.scripts.Close()
	}
}

// Act applies one player action. A turn-consuming action runs the complete
// agent turn before returning.
//
// Postcondition: returns ErrGameOver once the game has ended; on success the
// phase is PlayerTurn or GameOver.
func (g *Game) Act(a Action) (Result, error) {
	if g.machine.Over() {
		return Result{}, ErrGameOver
	}
	if g.machine.Phase() != PlayerTurn {
		return Result{}, fmt.Errorf("%w: act in %s", ErrWrongPhase, g.machine.Phase())
	}

	var consumed bool
	switch a.Kind {
	case ActionLook:
		if err := g.machine.CommitPlayerAction(false); err != nil {
			return Result{}, err
		}
		return Result{Visible: g.VisibleAgents()}, nil
	case ActionWait:
		g.emit(Event{Kind: EventWait, Actor: g.player.ID})
		consumed = true
	case ActionMove:
		if !isCardinal(a.Dir) {
			return Result{}, fmt.Errorf("%w: direction %s", ErrInvalidAction, a.Dir)
		}
		consumed = g.playerMove(a.Dir)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidAction, a.Kind)
	}

	if err := g.machine.CommitPlayerAction(consumed); err != nil {
		return Result{}, err
	}
	if consumed {
		g.runAgentTurn()
	}
	return Result{Consumed: consumed, Events: g.flush()}, nil
}

func (g *Game) playerMove(dir grid.Point) bool {
	if condition.IsActionRestricted(g.playerConditions, "move") {
		g.emit(Event{Kind: EventBlocked, Actor: g.player.ID, Message: "cannot move"})
		return false
	}
	dest := g.player.Pos.Add(dir)
	if !g.grid.IsWalkable(dest) {
		g.emit(Event{Kind: EventBlocked, Actor: g.player.ID, From: g.player.Pos, To: dest, Message: "the way is blocked"})
		return false
	}
	if target, ok := g.roster.At(dest); ok {
		g.playerAttack(target)
		return true
	}
	from := g.player.Pos
	g.player.Pos = dest
	g.emit(Event{Kind: EventMove, Actor: g.player.ID, From: from, To: dest})
	g.refreshVisibility()
	return true
}

func (g *Game) playerAttack(target *npc.Instance) {
	mods := combat.Modifiers{
		AttackDelta:  condition.AttackDelta(g.playerConditions),
		DefenseDelta: condition.DefenseDelta(target.Conditions),
	}
	res := g.resolver.Resolve(g.player, &target.Combatant, mods, g.src)
	g.emitAttack(res)
	if res.Killed {
		if err := g.roster.Remove(target.ID); err != nil {
			g.logger.Warn("removing killed agent", zap.String("agent", target.ID), zap.Error(err))
		}
		g.emit(Event{Kind: EventKill, Actor: g.player.ID, Target: target.ID})
		return
	}
	if res.Status != "" {
		g.inflict(target.Conditions, target.ID, res.Status)
	}
}

func (g *Game) emitAttack(res combat.AttackResult) {
	g.emit(Event{
		Kind:     EventAttack,
		Actor:    res.AttackerID,
		Target:   res.TargetID,
		Damage:   res.Damage,
		Critical: res.Critical,
		Status:   res.Status,
	})
}

func (g *Game) inflict(set *condition.ActiveSet, targetID, status string) {
	def, ok := g.conditions.Get(status)
	if !ok {
		g.logger.Warn("unknown status condition", zap.String("status", status))
		return
	}
	if err := set.Apply(def, 1, def.ApplyDuration()); err != nil {
		g.logger.Warn("applying condition", zap.String("status", status), zap.Error(err))
		return
	}
	g.emit(Event{Kind: EventStatus, Target: targetID, Status: status})
}

func (g *Game) runAgentTurn() {
	for _, a := range g.roster.Living() {
		g.agentAct(a)
		if g.player.IsDead() {
			g.playerDied()
			return
		}
	}
	g.endOfTurn()
}

// endOfTurn applies condition damage, ticks durations, and hands the turn back.
func (g *Game) endOfTurn() {
	g.tickActor(g.player, g.playerConditions)
	for _, a := range g.roster.Living() {
		g.tickActor(&a.Combatant, a.Conditions)
	}
	for _, a := range g.roster.Sweep() {
		g.emit(Event{Kind: EventKill, Target: a.ID, Message: "succumbed"})
	}
	if g.player.IsDead() {
		g.playerDied()
		return
	}
	g.refreshVisibility()
	if err := g.machine.FinishAgentTurn(); err != nil {
		g.logger.Error("finishing agent turn", zap.Error(err))
	}
}

func (g *Game) tickActor(c *combat.Combatant, set *condition.ActiveSet) {
	if dmg := condition.DamagePerTurn(set); dmg > 0 {
		c.ApplyDamage(dmg)
		g.emit(Event{Kind: EventConditionDamage, Target: c.ID, Damage: dmg})
	}
	for _, id := range set.Tick() {
		g.emit(Event{Kind: EventConditionExpired, Target: c.ID, Status: id})
	}
}

func (g *Game) playerDied() {
	if err := g.machine.PlayerDied(); err != nil {
		return
	}
	g.emit(Event{Kind: EventPlayerDeath, Target: g.player.ID})
	g.logger.Info("player died", zap.Int("turn", g.machine.Turn()))
}

func (g *Game) refreshVisibility() {
	g.visible = fov.Update(g.grid, g.player.Pos, g.VisionRadius())
}

func (g *Game) emit(e Event) {
	e.Turn = g.machine.Turn()
	g.pending = append(g.pending, e)
	g.logger.Debug("turn event", e.fields()...)
}

func (g *Game) flush() []Event {
	out := g.pending
	g.pending = nil
	return out
}

func (g *Game) agentInfo(uid string) *scripting.AgentInfo {
	a, ok := g.roster.Get(uid)
	if !ok {
		return nil
	}
	return &scripting.AgentInfo{
		UID:         a.ID,
		Name:        a.Name,
		HP:          a.CurrentHP,
		MaxHP:       a.MaxHP,
		X:           a.Pos.X,
		Y:           a.Pos.Y,
		SightRadius: a.SightRadius,
		Conditions:  a.Conditions.IDs(),
	}
}

// targetInfo describes the player as seen by agent uid.
func (g *Game) targetInfo(string) *scripting.AgentInfo {
	if g.player.IsDead() {
		return nil
	}
	return &scripting.AgentInfo{
		UID:         g.player.ID,
		Name:        g.player.Name,
		HP:          g.player.CurrentHP,
		MaxHP:       g.player.MaxHP,
		X:           g.player.Pos.X,
		Y:           g.player.Pos.Y,
		SightRadius: g.VisionRadius(),
		Conditions:  g.playerConditions.IDs(),
	}
}

// Render draws the discovered map with the player as '@' and agents in view
// as their glyphs. Undiscovered cells are blank.
func (g *Game) Render() string {
	w, h := g.grid.Width(), g.grid.Height()
	rows := make([][]rune, h)
	for y := range rows {
		rows[y] = make([]rune, w)
	}
	g.grid.Each(func(p grid.Point, c grid.Cell) {
		r := ' '
		if c.Discovered {
			r = rune(c.Terrain.Glyph())
		}
		rows[p.Y][p.X] = r
	})
	for _, a := range g.VisibleAgents() {
		rows[a.Pos.Y][a.Pos.X] = a.Glyph
	}
	rows[g.player.Pos.Y][g.player.Pos.X] = '@'

	var b strings.Builder
	for y, row := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
