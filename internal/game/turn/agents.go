package turn

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/ai"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

// agentAct runs one agent's turn: plan with its domain, then execute the first
// planned action.
func (g *Game) agentAct(a *npc.Instance) {
	if condition.SkipsTurn(a.Conditions) {
		g.emit(Event{Kind: EventSkip, Actor: a.ID, Message: "stunned"})
		return
	}

	ws := ai.BuildWorldState(a, g.player, g.grid)
	if ws.Visible && !a.SeenPlayer {
		a.SeenPlayer = true
		if line, ok := a.TryTaunt(g.src); ok {
			g.emit(Event{Kind: EventTaunt, Actor: a.ID, Message: line})
		}
	}

	next := ai.PlannedAction{Action: ai.ActionWait}
	if planner, ok := g.planners.PlannerFor(a.AIDomain); ok {
		pa, err := planner.Next(ws)
		if err != nil {
			g.logger.Warn("planning failed", zap.String("agent", a.ID), zap.Error(err))
		} else {
			next = pa
		}
	}

	switch next.Action {
	case ai.ActionAttack, ai.ActionApproach:
		g.agentAdvance(a)
	case ai.ActionFlee:
		g.agentFlee(a)
	case ai.ActionWander:
		g.agentWander(a)
	default:
		g.emit(Event{Kind: EventWait, Actor: a.ID})
	}
}

// agentAdvance steps a toward the player, attacking when the step lands on
// the player's cell.
func (g *Game) agentAdvance(a *npc.Instance) {
	walkable := func(p grid.Point) bool {
		if !g.grid.IsWalkable(p) {
			return false
		}
		return p == g.player.Pos || !g.roster.Occupied(p)
	}
	next, greedy, ok := g.finder.Step(a.Pos, g.player.Pos, walkable)
	if !ok {
		g.emit(Event{Kind: EventBlocked, Actor: a.ID, Message: "no way forward"})
		return
	}
	if next == g.player.Pos {
		g.agentAttack(a)
		return
	}
	msg := ""
	if greedy {
		msg = "greedy step"
	}
	g.moveAgent(a, next, msg)
}

func (g *Game) agentAttack(a *npc.Instance) {
	mods := combat.Modifiers{
		AttackDelta:  condition.AttackDelta(a.Conditions),
		DefenseDelta: condition.DefenseDelta(g.playerConditions),
	}
	res := g.resolver.Resolve(&a.Combatant, g.player, mods, g.src)
	g.emitAttack(res)
	if res.Status != "" {
		g.inflict(g.playerConditions, g.player.ID, res.Status)
	}
}

// agentFlee steps to the free neighbour farthest from the player. The first
// neighbour in N, E, S, W order wins ties; an agent with no farther cell stays.
func (g *Game) agentFlee(a *npc.Instance) {
	best := a.Pos
	bestDist := a.Pos.Manhattan(g.player.Pos)
	for _, n := range a.Pos.Neighbors4() {
		if !g.free(n) {
			continue
		}
		if d := n.Manhattan(g.player.Pos); d > bestDist {
			best, bestDist = n, d
		}
	}
	if best == a.Pos {
		g.emit(Event{Kind: EventWait, Actor: a.ID, Message: "cornered"})
		return
	}
	g.moveAgent(a, best, "fleeing")
}

// agentWander steps to a uniformly random free neighbour. No draw is made
// when the agent is boxed in.
func (g *Game) agentWander(a *npc.Instance) {
	var options []grid.Point
	for _, n := range a.Pos.Neighbors4() {
		if g.free(n) {
			options = append(options, n)
		}
	}
	if len(options) == 0 {
		g.emit(Event{Kind: EventWait, Actor: a.ID, Message: "boxed in"})
		return
	}
	g.moveAgent(a, options[g.src.Intn(len(options))], "")
}

// free reports whether an agent may step onto p without attacking.
func (g *Game) free(p grid.Point) bool {
	return g.grid.IsWalkable(p) && p != g.player.Pos && !g.roster.Occupied(p)
}

func (g *Game) moveAgent(a *npc.Instance, to grid.Point, msg string) {
	from := a.Pos
	if err := g.roster.Move(a.ID, to); err != nil {
		g.logger.Warn("agent move rejected", zap.String("agent", a.ID), zap.Error(err))
		return
	}
	g.emit(Event{Kind: EventMove, Actor: a.ID, From: from, To: to, Message: msg})
}
