// Package autoplay drives the player for headless runs: fight what is
// adjacent, chase what is visible, otherwise explore toward the nearest
// unknown territory.
package autoplay

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/grid"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/pathfind"
	"github.com/cory-johannsen/delve/internal/game/turn"
)

// Intent names why the policy chose an action.
type Intent string

const (
	IntentFight   Intent = "fight"
	IntentChase   Intent = "chase"
	IntentExplore Intent = "explore"
	IntentIdle    Intent = "idle"
)

// Decision is one chosen player action.
type Decision struct {
	Action turn.Action
	Intent Intent
	// Target is the agent being fought or chased, if any.
	Target string
}

// Policy picks player actions from what the player can currently see.
type Policy struct {
	finder *pathfind.Finder
	logger *zap.Logger
}

// NewPolicy creates a Policy.
//
// Precondition: finder and logger must be non-nil.
func NewPolicy(finder *pathfind.Finder, logger *zap.Logger) *Policy {
	if finder == nil {
		panic("autoplay.NewPolicy: finder must not be nil")
	}
	if logger == nil {
		panic("autoplay.NewPolicy: logger must not be nil")
	}
	return &Policy{finder: finder, logger: logger}
}

// Decide returns the next action for g's player.
//
// Precondition: g must not be over.
// Postcondition: Returns a Move toward or into a cardinal neighbour, or Wait
// when nothing is reachable.
func (p *Policy) Decide(g *turn.Game) Decision {
	d := p.decide(g)
	p.logger.Debug("autoplay decision",
		zap.Int("turn", g.Turn()),
		zap.String("intent", string(d.Intent)),
		zap.String("target", d.Target),
		zap.Stringer("action", d.Action.Kind),
	)
	return d
}

func (p *Policy) decide(g *turn.Game) Decision {
	pos := g.Player().Pos
	visible := g.VisibleAgents()

	for _, a := range visible {
		if a.Pos.Adjacent(pos) {
			return Decision{Action: turn.Move(a.Pos.Sub(pos)), Intent: IntentFight, Target: a.ID}
		}
	}

	if target := nearest(pos, visible); target != nil {
		walkable := func(q grid.Point) bool {
			return g.Grid().IsWalkable(q) && (q == target.Pos || !g.Roster().Occupied(q))
		}
		if next, _, ok := p.finder.Step(pos, target.Pos, walkable); ok {
			return Decision{Action: turn.Move(next.Sub(pos)), Intent: IntentChase, Target: target.ID}
		}
	}

	if next, ok := Explore(g.Grid(), pos); ok {
		return Decision{Action: turn.Move(next.Sub(pos)), Intent: IntentExplore}
	}
	return Decision{Action: turn.Wait(), Intent: IntentIdle}
}

// nearest returns the agent closest to pos by Manhattan distance; the
// earliest spawned wins ties.
func nearest(pos grid.Point, agents []*npc.Instance) *npc.Instance {
	var best *npc.Instance
	for _, a := range agents {
		if best == nil || a.Pos.Manhattan(pos) < best.Pos.Manhattan(pos) {
			best = a
		}
	}
	return best
}

// Explore returns the first step of a shortest walk over discovered walkable
// cells from start to the nearest frontier, a discovered walkable cell
// bordering an undiscovered one. Neighbours expand in N, E, S, W order.
//
// Postcondition: ok is false when no frontier other than start is reachable.
func Explore(g *grid.Grid, start grid.Point) (grid.Point, bool) {
	type node struct {
		at    grid.Point
		first grid.Point
	}
	seen := mapset.New[grid.Point]()
	seen.Put(start)
	q := queue.New[node]()
	for _, n := range start.Neighbors4() {
		if known(g, n) && g.IsWalkable(n) {
			seen.Put(n)
			q.Enqueue(node{at: n, first: n})
		}
	}
	for !q.Empty() {
		cur := q.Dequeue()
		if frontier(g, cur.at) {
			return cur.first, true
		}
		for _, n := range cur.at.Neighbors4() {
			if seen.Has(n) || !known(g, n) || !g.IsWalkable(n) {
				continue
			}
			seen.Put(n)
			q.Enqueue(node{at: n, first: cur.first})
		}
	}
	return grid.Point{}, false
}

func known(g *grid.Grid, p grid.Point) bool {
	c, ok := g.Lookup(p)
	return ok && c.Discovered
}

func frontier(g *grid.Grid, p grid.Point) bool {
	for _, n := range p.Neighbors4() {
		if c, ok := g.Lookup(n); ok && !c.Discovered {
			return true
		}
	}
	return false
}
