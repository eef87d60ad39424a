// Package pathfind finds routes across the grid for agents.
//
// Searches are A* over 4-connected unit-cost moves with the Manhattan
// heuristic. Walkability is supplied per call so callers can treat other
// agents as transient obstacles.
package pathfind

import (
	"github.com/zyedidia/generic/heap"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// DefaultMaxIterations is the expansion cap used when a caller passes a
// non-positive cap.
const DefaultMaxIterations = 4096

// Path is an ordered route from start to goal inclusive.
type Path []grid.Point

// Result is the outcome of one search.
type Result struct {
	// Path is nil when no path was found.
	Path Path
	// Iterations counts node expansions performed.
	Iterations int
}

// Found reports whether the search produced a path.
func (r Result) Found() bool { return r.Path != nil }

// Len returns the number of steps in the path, or -1 when not found.
func (r Result) Len() int {
	if r.Path == nil {
		return -1
	}
	return len(r.Path) - 1
}

type node struct {
	p   grid.Point
	g   int
	f   int
	seq int
}

// lessNode orders the open set by f, then by insertion sequence.
func lessNode(a, b *node) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// FindPath searches for a shortest route from start to goal.
//
// Ties among equal f are broken first-in first-out and neighbours are pushed
// in N, E, S, W order, so the returned path is stable for a given input. The
// walkability of start is not checked.
//
// Postcondition: start == goal returns a one-point path with zero iterations;
// an unwalkable goal returns NotFound with zero iterations; exceeding
// maxIterations returns NotFound.
func FindPath(start, goal grid.Point, walkable func(grid.Point) bool, maxIterations int) Result {
	if start == goal {
		return Result{Path: Path{start}}
	}
	if !walkable(goal) {
		return Result{}
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	seq := 0
	open := heap.New(lessNode)
	open.Push(&node{p: start, g: 0, f: start.Manhattan(goal), seq: seq})
	best := map[grid.Point]int{start: 0}
	cameFrom := make(map[grid.Point]grid.Point)
	closed := make(map[grid.Point]bool)

	iterations := 0
	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed[cur.p] {
			continue
		}
		if cur.p == goal {
			return Result{Path: reconstruct(cameFrom, start, goal), Iterations: iterations}
		}
		if iterations >= maxIterations {
			return Result{Iterations: iterations}
		}
		iterations++
		closed[cur.p] = true

		for _, n := range cur.p.Neighbors4() {
			if closed[n] || !walkable(n) {
				continue
			}
			g := cur.g + 1
			if old, ok := best[n]; ok && g >= old {
				continue
			}
			best[n] = g
			cameFrom[n] = cur.p
			seq++
			open.Push(&node{p: n, g: g, f: g + n.Manhattan(goal), seq: seq})
		}
	}
	return Result{Iterations: iterations}
}

func reconstruct(cameFrom map[grid.Point]grid.Point, start, goal grid.Point) Path {
	var rev Path
	for p := goal; p != start; p = cameFrom[p] {
		rev = append(rev, p)
	}
	rev = append(rev, start)
	out := make(Path, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}

// NextStep returns the second point of the path from start to goal. It runs
// at most one search.
//
// Postcondition: Returns (p, true) with p adjacent to start, or (Point{}, false)
// when start == goal or no path exists.
func NextStep(start, goal grid.Point, walkable func(grid.Point) bool, maxIterations int) (grid.Point, bool) {
	res := FindPath(start, goal, walkable, maxIterations)
	if len(res.Path) < 2 {
		return grid.Point{}, false
	}
	return res.Path[1], true
}

// GreedyStep is the fallback when no path is found: a single step toward goal
// along the axis with the larger offset, or along the other axis when that
// cell is not walkable.
//
// Postcondition: Returns (p, true) with walkable(p) and p adjacent to start,
// or (Point{}, false) when neither candidate is walkable or start == goal.
func GreedyStep(start, goal grid.Point, walkable func(grid.Point) bool) (grid.Point, bool) {
	d := goal.Sub(start)
	sx, sy := sign(d.X), sign(d.Y)

	var candidates []grid.Point
	if abs(d.X) >= abs(d.Y) {
		candidates = []grid.Point{{X: sx}, {Y: sy}}
	} else {
		candidates = []grid.Point{{Y: sy}, {X: sx}}
	}
	for _, c := range candidates {
		if c == (grid.Point{}) {
			continue
		}
		next := start.Add(c)
		if walkable(next) {
			return next, true
		}
	}
	return grid.Point{}, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
