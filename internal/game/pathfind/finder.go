package pathfind

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// Finder binds an iteration cap and a logger to the search functions.
type Finder struct {
	maxIterations int
	logger        *zap.Logger
}

// NewFinder creates a Finder. A non-positive cap means DefaultMaxIterations.
//
// Precondition: logger must be non-nil.
func NewFinder(maxIterations int, logger *zap.Logger) *Finder {
	if logger == nil {
		panic("pathfind.NewFinder: logger must not be nil")
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Finder{maxIterations: maxIterations, logger: logger}
}

// MaxIterations returns the configured cap.
func (f *Finder) MaxIterations() int { return f.maxIterations }

// Find runs FindPath with the configured cap.
func (f *Finder) Find(start, goal grid.Point, walkable func(grid.Point) bool) Result {
	res := FindPath(start, goal, walkable, f.maxIterations)
	if !res.Found() {
		f.logger.Debug("no path",
			zap.Stringer("start", start),
			zap.Stringer("goal", goal),
			zap.Int("iterations", res.Iterations),
		)
	}
	return res
}

// Step returns the next point toward goal, falling back to GreedyStep when
// the search finds nothing. The second return value reports whether the
// greedy fallback produced the step.
//
// Postcondition: ok is false only when neither strategy yields a step.
func (f *Finder) Step(start, goal grid.Point, walkable func(grid.Point) bool) (next grid.Point, greedy, ok bool) {
	res := f.Find(start, goal, walkable)
	if len(res.Path) >= 2 {
		return res.Path[1], false, true
	}
	if start == goal {
		return grid.Point{}, false, false
	}
	next, ok = GreedyStep(start, goal, walkable)
	return next, ok, ok
}
