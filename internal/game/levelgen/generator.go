// Package levelgen builds dungeon levels from nothing but a size, a parameter
// set, and an injected random source.
//
// Every generator returns a grid with at least one floor cell in which every
// floor cell is reachable from every other.
package levelgen

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// Algorithm names a level generator.
type Algorithm string

const (
	AlgorithmRooms Algorithm = "rooms"
	AlgorithmCave  Algorithm = "cave"
	AlgorithmBSP   Algorithm = "bsp"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{AlgorithmRooms, AlgorithmCave, AlgorithmBSP}

// ParseAlgorithm validates s as an Algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("levelgen: unknown algorithm %q", s)
}

// Params aggregates the parameter sets of all generators; only the set
// matching the chosen Algorithm is read.
type Params struct {
	Rooms RoomsParams
	Cave  CaveParams
	BSP   BSPParams
}

// DefaultParams returns parameters that produce playable 80×40 levels.
func DefaultParams() Params {
	return Params{
		Rooms: RoomsParams{MaxRooms: 12, MinSize: 5, MaxSize: 11, Attempts: 60},
		Cave:  CaveParams{FillProbability: 0.45, Iterations: 5, DeathThreshold: 5, BirthThreshold: 4},
		BSP:   BSPParams{MaxDepth: 4, MinPartition: 7, MinRoomSize: 4},
	}
}

// Generate runs the generator named by alg.
//
// Precondition: width > 0 and height > 0; src must be non-nil.
// Postcondition: Returns a connected grid, or an error for an unknown algorithm.
func Generate(alg Algorithm, width, height int, p Params, src dice.Source) (*grid.Grid, error) {
	switch alg {
	case AlgorithmRooms:
		return Rooms(width, height, p.Rooms, src), nil
	case AlgorithmCave:
		return Cave(width, height, p.Cave, src), nil
	case AlgorithmBSP:
		return BSP(width, height, p.BSP, src), nil
	default:
		return nil, fmt.Errorf("levelgen: unknown algorithm %q", alg)
	}
}

func mustPositive(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("levelgen: non-positive dimensions %dx%d", width, height))
	}
}

// finalize enforces the shared acceptance test. A grid without floor gets its
// center cell carved; a grid with several floor regions keeps only the largest
// (the first in row-major order on ties).
//
// Postcondition: g.Connected() is true.
func finalize(g *grid.Grid) *grid.Grid {
	regions := g.Regions()
	if len(regions) == 0 {
		g.SetTerrain(grid.Point{X: g.Width() / 2, Y: g.Height() / 2}, grid.Floor)
		return g
	}
	if len(regions) == 1 {
		return g
	}
	keep := regions[0]
	for _, r := range regions[1:] {
		if r.Size() > keep.Size() {
			keep = r
		}
	}
	g.Each(func(p grid.Point, c grid.Cell) {
		if c.Terrain.Walkable() && !keep.Has(p) {
			g.SetTerrain(p, grid.Wall)
		}
	})
	return g
}

// Builder generates levels with a fixed parameter set and logs each build.
type Builder struct {
	params Params
	logger *zap.Logger
}

// NewBuilder creates a Builder.
//
// Precondition: logger must be non-nil.
func NewBuilder(params Params, logger *zap.Logger) *Builder {
	if logger == nil {
		panic("levelgen.NewBuilder: logger must not be nil")
	}
	return &Builder{params: params, logger: logger}
}

// Build generates a level and logs its shape at debug level.
func (b *Builder) Build(alg Algorithm, width, height int, src dice.Source) (*grid.Grid, error) {
	start := time.Now()
	g, err := Generate(alg, width, height, b.params, src)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("level generated",
		zap.String("algorithm", string(alg)),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("floor", g.Count(grid.Terrain.Walkable)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return g, nil
}
