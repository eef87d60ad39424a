package levelgen

import (
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// CaveParams configures the cellular-automaton cave generator.
type CaveParams struct {
	// FillProbability is the chance an interior cell starts as wall.
	FillProbability float64
	// Iterations is the number of smoothing passes.
	Iterations int
	// DeathThreshold: a cell with at least this many wall neighbours becomes wall.
	DeathThreshold int
	// BirthThreshold: otherwise a cell with at least this many open neighbours
	// becomes floor. Cells matching neither rule keep their state.
	BirthThreshold int
}

// Cave seeds the interior with random walls, smooths it with a majority-rule
// automaton, and keeps only the largest open region. The border is always
// wall; neighbours outside the grid count as wall. One Float64 draw is
// consumed per interior cell, in row-major order.
//
// Precondition: width > 0 and height > 0.
// Postcondition: the result is connected.
func Cave(width, height int, p CaveParams, src dice.Source) *grid.Grid {
	mustPositive(width, height)

	border := func(x, y int) bool {
		return x == 0 || y == 0 || x == width-1 || y == height-1
	}

	wall := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if border(x, y) {
				wall[y*width+x] = true
				continue
			}
			wall[y*width+x] = dice.Chance(src, p.FillProbability)
		}
	}

	next := make([]bool, len(wall))
	for i := 0; i < p.Iterations; i++ {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				idx := y*width + x
				if border(x, y) {
					next[idx] = true
					continue
				}
				walls := wallNeighbors(wall, width, height, x, y)
				switch {
				case walls >= p.DeathThreshold:
					next[idx] = true
				case 8-walls >= p.BirthThreshold:
					next[idx] = false
				default:
					next[idx] = wall[idx]
				}
			}
		}
		wall, next = next, wall
	}

	g := grid.New(width, height)
	for i, w := range wall {
		if !w {
			g.SetTerrain(grid.Point{X: i % width, Y: i / width}, grid.Floor)
		}
	}
	return finalize(g)
}

func wallNeighbors(wall []bool, width, height, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height || wall[ny*width+nx] {
				n++
			}
		}
	}
	return n
}
