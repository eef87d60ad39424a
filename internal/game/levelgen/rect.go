package levelgen

import "github.com/cory-johannsen/delve/internal/game/grid"

// Rect is a room or partition rectangle. It spans [X, X+W) × [Y, Y+H); for a
// room the outermost ring is wall and the interior is carved as floor.
type Rect struct {
	X, Y, W, H int
}

// Center returns the rectangle's center cell. For rooms with W, H >= 3 it
// lies inside the interior.
func (r Rect) Center() grid.Point {
	return grid.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether r and o share any cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether p lies within r.
func (r Rect) Contains(p grid.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// carveRoom sets the interior of r to floor.
func carveRoom(g *grid.Grid, r Rect) {
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		for x := r.X + 1; x < r.X+r.W-1; x++ {
			g.SetTerrain(grid.Point{X: x, Y: y}, grid.Floor)
		}
	}
}

func carveHorizontal(g *grid.Grid, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.SetTerrain(grid.Point{X: x, Y: y}, grid.Floor)
	}
}

func carveVertical(g *grid.Grid, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.SetTerrain(grid.Point{X: x, Y: y}, grid.Floor)
	}
}

// carveCorridor joins a and b with an L-shaped corridor. With horizontalFirst
// the corridor runs along a's row then b's column; otherwise along a's column
// then b's row.
func carveCorridor(g *grid.Grid, a, b grid.Point, horizontalFirst bool) {
	if horizontalFirst {
		carveHorizontal(g, a.X, b.X, a.Y)
		carveVertical(g, a.Y, b.Y, b.X)
		return
	}
	carveVertical(g, a.Y, b.Y, a.X)
	carveHorizontal(g, a.X, b.X, b.Y)
}
