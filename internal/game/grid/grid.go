package grid

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Source is the subset of dice.Source used for placement queries.
// Using a local interface keeps grid free of upward imports.
type Source interface {
	Intn(n int) int
}

// Grid is a fixed-size rectangle of cells stored row-major.
//
// Invariant: len(cells) == width*height; width and height never change.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New returns a width×height grid with every cell set to Wall.
//
// Precondition: width > 0 and height > 0.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: New called with non-positive dimensions %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Parse builds a grid from rows of terrain glyphs as produced by String.
//
// Postcondition: Returns an error if rows is empty, ragged, or contains an
// unknown glyph.
func Parse(rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: Parse requires at least one non-empty row")
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("grid: row %d has width %d, want %d", y, len(row), g.width)
		}
		for x := 0; x < len(row); x++ {
			t, ok := TerrainFromGlyph(row[x])
			if !ok {
				return nil, fmt.Errorf("grid: unknown glyph %q at (%d,%d)", row[x], x, y)
			}
			g.cells[y*g.width+x].Terrain = t
		}
	}
	return g, nil
}

// MustParse is Parse for fixtures; it panics on error.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p addresses a cell of g.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: point %s out of bounds for %dx%d grid", p, g.width, g.height))
	}
	return p.Y*g.width + p.X
}

// Cell returns a copy of the cell at p.
//
// Precondition: g.InBounds(p).
func (g *Grid) Cell(p Point) Cell {
	return g.cells[g.index(p)]
}

// Lookup returns the cell at p and whether p is in bounds.
func (g *Grid) Lookup(p Point) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	return g.cells[p.Y*g.width+p.X], true
}

// SetTerrain replaces the terrain at p. Discovery state is untouched.
//
// Precondition: g.InBounds(p).
func (g *Grid) SetTerrain(p Point, t Terrain) {
	g.cells[g.index(p)].Terrain = t
}

// Terrain returns the terrain at p.
//
// Precondition: g.InBounds(p).
func (g *Grid) Terrain(p Point) Terrain {
	return g.cells[g.index(p)].Terrain
}

// IsWalkable reports whether p is in bounds and its terrain is walkable.
func (g *Grid) IsWalkable(p Point) bool {
	c, ok := g.Lookup(p)
	return ok && c.Terrain.Walkable()
}

// IsOpaque reports whether p blocks sight. Out-of-bounds points are opaque.
func (g *Grid) IsOpaque(p Point) bool {
	c, ok := g.Lookup(p)
	return !ok || !c.Terrain.Transparent()
}

// Fill sets every cell's terrain to t.
func (g *Grid) Fill(t Terrain) {
	for i := range g.cells {
		g.cells[i].Terrain = t
	}
}

// Each calls fn for every point in row-major order.
func (g *Grid) Each(fn func(p Point, c Cell)) {
	for i, c := range g.cells {
		fn(Point{X: i % g.width, Y: i / g.width}, c)
	}
}

// Count returns the number of cells whose terrain satisfies pred.
func (g *Grid) Count(pred func(Terrain) bool) int {
	n := 0
	for _, c := range g.cells {
		if pred(c.Terrain) {
			n++
		}
	}
	return n
}

// WalkablePoints returns every walkable point in row-major order.
func (g *Grid) WalkablePoints() []Point {
	var out []Point
	g.Each(func(p Point, c Cell) {
		if c.Terrain.Walkable() {
			out = append(out, p)
		}
	})
	return out
}

// ApplyVisibility marks every in-bounds point of visible as visible and
// discovered and clears the visible flag everywhere else. Discovered flags are
// never cleared. Out-of-bounds members of visible are ignored.
//
// Postcondition: for every cell, Visible implies Discovered.
func (g *Grid) ApplyVisibility(visible mapset.Set[Point]) {
	for i := range g.cells {
		p := Point{X: i % g.width, Y: i / g.width}
		c := &g.cells[i]
		c.Visible = visible.Has(p)
		if c.Visible {
			c.Discovered = true
		}
	}
}

// RandomCell picks a uniformly random walkable point satisfying accept.
// A nil accept admits every walkable point.
//
// Postcondition: Returns (p, true) with g.IsWalkable(p), or (Point{}, false)
// when no cell qualifies. Consumes one draw from src only when a candidate exists.
func (g *Grid) RandomCell(src Source, accept func(Point) bool) (Point, bool) {
	var candidates []Point
	g.Each(func(p Point, c Cell) {
		if c.Terrain.Walkable() && (accept == nil || accept(p)) {
			candidates = append(candidates, p)
		}
	})
	if len(candidates) == 0 {
		return Point{}, false
	}
	return candidates[src.Intn(len(candidates))], true
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// String renders the terrain as newline-separated rows of glyphs.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			b.WriteByte(g.cells[y*g.width+x].Terrain.Glyph())
		}
	}
	return b.String()
}
