// Package fov computes what an observer can see using shadowcasting over the
// eight octants around the origin.
package fov

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/cory-johannsen/delve/internal/game/grid"
)

// octants maps the shared single-octant scan onto each of the eight octants:
// world = origin + dx*(xx, yx) + dy*(xy, yy).
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// scan is one pending pass over an octant from row outward, restricted to the
// slope interval [end, start].
type scan struct {
	row        int
	start, end float64
}

// ComputeVisible returns every point visible from origin within radius.
// A point is lit when it falls inside the unshadowed slope interval and its
// Euclidean distance from origin is at most radius. isOpaque must report
// out-of-grid points as opaque; such points may appear in the result.
//
// Postcondition: the result always contains origin; radius <= 0 yields only origin.
func ComputeVisible(origin grid.Point, radius int, isOpaque func(grid.Point) bool) mapset.Set[grid.Point] {
	visible := mapset.New[grid.Point]()
	visible.Put(origin)
	if radius <= 0 {
		return visible
	}
	for _, m := range octants {
		castOctant(visible, origin, radius, m, isOpaque)
	}
	return visible
}

// castOctant runs the shadowcasting row scan for one octant. Scans that the
// classic formulation would recurse into are pushed onto a worklist; each scan
// depends only on its own row and slopes, so the lit set is unchanged.
func castOctant(visible mapset.Set[grid.Point], origin grid.Point, radius int, m [4]int, isOpaque func(grid.Point) bool) {
	xx, xy, yx, yy := m[0], m[1], m[2], m[3]
	radiusSq := radius * radius
	work := []scan{{row: 1, start: 1.0, end: 0.0}}

	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		start := s.start
		if start < s.end {
			continue
		}

		var newStart float64
		blocked := false
		for j := s.row; j <= radius && !blocked; j++ {
			dy := -j
			for dx := -j; dx <= 0; dx++ {
				lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
				rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
				if start < rSlope {
					continue
				}
				if s.end > lSlope {
					break
				}

				p := grid.Point{
					X: origin.X + dx*xx + dy*xy,
					Y: origin.Y + dx*yx + dy*yy,
				}
				if dx*dx+dy*dy <= radiusSq {
					visible.Put(p)
				}

				opaque := isOpaque(p)
				switch {
				case blocked:
					if opaque {
						newStart = rSlope
						continue
					}
					blocked = false
					start = newStart
				case opaque && j < radius:
					blocked = true
					work = append(work, scan{row: j + 1, start: start, end: lSlope})
					newStart = rSlope
				}
			}
		}
	}
}

// ComputeCircle returns every point within radius of origin, ignoring
// occlusion. It is the fallback for contexts without terrain.
//
// Postcondition: the result always contains origin.
func ComputeCircle(origin grid.Point, radius int) mapset.Set[grid.Point] {
	visible := mapset.New[grid.Point]()
	visible.Put(origin)
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				visible.Put(grid.Point{X: origin.X + dx, Y: origin.Y + dy})
			}
		}
	}
	return visible
}

// Update recomputes visibility from origin over g and applies it: visible
// cells become visible and discovered, all other cells lose their visible flag.
//
// Precondition: g.InBounds(origin).
// Postcondition: Returns the in-bounds visible set.
func Update(g *grid.Grid, origin grid.Point, radius int) mapset.Set[grid.Point] {
	if !g.InBounds(origin) {
		panic("fov: Update origin " + origin.String() + " out of bounds")
	}
	raw := ComputeVisible(origin, radius, g.IsOpaque)
	visible := mapset.New[grid.Point]()
	raw.Each(func(p grid.Point) {
		if g.InBounds(p) {
			visible.Put(p)
		}
	})
	g.ApplyVisibility(visible)
	return visible
}

// CanSee reports whether to is visible from from within radius on g.
func CanSee(g *grid.Grid, from, to grid.Point, radius int) bool {
	if from.DistSq(to) > radius*radius {
		return false
	}
	return ComputeVisible(from, radius, g.IsOpaque).Has(to)
}
