package grid

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// FloodFill returns every in-bounds point 4-connected to start through points
// satisfying passable. start itself is included only if it is passable.
func (g *Grid) FloodFill(start Point, passable func(Point) bool) mapset.Set[Point] {
	reached := mapset.New[Point]()
	if !g.InBounds(start) || !passable(start) {
		return reached
	}
	reached.Put(start)
	q := queue.New[Point]()
	q.Enqueue(start)
	for !q.Empty() {
		cur := q.Dequeue()
		for _, n := range cur.Neighbors4() {
			if !g.InBounds(n) || reached.Has(n) || !passable(n) {
				continue
			}
			reached.Put(n)
			q.Enqueue(n)
		}
	}
	return reached
}

// Regions partitions the walkable cells into 4-connected regions. Regions are
// ordered by their first cell in row-major order.
func (g *Grid) Regions() []mapset.Set[Point] {
	seen := mapset.New[Point]()
	var regions []mapset.Set[Point]
	g.Each(func(p Point, c Cell) {
		if !c.Terrain.Walkable() || seen.Has(p) {
			return
		}
		region := g.FloodFill(p, g.IsWalkable)
		region.Each(func(q Point) { seen.Put(q) })
		regions = append(regions, region)
	})
	return regions
}

// Connected reports whether g has at least one walkable cell and every
// walkable cell is reachable from every other.
func (g *Grid) Connected() bool {
	walkable := g.WalkablePoints()
	if len(walkable) == 0 {
		return false
	}
	return g.FloodFill(walkable[0], g.IsWalkable).Size() == len(walkable)
}
