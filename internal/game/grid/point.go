// Package grid provides the dungeon terrain model: points, terrain kinds,
// cells, and the fixed-size Grid every other game package operates on.
package grid

import "fmt"

// Point is an integer grid coordinate. It is also used for directions and
// offsets.
type Point struct {
	X int
	Y int
}

// Cardinal directions in neighbour expansion order.
var (
	North = Point{X: 0, Y: -1}
	East  = Point{X: 1, Y: 0}
	South = Point{X: 0, Y: 1}
	West  = Point{X: -1, Y: 0}
)

// Cardinals lists the four cardinal directions in N, E, S, W order.
var Cardinals = [4]Point{North, East, South, West}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns the 4-connected distance between p and q.
//
// Postcondition: Returns >= 0.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Chebyshev returns the 8-connected distance between p and q.
//
// Postcondition: Returns >= 0.
func (p Point) Chebyshev(q Point) int {
	dx, dy := abs(p.X-q.X), abs(p.Y-q.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Neighbors4 returns the four cardinal neighbours of p in N, E, S, W order.
// Bounds are not checked.
func (p Point) Neighbors4() [4]Point {
	var out [4]Point
	for i, d := range Cardinals {
		out[i] = p.Add(d)
	}
	return out
}

// Adjacent reports whether q is one cardinal step from p.
func (p Point) Adjacent(q Point) bool {
	return p.Manhattan(q) == 1
}

// String renders p as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
