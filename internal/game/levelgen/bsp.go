package levelgen

import (
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// BSPParams configures the binary-space-partition generator.
type BSPParams struct {
	// MaxDepth bounds the partition tree height.
	MaxDepth int
	// MinPartition is the smallest width or height a partition may have.
	MinPartition int
	// MinRoomSize is the smallest room side, wall ring included.
	MinRoomSize int
}

// splitRatio forces a split across the long axis of elongated partitions.
const splitRatio = 1.25

type partition struct {
	area        Rect
	left, right *partition
	room        Rect
	hasRoom     bool
}

func (n *partition) leaf() bool { return n.left == nil }

// BSP recursively splits the grid, places one room per leaf, and connects the
// two subtrees of every internal node with an L-shaped corridor between the
// rooms closest to the split line.
//
// Precondition: width > 0 and height > 0.
// Postcondition: the result is connected.
func BSP(width, height int, p BSPParams, src dice.Source) *grid.Grid {
	mustPositive(width, height)
	g := grid.New(width, height)

	minPart := max(3, p.MinPartition)
	root := &partition{area: Rect{X: 0, Y: 0, W: width, H: height}}
	split(root, 0, p.MaxDepth, minPart, src)
	placeRooms(g, root, max(3, p.MinRoomSize), src)
	connect(g, root, src)
	return finalize(g)
}

func split(n *partition, depth, maxDepth, minPart int, src dice.Source) {
	if depth >= maxDepth {
		return
	}
	a := n.area
	canV, canH := a.W >= 2*minPart, a.H >= 2*minPart
	if !canV && !canH {
		return
	}

	var vertical bool
	switch {
	case canV && canH:
		switch {
		case float64(a.W)/float64(a.H) >= splitRatio:
			vertical = true
		case float64(a.H)/float64(a.W) >= splitRatio:
			vertical = false
		default:
			vertical = src.Intn(2) == 0
		}
	default:
		vertical = canV
	}

	if vertical {
		cut := dice.Between(src, minPart, a.W-minPart)
		n.left = &partition{area: Rect{X: a.X, Y: a.Y, W: cut, H: a.H}}
		n.right = &partition{area: Rect{X: a.X + cut, Y: a.Y, W: a.W - cut, H: a.H}}
	} else {
		cut := dice.Between(src, minPart, a.H-minPart)
		n.left = &partition{area: Rect{X: a.X, Y: a.Y, W: a.W, H: cut}}
		n.right = &partition{area: Rect{X: a.X, Y: a.Y + cut, W: a.W, H: a.H - cut}}
	}
	split(n.left, depth+1, maxDepth, minPart, src)
	split(n.right, depth+1, maxDepth, minPart, src)
}

func placeRooms(g *grid.Grid, n *partition, minRoom int, src dice.Source) {
	if !n.leaf() {
		placeRooms(g, n.left, minRoom, src)
		placeRooms(g, n.right, minRoom, src)
		return
	}
	a := n.area
	if a.W < 3 || a.H < 3 {
		return
	}
	w := dice.Between(src, min(minRoom, a.W), a.W)
	h := dice.Between(src, min(minRoom, a.H), a.H)
	n.room = Rect{
		X: dice.Between(src, a.X, a.X+a.W-w),
		Y: dice.Between(src, a.Y, a.Y+a.H-h),
		W: w,
		H: h,
	}
	n.hasRoom = true
	carveRoom(g, n.room)
}

func connect(g *grid.Grid, n *partition, src dice.Source) {
	if n.leaf() {
		return
	}
	connect(g, n.left, src)
	connect(g, n.right, src)
	a, okA := lastRoom(n.left)
	b, okB := firstRoom(n.right)
	if !okA || !okB {
		return
	}
	carveCorridor(g, a.Center(), b.Center(), src.Intn(2) == 0)
}

// firstRoom returns the room of the left-most leaf that has one.
func firstRoom(n *partition) (Rect, bool) {
	if n.leaf() {
		return n.room, n.hasRoom
	}
	if r, ok := firstRoom(n.left); ok {
		return r, true
	}
	return firstRoom(n.right)
}

// lastRoom returns the room of the right-most leaf that has one.
func lastRoom(n *partition) (Rect, bool) {
	if n.leaf() {
		return n.room, n.hasRoom
	}
	if r, ok := lastRoom(n.right); ok {
		return r, true
	}
	return lastRoom(n.left)
}
