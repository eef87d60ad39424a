package levelgen

import (
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/grid"
)

// RoomsParams configures the room-and-corridor generator. Sizes include the
// one-cell wall ring, so the smallest useful room is 3.
type RoomsParams struct {
	// MaxRooms caps the number of rooms placed.
	MaxRooms int
	// MinSize and MaxSize bound room width and height.
	MinSize int
	MaxSize int
	// Attempts is the placement budget; 0 means MaxRooms.
	Attempts int
}

// Rooms places randomly sized rectangles, rejecting any that intersect an
// earlier one, and joins each accepted room to the previous one with an
// L-shaped corridor. Per attempt it draws width, height, x, y and, when
// connecting, the corridor's axis order.
//
// Precondition: width > 0 and height > 0.
// Postcondition: the result is connected; fewer than MaxRooms rooms is normal.
func Rooms(width, height int, p RoomsParams, src dice.Source) *grid.Grid {
	mustPositive(width, height)
	g := grid.New(width, height)

	maxW, maxH := min(p.MaxSize, width), min(p.MaxSize, height)
	minW, minH := max(3, min(p.MinSize, maxW)), max(3, min(p.MinSize, maxH))
	if maxW < 3 || maxH < 3 || p.MaxRooms <= 0 {
		return finalize(g)
	}

	attempts := p.Attempts
	if attempts <= 0 {
		attempts = p.MaxRooms
	}

	var rooms []Rect
	for i := 0; i < attempts && len(rooms) < p.MaxRooms; i++ {
		w := dice.Between(src, minW, maxW)
		h := dice.Between(src, minH, maxH)
		candidate := Rect{
			X: dice.Between(src, 0, width-w),
			Y: dice.Between(src, 0, height-h),
			W: w,
			H: h,
		}
		if intersectsAny(candidate, rooms) {
			continue
		}
		carveRoom(g, candidate)
		if len(rooms) > 0 {
			prev := rooms[len(rooms)-1]
			carveCorridor(g, prev.Center(), candidate.Center(), src.Intn(2) == 0)
		}
		rooms = append(rooms, candidate)
	}
	return finalize(g)
}

func intersectsAny(r Rect, placed []Rect) bool {
	for _, o := range placed {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}
