package grid

import "fmt"

// Terrain is the kind of ground occupying a cell.
//
// The zero value is Wall so a freshly constructed Grid is solid rock.
type Terrain int

const (
	// Wall blocks movement and sight.
	Wall Terrain = iota
	// Floor is open ground.
	Floor
	// ClosedDoor can be walked through but blocks sight.
	ClosedDoor
	// OpenDoor behaves like floor.
	OpenDoor
	// Chasm blocks movement but not sight.
	Chasm
)

// Walkable reports whether an agent may occupy terrain t.
func (t Terrain) Walkable() bool {
	switch t {
	case Floor, ClosedDoor, OpenDoor:
		return true
	default:
		return false
	}
}

// Transparent reports whether terrain t lets line of sight pass.
func (t Terrain) Transparent() bool {
	switch t {
	case Floor, OpenDoor, Chasm:
		return true
	default:
		return false
	}
}

// Glyph returns the single character used by Grid.String.
func (t Terrain) Glyph() byte {
	switch t {
	case Wall:
		return '#'
	case Floor:
		return '.'
	case ClosedDoor:
		return '+'
	case OpenDoor:
		return '\''
	case Chasm:
		return ':'
	default:
		return '?'
	}
}

// String returns the terrain name.
func (t Terrain) String() string {
	switch t {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case ClosedDoor:
		return "closed_door"
	case OpenDoor:
		return "open_door"
	case Chasm:
		return "chasm"
	default:
		return fmt.Sprintf("terrain(%d)", int(t))
	}
}

// TerrainFromGlyph is the inverse of Terrain.Glyph.
//
// Postcondition: Returns (t, true) for a known glyph, or (Wall, false) otherwise.
func TerrainFromGlyph(g byte) (Terrain, bool) {
	switch g {
	case '#':
		return Wall, true
	case '.':
		return Floor, true
	case '+':
		return ClosedDoor, true
	case '\'':
		return OpenDoor, true
	case ':':
		return Chasm, true
	default:
		return Wall, false
	}
}

// Cell is one unit of the Grid.
//
// Invariant: Visible implies Discovered.
type Cell struct {
	Terrain    Terrain
	Discovered bool
	Visible    bool
}
