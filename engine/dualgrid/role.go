// Package dualgrid derives render tiles from a terrain data grid. Render
// tile (x, y) sits between data cells (x, y) and (x+1, y+1), and its look
// is chosen from which of those four corners match a terrain layer.
package dualgrid

import "github.com/1siamBot/dualgrid/engine/maplib"

// Role is a 4-bit Wang corner mask, one bit per visual corner.
type Role uint8

// Corner bits. Names follow the rendered diamond, not grid adjacency.
const (
	RoleTop    Role = 1 << iota // grid (x, y)
	RoleRight                   // grid (x+1, y)
	RoleBottom                  // grid (x+1, y+1)
	RoleLeft                    // grid (x, y+1)

	RoleNone Role = 0
	RoleFull Role = RoleTop | RoleRight | RoleBottom | RoleLeft
)

// Has reports whether every bit of c is set in r.
func (r Role) Has(c Role) bool { return r&c == c }

// Valid reports whether r fits in four bits.
func (r Role) Valid() bool { return r <= RoleFull }

// Transition reports whether r needs a transition tile: some but not all
// corners match.
func (r Role) Transition() bool { return r != RoleNone && r != RoleFull }

// String renders the mask as corner letters in TRBL order, '-' for unset.
func (r Role) String() string {
	const letters = "TRBL"
	b := []byte("----")
	for i := 0; i < 4; i++ {
		if r&(1<<i) != 0 {
			b[i] = letters[i]
		}
	}
	return string(b)
}

// Corners are the four data cells around a render tile.
type Corners struct {
	Top, Right, Bottom, Left maplib.TerrainType
}

// Role returns the mask of corners whose terrain is at least layer.
func (c Corners) Role(layer maplib.TerrainType) Role {
	var r Role
	if c.Top >= layer {
		r |= RoleTop
	}
	if c.Right >= layer {
		r |= RoleRight
	}
	if c.Bottom >= layer {
		r |= RoleBottom
	}
	if c.Left >= layer {
		r |= RoleLeft
	}
	return r
}

// Base returns the lowest terrain among the corners. It is drawn as a full
// tile under every transition.
func (c Corners) Base() maplib.TerrainType {
	m := c.Top
	for _, t := range [...]maplib.TerrainType{c.Right, c.Bottom, c.Left} {
		if t < m {
			m = t
		}
	}
	return m
}
