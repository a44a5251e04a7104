package dualgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

const (
	water maplib.TerrainType = iota
	sand
	dirt
	grass
)

func TestRoleBits(t *testing.T) {
	assert.Equal(t, Role(1), RoleTop)
	assert.Equal(t, Role(2), RoleRight)
	assert.Equal(t, Role(4), RoleBottom)
	assert.Equal(t, Role(8), RoleLeft)
	assert.Equal(t, Role(15), RoleFull)
	assert.True(t, RoleFull.Valid())
	assert.False(t, Role(16).Valid())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "----", RoleNone.String())
	assert.Equal(t, "TRBL", RoleFull.String())
	assert.Equal(t, "TR--", (RoleTop | RoleRight).String())
	assert.Equal(t, "--BL", (RoleBottom | RoleLeft).String())
}

func TestRoleScenario(t *testing.T) {
	c := Corners{Top: grass, Right: grass, Bottom: sand, Left: sand}

	assert.Equal(t, Role(3), c.Role(grass))
	assert.Equal(t, Role(15), c.Role(sand))
	assert.Equal(t, sand, c.Base())
	assert.True(t, c.Role(grass).Transition())
	assert.False(t, c.Role(sand).Transition())
}

func allCorners() []Corners {
	var out []Corners
	for a := water; a <= grass; a++ {
		for b := water; b <= grass; b++ {
			for c := water; c <= grass; c++ {
				for d := water; d <= grass; d++ {
					out = append(out, Corners{a, b, c, d})
				}
			}
		}
	}
	return out
}

func TestRoleAtBaseIsFull(t *testing.T) {
	for _, c := range allCorners() {
		require.Equal(t, RoleFull, c.Role(c.Base()), "corners %+v", c)
	}
}

func TestRoleMonotonic(t *testing.T) {
	for _, c := range allCorners() {
		for layer := sand; layer <= grass+1; layer++ {
			hi := c.Role(layer)
			lo := c.Role(layer - 1)
			// Lowering the layer can only add corners.
			require.Equal(t, hi, hi&lo, "corners %+v layer %d", c, layer)
		}
	}
}

func TestRoleUsesAtLeastComparison(t *testing.T) {
	c := Corners{Top: grass, Right: dirt, Bottom: sand, Left: water}
	assert.Equal(t, RoleTop|RoleRight|RoleBottom, c.Role(sand))
	assert.Equal(t, RoleTop|RoleRight, c.Role(dirt))
	assert.Equal(t, RoleTop, c.Role(grass))
	assert.Equal(t, RoleNone, c.Role(grass+1))
}
