package dualgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

func TestSamplerCornerMapping(t *testing.T) {
	g := maplib.NewGrid(3, 3, water)
	g.Set(1, 1, grass) // top of tile (1,1)
	g.Set(2, 1, dirt)  // right
	g.Set(2, 2, sand)  // bottom
	g.Set(1, 2, water) // left

	s := NewSampler(g)
	c := s.Corners(1, 1)
	assert.Equal(t, Corners{Top: grass, Right: dirt, Bottom: sand, Left: water}, c)

	// Tile (0,0) has (1,1) as its bottom corner.
	assert.Equal(t, grass, s.Corners(0, 0).Bottom)
	// Tile (1,0) has (1,1) as its left corner.
	assert.Equal(t, grass, s.Corners(1, 0).Left)
	// Tile (0,1) has (1,1) as its right corner.
	assert.Equal(t, grass, s.Corners(0, 1).Right)

	assert.Equal(t, RoleTop|RoleRight, s.Role(1, 1, dirt))
}

func TestSamplerTileLattice(t *testing.T) {
	s := NewSampler(maplib.NewGrid(5, 3, 0))
	w, h := s.TileSize()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, 8, s.TileCount())
	assert.True(t, s.InBounds(3, 1))
	assert.False(t, s.InBounds(4, 1))
	assert.False(t, s.InBounds(-1, 0))

	single := NewSampler(maplib.NewGrid(1, 1, 0))
	assert.Equal(t, 0, single.TileCount())
}

func TestSamplerEdgeUsesDefault(t *testing.T) {
	g := maplib.NewGrid(2, 2, grass)
	c := NewSampler(g).Corners(1, 1)
	assert.Equal(t, Corners{Top: grass, Right: maplib.TerrainBase, Bottom: maplib.TerrainBase, Left: maplib.TerrainBase}, c)
}

func TestDescribe(t *testing.T) {
	buckets := maplib.MustDefaultBucketSet()
	g := maplib.NewGrid(2, 2, sand)
	g.Set(0, 0, grass)
	g.Set(1, 0, dirt)

	info := NewSampler(g).Describe(0, 0, buckets)
	assert.Equal(t, sand, info.Base)
	require.Len(t, info.Layers, 2)
	// Sand is the base here, so its full role is left to the base layer.
	assert.Equal(t, LayerRole{Layer: dirt, Role: RoleTop | RoleRight}, info.Layers[0])
	assert.Equal(t, LayerRole{Layer: grass, Role: RoleTop}, info.Layers[1])
}
