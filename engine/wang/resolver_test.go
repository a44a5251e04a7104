package wang

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/maplib"
)

type mapProvider map[maplib.TerrainType]*Tileset

func (p mapProvider) Tileset(t maplib.TerrainType) (*Tileset, bool) {
	ts, ok := p[t]
	return ts, ok
}

func fullTileset(w, h, perRow int) *Tileset {
	meta := &Metadata{TileWidth: w, TileHeight: h, WangSets: []WangSet{{}}}
	for r := 1; r <= 15; r++ {
		meta.WangSets[0].Members = append(meta.WangSets[0].Members, Member{ID: r - 1, Role: r})
	}
	rows := (15 + perRow - 1) / perRow
	sheet := image.NewRGBA(image.Rect(0, 0, perRow*w, rows*h))
	return NewTileset(sheet, meta, perRow)
}

func TestSourceRect(t *testing.T) {
	ts := &Tileset{TileWidth: 64, TileHeight: 32}
	// Zero TilesPerRow falls back to the default of 8.
	assert.Equal(t, image.Rect(0, 0, 64, 32), ts.SourceRect(0))
	assert.Equal(t, image.Rect(7*64, 0, 8*64, 32), ts.SourceRect(7))
	assert.Equal(t, image.Rect(64, 32, 128, 64), ts.SourceRect(9))

	ts.TilesPerRow = 4
	assert.Equal(t, image.Rect(64, 64, 128, 96), ts.SourceRect(9))
}

func TestSourceRectHonorsSheetOrigin(t *testing.T) {
	sheet := image.NewRGBA(image.Rect(10, 20, 10+8*16, 20+2*8))
	ts := &Tileset{Sheet: sheet, TileWidth: 16, TileHeight: 8, TilesPerRow: 8}
	assert.Equal(t, image.Rect(26, 28, 42, 36), ts.SourceRect(9))
}

func TestSpriteResolver(t *testing.T) {
	ts := fullTileset(16, 8, 8)
	r := SpriteResolver{Assets: mapProvider{2: ts}}

	v, ok := r.Resolve(2, 10)
	require.True(t, ok)
	assert.Equal(t, VariantSprite, v.Kind)
	assert.Equal(t, 9, v.ID)
	assert.Equal(t, image.Rect(16, 8, 32, 16), v.Src)
	assert.Same(t, ts.Sheet, v.Sheet)

	_, ok = r.Resolve(2, dualgrid.RoleNone)
	assert.False(t, ok, "role 0 is never drawable")

	_, ok = r.Resolve(3, 5)
	assert.False(t, ok, "missing terrain entry")

	assert.NotPanics(t, func() {
		_, ok = SpriteResolver{}.Resolve(2, 5)
	})
	assert.False(t, ok)
}

func TestSpriteResolverSkipsMalformedEntries(t *testing.T) {
	meta := &Metadata{
		TileWidth:  16,
		TileHeight: 8,
		WangSets:   []WangSet{{Members: []Member{{ID: 1, Role: 1}, {ID: 500, Role: 2}}}},
	}
	sheet := image.NewRGBA(image.Rect(0, 0, 32, 8))
	r := SpriteResolver{Assets: mapProvider{0: NewTileset(sheet, meta, 8)}}

	_, ok := r.Resolve(0, 1)
	assert.True(t, ok)
	_, ok = r.Resolve(0, 2)
	assert.False(t, ok, "id outside the sheet")
	_, ok = r.Resolve(0, 4)
	assert.False(t, ok, "role missing from table")
}

func TestShapeResolver(t *testing.T) {
	buckets := maplib.MustDefaultBucketSet()
	r := ShapeResolver{Buckets: buckets}

	v, ok := r.Resolve(3, dualgrid.RoleTop|dualgrid.RoleLeft)
	require.True(t, ok)
	assert.Equal(t, VariantShape, v.Kind)
	assert.Equal(t, dualgrid.RoleTop|dualgrid.RoleLeft, v.Role)
	assert.Equal(t, color.RGBA{34, 139, 34, 255}, v.Color)

	_, ok = r.Resolve(3, dualgrid.RoleNone)
	assert.False(t, ok)
	_, ok = r.Resolve(9, dualgrid.RoleFull)
	assert.False(t, ok)
}
