package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isoProjection() Projection {
	return Projection{Isometric: true, TileWidth: 64, TileHeight: 32, CellSize: 40, Zoom: 1}
}

func TestIsometricTileCenter(t *testing.T) {
	p := isoProjection()
	c := p.TileCenter(2, 3)
	assert.InDelta(t, -32, c.X, 1e-9)
	assert.InDelta(t, 96, c.Y, 1e-9)
}

func TestIsometricGridPoint(t *testing.T) {
	p := isoProjection()
	p.OriginX, p.OriginY = 100, 50
	pt := p.GridToScreen(2, 3)
	assert.InDelta(t, 100+(2-3)*32.0, pt.X, 1e-9)
	assert.InDelta(t, 50+(2+3)*16.0, pt.Y, 1e-9)
}

func TestOrthographicGridPoint(t *testing.T) {
	p := Projection{CellSize: 40, Zoom: 1, OriginX: 10, OriginY: 20}
	pt := p.GridToScreen(2, 3)
	assert.Equal(t, Point{90, 140}, pt)

	x, y := p.ScreenToTile(90+39.9, 140+0.1)
	assert.Equal(t, 2, x)
	assert.Equal(t, 3, y)
}

func TestProjectionRoundTrip(t *testing.T) {
	zooms := []float64{0.25, 0.5, 1, 1.7, 3}
	origins := [][2]float64{{0, 0}, {640, 360}, {-123.5, 77.25}}
	for _, iso := range []bool{true, false} {
		for _, z := range zooms {
			for _, o := range origins {
				name := fmt.Sprintf("iso=%v zoom=%v origin=%v", iso, z, o)
				t.Run(name, func(t *testing.T) {
					p := Projection{
						Isometric: iso, TileWidth: 64, TileHeight: 32, CellSize: 40,
						OriginX: o[0], OriginY: o[1], Zoom: z, PivotX: 640, PivotY: 360,
					}
					for y := -3; y < 12; y++ {
						for x := -3; x < 12; x++ {
							c := p.TileCenter(x, y)
							tx, ty := p.ScreenToTile(c.X, c.Y)
							require.Equal(t, [2]int{x, y}, [2]int{tx, ty}, "tile center")

							g := p.GridToScreen(float64(x), float64(y))
							gx, gy := p.ScreenToTile(g.X, g.Y)
							require.Equal(t, [2]int{x, y}, [2]int{gx, gy}, "grid point")
						}
					}
				})
			}
		}
	}
}

func TestScreenToGridInvertsZoomAboutPivot(t *testing.T) {
	p := isoProjection()
	p.PivotX, p.PivotY = 400, 300
	p.OriginX, p.OriginY = 400, 300
	p.Zoom = 2

	// Grid point (1, 0) is one half-tile right and down of the origin,
	// doubled by zoom.
	pt := p.GridToScreen(1, 0)
	assert.InDelta(t, 464, pt.X, 1e-9)
	assert.InDelta(t, 332, pt.Y, 1e-9)

	gx, gy := p.ScreenToGrid(464, 332)
	assert.InDelta(t, 1, gx, 1e-9)
	assert.InDelta(t, 0, gy, 1e-9)
}

func TestTileOutlineMatchesCorners(t *testing.T) {
	p := isoProjection()
	o := p.TileOutline(2, 3)
	assert.Equal(t, p.RawGridToScreen(2, 3), o[0])
	assert.Equal(t, p.RawGridToScreen(3, 3), o[1])
	assert.Equal(t, p.RawGridToScreen(3, 4), o[2])
	assert.Equal(t, p.RawGridToScreen(2, 4), o[3])

	b := p.TileBounds(2, 3)
	assert.Equal(t, Rect{X: -64, Y: 80, W: 64, H: 32}, b)

	ortho := Projection{CellSize: 40, Zoom: 1}
	assert.Equal(t, Rect{X: 80, Y: 120, W: 40, H: 40}, ortho.TileBounds(2, 3))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeIsometricTextured, ModeIsometricColored, ModeOrthographicColored} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("hexagonal")
	assert.Error(t, err)

	assert.True(t, ModeIsometricTextured.Textured())
	assert.False(t, ModeIsometricColored.Textured())
	assert.False(t, ModeOrthographicColored.Isometric())
	assert.Equal(t, ModeIsometricTextured, ModeOrthographicColored.Next())
}

func TestViewProjection(t *testing.T) {
	v := DefaultView()
	v.CameraX, v.CameraY = 15, -5
	v.Zoom = 2
	p := v.Projection(800, 600)
	assert.Equal(t, 415.0, p.OriginX)
	assert.Equal(t, 295.0, p.OriginY)
	assert.Equal(t, 400.0, p.PivotX)
	assert.Equal(t, 300.0, p.PivotY)
	assert.True(t, p.Isometric)
	assert.True(t, v.Valid())

	v.Zoom = 0
	assert.False(t, v.Valid())
}
