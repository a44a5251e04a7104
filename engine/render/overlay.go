package render

import (
	"image/color"
	"math"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

// Overlays are drawn after both terrain passes and never change terrain
// pixels underneath them other than by painting over.

func (r *Renderer) drawTileOutlines(s Surface, proj Projection, minX, minY, maxX, maxY int) {
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			o := proj.TileOutline(x, y)
			s.StrokePolygon(o[:], 1, r.TileColor)
		}
	}
}

// drawWorldGrid draws lines through the data grid points and a marker on
// each point colored by its terrain.
func (r *Renderer) drawWorldGrid(s Surface, proj Projection, scene Scene) {
	g := scene.Grid
	w, h := g.Width(), g.Height()

	for y := 0; y < h; y++ {
		a := proj.RawGridToScreen(0, float64(y))
		b := proj.RawGridToScreen(float64(w-1), float64(y))
		s.StrokeLine(a, b, 1, r.GridColor)
	}
	for x := 0; x < w; x++ {
		a := proj.RawGridToScreen(float64(x), 0)
		b := proj.RawGridToScreen(float64(x), float64(h-1))
		s.StrokeLine(a, b, 1, r.GridColor)
	}

	outline := color.RGBA{0, 0, 0, 200}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := proj.RawGridToScreen(float64(x), float64(y))
			m := cornerMarker(p, 3)
			s.FillPolygon(m, scene.Buckets.Color(g.At(x, y)))
			s.StrokePolygon(m, 1, outline)
		}
	}
}

func cornerMarker(p Point, radius float64) []Point {
	return []Point{
		{p.X, p.Y - radius},
		{p.X + radius, p.Y},
		{p.X, p.Y + radius},
		{p.X - radius, p.Y},
	}
}

// TerrainAt returns the render tile under a screen position and the data
// cell nearest to it, for hover display.
func TerrainAt(proj Projection, g *maplib.Grid, sx, sy float64) (tileX, tileY int, cell maplib.TerrainType, inGrid bool) {
	tileX, tileY = proj.ScreenToTile(sx, sy)
	cx, cy := CellAt(proj, sx, sy)
	return tileX, tileY, g.At(cx, cy), g.InBounds(cx, cy)
}

// CellAt returns the data cell whose grid point is nearest to a screen
// position. The result may lie outside the grid.
func CellAt(proj Projection, sx, sy float64) (cx, cy int) {
	gx, gy := proj.ScreenToGrid(sx, sy)
	return int(math.Floor(gx + 0.5)), int(math.Floor(gy + 0.5))
}
