package render

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects projection and tile source.
type Mode uint8

const (
	ModeIsometricTextured Mode = iota
	ModeIsometricColored
	ModeOrthographicColored
)

var modeNames = [...]string{
	ModeIsometricTextured:   "isometric-textured",
	ModeIsometricColored:    "isometric-colored",
	ModeOrthographicColored: "orthographic-colored",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ModeNames lists the mode names in cycle order.
func ModeNames() []string { return append([]string(nil), modeNames[:]...) }

// ParseMode parses a mode name as printed by String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// Isometric reports whether m uses the diamond projection.
func (m Mode) Isometric() bool { return m != ModeOrthographicColored }

// Textured reports whether m draws sprites and so depends on assets.
func (m Mode) Textured() bool { return m == ModeIsometricTextured }

// Next cycles through the modes.
func (m Mode) Next() Mode { return (m + 1) % Mode(len(modeNames)) }

// floorEpsilon absorbs rounding when a grid point is inverted exactly.
const floorEpsilon = 1e-9

// Projection maps grid coordinates to screen pixels and back. Raw methods
// give positions before zoom; the renderer draws raw positions under a
// single zoom transform for the whole frame, and the zoomed methods apply
// the same math for hit testing.
type Projection struct {
	Isometric  bool
	TileWidth  float64 // isometric diamond width
	TileHeight float64 // isometric diamond height
	CellSize   float64 // orthographic square size

	OriginX, OriginY float64 // raw position of grid point (0, 0)
	Zoom             float64 // scale about the pivot
	PivotX, PivotY   float64 // usually the viewport center
}

// RawOffset returns the position of grid point (gx, gy) relative to the
// origin, before zoom.
func (p Projection) RawOffset(gx, gy float64) (float64, float64) {
	if p.Isometric {
		return (gx - gy) * (p.TileWidth / 2), (gx + gy) * (p.TileHeight / 2)
	}
	return gx * p.CellSize, gy * p.CellSize
}

// RawGridToScreen projects a grid position without zoom.
func (p Projection) RawGridToScreen(gx, gy float64) Point {
	ox, oy := p.RawOffset(gx, gy)
	return Point{p.OriginX + ox, p.OriginY + oy}
}

// GridToScreen projects a grid position to screen pixels.
func (p Projection) GridToScreen(gx, gy float64) Point {
	return p.zoom(p.RawGridToScreen(gx, gy))
}

// TileCenter returns the screen center of render tile (x, y), which sits
// between grid points (x, y) and (x+1, y+1).
func (p Projection) TileCenter(x, y int) Point {
	return p.GridToScreen(float64(x)+0.5, float64(y)+0.5)
}

// ScreenToGrid inverts GridToScreen.
func (p Projection) ScreenToGrid(sx, sy float64) (gx, gy float64) {
	z := p.zoomFactor()
	rx := (sx-p.PivotX)/z + p.PivotX - p.OriginX
	ry := (sy-p.PivotY)/z + p.PivotY - p.OriginY
	if p.Isometric {
		hw, hh := p.TileWidth/2, p.TileHeight/2
		return (rx/hw + ry/hh) / 2, (ry/hh - rx/hw) / 2
	}
	return rx / p.CellSize, ry / p.CellSize
}

// ScreenToTile returns the render tile under a screen position.
func (p Projection) ScreenToTile(sx, sy float64) (x, y int) {
	gx, gy := p.ScreenToGrid(sx, sy)
	return int(math.Floor(gx + floorEpsilon)), int(math.Floor(gy + floorEpsilon))
}

// TileOutline returns the raw corner positions of render tile (x, y) in
// top, right, bottom, left order. Each vertex is the grid point of the
// matching corner, so the same polygon works for both projections.
func (p Projection) TileOutline(x, y int) [4]Point {
	fx, fy := float64(x), float64(y)
	return [4]Point{
		p.RawGridToScreen(fx, fy),
		p.RawGridToScreen(fx+1, fy),
		p.RawGridToScreen(fx+1, fy+1),
		p.RawGridToScreen(fx, fy+1),
	}
}

// TileBounds returns the raw bounding box of render tile (x, y).
func (p Projection) TileBounds(x, y int) Rect {
	o := p.TileOutline(x, y)
	if p.Isometric {
		return Rect{X: o[3].X, Y: o[0].Y, W: o[1].X - o[3].X, H: o[2].Y - o[0].Y}
	}
	return Rect{X: o[0].X, Y: o[0].Y, W: o[1].X - o[0].X, H: o[3].Y - o[0].Y}
}

func (p Projection) zoomFactor() float64 {
	if p.Zoom <= 0 {
		return 1
	}
	return p.Zoom
}

func (p Projection) zoom(pt Point) Point {
	z := p.zoomFactor()
	return Point{p.PivotX + (pt.X-p.PivotX)*z, p.PivotY + (pt.Y-p.PivotY)*z}
}

// Apply installs the zoom on s so raw positions land where GridToScreen
// says. Callers bracket it with exactly one Save/Restore per frame.
func (p Projection) Apply(s Transformer) {
	z := p.zoomFactor()
	s.Translate(p.PivotX, p.PivotY)
	s.Scale(z, z)
	s.Translate(-p.PivotX, -p.PivotY)
}
