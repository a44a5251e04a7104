package render

import (
	"image"
	"image/color"
	"math"
)

// Point is a 2D position in surface coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Transformer composes like a canvas context: each call applies before the
// transforms already set.
type Transformer interface {
	Translate(dx, dy float64)
	Scale(sx, sy float64)
}

// Surface is what the renderer draws on. Save/Restore push and pop the
// whole transform.
type Surface interface {
	Transformer
	Size() (w, h int)
	Clear(c color.Color)

	Save()
	Restore()

	DrawImage(src image.Image, sr image.Rectangle, dst Rect)
	FillPolygon(pts []Point, c color.Color)
	FillRect(r Rect, c color.Color)
	StrokeLine(a, b Point, width float64, c color.Color)
	StrokePolygon(pts []Point, width float64, c color.Color)
}

// lineQuad returns the rectangle covering a segment of the given width.
func lineQuad(a, b Point, width float64) []Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		h := width / 2
		return []Point{{a.X - h, a.Y - h}, {a.X + h, a.Y - h}, {a.X + h, a.Y + h}, {a.X - h, a.Y + h}}
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	return []Point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}
}

func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}
