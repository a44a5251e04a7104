package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// RasterSurface draws into an in-memory RGBA image. It backs PNG export,
// the tileset generator and tests, none of which have a window.
type RasterSurface struct {
	img    *image.RGBA
	m      f64.Aff3
	stack  []f64.Aff3
	raster vector.Rasterizer

	// Interp scales sprites; nil means xdraw.ApproxBiLinear.
	Interp xdraw.Interpolator
}

// NewRasterSurface allocates a transparent w x h surface.
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		m:   identity,
	}
}

// Image returns the backing image.
func (r *RasterSurface) Image() *image.RGBA { return r.img }

// Size implements Surface.
func (r *RasterSurface) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole image, ignoring the transform.
func (r *RasterSurface) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Save implements Surface.
func (r *RasterSurface) Save() {
	r.stack = append(r.stack, r.m)
}

// Restore implements Surface. Restoring an empty stack resets to identity.
func (r *RasterSurface) Restore() {
	if len(r.stack) == 0 {
		r.m = identity
		return
	}
	r.m = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// Translate implements Surface.
func (r *RasterSurface) Translate(dx, dy float64) {
	r.m = mul(r.m, f64.Aff3{1, 0, dx, 0, 1, dy})
}

// Scale implements Surface.
func (r *RasterSurface) Scale(sx, sy float64) {
	r.m = mul(r.m, f64.Aff3{sx, 0, 0, 0, sy, 0})
}

// DrawImage implements Surface.
func (r *RasterSurface) DrawImage(src image.Image, sr image.Rectangle, dst Rect) {
	if sr.Empty() || dst.W <= 0 || dst.H <= 0 {
		return
	}
	kx := dst.W / float64(sr.Dx())
	ky := dst.H / float64(sr.Dy())
	// Maps source pixels into dst before the surface transform.
	place := f64.Aff3{
		kx, 0, dst.X - kx*float64(sr.Min.X),
		0, ky, dst.Y - ky*float64(sr.Min.Y),
	}
	interp := r.Interp
	if interp == nil {
		interp = xdraw.ApproxBiLinear
	}
	interp.Transform(r.img, mul(r.m, place), src, sr, xdraw.Over, nil)
}

// FillPolygon implements Surface.
func (r *RasterSurface) FillPolygon(pts []Point, c color.Color) {
	r.fillDevice(r.apply(pts), c)
}

// FillRect implements Surface.
func (r *RasterSurface) FillRect(rc Rect, c color.Color) {
	r.FillPolygon([]Point{
		{rc.X, rc.Y}, {rc.X + rc.W, rc.Y}, {rc.X + rc.W, rc.Y + rc.H}, {rc.X, rc.Y + rc.H},
	}, c)
}

// StrokeLine implements Surface. The width scales with the transform.
func (r *RasterSurface) StrokeLine(a, b Point, width float64, c color.Color) {
	dev := r.apply([]Point{a, b})
	r.fillDevice(lineQuad(dev[0], dev[1], width*r.scale()), c)
}

// StrokePolygon implements Surface.
func (r *RasterSurface) StrokePolygon(pts []Point, width float64, c color.Color) {
	for i := range pts {
		r.StrokeLine(pts[i], pts[(i+1)%len(pts)], width, c)
	}
}

func (r *RasterSurface) apply(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{
			X: r.m[0]*p.X + r.m[1]*p.Y + r.m[2],
			Y: r.m[3]*p.X + r.m[4]*p.Y + r.m[5],
		}
	}
	return out
}

func (r *RasterSurface) scale() float64 {
	return math.Sqrt(math.Abs(r.m[0]*r.m[4] - r.m[1]*r.m[3]))
}

// fillDevice rasterizes a polygon given in pixel coordinates. Only the
// polygon's clipped bounding box is rasterized.
func (r *RasterSurface) fillDevice(pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(r.img.Bounds())
	if box.Empty() {
		return
	}

	pts = clipPolygon(pts, box)
	if len(pts) < 3 {
		return
	}

	r.raster.Reset(box.Dx(), box.Dy())
	r.raster.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.raster.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		r.raster.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	r.raster.ClosePath()
	r.raster.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

// mul returns a∘b: b is applied first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// clipPolygon clips pts to rect (Sutherland-Hodgman).
func clipPolygon(pts []Point, rect image.Rectangle) []Point {
	x0, y0 := float64(rect.Min.X), float64(rect.Min.Y)
	x1, y1 := float64(rect.Max.X), float64(rect.Max.Y)

	edges := []struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{func(p Point) bool { return p.X >= x0 }, func(a, b Point) Point { return atX(a, b, x0) }},
		{func(p Point) bool { return p.X <= x1 }, func(a, b Point) Point { return atX(a, b, x1) }},
		{func(p Point) bool { return p.Y >= y0 }, func(a, b Point) Point { return atY(a, b, y0) }},
		{func(p Point) bool { return p.Y <= y1 }, func(a, b Point) Point { return atY(a, b, y1) }},
	}

	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{x, a.Y + t*(b.Y-a.Y)}
}

func atY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{a.X + t*(b.X-a.X), y}
}
