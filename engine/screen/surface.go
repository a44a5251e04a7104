// Package screen draws render output onto ebiten images.
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/dualgrid/engine/render"
)

// Surface adapts an *ebiten.Image to render.Surface.
type Surface struct {
	dst *ebiten.Image
	transformStack

	// Filter is used for sprite blits.
	Filter ebiten.Filter

	images map[image.Image]*ebiten.Image
	vs     []ebiten.Vertex
	is     []uint16

	// solid is the source for filled triangles; only its center pixel is
	// sampled. Created on first fill.
	solid *ebiten.Image
}

// NewSurface creates a surface. Call Reset each frame with the frame's
// target image.
func NewSurface() *Surface {
	return &Surface{
		Filter: ebiten.FilterLinear,
		images: make(map[image.Image]*ebiten.Image),
	}
}

// Reset targets dst and clears the transform stack. Converted sprite
// sheets stay cached across frames.
func (s *Surface) Reset(dst *ebiten.Image) {
	s.dst = dst
	s.geo.Reset()
	s.saved = s.saved[:0]
}

func (s *Surface) solidImage() *ebiten.Image {
	if s.solid == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.solid = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return s.solid
}

func (s *Surface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *Surface) DrawImage(src image.Image, sr image.Rectangle, dst render.Rect) {
	if sr.Empty() {
		return
	}
	sheet := s.sheet(src)
	sub := sheet.SubImage(sr).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.W/float64(sr.Dx()), dst.H/float64(sr.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.GeoM.Concat(s.geo)
	op.Filter = s.Filter
	s.dst.DrawImage(sub, op)
}

// sheet returns the GPU copy of src, converting it once.
func (s *Surface) sheet(src image.Image) *ebiten.Image {
	if e, ok := src.(*ebiten.Image); ok {
		return e
	}
	if e, ok := s.images[src]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(src)
	s.images[src] = e
	return e
}

func (s *Surface) FillPolygon(pts []render.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	x, y := s.apply(pts[0].X, pts[0].Y)
	path.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y := s.apply(p.X, p.Y)
		path.LineTo(x, y)
	}
	path.Close()

	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	r, g, b, a := c.RGBA()
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		// Vertex colors are straight alpha.
		if a > 0 {
			s.vs[i].ColorR = float32(r) / float32(a)
			s.vs[i].ColorG = float32(g) / float32(a)
			s.vs[i].ColorB = float32(b) / float32(a)
		}
		s.vs[i].ColorA = float32(a) / 0xffff
	}
	s.dst.DrawTriangles(s.vs, s.is, s.solidImage(), nil)
}

func (s *Surface) FillRect(r render.Rect, c color.Color) {
	s.FillPolygon([]render.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}, c)
}

func (s *Surface) StrokeLine(a, b render.Point, width float64, c color.Color) {
	x0, y0 := s.apply(a.X, a.Y)
	x1, y1 := s.apply(b.X, b.Y)
	vector.StrokeLine(s.dst, x0, y0, x1, y1, float32(width*s.lineScale()), c, true)
}

func (s *Surface) StrokePolygon(pts []render.Point, width float64, c color.Color) {
	for i := range pts {
		s.StrokeLine(pts[i], pts[(i+1)%len(pts)], width, c)
	}
}

var _ render.Surface = (*Surface)(nil)
