package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/render"
)

// Minimap draws a one-pixel-per-cell preview of a grid with the camera
// viewport outlined. The cell image is rebuilt only when the grid or its
// revision changes.
type Minimap struct {
	Size       int
	Background color.RGBA
	ViewColor  color.RGBA

	cells    *ebiten.Image
	grid     *maplib.Grid
	buckets  *maplib.BucketSet
	revision uint64
}

// NewMinimap creates a size x size minimap.
func NewMinimap(size int) *Minimap {
	return &Minimap{
		Size:       size,
		Background: color.RGBA{0, 0, 0, 180},
		ViewColor:  color.RGBA{255, 255, 255, 200},
	}
}

// Draw draws the minimap at (posX, posY). proj is the projection of the
// main view on a screenW x screenH screen.
func (m *Minimap) Draw(dst *ebiten.Image, scene render.Scene, proj render.Projection, screenW, screenH, posX, posY int) {
	g := scene.Grid
	if g == nil || scene.Buckets == nil || m.Size <= 0 {
		return
	}
	m.refresh(g, scene.Buckets)

	size := float32(m.Size)
	ox, oy := float32(posX), float32(posY)
	vector.DrawFilledRect(dst, ox, oy, size, size, m.Background, false)

	scaleX := float64(m.Size) / float64(g.Width())
	scaleY := float64(m.Size) / float64(g.Height())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Translate(float64(posX), float64(posY))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(m.cells, op)

	vp := ViewportOutline(proj, screenW, screenH, scaleX, scaleY)
	for i := range vp {
		a, b := vp[i], vp[(i+1)%len(vp)]
		vector.StrokeLine(dst,
			ox+float32(a.X), oy+float32(a.Y),
			ox+float32(b.X), oy+float32(b.Y),
			1, m.ViewColor, false)
	}
}

func (m *Minimap) refresh(g *maplib.Grid, buckets *maplib.BucketSet) {
	if m.cells != nil && m.grid == g && m.buckets == buckets && m.revision == g.Revision() {
		b := m.cells.Bounds()
		if b.Dx() == g.Width() && b.Dy() == g.Height() {
			return
		}
	}
	if m.cells != nil {
		m.cells.Deallocate()
	}
	m.cells = ebiten.NewImageFromImage(CellImage(g, buckets))
	m.grid, m.buckets, m.revision = g, buckets, g.Revision()
}

// CellImage returns one pixel per grid cell in its bucket color.
func CellImage(g *maplib.Grid, buckets *maplib.BucketSet) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			img.SetRGBA(x, y, buckets.Color(g.At(x, y)))
		}
	}
	return img
}

// ViewportOutline returns the screen corners mapped into minimap pixels.
// Under the isometric projection the outline is a rotated quad.
func ViewportOutline(proj render.Projection, screenW, screenH int, scaleX, scaleY float64) [4]render.Point {
	corners := [4][2]float64{
		{0, 0},
		{float64(screenW), 0},
		{float64(screenW), float64(screenH)},
		{0, float64(screenH)},
	}
	var out [4]render.Point
	for i, c := range corners {
		gx, gy := proj.ScreenToGrid(c[0], c[1])
		out[i] = render.Point{X: gx * scaleX, Y: gy * scaleY}
	}
	return out
}
