// Package render composites dual-grid terrain onto a Surface.
package render

import (
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/wang"
)

// Layers toggles the passes and overlays of a frame.
type Layers struct {
	Base       bool
	Transition bool
	WorldGrid  bool // data grid lines and corner markers
	DualGrid   bool // render tile outlines
}

// AllTerrain shows both terrain passes and no overlays.
func AllTerrain() Layers {
	return Layers{Base: true, Transition: true}
}

// View holds everything about how a frame is drawn, but nothing about
// what is drawn.
type View struct {
	Mode       Mode
	TileWidth  int
	TileHeight int
	CellSize   int
	CameraX    float64
	CameraY    float64
	Zoom       float64
	Layers     Layers
}

// DefaultView returns 64x32 isometric tiles and 40px orthographic cells.
func DefaultView() View {
	return View{
		Mode:       ModeIsometricTextured,
		TileWidth:  64,
		TileHeight: 32,
		CellSize:   40,
		Zoom:       1,
		Layers:     AllTerrain(),
	}
}

// Valid reports whether v describes a drawable projection.
func (v View) Valid() bool {
	finite := !math.IsNaN(v.CameraX) && !math.IsInf(v.CameraX, 0) &&
		!math.IsNaN(v.CameraY) && !math.IsInf(v.CameraY, 0)
	return finite && v.Zoom > 0 && !math.IsInf(v.Zoom, 0) &&
		v.TileWidth > 0 && v.TileHeight > 0 && v.CellSize > 0
}

// Projection returns the projection for a screenW x screenH surface: the
// origin is the surface center plus the camera offset, and zoom pivots on
// the surface center.
func (v View) Projection(screenW, screenH int) Projection {
	cx, cy := float64(screenW)/2, float64(screenH)/2
	return Projection{
		Isometric:  v.Mode.Isometric(),
		TileWidth:  float64(v.TileWidth),
		TileHeight: float64(v.TileHeight),
		CellSize:   float64(v.CellSize),
		OriginX:    cx + v.CameraX,
		OriginY:    cy + v.CameraY,
		Zoom:       v.Zoom,
		PivotX:     cx,
		PivotY:     cy,
	}
}

// Scene is the state a frame reads. The host owns it and must not mutate
// the grid while a frame is being rendered.
type Scene struct {
	Grid    *maplib.Grid
	Buckets *maplib.BucketSet

	// Assets backs textured mode. It is only consulted when AssetsReady.
	Assets      wang.Provider
	AssetsReady bool
}

// Stats summarizes one frame.
type Stats struct {
	Waiting         bool // textured mode without assets: nothing drawn
	BaseDraws       int
	TransitionDraws int
	Skipped         int // transition roles 0 and 15
	Misses          int // unresolvable variants
}

// Renderer draws scenes. It keeps no per-scene state, so one renderer can
// draw a live map and a preview side by side.
type Renderer struct {
	Background color.RGBA
	GridColor  color.RGBA
	TileColor  color.RGBA

	log *zap.Logger
}

// NewRenderer creates a renderer. A nil logger disables logging.
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		Background: color.RGBA{20, 20, 30, 255},
		GridColor:  color.RGBA{255, 255, 255, 60},
		TileColor:  color.RGBA{255, 200, 0, 110},
		log:        log,
	}
}

// Render draws one full frame of scene on s.
func (r *Renderer) Render(s Surface, scene Scene, view View) Stats {
	w, h := s.Size()
	return r.render(s, scene, view, view.Projection(w, h))
}

func (r *Renderer) render(s Surface, scene Scene, view View, proj Projection) Stats {
	s.Clear(r.Background)
	if scene.Grid == nil || scene.Buckets == nil {
		return Stats{}
	}
	if !view.Valid() {
		r.log.Warn("frame skipped: invalid view", zap.Any("view", view))
		return Stats{}
	}

	var resolver wang.Resolver
	if view.Mode.Textured() {
		if !scene.AssetsReady || scene.Assets == nil {
			return Stats{Waiting: true}
		}
		resolver = wang.SpriteResolver{Assets: scene.Assets}
	} else {
		resolver = wang.ShapeResolver{Buckets: scene.Buckets}
	}
	return r.drawFrame(s, scene, view, proj, resolver)
}

func (r *Renderer) drawFrame(s Surface, scene Scene, view View, proj Projection, resolver wang.Resolver) Stats {
	sampler := dualgrid.NewSampler(scene.Grid)
	sw, sh := s.Size()
	minX, minY, maxX, maxY := visibleTileRange(proj, sampler, sw, sh)

	// One transform scope for the whole frame.
	s.Save()
	defer s.Restore()
	proj.Apply(s)

	var st Stats
	if view.Layers.Base {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				base := sampler.Corners(x, y).Base()
				v, ok := resolver.Resolve(base, dualgrid.RoleFull)
				if !ok {
					st.Misses++
					continue
				}
				r.drawVariant(s, proj, x, y, v)
				st.BaseDraws++
			}
		}
	}

	if view.Layers.Transition {
		for _, layer := range scene.Buckets.TransitionTypes() {
			for y := minY; y <= maxY; y++ {
				for x := minX; x <= maxX; x++ {
					role := sampler.Role(x, y, layer)
					if !role.Transition() {
						st.Skipped++
						continue
					}
					v, ok := resolver.Resolve(layer, role)
					if !ok {
						st.Misses++
						continue
					}
					r.drawVariant(s, proj, x, y, v)
					st.TransitionDraws++
				}
			}
		}
	}

	if view.Layers.DualGrid {
		r.drawTileOutlines(s, proj, minX, minY, maxX, maxY)
	}
	if view.Layers.WorldGrid {
		r.drawWorldGrid(s, proj, scene)
	}

	if st.Misses > 0 {
		r.log.Debug("unresolved tiles skipped",
			zap.Int("misses", st.Misses),
			zap.Stringer("mode", view.Mode),
		)
	}
	return st
}

func (r *Renderer) drawVariant(s Surface, proj Projection, x, y int, v wang.Variant) {
	switch v.Kind {
	case wang.VariantSprite:
		b := proj.TileBounds(x, y)
		// Keep the sprite aspect and stand it on the tile's bottom edge so
		// sprites taller than the footprint overhang upward.
		dh := b.W * float64(v.Src.Dy()) / float64(v.Src.Dx())
		s.DrawImage(v.Sheet, v.Src, Rect{X: b.X, Y: b.Y + b.H - dh, W: b.W, H: dh})
	case wang.VariantShape:
		outline := proj.TileOutline(x, y)
		if v.Role == dualgrid.RoleFull {
			s.FillPolygon(outline[:], v.Color)
			return
		}
		for i, bit := range cornerBits {
			if v.Role.Has(bit) {
				s.FillPolygon(CornerRegion(outline, i), v.Color)
			}
		}
	}
}

var cornerBits = [4]dualgrid.Role{dualgrid.RoleTop, dualgrid.RoleRight, dualgrid.RoleBottom, dualgrid.RoleLeft}

// CornerRegion returns the quarter of a tile nearest corner i, in top,
// right, bottom, left order: the corner, the midpoints of its two edges and
// the tile center.
func CornerRegion(outline [4]Point, i int) []Point {
	c := midpoint(outline[0], outline[2])
	next := outline[(i+1)%4]
	prev := outline[(i+3)%4]
	return []Point{outline[i], midpoint(outline[i], next), c, midpoint(prev, outline[i])}
}

// visibleTileRange returns the render tiles that can touch the surface,
// clamped to the tile lattice. An empty lattice yields maxX < minX.
func visibleTileRange(p Projection, sampler dualgrid.Sampler, sw, sh int) (minX, minY, maxX, maxY int) {
	tw, th := sampler.TileSize()
	if tw == 0 || th == 0 {
		return 0, 0, -1, -1
	}

	corners := [4][2]float64{{0, 0}, {float64(sw), 0}, {0, float64(sh)}, {float64(sw), float64(sh)}}
	minXf, minYf := math.Inf(1), math.Inf(1)
	maxXf, maxYf := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		gx, gy := p.ScreenToGrid(c[0], c[1])
		minXf, minYf = math.Min(minXf, gx), math.Min(minYf, gy)
		maxXf, maxYf = math.Max(maxXf, gx), math.Max(maxYf, gy)
	}

	pad := 1
	minX = max(int(math.Floor(minXf))-pad, 0)
	minY = max(int(math.Floor(minYf))-pad, 0)
	maxX = min(int(math.Ceil(maxXf))+pad, tw-1)
	maxY = min(int(math.Ceil(maxYf))+pad, th-1)
	return
}
