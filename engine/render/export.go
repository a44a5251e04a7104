package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

// DefaultMaxExportPixels caps export surfaces at 8192 x 8192.
const DefaultMaxExportPixels = 8192 * 8192

// exportPadding is the empty border around an exported map, in pixels.
const exportPadding = 16

// maxExportSide saturates layout sizes so they always fit in an int.
const maxExportSide = 1 << 40

// ErrExportTooLarge is wrapped by ExportTooLargeError.
var ErrExportTooLarge = errors.New("export surface too large")

// ExportTooLargeError reports the surface an export would have needed.
type ExportTooLargeError struct {
	Width, Height int
	MaxPixels     int
}

func (e *ExportTooLargeError) Error() string {
	return fmt.Sprintf("export needs a %dx%d surface (%.0f pixels), limit is %d pixels",
		e.Width, e.Height, float64(e.Width)*float64(e.Height), e.MaxPixels)
}

func (e *ExportTooLargeError) Unwrap() error { return ErrExportTooLarge }

// ExportLayout returns the surface size that fits the whole grid and the
// projection that draws it there, with no camera offset or zoom.
func ExportLayout(g *maplib.Grid, view View) (w, h int, proj Projection) {
	gw, gh := float64(g.Width()-1), float64(g.Height()-1)
	if gw < 0 {
		gw = 0
	}
	if gh < 0 {
		gh = 0
	}

	proj = Projection{
		Isometric:  view.Mode.Isometric(),
		TileWidth:  float64(view.TileWidth),
		TileHeight: float64(view.TileHeight),
		CellSize:   float64(view.CellSize),
		Zoom:       1,
	}
	var spanX, spanY float64
	if proj.Isometric {
		// Grid point (0, gh) is leftmost and (gw, gh) lowest.
		spanX = (gw + gh) * proj.TileWidth / 2
		spanY = (gw + gh) * proj.TileHeight / 2
		proj.OriginX = gh*proj.TileWidth/2 + exportPadding
	} else {
		spanX = gw * proj.CellSize
		spanY = gh * proj.CellSize
		proj.OriginX = exportPadding
	}
	proj.OriginY = exportPadding

	w = exportSide(spanX)
	h = exportSide(spanY)
	return w, h, proj
}

// exportSide converts a span to a padded pixel count, saturating at
// maxExportSide for huge or non-finite spans.
func exportSide(span float64) int {
	side := math.Ceil(span) + 2*exportPadding
	if !(side < maxExportSide) {
		return maxExportSide
	}
	return int(side)
}

// Export renders the whole grid offscreen and writes it as PNG. Exports
// larger than maxPixels (0 means DefaultMaxExportPixels) are rejected
// before anything is allocated or written.
func (r *Renderer) Export(out io.Writer, scene Scene, view View, maxPixels int) (Stats, error) {
	if scene.Grid == nil || scene.Buckets == nil {
		return Stats{}, errors.New("export: scene has no grid")
	}
	if !view.Valid() {
		return Stats{}, errors.New("export: invalid view")
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxExportPixels
	}

	view.CameraX, view.CameraY, view.Zoom = 0, 0, 1
	w, h, proj := ExportLayout(scene.Grid, view)
	// w > maxPixels/h avoids overflowing w*h.
	if w <= 0 || h <= 0 || w > maxPixels/h {
		return Stats{}, &ExportTooLargeError{Width: w, Height: h, MaxPixels: maxPixels}
	}

	surf := NewRasterSurface(w, h)
	st := r.render(surf, scene, view, proj)
	if st.Waiting {
		return st, errors.New("export: assets are not loaded")
	}
	// Encode fully before writing so a failure leaves out untouched.
	var buf bytes.Buffer
	if err := png.Encode(&buf, surf.Image()); err != nil {
		return st, fmt.Errorf("export: encoding PNG: %w", err)
	}
	if _, err := buf.WriteTo(out); err != nil {
		return st, fmt.Errorf("export: %w", err)
	}

	r.log.Info("map exported",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("tiles", st.BaseDraws+st.TransitionDraws),
	)
	return st, nil
}
