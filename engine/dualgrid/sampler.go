package dualgrid

import "github.com/1siamBot/dualgrid/engine/maplib"

// Sampler reads render-tile corners from a grid. Rendering, hover info and
// hit testing all go through it so they agree on the corner mapping.
type Sampler struct {
	grid *maplib.Grid
}

// NewSampler creates a sampler over grid.
func NewSampler(grid *maplib.Grid) Sampler {
	return Sampler{grid: grid}
}

// TileSize returns the render lattice dimensions, one less than the grid
// in each axis.
func (s Sampler) TileSize() (w, h int) {
	w, h = s.grid.Width()-1, s.grid.Height()-1
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// TileCount returns the number of render tiles.
func (s Sampler) TileCount() int {
	w, h := s.TileSize()
	return w * h
}

// InBounds reports whether (x, y) is a render tile.
func (s Sampler) InBounds(x, y int) bool {
	w, h := s.TileSize()
	return x >= 0 && y >= 0 && x < w && y < h
}

// Corners returns the data cells around render tile (x, y).
func (s Sampler) Corners(x, y int) Corners {
	return Corners{
		Top:    s.grid.At(x, y),
		Right:  s.grid.At(x+1, y),
		Bottom: s.grid.At(x+1, y+1),
		Left:   s.grid.At(x, y+1),
	}
}

// Role returns the Wang role of tile (x, y) for layer.
func (s Sampler) Role(x, y int, layer maplib.TerrainType) Role {
	return s.Corners(x, y).Role(layer)
}

// LayerRole pairs a transition layer with the role it produces on a tile.
type LayerRole struct {
	Layer maplib.TerrainType
	Role  Role
}

// TileInfo describes one render tile for debug display.
type TileInfo struct {
	X, Y    int
	Corners Corners
	Base    maplib.TerrainType
	Layers  []LayerRole
}

// Describe reports the corners, base terrain and per-layer roles of tile
// (x, y). Layers whose role is skipped by the transition pass are omitted.
func (s Sampler) Describe(x, y int, buckets *maplib.BucketSet) TileInfo {
	c := s.Corners(x, y)
	info := TileInfo{X: x, Y: y, Corners: c, Base: c.Base()}
	for _, layer := range buckets.TransitionTypes() {
		if r := c.Role(layer); r.Transition() {
			info.Layers = append(info.Layers, LayerRole{Layer: layer, Role: r})
		}
	}
	return info
}
