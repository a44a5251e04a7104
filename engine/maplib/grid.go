package maplib

// Grid holds the terrain type of every data cell, row-major
type Grid struct {
	width    int
	height   int
	cells    []TerrainType
	revision uint64
}

// NewGrid creates a grid filled with fill. Non-positive dimensions are
// raised to 1.
func NewGrid(width, height int, fill TerrainType) *Grid {
	g := &Grid{}
	g.alloc(width, height, fill)
	return g
}

func (g *Grid) alloc(width, height int, fill TerrainType) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	g.width = width
	g.height = height
	g.cells = make([]TerrainType, width*height)
	if fill != TerrainBase {
		for i := range g.cells {
			g.cells[i] = fill
		}
	}
	g.revision++
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Revision increases on every bulk mutation (Fill, Resize, generation)
// and whenever a writer calls Touch.
func (g *Grid) Revision() uint64 { return g.revision }

// Touch marks the grid as modified after writes through Set or Cells.
func (g *Grid) Touch() { g.revision++ }

// InBounds checks if coordinates are within grid bounds
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the terrain at (x, y), or TerrainBase outside the grid.
func (g *Grid) At(x, y int) TerrainType {
	if !g.InBounds(x, y) {
		return TerrainBase
	}
	return g.cells[y*g.width+x]
}

// Set writes the terrain at (x, y). Writes outside the grid are ignored.
func (g *Grid) Set(x, y int, t TerrainType) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = t
}

// Fill sets every cell to t.
func (g *Grid) Fill(t TerrainType) {
	for i := range g.cells {
		g.cells[i] = t
	}
	g.revision++
}

// Resize reallocates the grid. Previous contents are discarded and every
// cell is reset to TerrainBase, so callers must regenerate.
func (g *Grid) Resize(width, height int) {
	g.alloc(width, height, TerrainBase)
}

// Cells exposes the backing slice for bulk writers such as the generator.
func (g *Grid) Cells() []TerrainType { return g.cells }

// Histogram counts cells per terrain type.
func (g *Grid) Histogram() map[TerrainType]int {
	h := make(map[TerrainType]int)
	for _, t := range g.cells {
		h[t]++
	}
	return h
}
