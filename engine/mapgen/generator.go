package mapgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

// ErrInvalidScale is returned when the noise scale is not a positive number.
var ErrInvalidScale = errors.New("noise scale must be a positive number")

// Generator fills a grid from noise. It holds no grid state of its own, so
// one generator can serve any number of grids.
type Generator struct {
	source string
	log    *zap.Logger
}

// NewGenerator creates a generator using the named noise source.
func NewGenerator(source string, log *zap.Logger) (*Generator, error) {
	if _, err := NewSource(source, 0); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{source: source, log: log}, nil
}

// Generate overwrites every cell of grid with the terrain selected by
// buckets for noise(x*scale+offset, y*scale+offset). Identical inputs always
// produce identical grids. Invalid arguments leave the grid untouched.
func (g *Generator) Generate(grid *maplib.Grid, scale float64, seed int64, buckets *maplib.BucketSet) error {
	if grid == nil {
		return errors.New("generate: nil grid")
	}
	if buckets == nil || buckets.Len() == 0 {
		return fmt.Errorf("generate: %w", maplib.ErrInvalidBuckets)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("generate: %w (got %v)", ErrInvalidScale, scale)
	}

	src, err := NewSource(g.source, seed)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	fill(grid, src, scale, SeedOffset(seed), buckets)

	g.log.Debug("terrain generated",
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
		zap.Int64("seed", seed),
		zap.Float64("scale", scale),
		zap.String("source", g.source),
		zap.Int("buckets", buckets.Len()),
	)
	return nil
}

func fill(grid *maplib.Grid, src NoiseSource, scale, off float64, buckets *maplib.BucketSet) {
	w, h := grid.Width(), grid.Height()
	cells := grid.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := src.Noise2D(float64(x)*scale+off, float64(y)*scale+off)
			cells[y*w+x] = buckets.Classify(n)
		}
	}
	grid.Touch()
}

// RandomSeed picks a seed for configurations that leave it unset.
func RandomSeed() int64 {
	return rand.Int63n(1 << 31)
}
