package mapgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dualgrid/engine/maplib"
)

// rampSource returns x clamped into [-1, 1], ignoring y.
type rampSource struct{}

func (rampSource) Noise2D(x, _ float64) float64 { return clampUnit(x) }

func newGenerator(t *testing.T, source string) *Generator {
	t.Helper()
	g, err := NewGenerator(source, nil)
	require.NoError(t, err)
	return g
}

func TestGenerateDeterministic(t *testing.T) {
	buckets := maplib.MustDefaultBucketSet()
	for _, source := range []string{SourceSimplex, SourcePerlin} {
		t.Run(source, func(t *testing.T) {
			gen := newGenerator(t, source)
			a := maplib.NewGrid(32, 24, 0)
			b := maplib.NewGrid(32, 24, 0)

			require.NoError(t, gen.Generate(a, 0.08, 1337, buckets))
			require.NoError(t, gen.Generate(b, 0.08, 1337, buckets))
			assert.Equal(t, a.Cells(), b.Cells())

			// Regenerating in place reproduces the same grid.
			before := append([]maplib.TerrainType(nil), a.Cells()...)
			require.NoError(t, gen.Generate(a, 0.08, 1337, buckets))
			assert.Equal(t, before, a.Cells())
		})
	}
}

func TestGenerateSeedChangesGrid(t *testing.T) {
	gen := newGenerator(t, SourceSimplex)
	buckets := maplib.MustDefaultBucketSet()
	a := maplib.NewGrid(48, 48, 0)
	b := maplib.NewGrid(48, 48, 0)

	require.NoError(t, gen.Generate(a, 0.1, 1, buckets))
	require.NoError(t, gen.Generate(b, 0.1, 2, buckets))
	assert.NotEqual(t, a.Cells(), b.Cells())
}

func TestGenerateSingleBucketFillsGrid(t *testing.T) {
	buckets, err := maplib.NewBucketSet([]maplib.Bucket{{Name: "Water", Threshold: -1}})
	require.NoError(t, err)

	grid := maplib.NewGrid(4, 4, 0)
	grid.Fill(7)
	require.NoError(t, newGenerator(t, SourceSimplex).Generate(grid, 0.5, 99, buckets))
	assert.Equal(t, map[maplib.TerrainType]int{0: 16}, grid.Histogram())
}

func TestGenerateRejectsBadInputWithoutMutation(t *testing.T) {
	gen := newGenerator(t, SourceSimplex)
	buckets := maplib.MustDefaultBucketSet()
	grid := maplib.NewGrid(4, 4, 2)
	rev := grid.Revision()

	for _, scale := range []float64{0, -1} {
		err := gen.Generate(grid, scale, 1, buckets)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidScale))
	}
	require.Error(t, gen.Generate(grid, 0.1, 1, nil))
	require.Error(t, gen.Generate(nil, 0.1, 1, buckets))

	assert.Equal(t, rev, grid.Revision())
	assert.Equal(t, map[maplib.TerrainType]int{2: 16}, grid.Histogram())
}

func TestFillUsesBuckets(t *testing.T) {
	buckets := maplib.MustDefaultBucketSet()
	grid := maplib.NewGrid(5, 1, 0)

	// Noise at column x is -1 + x*0.5: -1, -0.5, 0, 0.5, 1.
	fill(grid, rampSource{}, 0.5, -1, buckets)

	want := []maplib.TerrainType{0, 0, 1, 3, 3}
	assert.Equal(t, want, grid.Cells())
}

func TestNewSource(t *testing.T) {
	_, err := NewSource("worley", 1)
	assert.Error(t, err)

	for _, kind := range []string{"", "simplex", "Perlin"} {
		src, err := NewSource(kind, 5)
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			v := src.Noise2D(float64(i)*0.37, float64(i)*0.11)
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}

	_, err = NewGenerator("worley", nil)
	assert.Error(t, err)
}

func TestSeedOffset(t *testing.T) {
	assert.Equal(t, SeedOffset(42), SeedOffset(42))
	assert.NotEqual(t, SeedOffset(42), SeedOffset(43))
	for _, s := range []int64{0, 1, -1, 1 << 40} {
		off := SeedOffset(s)
		assert.GreaterOrEqual(t, off, 0.0)
		assert.Less(t, off, 4096.0)
	}
}
