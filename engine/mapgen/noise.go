// Package mapgen fills terrain grids from coherent 2D noise.
package mapgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseSource produces coherent noise in [-1, 1].
type NoiseSource interface {
	Noise2D(x, y float64) float64
}

// Noise source names accepted by NewSource.
const (
	SourceSimplex = "simplex"
	SourcePerlin  = "perlin"
)

// SimplexSource wraps OpenSimplex noise.
type SimplexSource struct {
	noise opensimplex.Noise
}

// NewSimplexSource seeds an OpenSimplex generator.
func NewSimplexSource(seed int64) *SimplexSource {
	return &SimplexSource{noise: opensimplex.New(seed)}
}

// Noise2D implements NoiseSource.
func (s *SimplexSource) Noise2D(x, y float64) float64 {
	return clampUnit(s.noise.Eval2(x, y))
}

// PerlinSource wraps classic Perlin noise.
type PerlinSource struct {
	noise *perlin.Perlin
}

// NewPerlinSource seeds a Perlin generator with alpha=2, beta=2 and three
// octaves, which gives terrain-like detail.
func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

// Noise2D implements NoiseSource.
func (p *PerlinSource) Noise2D(x, y float64) float64 {
	return clampUnit(p.noise.Noise2D(x, y))
}

// NewSource returns the named noise source. An empty name selects simplex.
func NewSource(kind string, seed int64) (NoiseSource, error) {
	switch strings.ToLower(kind) {
	case "", SourceSimplex:
		return NewSimplexSource(seed), nil
	case SourcePerlin:
		return NewPerlinSource(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise source %q", kind)
	}
}

// SeedOffset maps a seed to a deterministic coordinate offset in
// [0, 4096) so neighbouring seeds sample distant regions of the noise field.
func SeedOffset(seed int64) float64 {
	// splitmix64 finalizer
	z := uint64(seed) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / float64(uint64(1)<<53) * 4096
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
