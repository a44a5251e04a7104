package maplib

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"
	"unicode"
)

// TerrainType identifies a terrain category. The ordinal is also its
// priority: lower values are drawn first and win base-layer selection.
type TerrainType uint8

// TerrainBase is the lowest-priority terrain of any bucket set. Out of
// bounds grid reads return it.
const TerrainBase TerrainType = 0

// MaxBuckets is the largest bucket count a TerrainType can address.
const MaxBuckets = 256

// ErrInvalidBuckets is returned for bucket lists that cannot partition the
// noise range.
var ErrInvalidBuckets = errors.New("invalid terrain buckets")

// Bucket maps a noise threshold to a terrain type
type Bucket struct {
	Name      string
	Color     color.RGBA
	Threshold float64     // in [-1, 1]
	Type      TerrainType // assigned by NewBucketSet
}

// AssetKey is the folder name used to look up this bucket's tileset.
func (b Bucket) AssetKey() string {
	return AssetKey(b.Name)
}

// AssetKey lowercases name and joins its words with hyphens, so
// "Deep Water" becomes "deep-water".
func AssetKey(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-'
	})
	return strings.Join(fields, "-")
}

// BucketSet is an immutable, validated list of buckets sorted ascending by
// threshold. Bucket i has Type i.
type BucketSet struct {
	buckets []Bucket
}

// NewBucketSet validates buckets and assigns terrain types by threshold rank.
// The input slice is not modified.
func NewBucketSet(buckets []Bucket) (*BucketSet, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: at least one bucket is required", ErrInvalidBuckets)
	}
	if len(buckets) > MaxBuckets {
		return nil, fmt.Errorf("%w: %d buckets exceeds the limit of %d", ErrInvalidBuckets, len(buckets), MaxBuckets)
	}

	sorted := make([]Bucket, len(buckets))
	copy(sorted, buckets)

	names := make(map[string]bool, len(sorted))
	for _, b := range sorted {
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("%w: bucket name must not be empty", ErrInvalidBuckets)
		}
		key := AssetKey(b.Name)
		if names[key] {
			return nil, fmt.Errorf("%w: duplicate bucket %q", ErrInvalidBuckets, b.Name)
		}
		names[key] = true
		if math.IsNaN(b.Threshold) || b.Threshold < -1 || b.Threshold > 1 {
			return nil, fmt.Errorf("%w: bucket %q threshold %v outside [-1, 1]", ErrInvalidBuckets, b.Name, b.Threshold)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })
	for i := range sorted {
		if i > 0 && sorted[i].Threshold == sorted[i-1].Threshold {
			return nil, fmt.Errorf("%w: buckets %q and %q share threshold %v",
				ErrInvalidBuckets, sorted[i-1].Name, sorted[i].Name, sorted[i].Threshold)
		}
		sorted[i].Type = TerrainType(i)
	}

	return &BucketSet{buckets: sorted}, nil
}

// DefaultBuckets returns the stock Water < Sand < Dirt < Grass palette.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Name: "Water", Color: color.RGBA{30, 144, 255, 255}, Threshold: -1.0},
		{Name: "Sand", Color: color.RGBA{238, 214, 175, 255}, Threshold: -0.15},
		{Name: "Dirt", Color: color.RGBA{139, 119, 101, 255}, Threshold: 0.1},
		{Name: "Grass", Color: color.RGBA{34, 139, 34, 255}, Threshold: 0.3},
	}
}

// MustDefaultBucketSet builds the default bucket set.
func MustDefaultBucketSet() *BucketSet {
	bs, err := NewBucketSet(DefaultBuckets())
	if err != nil {
		panic(err)
	}
	return bs
}

// Len returns the number of buckets.
func (bs *BucketSet) Len() int { return len(bs.buckets) }

// Buckets returns a copy of the buckets in ascending threshold order.
func (bs *BucketSet) Buckets() []Bucket {
	out := make([]Bucket, len(bs.buckets))
	copy(out, bs.buckets)
	return out
}

// Bucket returns the bucket for terrain t.
func (bs *BucketSet) Bucket(t TerrainType) (Bucket, bool) {
	if int(t) >= len(bs.buckets) {
		return Bucket{}, false
	}
	return bs.buckets[t], true
}

// Color returns the display color for t, magenta for unknown types.
func (bs *BucketSet) Color(t TerrainType) color.RGBA {
	if b, ok := bs.Bucket(t); ok {
		return b.Color
	}
	return color.RGBA{255, 0, 255, 255}
}

// Name returns the bucket name for t.
func (bs *BucketSet) Name(t TerrainType) string {
	if b, ok := bs.Bucket(t); ok {
		return b.Name
	}
	return "Unknown"
}

// Base returns the lowest-threshold terrain type.
func (bs *BucketSet) Base() TerrainType { return TerrainBase }

// TransitionTypes returns every terrain except the base, ascending by
// threshold. This is the transition-layer draw order.
func (bs *BucketSet) TransitionTypes() []TerrainType {
	out := make([]TerrainType, 0, len(bs.buckets)-1)
	for i := 1; i < len(bs.buckets); i++ {
		out = append(out, TerrainType(i))
	}
	return out
}

// Classify returns the terrain for noise value n: the bucket with the
// greatest threshold <= n, or the base bucket when none qualifies.
func (bs *BucketSet) Classify(n float64) TerrainType {
	for i := len(bs.buckets) - 1; i >= 0; i-- {
		if bs.buckets[i].Threshold <= n {
			return bs.buckets[i].Type
		}
	}
	return TerrainBase
}
