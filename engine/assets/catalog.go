// Package assets loads per-terrain Wang tilesets for textured rendering.
package assets

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/wang"
)

// Catalog maps terrain types to their tilesets. It implements
// wang.Provider. A catalog is never mutated after it is handed to the
// renderer; reloading builds a new one.
type Catalog struct {
	tilesets map[maplib.TerrainType]*wang.Tileset
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tilesets: make(map[maplib.TerrainType]*wang.Tileset)}
}

// Put registers ts for terrain t, replacing any previous tileset.
func (c *Catalog) Put(t maplib.TerrainType, ts *wang.Tileset) {
	c.tilesets[t] = ts
}

// Tileset implements wang.Provider.
func (c *Catalog) Tileset(t maplib.TerrainType) (*wang.Tileset, bool) {
	if c == nil {
		return nil, false
	}
	ts, ok := c.tilesets[t]
	return ts, ok
}

// Len returns the number of terrains with a tileset.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tilesets)
}

// Missing returns the terrain types of buckets that have no tileset.
func (c *Catalog) Missing(buckets *maplib.BucketSet) []maplib.TerrainType {
	var out []maplib.TerrainType
	for _, b := range buckets.Buckets() {
		if _, ok := c.Tileset(b.Type); !ok {
			out = append(out, b.Type)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FindDir resolves an asset directory. Absolute or existing relative paths
// are used as is; otherwise dir is looked up next to the executable and
// then relative to the module root.
func FindDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), dir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	_, filename, _, _ := runtime.Caller(0)
	candidate := filepath.Join(filepath.Dir(filename), "..", "..", dir)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return dir
}
