package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/wang"
)

// File names inside each terrain folder.
const (
	SheetFile    = "tileset.png"
	MetadataFile = "tileset.json"
)

// maxParallel bounds concurrent tileset decodes.
const maxParallel = 4

// Result is the outcome of one asynchronous load.
type Result struct {
	Generation uint64
	Catalog    *Catalog
	Err        error
}

// Loader loads tileset folders laid out as <dir>/<asset key>/tileset.png
// plus tileset.json.
type Loader struct {
	TilesPerRow int

	log *zap.Logger

	mu      sync.Mutex
	gen     uint64
	pending *Result
}

// NewLoader creates a loader. A nil logger disables logging.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{TilesPerRow: wang.DefaultTilesPerRow, log: log}
}

// Load reads the tilesets of every bucket under dir. A terrain whose folder
// is missing or holds an unreadable sheet or malformed metadata is logged and
// left out of the catalog. Only cancellation of ctx fails the load.
func (l *Loader) Load(ctx context.Context, dir string, buckets *maplib.BucketSet) (*Catalog, error) {
	if buckets == nil {
		return nil, errors.New("assets: no buckets")
	}
	all := buckets.Buckets()
	loaded := make([]*wang.Tileset, len(all))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, b := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			folder := filepath.Join(dir, b.AssetKey())
			ts, err := l.loadTileset(folder)
			if errors.Is(err, fs.ErrNotExist) {
				l.log.Warn("tileset missing, terrain will not be textured",
					zap.String("terrain", b.Name),
					zap.String("folder", folder),
				)
				return nil
			}
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.log.Warn("tileset unusable, terrain will not be textured",
					zap.String("terrain", b.Name),
					zap.String("folder", folder),
					zap.Error(err),
				)
				return nil
			}
			loaded[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assets: loading %s: %w", dir, err)
	}

	cat := NewCatalog()
	for i, ts := range loaded {
		if ts != nil {
			cat.Put(all[i].Type, ts)
		}
	}
	l.log.Info("tilesets loaded",
		zap.String("dir", dir),
		zap.Int("loaded", cat.Len()),
		zap.Int("terrains", len(all)),
	)
	return cat, nil
}

func (l *Loader) loadTileset(folder string) (*wang.Tileset, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", folder)
	}

	meta, err := wang.LoadMetadata(filepath.Join(folder, MetadataFile))
	if err != nil {
		return nil, err
	}
	sheet, err := decodeImage(filepath.Join(folder, SheetFile))
	if err != nil {
		return nil, err
	}

	ts := wang.NewTileset(sheet, meta, l.TilesPerRow)
	if missing := ts.Roles.Missing(); len(missing) > 0 {
		l.log.Debug("tileset has unmapped roles",
			zap.String("folder", folder),
			zap.Int("missing", len(missing)),
		)
	}
	return ts, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Start loads in the background and returns the generation of the load.
// Starting a new load supersedes every earlier one.
func (l *Loader) Start(ctx context.Context, dir string, buckets *maplib.BucketSet) uint64 {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	go func() {
		cat, err := l.Load(ctx, dir, buckets)
		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.gen {
			l.log.Debug("discarding superseded tileset load", zap.Uint64("generation", gen))
			return
		}
		l.pending = &Result{Generation: gen, Catalog: cat, Err: err}
	}()
	return gen
}

// Poll returns the result of the newest load once it has finished. Each
// result is returned once.
func (l *Loader) Poll() (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		return Result{}, false
	}
	if l.pending.Generation != l.gen {
		l.pending = nil
		return Result{}, false
	}
	r := *l.pending
	l.pending = nil
	return r, true
}

// Generation returns the generation of the most recently started load.
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}
