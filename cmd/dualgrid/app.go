package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/editor"
	"github.com/1siamBot/dualgrid/engine/assets"
	"github.com/1siamBot/dualgrid/engine/config"
	"github.com/1siamBot/dualgrid/engine/core"
	"github.com/1siamBot/dualgrid/engine/mapgen"
	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/render"
)

// app owns the live viewer state. Every mutation happens between frames,
// from Update or an event handler.
type app struct {
	cfg *config.Config
	log *zap.Logger

	buckets  *maplib.BucketSet
	grid     *maplib.Grid
	gen      *mapgen.Generator
	seed     int64
	view     render.View
	renderer *render.Renderer
	editor   *editor.Editor

	catalog   *assets.Catalog
	loader    *assets.Loader
	assetsDir string

	events *core.EventBus
	loop   *core.Loop

	// configPath is where saveConfig writes.
	configPath string
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	if log == nil {
		log = zap.NewNop()
	}
	buckets, err := cfg.BucketSet()
	if err != nil {
		return nil, err
	}
	view, err := cfg.View()
	if err != nil {
		return nil, err
	}
	gen, err := mapgen.NewGenerator(cfg.Map.Noise, log)
	if err != nil {
		return nil, err
	}

	grid := maplib.NewGrid(cfg.Map.GridSize, cfg.Map.GridSize, maplib.TerrainBase)
	a := &app{
		cfg:       cfg,
		log:       log,
		buckets:   buckets,
		grid:      grid,
		editor:    editor.NewEditor(grid, buckets),
		gen:       gen,
		seed:      cfg.ResolveSeed(),
		view:      view,
		renderer:  render.NewRenderer(log),
		loader:    assets.NewLoader(log),
		assetsDir: assets.FindDir(cfg.Assets.Dir),
		events:    core.NewEventBus(),
		loop:      core.NewLoop(),
	}
	a.loader.TilesPerRow = cfg.Render.TilesPerRow

	a.events.On(core.EvtRegenerateRequested, func(e core.Event) {
		seed, ok := e.Payload.(int64)
		if !ok {
			seed = mapgen.RandomSeed()
		}
		if err := a.regenerate(seed); err != nil {
			a.log.Error("regenerate failed", zap.Error(err))
		}
	})
	a.events.On(core.EvtGridReplaced, func(core.Event) {
		a.log.Info("map generated",
			zap.Int64("seed", a.seed),
			zap.Any("histogram", a.grid.Histogram()),
		)
	})
	a.events.On(core.EvtAssetsLoaded, func(e core.Event) {
		a.catalog = e.Payload.(*assets.Catalog)
		a.loop.State = core.StateReady
	})
	a.events.On(core.EvtAssetsFailed, func(e core.Event) {
		a.loop.State = core.StateFailed
		a.log.Error("tilesets failed to load, textured mode disabled", zap.Error(e.Payload.(error)))
	})

	a.events.On(core.EvtExportRequested, a.onExportRequested)
	a.events.On(core.EvtResizeRequested, func(e core.Event) {
		size, _ := e.Payload.(int)
		if err := a.resize(size); err != nil {
			a.log.Warn("resize rejected", zap.Int("size", size), zap.Error(err))
		}
	})

	if err := a.regenerate(a.seed); err != nil {
		return nil, err
	}
	return a, nil
}

// regenerate refills the grid. The grid is untouched on error.
func (a *app) regenerate(seed int64) error {
	if err := a.gen.Generate(a.grid, a.cfg.Map.NoiseScale, seed, a.buckets); err != nil {
		return err
	}
	a.seed = seed
	a.cfg.Map.Seed = &seed
	a.editor.Reset()
	a.events.Emit(core.Event{Type: core.EvtGridReplaced, Frame: a.loop.Frame, Payload: a.grid.Revision()})
	return nil
}

// resize replaces the grid contents with a size x size map regenerated from
// the current seed. Invalid sizes leave the grid untouched.
func (a *app) resize(size int) error {
	if size < 1 || size > config.MaxGridSize {
		return fmt.Errorf("grid size %d not in 1..%d", size, config.MaxGridSize)
	}
	a.grid.Resize(size, size)
	a.cfg.Map.GridSize = size
	return a.regenerate(a.seed)
}

// saveConfig writes the live seed, grid size and view back to configPath.
func (a *app) saveConfig() error {
	a.cfg.SetView(a.view)
	if err := a.cfg.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config to %s: %w", a.configPath, err)
	}
	a.log.Info("config saved", zap.String("path", a.configPath), zap.Int64("seed", a.seed))
	return nil
}

func (a *app) scene() render.Scene {
	return render.Scene{
		Grid:        a.grid,
		Buckets:     a.buckets,
		Assets:      a.catalog,
		AssetsReady: a.loop.Ready() && a.catalog != nil,
	}
}

// startAssetLoad begins loading tilesets in the background.
func (a *app) startAssetLoad(ctx context.Context) {
	a.loop.State = core.StateLoading
	a.loader.Start(ctx, a.assetsDir, a.buckets)
}

// loadAssets loads tilesets synchronously, for headless export.
func (a *app) loadAssets(ctx context.Context) error {
	cat, err := a.loader.Load(ctx, a.assetsDir, a.buckets)
	if err != nil {
		return err
	}
	a.catalog = cat
	a.loop.State = core.StateReady
	return nil
}

// pollAssets turns a finished background load into an event.
func (a *app) pollAssets() {
	res, ok := a.loader.Poll()
	if !ok {
		return
	}
	if res.Err != nil {
		a.events.Emit(core.Event{Type: core.EvtAssetsFailed, Frame: a.loop.Frame, Payload: res.Err})
		return
	}
	a.events.Emit(core.Event{Type: core.EvtAssetsLoaded, Frame: a.loop.Frame, Payload: res.Catalog})
}

// export renders the whole map to a PNG file. Nothing is written when the
// export fails.
func (a *app) export(path string) error {
	var buf bytes.Buffer
	st, err := a.renderer.Export(&buf, a.scene(), a.view, a.cfg.Render.MaxExportPixels)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.events.Emit(core.Event{Type: core.EvtExported, Frame: a.loop.Frame, Payload: path})
	a.log.Info("export written",
		zap.String("path", path),
		zap.Int("base", st.BaseDraws),
		zap.Int("transitions", st.TransitionDraws),
		zap.Int("misses", st.Misses),
	)
	return nil
}

// onExportRequested handles export requests between frames.
func (a *app) onExportRequested(e core.Event) {
	path, _ := e.Payload.(string)
	if err := a.export(path); err != nil {
		a.log.Error("export failed", zap.String("path", path), zap.Error(err))
	}
}
