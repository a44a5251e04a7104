// Command import_tileset copies a third-party Wang tileset into the
// <assets dir>/<terrain key>/ layout, rescaling it to the configured tile
// size.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/config"
	"github.com/1siamBot/dualgrid/engine/logger"
	"github.com/1siamBot/dualgrid/engine/maplib"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	sheet := flag.String("sheet", "", "Source sprite sheet (PNG)")
	meta := flag.String("meta", "", "Source metadata (JSON)")
	terrain := flag.String("terrain", "", "Terrain bucket name, e.g. \"Water\"")
	out := flag.String("out", "", "Assets directory (default: assets.dir from config)")
	flag.Parse()

	if *sheet == "" || *meta == "" || *terrain == "" {
		fmt.Fprintln(os.Stderr, "usage: import_tileset -sheet tiles.png -meta tiles.json -terrain Water [-out dir]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(logger.Options{Level: cfg.Logging.Level})
	defer logger.Sync(log)

	dir := *out
	if dir == "" {
		dir = cfg.Assets.Dir
	}

	job := importJob{
		SheetPath:   *sheet,
		MetaPath:    *meta,
		Key:         maplib.AssetKey(*terrain),
		OutDir:      dir,
		TileWidth:   cfg.Render.TileWidth,
		TileHeight:  cfg.Render.TileHeight,
		TilesPerRow: cfg.Render.TilesPerRow,
	}
	res, err := job.Run()
	if err != nil {
		log.Fatal("import failed", zap.Error(err))
	}
	log.Info("tileset imported",
		zap.String("folder", res.Folder),
		zap.Int("tiles", res.Tiles),
		zap.Bool("rescaled", res.Rescaled),
		zap.Int("missing_roles", res.MissingRoles),
	)
}
