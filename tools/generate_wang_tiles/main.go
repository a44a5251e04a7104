// Command generate_wang_tiles writes a procedural isometric Wang tileset
// for every configured terrain bucket.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/config"
	"github.com/1siamBot/dualgrid/engine/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	out := flag.String("out", "", "Output directory (default: assets.dir from config)")
	overwrite := flag.Bool("overwrite", false, "Replace existing tilesets")
	flag.Parse()

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
	buckets, err := cfg.BucketSet()
	if err != nil {
		log.Fatal("invalid buckets", zap.Error(err))
	}

	tw, th, perRow := cfg.Render.TileWidth, cfg.Render.TileHeight, cfg.Render.TilesPerRow
	for _, b := range buckets.Buckets() {
		wrote, err := writeTileset(dir, b, tw, th, perRow, *overwrite)
		if err != nil {
			log.Fatal("tileset generation failed", zap.String("terrain", b.Name), zap.Error(err))
		}
		if !wrote {
			log.Info("tileset exists, skipped", zap.String("terrain", b.Name))
			continue
		}
		log.Info("tileset written",
			zap.String("terrain", b.Name),
			zap.String("key", b.AssetKey()),
			zap.Int("tile_width", tw),
			zap.Int("tile_height", th),
		)
	}
}
