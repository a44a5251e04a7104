// Command dualgrid views procedurally generated dual-grid Wang-tile terrain.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/1siamBot/dualgrid/engine/config"
	"github.com/1siamBot/dualgrid/engine/logger"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags.Config, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := logger.Options{Level: cfg.Logging.Level}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log := logger.New(opts)
	defer logger.Sync(log)

	if err := run(cfg, flags, log); err != nil {
		log.Error("dualgrid failed", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, flags *config.Flags, log *zap.Logger) error {
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	a.configPath = config.SavePath(flags.Config)
	if flags.Export != "" {
		return runExport(a, flags.Export)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(fmt.Sprintf("Dual Grid Terrain (seed %d)", a.seed))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	return ebiten.RunGame(newGame(a, cfg.Window.Width, cfg.Window.Height))
}

// runExport renders the map headlessly.
func runExport(a *app, path string) error {
	if a.view.Mode.Textured() {
		if err := a.loadAssets(context.Background()); err != nil {
			return err
		}
	}
	a.events.Dispatch()
	return a.export(path)
}
