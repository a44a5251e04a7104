package config

import (
	"flag"
	"strconv"
	"strings"

	"github.com/1siamBot/dualgrid/engine/render"
)

// Flags holds command-line overrides. Only flags that were set on the
// command line override the config file.
type Flags struct {
	Config string
	Export string

	fs         *flag.FlagSet
	debug      bool
	gridSize   int
	noiseScale float64
	seed       string
	noise      string
	mode       string
	zoom       float64
	assetsDir  string
	width      int
	height     int
}

// RegisterFlags defines the viewer flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Export, "export", "", "Render the whole map to this PNG and exit")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.gridSize, "grid-size", 0, "Terrain grid size (cells per side)")
	fs.Float64Var(&f.noiseScale, "noise-scale", 0, "Noise scale factor")
	fs.StringVar(&f.seed, "seed", "", `Noise seed, or "none" for a random seed`)
	fs.StringVar(&f.noise, "noise", "", "Noise source (simplex, perlin)")
	fs.StringVar(&f.mode, "mode", "", "Render mode ("+strings.Join(render.ModeNames(), ", ")+")")
	fs.Float64Var(&f.zoom, "zoom", 0, "Initial zoom")
	fs.StringVar(&f.assetsDir, "assets", "", "Tileset directory")
	fs.IntVar(&f.width, "width", 0, "Window width")
	fs.IntVar(&f.height, "height", 0, "Window height")
	return f
}

// Apply applies the flags that were set to cfg.
func (f *Flags) Apply(cfg *Config) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "grid-size":
			cfg.Map.GridSize = f.gridSize
		case "noise-scale":
			cfg.Map.NoiseScale = f.noiseScale
		case "seed":
			err = applySeed(cfg, f.seed)
		case "noise":
			cfg.Map.Noise = f.noise
		case "mode":
			cfg.Render.Mode = f.mode
		case "zoom":
			cfg.Render.Zoom = f.zoom
		case "assets":
			cfg.Assets.Dir = f.assetsDir
		case "width":
			cfg.Window.Width = f.width
		case "height":
			cfg.Window.Height = f.height
		}
	})
	return err
}

func applySeed(cfg *Config, s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		cfg.Map.Seed = nil
		return nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return &ValidationError{Field: "seed", Reason: "not an integer: " + strconv.Quote(s)}
	}
	cfg.Map.Seed = &seed
	return nil
}
