// Package config handles viewer configuration loading and validation.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/1siamBot/dualgrid/engine/mapgen"
	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/render"
)

// MaxGridSize bounds map.grid_size.
const MaxGridSize = 512

// MaxTileSize bounds render.tile_width, render.tile_height and
// render.cell_size, in pixels.
const MaxTileSize = 4096

// Config holds all viewer settings.
type Config struct {
	Map     MapConfig     `yaml:"map"`
	Render  RenderConfig  `yaml:"render"`
	Assets  AssetsConfig  `yaml:"assets"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// MapConfig holds terrain generation settings.
type MapConfig struct {
	GridSize   int            `yaml:"grid_size"`
	NoiseScale float64        `yaml:"noise_scale"`
	Seed       *int64         `yaml:"seed"` // nil picks a random seed
	Noise      string         `yaml:"noise"`
	Buckets    []BucketConfig `yaml:"buckets"`
}

// BucketConfig is one terrain bucket. Color is "#rrggbb".
type BucketConfig struct {
	Name      string  `yaml:"name"`
	Color     string  `yaml:"color"`
	Threshold float64 `yaml:"threshold"`
}

// RenderConfig holds view settings.
type RenderConfig struct {
	Mode            string       `yaml:"mode"`
	TileWidth       int          `yaml:"tile_width"`
	TileHeight      int          `yaml:"tile_height"`
	CellSize        int          `yaml:"cell_size"`
	TilesPerRow     int          `yaml:"tiles_per_row"`
	Camera          CameraConfig `yaml:"camera"`
	Zoom            float64      `yaml:"zoom"`
	Layers          LayersConfig `yaml:"layers"`
	MaxExportPixels int          `yaml:"max_export_pixels"`
}

// CameraConfig is the initial pan offset in pixels.
type CameraConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LayersConfig holds layer visibility flags.
type LayersConfig struct {
	Base       bool `yaml:"base"`
	Transition bool `yaml:"transition"`
	WorldGrid  bool `yaml:"world_grid"`
	DualGrid   bool `yaml:"dual_grid"`
}

// AssetsConfig holds tileset locations.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	view := render.DefaultView()
	return &Config{
		Map: MapConfig{
			GridSize:   48,
			NoiseScale: 0.08,
			Noise:      mapgen.SourceSimplex,
			Buckets:    BucketsToConfig(maplib.DefaultBuckets()),
		},
		Render: RenderConfig{
			Mode:            view.Mode.String(),
			TileWidth:       view.TileWidth,
			TileHeight:      view.TileHeight,
			CellSize:        view.CellSize,
			TilesPerRow:     8,
			Zoom:            view.Zoom,
			Layers:          LayersConfig{Base: true, Transition: true},
			MaxExportPixels: render.DefaultMaxExportPixels,
		},
		Assets: AssetsConfig{Dir: "assets/terrain"},
		Window: WindowConfig{Width: 1280, Height: 720},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// BucketsToConfig converts buckets to their YAML form.
func BucketsToConfig(buckets []maplib.Bucket) []BucketConfig {
	out := make([]BucketConfig, len(buckets))
	for i, b := range buckets {
		out[i] = BucketConfig{Name: b.Name, Color: FormatColor(b.Color), Threshold: b.Threshold}
	}
	return out
}

// BucketSet builds the validated bucket set.
func (c *Config) BucketSet() (*maplib.BucketSet, error) {
	buckets := make([]maplib.Bucket, len(c.Map.Buckets))
	for i, b := range c.Map.Buckets {
		col, err := ParseColor(b.Color)
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("map.buckets[%d].color", i), Reason: err.Error()}
		}
		buckets[i] = maplib.Bucket{Name: b.Name, Color: col, Threshold: b.Threshold}
	}
	bs, err := maplib.NewBucketSet(buckets)
	if err != nil {
		return nil, &ValidationError{Field: "map.buckets", Reason: err.Error()}
	}
	return bs, nil
}

// View builds the render view.
func (c *Config) View() (render.View, error) {
	mode, err := render.ParseMode(c.Render.Mode)
	if err != nil {
		return render.View{}, &ValidationError{Field: "render.mode", Reason: err.Error()}
	}
	return render.View{
		Mode:       mode,
		TileWidth:  c.Render.TileWidth,
		TileHeight: c.Render.TileHeight,
		CellSize:   c.Render.CellSize,
		CameraX:    c.Render.Camera.X,
		CameraY:    c.Render.Camera.Y,
		Zoom:       c.Render.Zoom,
		Layers: render.Layers{
			Base:       c.Render.Layers.Base,
			Transition: c.Render.Layers.Transition,
			WorldGrid:  c.Render.Layers.WorldGrid,
			DualGrid:   c.Render.Layers.DualGrid,
		},
	}, nil
}

// SetView records v's mode, camera, zoom and layers so a saved config
// reopens the same view.
func (c *Config) SetView(v render.View) {
	c.Render.Mode = v.Mode.String()
	c.Render.Camera = CameraConfig{X: v.CameraX, Y: v.CameraY}
	c.Render.Zoom = v.Zoom
	c.Render.Layers = LayersConfig{
		Base:       v.Layers.Base,
		Transition: v.Layers.Transition,
		WorldGrid:  v.Layers.WorldGrid,
		DualGrid:   v.Layers.DualGrid,
	}
}

// ResolveSeed returns the configured seed, picking and recording a random
// one when none is set.
func (c *Config) ResolveSeed() int64 {
	if c.Map.Seed == nil {
		seed := mapgen.RandomSeed()
		c.Map.Seed = &seed
	}
	return *c.Map.Seed
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" as straight alpha and returns
// the premultiplied color.
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	if len(s) == 7 {
		v = v<<8 | 0xff
	}
	nc := color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}

// FormatColor formats premultiplied c as straight-alpha "#rrggbb", adding
// alpha only when not opaque.
func FormatColor(pc color.RGBA) string {
	c := color.NRGBAModel.Convert(pc).(color.NRGBA)
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
