package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/1siamBot/dualgrid/engine/mapgen"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// ValidationError names the offending option.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every option. It does not modify c.
func (c *Config) Validate() error {
	m := c.Map
	if m.GridSize < 1 || m.GridSize > MaxGridSize {
		return invalid("map.grid_size", "%d not in 1..%d", m.GridSize, MaxGridSize)
	}
	if !(m.NoiseScale > 0) || math.IsInf(m.NoiseScale, 0) {
		return invalid("map.noise_scale", "must be a positive number, got %v", m.NoiseScale)
	}
	switch m.Noise {
	case mapgen.SourceSimplex, mapgen.SourcePerlin:
	default:
		return invalid("map.noise", "unknown noise source %q", m.Noise)
	}
	if _, err := c.BucketSet(); err != nil {
		return err
	}

	r := c.Render
	if _, err := c.View(); err != nil {
		return err
	}
	if r.TileWidth <= 0 || r.TileHeight <= 0 || r.TileWidth > MaxTileSize || r.TileHeight > MaxTileSize {
		return invalid("render.tile_width", "tile size %dx%d not in 1..%d", r.TileWidth, r.TileHeight, MaxTileSize)
	}
	if r.CellSize <= 0 || r.CellSize > MaxTileSize {
		return invalid("render.cell_size", "%d not in 1..%d", r.CellSize, MaxTileSize)
	}
	if r.TilesPerRow <= 0 {
		return invalid("render.tiles_per_row", "must be positive, got %d", r.TilesPerRow)
	}
	if !(r.Zoom > 0) || math.IsInf(r.Zoom, 0) {
		return invalid("render.zoom", "must be a positive number, got %v", r.Zoom)
	}
	if math.IsNaN(r.Camera.X) || math.IsNaN(r.Camera.Y) || math.IsInf(r.Camera.X, 0) || math.IsInf(r.Camera.Y, 0) {
		return invalid("render.camera", "must be finite")
	}
	if r.MaxExportPixels < 0 {
		return invalid("render.max_export_pixels", "must not be negative")
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level", "unknown level %q", c.Logging.Level)
	}
	return nil
}
