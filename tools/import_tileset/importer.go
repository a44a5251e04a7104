package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/1siamBot/dualgrid/engine/assets"
	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/wang"
)

// importJob describes one tileset import.
type importJob struct {
	SheetPath string
	MetaPath  string
	Key       string
	OutDir    string

	TileWidth   int
	TileHeight  int
	TilesPerRow int // layout of both the source and the output sheet
}

type importResult struct {
	Folder       string
	Tiles        int
	Rescaled     bool
	MissingRoles int
}

// Run validates the source, rescales the sheet when its tile size differs
// from the target and writes the sheet and metadata.
func (j importJob) Run() (importResult, error) {
	if j.Key == "" {
		return importResult{}, errors.New("import: empty terrain key")
	}
	if j.TileWidth <= 0 || j.TileHeight <= 0 {
		return importResult{}, fmt.Errorf("import: invalid target tile size %dx%d", j.TileWidth, j.TileHeight)
	}

	meta, err := wang.LoadMetadata(j.MetaPath)
	if err != nil {
		return importResult{}, fmt.Errorf("import: %w", err)
	}
	src, err := decodePNG(j.SheetPath)
	if err != nil {
		return importResult{}, fmt.Errorf("import: %w", err)
	}

	// Every referenced tile must exist in the source sheet.
	ts := wang.NewTileset(src, meta, j.TilesPerRow)
	table := meta.RoleTable()
	for r := dualgrid.Role(1); r <= dualgrid.RoleFull; r++ {
		if _, ok := table.Lookup(r); !ok {
			continue
		}
		if _, ok := ts.Variant(r); !ok {
			return importResult{}, fmt.Errorf("import: role %d points outside %s", r, j.SheetPath)
		}
	}

	res := importResult{
		Folder:       filepath.Join(j.OutDir, j.Key),
		Tiles:        table.Len(),
		MissingRoles: len(table.Missing()),
	}

	out := src
	if meta.TileWidth != j.TileWidth || meta.TileHeight != j.TileHeight {
		out = rescale(src, float64(j.TileWidth)/float64(meta.TileWidth), float64(j.TileHeight)/float64(meta.TileHeight))
		meta.TileWidth, meta.TileHeight = j.TileWidth, j.TileHeight
		res.Rescaled = true
	}

	if err := os.MkdirAll(res.Folder, 0o755); err != nil {
		return importResult{}, err
	}
	if err := encodePNG(filepath.Join(res.Folder, assets.SheetFile), out); err != nil {
		return importResult{}, err
	}
	f, err := os.Create(filepath.Join(res.Folder, assets.MetadataFile))
	if err != nil {
		return importResult{}, err
	}
	defer f.Close()
	if err := meta.Encode(f); err != nil {
		return importResult{}, err
	}
	return res, f.Close()
}

// rescale resizes img by (sx, sy) with Catmull-Rom filtering.
func rescale(img image.Image, sx, sy float64) *image.RGBA {
	b := img.Bounds()
	w := int(float64(b.Dx())*sx + 0.5)
	h := int(float64(b.Dy())*sy + 0.5)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func encodePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
