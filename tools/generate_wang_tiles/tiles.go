package main

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/1siamBot/dualgrid/engine/assets"
	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/mapgen"
	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/render"
	"github.com/1siamBot/dualgrid/engine/wang"
)

// detailFn adds terrain-specific texture on top of the grain noise.
type detailFn func(x, y float64) float64

var details = map[string]detailFn{
	"water": func(x, y float64) float64 { return 6 * math.Sin(x*0.25+y*0.9) },
	"sand":  func(x, y float64) float64 { return 4 * math.Sin(x*0.15+y*0.08) },
	"dirt":  func(x, y float64) float64 { return 5 * math.Sin(x*0.8+y*0.3) },
	"grass": func(x, y float64) float64 { return 6 * math.Sin(x*1.7) * math.Cos(y*2.3) },
}

func keySeed(key string) int64 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int64(h.Sum32())
}

// texture returns a tw x th image in the bucket color with grain.
func texture(b maplib.Bucket, tw, th int) (*image.RGBA, error) {
	key := b.AssetKey()
	src, err := mapgen.NewSource(mapgen.SourcePerlin, keySeed(key))
	if err != nil {
		return nil, err
	}
	detail := details[key]

	img := image.NewRGBA(image.Rect(0, 0, tw, th))
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			fx, fy := float64(x), float64(y)
			v := 14 * src.Noise2D(fx*0.35, fy*0.35)
			if detail != nil {
				v += detail(fx, fy)
			}
			img.SetRGBA(x, y, shade(b.Color, v))
		}
	}
	return img, nil
}

func shade(c color.RGBA, delta float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)+delta)))
	}
	return color.RGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}

// roleMask returns an alpha mask covering the corners of role on a tw x th
// diamond.
func roleMask(role dualgrid.Role, tw, th int) *image.RGBA {
	proj := render.Projection{
		Isometric:  true,
		TileWidth:  float64(tw),
		TileHeight: float64(th),
		OriginX:    float64(tw) / 2,
		Zoom:       1,
	}
	outline := proj.TileOutline(0, 0)

	surf := render.NewRasterSurface(tw, th)
	surf.Clear(color.Transparent)
	if role == dualgrid.RoleFull {
		surf.FillPolygon(outline[:], color.White)
		return surf.Image()
	}
	bits := [4]dualgrid.Role{dualgrid.RoleTop, dualgrid.RoleRight, dualgrid.RoleBottom, dualgrid.RoleLeft}
	for i, bit := range bits {
		if role.Has(bit) {
			surf.FillPolygon(render.CornerRegion(outline, i), color.White)
		}
	}
	return surf.Image()
}

// buildSheet draws the 15 roles of one terrain. Sprite id equals role, so
// slot 0 stays empty.
func buildSheet(b maplib.Bucket, tw, th, perRow int) (*image.RGBA, error) {
	tex, err := texture(b, tw, th)
	if err != nil {
		return nil, err
	}
	rows := (int(dualgrid.RoleFull) + perRow) / perRow
	sheet := image.NewRGBA(image.Rect(0, 0, perRow*tw, rows*th))

	ts := &wang.Tileset{Sheet: sheet, TileWidth: tw, TileHeight: th, TilesPerRow: perRow}
	for r := dualgrid.Role(1); r <= dualgrid.RoleFull; r++ {
		dst := ts.SourceRect(int(r))
		draw.DrawMask(sheet, dst, tex, image.Point{}, roleMask(r, tw, th), image.Point{}, draw.Over)
	}
	return sheet, nil
}

// buildMetadata maps every role to the sprite with the same id.
func buildMetadata(tw, th int) *wang.Metadata {
	set := wang.WangSet{}
	for r := 1; r <= int(dualgrid.RoleFull); r++ {
		set.Members = append(set.Members, wang.Member{ID: r, Role: r})
	}
	return &wang.Metadata{TileWidth: tw, TileHeight: th, WangSets: []wang.WangSet{set}}
}

// writeTileset writes one terrain folder. Existing folders are kept unless
// overwrite is set; it reports whether anything was written.
func writeTileset(dir string, b maplib.Bucket, tw, th, perRow int, overwrite bool) (bool, error) {
	folder := filepath.Join(dir, b.AssetKey())
	sheetPath := filepath.Join(folder, assets.SheetFile)
	if _, err := os.Stat(sheetPath); err == nil && !overwrite {
		return false, nil
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return false, err
	}

	sheet, err := buildSheet(b, tw, th, perRow)
	if err != nil {
		return false, err
	}
	if err := writePNG(sheetPath, sheet); err != nil {
		return false, err
	}

	f, err := os.Create(filepath.Join(folder, assets.MetadataFile))
	if err != nil {
		return false, err
	}
	defer f.Close()
	if err := buildMetadata(tw, th).Encode(f); err != nil {
		return false, fmt.Errorf("writing metadata for %s: %w", b.Name, err)
	}
	return true, f.Close()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
