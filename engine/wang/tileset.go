package wang

import (
	"image"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
)

// DefaultTilesPerRow is the sprite sheet column count used when an asset
// layout does not say otherwise.
const DefaultTilesPerRow = 8

// Tileset is one terrain's sprite sheet with its role table.
type Tileset struct {
	Sheet       image.Image
	Roles       RoleTable
	TileWidth   int
	TileHeight  int
	TilesPerRow int
}

// NewTileset combines a decoded sheet with its metadata.
func NewTileset(sheet image.Image, meta *Metadata, tilesPerRow int) *Tileset {
	if tilesPerRow <= 0 {
		tilesPerRow = DefaultTilesPerRow
	}
	return &Tileset{
		Sheet:       sheet,
		Roles:       meta.RoleTable(),
		TileWidth:   meta.TileWidth,
		TileHeight:  meta.TileHeight,
		TilesPerRow: tilesPerRow,
	}
}

// SourceRect returns the sheet rectangle of sprite id.
func (ts *Tileset) SourceRect(id int) image.Rectangle {
	perRow := ts.TilesPerRow
	if perRow <= 0 {
		perRow = DefaultTilesPerRow
	}
	col := id % perRow
	row := id / perRow
	r := image.Rect(0, 0, ts.TileWidth, ts.TileHeight).Add(image.Pt(col*ts.TileWidth, row*ts.TileHeight))
	if ts.Sheet != nil {
		r = r.Add(ts.Sheet.Bounds().Min)
	}
	return r
}

// Variant returns the sprite for role, or false when the role is missing
// from the table or points outside the sheet.
func (ts *Tileset) Variant(role dualgrid.Role) (Variant, bool) {
	id, ok := ts.Roles.Lookup(role)
	if !ok || ts.Sheet == nil {
		return Variant{}, false
	}
	src := ts.SourceRect(id)
	if src.Empty() || !src.In(ts.Sheet.Bounds()) {
		return Variant{}, false
	}
	return Variant{Kind: VariantSprite, ID: id, Role: role, Src: src, Sheet: ts.Sheet}, true
}
