package wang

import (
	"image"
	"image/color"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/maplib"
)

// VariantKind selects how a variant is drawn.
type VariantKind uint8

const (
	// VariantSprite blits Src from Sheet.
	VariantSprite VariantKind = iota
	// VariantShape fills the corner regions of Role with Color.
	VariantShape
)

// Variant is a resolved draw directive for one tile.
type Variant struct {
	Kind  VariantKind
	ID    int
	Role  dualgrid.Role
	Src   image.Rectangle
	Sheet image.Image
	Color color.RGBA
}

// Resolver maps a terrain layer and role to a variant. A false result
// means the tile is skipped.
type Resolver interface {
	Resolve(t maplib.TerrainType, role dualgrid.Role) (Variant, bool)
}

// Provider supplies tilesets keyed by terrain.
type Provider interface {
	Tileset(t maplib.TerrainType) (*Tileset, bool)
}

// SpriteResolver resolves textured variants from a Provider.
type SpriteResolver struct {
	Assets Provider
}

// Resolve implements Resolver.
func (r SpriteResolver) Resolve(t maplib.TerrainType, role dualgrid.Role) (Variant, bool) {
	if role == dualgrid.RoleNone || !role.Valid() || r.Assets == nil {
		return Variant{}, false
	}
	ts, ok := r.Assets.Tileset(t)
	if !ok || ts == nil {
		return Variant{}, false
	}
	return ts.Variant(role)
}

// ShapeResolver resolves procedural colored variants from bucket colors.
type ShapeResolver struct {
	Buckets *maplib.BucketSet
}

// Resolve implements Resolver.
func (r ShapeResolver) Resolve(t maplib.TerrainType, role dualgrid.Role) (Variant, bool) {
	if role == dualgrid.RoleNone || !role.Valid() || r.Buckets == nil {
		return Variant{}, false
	}
	b, ok := r.Buckets.Bucket(t)
	if !ok {
		return Variant{}, false
	}
	return Variant{Kind: VariantShape, ID: int(role), Role: role, Color: b.Color}, true
}
