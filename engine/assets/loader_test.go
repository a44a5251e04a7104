package assets

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
	"github.com/1siamBot/dualgrid/engine/maplib"
	"github.com/1siamBot/dualgrid/engine/wang"
)

// writeTileset writes a 16 tile sheet and full role metadata into
// dir/key.
func writeTileset(t *testing.T, dir, key string) {
	t.Helper()
	folder := filepath.Join(dir, key)
	require.NoError(t, os.MkdirAll(folder, 0o755))

	sheet := image.NewRGBA(image.Rect(0, 0, 8*64, 2*32))
	sheet.Set(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(filepath.Join(folder, SheetFile))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, sheet))
	require.NoError(t, f.Close())

	meta := &wang.Metadata{TileWidth: 64, TileHeight: 32, WangSets: []wang.WangSet{{}}}
	for r := 1; r <= 15; r++ {
		meta.WangSets[0].Members = append(meta.WangSets[0].Members, wang.Member{ID: r, Role: r})
	}
	mf, err := os.Create(filepath.Join(folder, MetadataFile))
	require.NoError(t, err)
	require.NoError(t, meta.Encode(mf))
	require.NoError(t, mf.Close())
}

func TestLoadSkipsMissingTerrains(t *testing.T) {
	dir := t.TempDir()
	writeTileset(t, dir, "water")
	writeTileset(t, dir, "grass")
	buckets := maplib.MustDefaultBucketSet()

	cat, err := NewLoader(nil).Load(context.Background(), dir, buckets)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	ts, ok := cat.Tileset(0)
	require.True(t, ok)
	v, ok := ts.Variant(dualgrid.RoleFull)
	require.True(t, ok)
	assert.Equal(t, image.Rect(7*64, 32, 8*64, 64), v.Src)

	assert.Equal(t, []maplib.TerrainType{1, 2}, cat.Missing(buckets))
}

func TestLoadSkipsMalformedMetadata(t *testing.T) {
	dir := t.TempDir()
	for _, key := range []string{"water", "sand", "dirt", "grass"} {
		writeTileset(t, dir, key)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grass", MetadataFile), []byte("{"), 0o644))
	buckets := maplib.MustDefaultBucketSet()

	core, logs := observer.New(zapcore.WarnLevel)
	cat, err := NewLoader(zap.New(core)).Load(context.Background(), dir, buckets)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len(), "other terrains still load")
	assert.Equal(t, []maplib.TerrainType{3}, cat.Missing(buckets))

	warned := logs.FilterMessage("tileset unusable, terrain will not be textured").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "Grass", warned[0].ContextMap()["terrain"])
}

func TestLoadSkipsUndecodableSheet(t *testing.T) {
	dir := t.TempDir()
	writeTileset(t, dir, "water")
	writeTileset(t, dir, "sand")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sand", SheetFile), []byte("not a png"), 0o644))
	buckets := maplib.MustDefaultBucketSet()

	cat, err := NewLoader(nil).Load(context.Background(), dir, buckets)
	require.NoError(t, err)
	assert.Equal(t, []maplib.TerrainType{1, 2, 3}, cat.Missing(buckets))
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(nil).Load(ctx, t.TempDir(), maplib.MustDefaultBucketSet())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartPollLastWriterWins(t *testing.T) {
	dir := t.TempDir()
	writeTileset(t, dir, "water")
	buckets := maplib.MustDefaultBucketSet()
	l := NewLoader(nil)

	first := l.Start(context.Background(), dir, buckets)
	second := l.Start(context.Background(), dir, buckets)
	require.Greater(t, second, first)
	assert.Equal(t, second, l.Generation())

	var res Result
	require.Eventually(t, func() bool {
		r, ok := l.Poll()
		if ok {
			res = r
		}
		return ok
	}, 5*time.Second, 5*time.Millisecond)

	assert.Equal(t, second, res.Generation)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Catalog.Len())

	_, ok := l.Poll()
	assert.False(t, ok, "results are delivered once")
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Tileset(0)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestFindDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, FindDir(dir))
	assert.Equal(t, "no-such-dir-xyz", FindDir("no-such-dir-xyz"))
}
