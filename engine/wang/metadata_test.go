package wang

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
)

const sampleMetadata = `{
  "tile_width": 64,
  "tile_height": 32,
  "wang_sets": [
    {"members": [
      {"id": 0, "role": 1},
      {"id": 1, "role": 2},
      {"id": 2, "role": 3},
      {"id": 9, "role": 15},
      {"id": 7, "role": 3},
      {"id": 4, "role": 0},
      {"id": 5, "role": 16},
      {"id": -1, "role": 4}
    ]},
    {"members": [{"id": 11, "role": 8}]}
  ]
}`

func TestParseMetadata(t *testing.T) {
	m, err := ParseMetadata(strings.NewReader(sampleMetadata))
	require.NoError(t, err)
	assert.Equal(t, 64, m.TileWidth)
	assert.Equal(t, 32, m.TileHeight)
	require.Len(t, m.WangSets, 2)

	table := m.RoleTable()
	assert.Equal(t, 4, table.Len())

	id, ok := table.Lookup(dualgrid.RoleTop)
	require.True(t, ok)
	assert.Equal(t, 0, id)

	// Duplicate roles: the last member wins.
	id, ok = table.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, 7, id)

	id, ok = table.Lookup(dualgrid.RoleFull)
	require.True(t, ok)
	assert.Equal(t, 9, id)

	// Out-of-range members and the second wang set are ignored.
	_, ok = table.Lookup(dualgrid.RoleBottom)
	assert.False(t, ok)
	_, ok = table.Lookup(dualgrid.RoleLeft)
	assert.False(t, ok)
	_, ok = table.Lookup(dualgrid.RoleNone)
	assert.False(t, ok)
}

func TestParseMetadataErrors(t *testing.T) {
	tests := map[string]string{
		"malformed":  `{"tile_width": 64,`,
		"zero width": `{"tile_width": 0, "tile_height": 32, "wang_sets": [{"members": []}]}`,
		"no sets":    `{"tile_width": 64, "tile_height": 32, "wang_sets": []}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMetadata(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}

	_, err := ParseMetadata(strings.NewReader(`{"tile_width": 8, "tile_height": 8}`))
	assert.True(t, errors.Is(err, ErrNoWangSet))
}

func TestLoadMetadataRoundTrip(t *testing.T) {
	m := &Metadata{
		TileWidth:  32,
		TileHeight: 16,
		WangSets:   []WangSet{{Members: []Member{{ID: 3, Role: 6}}}},
	}
	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))

	path := filepath.Join(t.TempDir(), "tileset.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := LoadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = LoadMetadata(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRoleTableMissing(t *testing.T) {
	var table RoleTable
	assert.Len(t, table.Missing(), 15)

	table.Set(dualgrid.RoleNone, 4)
	table.Set(20, 4)
	assert.Equal(t, 0, table.Len())

	for r := dualgrid.Role(1); r <= dualgrid.RoleFull; r++ {
		table.Set(r, int(r))
	}
	assert.Empty(t, table.Missing())
}
