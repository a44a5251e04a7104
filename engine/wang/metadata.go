// Package wang maps terrain layers and corner roles to drawable tile
// variants.
package wang

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/dualgrid/engine/dualgrid"
)

// ErrNoWangSet is returned for metadata without a usable wang set.
var ErrNoWangSet = errors.New("wang metadata has no wang sets")

// Metadata is the per-terrain tileset description:
//
//	{"tile_width": 64, "tile_height": 32,
//	 "wang_sets": [{"members": [{"id": 0, "role": 1}, ...]}]}
type Metadata struct {
	TileWidth  int       `json:"tile_width"`
	TileHeight int       `json:"tile_height"`
	WangSets   []WangSet `json:"wang_sets"`
}

// WangSet lists the tiles of one wang set.
type WangSet struct {
	Members []Member `json:"members"`
}

// Member assigns sprite id to a corner role.
type Member struct {
	ID   int `json:"id"`
	Role int `json:"role"`
}

// ParseMetadata decodes and validates tileset metadata.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	var m Metadata
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding wang metadata: %w", err)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("wang metadata: invalid tile size %dx%d", m.TileWidth, m.TileHeight)
	}
	if len(m.WangSets) == 0 {
		return nil, ErrNoWangSet
	}
	return &m, nil
}

// LoadMetadata reads metadata from a JSON file.
func LoadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseMetadata(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// RoleTable builds the role table from the first wang set. Later members
// overwrite earlier ones with the same role; members with a role outside
// 1..15 or a negative id are ignored.
func (m *Metadata) RoleTable() RoleTable {
	var t RoleTable
	if len(m.WangSets) == 0 {
		return t
	}
	for _, mem := range m.WangSets[0].Members {
		if mem.Role < 1 || mem.Role > int(dualgrid.RoleFull) || mem.ID < 0 {
			continue
		}
		t.Set(dualgrid.Role(mem.Role), mem.ID)
	}
	return t
}

// Encode writes m as indented JSON.
func (m *Metadata) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
