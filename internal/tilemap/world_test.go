package tilemap

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-adventure/internal/assets"
)

func testData() *assets.LevelData {
	set := &assets.TileSet{
		Name: "meadow",
		Tiles: []assets.Tile{
			{ID: 0, Glyph: "."},
			{ID: 1, Glyph: "~"},
			{ID: 4, Glyph: "▲"},
		},
	}
	return &assets.LevelData{
		Level: &assets.Level{
			Width:      3,
			Height:     2,
			TileWidth:  16,
			TileHeight: 8,
			TileSets:   []assets.TileSetRef{{FirstGID: 1, Source: "tiles.yaml"}},
			Layers: []assets.Layer{
				{Name: "ground", Data: []int{1, 2, 1, 2, 1, 2}},
				{Name: "decoration", Data: []int{0, 0, 5, 0, 9, 0}},
			},
		},
		TileSets: map[string]*assets.TileSet{"tiles.yaml": set},
		Refs:     []string{"tiles.yaml"},
	}
}

func TestTileAt(t *testing.T) {
	w, err := New(testData())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name            string
		layer, col, row int
		wantGlyph       string
		wantOK          bool
	}{
		{"ground first", 0, 0, 0, ".", true},
		{"ground second row", 0, 0, 1, "~", true},
		{"decoration rock", 1, 2, 0, "▲", true},
		{"empty sentinel", 1, 0, 0, "", false},
		{"unknown id", 1, 1, 1, "", false},
		{"col out of range", 0, 3, 0, "", false},
		{"negative row", 0, 0, -1, "", false},
		{"layer out of range", 2, 0, 0, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tile, ok := w.TileAt(tc.layer, tc.col, tc.row)
			if ok != tc.wantOK {
				t.Fatalf("TileAt(%d,%d,%d) ok = %v, expected %v", tc.layer, tc.col, tc.row, ok, tc.wantOK)
			}
			if ok && tile.Glyph != tc.wantGlyph {
				t.Errorf("TileAt(%d,%d,%d) glyph = %q, expected %q", tc.layer, tc.col, tc.row, tile.Glyph, tc.wantGlyph)
			}
		})
	}
}

// Every non-empty stored id k resolves to the tile with id k-1.
func TestTileAtOffByOne(t *testing.T) {
	data := testData()
	w, err := New(data)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	cols, rows := w.Size()
	for li, layer := range data.Level.Layers {
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				stored := layer.Data[row*cols+col]
				tile, ok := w.TileAt(li, col, row)
				if !ok {
					continue
				}
				if tile.ID != stored-1 {
					t.Errorf("layer %d (%d,%d): tile id %d, stored %d", li, col, row, tile.ID, stored)
				}
			}
		}
	}
}

func TestWorldBounds(t *testing.T) {
	w, err := New(testData())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	bw, bh := w.WorldBounds()
	if bw != 48 || bh != 16 {
		t.Errorf("WorldBounds() = %dx%d, expected 48x16", bw, bh)
	}
	if w.Layers() != 2 || w.LayerName(1) != "decoration" {
		t.Errorf("layers = %d (%q), expected 2 (decoration)", w.Layers(), w.LayerName(1))
	}
	if n := w.Unknown(); n != 1 {
		t.Errorf("Unknown() = %d, expected 1", n)
	}
}

func TestDuplicateTileIDAcrossSets(t *testing.T) {
	data := testData()
	data.TileSets["extra.yaml"] = &assets.TileSet{Tiles: []assets.Tile{{ID: 1}}}

	_, err := New(data)
	if err == nil || !strings.Contains(err.Error(), "tile id 1") {
		t.Errorf("New() error = %v, expected duplicate tile id", err)
	}
}

func TestNoLayers(t *testing.T) {
	data := testData()
	data.Level.Layers = nil
	if _, err := New(data); !errors.Is(err, ErrNoLayers) {
		t.Errorf("New() error = %v, expected ErrNoLayers", err)
	}
}

func TestBuiltinTerrain(t *testing.T) {
	data, err := assets.NewLoader("").LoadLevel("terrain.yaml", nil)
	if err != nil {
		t.Fatalf("LoadLevel() error: %v", err)
	}
	w, err := New(data)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if n := w.Unknown(); n != 0 {
		t.Errorf("builtin terrain has %d unknown cells", n)
	}
	bw, bh := w.WorldBounds()
	if bw != 48*16 || bh != 24*16 {
		t.Errorf("WorldBounds() = %dx%d", bw, bh)
	}
}
