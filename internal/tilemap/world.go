// Package tilemap holds the static tile grid the game is played on.
package tilemap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-adventure/internal/assets"
)

// ErrNoLayers is returned for levels without any tile layer.
var ErrNoLayers = errors.New("tilemap: level has no layers")

// Layer is a named full-grid array of stored tile ids.
type Layer struct {
	Name string
	ids  []int
}

// World is a grid of tile layers with resolved tile definitions.
// It is immutable after New.
type World struct {
	cols, rows int
	tileW      int
	tileH      int
	layers     []Layer
	tiles      map[int]*assets.Tile
}

// New builds a world from a loaded level. Tile ids must be unique across all
// referenced tilesets.
func New(data *assets.LevelData) (*World, error) {
	lvl := data.Level
	if len(lvl.Layers) == 0 {
		return nil, ErrNoLayers
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("tilemap: %w", err)
	}

	w := &World{
		cols:  lvl.Width,
		rows:  lvl.Height,
		tileW: lvl.TileWidth,
		tileH: lvl.TileHeight,
		tiles: make(map[int]*assets.Tile),
	}

	// Walk sources in a stable order so the duplicate report is deterministic.
	keys := make([]string, 0, len(data.TileSets))
	for k := range data.TileSets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	owner := make(map[int]string)
	for _, key := range keys {
		ts := data.TileSets[key]
		for i := range ts.Tiles {
			tile := &ts.Tiles[i]
			if prev, dup := owner[tile.ID]; dup {
				return nil, fmt.Errorf("tilemap: tile id %d defined in both %s and %s", tile.ID, prev, key)
			}
			owner[tile.ID] = key
			w.tiles[tile.ID] = tile
		}
	}

	for _, l := range lvl.Layers {
		w.layers = append(w.layers, Layer{Name: l.Name, ids: l.Data})
	}
	return w, nil
}

// TileAt returns the tile definition at a grid cell of a layer. It reports
// false for empty cells, coordinates outside the grid and unknown ids.
func (w *World) TileAt(layer, col, row int) (*assets.Tile, bool) {
	if layer < 0 || layer >= len(w.layers) {
		return nil, false
	}
	if col < 0 || col >= w.cols || row < 0 || row >= w.rows {
		return nil, false
	}
	stored := w.layers[layer].ids[row*w.cols+col]
	if stored == 0 {
		return nil, false
	}
	tile, ok := w.tiles[stored-1]
	return tile, ok
}

// WorldBounds returns the world size in pixels.
func (w *World) WorldBounds() (int, int) {
	return w.cols * w.tileW, w.rows * w.tileH
}

// Size returns the grid size in tiles.
func (w *World) Size() (cols, rows int) {
	return w.cols, w.rows
}

// TileSize returns the pixel size of one tile.
func (w *World) TileSize() (int, int) {
	return w.tileW, w.tileH
}

// Layers returns the number of layers, drawn back to front.
func (w *World) Layers() int {
	return len(w.layers)
}

// LayerName returns the name of layer i.
func (w *World) LayerName(i int) string {
	if i < 0 || i >= len(w.layers) {
		return ""
	}
	return w.layers[i].Name
}

// Unknown counts non-empty cells whose id has no tile definition. Such cells
// are skipped when drawing.
func (w *World) Unknown() int {
	n := 0
	for _, l := range w.layers {
		for _, id := range l.ids {
			if id == 0 {
				continue
			}
			if _, ok := w.tiles[id-1]; !ok {
				n++
			}
		}
	}
	return n
}
