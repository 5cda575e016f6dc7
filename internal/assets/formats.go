// Package assets parses level, tileset and sprite-sheet descriptions.
//
// Files use the key names of the Tiled map editor's JSON export, so .tmj and
// .tsj files load as-is; YAML is accepted too since yaml.v3 reads both.
package assets

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

// Level is a parsed level description.
type Level struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	TileWidth  int          `yaml:"tilewidth"`
	TileHeight int          `yaml:"tileheight"`
	Layers     []Layer      `yaml:"layers"`
	TileSets   []TileSetRef `yaml:"tilesets"`
}

// Layer is one full-grid array of tile ids, row-major. Stored ids are
// 1-based; 0 means the cell is empty.
type Layer struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Data   []int  `yaml:"data"`
}

// TileSetRef names a tileset file relative to the level file.
type TileSetRef struct {
	FirstGID int    `yaml:"firstgid"`
	Source   string `yaml:"source"`
}

// TileSet is a parsed tileset description.
type TileSet struct {
	Name  string `yaml:"name"`
	Tiles []Tile `yaml:"tiles"`
}

// Tile is a single fixed-size textured cell definition.
type Tile struct {
	ID          int    `yaml:"id"`
	Image       string `yaml:"image"`
	ImageWidth  int    `yaml:"imagewidth"`
	ImageHeight int    `yaml:"imageheight"`

	// Terminal rendering hints: the glyph drawn for the tile and its color.
	Glyph string `yaml:"glyph,omitempty"`
	Color string `yaml:"color,omitempty"`

	// Texture is assigned once by the renderer when the tileset is loaded.
	Texture core.TextureID `yaml:"-"`
}

// SpriteSheetFile is a parsed sprite-sheet description.
type SpriteSheetFile struct {
	Name        string                   `yaml:"name"`
	FileName    string                   `yaml:"filename"`
	Rows        int                      `yaml:"rows"`
	Columns     int                      `yaml:"columns"`
	FrameWidth  int                      `yaml:"framewidth"`
	FrameHeight int                      `yaml:"frameheight"`
	Offset      OffsetFile               `yaml:"offset"`
	Glyphs      string                   `yaml:"glyphs,omitempty"`
	Color       string                   `yaml:"color,omitempty"`
	Animations  map[string]AnimationFile `yaml:"animations"`
}

// OffsetFile is the draw origin inside a frame.
type OffsetFile struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// AnimationFile lists frame indices and the per-frame duration in seconds.
type AnimationFile struct {
	Frames   []int   `yaml:"frames"`
	Duration float64 `yaml:"duration"`
}

// Texture describes what a renderer needs to realize a texture handle.
// Sprite-sheet textures carry their frame geometry so a renderer can map a
// source rectangle back to a frame index.
type Texture struct {
	Path   string
	Glyphs []rune
	Color  core.Color

	FrameWidth  int
	FrameHeight int
	Columns     int
}

// FormatExtensions returns supported description file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json", ".tmj", ".tsj"}
}

func isSupportedExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// decode parses a description file into v.
func decode(name string, data []byte, v any) error {
	if !isSupportedExtension(name) {
		return fmt.Errorf("unsupported extension: %s", path.Ext(name))
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}

// Validate checks grid dimensions and layer sizes.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid grid size %dx%d", l.Width, l.Height)
	}
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size %dx%d", l.TileWidth, l.TileHeight)
	}
	for i := range l.Layers {
		layer := &l.Layers[i]
		if layer.Width == 0 && layer.Height == 0 {
			layer.Width, layer.Height = l.Width, l.Height
		}
		if layer.Width != l.Width || layer.Height != l.Height {
			return fmt.Errorf("layer %d (%q) is %dx%d, level is %dx%d",
				i, layer.Name, layer.Width, layer.Height, l.Width, l.Height)
		}
		if len(layer.Data) != l.Width*l.Height {
			return fmt.Errorf("layer %d (%q) has %d cells, expected %d",
				i, layer.Name, len(layer.Data), l.Width*l.Height)
		}
	}
	return nil
}

// Marshal encodes a level as YAML.
func (l *Level) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}
