package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/sprite"
)

//go:embed builtin
var builtinFS embed.FS

// Builtin returns the asset pack compiled into the binary.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // the embed directive guarantees the directory exists
	}
	return sub
}

// TextureLoader realizes texture handles. Renderers implement it.
type TextureLoader interface {
	LoadTexture(tex Texture) (core.TextureID, error)
}

// LevelData is a level with every tileset reference resolved.
// TileSets is keyed by resolved source path; layers sharing a source share
// the same *TileSet.
type LevelData struct {
	Level    *Level
	TileSets map[string]*TileSet
	// Refs lists the resolved source key of each Level.TileSets entry.
	Refs []string
}

// Loader reads asset descriptions from a file system.
type Loader struct {
	FS fs.FS
}

// NewLoader creates a loader rooted at a directory. An empty dir uses the
// built-in pack.
func NewLoader(dir string) *Loader {
	if dir == "" {
		return &Loader{FS: Builtin()}
	}
	return &Loader{FS: os.DirFS(dir)}
}

// LoadLevel reads a level and its tilesets. Textures are requested once per
// distinct tileset source.
func (l *Loader) LoadLevel(name string, textures TextureLoader) (*LevelData, error) {
	var level Level
	if err := l.read(name, &level); err != nil {
		return nil, err
	}
	return l.ResolveLevel(name, &level, textures)
}

// ResolveLevel validates an in-memory level and loads its tilesets. name
// is the level's path in the loader's file system; tileset sources are
// resolved relative to it.
func (l *Loader) ResolveLevel(name string, level *Level, textures TextureLoader) (*LevelData, error) {
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("assets: level %s: %w", name, err)
	}

	data := &LevelData{
		Level:    level,
		TileSets: make(map[string]*TileSet),
	}

	dir := path.Dir(name)
	for _, ref := range level.TileSets {
		if ref.Source == "" {
			return nil, fmt.Errorf("assets: level %s: tileset reference without source", name)
		}
		key := path.Join(dir, ref.Source)
		data.Refs = append(data.Refs, key)

		if _, loaded := data.TileSets[key]; loaded {
			continue
		}

		ts, err := l.LoadTileSet(key, textures)
		if err != nil {
			return nil, err
		}
		data.TileSets[key] = ts
	}

	return data, nil
}

// LoadTileSet reads a tileset and realizes a texture for each tile.
func (l *Loader) LoadTileSet(name string, textures TextureLoader) (*TileSet, error) {
	var ts TileSet
	if err := l.read(name, &ts); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(ts.Tiles))
	for i := range ts.Tiles {
		tile := &ts.Tiles[i]
		if seen[tile.ID] {
			return nil, fmt.Errorf("assets: tileset %s: duplicate tile id %d", name, tile.ID)
		}
		seen[tile.ID] = true

		if textures == nil {
			continue
		}
		color, _ := core.ParseColor(tile.Color)
		id, err := textures.LoadTexture(Texture{
			Path:   path.Join(path.Dir(name), tile.Image),
			Glyphs: []rune(tile.Glyph),
			Color:  color,
		})
		if err != nil {
			return nil, fmt.Errorf("assets: tileset %s: tile %d: %w", name, tile.ID, err)
		}
		tile.Texture = id
	}

	return &ts, nil
}

// LoadSpriteSheet reads a sprite-sheet description into a shared sheet definition.
func (l *Loader) LoadSpriteSheet(name string, textures TextureLoader) (*sprite.Sheet, error) {
	var f SpriteSheetFile
	if err := l.read(name, &f); err != nil {
		return nil, err
	}
	if f.FrameWidth <= 0 || f.FrameHeight <= 0 {
		return nil, fmt.Errorf("assets: sprite sheet %s: invalid frame size %dx%d", name, f.FrameWidth, f.FrameHeight)
	}

	sheet := &sprite.Sheet{
		Name:        f.Name,
		Rows:        f.Rows,
		Columns:     f.Columns,
		FrameWidth:  f.FrameWidth,
		FrameHeight: f.FrameHeight,
		Offset:      core.Pt(f.Offset.X, f.Offset.Y),
		Animations:  make(map[string]sprite.Animation, len(f.Animations)),
	}
	if sheet.Name == "" {
		sheet.Name = name
	}

	frames := f.Rows * f.Columns
	for animName, a := range f.Animations {
		for _, idx := range a.Frames {
			if idx < 0 || (frames > 0 && idx >= frames) {
				return nil, fmt.Errorf("assets: sprite sheet %s: animation %q: frame %d out of range", name, animName, idx)
			}
		}
		sheet.Animations[animName] = sprite.Animation{
			Frames:        a.Frames,
			FrameDuration: time.Duration(math.Round(a.Duration * float64(time.Second))),
		}
	}

	if textures != nil {
		color, _ := core.ParseColor(f.Color)
		id, err := textures.LoadTexture(Texture{
			Path:        path.Join(path.Dir(name), f.FileName),
			Glyphs:      []rune(f.Glyphs),
			Color:       color,
			FrameWidth:  f.FrameWidth,
			FrameHeight: f.FrameHeight,
			Columns:     f.Columns,
		})
		if err != nil {
			return nil, fmt.Errorf("assets: sprite sheet %s: %w", name, err)
		}
		sheet.Texture = id
	}

	return sheet, nil
}

func (l *Loader) read(name string, v any) error {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return fmt.Errorf("assets: reading %s: %w", name, err)
	}
	if err := decode(name, data, v); err != nil {
		return fmt.Errorf("assets: parsing %s: %w", name, err)
	}
	return nil
}
