// Package registry provides a global catalog of playable levels.
// Levels register themselves in init() functions, allowing the menu and the
// CLI to list and open them without hardcoding level files.
package registry

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-adventure/internal/assets"
)

// Source produces a level with its tilesets resolved. The seed feeds
// procedural levels; file levels ignore it.
type Source func(l *assets.Loader, seed int64, textures assets.TextureLoader) (*assets.LevelData, error)

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
}

var (
	sources = make(map[string]Source)
	titles  = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a level to the catalog.
// Panics if a level with the same ID is already registered.
func Register(id, title string, src Source) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := sources[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	sources[id] = src
	titles[id] = title
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(sources))
	for id := range sources {
		result = append(result, LevelInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the source for a level. A name that is not registered but
// carries a level file extension is treated as a file in the asset pack.
func Lookup(name string) (Source, error) {
	mu.RLock()
	src, ok := sources[name]
	mu.RUnlock()
	if ok {
		return src, nil
	}

	ext := strings.ToLower(path.Ext(name))
	for _, known := range assets.FormatExtensions() {
		if ext == known {
			return File(name), nil
		}
	}
	return nil, fmt.Errorf("registry: unknown level %q", name)
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sources[id]
	return ok
}

// File returns a source that loads a level file from the asset pack.
func File(name string) Source {
	return func(l *assets.Loader, _ int64, textures assets.TextureLoader) (*assets.LevelData, error) {
		return l.LoadLevel(name, textures)
	}
}

// Generated returns a source that builds a Perlin-noise level. A non-zero
// run seed replaces the seed in opts.
func Generated(opts assets.GenOptions) Source {
	return func(l *assets.Loader, seed int64, textures assets.TextureLoader) (*assets.LevelData, error) {
		o := opts
		if seed != 0 {
			o.Seed = seed
		}
		return l.ResolveLevel("generated.yaml", assets.Generate(o), textures)
	}
}

func init() {
	Register("terrain", "Terrain", File("terrain.yaml"))
	Register("meadow", "Meadow (generated)", Generated(assets.DefaultGenOptions()))
}
