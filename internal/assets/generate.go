package assets

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Tile ids of the built-in meadow tileset.
const (
	TileGrass = iota
	TileDirt
	TileWater
	TileTree
	TileRock
	TileFlowers
	TilePath
)

// GenOptions controls procedural level generation.
type GenOptions struct {
	Width      int
	Height     int
	TileSize   int
	Seed       int64
	TileSet    string  // tileset source written into the level
	WaterLevel float64 // noise below this becomes water (0..1)
	TreeChance float64 // share of grass cells that get a tree
}

// DefaultGenOptions returns options matching the built-in meadow tileset.
func DefaultGenOptions() GenOptions {
	return GenOptions{
		Width:      64,
		Height:     32,
		TileSize:   16,
		Seed:       1,
		TileSet:    "tiles.yaml",
		WaterLevel: 0.38,
		TreeChance: 0.06,
	}
}

// Generate builds a two-layer level (ground + decoration) from Perlin noise.
// The same options always produce the same level.
func Generate(opts GenOptions) *Level {
	if opts.TileSize <= 0 {
		opts.TileSize = 16
	}
	if opts.TileSet == "" {
		opts.TileSet = "tiles.yaml"
	}

	// alpha 2, beta 2, 3 octaves
	height := perlin.NewPerlin(2, 2, 3, opts.Seed)
	moisture := perlin.NewPerlin(2, 2, 2, opts.Seed+1)
	rng := rand.New(rand.NewSource(opts.Seed))

	n := opts.Width * opts.Height
	ground := make([]int, n)
	deco := make([]int, n)

	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			i := y*opts.Width + x
			fx := float64(x) / 16
			fy := float64(y) / 16

			// Noise2D is in [-1, 1]; map to [0, 1].
			h := (height.Noise2D(fx, fy) + 1) / 2
			m := (moisture.Noise2D(fx, fy) + 1) / 2

			tile := TileGrass
			switch {
			case h < opts.WaterLevel:
				tile = TileWater
			case h < opts.WaterLevel+0.05:
				tile = TileDirt
			}
			ground[i] = tile + 1

			if tile != TileGrass {
				continue
			}
			switch r := rng.Float64(); {
			case r < opts.TreeChance*(0.5+m):
				deco[i] = TileTree + 1
			case r < opts.TreeChance*(0.5+m)+0.02:
				deco[i] = TileFlowers + 1
			case r < opts.TreeChance*(0.5+m)+0.025:
				deco[i] = TileRock + 1
			}
		}
	}

	return &Level{
		Width:      opts.Width,
		Height:     opts.Height,
		TileWidth:  opts.TileSize,
		TileHeight: opts.TileSize,
		TileSets:   []TileSetRef{{FirstGID: 1, Source: opts.TileSet}},
		Layers: []Layer{
			{Name: "ground", Width: opts.Width, Height: opts.Height, Data: ground},
			{Name: "decoration", Width: opts.Width, Height: opts.Height, Data: deco},
		},
	}
}
