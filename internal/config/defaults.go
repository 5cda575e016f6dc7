package config

import (
	_ "embed"
)

//go:embed defaults/adventure.yaml
var defaultAdventureYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultAdventureYAML
}

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Player: PlayerConfig{
			Speed:       128,
			SpawnX:      100,
			SpawnY:      100,
			SpriteSheet: "player.yaml",
		},
		Hazard: HazardConfig{
			Lifetime:     2.1,
			SpriteSheet:  "bomb.yaml",
			Animation:    "Explode",
			Trigger:      "contact",
			DropDistance: 48,
		},
		Collision: CollisionConfig{
			Threshold: 32,
		},
		Assets: AssetsConfig{
			Level: "terrain",
		},
		Hooks: HooksConfig{
			Enabled: true,
		},
		Render: RenderConfig{
			CellWidth:  8,
			CellHeight: 16,
			Theme:      "default",
		},
		Input: InputConfig{
			HoldWindowMS: 250,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 0.6,
				ChanceBoost:       0.4,
			},
		},
	}
}
