// Package config provides YAML-based game configuration loading and
// difficulty management for the adventure runtime.
package config

import (
	"fmt"
	"time"
)

// Config contains all tunable game parameters.
type Config struct {
	Player     PlayerConfig     `yaml:"player"`
	Hazard     HazardConfig     `yaml:"hazard"`
	Collision  CollisionConfig  `yaml:"collision"`
	Assets     AssetsConfig     `yaml:"assets"`
	Hooks      HooksConfig      `yaml:"hooks"`
	Render     RenderConfig     `yaml:"render"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Speed       float64 `yaml:"speed"` // world pixels per second
	SpawnX      int     `yaml:"spawn_x"`
	SpawnY      int     `yaml:"spawn_y"`
	SpriteSheet string  `yaml:"sprite_sheet"`
}

// HazardConfig defines hazard parameters.
type HazardConfig struct {
	Lifetime     float64 `yaml:"lifetime"` // seconds
	SpriteSheet  string  `yaml:"sprite_sheet"`
	Animation    string  `yaml:"animation"`
	Trigger      string  `yaml:"trigger"`       // "contact" or "expiry"
	DropDistance int     `yaml:"drop_distance"` // bomb key offset ahead of the player
}

// LifetimeDuration returns the hazard lifetime as a duration, rounded to the
// millisecond so 2.1 means exactly 2100ms.
func (h HazardConfig) LifetimeDuration() time.Duration {
	return time.Duration(h.Lifetime*1000+0.5) * time.Millisecond
}

// CollisionConfig defines the proximity test.
type CollisionConfig struct {
	Threshold int `yaml:"threshold"`
}

// AssetsConfig locates the asset pack. An empty Dir uses the built-in pack.
type AssetsConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// HooksConfig locates script modules. An empty Dir uses the built-in scripts.
type HooksConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// RenderConfig defines how many world pixels one terminal cell covers.
type RenderConfig struct {
	CellWidth  int    `yaml:"cell_width"`
	CellHeight int    `yaml:"cell_height"`
	Theme      string `yaml:"theme"` // default | mono
}

// InputConfig tunes key handling.
type InputConfig struct {
	// Terminals report presses, not releases: a key counts as held for this
	// long after its last press or repeat.
	HoldWindowMS int `yaml:"hold_window_ms"`
}

// HoldWindow returns the hold window as a duration.
func (i InputConfig) HoldWindow() time.Duration {
	return time.Duration(i.HoldWindowMS) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // seconds survived at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	IntervalReduction float64 `yaml:"interval_reduction"` // share of the drop interval removed at max difficulty
	ChanceBoost       float64 `yaml:"chance_boost"`       // added to the drop chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate reports configuration values the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Player.Speed <= 0:
		return fmt.Errorf("config: player.speed must be positive, got %v", c.Player.Speed)
	case c.Hazard.Lifetime <= 0:
		return fmt.Errorf("config: hazard.lifetime must be positive, got %v", c.Hazard.Lifetime)
	case c.Hazard.Trigger != "" && c.Hazard.Trigger != "contact" && c.Hazard.Trigger != "expiry":
		return fmt.Errorf("config: hazard.trigger must be contact or expiry, got %q", c.Hazard.Trigger)
	case c.Collision.Threshold <= 0:
		return fmt.Errorf("config: collision.threshold must be positive, got %d", c.Collision.Threshold)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("config: render cell size must be positive, got %dx%d", c.Render.CellWidth, c.Render.CellHeight)
	case c.Render.Theme != "" && c.Render.Theme != "default" && c.Render.Theme != "mono":
		return fmt.Errorf("config: render.theme must be default or mono, got %q", c.Render.Theme)
	case c.Input.HoldWindowMS <= 0:
		return fmt.Errorf("config: input.hold_window_ms must be positive, got %d", c.Input.HoldWindowMS)
	case c.Assets.Level == "":
		return fmt.Errorf("config: assets.level is required")
	}
	return nil
}
