package config

import (
	"math"
	"time"
)

// DifficultyManager calculates hazard drop parameters from time survived.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) after elapsed simulation time.
func (d *DifficultyManager) Level(elapsed time.Duration) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed.Seconds()/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Interval returns the hazard drop interval at elapsed time. It shrinks as
// difficulty rises but never below a tenth of base.
func (d *DifficultyManager) Interval(base, elapsed time.Duration) time.Duration {
	factor := 1.0 - d.Level(elapsed)*d.cfg.Scaling.IntervalReduction
	factor = math.Max(factor, 0.1)
	return time.Duration(float64(base) * factor)
}

// Chance returns the hazard drop chance at elapsed time, capped at 1.
func (d *DifficultyManager) Chance(base float64, elapsed time.Duration) float64 {
	return clampF(base+d.Level(elapsed)*d.cfg.Scaling.ChanceBoost, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
