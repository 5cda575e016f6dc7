package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directories.
const FileName = "adventure.yaml"

// Load loads the game configuration. Keys missing from a file keep their
// default values.
// Search order: customPath -> ~/.adventure/configs/adventure.yaml -> ./configs/adventure.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg := Default()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, cfg.Validate()
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	cfg := Default()
	if err := yaml.Unmarshal(defaultAdventureYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile reads an optional config file. Unreadable or malformed files are
// passed over so the next location is tried.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".adventure", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset. Presets
// only touch the difficulty ramp and the player speed; hazard lifetime and
// the collision box stay as configured.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.Speed = 160
	case DifficultyHard:
		cfg.Player.Speed = 112
	}
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", s)
}
