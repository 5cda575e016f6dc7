package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-adventure/internal/config"
)

// resetFlags restores the command line overrides after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		flagConfig, flagAssetsDir, flagHooksDir = "", "", ""
		flagNoHooks = false
		flagDifficulty, flagTrigger, flagTheme = "", "", ""
	})
}

func TestLoadConfigOverrides(t *testing.T) {
	resetFlags(t)

	flagAssetsDir = "./pack"
	flagHooksDir = "./scripts"
	flagNoHooks = true
	flagTrigger = "expiry"
	flagTheme = "mono"
	flagDifficulty = "hard"

	cfg, preset, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Assets.Dir != "./pack" || cfg.Hooks.Dir != "./scripts" || cfg.Hooks.Enabled {
		t.Errorf("asset and hook overrides not applied: %+v %+v", cfg.Assets, cfg.Hooks)
	}
	if cfg.Hazard.Trigger != "expiry" || cfg.Render.Theme != "mono" {
		t.Errorf("trigger/theme = %q/%q, expected expiry/mono", cfg.Hazard.Trigger, cfg.Render.Theme)
	}
	if preset != config.DifficultyHard {
		t.Errorf("preset = %q, expected hard", preset)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		set  func()
	}{
		{"difficulty", func() { flagDifficulty = "brutal" }},
		{"trigger", func() { flagTrigger = "always" }},
		{"theme", func() { flagTheme = "neon" }},
		{"config", func() { flagConfig = "missing.yaml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resetFlags(t)
			tc.set()
			if _, _, err := loadConfig(); err == nil {
				t.Error("loadConfig() succeeded, expected an error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	l, closer, err := newLogger("~/logs/adventure.log", true)
	if err != nil {
		t.Fatalf("newLogger() error: %v", err)
	}
	l.Debug("hello", "k", 1)
	if err := closer(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(home, "logs", "adventure.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, expected the debug line", data)
	}

	if _, closer, err := newLogger("", false); err != nil || closer() != nil {
		t.Errorf("newLogger(\"\") error = %v", err)
	}
}

func TestStartProfileRejectsUnknownKind(t *testing.T) {
	if _, err := startProfile("trace"); err == nil {
		t.Error("startProfile(trace) succeeded, expected an error")
	}
	stop, err := startProfile("")
	if err != nil {
		t.Fatalf("startProfile(\"\") error: %v", err)
	}
	stop()
}
