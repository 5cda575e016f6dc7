package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// newLogger opens the log file. The terminal belongs to the game, so logs
// never go to stderr while playing. An empty path discards everything.
func newLogger(path string, debug bool) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	if path == "" {
		return log.NewWithOptions(io.Discard, log.Options{Level: level}), func() error { return nil }, nil
	}

	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Prefix:          "adventure",
		Level:           level,
	})
	return l, f.Close, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
