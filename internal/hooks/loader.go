package hooks

import (
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Module is one script module file.
type Module struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Enabled *bool  `yaml:"enabled"`
	Params  Params `yaml:"params"`

	File string `yaml:"-"`
}

// ReadDir reads every enabled *.yaml / *.yml module in dir, in file name
// order. Malformed modules and unknown kinds are logged and skipped. Only a
// missing or unreadable dir is an error.
func ReadDir(fsys fs.FS, dir string, logger *log.Logger) ([]Module, error) {
	if logger == nil {
		logger = log.Default()
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("hooks: reading %s: %w", dir, err)
	}

	var modules []Module
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		file := path.Join(dir, e.Name())

		m, err := readModule(fsys, file)
		if err != nil {
			logger.Warn("skipping script module", "file", file, "err", err)
			continue
		}
		if m.Enabled != nil && !*m.Enabled {
			logger.Debug("script module disabled", "file", file)
			continue
		}
		if !Exists(m.Kind) {
			logger.Warn("skipping script module", "file", file, "err", fmt.Errorf("unknown hook kind %q", m.Kind))
			continue
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		}
		m.File = file
		logger.Info("loaded script module", "file", file, "name", m.Name, "kind", m.Kind)
		modules = append(modules, *m)
	}
	return modules, nil
}

// Instantiate creates a fresh hook for each module. Modules without a seed
// param get one derived from seed. Modules whose params their kind rejects
// are logged and skipped.
func Instantiate(modules []Module, seed int64, logger *log.Logger) []Hook {
	if logger == nil {
		logger = log.Default()
	}

	var hooks []Hook
	for i, m := range modules {
		params := maps.Clone(m.Params)
		if params == nil {
			params = Params{}
		}
		if _, ok := params["seed"]; !ok {
			params["seed"] = seed + int64(i)
		}

		h, err := Create(m.Kind, m.Name, params)
		if err != nil {
			logger.Warn("skipping script module", "file", m.File, "err", err)
			continue
		}
		hooks = append(hooks, h)
	}
	return hooks
}

// LoadDir reads the modules in dir and instantiates their hooks.
func LoadDir(fsys fs.FS, dir string, seed int64, logger *log.Logger) ([]Hook, error) {
	modules, err := ReadDir(fsys, dir, logger)
	if err != nil {
		return nil, err
	}
	return Instantiate(modules, seed, logger), nil
}

func readModule(fsys fs.FS, file string) (*Module, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}
	var m Module
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if m.Kind == "" {
		return nil, fmt.Errorf("missing kind")
	}
	return &m, nil
}
