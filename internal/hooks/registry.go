package hooks

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a hook from a module name and its parameters.
type Factory func(name string, p Params) (Hook, error)

// KindInfo describes a registered hook kind.
type KindInfo struct {
	Kind    string
	Summary string
}

var (
	factories = make(map[string]Factory)
	summaries = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a hook kind. Typically called from an init function.
// Panics if the kind is already registered.
func Register(kind, summary string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("hooks: kind %q already registered", kind))
	}
	factories[kind] = f
	summaries[kind] = summary
}

// Kinds returns all registered kinds sorted by name.
func Kinds() []KindInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]KindInfo, 0, len(factories))
	for kind := range factories {
		result = append(result, KindInfo{Kind: kind, Summary: summaries[kind]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})
	return result
}

// Create instantiates a hook of the given kind.
func Create(kind, name string, p Params) (Hook, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("hooks: unknown kind %q", kind)
	}
	if p == nil {
		p = Params{}
	}
	h, err := f(name, p)
	if err != nil {
		return nil, fmt.Errorf("hooks: %s (%s): %w", name, kind, err)
	}
	return h, nil
}

// Exists checks if a kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
