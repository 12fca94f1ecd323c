// Package registry provides a global registry of built-in puzzle levels.
// Level packs register themselves in init() functions, allowing the CLI
// to discover levels without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/unbolt/internal/levels"
)

// ErrUnknownLevel is returned by Create for an unregistered ID.
var ErrUnknownLevel = errors.New("unknown level")

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID        string
	Title     string
	Details   int
	Fasteners int
	Bolts     int
	Policy    string // Level policy label, "default" when unset
}

// Factory returns a fresh copy of a level definition.
type Factory func() levels.Level

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]LevelInfo)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Typically called from a level pack's init() function.
// Panics if a level with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	lvl := f()
	infos[id] = LevelInfo{
		ID:        id,
		Title:     lvl.Name,
		Details:   len(lvl.Details),
		Fasteners: len(lvl.Fasteners),
		Bolts:     lvl.Bolts(),
		Policy:    lvl.Policy.Label(),
	}
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns a level by its ID.
func Create(id string) (levels.Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return levels.Level{}, fmt.Errorf("registry: %w %q", ErrUnknownLevel, id)
	}

	return f(), nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
