package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Reader)
)

// Register adds a reader factory to the registry.
// Called by reader implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Reader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a reader factory by name.
func Get(name string) (func(*slog.Logger) Reader, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// NewReader creates a new reader instance based on config type.
// The logger parameter is passed to the reader constructor (nil uses discard logger).
func NewReader(cfg Config, logger *slog.Logger) (Reader, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("reader type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownReaderError{
			Type:      cfg.Type,
			Available: ListReaders(),
		}
	}
	return factory(logger), nil
}

// ListReaders returns all registered reader names (sorted).
func ListReaders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a reader type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownReaderError is returned when an unknown reader type is requested.
type UnknownReaderError struct {
	Type      string
	Available []string
}

func (e *UnknownReaderError) Error() string {
	return fmt.Sprintf("unknown reader type %q\nAvailable readers: %v\nHint: Check target.type in schemagraph.yaml or the --type flag", e.Type, e.Available)
}
