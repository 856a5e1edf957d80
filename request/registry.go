package request

import (
	"fmt"
	"slices"
	"sync"
)

// AdapterFactory builds an adapter from loosely typed settings, usually
// decoded from a configuration file.
type AdapterFactory func(settings map[string]any) (Adapter, error)

// Registry maps adapter type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]AdapterFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]AdapterFactory)}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, factory AdapterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create builds an adapter with the named factory.
func (r *Registry) Create(name string, settings map[string]any) (Adapter, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("request: adapter type %q not registered", name)
	}
	a, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("request: adapter %q: %w", name, err)
	}
	return a, nil
}

// Names lists registered adapter types in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is consulted by NewFactoryFromConfig. The adapters
// package registers the built-in types in it.
func DefaultRegistry() *Registry { return defaultRegistry }

// RegisterAdapter adds a factory to DefaultRegistry.
func RegisterAdapter(name string, factory AdapterFactory) {
	defaultRegistry.Register(name, factory)
}
