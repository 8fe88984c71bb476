package provider

import (
	"fmt"
	"sort"
	"sync"

	instruments "main/internal/domain/entity/instruments"
	interfaces "main/internal/domain/interfaces"
)

// Registry holds the configured provider adapters keyed by identifier.
// Adding a provider means registering one implementation; nothing dispatches
// on provider name strings.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]interfaces.Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]interfaces.Provider)}
}

// Register adds a provider. Registering a duplicate name is an error.
func (r *Registry) Register(p interfaces.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}
	r.providers[name] = p
	return nil
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (interfaces.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// All returns every registered provider.
func (r *Registry) All() []interfaces.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]interfaces.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, p)
	}
	return out
}

// ForAssetClass returns the providers covering an asset class, ordered by
// descriptor priority (rank 1 first).
func (r *Registry) ForAssetClass(ac instruments.AssetClass) []interfaces.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []interfaces.Provider
	for _, p := range r.providers {
		if p.Descriptor().Covers(ac) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Descriptor(), out[j].Descriptor()
		if di.Priority != dj.Priority {
			return di.Priority < dj.Priority
		}
		return di.Name < dj.Name
	})
	return out
}
