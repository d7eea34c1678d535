// Package registry maps resource type names to stores. A registry is either
// strict (only the stores it was given) or templated (unknown types get a
// store built lazily from a template configuration).
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// Factory builds a store from a configuration.
type Factory func(types.Config) (types.ResourceStore, error)

// Registry implements types.Registry. It is safe for concurrent use; the
// stores it hands out are not.
type Registry struct {
	mu       sync.RWMutex
	stores   map[string]types.ResourceStore
	template *types.Config
	factory  Factory
}

var _ types.Registry = (*Registry)(nil)

// New registers each store under its own type. A nil template makes the
// registry strict; otherwise factory builds stores for unknown types.
func New(template *types.Config, factory Factory, stores ...types.ResourceStore) (*Registry, error) {
	if template != nil && factory == nil {
		return nil, fmt.Errorf("%w: a templated registry needs a factory", types.ErrInvalidConfig)
	}
	r := &Registry{
		stores:  make(map[string]types.ResourceStore, len(stores)),
		factory: factory,
	}
	if template != nil {
		cp := *template
		r.template = &cp
	}
	for _, s := range stores {
		if _, dup := r.stores[s.Type()]; dup {
			return nil, fmt.Errorf("%w: type %q registered twice", types.ErrInvalidInput, s.Type())
		}
		r.stores[s.Type()] = s
	}
	return r, nil
}

// Strict reports whether unknown types are rejected.
func (r *Registry) Strict() bool {
	return r.template == nil
}

// Get returns the store for resourceType, building and caching it from the
// template when the registry is not strict.
func (r *Registry) Get(resourceType string) (types.ResourceStore, error) {
	r.mu.RLock()
	s, ok := r.stores[resourceType]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	if r.template == nil {
		return nil, fmt.Errorf("%w: no store for type %q", types.ErrNotFound, resourceType)
	}
	if !types.IsPlural(resourceType) {
		return nil, fmt.Errorf("%w: type %q must be plural", types.ErrInvalidInput, resourceType)
	}
	if err := types.ValidateName(resourceType); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[resourceType]; ok {
		return s, nil
	}
	cfg := *r.template
	cfg.Type = resourceType
	s, err := r.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("building store for %q: %w", resourceType, err)
	}
	r.stores[resourceType] = s
	return s, nil
}

// Types returns the registered type names in lexical order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Index lists each registered type with its collection link.
func (r *Registry) Index() []types.IndexEntry {
	names := r.Types()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.IndexEntry, 0, len(names))
	for _, name := range names {
		if s, ok := r.stores[name]; ok {
			out = append(out, types.IndexEntry{Type: name, Link: s.Endpoint()})
		}
	}
	return out
}
