// Package flatfile provides the public API for the flat-file resource
// store. It exposes the constructors while keeping the engine internal.
//
// Example:
//
//	store, err := flatfile.New(types.Config{
//	    Root:       "/var/lib/mockapi",
//	    Type:       "messages",
//	    Serializer: serializer.JSON{},
//	    Endpoint:   "https://api.example.com/v1",
//	})
//	rec, err := store.Create("", types.Record{"message": types.String("Hello World")})
package flatfile

import (
	"github.com/mesh-intelligence/mockstore/internal/flatfile"
	"github.com/mesh-intelligence/mockstore/internal/registry"
	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// New creates a store for cfg.Type under cfg.Root. The root must already
// exist and be writable.
func New(cfg types.Config) (types.ResourceStore, error) {
	s, err := flatfile.New(cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewRegistry registers the given stores. With a nil template the registry
// is strict; otherwise stores for unknown types are built from the template
// on first use.
func NewRegistry(template *types.Config, stores ...types.ResourceStore) (types.Registry, error) {
	r, err := registry.New(template, New, stores...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GenerateSlug turns arbitrary text into a URL-safe slug.
func GenerateSlug(s string) string {
	return flatfile.GenerateSlug(s)
}
