package serializer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

var known = map[string]types.Serializer{
	JSON{}.Name(): JSON{},
	YAML{}.Name(): YAML{},
	"yml":         YAML{},
}

// ByName returns the serializer registered under name (case-insensitive).
func ByName(name string) (types.Serializer, error) {
	s, ok := known[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown serializer %q (known: %s)",
			types.ErrInvalidConfig, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the accepted serializer names.
func Names() []string {
	names := make([]string, 0, len(known))
	for n := range known {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
