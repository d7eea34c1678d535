package types

import (
	"fmt"
	"sort"
)

// Reserved attribute names.
const (
	AttrID      = "id"
	AttrType    = "type"
	AttrCreated = "created"
	AttrUpdated = "updated"
	AttrSelf    = "self"
	AttrSlug    = "slug"
	AttrName    = "name"
)

// Record is the attribute bag of one resource, keyed by attribute name.
type Record map[string]Value

// RecordFromMap converts decoded JSON or YAML objects into a Record.
func RecordFromMap(m map[string]any) (Record, error) {
	r := make(Record, len(m))
	for k, raw := range m {
		v, err := FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		r[k] = v
	}
	return r, nil
}

// ID returns the record's id attribute when it is a non-empty string.
func (r Record) ID() string {
	if s, ok := r[AttrID].AsString(); ok {
		return s
	}
	return ""
}

// Has reports whether the attribute is present, even if null.
func (r Record) Has(attr string) bool {
	_, ok := r[attr]
	return ok
}

// Clone returns a shallow copy; Values are immutable so this is enough.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the attribute names in lexical order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map converts the record to plain Go values.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Any()
	}
	return out
}
