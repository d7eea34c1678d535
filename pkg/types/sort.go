package types

import (
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction int

// Sort directions.
const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc", "+", "desc" and "-" (case-insensitive).
// An empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "+":
		return Ascending, nil
	case "desc", "-":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, s)
	}
}

// SortKey orders records by one attribute.
type SortKey struct {
	Attr      string
	Direction Direction
}

// Sort is an ordered list of sort keys; earlier keys win, later keys break
// ties.
type Sort []SortKey

// Asc returns an ascending key.
func Asc(attr string) SortKey { return SortKey{Attr: attr, Direction: Ascending} }

// Desc returns a descending key.
func Desc(attr string) SortKey { return SortKey{Attr: attr, Direction: Descending} }

// DefaultSort is applied when a query names no sort: newest first.
var DefaultSort = Sort{Desc(AttrCreated)}

// ParseSort parses "attr,-attr,+attr". Each token may be prefixed with "+"
// (ascending, the default) or "-" (descending). Empty tokens are skipped and
// a repeated attribute replaces its earlier direction in place.
func ParseSort(s string) Sort {
	var out Sort
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		dir := Ascending
		if tok[0] == '-' {
			dir = Descending
		}
		attr := strings.Trim(tok, "+- ")
		if attr == "" {
			continue
		}
		out = out.with(SortKey{Attr: attr, Direction: dir})
	}
	return out
}

func (s Sort) with(k SortKey) Sort {
	for i := range s {
		if s[i].Attr == k.Attr {
			s[i].Direction = k.Direction
			return s
		}
	}
	return append(s, k)
}

// String renders the sort back into ParseSort syntax.
func (s Sort) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		prefix := "+"
		if k.Direction == Descending {
			prefix = "-"
		}
		parts[i] = prefix + k.Attr
	}
	return strings.Join(parts, ",")
}

// Query selects record ids. Where filters are ANDed; a Limit of zero or
// less means unbounded; an empty Sort means DefaultSort.
type Query struct {
	Where  Record
	Limit  int
	Offset int
	Sort   Sort
}
