package flatfile

import (
	"sort"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// readAttr reads one attribute. self is computed without touching disk.
// With cast set, created and updated are rendered for display.
func (s *Store) readAttr(id, attr string, cast bool) (types.Value, error) {
	if attr == types.AttrSelf {
		return types.String(s.Self(id)), nil
	}
	if err := types.ValidateName(attr); err != nil {
		return types.Value{}, err
	}
	path := s.attrPath(id, attr)
	data, err := readFile(s.fs, path)
	if err != nil {
		if isNotExist(err) {
			return types.Value{}, notFound("%s %q has no attribute %q", s.typ, id, attr)
		}
		return types.Value{}, readFailed(err, "reading %s", path)
	}
	v, err := s.ser.Decode(data)
	if err != nil {
		return types.Value{}, readFailed(err, "decoding %s", path)
	}
	if s.isPlural(attr) {
		v = v.AsArray()
	}
	if cast && isTimestamp(attr) {
		v = displayTimestamp(v)
	}
	return v, nil
}

// normalize applies the per-attribute write rules: slug derivation,
// timestamp parsing and plural coercion.
func (s *Store) normalize(attr string, v types.Value) (types.Value, error) {
	if attr == types.AttrSelf {
		return types.Value{}, invalidInput("attribute %q is computed and cannot be written", attr)
	}
	if err := types.ValidateName(attr); err != nil {
		return types.Value{}, err
	}
	switch {
	case attr == types.AttrSlug:
		str, ok := v.AsString()
		if !ok {
			return types.Value{}, invalidInput("slug must be a string, got %s", v.Kind())
		}
		slug := GenerateSlug(str)
		if slug == "" {
			return types.Value{}, invalidInput("slug %q is empty after normalization", str)
		}
		return types.String(slug), nil
	case isTimestamp(attr):
		return parseTimestamp(attr, v)
	case s.isPlural(attr):
		return v.AsArray(), nil
	}
	return v, nil
}

// writeAttr normalizes and stores one attribute, checking uniqueness first
// when enforceUnique is set.
func (s *Store) writeAttr(id, attr string, v types.Value, enforceUnique bool) (types.Value, error) {
	v, err := s.normalize(attr, v)
	if err != nil {
		return types.Value{}, err
	}
	if enforceUnique && s.isUnique(attr) {
		if err := s.assertUnique(id, attr, v); err != nil {
			return types.Value{}, err
		}
	}
	if err := s.storeAttr(id, attr, v); err != nil {
		return types.Value{}, err
	}
	return v, nil
}

// storeAttr encodes an already normalized value and writes it atomically.
func (s *Store) storeAttr(id, attr string, v types.Value) error {
	data, err := s.ser.Encode(v)
	if err != nil {
		return writeFailed(err, "encoding %s of %s %q", attr, s.typ, id)
	}
	if err := writeFileAtomic(s.fs, s.attrPath(id, attr), data); err != nil {
		return writeFailed(err, "writing %s of %s %q", attr, s.typ, id)
	}
	return nil
}

func (s *Store) unlinkAttr(id, attr string) error {
	if attr == types.AttrSelf {
		return invalidInput("attribute %q is computed and cannot be deleted", attr)
	}
	if err := types.ValidateName(attr); err != nil {
		return err
	}
	if err := s.fs.Remove(s.attrPath(id, attr)); err != nil {
		if isNotExist(err) {
			return notFound("%s %q has no attribute %q", s.typ, id, attr)
		}
		return writeFailed(err, "deleting %s of %s %q", attr, s.typ, id)
	}
	return nil
}

// storedAttributes lists the attribute files of a record, sorted.
func (s *Store) storedAttributes(id string) ([]string, error) {
	entries, err := readDir(s.fs, s.path(id))
	if err != nil {
		return nil, readFailed(err, "listing %s %q", s.typ, id)
	}
	attrs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || isReserved(e.Name()) {
			continue
		}
		attrs = append(attrs, e.Name())
	}
	sort.Strings(attrs)
	return attrs, nil
}

// attributes is storedAttributes plus the computed self.
func (s *Store) attributes(id string) ([]string, error) {
	attrs, err := s.storedAttributes(id)
	if err != nil {
		return nil, err
	}
	attrs = append(attrs, types.AttrSelf)
	sort.Strings(attrs)
	return attrs, nil
}

// assertUnique scans every other record of the type for attr == v.
func (s *Store) assertUnique(id, attr string, v types.Value) error {
	ids, err := s.scanIDs()
	if err != nil {
		return err
	}
	for _, other := range ids {
		if other == id {
			continue
		}
		got, err := s.readAttr(other, attr, false)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return err
		}
		if got.Equal(v) {
			return conflict("%s with %s %s already exists", s.typ, attr, v)
		}
	}
	return nil
}
