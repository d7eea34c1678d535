package flatfile

import (
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// Exists reports whether the record directory exists.
func (s *Store) Exists(id string) (bool, error) {
	if err := types.ValidateName(id); err != nil {
		return false, err
	}
	fi, err := s.fs.Stat(s.path(id))
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, readFailed(err, "checking %s %q", s.typ, id)
	}
	return fi.IsDir(), nil
}

func (s *Store) assertExists(id string) error {
	ok, err := s.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("no %s with id %q", s.typ, id)
	}
	return nil
}

// Get reads the named attributes, or every attribute plus self.
func (s *Store) Get(id string, attrs ...string) (types.Record, error) {
	if err := s.assertExists(id); err != nil {
		return nil, err
	}
	if len(attrs) == 0 {
		var err error
		if attrs, err = s.attributes(id); err != nil {
			return nil, err
		}
	}
	rec := make(types.Record, len(attrs))
	for _, attr := range attrs {
		v, err := s.readAttr(id, attr, true)
		if err != nil {
			return nil, err
		}
		rec[attr] = v
	}
	return rec, nil
}

// GetAttr reads one attribute for display.
func (s *Store) GetAttr(id, attr string) (types.Value, error) {
	if err := s.assertExists(id); err != nil {
		return types.Value{}, err
	}
	return s.readAttr(id, attr, true)
}

// Fetch gets each id in order.
func (s *Store) Fetch(ids []string, attrs ...string) ([]types.Record, error) {
	out := make([]types.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(id, attrs...)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Create writes a new record. The id is the explicit argument, else the
// payload's id, else a generated one. A computed self in the payload is
// ignored.
func (s *Store) Create(id string, payload types.Record) (types.Record, error) {
	p := payload.Clone()
	delete(p, types.AttrSelf)
	if len(p) == 0 && !s.createEmpty {
		return nil, invalidInput("%s payload must not be empty", s.typ)
	}

	now := s.now()
	for _, attr := range []string{types.AttrCreated, types.AttrUpdated} {
		if v, ok := p[attr]; ok && !v.IsNull() {
			raw, err := parseTimestamp(attr, v)
			if err != nil {
				return nil, err
			}
			p[attr] = raw
		} else {
			p[attr] = now
		}
	}

	if t, ok := p[types.AttrType]; ok {
		if !t.Equal(types.String(s.typ)) {
			return nil, invalidInput("payload type %s does not match %s", t, s.typ)
		}
	} else {
		p[types.AttrType] = types.String(s.typ)
	}

	if id == "" {
		id = p.ID()
	}
	if id == "" {
		id = s.ids.New()
	}
	if err := types.ValidateName(id); err != nil {
		return nil, err
	}
	p[types.AttrID] = types.String(id)

	if err := s.prepare(p); err != nil {
		return nil, err
	}

	exists, err := s.Exists(id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("%s %q already exists", s.typ, id)
	}
	if err := s.assertPayloadUnique(id, p); err != nil {
		return nil, err
	}

	if err := s.stage(id, p); err != nil {
		return nil, err
	}

	s.log.Debug("created record", zap.String("id", id), zap.Int("attributes", len(p)))
	return display(p), nil
}

// Update rewrites the payload's attributes of an existing record. Immutable
// attributes and self are dropped; updated defaults to now.
func (s *Store) Update(id string, payload types.Record) (types.Record, error) {
	p := payload.Clone()
	if id == "" {
		id = p.ID()
	}
	if id == "" {
		return nil, invalidInput("updating %s requires an id", s.typ)
	}
	if err := s.assertExists(id); err != nil {
		return nil, err
	}

	delete(p, types.AttrSelf)
	for attr := range s.immutable {
		delete(p, attr)
	}
	if v, ok := p[types.AttrUpdated]; !ok || v.IsNull() {
		p[types.AttrUpdated] = s.now()
	}
	if v, ok := p[types.AttrCreated]; ok && v.IsNull() {
		delete(p, types.AttrCreated)
	}
	p[types.AttrID] = types.String(id)

	if err := s.prepare(p); err != nil {
		return nil, err
	}
	if err := s.assertPayloadUnique(id, p); err != nil {
		return nil, err
	}
	if err := s.writeRecord(id, journalUpdating, p); err != nil {
		return nil, err
	}

	s.log.Debug("updated record", zap.String("id", id), zap.Strings("attributes", p.Keys()))
	return display(p), nil
}

// Touch sets updated to now.
func (s *Store) Touch(id string) error {
	if err := s.assertExists(id); err != nil {
		return err
	}
	if err := s.storeAttr(id, types.AttrUpdated, s.now()); err != nil {
		return err
	}
	s.log.Debug("touched record", zap.String("id", id))
	return nil
}

// UpdateAttr writes one attribute and touches the record. Immutable
// attributes are skipped and reported as not written.
func (s *Store) UpdateAttr(id, attr string, v types.Value) (bool, error) {
	if err := s.assertExists(id); err != nil {
		return false, err
	}
	if s.immutable[attr] {
		return false, nil
	}
	if attr == types.AttrID {
		return false, invalidInput("the id of %s %q cannot be changed", s.typ, id)
	}
	if _, err := s.writeAttr(id, attr, v, true); err != nil {
		return false, err
	}
	if attr != types.AttrUpdated {
		if err := s.storeAttr(id, types.AttrUpdated, s.now()); err != nil {
			return false, err
		}
	}
	s.log.Debug("updated attribute", zap.String("id", id), zap.String("attribute", attr))
	return true, nil
}

// AppendValues appends to a plural attribute, keeping order and duplicates.
// A missing attribute counts as an empty list.
func (s *Store) AppendValues(id, attr string, v types.Value) (types.Value, error) {
	if !s.isPlural(attr) {
		return types.Value{}, invalidInput("attribute %q is not plural; use an update to change it", attr)
	}
	if err := s.assertExists(id); err != nil {
		return types.Value{}, err
	}
	current, err := s.readAttr(id, attr, false)
	if err != nil && !isNotFound(err) {
		return types.Value{}, err
	}
	merged := types.List(current.AsArray(), v.AsArray())
	return s.writeAttr(id, attr, merged, true)
}

// ComputeWithoutValues returns the stored list minus every element of
// values. It does not write.
func (s *Store) ComputeWithoutValues(id, attr string, values types.Value) (types.Value, error) {
	if err := s.assertExists(id); err != nil {
		return types.Value{}, err
	}
	current, err := s.readAttr(id, attr, false)
	if err != nil {
		return types.Value{}, err
	}
	drop := values.AsArray()
	elems, _ := current.AsArray().AsList()
	kept := make([]types.Value, 0, len(elems))
	for _, e := range elems {
		if !drop.Contains(e) {
			kept = append(kept, e)
		}
	}
	return types.List(kept...), nil
}

// Delete removes each record in order and stops at the first failure.
func (s *Store) Delete(ids ...string) error {
	for _, id := range ids {
		if err := s.assertExists(id); err != nil {
			return err
		}
		if err := s.unlink(id); err != nil {
			return err
		}
		s.log.Debug("deleted record", zap.String("id", id))
	}
	return nil
}

// DeleteAttr removes every attr of every id and stops at the first failure.
func (s *Store) DeleteAttr(ids []string, attrs []string) error {
	for _, id := range ids {
		for _, attr := range attrs {
			if err := s.assertExists(id); err != nil {
				return err
			}
			if err := s.unlinkAttr(id, attr); err != nil {
				return err
			}
			s.log.Debug("deleted attribute", zap.String("id", id), zap.String("attribute", attr))
		}
	}
	return nil
}

// unlink removes every attribute and journal file, then the directory.
// Anything else left behind, such as a stray temp file, makes the directory
// removal fail.
func (s *Store) unlink(id string) error {
	attrs, err := s.storedAttributes(id)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		if err := s.unlinkAttr(id, attr); err != nil {
			return err
		}
	}
	for _, j := range []string{journalCreating, journalUpdating} {
		if err := s.fs.Remove(s.attrPath(id, j)); err != nil && !isNotExist(err) {
			return writeFailed(err, "deleting journal of %s %q", s.typ, id)
		}
	}
	if err := s.fs.Remove(s.path(id)); err != nil {
		return writeFailed(err, "deleting %s %q", s.typ, id)
	}
	return nil
}

// prepare derives slug from name and normalizes every attribute in place.
func (s *Store) prepare(p types.Record) error {
	if s.slugFromName && !p.Has(types.AttrSlug) {
		if name, ok := p[types.AttrName].AsString(); ok {
			p[types.AttrSlug] = types.String(name)
		}
	}
	for _, attr := range p.Keys() {
		v, err := s.normalize(attr, p[attr])
		if err != nil {
			return err
		}
		p[attr] = v
	}
	return nil
}

// assertPayloadUnique checks every unique attribute of p before anything is
// written.
func (s *Store) assertPayloadUnique(id string, p types.Record) error {
	for _, attr := range s.unique {
		v, ok := p[attr]
		if !ok {
			continue
		}
		if err := s.assertUnique(id, attr, v); err != nil {
			return err
		}
	}
	return nil
}

// writeRecord stores every attribute of p under a journal.
func (s *Store) writeRecord(id, journal string, p types.Record) error {
	attrs := p.Keys()
	if err := s.beginJournal(id, journal, attrs); err != nil {
		return err
	}
	for _, attr := range attrs {
		if err := s.storeAttr(id, attr, p[attr]); err != nil {
			return err
		}
	}
	return s.endJournal(id, journal)
}

// stage writes a new record into a hidden staging directory and renames it
// into place, so the record directory never exists half written.
func (s *Store) stage(id string, p types.Record) error {
	staged := stagedID(id)
	if err := util.RemoveAll(s.fs, s.path(staged)); err != nil {
		return writeFailed(err, "clearing stale staging of %s %q", s.typ, id)
	}
	if err := s.fs.MkdirAll(s.path(staged), 0o755); err != nil {
		return writeFailed(err, "creating %s %q", s.typ, id)
	}
	if err := s.writeRecord(staged, journalCreating, p); err != nil {
		util.RemoveAll(s.fs, s.path(staged))
		return err
	}
	if err := s.fs.Rename(s.path(staged), s.path(id)); err != nil {
		util.RemoveAll(s.fs, s.path(staged))
		return writeFailed(err, "publishing %s %q", s.typ, id)
	}
	return nil
}

// display renders the timestamps of a normalized payload.
func display(p types.Record) types.Record {
	out := p.Clone()
	for _, attr := range []string{types.AttrCreated, types.AttrUpdated} {
		if v, ok := out[attr]; ok {
			out[attr] = displayTimestamp(v)
		}
	}
	return out
}
