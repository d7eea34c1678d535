package flatfile

import (
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// beginJournal records the attributes a multi-file write is about to touch.
func (s *Store) beginJournal(id, journal string, attrs []string) error {
	data, err := s.ser.Encode(types.Strings(attrs...))
	if err != nil {
		return writeFailed(err, "encoding journal of %s %q", s.typ, id)
	}
	if err := writeFileAtomic(s.fs, s.attrPath(id, journal), data); err != nil {
		return writeFailed(err, "writing journal of %s %q", s.typ, id)
	}
	return nil
}

func (s *Store) endJournal(id, journal string) error {
	if err := s.fs.Remove(s.attrPath(id, journal)); err != nil && !isNotExist(err) {
		return writeFailed(err, "clearing journal of %s %q", s.typ, id)
	}
	return nil
}

// readJournal returns the attribute names listed in a journal. A journal
// that cannot be decoded yields nil.
func (s *Store) readJournal(id, journal string) []string {
	data, err := readFile(s.fs, s.attrPath(id, journal))
	if err != nil {
		return nil
	}
	v, err := s.ser.Decode(data)
	if err != nil {
		return nil
	}
	elems, _ := v.AsArray().AsList()
	attrs := make([]string, 0, len(elems))
	for _, e := range elems {
		if str, ok := e.AsString(); ok {
			attrs = append(attrs, str)
		}
	}
	return attrs
}

// Recover repairs records left behind by interrupted writes. A staging
// directory or a record holding a .creating journal is an unfinished create
// and is removed. A .updating journal is cleared and the partial update
// kept. Stray temp files are removed everywhere. A record directory without
// any attribute files is still a live record and is left alone.
func (s *Store) Recover() ([]types.Recovery, error) {
	entries, err := readDir(s.fs, s.typePath())
	if err != nil {
		return nil, readFailed(err, "listing %s", s.typ)
	}
	var out []types.Recovery
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, stagingPrefix) {
			rec, err := s.discardStaged(name)
			if err != nil {
				return out, err
			}
			out = append(out, rec)
			continue
		}
		if isReserved(name) {
			continue
		}
		rec, touched, err := s.recoverRecord(name)
		if err != nil {
			return out, err
		}
		if touched {
			out = append(out, rec)
		}
	}
	return out, nil
}

// discardStaged removes a staging directory whose create never got renamed
// into place.
func (s *Store) discardStaged(name string) (types.Recovery, error) {
	rec := types.Recovery{
		ID:         strings.TrimPrefix(name, stagingPrefix),
		RolledBack: true,
		Attributes: s.readJournal(name, journalCreating),
	}
	if err := util.RemoveAll(s.fs, s.path(name)); err != nil {
		return rec, writeFailed(err, "removing staged %s %q", s.typ, rec.ID)
	}
	s.log.Warn("rolled back interrupted create", zap.String("id", rec.ID), zap.Strings("attributes", rec.Attributes))
	return rec, nil
}

func (s *Store) recoverRecord(id string) (types.Recovery, bool, error) {
	rec := types.Recovery{ID: id}
	entries, err := readDir(s.fs, s.path(id))
	if err != nil {
		return rec, false, readFailed(err, "listing %s %q", s.typ, id)
	}

	var creating, updating, touched bool
	for _, e := range entries {
		name := e.Name()
		switch {
		case name == journalCreating:
			creating = true
		case name == journalUpdating:
			updating = true
		case strings.HasPrefix(name, tmpPrefix):
			if err := s.fs.Remove(s.attrPath(id, name)); err != nil && !isNotExist(err) {
				return rec, false, writeFailed(err, "removing temp file of %s %q", s.typ, id)
			}
			touched = true
		}
	}

	switch {
	case creating:
		rec.Attributes = s.readJournal(id, journalCreating)
		if err := s.unlink(id); err != nil {
			return rec, false, err
		}
		rec.RolledBack = true
		s.log.Warn("rolled back interrupted create", zap.String("id", id), zap.Strings("attributes", rec.Attributes))
		return rec, true, nil
	case updating:
		rec.Attributes = s.readJournal(id, journalUpdating)
		if err := s.endJournal(id, journalUpdating); err != nil {
			return rec, false, err
		}
		s.log.Warn("cleared interrupted update", zap.String("id", id), zap.Strings("attributes", rec.Attributes))
		return rec, true, nil
	}
	if touched {
		s.log.Warn("removed stray temp files", zap.String("id", id))
	}
	return rec, touched, nil
}
