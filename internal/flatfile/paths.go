package flatfile

import "strings"

// Reserved dot-names inside a record directory.
const (
	journalCreating = ".creating"
	journalUpdating = ".updating"
	tmpPrefix       = ".tmp-"
	probePrefix     = ".probe-"
)

// stagingPrefix names the hidden directory a new record is built in before
// it is renamed into place.
const stagingPrefix = ".creating-"

func (s *Store) typePath() string {
	return s.fs.Join(s.root, s.typ)
}

func (s *Store) path(id string) string {
	return s.fs.Join(s.root, s.typ, id)
}

func (s *Store) attrPath(id, attr string) string {
	return s.fs.Join(s.root, s.typ, id, attr)
}

func stagedID(id string) string {
	return stagingPrefix + id
}

func isReserved(name string) bool {
	return strings.HasPrefix(name, ".")
}
