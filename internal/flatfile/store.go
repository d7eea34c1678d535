package flatfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/mockstore/pkg/types"
)

// Store is the flat-file ResourceStore for one resource type.
type Store struct {
	fs       billy.Filesystem
	root     string
	typ      string
	ser      types.Serializer
	endpoint string

	createEmpty  bool
	slugFromName bool
	unique       []string
	immutable    map[string]bool
	plural       map[string]bool

	clock types.Clock
	ids   types.IDGenerator
	log   *zap.Logger

	found int
}

var _ types.ResourceStore = (*Store)(nil)

// New validates cfg, checks that the root is a writable directory, and
// returns a store for cfg.Type. Nothing is written under the type directory
// until the first record is created.
func New(cfg types.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fs := cfg.FS
	if fs == nil {
		fs = osfs.New("/")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: root %q: %v", types.ErrInvalidConfig, cfg.Root, err)
	}
	if err := probeRoot(fs, root); err != nil {
		return nil, err
	}

	s := &Store{
		fs:           fs,
		root:         root,
		typ:          cfg.Type,
		ser:          cfg.Serializer,
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		createEmpty:  cfg.CreateEmptyObject,
		slugFromName: !cfg.DisableSlugFromName,
		unique:       cfg.Unique,
		immutable:    toSet(cfg.Immutable),
		plural:       toSet(cfg.Plural),
		clock:        cfg.Clock,
		ids:          cfg.IDs,
		log:          cfg.Logger,
	}
	if s.unique == nil {
		s.unique = types.DefaultUnique
	}
	if cfg.Immutable == nil {
		s.immutable = toSet(types.DefaultImmutable)
	}
	if s.clock == nil {
		s.clock = types.RealClock{}
	}
	if s.ids == nil {
		s.ids = types.UUIDGenerator{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("type", s.typ))
	return s, nil
}

func probeRoot(fs billy.Filesystem, root string) error {
	fi, err := fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: root %q: %v", types.ErrInvalidConfig, root, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: root %q is not a directory", types.ErrInvalidConfig, root)
	}
	f, err := fs.TempFile(root, probePrefix)
	if err != nil {
		return fmt.Errorf("%w: root %q is not writable: %v", types.ErrInvalidConfig, root, err)
	}
	name := f.Name()
	f.Close()
	if err := fs.Remove(name); err != nil {
		return fmt.Errorf("%w: root %q: removing probe: %v", types.ErrInvalidConfig, root, err)
	}
	return nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Type returns the resource type.
func (s *Store) Type() string { return s.typ }

// Root returns the normalized storage root.
func (s *Store) Root() string { return s.root }

// Endpoint returns the collection reference.
func (s *Store) Endpoint() string { return s.endpoint + "/" + s.typ }

// Self returns the canonical reference of one record.
func (s *Store) Self(id string) string { return s.Endpoint() + "/" + id }

// Found returns the pre-pagination count of the last Find.
func (s *Store) Found() int { return s.found }

func (s *Store) isUnique(attr string) bool {
	for _, u := range s.unique {
		if u == attr {
			return true
		}
	}
	return false
}

func (s *Store) isPlural(attr string) bool {
	return s.plural[attr] || types.IsPlural(attr)
}

func (s *Store) now() types.Value {
	return rawTime(s.clock.Now())
}
