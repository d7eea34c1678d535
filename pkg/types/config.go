package types

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// Config holds the construction arguments of a flat-file store. Root, Type
// and Serializer are required; everything else has a default.
type Config struct {
	// Root is an existing, writable directory holding one subdirectory per
	// resource type.
	Root string `json:"root" yaml:"root"`

	// Type is the pluralized resource type name.
	Type string `json:"type" yaml:"type"`

	// Serializer encodes attribute files.
	Serializer Serializer `json:"-" yaml:"-"`

	// Endpoint prefixes the self reference of each record. It must be an
	// absolute URL or an absolute path; a trailing slash is trimmed.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// CreateEmptyObject allows Create with an empty payload.
	CreateEmptyObject bool `json:"create_empty_object" yaml:"create_empty_object"`

	// Unique lists attributes that must be unique within the type.
	// Nil means DefaultUnique; an empty non-nil slice disables the check.
	Unique []string `json:"unique" yaml:"unique"`

	// Immutable lists attributes dropped from update payloads.
	// Nil means DefaultImmutable.
	Immutable []string `json:"immutable" yaml:"immutable"`

	// Plural lists attributes treated as arrays even though IsPlural says
	// otherwise.
	Plural []string `json:"plural" yaml:"plural"`

	// DisableSlugFromName stops Create and Update from deriving slug from
	// name when slug is absent.
	DisableSlugFromName bool `json:"disable_slug_from_name" yaml:"disable_slug_from_name"`

	// FS is the filesystem the store writes to. Nil means the OS filesystem.
	FS billy.Filesystem `json:"-" yaml:"-"`

	// Clock supplies "now" for created and updated. Nil means RealClock.
	Clock Clock `json:"-" yaml:"-"`

	// IDs generates record ids. Nil means UUIDGenerator.
	IDs IDGenerator `json:"-" yaml:"-"`

	// Logger receives debug logs of mutations. Nil means a no-op logger.
	Logger *zap.Logger `json:"-" yaml:"-"`
}

// Default attribute sets.
var (
	DefaultUnique    = []string{AttrSlug}
	DefaultImmutable = []string{AttrType}
)

// Validate checks the fields that need no filesystem access. Directory
// checks on Root happen when the store is constructed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("%w: root must not be empty", ErrInvalidConfig)
	}
	if c.Type == "" {
		return fmt.Errorf("%w: type must not be empty", ErrInvalidConfig)
	}
	if !IsPlural(c.Type) {
		return fmt.Errorf("%w: type %q must be plural", ErrInvalidConfig, c.Type)
	}
	if err := ValidateName(c.Type); err != nil {
		return fmt.Errorf("%w: type: %v", ErrInvalidConfig, err)
	}
	if c.Serializer == nil {
		return fmt.Errorf("%w: serializer is required", ErrInvalidConfig)
	}
	if c.Endpoint != "" {
		if err := validateEndpoint(c.Endpoint); err != nil {
			return err
		}
	}
	return nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: endpoint %q: %v", ErrInvalidConfig, endpoint, err)
	}
	if u.IsAbs() {
		if u.Host == "" {
			return fmt.Errorf("%w: endpoint %q has no host", ErrInvalidConfig, endpoint)
		}
		return nil
	}
	if !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("%w: endpoint %q must be an absolute URL or path", ErrInvalidConfig, endpoint)
	}
	return nil
}

// ValidateName checks that name can be used as a record id or attribute
// name, which means a single path segment not starting with a dot.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: name %q must not contain path separators", ErrInvalidInput, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: name %q must not start with a dot", ErrInvalidInput, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: name %q must not contain NUL", ErrInvalidInput, name)
	}
	return nil
}
