package types

// ResourceStore provides CRUD and query operations for the records of one
// resource type. Implementations are not safe for concurrent use.
type ResourceStore interface {
	// Type returns the pluralized resource type name.
	Type() string

	// Endpoint returns the collection reference, endpoint + "/" + type.
	Endpoint() string

	// Self returns the canonical reference of one record.
	Self(id string) string

	// Exists reports whether a record with the given id exists.
	Exists(id string) (bool, error)

	// Get reads the named attributes of a record, or all of them when attrs
	// is empty. Returns ErrNotFound if the record or an attribute is missing.
	Get(id string, attrs ...string) (Record, error)

	// GetAttr reads one attribute of a record.
	GetAttr(id, attr string) (Value, error)

	// Fetch calls Get for each id in order and fails on the first error.
	Fetch(ids []string, attrs ...string) ([]Record, error)

	// Find returns the ids matching q, paginated. Found reports the match
	// count before pagination.
	Find(q Query) ([]string, error)

	// Found returns the pre-pagination match count of the last Find.
	Found() int

	// Create stores a new record. When id is empty the payload's own id is
	// used, else a new UUID. Returns the stored payload with display
	// timestamps. Returns ErrConflict if the id or a unique value is taken.
	Create(id string, payload Record) (Record, error)

	// Update rewrites the payload's attributes of an existing record,
	// skipping immutable ones. Returns ErrInvalidInput when no id can be
	// resolved and ErrNotFound when the record is missing.
	Update(id string, payload Record) (Record, error)

	// UpdateAttr writes one attribute and touches updated. It reports false
	// without error when attr is immutable.
	UpdateAttr(id, attr string, value Value) (bool, error)

	// Touch sets updated to the current time.
	Touch(id string) error

	// AppendValues appends value (or each element of a list value) to a
	// plural attribute and persists the result.
	AppendValues(id, attr string, value Value) (Value, error)

	// ComputeWithoutValues returns a plural attribute's stored list without
	// the given values. It never writes; callers persist the result.
	ComputeWithoutValues(id, attr string, values Value) (Value, error)

	// Delete removes each record in order, stopping at the first failure.
	Delete(ids ...string) error

	// DeleteAttr removes every attr of every id, stopping at the first
	// failure.
	DeleteAttr(ids []string, attrs []string) error

	// Recover rolls back interrupted creates and clears stale journals.
	Recover() ([]Recovery, error)
}

// Recovery reports what Recover did to one record.
type Recovery struct {
	ID string `json:"id"`
	// RolledBack is true when the record was removed because its create
	// never finished.
	RolledBack bool `json:"rolled_back"`
	// Attributes lists the attributes the interrupted write was touching.
	Attributes []string `json:"attributes,omitempty"`
}

// Registry maps resource type names to stores.
type Registry interface {
	// Get returns the store for the type. Returns ErrNotFound when the
	// registry is strict and the type is unknown.
	Get(resourceType string) (ResourceStore, error)

	// Types returns the registered type names in lexical order.
	Types() []string

	// Index lists each registered type with its endpoint link.
	Index() []IndexEntry
}

// IndexEntry describes one registered collection.
type IndexEntry struct {
	Type string `json:"type"`
	Link string `json:"link"`
}
