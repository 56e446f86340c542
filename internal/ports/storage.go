// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Entry is one vocabulary line: the keyword as it appears in text and the
// clean word reported (or substituted) when it matches.
type Entry struct {
	Keyword string `json:"keyword"`
	Clean   string `json:"clean"`
}

// SetMeta describes a stored keyword set.
type SetMeta struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	UpdatedAt int64  `json:"updated_at"` // unix seconds
}

// KeywordStore persists named keyword sets to durable storage.
// Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: every write is transactional. A crash mid-write must not
// corrupt previously committed sets.
type KeywordStore interface {
	// SaveSet replaces the entire contents of a set. Duplicate keywords
	// collapse with the last entry winning.
	SaveSet(name string, entries []Entry) error

	// LoadSet returns the entries of a set sorted by keyword.
	// Returns nil, nil if the set does not exist.
	LoadSet(name string) ([]Entry, error)

	// PutEntry inserts or overwrites a single keyword, creating the set if needed.
	PutEntry(name string, entry Entry) error

	// DeleteEntry removes a single keyword. Reports whether it was present.
	DeleteEntry(name, keyword string) (bool, error)

	// DeleteSet removes a set. Idempotent: deleting a missing set is not an error.
	DeleteSet(name string) error

	// ListSets returns metadata for every stored set, sorted by name.
	ListSets() ([]SetMeta, error)
}
