package bbolt

import (
	"os"

	"github.com/corey/flashtext/internal/ports"
)

// PathStore implements ports.KeywordStore by opening the database for each
// call and closing it afterwards. A long-running daemon uses it so the file
// lock is only held while a set is being read, leaving the CLI free to edit
// sets between reloads. Reads take a shared lock; a missing database reads
// as empty.
type PathStore struct {
	path string
}

// NewPathStore returns a PathStore for the database at path. Nothing is
// opened until the first call.
func NewPathStore(path string) *PathStore {
	return &PathStore{path: path}
}

func (p *PathStore) read(fn func(*Store) error) error {
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return nil
	}
	s, err := OpenReadOnly(p.path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func (p *PathStore) write(fn func(*Store) error) error {
	s, err := NewStore(p.path)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

// SaveSet replaces the entire contents of a set.
func (p *PathStore) SaveSet(name string, entries []ports.Entry) error {
	return p.write(func(s *Store) error { return s.SaveSet(name, entries) })
}

// LoadSet returns a set's entries, or nil, nil if the set or the database
// does not exist.
func (p *PathStore) LoadSet(name string) ([]ports.Entry, error) {
	var entries []ports.Entry
	err := p.read(func(s *Store) error {
		var err error
		entries, err = s.LoadSet(name)
		return err
	})
	return entries, err
}

// PutEntry inserts or overwrites one keyword in a set.
func (p *PathStore) PutEntry(name string, entry ports.Entry) error {
	return p.write(func(s *Store) error { return s.PutEntry(name, entry) })
}

// DeleteEntry removes one keyword from a set.
func (p *PathStore) DeleteEntry(name, keyword string) (bool, error) {
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return false, nil
	}
	var removed bool
	err := p.write(func(s *Store) error {
		var err error
		removed, err = s.DeleteEntry(name, keyword)
		return err
	})
	return removed, err
}

// DeleteSet removes a set. Idempotent.
func (p *PathStore) DeleteSet(name string) error {
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return nil
	}
	return p.write(func(s *Store) error { return s.DeleteSet(name) })
}

// ListSets returns metadata for every stored set.
func (p *PathStore) ListSets() ([]ports.SetMeta, error) {
	var sets []ports.SetMeta
	err := p.read(func(s *Store) error {
		var err error
		sets, err = s.ListSets()
		return err
	})
	return sets, err
}
