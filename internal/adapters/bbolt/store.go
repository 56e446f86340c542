// Package bbolt implements the ports.KeywordStore interface using bbolt
// (embedded B+ tree). Each keyword set is one binary blob in the "sets"
// bucket with a JSON metadata record in the "meta" bucket. Writes are
// transactional, so a crash mid-write cannot corrupt previously committed sets.
package bbolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/corey/flashtext/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketSets = []byte("sets")
	bucketMeta = []byte("meta")
)

// ErrInvalidSetName is returned for empty set names.
var ErrInvalidSetName = fmt.Errorf("invalid keyword set name")

// Store implements ports.KeywordStore backed by bbolt.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// OpenReadOnly opens an existing database with a shared lock, so several
// readers can load sets while no writer holds the file.
func OpenReadOnly(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSet replaces the entire contents of a set.
func (s *Store) SaveSet(name string, entries []ports.Entry) error {
	if name == "" {
		return ErrInvalidSetName
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return s.writeSet(tx, name, normalizeEntries(entries))
	})
}

// LoadSet returns a set's entries sorted by keyword.
// Returns nil, nil if the set does not exist.
func (s *Store) LoadSet(name string) ([]ports.Entry, error) {
	var entries []ports.Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		entries, err = readSet(tx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// PutEntry inserts or overwrites one keyword in a set.
func (s *Store) PutEntry(name string, entry ports.Entry) error {
	if name == "" {
		return ErrInvalidSetName
	}
	if entry.Keyword == "" {
		return fmt.Errorf("empty keyword")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		entries, err := readSet(tx, name)
		if err != nil {
			return err
		}
		return s.writeSet(tx, name, normalizeEntries(append(entries, entry)))
	})
}

// DeleteEntry removes one keyword from a set.
func (s *Store) DeleteEntry(name, keyword string) (bool, error) {
	removed := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		entries, err := readSet(tx, name)
		if err != nil || entries == nil {
			return err
		}
		kept := entries[:0]
		for _, e := range entries {
			if e.Keyword == keyword {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		if !removed {
			return nil
		}
		return s.writeSet(tx, name, kept)
	})
	return removed, err
}

// DeleteSet removes a set. Idempotent: deleting a missing set is not an error.
func (s *Store) DeleteSet(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketSets); b != nil {
			if err := b.Delete([]byte(name)); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			return b.Delete([]byte(name))
		}
		return nil
	})
}

// ListSets returns metadata for every stored set, sorted by name.
func (s *Store) ListSets() ([]ports.SetMeta, error) {
	var sets []ports.SetMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var meta ports.SetMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("unmarshal meta %q: %w", k, err)
			}
			sets = append(sets, meta)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Name < sets[j].Name
	})
	return sets, nil
}

func (s *Store) writeSet(tx *bolt.Tx, name string, entries []ports.Entry) error {
	sb, err := tx.CreateBucketIfNotExists(bucketSets)
	if err != nil {
		return err
	}
	mb, err := tx.CreateBucketIfNotExists(bucketMeta)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(ports.SetMeta{
		Name:      name,
		Count:     len(entries),
		UpdatedAt: s.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	if err := sb.Put([]byte(name), encodeEntries(entries)); err != nil {
		return err
	}
	return mb.Put([]byte(name), meta)
}

// readSet decodes a set inside a transaction. decodeEntries copies every
// string out of the mmap, so the result outlives the transaction.
func readSet(tx *bolt.Tx, name string) ([]ports.Entry, error) {
	b := tx.Bucket(bucketSets)
	if b == nil {
		return nil, nil
	}
	v := b.Get([]byte(name))
	if v == nil {
		return nil, nil
	}
	entries, err := decodeEntries(v)
	if err != nil {
		return nil, fmt.Errorf("decode set %q: %w", name, err)
	}
	return entries, nil
}
