// Package store provides a badger-backed implementation of the
// registry persistence collaborator. Records are keyed by chain id and
// cramberry-encoded, so what goes to disk is byte-identical to what
// the transports put on the wire.
package store

import (
	"fmt"

	"github.com/t3rn/go-circuit/registry"
	"github.com/t3rn/go-circuit/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
	badger "github.com/dgraph-io/badger/v3"
)

var keyPrefix = []byte("gateway/")

// Compile-time interface check.
var _ registry.Store = (*Store)(nil)

// Store persists registry records in a badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// NewInMemory opens a store with no backing files, for tests.
func NewInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open in-memory: %w", err)
	}
	return &Store{db: db}, nil
}

func recordKey(id types.ChainID) []byte {
	return append(append([]byte{}, keyPrefix...), id[:]...)
}

// Put persists one record. An existing record for the same id is
// never overwritten; the registry guarantees it rejects duplicates
// before calling Put, so a collision here means the store and the
// registry disagree.
func (s *Store) Put(rec types.RegistryRecord) error {
	data, err := cramberry.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", rec.Pointer.ID, err)
	}
	key := recordKey(rec.Pointer.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("record for %s already persisted", rec.Pointer.ID)
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("store: put %s: %w", rec.Pointer.ID, err)
	}
	return nil
}

// LoadAll returns every persisted record.
func (s *Store) LoadAll() ([]types.RegistryRecord, error) {
	var records []types.RegistryRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec types.RegistryRecord
				if err := cramberry.Unmarshal(val, &rec); err != nil {
					return fmt.Errorf("decode %x: %w", it.Item().Key(), err)
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: load: %w", err)
	}
	return records, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
