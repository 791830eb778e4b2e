package graph

import (
	"bytes"
	"errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"

	"github.com/wbrown/janus-owl/ontology"
)

// BadgerStore implements Graph using BadgerDB. Every triple is written under
// three key orderings (SPO, POS, OSP) so any pattern with a bound position
// is a prefix scan.
type BadgerStore struct {
	db      *badger.DB
	encoder KeyEncoder
}

// NewBadgerStore opens (or creates) a store at path. A nil encoder selects
// the binary strategy.
func NewBadgerStore(path string, encoder KeyEncoder) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs
	return openBadger(opts, encoder)
}

// NewInMemoryBadgerStore opens a store without a backing directory.
func NewInMemoryBadgerStore(encoder KeyEncoder) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, encoder)
}

func openBadger(opts badger.Options, encoder KeyEncoder) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	if encoder == nil {
		encoder = NewKeyEncoder(BinaryStrategy)
	}
	return &BadgerStore{db: db, encoder: encoder}, nil
}

// Close closes the store
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) Add(t ontology.Triple) (bool, error) {
	if !t.IsGround() {
		return false, ontology.Malformed("cannot add pattern %s", t)
	}
	added := false
	err := s.db.Update(func(txn *badger.Txn) error {
		primary := s.encoder.EncodeKey(SPO, t)
		if _, err := txn.Get(primary); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		value := encodeTriple(t)
		for _, idx := range allIndices {
			if err := txn.Set(s.encoder.EncodeKey(idx, t), value); err != nil {
				return fmt.Errorf("failed to write to %v index: %w", idx, err)
			}
		}
		added = true
		return nil
	})
	return added, err
}

func (s *BadgerStore) Delete(t ontology.Triple) (bool, error) {
	deleted := false
	err := s.db.Update(func(txn *badger.Txn) error {
		primary := s.encoder.EncodeKey(SPO, t)
		if _, err := txn.Get(primary); errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		for _, idx := range allIndices {
			if err := txn.Delete(s.encoder.EncodeKey(idx, t)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("failed to delete from %v index: %w", idx, err)
			}
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (s *BadgerStore) Contains(t ontology.Triple) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(s.encoder.EncodeKey(SPO, t))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	return found, err
}

func (s *BadgerStore) Find(sub, pred, obj ontology.Node) iter.Seq2[ontology.Triple, error] {
	return func(yield func(ontology.Triple, error) bool) {
		matches, err := s.scan(sub, pred, obj)
		if err != nil {
			yield(ontology.Triple{}, err)
			return
		}
		for _, t := range matches {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// scan collects matches inside one read transaction.
func (s *BadgerStore) scan(sub, pred, obj ontology.Node) ([]ontology.Triple, error) {
	index, bound := chooseIndex(sub, pred, obj)
	prefix := s.encoder.EncodePrefix(index, bound...)

	var out []ontology.Triple
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.Valid(); it.Next() {
			item := it.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}
			err := item.Value(func(val []byte) error {
				t, err := decodeTriple(val)
				if err != nil {
					return err
				}
				if t.Matches(sub, pred, obj) {
					out = append(out, t)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}

// Size counts SPO keys without fetching values.
func (s *BadgerStore) Size() (int, error) {
	prefix := []byte{byte(SPO)}
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // KEY ONLY
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
