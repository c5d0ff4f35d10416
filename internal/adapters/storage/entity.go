package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// errAlreadyExists is raised inside transactions and mapped to a
// domain.ConflictError at the repository boundary.
var errAlreadyExists = errors.New("already exists")

// index is a secondary index. Unique indexes reject a second entity that
// produces the same key; non-unique indexes embed the entity id in their keys.
type index[T any] struct {
	name   string
	unique bool
	keys   func(*T) []string
}

// entity stores values of T as JSON under prefix+id. All methods run inside a
// caller-supplied transaction so repositories can compose writes atomically.
type entity[T any] struct {
	name    string
	prefix  string
	indexes []index[T]
}

func newEntity[T any](name, prefix string) *entity[T] {
	return &entity[T]{name: name, prefix: prefix}
}

func (e *entity[T]) withIndex(name string, unique bool, keys func(*T) []string) *entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, unique: unique, keys: keys})
	return e
}

func (e *entity[T]) key(id string) []byte {
	return []byte(e.prefix + id)
}

func (e *entity[T]) indexKey(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value)
}

// indexPrefix returns the key prefix for scanning an index.
func (e *entity[T]) indexPrefix(name, value string) []byte {
	return e.indexKey(name, value)
}

func (e *entity[T]) get(txn *badger.Txn, id string) (*T, error) {
	item, err := txn.Get(e.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.NewNotFoundError(e.name, id)
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s %s: %w", e.name, id, err)
	}

	var v T
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &v)
	}); err != nil {
		return nil, fmt.Errorf("decoding %s %s: %w", e.name, id, err)
	}

	return &v, nil
}

// lookup resolves a unique index value to an entity.
func (e *entity[T]) lookup(txn *badger.Txn, indexName, value string) (*T, error) {
	item, err := txn.Get(e.indexKey(indexName, value))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.NewNotFoundError(e.name, value)
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s index %s: %w", e.name, indexName, err)
	}

	id, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	return e.get(txn, string(id))
}

func (e *entity[T]) create(txn *badger.Txn, id string, v *T) error {
	if _, err := txn.Get(e.key(id)); err == nil {
		return fmt.Errorf("%s %s: %w", e.name, id, errAlreadyExists)
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("checking %s %s: %w", e.name, id, err)
	}

	if err := e.checkIndexes(txn, v, nil); err != nil {
		return err
	}

	return e.write(txn, id, v)
}

// update replaces the stored value and returns the previous one.
func (e *entity[T]) update(txn *badger.Txn, id string, v *T) (*T, error) {
	old, err := e.get(txn, id)
	if err != nil {
		return nil, err
	}

	if err := e.checkIndexes(txn, v, old); err != nil {
		return nil, err
	}

	if err := e.deleteIndexes(txn, old); err != nil {
		return nil, err
	}

	return old, e.write(txn, id, v)
}

// remove deletes the value and returns it.
func (e *entity[T]) remove(txn *badger.Txn, id string) (*T, error) {
	old, err := e.get(txn, id)
	if err != nil {
		return nil, err
	}

	if err := e.deleteIndexes(txn, old); err != nil {
		return nil, err
	}

	if err := txn.Delete(e.key(id)); err != nil {
		return nil, fmt.Errorf("deleting %s %s: %w", e.name, id, err)
	}

	return old, nil
}

func (e *entity[T]) write(txn *badger.Txn, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", e.name, id, err)
	}

	if err := txn.Set(e.key(id), data); err != nil {
		return fmt.Errorf("writing %s %s: %w", e.name, id, err)
	}

	for _, idx := range e.indexes {
		for _, k := range idx.keys(v) {
			if err := txn.Set(e.indexKey(idx.name, k), []byte(id)); err != nil {
				return fmt.Errorf("writing %s index %s: %w", e.name, idx.name, err)
			}
		}
	}

	return nil
}

// checkIndexes rejects unique index keys already held by another entity.
// Keys that old already holds are allowed.
func (e *entity[T]) checkIndexes(txn *badger.Txn, v, old *T) error {
	for _, idx := range e.indexes {
		if !idx.unique {
			continue
		}

		held := map[string]bool{}
		if old != nil {
			for _, k := range idx.keys(old) {
				held[k] = true
			}
		}

		for _, k := range idx.keys(v) {
			if held[k] {
				continue
			}

			_, err := txn.Get(e.indexKey(idx.name, k))
			if err == nil {
				return fmt.Errorf("%s %s %q: %w", e.name, idx.name, k, errAlreadyExists)
			}

			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("checking %s index %s: %w", e.name, idx.name, err)
			}
		}
	}

	return nil
}

func (e *entity[T]) deleteIndexes(txn *badger.Txn, old *T) error {
	for _, idx := range e.indexes {
		for _, k := range idx.keys(old) {
			if err := txn.Delete(e.indexKey(idx.name, k)); err != nil {
				return fmt.Errorf("deleting %s index %s: %w", e.name, idx.name, err)
			}
		}
	}

	return nil
}

// scanIndex visits the ids stored under an index prefix in key order,
// starting at the first key >= start (or at the prefix when start is nil).
// Returning false from fn stops the scan.
func (e *entity[T]) scanIndex(txn *badger.Txn, prefix, start []byte, fn func(key []byte, id string) (bool, error)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	if start == nil {
		start = prefix
	}

	for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()

		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		more, err := fn(item.KeyCopy(nil), string(id))
		if err != nil {
			return err
		}

		if !more {
			return nil
		}
	}

	return nil
}

// count returns the number of primary keys.
func (e *entity[T]) count(txn *badger.Txn) int {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(e.prefix)
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	idxPrefix := e.prefix + "idx:"
	n := 0

	for it.Rewind(); it.Valid(); it.Next() {
		if hasPrefix(it.Item().Key(), idxPrefix) {
			continue
		}
		n++
	}

	return n
}

func hasPrefix(key []byte, prefix string) bool {
	return len(key) >= len(prefix) && string(key[:len(prefix)]) == prefix
}

// conflict converts errAlreadyExists into a domain conflict.
func conflict(err error, entityName, reason string) error {
	if errors.Is(err, errAlreadyExists) {
		return domain.NewConflictError(entityName, reason)
	}

	return err
}
