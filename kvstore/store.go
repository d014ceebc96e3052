package kvstore

import "errors"

// ErrReadOnly is returned by a mutating call (Put, SetMeta) against a store
// opened without write permission. Re-exported as index.ErrReadOnly at the
// engine boundary.
var ErrReadOnly = errors.New("kvstore: store is read-only")

// ErrNotFound is returned by Open when a read-only store is requested
// against a file that does not exist. Re-exported as index.ErrNotFound.
var ErrNotFound = errors.New("kvstore: store file not found")

// Store is an ordered map from byte keys to an insertion-ordered list of
// byte values per key (duplicate-key semantics), plus a separate
// single-valued meta namespace. BoltStore and MemStore both satisfy this
// capability set; the index engine and shard router are written only
// against the interface.
type Store interface {
	// Get returns the first (earliest-inserted) value for key, if any.
	Get(key []byte) (value []byte, ok bool, err error)

	// Put appends value as a new duplicate under key, preserving insertion
	// order among the duplicates of that key.
	Put(key, value []byte) error

	// Delete removes every duplicate value stored under key. A key with no
	// values is left as if it never existed; deleting an absent key is a
	// no-op.
	Delete(key []byte) error

	// Cursor opens an ordered traversal over the whole keyspace. Callers
	// must Close it when done.
	Cursor() (Cursor, error)

	// SetMeta replaces the single value stored under key in the meta
	// namespace, distinct from the duplicate-preserving Put/Get namespace.
	SetMeta(key, value []byte) error

	// GetMeta reads the single value stored under key in the meta
	// namespace.
	GetMeta(key []byte) (value []byte, ok bool, err error)

	Sync() error
	Close() error
}

// Cursor traverses a Store's keyspace in ascending bytewise key order.
// Duplicate values under the same logical key are visited consecutively,
// in insertion order, before the cursor advances to the next logical key.
type Cursor interface {
	// Seek positions the cursor at the first entry with key >= k.
	Seek(k []byte) (key, value []byte, ok bool)

	// Next advances the cursor by one entry.
	Next() (key, value []byte, ok bool)

	// Close releases any resources (e.g. a held read transaction) the
	// cursor holds open.
	Close() error
}
