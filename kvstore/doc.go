// Package kvstore defines the ordered, duplicate-key store abstraction the
// index engine is built on, plus two implementations: BoltStore, a
// persistent store backed by go.etcd.io/bbolt, and MemStore, an in-memory
// reference implementation used by engine and shard-router tests.
//
// Neither implementation knows anything about tokens, postings, or
// documents — a Store is a generic ordered map from byte keys to an
// insertion-ordered list of byte values per key, plus a separate
// single-valued meta namespace.
package kvstore
