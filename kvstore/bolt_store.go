package kvstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

var (
	dataBucket = []byte("data")
	seqBucket  = []byte("seq")
	metaBucket = []byte("meta")
)

const seqLen = 8

// Options configures a BoltStore. The index engine's WithPageSize and
// WithCacheSize options map directly to PageSize and InitialMmapSize here;
// there is no separate page-cache knob since bbolt relies on the OS page
// cache rather than a library-level block cache.
type Options struct {
	ReadOnly        bool
	PageSize        int
	InitialMmapSize int
	Logger          zerolog.Logger
}

// BoltStore is the persistent Store implementation: one bbolt.DB per file,
// with a data bucket holding token||big-endian-seq(8) composite keys for
// duplicate-preserving ordered storage, a seq bucket tracking the next
// sequence number per token, and a meta bucket for SetMeta/GetMeta.
type BoltStore struct {
	db       *bolt.DB
	readOnly bool
	logger   zerolog.Logger
}

// Open opens (or creates, unless ReadOnly) the store at path.
func Open(path string, opts Options) (*BoltStore, error) {
	if opts.ReadOnly {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("kvstore: stat %s: %w", path, err)
		}
	}

	boltOpts := &bolt.Options{ReadOnly: opts.ReadOnly, PageSize: opts.PageSize}
	if opts.InitialMmapSize > 0 {
		boltOpts.InitialMmapSize = opts.InitialMmapSize
	}

	db, err := bolt.Open(path, 0600, boltOpts)
	if err != nil {
		return nil, fmt.Errorf("kvstore: open %s: %w", path, err)
	}

	if !opts.ReadOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			for _, b := range [][]byte{dataBucket, seqBucket, metaBucket} {
				if _, err := tx.CreateBucketIfNotExists(b); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("kvstore: init buckets %s: %w", path, err)
		}
	}

	s := &BoltStore{db: db, readOnly: opts.ReadOnly, logger: opts.Logger}
	s.logger.Debug().Str("path", path).Bool("read_only", opts.ReadOnly).Msg("kvstore: opened")
	return s, nil
}

func compositeKey(key []byte, seq uint64) []byte {
	composite := make([]byte, len(key)+seqLen)
	copy(composite, key)
	binary.BigEndian.PutUint64(composite[len(key):], seq)
	return composite
}

// Get returns the first (lowest-sequence) value stored under key.
func (s *BoltStore) Get(key []byte) ([]byte, bool, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(dataBucket).Cursor()
		k, v := c.Seek(key)
		if k != nil && len(k) == len(key)+seqLen && bytes.HasPrefix(k, key) {
			val = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("kvstore: get %x: %w", key, err)
	}
	return val, val != nil, nil
}

// Put appends value as a new duplicate under key, using the seq bucket to
// assign the next sequence number in O(1) without rescanning existing
// duplicates.
func (s *BoltStore) Put(key, value []byte) error {
	if s.readOnly {
		return ErrReadOnly
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		seqB := tx.Bucket(seqBucket)
		dataB := tx.Bucket(dataBucket)

		var seq uint64
		if raw := seqB.Get(key); raw != nil {
			seq = binary.BigEndian.Uint64(raw)
		}

		if err := dataB.Put(compositeKey(key, seq), value); err != nil {
			return err
		}

		next := make([]byte, seqLen)
		binary.BigEndian.PutUint64(next, seq+1)
		return seqB.Put(key, next)
	})
	if err != nil {
		return fmt.Errorf("kvstore: put %x: %w", key, err)
	}
	return nil
}

// Delete removes every composite-keyed duplicate stored under key from the
// data bucket, walking the contiguous key||seq run with a cursor rather
// than re-deriving sequence numbers.
func (s *BoltStore) Delete(key []byte) error {
	if s.readOnly {
		return ErrReadOnly
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(dataBucket).Cursor()
		k, _ := c.Seek(key)
		for k != nil && len(k) == len(key)+seqLen && bytes.HasPrefix(k, key) {
			if err := c.Delete(); err != nil {
				return err
			}
			k, _ = c.Next()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("kvstore: delete %x: %w", key, err)
	}
	return nil
}

// Cursor begins a read-only transaction and returns a Cursor over the data
// bucket. The caller must Close it to release the transaction.
func (s *BoltStore) Cursor() (Cursor, error) {
	tx, err := s.db.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("kvstore: begin cursor: %w", err)
	}
	return &boltCursor{tx: tx, cur: tx.Bucket(dataBucket).Cursor()}, nil
}

func (s *BoltStore) SetMeta(key, value []byte) error {
	if s.readOnly {
		return ErrReadOnly
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("kvstore: set meta %x: %w", key, err)
	}
	return nil
}

func (s *BoltStore) GetMeta(key []byte) ([]byte, bool, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(metaBucket).Get(key); v != nil {
			val = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("kvstore: get meta %x: %w", key, err)
	}
	return val, val != nil, nil
}

func (s *BoltStore) Sync() error {
	if err := s.db.Sync(); err != nil {
		return fmt.Errorf("kvstore: sync: %w", err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("kvstore: close: %w", err)
	}
	return nil
}

// boltCursor decodes composite data-bucket keys (token||seq) back into
// their logical token before returning them to the caller.
type boltCursor struct {
	tx  *bolt.Tx
	cur *bolt.Cursor
}

func decomposeKey(k, v []byte) ([]byte, []byte, bool) {
	if k == nil || len(k) < seqLen {
		return nil, nil, false
	}
	logical := k[:len(k)-seqLen]
	return logical, v, true
}

func (c *boltCursor) Seek(key []byte) ([]byte, []byte, bool) {
	k, v := c.cur.Seek(key)
	return decomposeKey(k, v)
}

func (c *boltCursor) Next() ([]byte, []byte, bool) {
	k, v := c.cur.Next()
	return decomposeKey(k, v)
}

func (c *boltCursor) Close() error {
	return c.tx.Rollback()
}
