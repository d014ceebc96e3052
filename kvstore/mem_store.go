package kvstore

import (
	"sort"
	"sync"
)

// MemStore is an in-memory Store used by engine and shard-router tests, so
// those tests exercise the Store interface rather than a concrete on-disk
// library.
type MemStore struct {
	mu       sync.Mutex
	data     map[string][][]byte
	meta     map[string][]byte
	readOnly bool
}

// NewMemStore returns an empty MemStore. readOnly mirrors BoltStore's
// open-time read-only flag.
func NewMemStore(readOnly bool) *MemStore {
	return &MemStore{
		data:     make(map[string][][]byte),
		meta:     make(map[string][]byte),
		readOnly: readOnly,
	}
}

func (m *MemStore) Get(key []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vals := m.data[string(key)]
	if len(vals) == 0 {
		return nil, false, nil
	}
	return vals[0], true, nil
}

func (m *MemStore) Put(key, value []byte) error {
	if m.readOnly {
		return ErrReadOnly
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	k := string(key)
	m.data[k] = append(m.data[k], append([]byte(nil), value...))
	return nil
}

// Delete removes every value stored under key.
func (m *MemStore) Delete(key []byte) error {
	if m.readOnly {
		return ErrReadOnly
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

type memEntry struct {
	key string
	val []byte
}

type memCursor struct {
	flat []memEntry
	pos  int
}

func (m *MemStore) Cursor() (Cursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var flat []memEntry
	for _, k := range keys {
		for _, v := range m.data[k] {
			flat = append(flat, memEntry{key: k, val: v})
		}
	}
	return &memCursor{flat: flat, pos: -1}, nil
}

func (c *memCursor) Seek(key []byte) ([]byte, []byte, bool) {
	target := string(key)
	idx := sort.Search(len(c.flat), func(i int) bool { return c.flat[i].key >= target })
	if idx >= len(c.flat) {
		c.pos = len(c.flat)
		return nil, nil, false
	}
	c.pos = idx
	e := c.flat[idx]
	return []byte(e.key), e.val, true
}

func (c *memCursor) Next() ([]byte, []byte, bool) {
	c.pos++
	if c.pos >= len(c.flat) {
		return nil, nil, false
	}
	e := c.flat[c.pos]
	return []byte(e.key), e.val, true
}

func (c *memCursor) Close() error {
	return nil
}

func (m *MemStore) SetMeta(key, value []byte) error {
	if m.readOnly {
		return ErrReadOnly
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *MemStore) GetMeta(key []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.meta[string(key)]
	return v, ok, nil
}

func (m *MemStore) Sync() error { return nil }

func (m *MemStore) Close() error { return nil }
