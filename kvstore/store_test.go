package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conformance exercises the Store capability set identically against
// whichever implementation the caller builds, so BoltStore and MemStore are
// held to the same contract.
func conformance(t *testing.T, store Store) {
	t.Helper()

	_, ok, err := store.Get([]byte("missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put([]byte("tok"), []byte("first")))
	require.NoError(t, store.Put([]byte("tok"), []byte("second")))

	v, ok, err := store.Get([]byte("tok"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", string(v))

	require.NoError(t, store.SetMeta([]byte("_idxcount"), []byte{0, 0, 0, 1}))
	mv, ok, err := store.GetMeta([]byte("_idxcount"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0, 0, 0, 1}, mv)

	require.NoError(t, store.Put([]byte("tokb"), []byte("only")))

	c, err := store.Cursor()
	require.NoError(t, err)
	defer c.Close()

	k, v, ok := c.Seek([]byte("tok"))
	require.True(t, ok)
	assert.Equal(t, "tok", string(k))
	assert.Equal(t, "first", string(v))

	k, v, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "tok", string(k))
	assert.Equal(t, "second", string(v))

	k, v, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "tokb", string(k))
	assert.Equal(t, "only", string(v))

	_, _, ok = c.Next()
	assert.False(t, ok)
}

func TestMemStoreConformance(t *testing.T) {
	conformance(t, NewMemStore(false))
}

func TestMemStoreReadOnlyRejectsWrites(t *testing.T) {
	s := NewMemStore(true)
	assert.ErrorIs(t, s.Put([]byte("a"), []byte("b")), ErrReadOnly)
	assert.ErrorIs(t, s.SetMeta([]byte("a"), []byte("b")), ErrReadOnly)
}

func TestBoltStoreConformance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	store, err := Open(path, Options{})
	require.NoError(t, err)
	defer store.Close()

	conformance(t, store)
}

func TestBoltStoreReadOnlyMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.db")

	_, err := Open(path, Options{ReadOnly: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStoreReadOnlyRejectsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	rw, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, rw.Put([]byte("tok"), []byte("v")))
	require.NoError(t, rw.Close())

	ro, err := Open(path, Options{ReadOnly: true})
	require.NoError(t, err)
	defer ro.Close()

	assert.ErrorIs(t, ro.Put([]byte("tok"), []byte("v2")), ErrReadOnly)

	v, ok, err := ro.Get([]byte("tok"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(v))
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")

	rw, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, rw.Put([]byte("tok"), []byte("v1")))
	require.NoError(t, rw.Put([]byte("tok"), []byte("v2")))
	require.NoError(t, rw.Close())

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	c, err := reopened.Cursor()
	require.NoError(t, err)
	defer c.Close()

	_, v, ok := c.Seek([]byte("tok"))
	require.True(t, ok)
	assert.Equal(t, "v1", string(v))

	_, v, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "v2", string(v))
}
