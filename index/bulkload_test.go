package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBulkLoadInsertsEveryDocument(t *testing.T) {
	e := newTestEngine(t, false)

	dir := t.TempDir()
	path := filepath.Join(dir, "docs.json")
	payload := `[
		{"doc_key": "doc-1", "content": "hello world"},
		{"doc_key": "doc-2", "content": "goodbye world"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	n, err := e.BulkLoad(path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	scores, err := e.Query([]byte("world"), ModeFuzzy, nil)
	require.NoError(t, err)
	require.Len(t, scores, 2)
}

func TestBulkLoadStopsAtFirstFailure(t *testing.T) {
	e := newTestEngine(t, true)

	dir := t.TempDir()
	path := filepath.Join(dir, "docs.json")
	payload := `[{"doc_key": "doc-1", "content": "hello"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	_, err := e.BulkLoad(path)
	require.ErrorIs(t, err, ErrReadOnly)
}
