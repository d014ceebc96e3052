package index

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// BulkDocument is one entry in a bulk-load document set.
type BulkDocument struct {
	DocKey  string `json:"doc_key"`
	Content string `json:"content"`
}

// FetchDocuments retrieves bulk-load JSON from a local file path or an
// http(s) URL.
func FetchDocuments(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, fmt.Errorf("index: fetch %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("index: fetch %s: non-ok response: %s", path, resp.Status)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("index: fetch %s: read response: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("index: fetch %s: %w", path, err)
	}
	return data, nil
}

// ParseDocuments parses a bulk-load JSON payload (a flat array of
// BulkDocument) into its document list.
func ParseDocuments(data []byte) ([]BulkDocument, error) {
	var docs []BulkDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("index: parse bulk documents: %w", err)
	}
	return docs, nil
}

// BulkLoad fetches, parses, and inserts every document at path (a local
// file or http(s) URL) in array order, returning how many were inserted
// before the first failure (or all of them, on success).
func (e *Engine) BulkLoad(path string) (int, error) {
	data, err := FetchDocuments(path)
	if err != nil {
		return 0, err
	}
	docs, err := ParseDocuments(data)
	if err != nil {
		return 0, err
	}

	for i, d := range docs {
		if _, err := e.Insert(d.DocKey, []byte(d.Content)); err != nil {
			return i, fmt.Errorf("index: bulk load %s: document %d (%q): %w", path, i, d.DocKey, err)
		}
	}
	e.logger.Debug().Str("path", path).Int("count", len(docs)).Msg("index: bulk load complete")
	return len(docs), nil
}
