package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// KeyEntry pairs a document id with the caller-supplied key it was inserted
// under, as returned by ListKeys.
type KeyEntry struct {
	DocID  uint32
	DocKey string
}

// GetKey returns the document key stored for docID. DeleteID removes the
// "!id" mapping outright, so a deleted id is reported as not found; the
// deleted-set check here is belt-and-suspenders against any stale "!id"
// entry written before this id was deleted.
func (e *Engine) GetKey(docID uint32) (string, bool, error) {
	if e.deleted.Contains(docID) {
		return "", false, nil
	}
	v, ok, err := e.primary.Get(idKey(docID))
	if err != nil {
		return "", false, fmt.Errorf("index: get key %d: %w: %w", docID, ErrStoreIO, err)
	}
	if !ok {
		return "", false, nil
	}
	return string(v), true, nil
}

// FindKey is the reverse of GetKey: a linear scan over the "!"-prefixed
// range looking for a matching doc_key. The primary store has no secondary
// index on value, so this is O(idxcount).
func (e *Engine) FindKey(docKey string) (uint32, bool, error) {
	c, err := e.primary.Cursor()
	if err != nil {
		return 0, false, fmt.Errorf("index: find key %q: %w: %w", docKey, ErrStoreIO, err)
	}
	defer c.Close()

	prefix := []byte{'!'}
	k, v, ok := c.Seek(prefix)
	for ok && bytes.HasPrefix(k, prefix) {
		id, valid := decodeIDKey(k)
		if valid && !e.deleted.Contains(id) && string(v) == docKey {
			return id, true, nil
		}
		k, v, ok = c.Next()
	}
	return 0, false, nil
}

// ListKeys enumerates every non-deleted document. When includeIDs is false
// (callers that only want doc_keys) each entry's DocID is left zero.
func (e *Engine) ListKeys(includeIDs bool) ([]KeyEntry, error) {
	c, err := e.primary.Cursor()
	if err != nil {
		return nil, fmt.Errorf("index: list keys: %w: %w", ErrStoreIO, err)
	}
	defer c.Close()

	var out []KeyEntry
	prefix := []byte{'!'}
	k, v, ok := c.Seek(prefix)
	for ok && bytes.HasPrefix(k, prefix) {
		id, valid := decodeIDKey(k)
		if valid && !e.deleted.Contains(id) {
			entry := KeyEntry{DocKey: string(v)}
			if includeIDs {
				entry.DocID = id
			}
			out = append(out, entry)
		}
		k, v, ok = c.Next()
	}
	return out, nil
}

// Delete marks docKey's document deleted. It is a FindKey followed by
// DeleteID; see DeleteID for what "deleted" means here.
func (e *Engine) Delete(docKey string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	id, ok, err := e.FindKey(docKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return e.DeleteID(id)
}

// DeleteID marks docID deleted: it removes the "!id" doc_key mapping from
// the primary store and records docID in the deletion set, but leaves
// every posting already written under docID on disk untouched. Query may
// therefore still score a deleted id; callers (e.g. chatbot's avoid-list)
// are expected to filter a returned id through GetKey, which now reports
// it as not found.
func (e *Engine) DeleteID(docID uint32) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if err := e.primary.Delete(idKey(docID)); err != nil {
		return fmt.Errorf("index: delete id %d: %w: %w", docID, ErrStoreIO, err)
	}
	e.deleted.Add(docID)
	if err := e.primary.SetMeta(deletedKey, e.deleted.Encode()); err != nil {
		return fmt.Errorf("index: delete id %d: %w: %w", docID, ErrStoreIO, err)
	}
	return nil
}

// decodeIDKey reports whether k is a "!id" key and, if so, its id.
func decodeIDKey(k []byte) (uint32, bool) {
	if len(k) != 5 || k[0] != '!' {
		return 0, false
	}
	return binary.BigEndian.Uint32(k[1:]), true
}
