package index

import (
	"fmt"
	"sort"

	"github.com/salvatore-campagna/hanzidx/posting"
	"github.com/salvatore-campagna/hanzidx/token"
)

// Insert parses content in document mode and indexes the resulting token
// multiset under docKey. It returns the assigned document id.
func (e *Engine) Insert(docKey string, content []byte) (uint32, error) {
	entries := token.Parse(content, false).Entries()
	return e.insertEntries(docKey, entries)
}

// InsertTokens indexes a pre-parsed token multiset, for callers (bulk
// loaders) that already have one and want to skip re-parsing raw content.
func (e *Engine) InsertTokens(docKey string, tokens map[string]int) (uint32, error) {
	entries := make([]token.Entry, 0, len(tokens))
	for tok, freq := range tokens {
		entries = append(entries, token.Entry{Token: []byte(tok), Freq: freq})
	}
	sort.Slice(entries, func(i, j int) bool { return string(entries[i].Token) < string(entries[j].Token) })
	return e.insertEntries(docKey, entries)
}

func (e *Engine) insertEntries(docKey string, entries []token.Entry) (uint32, error) {
	if e.readOnly {
		return 0, ErrReadOnly
	}

	// The id is consumed before any posting is written, so a failed insert
	// never hands its id to a later document.
	id := e.idxcount + 1
	e.idxcount = id
	if err := e.primary.SetMeta(idxcountKey, encodeUint32(id)); err != nil {
		return 0, fmt.Errorf("index: insert %q: advance idxcount: %w: %w", docKey, ErrStoreIO, err)
	}

	groups, latin := posting.GroupEntries(entries)

	for _, g := range groups {
		key := posting.EncodeKey(g.Lead)
		store, ok := e.storeFor(key)
		if !ok {
			e.logger.Debug().Bytes("lead", g.Lead[:]).Msg("index: insert: token dropped, outside shard range")
			continue
		}
		value := posting.EncodeIndexValue(id, delim, g.Triples)
		if err := store.Put(key, value); err != nil {
			return 0, fmt.Errorf("index: insert %q: %w: %w", docKey, ErrStoreIO, err)
		}
	}

	for _, ent := range latin {
		store, ok := e.storeFor(ent.Token)
		if !ok {
			e.logger.Debug().Str("word", string(ent.Token)).Msg("index: insert: token dropped, outside shard range")
			continue
		}
		value := posting.EncodeLatinValue(id, posting.Clamp(ent.Freq))
		if err := store.Put(ent.Token, value); err != nil {
			return 0, fmt.Errorf("index: insert %q: %w: %w", docKey, ErrStoreIO, err)
		}
	}

	if err := e.primary.Put(idKey(id), []byte(docKey)); err != nil {
		return 0, fmt.Errorf("index: insert %q: record key: %w: %w", docKey, ErrStoreIO, err)
	}

	return id, nil
}
