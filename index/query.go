package index

import (
	"encoding/binary"

	"github.com/salvatore-campagna/hanzidx/posting"
	"github.com/salvatore-campagna/hanzidx/token"
)

// Mode selects how a Query call's per-token score contributions combine
// with the caller-supplied prior scores.
type Mode int

const (
	// ModeFuzzy accumulates score_add for every match, ignoring absence.
	ModeFuzzy Mode = iota
	// ModePart accumulates score_add for matches and a smaller residual
	// score for documents that matched the leading pair but not this
	// specific trailing pair.
	ModePart
	// ModeExact intersects matches across tokens: a document survives a
	// token only if it was already present going into that token.
	ModeExact
	// ModeNot removes matched documents from the caller-supplied prior.
	ModeNot
)

const (
	scoreScale   = 800
	scoreOffset  = 200
	partResidual = 50
)

var marker = [2]byte{'!', '!'}

// Query runs text through the parser in query mode, groups the resulting
// tokens the same way Insert does, and scores documents against the
// configured mode. prior seeds (FUZZY/PART/NOT) or gates (EXACT) the
// running score; within ModeExact, "the running score before this token"
// is what the per-token mode table calls "prior" — for the first token
// that's literally the caller's prior argument, and for every token after
// it's the previous token's surviving set. Threading the running
// accumulator through as each token's baseline, rather than checking a
// single fixed prior for every token, is what makes a conjunctive query
// short-circuit: once a token eliminates every surviving document, no
// later token has anything left to intersect against.
func (e *Engine) Query(text []byte, mode Mode, prior map[uint32]float64) (map[uint32]float64, error) {
	entries := token.Parse(text, true).Entries()
	groups, latin := posting.GroupEntries(entries)

	current := cloneScores(prior)
	// notBaseline gates ModeNot only: "delete from the caller's prior" is
	// a fixed baseline check, not a per-token running one.
	notBaseline := len(prior) > 0
	var words int64

	for _, g := range groups {
		matched, ok := e.seekMatches(posting.EncodeKey(g.Lead))
		if !ok {
			continue
		}
		// ModeExact's "if prior empty" check is the running accumulator's
		// state going into *this* token, not the original prior argument:
		// the first token establishes a baseline from whatever came in,
		// every token after that requires intersection with what survived
		// so far.
		exactBaseline := len(current) > 0
		var shortCircuit bool
		current, words, shortCircuit = e.scoreGroupToken(mode, current, exactBaseline, notBaseline, matched, g.Triples, words, false)
		if shortCircuit {
			return postProcess(current, words), nil
		}
	}

	for _, ent := range latin {
		matched, ok := e.seekMatches(ent.Token)
		if !ok {
			continue
		}
		triples := []posting.Triple{{Freq: posting.Clamp(ent.Freq)}}
		exactBaseline := len(current) > 0
		var shortCircuit bool
		current, words, shortCircuit = e.scoreGroupToken(mode, current, exactBaseline, notBaseline, matched, triples, words, true)
		if shortCircuit {
			return postProcess(current, words), nil
		}
	}

	return postProcess(current, words), nil
}

// seekMatches applies shard routing (skipping the token if it is out of
// range) and collects every duplicate value stored under key.
func (e *Engine) seekMatches(key []byte) ([][]byte, bool) {
	store, ok := e.storeFor(key)
	if !ok {
		return nil, false
	}

	c, err := store.Cursor()
	if err != nil {
		e.logger.Warn().Err(err).Msg("index: query: cursor open failed")
		return nil, false
	}
	defer c.Close()

	var matched [][]byte
	k, v, ok := c.Seek(key)
	for ok && string(k) == string(key) {
		matched = append(matched, v)
		k, v, ok = c.Next()
	}
	return matched, true
}

// scoreGroupToken applies one query token (a Big5 group, or a degenerate
// single-triple Latin "group") against matched, the stored posting values
// for that token's key.
func (e *Engine) scoreGroupToken(
	mode Mode,
	current map[uint32]float64,
	exactBaseline bool,
	notBaseline bool,
	matched [][]byte,
	triples []posting.Triple,
	words int64,
	latinDegenerate bool,
) (next map[uint32]float64, newWords int64, shortCircuit bool) {
	exactNext := map[uint32]int64{}

	for _, t := range triples {
		vv := int64(t.Freq)
		words += vv

		var found []matchedDoc
		var wordcount int64

		if !latinDegenerate && t.Trail == marker {
			for _, m := range matched {
				id, ok := e.docIDOf(m)
				if !ok {
					continue
				}
				wordcount += int64(len(m))
				found = append(found, matchedDoc{id: id, tf: int64(len(m))})
			}
		} else if latinDegenerate {
			for _, m := range matched {
				id, freq, err := posting.DecodeLatinValue(m)
				if err != nil {
					e.logger.Warn().Err(err).Msg("index: query: corrupt latin posting")
					continue
				}
				wordcount += int64(freq)
				found = append(found, matchedDoc{id: id, tf: int64(freq)})
			}
		} else {
			foundSet := make(map[uint32]bool, len(matched))
			for _, m := range matched {
				if len(m) < posting.IDLen+posting.DelimLen {
					e.logger.Warn().Msg("index: query: corrupt posting, too short")
					continue
				}
				freq, ok := posting.FindTriple(m, t.Trail)
				if !ok {
					continue
				}
				id := binary.BigEndian.Uint32(m[:posting.IDLen])
				wordcount += int64(freq)
				found = append(found, matchedDoc{id: id, tf: int64(freq)})
				foundSet[id] = true
			}

			if mode == ModePart {
				for _, m := range matched {
					if len(m) < posting.IDLen {
						continue
					}
					id := binary.BigEndian.Uint32(m[:posting.IDLen])
					if !foundSet[id] {
						residual := int64(0)
						if words > 0 {
							residual = partResidual / words
						}
						current[id] += float64(residual)
					}
				}
			}
		}

		for _, f := range found {
			scoreAdd := scoreAddFor(f.tf, wordcount, vv)
			switch mode {
			case ModeFuzzy, ModePart:
				current[f.id] += float64(scoreAdd)
			case ModeExact:
				if !exactBaseline {
					exactNext[f.id] = scoreAdd
				} else if priorScore, ok := current[f.id]; ok {
					exactNext[f.id] = scoreAdd + int64(priorScore)
				}
			case ModeNot:
				if notBaseline {
					delete(current, f.id)
				}
			}
		}
	}

	if mode == ModeExact {
		if len(exactNext) == 0 {
			return map[uint32]float64{}, words, true
		}
		next := make(map[uint32]float64, len(exactNext))
		for id, v := range exactNext {
			next[id] = float64(v)
		}
		return next, words, false
	}

	return current, words, false
}

type matchedDoc struct {
	id uint32
	tf int64
}

func scoreAddFor(tf, wordcount, vv int64) int64 {
	if wordcount <= 0 {
		return scoreOffset * vv
	}
	return (tf*scoreScale/wordcount + scoreOffset) * vv
}

func (e *Engine) docIDOf(stored []byte) (uint32, bool) {
	if len(stored) < posting.IDLen {
		e.logger.Warn().Msg("index: query: corrupt posting, too short for id")
		return 0, false
	}
	return binary.BigEndian.Uint32(stored[:posting.IDLen]), true
}

func cloneScores(prior map[uint32]float64) map[uint32]float64 {
	out := make(map[uint32]float64, len(prior))
	for id, v := range prior {
		out[id] = v
	}
	return out
}

func postProcess(scores map[uint32]float64, words int64) map[uint32]float64 {
	if words > 1 {
		for id, v := range scores {
			scores[id] = float64(int64(v) / words)
		}
	}
	return scores
}
