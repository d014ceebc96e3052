package posting

import (
	"encoding/binary"
	"errors"

	"github.com/salvatore-campagna/hanzidx/token"
)

// MaxFreq is the clamp ceiling for a triple's frequency byte.
const MaxFreq = 0xA3

// Fixed widths of the on-disk posting record: id(4) || delim(4) || triples,
// each triple a 2-byte trailing pair plus a 1-byte frequency.
const (
	IDLen     = 4
	DelimLen  = 4
	TripleLen = 3

	// LatinValueLen is the full on-disk Latin value: id(4) || "  "(2) || freq(1).
	LatinValueLen = IDLen + 2 + 1
)

// LatinSuffix is the two-byte sentinel that stands in for a trailing pair
// in a Latin posting value.
var LatinSuffix = [2]byte{' ', ' '}

// ErrShortValue is returned by the decode functions when a value is too
// short to contain its declared shape. The index package's query path logs
// such a value and skips it.
var ErrShortValue = errors.New("posting: value too short")

// ErrMisaligned is returned when the triple region of a value is not a
// whole multiple of TripleLen bytes.
var ErrMisaligned = errors.New("posting: triple stream misaligned")

// Clamp caps a raw frequency count at MaxFreq, the single byte a triple has
// to represent it in.
func Clamp(freq int) byte {
	if freq > MaxFreq {
		return MaxFreq
	}
	if freq < 0 {
		return 0
	}
	return byte(freq)
}

// Triple is one (trailing pair, frequency) pair inside a Big5 record value.
type Triple struct {
	Trail [2]byte
	Freq  byte
}

// Group is one Big5 record: all the trailing-pair triples that shared the
// same leading pair in a single parse.
type Group struct {
	Lead    [2]byte
	Triples []Triple
}

// GroupEntries splits a bytewise-sorted token.Entry slice into Big5 groups
// (by leading pair) and a pass-through slice of Latin entries. Because the
// input is already sorted primarily by leading pair, entries sharing a
// leading pair are contiguous and a single linear pass suffices.
func GroupEntries(entries []token.Entry) (groups []Group, latin []token.Entry) {
	for _, e := range entries {
		if isBig5Shaped(e.Token) {
			lead := [2]byte{e.Token[0], e.Token[1]}
			trail := [2]byte{e.Token[2], e.Token[3]}
			triple := Triple{Trail: trail, Freq: Clamp(e.Freq)}

			if n := len(groups); n > 0 && groups[n-1].Lead == lead {
				groups[n-1].Triples = append(groups[n-1].Triples, triple)
			} else {
				groups = append(groups, Group{Lead: lead, Triples: []Triple{triple}})
			}
			continue
		}
		latin = append(latin, e)
	}
	return groups, latin
}

func isBig5Shaped(tok []byte) bool {
	return len(tok) == 4 && tok[0] > 0xA0
}

// EncodeKey returns the on-disk key for a Big5 group: the leading pair
// followed by a single NUL byte.
func EncodeKey(lead [2]byte) []byte {
	return []byte{lead[0], lead[1], 0x00}
}

// EncodeValue packs delim and triples into a query-form value: delim(4) ||
// (trail(2) || freq(1))+.
func EncodeValue(delim [4]byte, triples []Triple) []byte {
	buf := make([]byte, DelimLen+TripleLen*len(triples))
	copy(buf[:DelimLen], delim[:])
	for i, t := range triples {
		off := DelimLen + TripleLen*i
		buf[off] = t.Trail[0]
		buf[off+1] = t.Trail[1]
		buf[off+2] = t.Freq
	}
	return buf
}

// EncodeIndexValue packs id, delim and triples into the stored (index-form)
// value: id(4) || delim(4) || triples.
func EncodeIndexValue(id uint32, delim [4]byte, triples []Triple) []byte {
	buf := make([]byte, IDLen+DelimLen+TripleLen*len(triples))
	binary.BigEndian.PutUint32(buf[:IDLen], id)
	copy(buf[IDLen:], EncodeValue(delim, triples))
	return buf
}

// EncodeLatinValue packs the 7-byte Latin shape: id(4) || "  " || freq(1).
// There is no delim in this shape: a Latin key carries exactly one
// document occurrence per record, so there is nothing for a delim to
// separate the way it separates a Big5 group's multiple triples.
func EncodeLatinValue(id uint32, freq byte) []byte {
	buf := make([]byte, LatinValueLen)
	binary.BigEndian.PutUint32(buf[:IDLen], id)
	buf[IDLen] = LatinSuffix[0]
	buf[IDLen+1] = LatinSuffix[1]
	buf[IDLen+2] = freq
	return buf
}

// DecodeIndexValue unpacks a stored Big5 value into its id, delim and
// triples.
func DecodeIndexValue(buf []byte) (id uint32, delim [4]byte, triples []Triple, err error) {
	if len(buf) < IDLen+DelimLen {
		return 0, delim, nil, ErrShortValue
	}
	id = binary.BigEndian.Uint32(buf[:IDLen])
	copy(delim[:], buf[IDLen:IDLen+DelimLen])

	rest := buf[IDLen+DelimLen:]
	if len(rest)%TripleLen != 0 {
		return 0, delim, nil, ErrMisaligned
	}
	triples = make([]Triple, len(rest)/TripleLen)
	for i := range triples {
		off := i * TripleLen
		triples[i] = Triple{Trail: [2]byte{rest[off], rest[off+1]}, Freq: rest[off+2]}
	}
	return id, delim, triples, nil
}

// DecodeLatinValue unpacks a stored Latin value into its id and frequency.
func DecodeLatinValue(buf []byte) (id uint32, freq byte, err error) {
	if len(buf) < LatinValueLen {
		return 0, 0, ErrShortValue
	}
	id = binary.BigEndian.Uint32(buf[:IDLen])
	freq = buf[IDLen+2]
	return id, freq, nil
}

// FindTriple searches the trailing-pair/frequency triples embedded in a
// stored Big5 value starting at absolute byte offset 8 (right after the
// id+delim prefix), looking for vk. It reports the matching frequency and
// whether it was found. This is the query evaluator's "full bigram query"
// path, as opposed to the leading-pair-only marker lookup.
func FindTriple(stored []byte, vk [2]byte) (freq byte, found bool) {
	const tripleStart = IDLen + DelimLen
	for off := tripleStart; off+TripleLen <= len(stored); off += TripleLen {
		if stored[off] == vk[0] && stored[off+1] == vk[1] {
			return stored[off+2], true
		}
	}
	return 0, false
}
