package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryMap(ts *TokenSet) map[string]int {
	return ts.Map()
}

func TestParseBigramPair(t *testing.T) {
	// Two Big5 characters forming one bigram: lead 0xA4 0xA4, trail 0xA4 0xE5.
	buf := []byte{0xA4, 0xA4, 0xA4, 0xE5}

	ts := Parse(buf, false)
	got := entryMap(ts)

	assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0xA4, 0xE5})])
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0x21, 0x21})])
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xE5, 0x21, 0x21})])
	assert.Len(t, got, 3)
}

func TestParseBigramPairQueryMode(t *testing.T) {
	buf := []byte{0xA4, 0xA4, 0xA4, 0xE5}

	ts := Parse(buf, true)
	got := entryMap(ts)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0xA4, 0xE5})])
}

func TestParseThreeCharacterChain(t *testing.T) {
	// Three chained characters: X=A4A4, Y=A4E5, Z=A5C1 (all trail bytes > 0xA3).
	buf := []byte{0xA4, 0xA4, 0xA4, 0xE5, 0xA5, 0xC1}

	ts := Parse(buf, false)
	got := entryMap(ts)

	assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0xA4, 0xE5})])
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xE5, 0xA5, 0xC1})])
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0x21, 0x21})])
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xE5, 0x21, 0x21})])
	assert.Equal(t, 1, got[string([]byte{0xA5, 0xC1, 0x21, 0x21})])
	assert.Len(t, got, 5)
}

func TestParseLoneCharacterAlwaysEmitted(t *testing.T) {
	// A single Big5 character with no valid trailing pair (0xA1 <= 0xA3, so
	// it doesn't continue the chain) is emitted regardless of mode.
	buf := []byte{0xA4, 0xA4, 0xA1, 0x40}

	for _, query := range []bool{false, true} {
		ts := Parse(buf, query)
		got := entryMap(ts)
		assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0x21, 0x21})], "query=%v", query)
	}
}

func TestParseLatinWord(t *testing.T) {
	buf := []byte("Hello World 1 ab")

	ts := Parse(buf, false)
	got := entryMap(ts)

	assert.Equal(t, 1, got["hello"])
	assert.Equal(t, 1, got["world"])
	assert.Equal(t, 1, got["ab"])
	// Single-character runs ("1") are dropped.
	_, has1 := got["1"]
	assert.False(t, has1)
}

func TestParseLatinWordTruncation(t *testing.T) {
	long := make([]byte, MaxKeyLen+10)
	for i := range long {
		long[i] = 'a'
	}

	ts := Parse(long, false)
	got := ts.Map()

	require.Len(t, got, 1)
	for k := range got {
		assert.Len(t, k, MaxKeyLen)
	}
}

func TestParseMixedContent(t *testing.T) {
	buf := append([]byte("go"), 0xA4, 0xA4, 0xA4, 0xE5)
	buf = append(buf, []byte("lang")...)

	ts := Parse(buf, false)
	got := ts.Map()

	assert.Equal(t, 1, got["go"])
	assert.Equal(t, 1, got["lang"])
	assert.Equal(t, 1, got[string([]byte{0xA4, 0xA4, 0xA4, 0xE5})])
}

func TestParseStopsAtNUL(t *testing.T) {
	buf := []byte{'a', 'b', 0x00, 'c', 'd'}

	ts := Parse(buf, false)
	got := ts.Map()

	assert.Equal(t, 1, got["ab"])
	_, hasCD := got["cd"]
	assert.False(t, hasCD)
}

func TestEntriesAreBytewiseSorted(t *testing.T) {
	buf := append([]byte("zebra apple"), 0xA4, 0xA4, 0xA1, 0x40)

	ts := Parse(buf, false)
	entries := ts.Entries()

	require.True(t, len(entries) >= 2)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, string(entries[i-1].Token), string(entries[i].Token))
	}
}

func TestWithQuerySentinel(t *testing.T) {
	out := WithQuerySentinel([]byte("ab"))
	assert.Equal(t, []byte{'a', 'b', 0xA4, 0x3F}, out)

	ts := Parse(out, true)
	got := ts.Map()
	assert.Equal(t, 1, got[string([]byte{0xA4, 0x3F, 0x21, 0x21})])
}
