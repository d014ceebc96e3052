package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salvatore-campagna/hanzidx/token"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, byte(5), Clamp(5))
	assert.Equal(t, byte(MaxFreq), Clamp(500))
	assert.Equal(t, byte(MaxFreq), Clamp(MaxFreq))
	assert.Equal(t, byte(0), Clamp(-1))
}

func TestGroupEntriesGroupsContiguousLeadPairs(t *testing.T) {
	entries := []token.Entry{
		{Token: []byte{0xA4, 0xA4, 0x21, 0x21}, Freq: 1},
		{Token: []byte{0xA4, 0xA4, 0xA4, 0xE5}, Freq: 1},
		{Token: []byte{0xA4, 0xE5, 0x21, 0x21}, Freq: 1},
		{Token: []byte("golang"), Freq: 2},
	}

	groups, latin := GroupEntries(entries)

	require.Len(t, groups, 2)
	assert.Equal(t, [2]byte{0xA4, 0xA4}, groups[0].Lead)
	assert.Len(t, groups[0].Triples, 2)
	assert.Equal(t, [2]byte{0xA4, 0xE5}, groups[1].Lead)
	assert.Len(t, groups[1].Triples, 1)

	require.Len(t, latin, 1)
	assert.Equal(t, "golang", string(latin[0].Token))
}

func TestEncodeDecodeIndexValueRoundTrip(t *testing.T) {
	delim := [4]byte{' ', ' ', ' ', ' '}
	triples := []Triple{
		{Trail: [2]byte{0xA4, 0xE5}, Freq: 3},
		{Trail: [2]byte{0x21, 0x21}, Freq: 1},
	}

	buf := EncodeIndexValue(42, delim, triples)
	id, gotDelim, gotTriples, err := DecodeIndexValue(buf)

	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)
	assert.Equal(t, delim, gotDelim)
	assert.Equal(t, triples, gotTriples)
}

func TestDecodeIndexValueShort(t *testing.T) {
	_, _, _, err := DecodeIndexValue([]byte{0, 0, 0, 1, ' ', ' '})
	assert.ErrorIs(t, err, ErrShortValue)
}

func TestDecodeIndexValueMisaligned(t *testing.T) {
	buf := EncodeIndexValue(1, [4]byte{' ', ' ', ' ', ' '}, []Triple{{Trail: [2]byte{0xA4, 0xA4}, Freq: 1}})
	_, _, _, err := DecodeIndexValue(buf[:len(buf)-1])
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestEncodeDecodeLatinValueRoundTrip(t *testing.T) {
	buf := EncodeLatinValue(7, 9)
	assert.Len(t, buf, LatinValueLen)

	id, freq, err := DecodeLatinValue(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), id)
	assert.Equal(t, byte(9), freq)
}

func TestFindTriple(t *testing.T) {
	delim := [4]byte{' ', ' ', ' ', ' '}
	triples := []Triple{
		{Trail: [2]byte{0xA4, 0xE5}, Freq: 3},
		{Trail: [2]byte{0x21, 0x21}, Freq: 1},
	}
	stored := EncodeIndexValue(1, delim, triples)

	freq, found := FindTriple(stored, [2]byte{0x21, 0x21})
	assert.True(t, found)
	assert.Equal(t, byte(1), freq)

	_, found = FindTriple(stored, [2]byte{0xFF, 0xFF})
	assert.False(t, found)
}

func TestEncodeKey(t *testing.T) {
	key := EncodeKey([2]byte{0xA4, 0xA4})
	assert.Equal(t, []byte{0xA4, 0xA4, 0x00}, key)
}
