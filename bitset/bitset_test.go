package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddContains(t *testing.T) {
	s := New()
	assert.False(t, s.Contains(42))

	s.Add(42)
	assert.True(t, s.Contains(42))
	assert.Equal(t, 1, s.Len())

	s.Add(42)
	assert.Equal(t, 1, s.Len(), "re-adding is a no-op")
}

func TestSetIDsAscending(t *testing.T) {
	s := New()
	for _, id := range []uint32{500, 3, 70000, 1, 70001} {
		s.Add(id)
	}

	ids := s.IDs()
	require.Len(t, ids, 5)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestSetEncodeDecodeRoundTrip(t *testing.T) {
	s := New()
	for _, id := range []uint32{1, 2, 100000, 4294967295} {
		s.Add(id)
	}

	buf := s.Encode()
	assert.Len(t, buf, 4*4)

	decoded, err := DecodeSet(buf)
	require.NoError(t, err)
	assert.Equal(t, s.IDs(), decoded.IDs())
}

func TestDecodeSetRejectsMisalignedLength(t *testing.T) {
	_, err := DecodeSet([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSetConvertsToBitmapContainer(t *testing.T) {
	s := New()
	for i := 0; i < conversionThreshold+10; i++ {
		s.Add(uint32(i))
	}

	assert.Equal(t, conversionThreshold+10, s.Len())
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(uint32(conversionThreshold+9)))
	assert.False(t, s.Contains(uint32(conversionThreshold+20)))

	bucket := s.buckets[0]
	_, isBitmap := bucket.(*bitmapContainer)
	assert.True(t, isBitmap)
}

func TestEmptySetEncode(t *testing.T) {
	s := New()
	assert.Empty(t, s.Encode())
}
