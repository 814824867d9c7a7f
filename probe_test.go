package hashindex

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func keyWithHash(h uint32, rest ...byte) []byte {
	buf := make([]byte, 4+len(rest))
	binary.LittleEndian.PutUint32(buf[:4], h)
	copy(buf[4:], rest)
	return buf
}

func TestHashKeyReadsLittleEndianPrefix(t *testing.T) {
	k := keyWithHash(0x01020304, 0xAA, 0xBB, 0xCC, 0xDD)
	assert.Equal(t, uint32(0x01020304), hashKey(k))
}

func TestHashKeyShortKey(t *testing.T) {
	assert.Equal(t, uint32(0x000000FF), hashKey([]byte{0xFF}))
}

func TestDistanceWraps(t *testing.T) {
	const numBuckets = 10
	assert.Equal(t, uint32(0), distance(5, 5, numBuckets))
	assert.Equal(t, uint32(3), distance(8, 5, numBuckets))
	assert.Equal(t, uint32(7), distance(2, 5, numBuckets))
}

func TestLookupMissOnEmptyTable(t *testing.T) {
	idx, err := New(0, 32, 12)
	assert.NoError(t, err)

	key := make([]byte, 32)
	_, found, _ := idx.lookup(key)
	assert.False(t, found)
}

func TestLookupHitAfterSet(t *testing.T) {
	idx, err := New(0, 32, 12)
	assert.NoError(t, err)

	key := make([]byte, 32)
	key[0] = 7
	val := make([]byte, 12)
	val[0] = 42

	assert.NoError(t, idx.Set(key, val))
	bucket, found, _ := idx.lookup(key)
	assert.True(t, found)
	assert.Equal(t, val, idx.view().value(bucket))
}
