package hashindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitDefaults checks the capacity, size, and width fields a freshly
// constructed Index reports before any entry is inserted.
func TestInitDefaults(t *testing.T) {
	idx := mustNew(t, 0, 32, 12)
	assert.Equal(t, 0, idx.Len())
	assert.EqualValues(t, 1031, idx.NumBuckets())
	assert.EqualValues(t, 45382, idx.Size())
	assert.Equal(t, 32, idx.KeySize())
	assert.Equal(t, 12, idx.ValueSize())
}

func TestLenMatchesInsertsMinusDeletes(t *testing.T) {
	idx := mustNew(t, 0, 20, 8)
	inserted := map[uint32]bool{}

	for i := uint32(0); i < 3000; i++ {
		k := make([]byte, 20)
		k[0] = byte(i)
		k[1] = byte(i >> 8)
		k[2] = byte(i >> 16)
		require.NoError(t, idx.Set(k, make([]byte, 8)))
		inserted[i] = true
	}
	for i := uint32(0); i < 1200; i++ {
		k := make([]byte, 20)
		k[0] = byte(i)
		k[1] = byte(i >> 8)
		k[2] = byte(i >> 16)
		require.NoError(t, idx.Delete(k))
		delete(inserted, i)
	}

	assert.Equal(t, len(inserted), idx.Len())
}

func TestValueSizeZeroIsAllowed(t *testing.T) {
	idx := mustNew(t, 0, 16, 0)
	key := make([]byte, 16)
	key[0] = 5

	require.NoError(t, idx.Set(key, nil))
	got, ok := idx.Get(key)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestGetPanicsOnWrongKeySize(t *testing.T) {
	idx := mustNew(t, 0, 32, 12)
	assert.Panics(t, func() {
		idx.Get(make([]byte, 10))
	})
}
