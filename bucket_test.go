package hashindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotViewEmptyAndWrite(t *testing.T) {
	const keySize, valueSize = 4, 3
	buf := make([]byte, 2*(keySize+valueSize))
	fillEmpty(buf, keySize, valueSize, 2)

	v := newSlotView(buf, keySize, valueSize)
	assert.True(t, v.isEmpty(0))
	assert.True(t, v.isEmpty(1))
	assert.False(t, v.isOccupied(0))

	key := []byte{1, 2, 3, 4}
	val := []byte{9, 9, 9}
	v.writeSlot(0, key, val)

	assert.False(t, v.isEmpty(0))
	assert.True(t, v.isOccupied(0))
	assert.True(t, v.matchesKey(0, key))
	assert.False(t, v.matchesKey(0, []byte{0, 0, 0, 0}))
	assert.Equal(t, val, v.value(0))

	v.markEmpty(0)
	assert.True(t, v.isEmpty(0))
}

// "Occupied" in the name is in the probing sense: a DELETED bucket is not
// EMPTY, so it does not end a probe, and it never matches a key. It holds
// no live key, so isOccupied reports false.
func TestSlotViewDeletedTreatedAsOccupiedNonMatching(t *testing.T) {
	const keySize, valueSize = 4, 4
	buf := make([]byte, keySize+valueSize)
	v := newSlotView(buf, keySize, valueSize)
	v.setSentinel(0, sentinelDeleted)

	assert.True(t, v.isDeleted(0))
	assert.False(t, v.isEmpty(0))
	assert.False(t, v.isOccupied(0))
	assert.False(t, v.matchesKey(0, []byte{0, 0, 0, 0}))
}

func TestMoveRangeOverlapping(t *testing.T) {
	const keySize, valueSize = 1, 0
	buf := []byte{1, 2, 3, 4, 5}
	v := newSlotView(buf, keySize, valueSize)
	v.moveRange(1, 0, 4)
	assert.Equal(t, []byte{1, 1, 2, 3, 4}, buf)
}
