package hashindex

import "encoding/binary"

// Sentinel values occupy the first 4 bytes of a bucket's value region and
// mark it as unoccupied. They are stored little-endian, in place, so a
// bucket can be tested without decoding the rest of the slot.
const (
	sentinelEmpty   uint32 = 0xFFFFFFFF
	sentinelDeleted uint32 = 0xFFFFFFFE
)

// slotView centralizes addressing into the flat bucket buffer so the probe,
// mutation and persistence code never computes a byte offset by hand. It
// owns no memory; it is a thin typed window over Index.buckets.
type slotView struct {
	buf        []byte
	keySize    int
	valueSize  int
	bucketSize int
}

func newSlotView(buf []byte, keySize, valueSize int) slotView {
	return slotView{buf: buf, keySize: keySize, valueSize: valueSize, bucketSize: keySize + valueSize}
}

//go:inline
func (s slotView) offset(i uint32) int {
	return int(i) * s.bucketSize
}

// key returns the key region of bucket i. The returned slice aliases the
// underlying buffer and must not be retained across a mutation.
func (s slotView) key(i uint32) []byte {
	off := s.offset(i)
	return s.buf[off : off+s.keySize]
}

// value returns the value region of bucket i.
func (s slotView) value(i uint32) []byte {
	off := s.offset(i) + s.keySize
	return s.buf[off : off+s.valueSize]
}

func (s slotView) sentinel(i uint32) uint32 {
	off := s.offset(i) + s.keySize
	return binary.LittleEndian.Uint32(s.buf[off : off+4])
}

func (s slotView) setSentinel(i uint32, v uint32) {
	off := s.offset(i) + s.keySize
	binary.LittleEndian.PutUint32(s.buf[off:off+4], v)
}

func (s slotView) isEmpty(i uint32) bool {
	return s.sentinel(i) == sentinelEmpty
}

func (s slotView) isDeleted(i uint32) bool {
	return s.sentinel(i) == sentinelDeleted
}

// isOccupied reports whether bucket i holds a live key, i.e. is neither
// EMPTY nor DELETED. DELETED buckets only ever appear in files written by
// an older format and are never produced by Set/Delete themselves.
func (s slotView) isOccupied(i uint32) bool {
	sv := s.sentinel(i)
	return sv != sentinelEmpty && sv != sentinelDeleted
}

func (s slotView) matchesKey(i uint32, key []byte) bool {
	if s.isEmpty(i) || s.isDeleted(i) {
		return false
	}
	k := s.key(i)
	for j := range k {
		if k[j] != key[j] {
			return false
		}
	}
	return true
}

// writeSlot stores key and value at bucket i. value's length must be
// valueSize; its first 4 bytes overwrite whatever sentinel was present.
func (s slotView) writeSlot(i uint32, key, value []byte) {
	copy(s.key(i), key)
	copy(s.value(i), value)
}

func (s slotView) markEmpty(i uint32) {
	s.setSentinel(i, sentinelEmpty)
}

// copyBucket copies the raw bucket bytes of src onto dst, sentinel and all.
func (s slotView) copyBucket(dst, src uint32) {
	copy(s.buf[s.offset(dst):s.offset(dst)+s.bucketSize], s.buf[s.offset(src):s.offset(src)+s.bucketSize])
}

// moveRange shifts the half-open bucket range [from, from+count) so it
// starts at `to` instead, via a single memmove-equivalent copy. Ranges may
// overlap; Go's copy handles that correctly regardless of direction.
func (s slotView) moveRange(to, from, count uint32) {
	if count == 0 {
		return
	}
	dstOff := s.offset(to)
	srcOff := s.offset(from)
	n := int(count) * s.bucketSize
	copy(s.buf[dstOff:dstOff+n], s.buf[srcOff:srcOff+n])
}

func fillEmpty(buf []byte, keySize, valueSize int, numBuckets uint32) {
	sv := newSlotView(buf, keySize, valueSize)
	for i := uint32(0); i < numBuckets; i++ {
		sv.markEmpty(i)
	}
}
