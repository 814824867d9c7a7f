package hashindex

import "encoding/binary"

// hashKey derives the hash of a key as the little-endian u32 read from its
// first 4 bytes. Keys are assumed to already be uniformly distributed
// (callers supply cryptographic content hashes); no further mixing is done.
// New accepts any key size >= 1 and does not require 4 bytes: a key
// shorter than 4 bytes is hashed as its bytes zero-padded to 4, so the
// common case of 32-byte content hashes reads the same little-endian prefix
// as the original while shorter widths stay safe.
func hashKey(key []byte) uint32 {
	if len(key) >= 4 {
		return binary.LittleEndian.Uint32(key[:4])
	}
	var b [4]byte
	copy(b[:], key)
	return binary.LittleEndian.Uint32(b[:])
}

// home is the bucket a key would ideally occupy: hash(key) mod numBuckets.
func home(h uint32, numBuckets uint32) uint32 {
	return h % numBuckets
}

func (idx *Index) home(key []byte) uint32 {
	return home(hashKey(key), idx.numBuckets)
}

// distance is the Robin-Hood displacement of a bucket at position i whose
// stored key's home is h: the forward probe offset from h to i, wrapping
// around the table end.
func distance(i, h, numBuckets uint32) uint32 {
	if i < h {
		return i - h + numBuckets
	}
	return i - h
}

// bucketHome returns home(key-stored-at-bucket-i, numBuckets); a helper for
// computing a stored key's displacement without re-deriving its key slice
// at each call site.
func (idx *Index) bucketHome(i uint32) uint32 {
	return idx.home(idx.view().key(i))
}

// lookup searches for key starting at its home bucket, probing forward with
// wraparound. It returns the bucket index and true on a hit. On a miss it
// returns the bucket index where probing stopped (informational only) and
// false, plus a skip hint: Set can resume probing from skipHint instead of
// re-walking the whole chain from the start.
func (idx *Index) lookup(key []byte) (bucket uint32, found bool, skipHint uint32) {
	v := idx.view()
	start := idx.home(key)
	i := start
	period := 0

	for offset := uint32(0); ; offset++ {
		if v.isEmpty(i) {
			return i, false, computeSkipHint(offset)
		}
		if v.matchesKey(i, key) {
			return i, true, 0
		}

		period++
		if period == 64 {
			period = 0
			if offset > distance(i, idx.bucketHome(i), idx.numBuckets) {
				return i, false, computeSkipHint(offset)
			}
		}

		i = (i + 1) % idx.numBuckets
		if i == start {
			return i, false, computeSkipHint(offset)
		}
	}
}

// computeSkipHint compensates for the early-miss period: Set re-examines
// the last 64 buckets of a probe rather than trusting the early-exit blindly.
func computeSkipHint(offset uint32) uint32 {
	if offset < 64 {
		return 0
	}
	return offset - 64
}
