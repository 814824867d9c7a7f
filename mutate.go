package hashindex

// rshiftRunLen returns the length (in buckets) of the contiguous occupied
// run starting at bucket start, stopping at the first EMPTY bucket or the table end.
// It returns -1 if the run reaches the table end without finding an EMPTY
// bucket (the wrap-around case the caller must handle specially).
func (idx *Index) rshiftRunLen(start uint32) int {
	v := idx.view()
	i := start
	for i < idx.numBuckets {
		if v.isEmpty(i) {
			return int(i - start)
		}
		i++
	}
	return -1
}

// lshiftRunLen returns the length of the contiguous run starting at `start`
// whose keys would all prefer to sit one slot earlier (non-zero
// displacement), stopping at the first EMPTY bucket or a bucket already at
// its home (displacement 0). Returns -1 if the run reaches the table end
// without stopping (the wrap-around delete case).
func (idx *Index) lshiftRunLen(start uint32) int {
	v := idx.view()
	i := start
	for i < idx.numBuckets {
		if v.isEmpty(i) || distance(i, idx.bucketHome(i), idx.numBuckets) == 0 {
			return int(i - start)
		}
		i++
	}
	return -1
}

// Set inserts or updates key with value. It reports an error only if key or
// value do not match the index's fixed widths; a resize triggered by growth
// never fails in this implementation (Go's allocator panics on true
// exhaustion rather than returning nil, unlike the original's malloc-based
// failure path).
func (idx *Index) Set(key, value []byte) error {
	if len(key) != idx.keySize {
		return ErrKeyWrongSize
	}
	if len(value) != idx.valueSize {
		return ErrValueWrongSize
	}

	bucket, found, skipHint := idx.lookup(key)
	if found {
		copy(idx.view().value(bucket), value)
		return nil
	}

	// Grow before this insertion completes if adding it would breach the
	// upper limit (equivalently: pre-insert count already at the limit).
	if idx.numEntries >= idx.upperLim {
		idx.resize(growSize(idx.numBuckets))
		skipHint = 0
	}

	v := idx.view()
	offset := skipHint
	i := (idx.home(key) + skipHint) % idx.numBuckets

	for !v.isEmpty(i) && offset <= distance(i, idx.bucketHome(i), idx.numBuckets) {
		offset++
		i = (i + 1) % idx.numBuckets
	}

	if v.isEmpty(i) {
		v.writeSlot(i, key, value)
		idx.numEntries++
		return nil
	}

	// collision: make room
	runLen := idx.rshiftRunLen(i)
	if runLen >= 0 {
		if runLen > 0 {
			v.moveRange(i+1, i, uint32(runLen))
		}
		v.writeSlot(i, key, value)
		idx.numEntries++
		return nil
	}

	// end-of-table case: the occupied run runs off the end of the table.
	// Rescue the last bucket, shift the tail right, insert, then rotate the
	// rescued bucket into slot 0 and shift its run right by one.
	last := idx.numBuckets - 1
	copy(idx.tmp, idx.buckets[v.offset(last):v.offset(last)+v.bucketSize])

	if i < last {
		v.moveRange(i+1, i, last-i)
	}
	v.writeSlot(i, key, value)

	head := uint32(0)
	headRunLen := idx.rshiftRunLen(head)
	if headRunLen > 0 {
		v.moveRange(head+1, head, uint32(headRunLen))
	}
	copy(idx.buckets[v.offset(head):v.offset(head)+v.bucketSize], idx.tmp)

	idx.numEntries++
	return nil
}

// Delete removes key if present. It is idempotent: deleting an absent key
// is a successful no-op, matching the original's "true also when key
// absent" contract.
func (idx *Index) Delete(key []byte) error {
	if len(key) != idx.keySize {
		return ErrKeyWrongSize
	}

	bucket, found, _ := idx.lookup(key)
	if !found {
		return nil
	}

	v := idx.view()

	runLen := -1
	if bucket+1 < idx.numBuckets {
		runLen = idx.lshiftRunLen(bucket + 1)
	}

	if runLen >= 0 {
		if runLen > 0 {
			v.moveRange(bucket, bucket+1, uint32(runLen))
		}
		v.markEmpty(bucket + uint32(runLen))
	} else {
		// wrap-around case: shift everything after bucket to the table end
		// left by one, then decide whether bucket 0 needs to rotate into
		// the vacated last slot.
		last := idx.numBuckets - 1
		v.moveRange(bucket, bucket+1, last-bucket)

		if v.isEmpty(0) || idx.bucketHome(0) == 0 {
			// bucket 0 is empty or already at its home (displacement 0), so
			// the chain ends at the table end and nothing rotates.
			v.markEmpty(last)
		} else {
			v.copyBucket(last, 0)
			headRunLen := idx.lshiftRunLen(1)
			switch {
			case headRunLen == 0:
				v.markEmpty(0)
			case headRunLen > 0:
				v.moveRange(0, 1, uint32(headRunLen))
				v.markEmpty(uint32(headRunLen))
			default:
				// No EMPTY or displacement-0 bucket between 1 and the table
				// end: the table is packed solid with no rotation stopping
				// point. The original C passes this -1 straight into memmove
				// as a size; guard against the equivalent Go out-of-bounds
				// slice instead of inheriting it silently.
				panic("hashindex: delete: no stopping point found while rotating the wrapped chain head")
			}
		}
	}

	idx.numEntries--
	if idx.numEntries < idx.lowerLim {
		idx.resize(shrinkSize(idx.numBuckets))
	}
	return nil
}

// resize reallocates the bucket buffer at the target ladder capacity and
// reinserts every occupied bucket via Set, exactly mirroring the original's
// rebuild-by-reinsertion resize. It never fails in Go: growth capacity is
// bounded by the ladder, and allocation failure is a panic, not an error
// return, consistent with how the rest of this package treats Go's memory
// model.
func (idx *Index) resize(targetCapacity uint32) {
	numBuckets := fitSize(targetCapacity)
	bucketSize := idx.bucketSize()

	next := &Index{
		keySize:    idx.keySize,
		valueSize:  idx.valueSize,
		numBuckets: numBuckets,
		buckets:    make([]byte, uint64(numBuckets)*uint64(bucketSize)),
		tmp:        make([]byte, bucketSize),
	}
	fillEmpty(next.buckets, idx.keySize, idx.valueSize, numBuckets)
	next.recomputeLimits()

	v := idx.view()
	for i := uint32(0); i < idx.numBuckets; i++ {
		if v.isOccupied(i) {
			// next.Set never fails for width reasons since widths match.
			_ = next.Set(v.key(i), v.value(i))
		}
	}

	idx.numBuckets = next.numBuckets
	idx.buckets = next.buckets
	idx.tmp = next.tmp
	idx.lowerLim = next.lowerLim
	idx.upperLim = next.upperLim
	// numEntries is unchanged: resize never adds or drops live keys.
}

// Compact rewrites any DELETED sentinels left over from an older on-disk
// format as EMPTY. It is safe to call at any time but only useful right
// after loading a file that predates the shift-based delete path, since
// Set/Delete in this implementation never produce DELETED themselves.
func (idx *Index) Compact() {
	v := idx.view()
	for i := uint32(0); i < idx.numBuckets; i++ {
		if v.isDeleted(i) {
			v.markEmpty(i)
		}
	}
}
