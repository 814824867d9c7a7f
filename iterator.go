package hashindex

// Cursor addresses a single occupied bucket for forward iteration. The zero
// Cursor denotes "before the first bucket"; pass it to Index.Next to get
// the first occupied bucket. A Cursor returned by Next is invalidated by
// any subsequent mutating call (Set, Delete, or a resize either triggers)
// on the same Index — continuing to use it afterwards is undefined,
// exactly as the original's pointer-based cursor into the bucket buffer.
type Cursor struct {
	next  uint32
	valid bool
}

// Next returns the next occupied bucket's key and value after cur, and an
// updated cursor to continue from. Pass the zero Cursor to start iteration.
// ok is false once iteration is exhausted; the returned Cursor should then
// be discarded.
func (idx *Index) Next(cur Cursor) (key, value []byte, next Cursor, ok bool) {
	v := idx.view()
	i := uint32(0)
	if cur.valid {
		i = cur.next
	}

	for i < idx.numBuckets {
		if v.isOccupied(i) {
			return v.key(i), v.value(i), Cursor{next: i + 1, valid: true}, true
		}
		i++
	}

	return nil, nil, Cursor{}, false
}

// Each is a convenience wrapper around Next for callers that don't need a
// cursor: it calls fn for every occupied bucket in bucket order, stopping
// early if fn returns false. fn must not mutate idx.
func (idx *Index) Each(fn func(key, value []byte) bool) {
	cur := Cursor{}
	for {
		k, val, next, ok := idx.Next(cur)
		if !ok {
			return
		}
		if !fn(k, val) {
			return
		}
		cur = next
	}
}
