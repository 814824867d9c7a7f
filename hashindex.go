// Package hashindex implements a persistent, on-disk hash index: an
// open-addressed, Robin-Hood-style linear-probing hash table with in-place
// deletion via backward shift, used as a chunk-metadata map for a
// deduplicating backup system. Keys and values are fixed-width opaque byte
// strings; the index treats both as raw bytes and never interprets them.
//
// An Index is not safe for concurrent use. Callers that need concurrency
// must serialize all mutating calls and must not call Next while a mutation
// is outstanding; a cursor returned by Next is invalidated by any
// subsequent Set, Delete, or resize on the same Index.
package hashindex

const (
	// MinKeySize and MaxKeySize bound key_size, inclusive.
	MinKeySize = 1
	MaxKeySize = 127
	// MinValueSize and MaxValueSize bound value_size, inclusive.
	MinValueSize = 0
	MaxValueSize = 127

	headerSize = 18
	magic      = "BORG_IDX"
)

// Index is a flat open-addressed hash table mapping fixed-width keys to
// fixed-width values, held entirely in one contiguous byte buffer. The zero
// value is not usable; construct one with New or Open.
type Index struct {
	keySize   int
	valueSize int

	numBuckets uint32
	numEntries uint32

	buckets []byte
	tmp     []byte // scratch bucket-width buffer used by the wrap-around insert

	lowerLim uint32
	upperLim uint32
}

func validateWidths(keySize, valueSize int) error {
	if keySize < MinKeySize || keySize > MaxKeySize {
		return ErrKeySizeOutOfRange
	}
	if valueSize < MinValueSize || valueSize > MaxValueSize {
		return ErrValueSizeOutOfRange
	}
	return nil
}

// New creates an empty Index with capacity for at least `capacity` entries
// (snapped upward to the size ladder) and the given fixed key/value widths.
func New(capacity int, keySize, valueSize int) (*Index, error) {
	if err := validateWidths(keySize, valueSize); err != nil {
		return nil, err
	}
	if capacity < 0 {
		capacity = 0
	}

	numBuckets := fitSize(uint32(capacity))
	bucketSize := keySize + valueSize

	idx := &Index{
		keySize:    keySize,
		valueSize:  valueSize,
		numBuckets: numBuckets,
		buckets:    make([]byte, uint64(numBuckets)*uint64(bucketSize)),
		tmp:        make([]byte, bucketSize),
	}
	fillEmpty(idx.buckets, keySize, valueSize, numBuckets)
	idx.recomputeLimits()

	return idx, nil
}

func (idx *Index) recomputeLimits() {
	idx.lowerLim = lowerLimit(idx.numBuckets)
	idx.upperLim = upperLimit(idx.numBuckets)
}

func (idx *Index) bucketSize() int {
	return idx.keySize + idx.valueSize
}

func (idx *Index) view() slotView {
	return newSlotView(idx.buckets, idx.keySize, idx.valueSize)
}

// Len returns the number of occupied buckets (num_entries).
func (idx *Index) Len() int {
	return int(idx.numEntries)
}

// KeySize returns the fixed key width in bytes.
func (idx *Index) KeySize() int {
	return idx.keySize
}

// ValueSize returns the fixed value width in bytes.
func (idx *Index) ValueSize() int {
	return idx.valueSize
}

// NumBuckets returns the current table capacity.
func (idx *Index) NumBuckets() int {
	return int(idx.numBuckets)
}

// Size returns the on-disk byte size this index would occupy if written:
// the header plus the full bucket blob.
func (idx *Index) Size() int64 {
	return int64(headerSize) + int64(idx.numBuckets)*int64(idx.bucketSize())
}

// Get returns a copy of the value stored for key, or ok=false if key is
// absent. A miss is an expected outcome, not an error. Get panics if key
// does not have exactly KeySize() bytes, since that is a caller contract
// violation rather than an expected runtime condition.
func (idx *Index) Get(key []byte) (value []byte, ok bool) {
	if len(key) != idx.keySize {
		panic(ErrKeyWrongSize)
	}
	i, found, _ := idx.lookup(key)
	if !found {
		return nil, false
	}
	v := idx.view().value(i)
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}
