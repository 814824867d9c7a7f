package hashindex

// sizeLadder is the fixed ascending sequence of permissible num_buckets
// capacities, generated (per the original implementation's hash_sizes.py)
// to start with fast 2x growth and slow down to roughly 1.1x at the upper
// end, avoiding huge single-step reallocations. Values are bit-for-bit the
// ones used by the on-disk format's writers, so a loaded index must only
// ever land on one of these.
var sizeLadder = [...]uint32{
	1031, 2053, 4099, 8209, 16411, 32771, 65537, 131101, 262147, 445649,
	757607, 1287917, 2189459, 3065243, 4291319, 6007867, 8410991,
	11775359, 16485527, 23079703, 27695653, 33234787, 39881729, 47858071,
	57429683, 68915617, 82698751, 99238507, 119086189, 144378011, 157223263,
	173476439, 190253911, 209915011, 230493629, 253169431, 278728861,
	306647623, 337318939, 370742809, 408229973, 449387209, 493428073,
	543105119, 596976533, 657794869, 722676499, 795815791, 874066969,
	962279771, 1057701643, 1164002657, 1280003147, 1407800297, 1548442699,
	1703765389, 1873768367, 2062383853,
}

const (
	hashMinLoad = 0.25
	hashMaxLoad = 0.99
)

// sizeIdx returns the index into sizeLadder of the smallest entry >= size,
// clamped to the last entry if size exceeds the ladder's top.
func sizeIdx(size uint32) int {
	for i, entry := range sizeLadder {
		if entry >= size {
			return i
		}
	}
	return len(sizeLadder) - 1
}

// fitSize snaps a requested capacity up to the nearest ladder entry.
func fitSize(size uint32) uint32 {
	return sizeLadder[sizeIdx(size)]
}

// growSize returns the next larger ladder entry than current, clamped to
// the ladder's top.
func growSize(current uint32) uint32 {
	i := sizeIdx(current) + 1
	if i >= len(sizeLadder) {
		return sizeLadder[len(sizeLadder)-1]
	}
	return sizeLadder[i]
}

// shrinkSize returns the next smaller ladder entry than current, clamped to
// the ladder's bottom.
func shrinkSize(current uint32) uint32 {
	i := sizeIdx(current) - 1
	if i < 0 {
		return sizeLadder[0]
	}
	return sizeLadder[i]
}

// lowerLimit is the entry count below which a resize down is triggered.
func lowerLimit(numBuckets uint32) uint32 {
	if numBuckets <= sizeLadder[0] {
		return 0
	}
	return uint32(float64(numBuckets) * hashMinLoad)
}

// upperLimit is the entry count above which a resize up is triggered.
func upperLimit(numBuckets uint32) uint32 {
	if numBuckets >= sizeLadder[len(sizeLadder)-1] {
		return numBuckets
	}
	return uint32(float64(numBuckets) * hashMaxLoad)
}
