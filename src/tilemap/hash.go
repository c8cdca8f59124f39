package tilemap

// Hash32 is a murmur style finalizer; stable across versions and platforms.
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

func Hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return Hash32(h)
}

// Variant picks one of n sprite variants for a tile.  The same tile always
// gets the same variant, so tiles do not flicker when they re-enter view.
func Variant(seed uint32, c Coord, n int) int {
	if n <= 1 {
		return 0
	}
	return int(Hash2(seed, int32(c.X), int32(c.Y)) % uint32(n))
}
