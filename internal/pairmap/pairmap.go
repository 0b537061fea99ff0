// Package pairmap implements the transition function's lookup table: a map
// keyed by an ordered pair of states (k1, k2) to an ordered pair of result
// states (v1, v2). Two interchangeable representations are provided, chosen
// at construction time by internal/protocol from the requested delta kind
// (the CLI's -d flag): a dense array (array) or a chained hash table (map).
package pairmap

import "github.com/cespare/xxhash/v2"

// Empty is the sentinel returned by Lookup on a miss: the all-ones value in
// the map's uint32 width, matching the urn package's EMPTY convention.
const Empty = ^uint32(0)

// PairMap is the shared interface implemented by both representations.
type PairMap interface {
	// Insert records k1,k2 -> v1,v2.
	Insert(k1, k2, v1, v2 uint32)
	// Lookup returns v1, v2, true for a hit, or Empty, Empty, false on a miss.
	Lookup(k1, k2 uint32) (v1, v2 uint32, ok bool)
}

// entry is a single pair-to-pair mapping.
type entry struct {
	k1, k2 uint32
	v1, v2 uint32
}

// Dense is an O(1) lookup table sized nstates x nstates. Last writer wins on
// duplicate inserts for a given (k1, k2).
type Dense struct {
	nstates uint32
	v1, v2  []uint32
	set     []bool
}

// NewDense allocates a dense pair map over nstates states.
func NewDense(nstates uint32) *Dense {
	n := int(nstates) * int(nstates)
	return &Dense{
		nstates: nstates,
		v1:      make([]uint32, n),
		v2:      make([]uint32, n),
		set:     make([]bool, n),
	}
}

func (d *Dense) index(k1, k2 uint32) int {
	return int(k1)*int(d.nstates) + int(k2)
}

// Insert implements PairMap. Last writer wins.
func (d *Dense) Insert(k1, k2, v1, v2 uint32) {
	i := d.index(k1, k2)
	d.v1[i] = v1
	d.v2[i] = v2
	d.set[i] = true
}

// Lookup implements PairMap.
func (d *Dense) Lookup(k1, k2 uint32) (uint32, uint32, bool) {
	i := d.index(k1, k2)
	if !d.set[i] {
		return Empty, Empty, false
	}
	return d.v1[i], d.v2[i], true
}

// Chained is a hash table sized to the smallest prime at or above the
// requested capacity, with collisions resolved by an append-only chain kept
// sorted by (k1, k2) so lookups can exit early once the chain's keys pass
// the target. Keys are hashed with xxhash (64-bit XXH64, substituting for
// the historical xxh3 construction this is modeled on) over the
// concatenated (k1, k2) pair. First writer wins for duplicate inserts.
type Chained struct {
	size    uint64
	buckets [][]entry
	count   int
}

// NewChained allocates a chained pair map with at least `capacity` buckets,
// rounded up to the next prime.
func NewChained(capacity uint64) *Chained {
	size := NextPrime(capacity)
	return &Chained{
		size:    size,
		buckets: make([][]entry, size),
	}
}

func hashPair(k1, k2 uint32) uint64 {
	var buf [8]byte
	buf[0] = byte(k1)
	buf[1] = byte(k1 >> 8)
	buf[2] = byte(k1 >> 16)
	buf[3] = byte(k1 >> 24)
	buf[4] = byte(k2)
	buf[5] = byte(k2 >> 8)
	buf[6] = byte(k2 >> 16)
	buf[7] = byte(k2 >> 24)
	return xxhash.Sum64(buf[:])
}

func less(a, b entry) bool {
	if a.k1 != b.k1 {
		return a.k1 < b.k1
	}
	return a.k2 < b.k2
}

// Insert implements PairMap. If the table has grown past a 1:1 load factor,
// it's doubled (rounded up to the next prime) and every entry rehashed
// before the new entry is added.
func (c *Chained) Insert(k1, k2, v1, v2 uint32) {
	if uint64(c.count) >= c.size {
		c.resize(c.size * 2)
	}

	h := hashPair(k1, k2) % c.size
	chain := c.buckets[h]

	for _, e := range chain {
		if e.k1 == k1 && e.k2 == k2 {
			// first writer wins
			return
		}
	}

	e := entry{k1: k1, k2: k2, v1: v1, v2: v2}
	i := 0
	for i < len(chain) && less(chain[i], e) {
		i++
	}
	chain = append(chain, entry{})
	copy(chain[i+1:], chain[i:])
	chain[i] = e
	c.buckets[h] = chain
	c.count++
}

// Lookup implements PairMap, exiting the chain scan as soon as the sorted
// order rules out a match.
func (c *Chained) Lookup(k1, k2 uint32) (uint32, uint32, bool) {
	h := hashPair(k1, k2) % c.size
	target := entry{k1: k1, k2: k2}
	for _, e := range c.buckets[h] {
		if e.k1 == k1 && e.k2 == k2 {
			return e.v1, e.v2, true
		}
		if less(target, e) {
			break
		}
	}
	return Empty, Empty, false
}

func (c *Chained) resize(minSize uint64) {
	newSize := NextPrime(minSize)
	newBuckets := make([][]entry, newSize)
	for _, chain := range c.buckets {
		for _, e := range chain {
			h := hashPair(e.k1, e.k2) % newSize
			newBuckets[h] = insertSorted(newBuckets[h], e)
		}
	}
	c.size = newSize
	c.buckets = newBuckets
}

func insertSorted(chain []entry, e entry) []entry {
	i := 0
	for i < len(chain) && less(chain[i], e) {
		i++
	}
	chain = append(chain, entry{})
	copy(chain[i+1:], chain[i:])
	chain[i] = e
	return chain
}

// NextPrime returns the smallest prime >= n (n < 2 returns 2).
func NextPrime(n uint64) uint64 {
	if n < 2 {
		return 2
	}
	if n == 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := uint64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
