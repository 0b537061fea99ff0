package urn

import "github.com/jihwankim/popproto/internal/rng"

// Linear keeps one count per color and samples by a linear scan of the
// cumulative distribution. O(ncolors) sample/draw, O(1) per-color
// insert/remove, O(ncolors) space.
type Linear struct {
	src     source
	ncolors uint32
	counts  []uint32
	total   uint32
}

// NewLinear creates an empty linear urn over ncolors colors.
func NewLinear(seed uint64, ncolors uint32) (*Linear, error) {
	if ncolors == Empty {
		return nil, ErrDomain
	}
	return &Linear{
		src:     rng.NewMT19937_64(seed),
		ncolors: ncolors,
		counts:  make([]uint32, ncolors),
	}, nil
}

// Copy returns an independent deep copy, reseeded with newSeed.
func (l *Linear) Copy(newSeed uint64) *Linear {
	counts := make([]uint32, len(l.counts))
	copy(counts, l.counts)
	return &Linear{
		src:     rng.NewMT19937_64(newSeed),
		ncolors: l.ncolors,
		counts:  counts,
		total:   l.total,
	}
}

// sampleIndex scans the cumulative distribution for the color that a
// uniform draw m in [0, total) lands in.
func (l *Linear) sampleIndex(m uint32) uint32 {
	var acc uint32
	for c, n := range l.counts {
		acc += n
		if m < acc {
			return uint32(c)
		}
	}
	// Unreachable unless total was miscounted; fall back to the last
	// color to stay within bounds.
	return l.ncolors - 1
}

// Sample implements Urn.
func (l *Linear) Sample() uint32 {
	if l.total == 0 {
		return Empty
	}
	m := uint32(rng.Urand(l.src, uint64(l.total)))
	return l.sampleIndex(m)
}

// Draw implements Urn.
func (l *Linear) Draw() uint32 {
	if l.total == 0 {
		return Empty
	}
	m := uint32(rng.Urand(l.src, uint64(l.total)))
	c := l.sampleIndex(m)
	l.counts[c]--
	l.total--
	return c
}

// CInsert implements Urn.
func (l *Linear) CInsert(c uint32, q uint32) {
	l.counts[c] += q
	l.total += q
}

// CRemove implements Urn.
func (l *Linear) CRemove(c uint32, q uint32) error {
	if q > l.counts[c] {
		return ErrDomain
	}
	l.counts[c] -= q
	l.total -= q
	return nil
}

// Insert implements Urn.
func (l *Linear) Insert(qs []uint32) {
	for c, q := range qs {
		l.CInsert(uint32(c), q)
	}
}

// Remove implements Urn.
func (l *Linear) Remove(qs []uint32) error {
	for c, q := range qs {
		if q > l.counts[c] {
			return ErrDomain
		}
	}
	for c, q := range qs {
		l.counts[c] -= q
		l.total -= q
	}
	return nil
}

// IsEmpty implements Urn.
func (l *Linear) IsEmpty() bool { return l.total == 0 }

// CDist implements Urn.
func (l *Linear) CDist(c uint32) uint32 { return l.counts[c] }

// Dist implements Urn.
func (l *Linear) Dist(out []uint32) { copy(out[:l.ncolors], l.counts) }

// NMarbles implements Urn.
func (l *Linear) NMarbles() uint32 { return l.total }

// NColors implements Urn.
func (l *Linear) NColors() uint32 { return l.ncolors }
