package urn

import "github.com/jihwankim/popproto/internal/rng"

// Array stores one slot per marble, each holding that marble's color.
// Sampling is a single uniform index; draw swap-removes the sampled slot
// against the last one. Cheapest flavor per-marble but O(nmarbles) space,
// and CDist/Dist scan every slot.
type Array struct {
	src     source
	ncolors uint32
	slots   []uint32
}

// NewArray creates an empty array urn over ncolors colors.
func NewArray(seed uint64, ncolors uint32) (*Array, error) {
	if ncolors == Empty {
		return nil, ErrDomain
	}
	return &Array{
		src:     rng.NewMT19937_64(seed),
		ncolors: ncolors,
		slots:   make([]uint32, 0),
	}, nil
}

// Copy returns an independent deep copy of a, reseeded with newSeed.
func (a *Array) Copy(newSeed uint64) *Array {
	slots := make([]uint32, len(a.slots))
	copy(slots, a.slots)
	return &Array{
		src:     rng.NewMT19937_64(newSeed),
		ncolors: a.ncolors,
		slots:   slots,
	}
}

// Sample implements Urn.
func (a *Array) Sample() uint32 {
	if len(a.slots) == 0 {
		return Empty
	}
	return a.slots[rng.Urand(a.src, uint64(len(a.slots)))]
}

// Draw implements Urn: sample an index, record its color, and overwrite the
// slot with the last slot before shrinking.
func (a *Array) Draw() uint32 {
	if len(a.slots) == 0 {
		return Empty
	}
	i := rng.Urand(a.src, uint64(len(a.slots)))
	c := a.slots[i]
	last := len(a.slots) - 1
	a.slots[i] = a.slots[last]
	a.slots = a.slots[:last]
	return c
}

// CInsert implements Urn: appends q copies of color c.
func (a *Array) CInsert(c uint32, q uint32) {
	for i := uint32(0); i < q; i++ {
		a.slots = append(a.slots, c)
	}
}

// CRemove implements Urn. Array urns don't support targeted removal.
func (a *Array) CRemove(c uint32, q uint32) error { return ErrUnsupported }

// Insert implements Urn: CInsert for every color with a nonzero count.
func (a *Array) Insert(qs []uint32) {
	for c, q := range qs {
		a.CInsert(uint32(c), q)
	}
}

// Remove implements Urn. Array urns don't support targeted removal.
func (a *Array) Remove(qs []uint32) error { return ErrUnsupported }

// IsEmpty implements Urn.
func (a *Array) IsEmpty() bool { return len(a.slots) == 0 }

// CDist implements Urn by scanning the backing slice.
func (a *Array) CDist(c uint32) uint32 {
	var n uint32
	for _, s := range a.slots {
		if s == c {
			n++
		}
	}
	return n
}

// Dist implements Urn.
func (a *Array) Dist(out []uint32) {
	for i := range out[:a.ncolors] {
		out[i] = 0
	}
	for _, s := range a.slots {
		out[s]++
	}
}

// NMarbles implements Urn.
func (a *Array) NMarbles() uint32 { return uint32(len(a.slots)) }

// NColors implements Urn.
func (a *Array) NColors() uint32 { return a.ncolors }
