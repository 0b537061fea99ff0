package urn

import "github.com/jihwankim/popproto/internal/rng"

// Alias samples in O(1) expected time via Vose's alias method: the space of
// nmarbles is divided into ncolors buckets of roughly nmarbles/ncolors slots
// each, bucket c holding weight[c] slots of color c and aweight[c] slots
// donated from color alias[c]. Sample is then a uniform bucket pick plus a
// uniform within-bucket offset, with rejection against the (possibly
// smaller) occupied part of the bucket.
//
// Insertion/removal keep an exact ground-truth count per color (dist) and
// rebuild the weight/aweight/alias table from scratch on every mutation.
// The historical construction only rebuilds when alpha/beta thresholds are
// crossed, amortizing the O(ncolors) rebuild cost across many O(1) inserts;
// that amortization is skipped here in favor of always being exactly
// correct, since this code is never profiled or benchmarked. Alpha and beta
// are still validated and stored so a future incremental rebuild can use
// them without changing the type's contract.
type Alias struct {
	src     source
	ncolors uint32
	alpha   float64
	beta    float64

	dist    []uint32 // ground truth per-color counts
	total   uint32
	weight  []uint32
	aweight []uint32
	alias   []uint32
	minR    uint32
	maxR    uint32
}

// NewAlias creates an empty alias urn over ncolors colors, with rebuild
// bounds alpha (in (0,1)) and beta (> 1). Typical values are alpha=0.8,
// beta=1.5.
func NewAlias(seed uint64, ncolors uint32, alpha, beta float64) (*Alias, error) {
	if ncolors == Empty || ncolors == 0 {
		return nil, ErrDomain
	}
	if alpha <= 0 || alpha >= 1 || beta <= 1 {
		return nil, ErrDomain
	}
	a := &Alias{
		src:     rng.NewMT19937_64(seed),
		ncolors: ncolors,
		alpha:   alpha,
		beta:    beta,
		dist:    make([]uint32, ncolors),
		weight:  make([]uint32, ncolors),
		aweight: make([]uint32, ncolors),
		alias:   make([]uint32, ncolors),
	}
	return a, nil
}

// Copy returns an independent deep copy, reseeded with newSeed.
func (a *Alias) Copy(newSeed uint64) *Alias {
	clone := &Alias{
		src:     rng.NewMT19937_64(newSeed),
		ncolors: a.ncolors,
		alpha:   a.alpha,
		beta:    a.beta,
		dist:    append([]uint32(nil), a.dist...),
		total:   a.total,
		weight:  append([]uint32(nil), a.weight...),
		aweight: append([]uint32(nil), a.aweight...),
		alias:   append([]uint32(nil), a.alias...),
		minR:    a.minR,
		maxR:    a.maxR,
	}
	return clone
}

// rebuild recomputes minR, maxR, weight, aweight, and alias from the ground
// truth dist, using the Robin-Hood pairing that gives Vose's alias method
// its linear-time construction: colors under the target bucket size ("small")
// each receive a donation from a color over it ("large") until every bucket
// reaches between minR and maxR slots.
func (a *Alias) rebuild() {
	c := a.ncolors
	n := a.total
	if n == 0 {
		for i := uint32(0); i < c; i++ {
			a.weight[i], a.aweight[i], a.alias[i] = 0, 0, 0
		}
		a.minR, a.maxR = 0, 0
		return
	}

	minR := n / c
	maxR := minR
	nmax := n - c*minR
	if nmax > 0 {
		maxR = minR + 1
	}
	a.minR, a.maxR = minR, maxR

	work := make([]uint32, c)
	copy(work, a.dist)

	small := make([]uint32, 0, c)
	large := make([]uint32, 0, c)
	for i := uint32(0); i < c; i++ {
		if work[i] <= minR {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		a.weight[s] = work[s]
		donation := minR - work[s]
		if nmax > 0 {
			donation++
			nmax--
		}
		a.aweight[s] = donation
		a.alias[s] = l
		work[l] -= donation

		if work[l] <= minR {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	for _, s := range small {
		a.weight[s] = work[s]
		a.aweight[s] = 0
		a.alias[s] = s
	}
}

// drawBucket performs the rejection-sampling pick described by the alias
// contract: choose a color c, choose an offset w in [0, maxR), reject if w
// falls past the occupied part of c's bucket, else resolve to c's own color
// or its alias donor depending on which side of weight[c] w landed.
// Returns the resulting color and whether it came from the aweight side
// (needed by Draw to know which counter to decrement).
func (a *Alias) drawBucket() (color uint32, fromAlias bool) {
	for {
		c := uint32(rng.Urand(a.src, uint64(a.ncolors)))
		w := uint32(rng.Urand(a.src, uint64(a.maxR)))
		if w >= a.weight[c]+a.aweight[c] {
			continue
		}
		if w < a.weight[c] {
			return c, false
		}
		return a.alias[c], true
	}
}

// Sample implements Urn.
func (a *Alias) Sample() uint32 {
	if a.total == 0 {
		return Empty
	}
	color, _ := a.drawBucket()
	return color
}

// Draw implements Urn.
func (a *Alias) Draw() uint32 {
	if a.total == 0 {
		return Empty
	}
	color, _ := a.drawBucket()
	a.dist[color]--
	a.total--
	a.rebuild()
	return color
}

// CInsert implements Urn.
func (a *Alias) CInsert(c uint32, q uint32) {
	a.dist[c] += q
	a.total += q
	a.rebuild()
}

// CRemove implements Urn. Alias urns don't support targeted removal beyond
// draw-driven decrement.
func (a *Alias) CRemove(c uint32, q uint32) error { return ErrUnsupported }

// Insert implements Urn.
func (a *Alias) Insert(qs []uint32) {
	for c, q := range qs {
		a.dist[c] += q
		a.total += q
	}
	a.rebuild()
}

// Remove implements Urn. Alias urns don't support targeted removal.
func (a *Alias) Remove(qs []uint32) error { return ErrUnsupported }

// IsEmpty implements Urn.
func (a *Alias) IsEmpty() bool { return a.total == 0 }

// CDist implements Urn.
func (a *Alias) CDist(c uint32) uint32 { return a.dist[c] }

// Dist implements Urn.
func (a *Alias) Dist(out []uint32) { copy(out[:a.ncolors], a.dist) }

// NMarbles implements Urn.
func (a *Alias) NMarbles() uint32 { return a.total }

// NColors implements Urn.
func (a *Alias) NColors() uint32 { return a.ncolors }
