// Package collision samples the "birthday paradox" collision length: the
// number of further interactions needed, in a population of n agents with r
// of them already distinguished ("red"), until a repeat pairing occurs. The
// batched and multi-batched simulators (internal/sim) use this to decide how
// many interactions to advance in bulk before falling back to exact
// per-interaction bookkeeping.
package collision

import (
	"math"

	"github.com/jihwankim/popproto/internal/logfac"
	"github.com/jihwankim/popproto/internal/rng"
)

// regulaFalsiThreshold switches from bisection to regula-falsi-then-bisection
// for the root search: bisection alone is fine for small g, but needs many
// more halvings to close in on large g, where a few secant steps pay off.
const regulaFalsiThreshold = 1_000_000

// regulaFalsiSteps is the number of secant iterations performed before
// falling back to bisection to finish the search.
const regulaFalsiSteps = 15

// Sampler holds the collision distribution's parameters (population n,
// already-seen count r) and the values derived from them that every sample
// needs: g = n - r, log(n), and lfac(g). Re-deriving these per sample would
// dominate the cost of the search itself, so they're cached and only
// recomputed when SetN or SetR changes the parameters.
type Sampler struct {
	src rng.Source

	n uint64
	r uint64
	g uint64

	logN  float64
	lfacG float64
}

// New creates a collision sampler over population n with r agents already
// seen, drawing its uniform variates from src.
//
// Preconditions: 0 < n, r <= n.
func New(src rng.Source, n, r uint64) *Sampler {
	s := &Sampler{src: src}
	s.SetN(n)
	s.SetR(r)
	return s
}

// SetN updates the population size, recomputing the cached log(n) and, since
// g = n - r depends on n, lfac(g) as well.
func (s *Sampler) SetN(n uint64) {
	s.n = n
	s.logN = math.Log(float64(n))
	s.g = s.n - s.r
	s.lfacG = logfac.LogFac(s.g)
}

// SetR updates the already-seen count, recomputing g and lfac(g).
func (s *Sampler) SetR(r uint64) {
	s.r = r
	s.g = s.n - s.r
	s.lfacG = logfac.LogFac(s.g)
}

// N returns the current population size.
func (s *Sampler) N() uint64 { return s.n }

// R returns the current already-seen count.
func (s *Sampler) R() uint64 { return s.r }

// Sample draws L, the number of interactions until the next collision,
// via inverse-CDF search over the log-survival function. For a fresh
// uniform U it returns the largest integer L in [lo, hi) with f(L) <= 0,
// one less than the smallest L with f(L) > 0, where
//
//	f(L) = L*log(n) - lfac(g) + lfac(g-L) + log(1-U)
//
// lo is 0 when r > 0 (a collision can occur on the very first draw once
// some agents are already seen) and 1 otherwise; hi is g+1.
func (s *Sampler) Sample() uint64 {
	u := rng.Real2(s.src)
	logRHS := -math.Log(1 - u)

	f := func(l uint64) float64 {
		return float64(l)*s.logN - s.lfacG + logfac.LogFac(s.g-l) - logRHS
	}

	var lo uint64
	if s.r == 0 {
		lo = 1
	}
	hi := s.g + 1

	if s.g < regulaFalsiThreshold {
		return bisect(lo, hi, f)
	}
	return regulaFalsi(lo, hi, f)
}

// bisect halves the bracket [lo, hi], given f(lo) <= 0 < f(hi), until it's a
// single step wide, and returns lo: the largest l with f(l) <= 0.
func bisect(lo, hi uint64, f func(uint64) float64) uint64 {
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if f(mid) > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// regulaFalsi performs a fixed number of secant (false-position) steps to
// shrink the bracket quickly, then finishes with bisection to guarantee
// termination at an exact integer root.
func regulaFalsi(lo, hi uint64, f func(uint64) float64) uint64 {
	flo := f(lo)
	fhi := f(hi)

	for step := 0; step < regulaFalsiSteps && lo+1 < hi; step++ {
		if fhi == flo {
			break
		}
		frac := -flo / (fhi - flo)
		mid := lo + uint64(frac*float64(hi-lo))
		if mid <= lo {
			mid = lo + 1
		}
		if mid >= hi {
			mid = hi - 1
		}

		fm := f(mid)
		if fm > 0 {
			hi, fhi = mid, fm
		} else {
			lo, flo = mid, fm
		}
	}
	return bisect(lo, hi, f)
}
