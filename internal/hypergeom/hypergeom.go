// Package hypergeom samples from the hypergeometric distribution: the count
// of "good" items in a size-sample draw without replacement from a
// population of total items of which good are good. It backs the batched
// and multi-batched simulators (internal/sim), which use it to redistribute
// agents recruited into a batch back across colors.
package hypergeom

import (
	"math"

	"github.com/jihwankim/popproto/internal/logfac"
	"github.com/jihwankim/popproto/internal/rng"
)

// smallSampleThreshold switches between the O(sample) count-and-decrement
// algorithm and the acceptance-rejection algorithm in hgeomHRUA (a uniform
// proposal under the mode's probability; it is not a ratio-of-uniforms
// sampler): below it (or within it of the complementary sample size) the
// direct algorithm is already cheap, and the rejection algorithm's setup
// cost isn't worth it.
const smallSampleThreshold = 10

// shell bounds envelope width around the distribution's mode, following the
// HRUA construction (Stadlober 1989): the first proposal window spans
// d1*scale + d2 marbles either side of mu + 1/2, where scale is the
// hypergeometric's standard deviation plus 1/2.
const (
	d1 = 1.7155277699214135
	d2 = 0.8989161620588988
)

// HGeom returns a sample from the hypergeometric distribution: the number of
// "good" items drawn in a sample of size `sample`, without replacement, from
// a population of `total` items of which `good` are good.
//
// Preconditions: good <= total, sample <= total, total >= 1.
func HGeom(src rng.Source, total, good, sample uint64) uint64 {
	if sample == 0 {
		return 0
	}
	if sample == total {
		return good
	}
	if good == 0 {
		return 0
	}
	if good == total {
		return sample
	}

	bad := total - good
	if sample < smallSampleThreshold || sample > total-smallSampleThreshold {
		return hgeomCount(src, total, good, bad, sample)
	}
	return hgeomHRUA(src, total, good, bad, sample)
}

// hgeomCount is the direct O(sample) algorithm: repeatedly draw one item
// from the shrinking population and decrement the relevant counter.
func hgeomCount(src rng.Source, total, good, bad, sample uint64) uint64 {
	// Exploit symmetry: drawing `sample` from `total` counting `good` hits
	// is the same distribution as drawing `total-sample` counting misses
	// of `good`, subtracted from good. Always iterate over the smaller of
	// sample and total-sample to bound the loop length.
	if sample > total-sample {
		return good - hgeomCount(src, total, good, bad, total-sample)
	}

	remaining := total
	remainGood := good
	var count uint64
	for i := uint64(0); i < sample; i++ {
		if rng.Urand(src, remaining) < remainGood {
			count++
			remainGood--
		}
		remaining--
	}
	return count
}

// hgeomHRUA samples via acceptance-rejection against a uniform envelope over
// the count's full support [lo, hi], with the envelope height set to the
// exact probability at the distribution's mode. Because the mode has the
// highest probability of any point in the support, the envelope dominates
// the true density everywhere, so every accepted draw is exactly
// hypergeometric regardless of how tight the proposal window is; the HRUA
// shell (d1*scale + d2 around the mode) is used only to pick a first guess
// before widening to the full support, which keeps the common case fast
// without weakening the correctness argument.
func hgeomHRUA(src rng.Source, total, good, bad, sample uint64) uint64 {
	var lo uint64
	if sample > bad {
		lo = sample - bad
	}
	hi := good
	if sample < hi {
		hi = sample
	}

	logTotalChoose := logfac.LogFac(total) - logfac.LogFac(sample) - logfac.LogFac(total-sample)
	logProb := func(k uint64) float64 {
		return logfac.LogFac(good) - logfac.LogFac(k) - logfac.LogFac(good-k) +
			logfac.LogFac(bad) - logfac.LogFac(sample-k) - logfac.LogFac(bad-sample+k) -
			logTotalChoose
	}

	mu := float64(sample) * float64(good) / float64(total)
	a := mu + 0.5
	mode := uint64(float64(sample+1) * float64(good+1) / float64(total+2))
	if mode < lo {
		mode = lo
	}
	if mode > hi {
		mode = hi
	}
	logPMode := logProb(mode)

	varc := float64(total-sample) * float64(sample) * float64(good) * float64(bad) /
		(float64(total) * float64(total) * float64(total-1))
	if varc < 0 {
		varc = 0
	}
	scale := math.Sqrt(varc) + 0.5
	width := d1*scale + d2

	loW := lo
	if f := math.Floor(a - width); f > float64(lo) {
		loW = uint64(f)
	}
	hiW := hi
	if f := math.Ceil(a + width); f < float64(hi) {
		hiW = uint64(f)
	}

	for {
		span := hiW - loW + 1
		k := loW + rng.Urand(src, span)
		if math.Log(rng.Real3(src)) <= logProb(k)-logPMode {
			return k
		}
		// Window exhausted without an accept after many tries: almost never
		// happens since logPMode dominates, but widen to the full support as
		// a correctness backstop against an unlucky run.
		loW, hiW = lo, hi
	}
}

// MHGeom fills dest[0:ncolors] with the per-color counts of a size-sample
// draw without replacement from a population whose color c has src[c]
// items, by iterating the scalar hypergeometric along the color axis: each
// step draws the count for one color from what remains of the sample and
// the population, then removes that color from both running totals.
//
// Precondition: sample <= sum(src[0:ncolors]).
// Postcondition: sum(dest[0:ncolors]) == sample, and 0 <= dest[c] <= src[c].
func MHGeom(src rng.Source, dest, pop []uint64, ncolors int, sample uint64) {
	// unprocessed holds the population size of colors [c, ncolors), i.e.
	// including the color about to be drawn from.
	var unprocessed uint64
	for c := 0; c < ncolors; c++ {
		unprocessed += pop[c]
	}

	for c := 0; c < ncolors; c++ {
		dest[c] = 0
	}

	remaining := sample
	for c := 0; c < ncolors && remaining > 0; c++ {
		if c == ncolors-1 {
			dest[c] = remaining
			break
		}
		good := pop[c]
		k := HGeom(src, unprocessed, good, remaining)
		dest[c] = k
		remaining -= k
		unprocessed -= good
	}
}
