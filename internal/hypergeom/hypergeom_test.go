package hypergeom_test

import (
	"math"
	"testing"

	"github.com/jihwankim/popproto/internal/hypergeom"
	"github.com/jihwankim/popproto/internal/rng"
)

func TestHGeomEdgeCases(t *testing.T) {
	src := rng.NewMT19937_64(1)

	if got := hypergeom.HGeom(src, 1000, 400, 0); got != 0 {
		t.Errorf("hgeom(T,G,0) = %d, want 0", got)
	}
	if got := hypergeom.HGeom(src, 1000, 400, 1000); got != 400 {
		t.Errorf("hgeom(T,G,T) = %d, want G=400", got)
	}
	if got := hypergeom.HGeom(src, 1000, 0, 200); got != 0 {
		t.Errorf("hgeom(T,0,S) = %d, want 0", got)
	}
	if got := hypergeom.HGeom(src, 1000, 1000, 200); got != 200 {
		t.Errorf("hgeom(T,T,S) = %d, want S=200", got)
	}
}

func TestHGeomMean(t *testing.T) {
	src := rng.NewMT19937_64(99)
	const trials = 1_000_000
	var sum uint64
	for i := 0; i < trials; i++ {
		sum += hypergeom.HGeom(src, 1000, 400, 200)
	}
	mean := float64(sum) / trials
	if math.Abs(mean-80) > 1 {
		t.Errorf("mean(hgeom(1000,400,200)) over %d trials = %v, want 80 +/- 1", trials, mean)
	}
}

func TestHGeomBothAlgorithmsInRange(t *testing.T) {
	src := rng.NewMT19937_64(2)
	cases := []struct{ total, good, sample uint64 }{
		{1000, 400, 5},    // direct: small sample
		{1000, 400, 995},  // direct: sample near total
		{1000, 400, 200},  // HRUA: mid-range sample
		{5000, 2500, 2500}, // HRUA: large population
	}
	for _, c := range cases {
		for i := 0; i < 2000; i++ {
			k := hypergeom.HGeom(src, c.total, c.good, c.sample)
			if k > c.good || k > c.sample || c.sample-k > c.total-c.good {
				t.Fatalf("hgeom(%d,%d,%d) = %d out of feasible range", c.total, c.good, c.sample, k)
			}
		}
	}
}

func TestMHGeomInvariants(t *testing.T) {
	src := rng.NewMT19937_64(3)
	pop := []uint64{100, 250, 0, 650}
	dest := make([]uint64, len(pop))

	for trial := 0; trial < 5000; trial++ {
		const sample = 300
		hypergeom.MHGeom(src, dest, pop, len(pop), sample)

		var sum uint64
		for c, d := range dest {
			if d > pop[c] {
				t.Fatalf("dest[%d] = %d exceeds population %d", c, d, pop[c])
			}
			sum += d
		}
		if sum != sample {
			t.Fatalf("sum(dest) = %d, want sample = %d", sum, sample)
		}
	}
}

func TestMHGeomSingleColor(t *testing.T) {
	src := rng.NewMT19937_64(4)
	pop := []uint64{42}
	dest := make([]uint64, 1)
	hypergeom.MHGeom(src, dest, pop, 1, 42)
	if dest[0] != 42 {
		t.Errorf("single-color mhgeom: dest[0] = %d, want 42", dest[0])
	}
}

func TestMHGeomZeroSample(t *testing.T) {
	src := rng.NewMT19937_64(5)
	pop := []uint64{10, 20, 30}
	dest := make([]uint64, 3)
	hypergeom.MHGeom(src, dest, pop, 3, 0)
	for c, d := range dest {
		if d != 0 {
			t.Errorf("zero-sample mhgeom: dest[%d] = %d, want 0", c, d)
		}
	}
}
