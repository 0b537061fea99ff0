package rng_test

import (
	"math"
	"testing"

	"github.com/jihwankim/popproto/internal/rng"
)

func TestMT19937_64Deterministic(t *testing.T) {
	a := rng.NewMT19937_64(42)
	b := rng.NewMT19937_64(42)
	for i := 0; i < 1000; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestMT19937_64DifferentSeeds(t *testing.T) {
	a := rng.NewMT19937_64(1)
	b := rng.NewMT19937_64(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same > 2 {
		t.Fatalf("suspiciously many collisions between independent seeds: %d/100", same)
	}
}

func TestRanDeterministic(t *testing.T) {
	a := rng.NewRan(7)
	b := rng.NewRan(7)
	for i := 0; i < 1000; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("same seed diverged at draw %d", i)
		}
	}
}

func TestUrandRange(t *testing.T) {
	src := rng.NewMT19937_64(123)
	for i := 0; i < 100000; i++ {
		x := rng.Urand(src, 17)
		if x >= 17 {
			t.Fatalf("Urand(17) returned %d out of range", x)
		}
	}
}

func TestUrandUniform(t *testing.T) {
	src := rng.NewMT19937_64(9)
	const n = 10
	const calls = 200000
	counts := make([]int, n)
	for i := 0; i < calls; i++ {
		counts[rng.Urand(src, n)]++
	}
	expect := float64(calls) / n
	for c, got := range counts {
		if math.Abs(float64(got)-expect) > 5*math.Sqrt(expect) {
			t.Errorf("color %d: got %d samples, expected ~%.0f", c, got, expect)
		}
	}
}

func TestUrandSingleton(t *testing.T) {
	src := rng.NewMT19937_64(1)
	for i := 0; i < 10; i++ {
		if rng.Urand(src, 1) != 0 {
			t.Fatalf("Urand(1) must always return 0")
		}
	}
}

func TestRealRanges(t *testing.T) {
	src := rng.NewMT19937_64(5)
	for i := 0; i < 100000; i++ {
		r1 := rng.Real1(src)
		if r1 < 0 || r1 > 1 {
			t.Fatalf("Real1 out of [0,1]: %v", r1)
		}
		r2 := rng.Real2(src)
		if r2 < 0 || r2 >= 1 {
			t.Fatalf("Real2 out of [0,1): %v", r2)
		}
		r3 := rng.Real3(src)
		if r3 <= 0 || r3 >= 1 {
			t.Fatalf("Real3 out of (0,1): %v", r3)
		}
	}
}
