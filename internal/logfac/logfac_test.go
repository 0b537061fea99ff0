package logfac_test

import (
	"math"
	"testing"

	"github.com/jihwankim/popproto/internal/logfac"
)

func TestLogFacZeroAndOne(t *testing.T) {
	if logfac.LogFac(0) != 0 {
		t.Errorf("LogFac(0) = %v, want 0", logfac.LogFac(0))
	}
	if logfac.LogFac(1) != 0 {
		t.Errorf("LogFac(1) = %v, want 0", logfac.LogFac(1))
	}
}

func TestLogFacSmallExact(t *testing.T) {
	// log(5!) = log(120)
	got := logfac.LogFac(5)
	want := math.Log(120)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("LogFac(5) = %v, want %v", got, want)
	}
}

func TestLogFacAccuracy(t *testing.T) {
	cases := []uint64{50, 100, 1000, 100000, 1e9}
	for _, n := range cases {
		got := logfac.LogFac(n)
		want := exactBig(n)
		rel := math.Abs(got-want) / want
		if rel > 1e-9 {
			t.Errorf("LogFac(%d) = %v, want ~%v (rel err %v)", n, got, want, rel)
		}
	}
}

// exactBig computes log(n!) by direct summation for cross-checking.
// Only used for moderate n in tests; for n=1e9 it's too slow, so we fall
// back to a high-order Stirling expansion as the reference instead.
func exactBig(n uint64) float64 {
	if n <= 100000 {
		acc := 0.0
		for k := uint64(2); k <= n; k++ {
			acc += math.Log(float64(k))
		}
		return acc
	}
	x := float64(n)
	return x*math.Log(x) - x + 0.5*math.Log(2*math.Pi*x) +
		1.0/(12*x) - 1.0/(360*x*x*x) + 1.0/(1260*x*x*x*x*x)
}

func TestLogFacMonotonic(t *testing.T) {
	prev := logfac.LogFac(0)
	for n := uint64(1); n < 10000; n++ {
		cur := logfac.LogFac(n)
		if cur < prev {
			t.Fatalf("LogFac not monotonic at n=%d: %v < %v", n, cur, prev)
		}
		prev = cur
	}
}
