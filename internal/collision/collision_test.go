package collision_test

import (
	"testing"

	"github.com/jihwankim/popproto/internal/collision"
	"github.com/jihwankim/popproto/internal/rng"
)

func TestSampleInRange(t *testing.T) {
	src := rng.NewMT19937_64(1)
	s := collision.New(src, 1000, 0)
	for i := 0; i < 10000; i++ {
		l := s.Sample()
		if l < 1 || l > s.N()-s.R()+1 {
			t.Fatalf("Sample() = %d out of [1, g+1] for n=%d r=%d", l, s.N(), s.R())
		}
	}
}

func TestSampleWithSeenAgentsCanBeZero(t *testing.T) {
	// lo == 0 when r > 0: a collision can occur on the very first draw.
	src := rng.NewMT19937_64(2)
	s := collision.New(src, 1000, 500)
	sawZero := false
	for i := 0; i < 2000; i++ {
		if s.Sample() == 0 {
			sawZero = true
			break
		}
	}
	if !sawZero {
		t.Fatalf("expected at least one L=0 draw across 2000 samples with r=500, n=1000")
	}
}

func TestSampleLargePopulationUsesRegulaFalsi(t *testing.T) {
	src := rng.NewMT19937_64(3)
	s := collision.New(src, 5_000_000, 0)
	for i := 0; i < 100; i++ {
		l := s.Sample()
		if l < 1 || l > s.N()+1 {
			t.Fatalf("Sample() = %d out of range for large n", l)
		}
	}
}

func TestSetNSetRUpdateCaches(t *testing.T) {
	src := rng.NewMT19937_64(4)
	s := collision.New(src, 100, 0)
	s.SetN(200)
	if s.N() != 200 {
		t.Fatalf("SetN did not update N(): got %d", s.N())
	}
	s.SetR(50)
	if s.R() != 50 {
		t.Fatalf("SetR did not update R(): got %d", s.R())
	}
	// Sampling after mutation should not panic or hang.
	for i := 0; i < 100; i++ {
		_ = s.Sample()
	}
}
