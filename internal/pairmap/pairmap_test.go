package pairmap_test

import (
	"testing"

	"github.com/jihwankim/popproto/internal/pairmap"
)

func TestDenseInsertLookup(t *testing.T) {
	d := pairmap.NewDense(4)
	d.Insert(1, 2, 3, 0)
	v1, v2, ok := d.Lookup(1, 2)
	if !ok || v1 != 3 || v2 != 0 {
		t.Fatalf("Lookup(1,2) = %d,%d,%v want 3,0,true", v1, v2, ok)
	}
	if _, _, ok := d.Lookup(2, 1); ok {
		t.Fatalf("Lookup(2,1) should miss, pairs are ordered")
	}
}

func TestDenseLastWriterWins(t *testing.T) {
	d := pairmap.NewDense(4)
	d.Insert(0, 0, 1, 1)
	d.Insert(0, 0, 2, 2)
	v1, v2, ok := d.Lookup(0, 0)
	if !ok || v1 != 2 || v2 != 2 {
		t.Fatalf("dense map should keep last writer: got %d,%d", v1, v2)
	}
}

func TestDenseMiss(t *testing.T) {
	d := pairmap.NewDense(4)
	v1, v2, ok := d.Lookup(3, 3)
	if ok || v1 != pairmap.Empty || v2 != pairmap.Empty {
		t.Fatalf("miss should return Empty sentinel, got %d,%d,%v", v1, v2, ok)
	}
}

func TestChainedInsertLookup(t *testing.T) {
	c := pairmap.NewChained(8)
	c.Insert(5, 9, 1, 2)
	v1, v2, ok := c.Lookup(5, 9)
	if !ok || v1 != 1 || v2 != 2 {
		t.Fatalf("Lookup(5,9) = %d,%d,%v want 1,2,true", v1, v2, ok)
	}
}

func TestChainedFirstWriterWins(t *testing.T) {
	c := pairmap.NewChained(8)
	c.Insert(1, 1, 10, 10)
	c.Insert(1, 1, 99, 99)
	v1, v2, _ := c.Lookup(1, 1)
	if v1 != 10 || v2 != 10 {
		t.Fatalf("chained map should keep first writer: got %d,%d", v1, v2)
	}
}

func TestChainedMiss(t *testing.T) {
	c := pairmap.NewChained(8)
	c.Insert(1, 1, 10, 10)
	if _, _, ok := c.Lookup(2, 2); ok {
		t.Fatalf("Lookup(2,2) should miss")
	}
}

func TestChainedManyEntriesAndResize(t *testing.T) {
	c := pairmap.NewChained(4)
	const n = 500
	for i := uint32(0); i < n; i++ {
		c.Insert(i, i+1, i*2, i*3)
	}
	for i := uint32(0); i < n; i++ {
		v1, v2, ok := c.Lookup(i, i+1)
		if !ok || v1 != i*2 || v2 != i*3 {
			t.Fatalf("Lookup(%d,%d) = %d,%d,%v want %d,%d,true", i, i+1, v1, v2, ok, i*2, i*3)
		}
	}
}

func TestNextPrimeFixedPointOnPrimes(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 13, 97, 997, 7919, 99991}
	for _, p := range primes {
		if got := pairmap.NextPrime(p); got != p {
			t.Errorf("NextPrime(%d) = %d, want %d (fixed point on primes)", p, got, p)
		}
	}
}

func TestNextPrimeAboveComposite(t *testing.T) {
	if got := pairmap.NextPrime(100); got != 101 {
		t.Errorf("NextPrime(100) = %d, want 101", got)
	}
	if got := pairmap.NextPrime(1); got != 2 {
		t.Errorf("NextPrime(1) = %d, want 2", got)
	}
}

func TestDenseAndChainedAgree(t *testing.T) {
	d := pairmap.NewDense(10)
	c := pairmap.NewChained(20)
	for k1 := uint32(0); k1 < 10; k1++ {
		for k2 := uint32(0); k2 < 10; k2++ {
			v1 := (k1 + k2) % 10
			v2 := (k1 * k2) % 10
			d.Insert(k1, k2, v1, v2)
			c.Insert(k1, k2, v1, v2)
		}
	}
	for k1 := uint32(0); k1 < 10; k1++ {
		for k2 := uint32(0); k2 < 10; k2++ {
			dv1, dv2, _ := d.Lookup(k1, k2)
			cv1, cv2, _ := c.Lookup(k1, k2)
			if dv1 != cv1 || dv2 != cv2 {
				t.Fatalf("dense/chained disagree at (%d,%d): %d,%d vs %d,%d", k1, k2, dv1, dv2, cv1, cv2)
			}
		}
	}
}
