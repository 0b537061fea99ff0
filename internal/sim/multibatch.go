package sim

import (
	"math"
	"time"

	"github.com/jihwankim/popproto/internal/collision"
	"github.com/jihwankim/popproto/internal/hypergeom"
	"github.com/jihwankim/popproto/internal/rng"
	"github.com/jihwankim/popproto/internal/urn"
)

// RunMultiBatched drives nsteps interactions against the BST urn u, at the
// granularity of adaptive-length epochs: each epoch runs the same
// collision-driven bulk pairing as RunBatched up to `epoch` iterations (or
// until nsteps interactions are reached), then grows or shrinks the next
// epoch's length depending on whether its wall-clock throughput improved.
// initialEpoch, if non-zero, overrides the derived starting epoch length
// max(1, nstates^2/log2(N)).
//
// Preconditions: u is a BST urn with N >= 2 agents.
func RunMultiBatched(src rng.Source, u *urn.BST, delta *Delta, nsteps, nsnap uint64, seed uint64, initialEpoch uint64) Snapshots {
	nstates := u.NColors()
	n := uint64(u.NMarbles())
	snaps := NewSnapshots(nsnap, nstates)
	u.Dist(snaps[0])

	cstep := nsteps / nsnap
	j := uint64(1)

	epoch := initialEpoch
	if epoch == 0 {
		epoch = uint64(float64(nstates) * float64(nstates) / math.Log2(float64(n)))
	}
	if epoch < 1 {
		epoch = 1
	}
	dir := int64(1)
	pput := math.Inf(1)

	coll := collision.New(src, n, 0)
	toU64 := make([]uint64, nstates)

	i := uint64(0)
	for i < nsteps {
		start := time.Now()
		var k uint64 // interactions completed this epoch

		un, _ := urn.NewLinear(seed, nstates)
		seed++
		var t uint64 // 2 * pairs accounted for so far this epoch

		for iter := uint64(0); iter < epoch && i+k < nsteps && !u.IsEmpty(); iter++ {
			coll.SetR(t + uint64(un.NMarbles()))

			var l uint64
			if t == 0 {
				for {
					l = coll.Sample()
					if l >= 2 {
						break
					}
				}
			} else {
				l = coll.Sample()
			}
			t += 2 * (l / 2)

			half := l / 2
			if half > 0 {
				u.Dist(toU32(toU64, u))
				ic := make([]uint64, nstates)
				avail := uint64(u.NMarbles())
				if half > avail {
					half = avail
				}
				hypergeom.MHGeom(src, ic, toU64, int(nstates), 2*half)

				removeQs := make([]uint32, nstates)
				for c, q := range ic {
					removeQs[c] = uint32(q)
				}
				_ = u.Remove(removeQs)

				initiators := make([]uint64, nstates)
				hypergeom.MHGeom(src, initiators, ic, int(nstates), half)
				responders := make([]uint64, nstates)
				for c := range ic {
					responders[c] = ic[c] - initiators[c]
				}
				remaining := append([]uint64(nil), responders...)
				rc := make([]uint64, nstates)
				for p1 := uint32(0); p1 < nstates; p1++ {
					if initiators[p1] == 0 {
						continue
					}
					hypergeom.MHGeom(src, rc, remaining, int(nstates), initiators[p1])
					for q1, count := range rc {
						if count == 0 {
							continue
						}
						p2, q2 := delta.Apply(p1, uint32(q1))
						un.CInsert(p2, uint32(count))
						un.CInsert(q2, uint32(count))
						remaining[q1] -= count
					}
				}
			}

			// Resolve the closing pair the same way the single-batch driver
			// does: which urn each endpoint comes from depends only on the
			// parity of L, same as RunBatched's "+1" step. L can be 0 or 1
			// once t > 0, leaving un empty; both endpoints then come from u.
			fstcoll := l%2 == 0
			var p1, q1 uint32
			if un.IsEmpty() {
				p1 = u.Draw()
				q1 = u.Draw()
			} else if fstcoll {
				p1 = un.Draw()
				mergeLinearIntoBST(u, un)
				q1 = u.Draw()
			} else {
				p1 = u.Draw()
				q1 = un.Draw()
				mergeLinearIntoBST(u, un)
			}
			p2, q2 := delta.Apply(p1, q1)
			u.CInsert(p2, 1)
			u.CInsert(q2, 1)
			if t >= 2 {
				t -= 2
			}

			k += half + 1
		}

		// Fold anything still held in un back into u before the epoch's
		// throughput is measured.
		if un.NMarbles() > 0 {
			mergeLinearIntoBST(u, un)
		}

		i += k
		elapsed := time.Since(start).Seconds()
		var cput float64
		if elapsed > 0 {
			cput = float64(k) / elapsed
		} else {
			cput = float64(k)
		}
		if cput < pput {
			dir = -dir
		}
		pput = cput

		next := int64(epoch) + dir
		if next < 1 {
			next = 1
		}
		epoch = uint64(next)

		for j <= nsnap && cstep > 0 && i >= j*cstep {
			u.Dist(snaps[j])
			j++
		}
	}
	snaps.fillRemaining(int(j), u)
	u.Dist(snaps[nsnap])
	return snaps
}

func toU32(dst []uint64, u *urn.BST) []uint32 {
	tmp := make([]uint32, len(dst))
	u.Dist(tmp)
	for i, v := range tmp {
		dst[i] = uint64(v)
	}
	return tmp
}

// mergeLinearIntoBST folds un's entire contents into u, then empties un.
func mergeLinearIntoBST(u *urn.BST, un *urn.Linear) {
	tmp := make([]uint32, un.NColors())
	un.Dist(tmp)
	u.Insert(tmp)
	_ = un.Remove(tmp)
}
