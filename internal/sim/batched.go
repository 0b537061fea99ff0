package sim

import (
	"github.com/jihwankim/popproto/internal/collision"
	"github.com/jihwankim/popproto/internal/hypergeom"
	"github.com/jihwankim/popproto/internal/rng"
	"github.com/jihwankim/popproto/internal/urn"
)

// RunBatched drives nsteps interactions in bulk against the linear urn u,
// using the birthday-paradox collision sampler to decide, each iteration,
// how many interactions can be advanced at once without any participant
// colliding with another from the same batch.
//
// Preconditions: u is a linear urn with N >= 2 agents.
func RunBatched(src rng.Source, u *urn.Linear, delta *Delta, nsteps, nsnap uint64, seed uint64) Snapshots {
	nstates := u.NColors()
	n := u.NMarbles()
	snaps := NewSnapshots(nsnap, nstates)
	u.Dist(snaps[0])

	cstep := nsteps / nsnap
	j := uint64(1)

	coll := collision.New(src, uint64(n), 0)
	toU64 := make([]uint64, nstates)

	i := uint64(0)
	for i < nsteps {
		coll.SetR(0)

		var l uint64
		for {
			l = coll.Sample()
			if l >= 2 {
				break
			}
		}
		half := l / 2
		m := 2 * half

		un, _ := urn.NewLinear(seed, nstates)
		seed++

		if m > 0 {
			toDistSnap(toU64, u)
			ic := make([]uint64, nstates)
			hypergeom.MHGeom(src, ic, toU64, int(nstates), m)

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
			remainingResp := append([]uint64(nil), responders...)

			rc := make([]uint64, nstates)
			for p1 := uint32(0); p1 < nstates; p1++ {
				if initiators[p1] == 0 {
					continue
				}
				hypergeom.MHGeom(src, rc, remainingResp, int(nstates), initiators[p1])
				for q1, count := range rc {
					if count == 0 {
						continue
					}
					p2, q2 := delta.Apply(p1, uint32(q1))
					un.CInsert(p2, uint32(count))
					un.CInsert(q2, uint32(count))
					remainingResp[q1] -= count
				}
			}
		}

		// The "+1" closing interaction: the collision itself.
		var p1, q1 uint32
		if l%2 == 0 {
			p1 = un.Draw()
			mergeInto(u, un)
			q1 = u.Draw()
		} else {
			p1 = u.Draw()
			q1 = un.Draw()
			mergeInto(u, un)
		}
		p2, q2 := delta.Apply(p1, q1)
		u.CInsert(p2, 1)
		u.CInsert(q2, 1)

		i += half + 1

		for j <= nsnap && cstep > 0 && i >= j*cstep {
			u.Dist(snaps[j])
			j++
		}
	}
	snaps.fillRemaining(int(j), u)
	u.Dist(snaps[nsnap])
	return snaps
}

// toDistSnap is a tiny helper so u.Dist can write into a uint32 scratch
// buffer before it's widened into the uint64 buffer MHGeom expects.
func toDistSnap(dst []uint64, u *urn.Linear) []uint32 {
	tmp := make([]uint32, len(dst))
	u.Dist(tmp)
	for i, v := range tmp {
		dst[i] = uint64(v)
	}
	return tmp
}

// mergeInto folds un's entire contents into u, then empties un.
func mergeInto(u, un *urn.Linear) {
	tmp := make([]uint32, un.NColors())
	un.Dist(tmp)
	u.Insert(tmp)
	_ = un.Remove(tmp)
}
