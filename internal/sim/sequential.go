package sim

import "github.com/jihwankim/popproto/internal/urn"

// RunSequential drives nsteps individual interactions against u: each step
// draws two agents, applies delta, and reinserts the two resulting states.
// Works against any urn flavor, since it only uses the shared Urn
// interface. cstep = nsteps/nsnap; a row is captured every time the step
// counter crosses a multiple of cstep, with the final row always the
// end-of-run configuration.
func RunSequential(u urn.Urn, delta *Delta, nsteps, nsnap uint64) Snapshots {
	nstates := u.NColors()
	snaps := NewSnapshots(nsnap, nstates)
	u.Dist(snaps[0])

	cstep := nsteps / nsnap
	j := uint64(1)

	for i := uint64(1); i <= nsteps; i++ {
		p1 := u.Draw()
		q1 := u.Draw()
		p2, q2 := delta.Apply(p1, q1)
		u.CInsert(p2, 1)
		u.CInsert(q2, 1)

		if j <= nsnap && cstep > 0 && i == j*cstep {
			u.Dist(snaps[j])
			j++
		}
	}
	u.Dist(snaps[nsnap])
	return snaps
}
