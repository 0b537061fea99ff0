// Package sim implements the three simulation drivers over a protocol's
// transition function: a sequential per-interaction driver usable with any
// urn flavor, a collision-batched driver over the linear urn, and an
// epoch-adaptive multi-batched driver over the BST urn.
package sim

import "github.com/jihwankim/popproto/internal/pairmap"

// Delta wraps a pair map as the protocol's transition function, defaulting
// to the identity transition for any pair the map doesn't cover.
type Delta struct {
	pm pairmap.PairMap
}

// NewDelta wraps pm as a Delta. A nil pm behaves as the pure identity
// transition.
func NewDelta(pm pairmap.PairMap) *Delta {
	return &Delta{pm: pm}
}

// Apply returns δ(p1, q1): the looked-up pair, or (p1, q1) unchanged if the
// pair isn't in the map.
func (d *Delta) Apply(p1, q1 uint32) (uint32, uint32) {
	if d.pm == nil {
		return p1, q1
	}
	if v1, v2, ok := d.pm.Lookup(p1, q1); ok {
		return v1, v2
	}
	return p1, q1
}
