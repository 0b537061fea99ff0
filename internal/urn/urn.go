// Package urn implements colored-multiset sampling over a fixed set of
// colors (protocol states), in four flavors with different time/space
// trade-offs: array (swap-remove), linear (per-color counts), BST
// (complete binary tree of cumulative counts), and alias (Vose's
// linear-time alias method, rebuilt in full on every insert and draw; the
// alpha/beta bounds do not gate the rebuild). internal/sim's
// simulators are written against the Urn interface and pick a concrete
// flavor at construction time.
package urn

import (
	"errors"

	"github.com/jihwankim/popproto/internal/rng"
)

// Empty is returned by Sample and Draw when the urn holds no marbles.
const Empty = ^uint32(0)

// ErrUnsupported is returned by CRemove/Remove on urn flavors that don't
// support arbitrary removal (array and alias urns only support insertion and
// draw-driven removal).
var ErrUnsupported = errors.New("urn: operation not supported by this flavor")

// ErrDomain is returned by constructors given an invalid ncolors or, for
// alias urns, invalid rebuild bounds.
var ErrDomain = errors.New("urn: domain error")

// Urn is the shared contract every flavor below implements. Colors are
// identified by their index in [0, NColors()).
type Urn interface {
	// Sample returns a uniformly-chosen marble's color, or Empty if the urn
	// holds no marbles. It does not modify the urn.
	Sample() uint32
	// Draw is Sample followed by removing one marble of the sampled color.
	Draw() uint32
	// CInsert adds q marbles of color c.
	CInsert(c uint32, q uint32)
	// CRemove removes q marbles of color c. Returns ErrUnsupported on
	// flavors that don't support it (array, alias).
	CRemove(c uint32, q uint32) error
	// Insert adds qs[c] marbles of color c for every c.
	Insert(qs []uint32)
	// Remove removes qs[c] marbles of color c for every c. Returns
	// ErrUnsupported on flavors that don't support it (array, alias).
	Remove(qs []uint32) error
	// IsEmpty reports whether the urn holds zero marbles.
	IsEmpty() bool
	// CDist returns the current count of color c.
	CDist(c uint32) uint32
	// Dist fills out[0:NColors()] with the current per-color counts.
	Dist(out []uint32)
	// NMarbles returns the total marble count.
	NMarbles() uint32
	// NColors returns the number of colors the urn was created with.
	NColors() uint32
}

// source is the minimal RNG surface every urn flavor needs.
type source = rng.Source
