package urn

import "github.com/jihwankim/popproto/internal/rng"

// BST stores cumulative counts in a flat array representing a complete
// binary tree, indexed from 1 (index 0 unused). cstart, the index of the
// first leaf, is the smallest power of two >= ncolors; leaf i holds color
// i - cstart's count, and internal node n holds the total count of its left
// subtree. Sample/draw/insert/remove are O(log cstart).
type BST struct {
	src     source
	ncolors uint32
	cstart  uint32
	tree    []uint32
	total   uint32
}

// NewBST creates an empty BST urn over ncolors colors.
func NewBST(seed uint64, ncolors uint32) (*BST, error) {
	if ncolors == Empty || ncolors == 0 {
		return nil, ErrDomain
	}
	cstart := nextPow2(ncolors)
	return &BST{
		src:     rng.NewMT19937_64(seed),
		ncolors: ncolors,
		cstart:  cstart,
		tree:    make([]uint32, 2*cstart),
	}, nil
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n uint32) uint32 {
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Copy returns an independent deep copy, reseeded with newSeed.
func (b *BST) Copy(newSeed uint64) *BST {
	tree := make([]uint32, len(b.tree))
	copy(tree, b.tree)
	return &BST{
		src:     rng.NewMT19937_64(newSeed),
		ncolors: b.ncolors,
		cstart:  b.cstart,
		tree:    tree,
		total:   b.total,
	}
}

// Sample implements Urn by descending from the root: at each internal node,
// go left if the residual draw falls within the left subtree's count,
// otherwise subtract that count and go right.
func (b *BST) Sample() uint32 {
	if b.total == 0 {
		return Empty
	}
	m := uint32(rng.Urand(b.src, uint64(b.total)))
	idx := uint32(1)
	for idx < b.cstart {
		if m < b.tree[idx] {
			idx = 2 * idx
		} else {
			m -= b.tree[idx]
			idx = 2*idx + 1
		}
	}
	return idx - b.cstart
}

// Draw implements Urn: the same descent as Sample, decrementing every node
// visited on a left turn (its left-subtree sum lost one marble), then the
// leaf itself.
func (b *BST) Draw() uint32 {
	if b.total == 0 {
		return Empty
	}
	m := uint32(rng.Urand(b.src, uint64(b.total)))
	idx := uint32(1)
	for idx < b.cstart {
		if m < b.tree[idx] {
			b.tree[idx]--
			idx = 2 * idx
		} else {
			m -= b.tree[idx]
			idx = 2*idx + 1
		}
	}
	b.tree[idx]--
	b.total--
	return idx - b.cstart
}

// CInsert implements Urn: add q at the leaf, then walk to the root adding q
// to every ancestor for which the child just ascended from is a left child.
func (b *BST) CInsert(c uint32, q uint32) {
	idx := b.cstart + c
	b.tree[idx] += q
	for idx > 1 {
		parent := idx / 2
		if idx%2 == 0 {
			b.tree[parent] += q
		}
		idx = parent
	}
	b.total += q
}

// CRemove implements Urn, symmetric to CInsert.
func (b *BST) CRemove(c uint32, q uint32) error {
	idx := b.cstart + c
	if q > b.tree[idx] {
		return ErrDomain
	}
	b.tree[idx] -= q
	for idx > 1 {
		parent := idx / 2
		if idx%2 == 0 {
			b.tree[parent] -= q
		}
		idx = parent
	}
	b.total -= q
	return nil
}

// Insert implements Urn.
func (b *BST) Insert(qs []uint32) {
	for c, q := range qs {
		b.CInsert(uint32(c), q)
	}
}

// Remove implements Urn.
func (b *BST) Remove(qs []uint32) error {
	for c, q := range qs {
		if q > b.tree[b.cstart+uint32(c)] {
			return ErrDomain
		}
	}
	for c, q := range qs {
		_ = b.CRemove(uint32(c), q)
	}
	return nil
}

// IsEmpty implements Urn.
func (b *BST) IsEmpty() bool { return b.total == 0 }

// CDist implements Urn.
func (b *BST) CDist(c uint32) uint32 { return b.tree[b.cstart+c] }

// Dist implements Urn.
func (b *BST) Dist(out []uint32) {
	for c := uint32(0); c < b.ncolors; c++ {
		out[c] = b.tree[b.cstart+c]
	}
}

// NMarbles implements Urn.
func (b *BST) NMarbles() uint32 { return b.total }

// NColors implements Urn.
func (b *BST) NColors() uint32 { return b.ncolors }
