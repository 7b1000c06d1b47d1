package chcdata

import (
	"github.com/google/btree"
)

// antichain is an ordered set of *Args, kept ⊑-minimal: no element
// subsumes another. It backs both the pos/neg sample store and the
// staging queue, which share the exact same insertion-time eviction
// discipline (deduplicate under subsumption).
//
// The B-tree gives deterministic, ordered iteration by the tuple's
// canonical hashcons key for anything enumerated during propagation or
// tests. Exact membership (Has) is a tree lookup; a subsumption search is
// necessarily a linear scan since ⊑ is only a preorder, not compatible
// with the tree's total order.
type antichain struct {
	tree *btree.BTreeG[*Args]
}

func argsLess(a, b *Args) bool { return a.key < b.key }

func newAntichain() *antichain {
	return &antichain{tree: btree.NewG(32, argsLess)}
}

// Len returns the number of elements.
func (ac *antichain) Len() int { return ac.tree.Len() }

// Has reports exact (hashcons-identity) membership.
func (ac *antichain) Has(a *Args) bool {
	_, ok := ac.tree.Get(a)
	return ok
}

// Slice returns the antichain's elements in ascending hashcons-key order.
func (ac *antichain) Slice() []*Args {
	out := make([]*Args, 0, ac.tree.Len())
	ac.tree.Ascend(func(a *Args) bool {
		out = append(out, a)
		return true
	})
	return out
}

// findSubsuming returns an existing element e with e ⊑ a (e is already at
// least as general as a) — used to decide whether inserting a would add
// anything new.
func (ac *antichain) findSubsuming(a *Args) (*Args, bool) {
	var found *Args
	ac.tree.Ascend(func(e *Args) bool {
		if ArgsSubsumes(e, a) {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// findSubsumed collects every existing element a' with a ⊑ a' (strictly
// more specific than, or equal to, the new element a) — these become
// redundant once a is inserted.
func (ac *antichain) findSubsumed(a *Args) []*Args {
	var out []*Args
	ac.tree.Ascend(func(e *Args) bool {
		if ArgsSubsumes(a, e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// InsertMinimal inserts a into the antichain, maintaining ⊑-minimality:
// if a is already subsumed by some current element, a is dropped and
// InsertMinimal reports false (nothing new). Otherwise a is
// inserted and every current element it subsumes is evicted; InsertMinimal
// reports true.
func (ac *antichain) InsertMinimal(a *Args) bool {
	if _, subsumed := ac.findSubsuming(a); subsumed {
		return false
	}
	for _, redundant := range ac.findSubsumed(a) {
		ac.tree.Delete(redundant)
	}
	ac.tree.ReplaceOrInsert(a)
	return true
}

// clone deep-copies the antichain for a snapshot reader; the underlying
// *Args pointers are shared (they are immutable hashconsed values), only
// the tree structure is duplicated.
func (ac *antichain) clone() *antichain {
	out := newAntichain()
	ac.tree.Ascend(func(a *Args) bool {
		out.tree.ReplaceOrInsert(a)
		return true
	})
	return out
}
