package chcdata

import (
	"fmt"
	"sort"
	"strings"
)

// constraint is an implication constraint Lhs ⇒ Rhs. Lhs is a
// conjunction of predicate applications, grouped by predicate; Rhs is
// either a Sample (the conclusion) or nil, which denotes ⊥ (false).
//
// Partial samples are never allowed inside a live constraint's shape
// (only the pos/neg sample store may hold partial tuples); every atom
// here is a fully concrete Args. force_sample/force still match such an
// atom via ArgsSubsumes rather than plain equality, because a forced
// sample itself may be partial (a family of concrete tuples) when
// Config.Partial is on, and the match condition is "the forced family
// covers this literal atom".
type constraint struct {
	id        CstrId
	lhs       map[PredId]map[*Args]struct{}
	rhs       *Sample
	tautology bool
}

func newConstraint(lhs map[PredId]map[*Args]struct{}, rhs *Sample) *constraint {
	if lhs == nil {
		lhs = make(map[PredId]map[*Args]struct{})
	}
	return &constraint{lhs: lhs, rhs: rhs}
}

// lhsCount returns the total number of Lhs atoms across every predicate.
func (c *constraint) lhsCount() int {
	n := 0
	for _, set := range c.lhs {
		n += len(set)
	}
	return n
}

// lhsContains reports whether args (by hashcons identity) is literally an
// Lhs atom of predicate p.
func (c *constraint) lhsContains(p PredId, args *Args) bool {
	set, ok := c.lhs[p]
	if !ok {
		return false
	}
	_, ok = set[args]
	return ok
}

// shape classifies the constraint: normal (both sides nonempty),
// positive (Lhs empty, Rhs present), or negative (Rhs == ⊥).
type shape int

const (
	shapeNormal shape = iota
	shapePositive
	shapeNegative
)

func (c *constraint) shape() shape {
	switch {
	case c.rhs == nil:
		return shapeNegative
	case c.lhsCount() == 0:
		return shapePositive
	default:
		return shapeNormal
	}
}

// String renders the constraint for debug output.
func (c *constraint) String() string {
	var lhsParts []string
	preds := make([]int, 0, len(c.lhs))
	for p := range c.lhs {
		preds = append(preds, int(p))
	}
	sort.Ints(preds)
	for _, pi := range preds {
		p := PredId(pi)
		for args := range c.lhs[p] {
			lhsParts = append(lhsParts, NewSample(p, args).String())
		}
	}
	rhs := "false"
	if c.rhs != nil {
		rhs = c.rhs.String()
	}
	tag := ""
	if c.tautology {
		tag = " [tautology]"
	}
	if len(lhsParts) == 0 {
		return fmt.Sprintf("true => %s%s", rhs, tag)
	}
	return fmt.Sprintf("%s => %s%s", strings.Join(lhsParts, " /\\ "), rhs, tag)
}

// trivialityKind classifies the outcome of isTrivial.
type trivialityKind int

const (
	notTrivial trivialityKind = iota
	trivialSingle
	trivialContradiction
)

// isTrivial classifies a constraint that has degenerated to a single
// conclusion: an empty Lhs with a concrete Rhs degenerates to "that
// sample is positive"; a singleton Lhs
// with Rhs == ⊥ degenerates to "that sample is negative"; an empty Lhs
// with Rhs == ⊥ is the "true ⇒ ⊥" contradiction.
func (c *constraint) isTrivial() (trivialityKind, Sample, bool) {
	n := c.lhsCount()
	switch {
	case n == 0 && c.rhs != nil:
		return trivialSingle, *c.rhs, true
	case n == 0 && c.rhs == nil:
		return trivialContradiction, Sample{}, false
	case n == 1 && c.rhs == nil:
		for p, set := range c.lhs {
			for args := range set {
				return trivialSingle, NewSample(p, args), false
			}
		}
		panic("unreachable: lhsCount==1 but no atom found")
	default:
		return notTrivial, Sample{}, false
	}
}

// forceOutcome is the result of forceSample/force.
type forceOutcome int

const (
	foModified forceOutcome = iota
	foTautology
	foTrivial
	foContradiction
)

type forceResult struct {
	outcome forceOutcome
	sample  Sample
	pol     bool
}

// forceSample mutates c in place to account for the newly known fact
// "(pred, args) has label pol", matching the atom against c's Lhs/Rhs via
// ArgsSubsumes (so a partial forced sample also forces every literal atom
// it subsumes). See the constraint doc comment for why subsumption, not
// equality, is the match condition.
func (c *constraint) forceSample(pred PredId, args *Args, pol bool) forceResult {
	if pol {
		// A positive fact: any matching Lhs atom becomes vacuously true and
		// is removed; if it matches the Rhs, the whole implication is
		// trivially satisfied (tautology) regardless of the Lhs.
		c.removeLhsSubsumed(pred, args)
		if c.rhs != nil && c.rhs.Pred == pred && ArgsSubsumes(args, c.rhs.Args) {
			c.tautology = true
			return forceResult{outcome: foTautology}
		}
	} else {
		// A negative fact: a matching Lhs atom is now known false, making
		// the conjunction false and the implication vacuously true
		// (tautology) regardless of the Rhs.
		if c.lhsHasSubsumed(pred, args) {
			c.tautology = true
			return forceResult{outcome: foTautology}
		}
		if c.rhs != nil && c.rhs.Pred == pred && ArgsSubsumes(args, c.rhs.Args) {
			c.rhs = nil
		}
	}

	switch kind, sample, spol := c.isTrivial(); kind {
	case trivialSingle:
		return forceResult{outcome: foTrivial, sample: sample, pol: spol}
	case trivialContradiction:
		return forceResult{outcome: foContradiction}
	default:
		return forceResult{outcome: foModified}
	}
}

// force is the predicate-wide version used by forcePred: it removes
// every atom of predicate p at once rather than a single tuple.
func (c *constraint) force(pred PredId, pol bool) forceResult {
	if pol {
		delete(c.lhs, pred)
		if c.rhs != nil && c.rhs.Pred == pred {
			c.tautology = true
			return forceResult{outcome: foTautology}
		}
	} else {
		if set, ok := c.lhs[pred]; ok && len(set) > 0 {
			c.tautology = true
			return forceResult{outcome: foTautology}
		}
		if c.rhs != nil && c.rhs.Pred == pred {
			c.rhs = nil
		}
	}

	switch kind, sample, spol := c.isTrivial(); kind {
	case trivialSingle:
		return forceResult{outcome: foTrivial, sample: sample, pol: spol}
	case trivialContradiction:
		return forceResult{outcome: foContradiction}
	default:
		return forceResult{outcome: foModified}
	}
}

func (c *constraint) lhsHasSubsumed(pred PredId, args *Args) bool {
	set, ok := c.lhs[pred]
	if !ok {
		return false
	}
	for atom := range set {
		if ArgsSubsumes(args, atom) {
			return true
		}
	}
	return false
}

func (c *constraint) removeLhsSubsumed(pred PredId, args *Args) {
	set, ok := c.lhs[pred]
	if !ok {
		return
	}
	var toRemove []*Args
	for atom := range set {
		if ArgsSubsumes(args, atom) {
			toRemove = append(toRemove, atom)
		}
	}
	for _, atom := range toRemove {
		delete(set, atom)
	}
	if len(set) == 0 {
		delete(c.lhs, pred)
	}
}

// lhsSuperset reports whether big's Lhs contains, for every predicate in
// small's Lhs, every atom small has for that predicate (plain set
// inclusion per position, by hashcons identity — constraints never hold
// partial atoms, so no subsumption scan is needed here).
func lhsSuperset(big, small *constraint) bool {
	for p, smallSet := range small.lhs {
		bigSet, ok := big.lhs[p]
		if !ok {
			return false
		}
		for atom := range smallSet {
			if _, ok := bigSet[atom]; !ok {
				return false
			}
		}
	}
	return true
}

// rhsMatches is the Rhs condition for the constraint order: c1's Rhs
// matches c2's Rhs if they are literally the same sample, or if
// c1 is negative (Rhs == ⊥) — a negative constraint is the strongest
// possible conclusion and absorbs any positive/normal Rhs.
func rhsMatches(c1, c2 *constraint) bool {
	if c1.rhs == nil {
		return true
	}
	if c2.rhs == nil {
		return false
	}
	return c1.rhs.Pred == c2.rhs.Pred && c1.rhs.Args == c2.rhs.Args
}

// precedes reports whether c1 ⪯ c2: c1 implies c2, so c2 is redundant in
// c1's presence.
func precedes(c1, c2 *constraint) bool {
	return lhsSuperset(c2, c1) && rhsMatches(c1, c2)
}

// compareConstraints compares two live constraints under ⪯, returning
// Incomparable when neither implies the other (the only case that should
// survive between two live constraints).
func compareConstraints(c1, c2 *constraint) Ordering {
	if c1 == c2 {
		return Equal
	}
	lte := precedes(c1, c2)
	gte := precedes(c2, c1)
	switch {
	case lte && gte:
		return Equal
	case lte:
		return Less
	case gte:
		return Greater
	default:
		return Incomparable
	}
}
