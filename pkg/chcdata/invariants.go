package chcdata

import (
	multierror "github.com/hashicorp/go-multierror"
)

// checkInvariants re-derives every testable structural invariant against
// the current state and reports every violation found, not just the
// first — this is a diagnostic for tests and the CLI's --check flag,
// never called on a hot path. Any violation is wrapped with
// ErrInconsistentState, so a caller can distinguish "the store is
// internally broken" from other error kinds with errors.Is.
func (st *state) checkInvariants() error {
	var acc *multierror.Error

	acc = st.checkAntichainMinimality(acc)
	acc = st.checkNoPosNegCollision(acc)
	acc = st.checkIndexExact(acc)
	acc = st.checkConstraintOrderMinimal(acc)
	acc = st.checkStagingDrained(acc)

	if err := acc.ErrorOrNil(); err != nil {
		return inconsistentf("%s", err.Error())
	}
	return nil
}

// checkAntichainMinimality checks that pos[p] and neg[p] never contain
// two distinct, ⊑-comparable elements.
func (st *state) checkAntichainMinimality(acc *multierror.Error) *multierror.Error {
	check := func(p PredId, ac *antichain, which string) {
		elems := ac.Slice()
		for i := range elems {
			for j := i + 1; j < len(elems); j++ {
				if ArgsCompare(elems[i], elems[j]) != Incomparable {
					acc = appendViolation(acc, "predicate %d: %s antichain holds comparable elements %s and %s",
						p, which, elems[i], elems[j])
				}
			}
		}
	}
	for p, ac := range st.samples.pos {
		check(p, ac, "pos")
	}
	for p, ac := range st.samples.neg {
		check(p, ac, "neg")
	}
	return acc
}

// checkNoPosNegCollision checks that once propagate() has quiesced, no
// predicate has a ⊑-comparable pos/neg pair (that would have been
// reported as an UnsatError instead).
func (st *state) checkNoPosNegCollision(acc *multierror.Error) *multierror.Error {
	if pos, neg, ok := st.samples.isUnsat(); ok {
		acc = appendViolation(acc, "pos %s and neg %s are ⊑-comparable but store was not reported unsat", pos, neg)
	}
	return acc
}

// checkIndexExact checks that the inverse index contains exactly the
// literal atoms of every live constraint, in both directions.
func (st *state) checkIndexExact(acc *multierror.Error) *multierror.Error {
	seen := make(map[PredId]map[*Args]map[CstrId]struct{})
	mark := func(p PredId, args *Args, id CstrId) {
		byArgs, ok := seen[p]
		if !ok {
			byArgs = make(map[*Args]map[CstrId]struct{})
			seen[p] = byArgs
		}
		set, ok := byArgs[args]
		if !ok {
			set = make(map[CstrId]struct{})
			byArgs[args] = set
		}
		set[id] = struct{}{}
	}

	for _, c := range st.cstrs.constraints {
		if c == nil || c.tautology {
			continue
		}
		for p, set := range c.lhs {
			for args := range set {
				mark(p, args, c.id)
			}
		}
		if c.rhs != nil {
			mark(c.rhs.Pred, c.rhs.Args, c.id)
		}
	}

	for p, byArgs := range seen {
		for args, ids := range byArgs {
			indexed := st.cstrs.index.bucket(p, args)
			for id := range ids {
				if _, ok := indexed[id]; !ok {
					acc = appendViolation(acc, "constraint %d mentions (%d, %s) but the index has no link for it", id, p, args)
				}
			}
		}
	}
	for p, byArgs := range st.cstrs.index.byPred {
		for args, ids := range byArgs {
			derived := seen[p][args]
			for id := range ids {
				if _, ok := derived[id]; !ok {
					acc = appendViolation(acc, "index links (%d, %s) to constraint %d but that constraint does not mention it", p, args, id)
				}
			}
		}
	}
	return acc
}

// checkConstraintOrderMinimal checks that no two live constraints are
// comparable under the constraint order.
func (st *state) checkConstraintOrderMinimal(acc *multierror.Error) *multierror.Error {
	var live []*constraint
	for _, c := range st.cstrs.constraints {
		if c != nil && !c.tautology {
			live = append(live, c)
		}
	}
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			if compareConstraints(live[i], live[j]) != Incomparable {
				acc = appendViolation(acc, "constraints %d and %d are comparable under the constraint order", live[i].id, live[j].id)
			}
		}
	}
	return acc
}

// checkStagingDrained checks that after propagate() returns without
// error, the staging queue is empty.
func (st *state) checkStagingDrained(acc *multierror.Error) *multierror.Error {
	if !st.staging.isEmpty() {
		acc = appendViolation(acc, "staging queue still has pending batches after propagation")
	}
	return acc
}
