package chcdata

// inverseIndex maps each literal atom (pred, args) appearing in some live
// constraint's Lhs or Rhs to the set of constraint ids that mention it.
// The index must stay exact: no stale or missing links. It is a plain map
// rather than an ordered container: lookups are always by exact hashcons
// identity except in removeSubs, which has to scan the predicate's bucket
// anyway to test subsumption, so a B-tree would add no benefit over a
// map-based index here.
type inverseIndex struct {
	byPred map[PredId]map[*Args]map[CstrId]struct{}
}

func newInverseIndex() *inverseIndex {
	return &inverseIndex{byPred: make(map[PredId]map[*Args]map[CstrId]struct{})}
}

func (ix *inverseIndex) bucket(pred PredId, args *Args) map[CstrId]struct{} {
	byArgs, ok := ix.byPred[pred]
	if !ok {
		byArgs = make(map[*Args]map[CstrId]struct{})
		ix.byPred[pred] = byArgs
	}
	set, ok := byArgs[args]
	if !ok {
		set = make(map[CstrId]struct{})
		byArgs[args] = set
	}
	return set
}

// link records that constraint id mentions the literal atom (pred, args).
func (ix *inverseIndex) link(pred PredId, args *Args, id CstrId) {
	ix.bucket(pred, args)[id] = struct{}{}
}

// unlink removes a single (pred, args) -> id association, pruning empty
// buckets so stale keys never accumulate.
func (ix *inverseIndex) unlink(pred PredId, args *Args, id CstrId) {
	byArgs, ok := ix.byPred[pred]
	if !ok {
		return
	}
	set, ok := byArgs[args]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(byArgs, args)
	}
	if len(byArgs) == 0 {
		delete(ix.byPred, pred)
	}
}

// forgetPred drops every entry for predicate p at once, used by force_pred
// right after it has collected every constraint mentioning p and before
// it forces them.
func (ix *inverseIndex) forgetPred(p PredId) {
	delete(ix.byPred, p)
}

// removeSubs removes from the index every literal atom (pred, s) with
// a ⊑ s: a is the newly forced (possibly partial) sample, so every more
// specific s it covers is resolved at once. It returns the union of
// their constraint ids.
func (ix *inverseIndex) removeSubs(pred PredId, a *Args) map[CstrId]struct{} {
	out := make(map[CstrId]struct{})
	byArgs, ok := ix.byPred[pred]
	if !ok {
		return out
	}
	var toDelete []*Args
	for s, ids := range byArgs {
		if !ArgsSubsumes(a, s) {
			continue
		}
		for id := range ids {
			out[id] = struct{}{}
		}
		toDelete = append(toDelete, s)
	}
	for _, s := range toDelete {
		delete(byArgs, s)
	}
	if len(byArgs) == 0 {
		delete(ix.byPred, pred)
	}
	return out
}

// similar returns every constraint id linked to any atom of predicate p
// (regardless of args), used by cstr_useful to find candidates to compare
// a new constraint against.
func (ix *inverseIndex) similar(p PredId) map[CstrId]struct{} {
	out := make(map[CstrId]struct{})
	byArgs, ok := ix.byPred[p]
	if !ok {
		return out
	}
	for _, ids := range byArgs {
		for id := range ids {
			out[id] = struct{}{}
		}
	}
	return out
}

// linkConstraint links every Lhs/Rhs atom of c into the index under id.
func (ix *inverseIndex) linkConstraint(id CstrId, c *constraint) {
	for p, set := range c.lhs {
		for args := range set {
			ix.link(p, args, id)
		}
	}
	if c.rhs != nil {
		ix.link(c.rhs.Pred, c.rhs.Args, id)
	}
}

// unlinkConstraint removes every Lhs/Rhs atom of c from the index under
// id, used when c is tautologized or otherwise discarded.
func (ix *inverseIndex) unlinkConstraint(id CstrId, c *constraint) {
	for p, set := range c.lhs {
		for args := range set {
			ix.unlink(p, args, id)
		}
	}
	if c.rhs != nil {
		ix.unlink(c.rhs.Pred, c.rhs.Args, id)
	}
}

// clone deep-copies the index for a snapshot reader.
func (ix *inverseIndex) clone() *inverseIndex {
	out := newInverseIndex()
	for p, byArgs := range ix.byPred {
		na := make(map[*Args]map[CstrId]struct{}, len(byArgs))
		for args, ids := range byArgs {
			ns := make(map[CstrId]struct{}, len(ids))
			for id := range ids {
				ns[id] = struct{}{}
			}
			na[args] = ns
		}
		out.byPred[p] = na
	}
	return out
}
