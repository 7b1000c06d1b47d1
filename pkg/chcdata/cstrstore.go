package chcdata

// cstrStore owns the append-only constraint vector together with its
// inverse index. Constraints are never removed from the slice in
// place — a dead constraint is tautologized (unlinked from the index,
// flagged, left in its slot) so that CstrIds held elsewhere (the
// dependency graph, a CloneNewConstraints cursor) never go stale.
// shrinkConstraints only ever trims a trailing run of tautologized
// slots; an interior tombstone stays exactly where it is, and every
// surviving id keeps its value, for as long as the store lives.
type cstrStore struct {
	constraints []*constraint
	index       *inverseIndex
	modded      map[CstrId]struct{}
	live        int
}

func newCstrStore() *cstrStore {
	return &cstrStore{index: newInverseIndex(), modded: make(map[CstrId]struct{})}
}

// add appends c as a new live constraint, links it into the index, and
// returns its id.
func (s *cstrStore) add(c *constraint) CstrId {
	id := CstrId(len(s.constraints))
	c.id = id
	s.constraints = append(s.constraints, c)
	s.index.linkConstraint(id, c)
	s.live++
	return id
}

// get returns the constraint for id, or nil if it has been tautologized.
func (s *cstrStore) get(id CstrId) *constraint {
	if int(id) < 0 || int(id) >= len(s.constraints) {
		return nil
	}
	c := s.constraints[id]
	if c == nil || c.tautology {
		return nil
	}
	return c
}

// markModded records that id was structurally changed during the current
// propagation pass, so the engine can re-run cstrUseful against it once
// the pass quiesces instead of after every individual force.
func (s *cstrStore) markModded(id CstrId) { s.modded[id] = struct{}{} }

func (s *cstrStore) drainModded() []CstrId {
	out := make([]CstrId, 0, len(s.modded))
	for id := range s.modded {
		out = append(out, id)
	}
	s.modded = make(map[CstrId]struct{})
	return out
}

// tautologize unlinks c from the index and flags it dead; its slot stays
// in the vector (so existing CstrIds held elsewhere, e.g. in the
// dependency graph, stay valid) unless shrinkConstraints later trims it
// as part of the trailing run of tautologized slots.
func (s *cstrStore) tautologize(id CstrId) {
	c := s.constraints[id]
	if c == nil || c.tautology {
		return
	}
	s.index.unlinkConstraint(id, c)
	c.tautology = true
	delete(s.modded, id)
	s.live--
}

// cstrUseful is the order-minimality scan: it compares the constraint at
// id against every other live constraint that shares a predicate with
// it. A constraint that is implied by, or
// subsumed into, a comparable neighbor is tautologized; at most one of
// any ⪯-comparable pair survives. Returns whether id itself is still live
// afterwards.
func (s *cstrStore) cstrUseful(id CstrId) bool {
	c := s.get(id)
	if c == nil {
		return false
	}

	candidates := make(map[CstrId]struct{})
	for p := range c.lhs {
		for other := range s.index.similar(p) {
			candidates[other] = struct{}{}
		}
	}
	if c.rhs != nil {
		for other := range s.index.similar(c.rhs.Pred) {
			candidates[other] = struct{}{}
		}
	}
	delete(candidates, id)

	for otherID := range candidates {
		other := s.get(otherID)
		if other == nil {
			continue
		}
		switch compareConstraints(c, other) {
		case Less, Equal:
			// c is the more general constraint (or they coincide): other is
			// implied by c and is therefore redundant.
			s.tautologize(otherID)
		case Greater:
			// other is the more general constraint: c is redundant, stop
			// immediately.
			s.tautologize(id)
			return false
		case Incomparable:
			// keep both, keep scanning.
		}
	}
	return true
}

// shrinkConstraints peels the trailing run of tautologized slots off the
// constraint vector. It never renumbers a survivor and never disturbs an
// interior tombstone (one with a live slot after it): ids are stable for
// the lifetime of the store, not just between shrinks.
func (s *cstrStore) shrinkConstraints() {
	for len(s.constraints) > 0 {
		last := s.constraints[len(s.constraints)-1]
		if last == nil || !last.tautology {
			break
		}
		s.constraints = s.constraints[:len(s.constraints)-1]
	}
}

// clone deep-copies the constraint store for a snapshot reader. Live
// constraints are value-copied (their Lhs sets rebuilt); *Args/*Sample
// pointers inside them are shared, since those are immutable hashconsed
// values.
func (s *cstrStore) clone() *cstrStore {
	out := newCstrStore()
	out.constraints = make([]*constraint, len(s.constraints))
	for i, c := range s.constraints {
		if c == nil {
			continue
		}
		lhsCopy := make(map[PredId]map[*Args]struct{}, len(c.lhs))
		for p, set := range c.lhs {
			s2 := make(map[*Args]struct{}, len(set))
			for a := range set {
				s2[a] = struct{}{}
			}
			lhsCopy[p] = s2
		}
		nc := &constraint{id: c.id, lhs: lhsCopy, rhs: c.rhs, tautology: c.tautology}
		out.constraints[i] = nc
		if !nc.tautology {
			out.index.linkConstraint(nc.id, nc)
		}
	}
	out.live = s.live
	return out
}
