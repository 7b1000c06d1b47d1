package chcdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Atom names one predicate application with concrete arguments, the unit
// callers build Lhs/Rhs out of when asserting a constraint.
type Atom struct {
	Pred PredId
	Args *Args
}

// Data is the top-level, single-mutator CHC sample/constraint store.
// Every mutating method takes an internal lock; concurrent callers that
// only need a read-only view should use DataOf/Classify/SampleGraph,
// which themselves take the lock briefly and hand back an immutable
// snapshot, rather than holding it across their own computation.
type Data struct {
	mu        sync.Mutex
	st        *state
	sinceCstr CstrId
}

// New builds an empty Data instance for the given predicate/clause tables
// and configuration. predTab and clauseTab must outlive Data and are
// treated as immutable.
func New(cfg Config, predTab PredTable, clauseTab ClauseTable) *Data {
	return &Data{st: newState(cfg, predTab, clauseTab)}
}

// AddRawPos asserts that (p, args) is a known-true sample. It only stages
// the fact; call Propagate to drive it to a fixed point.
func (d *Data) AddRawPos(p PredId, args *Args) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.cfg.logger().Trace("stage raw positive", "pred", p, "args", args.String())
	d.st.stageRaw(p, args, true)
}

// AddRawNeg asserts that (p, args) is a known-false sample. It only
// stages the fact; call Propagate to drive it to a fixed point.
func (d *Data) AddRawNeg(p PredId, args *Args) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.cfg.logger().Trace("stage raw negative", "pred", p, "args", args.String())
	d.st.stageRaw(p, args, false)
}

// Propagate drains the staging queue to a local fixed point. It
// returns *UnsatError if the instance is provably unsatisfiable.
func (d *Data) Propagate(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.cfg.observer().Tick("propagate")
	defer d.st.cfg.observer().Mark("propagate")
	return d.st.propagate(ctx)
}

// AddCstr asserts a new implication lhs ⇒ rhs, where rhs == nil denotes
// ⊥. It runs pre-checks against the already-known samples (filtering
// Lhs first, then Rhs), and reports whether a live constraint
// was actually added: a constraint that collapses into a tautology or a
// single trivial conclusion is staged/dropped instead and AddCstr returns
// (0, false, nil).
func (d *Data) AddCstr(ctx context.Context, lhs []Atom, rhs *Atom) (CstrId, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	lhsSet := make(map[PredId]map[*Args]struct{})
	var rhsSample *Sample
	if rhs != nil {
		s := NewSample(rhs.Pred, rhs.Args)
		rhsSample = &s
	}

	for _, atom := range lhs {
		if rhsSample != nil && atom.Pred == rhsSample.Pred && atom.Args == rhsSample.Args {
			// The same atom on both sides makes the implication trivially
			// true no matter what else is in Lhs.
			return 0, false, nil
		}
		if negAC, ok := d.st.samples.neg[atom.Pred]; ok {
			if _, ok := negAC.findSubsuming(atom.Args); ok {
				// This Lhs atom is already known false: the conjunction is
				// false, so the implication is vacuously true.
				return 0, false, nil
			}
		}
		if posAC, ok := d.st.samples.pos[atom.Pred]; ok {
			if _, ok := posAC.findSubsuming(atom.Args); ok {
				// Already known true: vacuous in the conjunction, drop it.
				continue
			}
		}
		set, ok := lhsSet[atom.Pred]
		if !ok {
			set = make(map[*Args]struct{})
			lhsSet[atom.Pred] = set
		}
		set[atom.Args] = struct{}{}
	}

	if rhsSample != nil {
		if posAC, ok := d.st.samples.pos[rhsSample.Pred]; ok {
			if _, ok := posAC.findSubsuming(rhsSample.Args); ok {
				// Rhs already known true: trivially satisfied.
				return 0, false, nil
			}
		}
		if negAC, ok := d.st.samples.neg[rhsSample.Pred]; ok {
			if _, ok := negAC.findSubsuming(rhsSample.Args); ok {
				// Rhs already known false: collapses to a negative constraint.
				rhsSample = nil
			}
		}
	}

	c := newConstraint(lhsSet, rhsSample)
	switch kind, sample, pol := c.isTrivial(); kind {
	case trivialSingle:
		d.st.staging.add(sample.Pred, sample.Args, pol)
		return 0, false, nil
	case trivialContradiction:
		return 0, false, errors.Wrap(ErrUnsat, "add_cstr: true => bot")
	}

	id := d.st.cstrs.add(c)
	if !d.st.cstrs.cstrUseful(id) {
		return 0, false, nil
	}
	d.st.cfg.observer().Count("constraints added", 1)
	return id, true, nil
}

// ForcePred asserts that predicate p is constantly pol for every possible
// argument tuple, forces it through every live constraint mentioning p,
// and propagates the fallout to a fixed point.
func (d *Data) ForcePred(ctx context.Context, p PredId, pol bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st.forcePred(ctx, p, pol)
}

// MergeSamples drains other's pos/neg samples through d's staging queue
// and propagates the result, returning how many positive and negative
// samples were drained. Both instances must agree on dependency tracking
// (Config.TrackSamples); a mismatch is a hard programming error, not
// something to paper over, since the resulting dependency graph would
// silently lose provenance for half its edges. When both sides track,
// other's dependency graph is merged into d's too, so the newly merged
// samples keep their justification edges.
func (d *Data) MergeSamples(ctx context.Context, other *Data) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	other.mu.Lock()
	defer other.mu.Unlock()

	if d.st.dep.enabled != other.st.dep.enabled {
		return 0, 0, errors.Wrap(ErrInconsistentDependency, "MergeSamples: dependency tracking differs between stores")
	}

	var posAdded, negAdded int
	for p, ac := range other.st.samples.pos {
		for _, args := range ac.Slice() {
			d.st.stageRaw(p, args, true)
			posAdded++
		}
	}
	for p, ac := range other.st.samples.neg {
		for _, args := range ac.Slice() {
			d.st.stageRaw(p, args, false)
			negAdded++
		}
	}

	if d.st.dep.enabled {
		d.st.dep.merge(other.st.dep)
	}

	if err := d.st.propagate(ctx); err != nil {
		return posAdded, negAdded, err
	}
	return posAdded, negAdded, nil
}

// DataOf returns a snapshot of predicate p's known positive/negative
// samples.
func (d *Data) DataOf(p PredId) CData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st.dataOf(p)
}

// Classify reports whether (p, args) is covered by a known positive or
// negative sample, by exact membership (no subsumption). It is a thin
// single-tuple convenience built on top of the batch classify that
// ClassifyBatch exposes directly.
func (d *Data) Classify(p PredId, args *Args) Classification {
	d.mu.Lock()
	defer d.mu.Unlock()
	cd := CData{Pred: p, Unc: []*Args{args}}
	d.st.classify(p, &cd)
	return cd.Labels[args]
}

// ClassifyBatch labels every tuple in cd.Unc in place, mutating
// cd.Labels. Typically called with a CData previously obtained from
// DataOf, once new facts may have resolved some of its uncertain tuples.
func (d *Data) ClassifyBatch(cd *CData) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.classify(cd.Pred, cd)
}

// IsUnsat reports whether the store currently holds a ⊑-comparable
// pos/neg pair for some predicate; it does not itself run propagation.
func (d *Data) IsUnsat() (pos, neg Sample, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st.samples.isUnsat()
}

// ConstraintAtom is the exported projection of one Lhs/Rhs atom.
type ConstraintAtom struct {
	Pred PredId
	Args *Args
}

// ConstraintView is a read-only projection of a live constraint, handed
// out by CloneNewConstraints.
type ConstraintView struct {
	ID  CstrId
	Lhs []ConstraintAtom
	Rhs *ConstraintAtom
}

func exportConstraint(c *constraint) ConstraintView {
	view := ConstraintView{ID: c.id}
	for p, set := range c.lhs {
		for args := range set {
			view.Lhs = append(view.Lhs, ConstraintAtom{Pred: p, Args: args})
		}
	}
	if c.rhs != nil {
		view.Rhs = &ConstraintAtom{Pred: c.rhs.Pred, Args: c.rhs.Args}
	}
	return view
}

// CloneNewConstraints returns every live constraint added since the last
// call (or since New, on the first call), as immutable snapshots safe to
// hand to another goroutine — internal/dispatch uses this to fan the
// latest constraints out to a worker pool.
func (d *Data) CloneNewConstraints() []ConstraintView {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []ConstraintView
	for id := d.sinceCstr; int(id) < len(d.st.cstrs.constraints); id++ {
		c := d.st.cstrs.constraints[id]
		if c == nil || c.tautology {
			continue
		}
		out = append(out, exportConstraint(c))
	}
	d.sinceCstr = CstrId(len(d.st.cstrs.constraints))
	return out
}

// ShrinkConstraints physically drops the constraint vector's trailing run
// of tautologized slots. Propagate already does this at the end of every
// round; exposed here for a caller that wants to force it independently,
// e.g. after a burst of ForcePred calls with no intervening Propagate.
// Ids never shift, so d.sinceCstr and any CstrId held by the dependency
// graph stay valid across the call without adjustment.
func (d *Data) ShrinkConstraints() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.st.cstrs.shrinkConstraints()
}

// DepEdgeView is the exported projection of one dependency-graph edge.
type DepEdgeView struct {
	Cause         Sample
	Cstr          CstrId
	Produced      Sample
	Contradiction bool
}

// SampleGraph returns the recorded dependency-graph edges, empty unless
// Config.TrackSamples is set.
func (d *Data) SampleGraph() []DepEdgeView {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DepEdgeView, 0, len(d.st.dep.edges))
	for _, e := range d.st.dep.edges {
		out = append(out, DepEdgeView{Cause: e.cause, Cstr: e.cstr, Produced: e.produced, Contradiction: e.isContradiction})
	}
	return out
}

// CheckInvariants re-derives every testable structural invariant and
// reports every violation found.
func (d *Data) CheckInvariants() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.st.checkInvariants()
}

// String dumps a human-readable snapshot of the store, for debugging and
// the CLI's default output.
func (d *Data) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	pos, neg := d.st.samples.posNegCount()
	live := 0
	for _, c := range d.st.cstrs.constraints {
		if c != nil && !c.tautology {
			live++
		}
	}
	lines := []string{fmt.Sprintf("samples: %d positive, %d negative; constraints: %d live", pos, neg, live)}
	for _, c := range d.st.cstrs.constraints {
		if c == nil || c.tautology {
			continue
		}
		lines = append(lines, "  "+c.String())
	}
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
