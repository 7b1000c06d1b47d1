package chcdata

import (
	"context"
	"time"
)

// state is the single-mutator propagation engine behind Data, gluing
// together the sample store, staging queue, constraint store, and
// dependency graph. It has no lock of its own: Data calls it only while
// holding Data's mutex (see doc.go).
type state struct {
	cfg       Config
	predTab   PredTable
	clauseTab ClauseTable
	samples   *sampleStore
	staging   *staging
	cstrs     *cstrStore
	dep       *depGraph
}

func newState(cfg Config, predTab PredTable, clauseTab ClauseTable) *state {
	return &state{
		cfg:       cfg,
		predTab:   predTab,
		clauseTab: clauseTab,
		samples:   newSampleStore(),
		staging:   newStaging(),
		cstrs:     newCstrStore(),
		dep:       newDepGraph(cfg.TrackSamples),
	}
}

// checkSuspension implements the single cooperative suspension point used
// throughout the engine: a context cancellation or a configured timeout
// both abort the current call with a dedicated error, matching the
// "suspension points checked explicitly" concurrency model rather than
// preemptive goroutine scheduling.
func checkSuspension(ctx context.Context, deadline time.Time) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return &TimeoutError{Deadline: deadline}
	}
	return nil
}

func (st *state) deadline() time.Time {
	if st.cfg.Timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(st.cfg.Timeout)
}

// stageRaw enqueues a freshly asserted ground sample for propagation
// without touching the permanent store directly; propagate() is what
// merges it in and forces it against live constraints.
func (st *state) stageRaw(pred PredId, args *Args, pol bool) {
	st.staging.add(pred, args, pol)
}

// propagate drains the staging queue to a local fixed point: each popped
// batch is merged into the permanent pos/neg store, resolved against the
// inverse index, and forced through every constraint that mentions it,
// possibly staging further samples or tautologizing constraints. Once
// the queue is empty, every constraint touched this pass is re-checked
// for order-minimality, the whole store is scanned for a pos/neg
// collision, and the constraint vector's trailing tautology suffix (if
// any) is trimmed.
func (st *state) propagate(ctx context.Context) error {
	deadline := st.deadline()

	for {
		if err := checkSuspension(ctx, deadline); err != nil {
			return err
		}
		pred, argss, pol, ok := st.staging.pop()
		if !ok {
			break
		}
		for _, args := range argss {
			if err := checkSuspension(ctx, deadline); err != nil {
				return err
			}
			if err := st.absorb(pred, args, pol); err != nil {
				return err
			}
		}
	}

	for _, id := range st.cstrs.drainModded() {
		st.cstrs.cstrUseful(id)
	}

	if pos, neg, ok := st.samples.isUnsat(); ok {
		return &UnsatError{Pos: pos, Neg: neg, Core: st.dep.unsatCore(pos, neg)}
	}

	st.cstrs.shrinkConstraints()
	return nil
}

// absorb merges one newly-forced (pred, args, pol) sample into the
// permanent store and resolves it against every live constraint that
// mentions an atom it subsumes.
func (st *state) absorb(pred PredId, args *Args, pol bool) error {
	st.samples.targetSet(pred, pol).InsertMinimal(args)

	affected := st.cstrs.index.removeSubs(pred, args)
	cause := NewSample(pred, args)

	for id := range affected {
		c := st.cstrs.get(id)
		if c == nil {
			continue
		}
		res := c.forceSample(pred, args, pol)
		switch res.outcome {
		case foTautology:
			st.dep.recordForcing(cause, id, Sample{}, false)
			st.cstrs.tautologize(id)
		case foModified:
			st.cstrs.markModded(id)
		case foTrivial:
			st.dep.recordForcing(cause, id, res.sample, false)
			st.cstrs.tautologize(id)
			st.staging.add(res.sample.Pred, res.sample.Args, res.pol)
		case foContradiction:
			st.dep.recordForcing(cause, id, Sample{}, true)
			core := st.dep.unsatCoreFromContradiction(id, cause)
			return &UnsatError{Cause: cause, Core: core}
		}
	}
	return nil
}

// forcePred asserts that predicate p is constantly pol for every
// possible argument tuple, applying it to every live constraint
// mentioning p and staging whatever that forcing yields, then
// propagating to a fixed point.
func (st *state) forcePred(ctx context.Context, p PredId, pol bool) error {
	ids := st.cstrs.index.similar(p)
	st.cstrs.index.forgetPred(p)

	for id := range ids {
		c := st.cstrs.get(id)
		if c == nil {
			continue
		}
		res := c.force(p, pol)
		switch res.outcome {
		case foTautology:
			st.cstrs.tautologize(id)
		case foModified:
			st.cstrs.markModded(id)
		case foTrivial:
			st.cstrs.tautologize(id)
			st.staging.add(res.sample.Pred, res.sample.Args, res.pol)
		case foContradiction:
			return &UnsatError{Core: []CstrId{id}}
		}
	}
	return st.propagate(ctx)
}
