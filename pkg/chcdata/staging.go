package chcdata

// stagedKey identifies one (predicate, polarity) pending batch in the
// staging queue.
type stagedKey struct {
	pred PredId
	pol  bool
}

// staging is the staging queue: a temporary buffer of newly discovered
// labeled samples awaiting propagation. Both the pos and neg sets are
// kept subsumption-minimal internally, reusing the same antichain
// eviction discipline as the sample store.
type staging struct {
	pos    map[PredId]*antichain
	neg    map[PredId]*antichain
	queue  []stagedKey
	queued map[stagedKey]bool
}

func newStaging() *staging {
	return &staging{
		pos:    make(map[PredId]*antichain),
		neg:    make(map[PredId]*antichain),
		queued: make(map[stagedKey]bool),
	}
}

func (s *staging) setFor(pred PredId, pol bool) *antichain {
	m := s.neg
	if pol {
		m = s.pos
	}
	ac, ok := m[pred]
	if !ok {
		ac = newAntichain()
		m[pred] = ac
	}
	return ac
}

func (s *staging) resetSetFor(pred PredId, pol bool) {
	m := s.neg
	if pol {
		m = s.pos
	}
	m[pred] = newAntichain()
}

// add enqueues a labeled sample, deduplicating it against whatever is
// already pending for that (pred, pol) under subsumption: an insert that
// is itself subsumed by a pending sample is dropped, and an insert that
// subsumes pending samples evicts them. Reports whether anything
// new was staged.
func (s *staging) add(pred PredId, args *Args, pol bool) bool {
	set := s.setFor(pred, pol)
	inserted := set.InsertMinimal(args)
	if inserted {
		key := stagedKey{pred: pred, pol: pol}
		if !s.queued[key] {
			s.queued[key] = true
			s.queue = append(s.queue, key)
		}
	}
	return inserted
}

// pop drains one (predicate, polarity) batch from the queue, in FIFO
// order of first staging. Any drain order reaches the same fixpoint;
// FIFO just gives deterministic test behavior. Reports false once the
// queue is empty.
func (s *staging) pop() (pred PredId, argss []*Args, pol bool, ok bool) {
	for len(s.queue) > 0 {
		key := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.queued, key)

		set := s.setFor(key.pred, key.pol)
		if set.Len() == 0 {
			continue
		}
		argss = set.Slice()
		s.resetSetFor(key.pred, key.pol)
		return key.pred, argss, key.pol, true
	}
	return 0, nil, false, false
}

// isEmpty reports whether the staging queue has no pending batches.
func (s *staging) isEmpty() bool { return len(s.queue) == 0 }
