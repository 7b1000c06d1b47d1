package chcdata

import (
	"sort"

	"github.com/google/uuid"
)

// depEdge records one propagation step: cause (a staged, now-known sample)
// passed through constraint cstr to either derive produced (a new known
// sample) or to directly witness a contradiction.
type depEdge struct {
	id              uuid.UUID
	cause           Sample
	cstr            CstrId
	produced        Sample
	isContradiction bool
}

// depGraph is the optional dependency hypergraph used to extract an
// unsat core: every constraint on a recorded forcing path that leads to
// the contradiction, without the rest of the accumulated state. The core
// is not reduced to a minimal subset. Building it costs a node+edge per propagation step,
// so it is off by default; callers that want core extraction opt in
// explicitly.
type depGraph struct {
	enabled  bool
	edges    []depEdge
	bySample map[Sample][]int
}

func newDepGraph(enabled bool) *depGraph {
	return &depGraph{enabled: enabled, bySample: make(map[Sample][]int)}
}

// recordForcing logs that forcing `cause` against constraint cstr
// produced `produced` (trivial outcome) or a contradiction.
func (g *depGraph) recordForcing(cause Sample, cstr CstrId, produced Sample, contradiction bool) {
	if !g.enabled {
		return
	}
	e := depEdge{id: uuid.New(), cause: cause, cstr: cstr, produced: produced, isContradiction: contradiction}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.bySample[cause] = append(g.bySample[cause], idx)
	if !contradiction {
		g.bySample[produced] = append(g.bySample[produced], idx)
	}
}

// unsatCore walks backward from the given witness samples (the two
// ⊑-comparable pos/neg samples found by isUnsat, or the single cause of a
// direct "true ⇒ ⊥" contradiction) through every edge that produced them,
// accumulating the constraints responsible. Samples with no recorded
// producing edge are raw/asserted facts and terminate the walk.
func (g *depGraph) unsatCore(witnesses ...Sample) []CstrId {
	if !g.enabled {
		return nil
	}
	seenCstr := make(map[CstrId]struct{})
	seenSample := make(map[Sample]bool)
	queue := append([]Sample{}, witnesses...)

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seenSample[s] {
			continue
		}
		seenSample[s] = true
		for _, idx := range g.bySample[s] {
			e := g.edges[idx]
			if e.isContradiction || e.produced != s {
				continue
			}
			seenCstr[e.cstr] = struct{}{}
			queue = append(queue, e.cause)
		}
	}

	out := make([]CstrId, 0, len(seenCstr))
	for id := range seenCstr {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// unsatCoreFromContradiction is the entry point for the direct "true ⇒ ⊥"
// case: cstr is the constraint that witnessed the contradiction when
// forced by cause.
func (g *depGraph) unsatCoreFromContradiction(cstr CstrId, cause Sample) []CstrId {
	if !g.enabled {
		return nil
	}
	core := []CstrId{cstr}
	core = append(core, g.unsatCore(cause)...)
	sort.Slice(core, func(i, j int) bool { return core[i] < core[j] })
	return dedupCstrIds(core)
}

// merge unions other's recorded edges into g, offsetting other's
// bySample indices by g's current edge count since they index into
// other.edges, not g.edges. A no-op if either side is disabled; callers
// are expected to have already checked that both sides agree on whether
// tracking is enabled.
func (g *depGraph) merge(other *depGraph) {
	if !g.enabled || !other.enabled || len(other.edges) == 0 {
		return
	}
	offset := len(g.edges)
	g.edges = append(g.edges, other.edges...)
	for sample, idxs := range other.bySample {
		shifted := make([]int, len(idxs))
		for i, idx := range idxs {
			shifted[i] = idx + offset
		}
		g.bySample[sample] = append(g.bySample[sample], shifted...)
	}
}

func dedupCstrIds(ids []CstrId) []CstrId {
	out := ids[:0]
	var last CstrId
	first := true
	for _, id := range ids {
		if !first && id == last {
			continue
		}
		out = append(out, id)
		last = id
		first = false
	}
	return out
}
