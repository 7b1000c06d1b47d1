package chcdata

import "sort"

// CData is a read-only projected view of one predicate's known samples,
// handed to callers (typically an ICE learner choosing a candidate term)
// via Data.DataOf. Pos and Neg are already ⊑-antichain-minimal, so a
// consumer can iterate them directly without re-checking subsumption.
// Unc holds every argument tuple of this predicate mentioned by some
// still-live constraint: a learner can ask classify to label them once
// more facts have been forced, without needing to re-derive the set
// itself. Labels is populated by classify and keyed by the Unc tuples it
// was asked to label; it is nil until classify has been called at least
// once.
type CData struct {
	Pred   PredId
	Pos    []*Args
	Neg    []*Args
	Unc    []*Args
	Labels map[*Args]Classification
}

func (st *state) dataOf(p PredId) CData {
	cd := CData{
		Pred: p,
		Pos:  st.samples.posSet(p).Slice(),
		Neg:  st.samples.negSet(p).Slice(),
	}
	if byArgs, ok := st.cstrs.index.byPred[p]; ok {
		cd.Unc = make([]*Args, 0, len(byArgs))
		for args := range byArgs {
			cd.Unc = append(cd.Unc, args)
		}
		sort.Slice(cd.Unc, func(i, j int) bool { return cd.Unc[i].key < cd.Unc[j].key })
	}
	return cd
}

// Classification is the result of classifying a concrete argument tuple
// against the current known samples for its predicate.
type Classification int

const (
	// ClassUnknown means this exact tuple is on file as neither a known
	// positive nor a known negative sample.
	ClassUnknown Classification = iota
	// ClassPositive means this exact tuple is on file as a known positive.
	ClassPositive
	// ClassNegative means this exact tuple is on file as a known negative.
	ClassNegative
)

func (k Classification) String() string {
	switch k {
	case ClassPositive:
		return "positive"
	case ClassNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// classify labels every tuple in cd.Unc by exact membership against
// pos[p]/neg[p], mutating cd.Labels in place. This is a pure membership
// lookup, not a subsumption scan: cd.Unc's tuples are assumed to already
// be known to the store (e.g. because dataOf derived them from the live
// constraint index), so no re-check beyond "is this the exact tuple
// already on file" is needed.
func (st *state) classify(p PredId, cd *CData) {
	posAC := st.samples.pos[p]
	negAC := st.samples.neg[p]
	if cd.Labels == nil {
		cd.Labels = make(map[*Args]Classification, len(cd.Unc))
	}
	for _, args := range cd.Unc {
		switch {
		case posAC != nil && posAC.Has(args):
			cd.Labels[args] = ClassPositive
		case negAC != nil && negAC.Has(args):
			cd.Labels[args] = ClassNegative
		default:
			cd.Labels[args] = ClassUnknown
		}
	}
}
