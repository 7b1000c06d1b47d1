package chcdata

import "fmt"

// Sample is a fully applied predicate: a predicate name paired with a
// concrete (possibly partial) argument tuple.
type Sample struct {
	Pred PredId
	Args *Args
}

// NewSample builds a Sample. Args is expected to already be hashconsed
// through NewArgs.
func NewSample(pred PredId, args *Args) Sample {
	return Sample{Pred: pred, Args: args}
}

// IsPartial reports whether the sample's argument tuple is partial.
func (s Sample) IsPartial() bool { return s.Args.IsPartial() }

// String renders the sample for debug output.
func (s Sample) String() string {
	return fmt.Sprintf("p%d%s", s.Pred, s.Args)
}

// Equal reports whether two samples denote the same predicate application,
// by hashcons identity of their argument tuples.
func (s Sample) Equal(other Sample) bool {
	return s.Pred == other.Pred && s.Args == other.Args
}
