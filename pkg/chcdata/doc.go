// Package chcdata implements the learning-data engine of a Constrained Horn
// Clause (CHC) solver: a content-addressed store of positive samples,
// negative samples, and implication constraints over predicate
// applications, together with the incremental propagation, subsumption,
// and tautology-reduction algorithms that keep the store canonical.
//
// The engine is single-threaded cooperative: every method of *Data takes
// the instance's internal mutex, so calls on one Data are serialized.
// Readers get copies (CloneNewConstraints, DataOf) rather than references
// into the store. The hashcons tables have their own locks so that Data
// instances can share them.
package chcdata
