package chcdata

import (
	"time"

	hclog "github.com/hashicorp/go-hclog"
)

// PredTable is a fixed, dense registry keyed by PredId giving each
// predicate's arity and sort tuple. Implementations are expected to be
// immutable for the lifetime of a Data instance; internal/predtab
// provides a minimal one.
type PredTable interface {
	Arity(p PredId) int
	Sorts(p PredId) []Sort
}

// FormalSample names a clause's head (or one lhs atom) by predicate and
// the formal argument positions it is applied to, before those positions
// are bound to concrete Args. Only used when dependency tracking is on.
type FormalSample struct {
	Pred    PredId
	Formals []FormalArgs
}

// FormalGroup is one lhs predicate application group of a clause, in the
// clause's own formal-argument numbering.
type FormalGroup struct {
	Pred    PredId
	Formals []FormalArgs
}

// ClauseTable is a fixed registry keyed by ClauseId giving each clause's
// formal head and formal lhs groups. New stores it, but the engine never
// reads it: dependency-graph edges record the forced sample and the
// constraint id, not clause-formal argument positions.
type ClauseTable interface {
	Head(id ClauseId) (FormalSample, bool)
	LhsGroups(id ClauseId) []FormalGroup
}

// Config is the engine's configuration, built once and passed explicitly
// into New — never read from a process-wide singleton.
type Config struct {
	// TrackSamples enables the dependency graph. An edge is recorded each
	// time propagation forces a sample through a constraint; raw samples
	// added with AddRawPos/AddRawNeg get no edge.
	TrackSamples bool

	// Partial marks that callers may supply partial samples (values
	// containing ⊥). The engine does not read it: lookups always use the
	// ⊑-scan, which on tuples without ⊥ gives the same result as equality.
	Partial bool

	// Timeout is a cancellation deadline checked at each suspension point.
	// Zero means no deadline.
	Timeout time.Duration

	// Logger receives leveled, component-scoped log lines. Defaults to a
	// null logger.
	Logger hclog.Logger

	// Observer receives passive progress notifications with no effect on
	// correctness. Defaults to a no-op implementation.
	Observer Observer
}

func (c Config) logger() hclog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return hclog.NewNullLogger()
}

func (c Config) observer() Observer {
	if c.Observer != nil {
		return c.Observer
	}
	return noopObserver{}
}
