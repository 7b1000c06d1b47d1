package chcdata

import (
	"fmt"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Sentinel error kinds surfaced by the core. Callers distinguish them with
// errors.Is; the fatal kinds (ErrInconsistentState,
// ErrInconsistentDependency) are wrapped with github.com/pkg/errors so a
// %+v format still prints the stack at the raise site.
var (
	// ErrUnsat is raised from propagation and from AddCstr when the store
	// becomes provably unsatisfiable (true ⇒ ⊥, or a sample is both
	// positive and negative). It short-circuits the whole solve.
	ErrUnsat = errors.New("chcdata: unsat")

	// ErrInconsistentState means an internal invariant was violated (the
	// inverse index out of sync with a constraint's shape, a forced sample
	// absent from the index, a modded id dangling). Fatal: not recovered
	// locally.
	ErrInconsistentState = errors.New("chcdata: inconsistent internal state")

	// ErrInconsistentDependency is raised by MergeSamples when one side
	// tracks the dependency graph and the other does not.
	ErrInconsistentDependency = errors.New("chcdata: mismatched dependency tracking")
)

// UnsatError carries the witnesses and (if dependency tracking is on) the
// unsat core alongside the ErrUnsat sentinel, so callers can report a
// useful diagnosis rather than just the bare "unsat" fact. Pos/Neg are set
// when the contradiction was found via two ⊑-comparable pos/neg samples;
// Cause is set instead when it came from forcing a constraint straight
// to "true ⇒ ⊥".
type UnsatError struct {
	Pos, Neg Sample
	Cause    Sample
	Core     []CstrId
}

func (e *UnsatError) Error() string {
	if e.Core != nil {
		return fmt.Sprintf("chcdata: unsat (core size %d)", len(e.Core))
	}
	return "chcdata: unsat"
}

func (e *UnsatError) Unwrap() error { return ErrUnsat }

// TimeoutError is raised at a suspension point once the configured
// deadline has passed.
type TimeoutError struct {
	Deadline time.Time
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("chcdata: timeout (deadline %s)", e.Deadline.Format(time.RFC3339))
}

// unsatf wraps ErrUnsat with a contextual message, matching the source's
// `unsat!("...")` macro. It has no caller in this package: AddCstr wraps
// ErrUnsat directly, and propagation reports unsat as *UnsatError.
func unsatf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsat, format, args...)
}

// inconsistentf wraps ErrInconsistentState with a contextual message.
func inconsistentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInconsistentState, format, args...)
}

// appendViolation accumulates an invariant-check failure into a
// multierror.Error, creating it lazily, matching CheckInvariants' "report
// every violation, not just the first" contract.
func appendViolation(acc *multierror.Error, format string, args ...interface{}) *multierror.Error {
	return multierror.Append(acc, fmt.Errorf(format, args...))
}
