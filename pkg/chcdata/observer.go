package chcdata

import "time"

// Observer is a passive profiling hook with no effect on correctness. The
// test suite and the default Config both use a no-op implementation;
// callers that want their own propagation metrics can implement this to
// sample propagation cost.
type Observer interface {
	// Tick marks the start of a named phase (e.g. "propagate",
	// "propagate.filter", "add_cstr.pre-checks").
	Tick(phase string)

	// Mark marks the end of the most recently ticked phase with that name.
	Mark(phase string)

	// Count adds delta to a named counter (e.g. "partial samples",
	// "trivial constraints").
	Count(name string, delta int)
}

type noopObserver struct{}

func (noopObserver) Tick(string)       {}
func (noopObserver) Mark(string)       {}
func (noopObserver) Count(string, int) {}

// SimpleObserver is a minimal Observer that accumulates phase durations and
// named counters, useful for the CLI's --stats flag and for tests that
// want to assert propagation actually ran without depending on timing.
type SimpleObserver struct {
	ticks    map[string]time.Time
	Durations map[string]time.Duration
	Counters  map[string]int
}

// NewSimpleObserver builds an empty SimpleObserver.
func NewSimpleObserver() *SimpleObserver {
	return &SimpleObserver{
		ticks:     make(map[string]time.Time),
		Durations: make(map[string]time.Duration),
		Counters:  make(map[string]int),
	}
}

func (o *SimpleObserver) Tick(phase string) { o.ticks[phase] = time.Now() }

func (o *SimpleObserver) Mark(phase string) {
	if start, ok := o.ticks[phase]; ok {
		o.Durations[phase] += time.Since(start)
		delete(o.ticks, phase)
	}
}

func (o *SimpleObserver) Count(name string, delta int) { o.Counters[name] += delta }
