// Package dispatch fans work out across a bounded pool of goroutines:
// bounded concurrency with cooperative cancellation, built on
// golang.org/x/sync/errgroup rather than a hand-rolled channel+goroutine
// pool. It is aimed at chcdata's own workloads — broadcasting freshly
// learned constraints to a set of sinks, and classifying a batch of
// candidate tuples against a snapshot.
package dispatch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/icelearn/hoicedata/pkg/chcdata"
)

// Dispatcher bounds the number of concurrently running jobs it hands out.
type Dispatcher struct {
	maxWorkers int
}

// New returns a Dispatcher capped at maxWorkers concurrent jobs. A
// non-positive maxWorkers defaults to the number of CPU cores.
func New(maxWorkers int) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &Dispatcher{maxWorkers: maxWorkers}
}

// Sink receives a batch of newly learned constraints, typically to ship
// them to another solver replica or a persistence layer.
type Sink interface {
	Send(ctx context.Context, batch []chcdata.ConstraintView) error
}

// Broadcast sends batch to every sink concurrently, bounded by
// d.maxWorkers, and returns the first error encountered (canceling the
// rest via the shared context).
func (d *Dispatcher) Broadcast(ctx context.Context, batch []chcdata.ConstraintView, sinks []Sink) error {
	if len(batch) == 0 || len(sinks) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.maxWorkers)
	for _, sink := range sinks {
		sink := sink
		g.Go(func() error {
			return sink.Send(gctx, batch)
		})
	}
	return g.Wait()
}

// ClassifyAll classifies every tuple in args against data's current
// snapshot for predicate p, concurrently, preserving input order in the
// result slice.
func (d *Dispatcher) ClassifyAll(ctx context.Context, data *chcdata.Data, p chcdata.PredId, args []*chcdata.Args) ([]chcdata.Classification, error) {
	out := make([]chcdata.Classification, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.maxWorkers)

	for i, a := range args {
		i, a := i, a
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out[i] = data.Classify(p, a)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
