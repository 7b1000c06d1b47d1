// Command chc-data-probe is a small driver for exercising pkg/chcdata
// against a fixture file: it loads declarations, samples and constraints,
// runs propagation to a fixed point, and reports the outcome.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/icelearn/hoicedata/internal/dispatch"
	"github.com/icelearn/hoicedata/internal/predtab"
	"github.com/icelearn/hoicedata/pkg/chcdata"
)

var (
	flagTimeout  time.Duration
	flagCheck    bool
	flagStats    bool
	flagVerbose  bool
	flagDispatch bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chc-data-probe",
		Short: "Drive pkg/chcdata against a fixture file",
	}

	run := &cobra.Command{
		Use:   "run <fixture>",
		Short: "Load a fixture, propagate, and report the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runFixture,
	}
	run.Flags().DurationVar(&flagTimeout, "timeout", 0, "propagation deadline (0 = none)")
	run.Flags().BoolVar(&flagCheck, "check", false, "run CheckInvariants after propagation")
	run.Flags().BoolVar(&flagStats, "stats", false, "print phase timings and counters")
	run.Flags().BoolVar(&flagVerbose, "verbose", false, "enable trace-level logging")
	run.Flags().BoolVar(&flagDispatch, "dispatch", false, "fan newly added constraints out through internal/dispatch after propagation")

	root.AddCommand(run)
	return root
}

func runFixture(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	fx, err := parseFixture(f)
	if err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	level := hclog.Info
	if flagVerbose {
		level = hclog.Trace
	}
	logger := hclog.New(&hclog.LoggerOptions{Name: "chc-data-probe", Level: level})

	var observer chcdata.Observer
	var simple *chcdata.SimpleObserver
	if flagStats {
		simple = chcdata.NewSimpleObserver()
		observer = simple
	}

	cfg := chcdata.Config{TrackSamples: flagStats, Timeout: flagTimeout, Logger: logger, Observer: observer}
	data := chcdata.New(cfg, fx.preds, predtab.NewClauses())

	for _, a := range fx.rawPos {
		data.AddRawPos(a.pred, a.args)
	}
	for _, a := range fx.rawNeg {
		data.AddRawNeg(a.pred, a.args)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, c := range fx.cstrs {
		lhs := make([]chcdata.Atom, 0, len(c.lhs))
		for _, a := range c.lhs {
			lhs = append(lhs, chcdata.Atom{Pred: a.pred, Args: a.args})
		}
		var rhs *chcdata.Atom
		if c.rhs != nil {
			rhs = &chcdata.Atom{Pred: c.rhs.pred, Args: c.rhs.args}
		}
		if _, _, err := data.AddCstr(ctx, lhs, rhs); err != nil {
			return reportUnsat(cmd, err)
		}
	}

	if err := data.Propagate(ctx); err != nil {
		return reportUnsat(cmd, err)
	}

	if flagDispatch {
		if err := dispatchNewConstraints(ctx, cmd.OutOrStdout(), data); err != nil {
			return fmt.Errorf("dispatch: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "sat")
	fmt.Fprintln(cmd.OutOrStdout(), data.String())

	if flagCheck {
		if err := data.CheckInvariants(); err != nil {
			return fmt.Errorf("invariant check failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "invariants: ok")
	}

	if flagStats && simple != nil {
		for name, d := range simple.Durations {
			fmt.Fprintf(cmd.OutOrStdout(), "phase %s: %s\n", name, d)
		}
		for name, n := range simple.Counters {
			fmt.Fprintf(cmd.OutOrStdout(), "counter %s: %d\n", name, n)
		}
	}
	return nil
}

// logSink stands in for a real constraint replica or persistence layer:
// it just records how many constraints arrived in each broadcast batch.
type logSink struct {
	out io.Writer
}

func (s *logSink) Send(ctx context.Context, batch []chcdata.ConstraintView) error {
	fmt.Fprintf(s.out, "dispatch: %d new constraint(s)\n", len(batch))
	return nil
}

// dispatchNewConstraints clones every constraint added since the last
// call (here, the whole run) and fans it out through a dispatch.Dispatcher
// to whatever sinks are configured, demonstrating CloneNewConstraints'
// intended "hand a snapshot to a worker pool" use.
func dispatchNewConstraints(ctx context.Context, out io.Writer, data *chcdata.Data) error {
	fresh := data.CloneNewConstraints()
	if len(fresh) == 0 {
		return nil
	}
	d := dispatch.New(0)
	return d.Broadcast(ctx, fresh, []dispatch.Sink{&logSink{out: out}})
}

func reportUnsat(cmd *cobra.Command, err error) error {
	var uerr *chcdata.UnsatError
	if errors.As(err, &uerr) {
		fmt.Fprintln(cmd.OutOrStdout(), "unsat")
		if len(uerr.Core) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "core: %v\n", uerr.Core)
		}
		return nil
	}
	return err
}
