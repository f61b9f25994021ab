package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/console"
	"github.com/npillmayer/segtree/replay"
	"github.com/npillmayer/segtree/scenario"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario and print the trace of every step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadScenario(args[0])
			if err != nil {
				return err
			}
			return runScenario(cmd.Context(), cmd, opts, s)
		},
	}
}

// stats counts events per kind.
type stats map[segtree.EventKind]int

func (st stats) write(w io.Writer) {
	for k := segtree.EventVisited; k <= segtree.EventBuilt; k++ {
		if st[k] > 0 {
			fmt.Fprintf(w, "%-11s %5d\n", k, st[k])
		}
	}
}

func runScenario(ctx context.Context, cmd *cobra.Command, opts *options, s *scenario.Scenario) error {
	sess := segtree.NewSession()
	printer := opts.printer(cmd)
	total := stats{}
	for _, step := range steps(s) {
		r := scenario.RunStep(sess, step)
		if r.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "!! %s: %v\n", step, r.Err)
			continue
		}
		printer.Header(r.Trace)
		if err := broadcastTrace(ctx, opts.player(), r.Trace, printer, total); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil // interrupted
		}
		if t := sess.Tree(); t != nil && r.Step.Op != "query" {
			lo, hi := 1, 0
			if r.Step.Op == "update" {
				lo, hi = r.Step.Lo, r.Step.Hi
			}
			printer.Array(t.Leaves(), lo, hi)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "== events")
	total.write(cmd.OutOrStdout())
	return nil
}

// broadcastTrace replays tr to two observers: the console printer and an
// event counter.
func broadcastTrace(ctx context.Context, player *replay.Player, tr *segtree.Trace,
	printer *console.Printer, counts stats) error {
	//
	b := replay.NewBroadcaster(ctx, player)
	printing, err := b.Subscribe(ctx, 16)
	if err != nil {
		return err
	}
	counting, err := b.Subscribe(ctx, 16)
	if err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for e := range printing {
			printer.Event(e)
		}
		return nil
	})
	g.Go(func() error {
		for e := range counting {
			counts[e.Kind]++
		}
		return nil
	})
	g.Go(func() error {
		n, err := b.Broadcast(gctx, tr)
		cmdtracer().Debugf("broadcast %d events", n)
		if errors.Is(err, replay.ErrClosed) && ctx.Err() != nil {
			return nil // interrupted
		}
		return err
	})
	return g.Wait()
}
