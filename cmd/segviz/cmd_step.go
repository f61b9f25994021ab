package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/scenario"
	"github.com/npillmayer/segtree/viewer"
	"github.com/spf13/cobra"
)

func newStepCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "step <scenario>",
		Short: "Step through the traces of a scenario interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadScenario(args[0])
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			return stepScenario(screen, s)
		},
	}
}

// stepScenario shows one viewer per successful step on screen.
func stepScenario(screen tcell.Screen, s *scenario.Scenario) error {
	sess := segtree.NewSession()
	for _, step := range steps(s) {
		before := sess.Tree().Nodes()
		r := scenario.RunStep(sess, step)
		if r.Err != nil {
			cmdtracer().Infof("%s: %v", step, r.Err)
			continue
		}
		v, err := viewer.New(screen, before, r.Trace)
		if err != nil {
			return err
		}
		v.Run(false)
	}
	return nil
}
