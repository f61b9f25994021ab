package main

import (
	"fmt"

	"github.com/npillmayer/segtree/config"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <scenario>",
		Short: "Run a scenario and run it again whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			rerun := func(string) {
				if err := watchRun(cmd, opts, path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				}
			}
			rerun(path)
			return config.Watch(cmd.Context(), path, rerun)
		},
	}
}

// watchRun rebuilds the tree from scratch and prints the resulting array.
func watchRun(cmd *cobra.Command, opts *options, path string) error {
	s, err := opts.loadScenario(path)
	if err != nil {
		return err
	}
	sess, last, err := runAll(cmd, s)
	if err != nil {
		return err
	}
	printer := opts.printer(cmd)
	if last != nil {
		printer.Header(last)
	}
	if t := sess.Tree(); t != nil {
		printer.Array(t.Leaves(), 1, 0)
	}
	return nil
}
