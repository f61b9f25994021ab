package main

import (
	"fmt"

	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/html"
	"github.com/spf13/cobra"
)

func newDotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dot <scenario>",
		Short: "Run a scenario and output the final tree in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadScenario(args[0])
			if err != nil {
				return err
			}
			sess, last, err := runAll(cmd, s)
			if err != nil {
				return err
			}
			if sess.Tree() == nil {
				return segtree.ErrEmptyTree
			}
			return segtree.Tree2Dot(sess.Tree(), cmd.OutOrStdout(), last.Events()...)
		},
	}
}

func newHTMLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "html <scenario>",
		Short: "Run a scenario and output the node table of the final tree as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadScenario(args[0])
			if err != nil {
				return err
			}
			sess, last, err := runAll(cmd, s)
			if err != nil {
				return err
			}
			if sess.Tree() == nil {
				return segtree.ErrEmptyTree
			}
			if err := html.WriteNodeTable(cmd.OutOrStdout(), sess.Tree(), last.Events()...); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
