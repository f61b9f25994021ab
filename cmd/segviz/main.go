/*
Command segviz runs and visualizes segment tree operations.

Input is a scenario file (YAML, see package scenario) or an HTML fragment
holding the input array. Usage:

    segviz run scenario.yaml          print traces of all steps, paced
    segviz step scenario.yaml         step through traces interactively
    segviz dot scenario.yaml          Graphviz DOT of the final tree
    segviz html values.html --kind min  HTML node table of the final tree
    segviz watch scenario.yaml        re-run whenever the file changes

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–21 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "segviz: %v\n", err)
		os.Exit(1)
	}
}
