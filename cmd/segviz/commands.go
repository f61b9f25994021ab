package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/config"
	"github.com/npillmayer/segtree/console"
	"github.com/npillmayer/segtree/html"
	"github.com/npillmayer/segtree/replay"
	"github.com/npillmayer/segtree/scenario"
	"github.com/spf13/cobra"
)

// options shared by all commands
type options struct {
	configPath string
	traceLevel string
	color      bool
	width      int
	interval   time.Duration
	kind       string

	conf *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "segviz",
		Short:         "Run and visualize segment tree operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configure(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.traceLevel, "trace", "", "trace level for the engine (Error, Info, Debug)")
	flags.BoolVar(&opts.color, "color", true, "colored output")
	flags.IntVar(&opts.width, "width", 0, "output width, 0 = terminal width")
	flags.DurationVar(&opts.interval, "interval", 0, "replay interval per event")
	flags.StringVar(&opts.kind, "kind", "sum", "aggregate kind for HTML input (sum, min, max)")
	root.AddCommand(
		newRunCmd(opts),
		newStepCmd(opts),
		newDotCmd(opts),
		newHTMLCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// configure loads the configuration file and overrides it with explicitly
// set flags.
func (opts *options) configure(cmd *cobra.Command) error {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	conf, err := config.Load(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("trace") {
		conf.Set("tracelevel.segtree", opts.traceLevel)
	}
	if flags.Changed("color") {
		conf.Set("console.color", fmt.Sprintf("%v", opts.color))
	}
	if flags.Changed("width") {
		conf.Set("console.width", fmt.Sprintf("%d", opts.width))
	}
	if flags.Changed("interval") {
		conf.Set("replay.interval", opts.interval.String())
	}
	opts.conf = conf
	if err := setupTracing(conf); err != nil {
		return err
	}
	cmdtracer().Debugf("configuration loaded from %q", conf.Path())
	return nil
}

func (opts *options) printer(cmd *cobra.Command) *console.Printer {
	cc := console.ConfigFromTerminal()
	if w := opts.conf.GetInt("console.width"); w > 0 {
		cc.Width = w
	}
	cc.Color = cc.Color && opts.conf.GetBool("console.color")
	return console.NewPrinter(cmd.OutOrStdout(), cc, nil)
}

func (opts *options) player() *replay.Player {
	return replay.NewPlayer(opts.conf.GetDuration("replay.interval"), opts.conf.GetInt("replay.burst"))
}

// loadScenario reads a scenario from a YAML file or, for files with an HTML
// extension, an input array from an HTML fragment.
func (opts *options) loadScenario(path string) (*scenario.Scenario, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		values, err := html.ValuesFromHTML(f)
		if err != nil {
			return nil, err
		}
		if _, err := segtree.KindFromString(opts.kind); err != nil {
			return nil, err
		}
		return &scenario.Scenario{Name: filepath.Base(path), Kind: opts.kind, Values: values}, nil
	}
	return scenario.Load(path)
}

// runAll runs a scenario and returns the session and the trace of the last
// successful step.
func runAll(cmd *cobra.Command, s *scenario.Scenario) (*segtree.Session, *segtree.Trace, error) {
	sess := segtree.NewSession()
	results, err := s.Run(sess)
	if err != nil {
		return nil, nil, err
	}
	var last *segtree.Trace
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Step, r.Err)
			continue
		}
		last = r.Trace
	}
	return sess, last, nil
}

func steps(s *scenario.Scenario) []scenario.Step {
	initial := scenario.Step{Op: "build", Kind: s.Kind, Values: s.Values}
	return append([]scenario.Step{initial}, s.Steps...)
}
