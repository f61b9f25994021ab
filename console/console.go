/*
Package console prints segment tree traces and arrays to a terminal.

Events are printed one per line, indented by node depth and colored by event
kind. Arrays are printed as a row of cells, highlighting a request range and
wrapped at the terminal width.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/segtree"
	"golang.org/x/term"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

// Config controls console output.
type Config struct {
	Width int  // line width in fixed width positions
	Color bool // use ANSI colors
}

// Printer outputs traces, trees and arrays to a writer with a fixed width font.
type Printer struct {
	w      io.Writer
	config Config
	colors map[segtree.EventKind]*color.Color
	hl     *color.Color // range highlight for arrays
}

// NewPrinter creates a printer writing to w.
//
// If config is nil, a configuration is derived from the terminal's properties
// (see ConfigFromTerminal). colors maps event kinds to colors; it may cover
// just a subset of the kinds. If it is nil, a default palette is used.
func NewPrinter(w io.Writer, config *Config, colors map[segtree.EventKind]*color.Color) *Printer {
	if config == nil {
		config = ConfigFromTerminal()
	}
	p := &Printer{w: w, config: *config, colors: colors}
	if p.colors == nil {
		p.colors = makeDefaultPalette()
	}
	p.hl = color.New(color.FgBlack, color.BgYellow)
	for _, c := range p.colors {
		setColor(c, config.Color)
	}
	setColor(p.hl, config.Color)
	return p
}

func setColor(c *color.Color, enable bool) {
	if enable {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func makeDefaultPalette() map[segtree.EventKind]*color.Color {
	return map[segtree.EventKind]*color.Color{
		segtree.EventVisited:    color.New(color.FgWhite),
		segtree.EventRejected:   color.New(color.FgHiBlack),
		segtree.EventAccepted:   color.New(color.FgGreen, color.Bold),
		segtree.EventLazyPushed: color.New(color.FgMagenta),
		segtree.EventRecomputed: color.New(color.FgCyan),
		segtree.EventBuilt:      color.New(color.FgBlue),
	}
}

func (p *Printer) styled(kind segtree.EventKind, s string) {
	if c, ok := p.colors[kind]; ok {
		c.Fprint(p.w, s)
		return
	}
	io.WriteString(p.w, s)
}

// Header prints the summary line of a trace.
func (p *Printer) Header(tr *segtree.Trace) {
	fmt.Fprintf(p.w, "== %s\n", tr)
}

// Event prints a single event, indented by the depth of its node.
func (p *Printer) Event(e segtree.NodeEvent) {
	indent := strings.Repeat("  ", e.Depth)
	line := fmt.Sprintf("%s#%-3d [%d,%d] %-11s %s", indent, e.Index, e.Lo, e.Hi, e.Kind, value(e.Value))
	if e.Pending != 0 {
		line += fmt.Sprintf(" Δ%+d", e.Pending)
	}
	p.styled(e.Kind, line)
	io.WriteString(p.w, "\n")
}

// Trace prints the header and all events of tr. Printing counts as the
// trace's replay.
func (p *Printer) Trace(tr *segtree.Trace) error {
	st, err := tr.Replay()
	if err != nil {
		return err
	}
	p.Header(tr)
	for e := range st.All() {
		p.Event(e)
	}
	return nil
}

// Tree prints all nodes of a tree, one per line, indented by depth.
func (p *Printer) Tree(t *segtree.Tree) {
	for nd := range t.RangeNodes() {
		fmt.Fprintf(p.w, "%s%v\n", strings.Repeat("  ", nd.Depth()), nd)
	}
}

// Array prints values as a row of cells. Cells with an index in [lo, hi] are
// highlighted; pass lo > hi for no highlight. Rows are wrapped at the
// configured width.
func (p *Printer) Array(values []int64, lo, hi int) {
	cellw := 1
	for _, v := range values {
		cellw = max(cellw, utf8.RuneCountInString(value(v)))
	}
	cellw += 2 // padding
	perRow := max(1, p.config.Width/(cellw+1))
	for start := 0; start < len(values); start += perRow {
		end := min(start+perRow, len(values))
		var idx strings.Builder
		for i := start; i < end; i++ {
			fmt.Fprintf(&idx, "%*d ", cellw, i)
		}
		fmt.Fprintln(p.w, strings.TrimRight(idx.String(), " "))
		for i := start; i < end; i++ {
			cell := fmt.Sprintf("%*s", cellw, value(values[i]))
			if lo <= i && i <= hi {
				p.hl.Fprint(p.w, cell)
			} else {
				io.WriteString(p.w, cell)
			}
			if i+1 < end {
				io.WriteString(p.w, " ")
			}
		}
		io.WriteString(p.w, "\n")
	}
}

func value(v int64) string {
	switch v {
	case segtree.PosInf:
		return "+∞"
	case segtree.NegInf:
		return "-∞"
	}
	return fmt.Sprintf("%d", v)
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a console Config.
// It checks whether stdout is a terminal, and if so it reads the terminal's
// width and sets Config.Width accordingly. Colors are used for terminals only.
func ConfigFromTerminal() *Config {
	config := &Config{Width: 65}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		config.Color = !color.NoColor
		if w, _, err := term.GetSize(fd); err == nil {
			config.Width = widthFor(w)
		}
	}
	tracer().P("console", "config").Infof("setting line width to %d en", config.Width)
	return config
}

func widthFor(w int) int {
	switch {
	case w > 65:
		return w - 10
	case w > 30:
		return w - 5
	case w > 10:
		return w
	}
	return 10
}
