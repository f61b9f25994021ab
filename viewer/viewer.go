/*
Package viewer is an interactive terminal viewer for segment tree traces.

The viewer shows the node set of a tree and steps through a trace at the pace
of the user. Node values are taken from the snapshots carried by the events,
starting from a snapshot of the nodes taken before the traced operation ran;
the viewer never reads live tree state.

Keys:

	n, →, space   next event
	a             all remaining events
	q, Esc        quit (abandons the replay)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–21 Norbert Pillmayer <norbert@pillmayer.com>

*/
package viewer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/segtree"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

var (
	styleDefault = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	eventStyles  = map[segtree.EventKind]tcell.Style{
		segtree.EventVisited:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		segtree.EventRejected:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		segtree.EventAccepted:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		segtree.EventLazyPushed: tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		segtree.EventRecomputed: tcell.StyleDefault.Foreground(tcell.ColorTeal),
		segtree.EventBuilt:      tcell.StyleDefault.Foreground(tcell.ColorBlue),
	}
)

// Viewer steps through a trace on a tcell screen.
type Viewer struct {
	screen  tcell.Screen
	trace   *segtree.Trace
	stepper *segtree.Stepper
	nodes   []segtree.Node     // display state, index order
	pos     map[int]int        // node index -> position in nodes
	last    *segtree.NodeEvent // most recent event
	marks   map[int]segtree.EventKind
}

// New creates a viewer for trace tr. before is the node set of the tree as it
// was before the traced operation ran (see segtree.Tree.Nodes). New starts the
// replay of tr; the screen must already be initialized.
func New(screen tcell.Screen, before []segtree.Node, tr *segtree.Trace) (*Viewer, error) {
	st, err := tr.Replay()
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		screen:  screen,
		trace:   tr,
		stepper: st,
		nodes:   make([]segtree.Node, len(before)),
		pos:     make(map[int]int, len(before)),
		marks:   make(map[int]segtree.EventKind),
	}
	copy(v.nodes, before)
	for i, nd := range v.nodes {
		v.pos[nd.Index] = i
	}
	return v, nil
}

// Run draws the viewer and processes key events until the user quits, the
// screen is finalized, or, if exitAtEnd is set, the trace is exhausted.
func (v *Viewer) Run(exitAtEnd bool) {
	v.draw()
	for {
		if exitAtEnd && v.stepper.Remaining() == 0 {
			return
		}
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			v.stepper.Stop()
			return
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				tracer().P("viewer", "quit").Infof("replay abandoned after %d events", v.stepper.Delivered())
				v.stepper.Stop()
				return
			}
			v.draw()
		}
	}
}

// handleKey processes a key event and reports whether the viewer should quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight, tcell.KeyEnter:
		v.Step()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'n', ' ':
			v.Step()
		case 'a':
			for v.Step() {
			}
		}
	}
	return false
}

// Step applies the next event to the display state. It returns false if the
// replay is exhausted.
func (v *Viewer) Step() bool {
	e, ok := v.stepper.Next()
	if !ok {
		return false
	}
	if i, found := v.pos[e.Index]; found {
		v.nodes[i].Value = e.Value
		v.nodes[i].Pending = e.Pending
	} else { // node created by a build
		v.insert(segtree.Node{Index: e.Index, Lo: e.Lo, Hi: e.Hi, Value: e.Value, Pending: e.Pending})
	}
	v.marks[e.Index] = e.Kind
	v.last = &e
	return true
}

func (v *Viewer) insert(nd segtree.Node) {
	at, _ := slices.BinarySearchFunc(v.nodes, nd.Index, func(n segtree.Node, index int) int {
		return cmp.Compare(n.Index, index)
	})
	v.nodes = slices.Insert(v.nodes, at, nd)
	for i := at; i < len(v.nodes); i++ {
		v.pos[v.nodes[i].Index] = i
	}
}

// Delivered returns the number of events shown so far.
func (v *Viewer) Delivered() int {
	return v.stepper.Delivered()
}

// Nodes returns the current display state.
func (v *Viewer) Nodes() []segtree.Node {
	return append([]segtree.Node(nil), v.nodes...)
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	v.text(0, 0, w, v.trace.String(), styleHeader)
	y := 2
	for _, nd := range v.nodes {
		if y >= h-1 {
			break
		}
		style := styleDefault
		if kind, ok := v.marks[nd.Index]; ok {
			style = eventStyles[kind]
		}
		line := fmt.Sprintf("%s%v", strings.Repeat("  ", nd.Depth()), nd)
		if v.last != nil && v.last.Index == nd.Index {
			line += "  <- " + v.last.Kind.String()
			style = style.Reverse(true)
		}
		v.text(0, y, w, line, style)
		y++
	}
	status := fmt.Sprintf(" %d/%d  [n]ext [a]ll [q]uit", v.stepper.Delivered(), v.trace.Len())
	v.text(0, h-1, w, status+strings.Repeat(" ", max(0, w-len(status))), styleStatus)
	v.screen.Show()
}

func (v *Viewer) text(x, y, maxw int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= maxw {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
