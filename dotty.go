package segtree

import (
	"fmt"
	"io"
	"strings"
)

// Tree2Dot outputs the structure of a tree in Graphviz DOT format.
// Nodes named in highlight are filled with the color of the event kind; if a
// node is highlighted more than once, the last event wins.
func Tree2Dot(t *Tree, w io.Writer, highlight ...NodeEvent) error {
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	hl := make(map[int]EventKind, len(highlight))
	for _, e := range highlight {
		hl[e.Index] = e.Kind
	}
	var nodelist, edgelist strings.Builder
	for nd := range t.RangeNodes() {
		kind, ok := hl[nd.Index]
		styles := nodeDotStyles(nd, kind, ok)
		label := fmt.Sprintf("[%d,%d]\\n%s", nd.Lo, nd.Hi, valueLabel(nd.Value))
		if nd.Pending != 0 {
			label += fmt.Sprintf("\\nΔ%+d", nd.Pending)
		}
		fmt.Fprintf(&nodelist, "\t\"%d\" [label=\"%s\"%s];\n", nd.Index, label, styles)
		if !nd.IsLeaf() {
			fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", nd.Index, left(nd.Index))
			fmt.Fprintf(&edgelist, "\t\"%d\" -> \"%d\";\n", nd.Index, right(nd.Index))
		}
	}
	b.WriteString(nodelist.String())
	b.WriteString(edgelist.String())
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	if err != nil {
		tracer().Errorf("tree DOT: %s", err.Error())
	}
	return err
}

func valueLabel(v int64) string {
	switch v {
	case PosInf:
		return "+∞"
	case NegInf:
		return "-∞"
	}
	return fmt.Sprintf("%d", v)
}

func nodeDotStyles(nd Node, kind EventKind, highlight bool) string {
	s := ",style=filled"
	if nd.IsLeaf() {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	if highlight && int(kind) < len(hexhlcolors) {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexhlcolors[kind])
	} else {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[min(nd.Depth(), len(hexcolors)-1)])
	}
	return s
}

// indexed by EventKind
var hexhlcolors = [...]string{"#FFEEDD", "#DDDDDD", "#AADDAA", "#FFBB88", "#FF9944", "#CCDDFF"}

// indexed by depth
var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
