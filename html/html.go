/*
Package html connects segment trees to HTML: it reads input arrays from HTML
fragments and renders the node table of a tree as an HTML table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–21 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/segtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNotANumber is returned for text tokens which are not integers.
var ErrNotANumber = errors.New("html: text is not an integer")

// InnerValues collects the array values from the textual content of an HTML
// element and all its descendents, in document order. Text is split at white
// space and commas.
func InnerValues(n *html.Node) ([]int64, error) {
	if n == nil {
		return nil, segtree.ErrIllegalArguments
	}
	var values []int64
	err := collectValues(n, &values)
	return values, err
}

func collectValues(n *html.Node, values *[]int64) error {
	if n.Type == html.TextNode {
		fields := strings.FieldsFunc(n.Data, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		for _, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", ErrNotANumber, f)
			}
			*values = append(*values, v)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectValues(c, values); err != nil {
			return err
		}
	}
	return nil
}

// ValuesFromHTML reads an input array from an HTML fragment, e.g. a list or a
// table row:
//
//	<ul><li>1</li><li>3</li><li>5</li></ul>
//
// Markup is not interpreted; all text is taken as a sequence of integers.
func ValuesFromHTML(input io.Reader) ([]int64, error) {
	nodes, err := html.ParseFragment(input, &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, err
	}
	var values []int64
	for _, n := range nodes {
		if err := collectValues(n, &values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// --- Output ----------------------------------------------------------------

var columns = []string{"node", "range", "value", "pending"}

// NodeTable renders the nodes of t as an HTML table, one row per node in
// index order. Rows of nodes named in highlight carry the event kind as a
// CSS class; if a node is highlighted more than once, the last event wins.
func NodeTable(t *segtree.Tree, highlight ...segtree.NodeEvent) *html.Node {
	hl := make(map[int]segtree.EventKind, len(highlight))
	for _, e := range highlight {
		hl[e.Index] = e.Kind
	}
	table := element(atom.Table, html.Attribute{Key: "class", Val: "segtree " + t.Kind().String()})
	head := element(atom.Tr)
	for _, c := range columns {
		head.AppendChild(cell(atom.Th, c))
	}
	table.AppendChild(head)
	for nd := range t.RangeNodes() {
		var row *html.Node
		if kind, ok := hl[nd.Index]; ok {
			row = element(atom.Tr, html.Attribute{Key: "class", Val: kind.String()})
		} else {
			row = element(atom.Tr)
		}
		row.AppendChild(cell(atom.Td, strconv.Itoa(nd.Index)))
		row.AppendChild(cell(atom.Td, fmt.Sprintf("[%d,%d]", nd.Lo, nd.Hi)))
		row.AppendChild(cell(atom.Td, value(nd.Value)))
		row.AppendChild(cell(atom.Td, strconv.FormatInt(nd.Pending, 10)))
		table.AppendChild(row)
	}
	return table
}

// WriteNodeTable renders the node table of t to w.
func WriteNodeTable(w io.Writer, t *segtree.Tree, highlight ...segtree.NodeEvent) error {
	return html.Render(w, NodeTable(t, highlight...))
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func cell(a atom.Atom, text string) *html.Node {
	c := element(a)
	c.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return c
}

func value(v int64) string {
	switch v {
	case segtree.PosInf:
		return "+∞"
	case segtree.NegInf:
		return "-∞"
	}
	return strconv.FormatInt(v, 10)
}
