package segtree

import (
	"fmt"
	"math/bits"
)

// Node is a position of the tree. Nodes live in an arena and are addressed by
// their implicit index: the root is 1, the children of i are 2i and 2i+1.
//
// Lo and Hi are fixed at build time. Value already includes the effect of
// Pending on this node's own aggregate; Pending is the additive delta not yet
// pushed to the children. Pending is always 0 for leaves.
type Node struct {
	Index   int
	Lo, Hi  int
	Value   int64
	Pending int64
}

// IsLeaf reports whether the node covers a single element.
func (n Node) IsLeaf() bool {
	return n.Lo == n.Hi
}

// Len returns the number of elements covered by the node.
func (n Node) Len() int {
	return n.Hi - n.Lo + 1
}

// Depth returns the distance of the node from the root.
func (n Node) Depth() int {
	if n.Index < 1 {
		return 0
	}
	return bits.Len(uint(n.Index)) - 1
}

func (n Node) String() string {
	return fmt.Sprintf("#%d[%d,%d]=%d(Δ%d)", n.Index, n.Lo, n.Hi, n.Value, n.Pending)
}

// overlap classifies a node range against a request range.
type overlap uint8

const (
	noOverlap overlap = iota
	fullOverlap
	partialOverlap
)

func classify(nd *Node, lo, hi int) overlap {
	switch {
	case hi < nd.Lo || nd.Hi < lo:
		return noOverlap
	case lo <= nd.Lo && nd.Hi <= hi:
		return fullOverlap
	}
	return partialOverlap
}

func left(i int) int  { return 2 * i }
func right(i int) int { return 2*i + 1 }

// arenaSize returns the arena capacity for n leaves. A midpoint split never
// addresses a node beyond 4n.
func arenaSize(n int) int {
	if n == 0 {
		return 1
	}
	return 4 * n
}
