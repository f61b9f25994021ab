package segtree

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"iter"
)

// Tree is a segment tree with lazy propagation over an int64 array.
//
// A tree created by Build from an empty array is valid, but queries and
// updates on it fail with ErrEmptyTree.
//
// Tree is owned by a single client. Overlapping calls from different
// goroutines are rejected with ErrBusy; clients managing a tree over its whole
// lifecycle (including rebuilds) will want to use a Session.
type Tree struct {
	guard
	kind   Kind
	agg    Aggregator
	nodes  []Node // arena, nodes[0] is unused
	n      int    // number of leaves
	height int    // depth of the deepest leaf, root = 0
}

// Build creates a tree from values, aggregating with kind. The returned trace
// holds one EventBuilt per node in post-order (children before parent).
//
// Build is deterministic: building twice from the same input yields identical
// node values.
func Build(values []int64, kind Kind) (*Tree, *Trace, error) {
	agg := kind.Aggregator()
	if agg == nil {
		return nil, nil, fmt.Errorf("%w: aggregate kind %d", ErrIllegalArguments, kind)
	}
	t := &Tree{
		kind:  kind,
		agg:   agg,
		nodes: make([]Node, arenaSize(len(values))),
		n:     len(values),
	}
	rec := newRecorder(2 * len(values))
	if t.n > 0 {
		t.build(1, 0, t.n-1, 0, values, rec)
	}
	tracer().P("op", "build").Debugf("built %s tree over %d values, height %d", kind, t.n, t.height)
	return t, rec.trace(OpBuild, t), nil
}

func (t *Tree) build(i, lo, hi, depth int, values []int64, rec *recorder) {
	nd := &t.nodes[i]
	nd.Index, nd.Lo, nd.Hi = i, lo, hi
	t.height = max(t.height, depth)
	if lo == hi {
		nd.Value = values[lo]
		rec.emit(t, i, EventBuilt, depth)
		return
	}
	mid := lo + (hi-lo)/2
	t.build(left(i), lo, mid, depth+1, values, rec)
	t.build(right(i), mid+1, hi, depth+1, values, rec)
	nd.Value = t.agg.Combine(t.nodes[left(i)].Value, t.nodes[right(i)].Value)
	rec.emit(t, i, EventBuilt, depth)
}

// Kind returns the aggregate kind of the tree.
func (t *Tree) Kind() Kind {
	return t.kind
}

// Aggregator returns the aggregator of the tree.
func (t *Tree) Aggregator() Aggregator {
	return t.agg
}

// Len returns the number of array elements covered by the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// IsEmpty reports whether the tree was built from an empty array.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.n == 0
}

// Height returns the depth of the deepest leaf, i.e. ⌈log2 n⌉. An empty tree
// and a single-leaf tree have height 0.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Root returns the root node. The second return value is false for an empty tree.
func (t *Tree) Root() (Node, bool) {
	if t.IsEmpty() {
		return Node{}, false
	}
	return t.nodes[1], true
}

// Node returns the node at an implicit index.
func (t *Tree) Node(index int) (Node, bool) {
	if t.IsEmpty() || index < 1 || index >= len(t.nodes) || t.nodes[index].Index == 0 {
		return Node{}, false
	}
	return t.nodes[index], true
}

// Nodes returns a snapshot of all nodes, ordered by index. This is the node
// set consumed by layout engines.
func (t *Tree) Nodes() []Node {
	var nodes []Node
	for nd := range t.RangeNodes() {
		nodes = append(nodes, nd)
	}
	return nodes
}

// RangeNodes returns an iterator over all nodes, ordered by index.
func (t *Tree) RangeNodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if t.IsEmpty() {
			return
		}
		for i := 1; i < len(t.nodes); i++ {
			if t.nodes[i].Index == 0 {
				continue
			}
			if !yield(t.nodes[i]) {
				return
			}
		}
	}
}

// Leaves derives the current array from the tree: the value of element i is
// its leaf value plus the pending deltas of all ancestors of the leaf. Leaves
// does not push pending deltas and leaves the tree untouched.
func (t *Tree) Leaves() []int64 {
	if t.IsEmpty() {
		return []int64{}
	}
	out := make([]int64, t.n)
	t.collectLeaves(1, 0, out)
	return out
}

func (t *Tree) collectLeaves(i int, carry int64, out []int64) {
	nd := &t.nodes[i]
	if nd.IsLeaf() {
		out[nd.Lo] = nd.Value + carry
		return
	}
	carry += nd.Pending
	t.collectLeaves(left(i), carry, out)
	t.collectLeaves(right(i), carry, out)
}

// At returns the current value of array element index, without pushing
// pending deltas.
func (t *Tree) At(index int) (int64, error) {
	if t.IsEmpty() {
		return 0, ErrEmptyTree
	}
	if index < 0 || index >= t.n {
		return 0, fmt.Errorf("%w: index %d outside [0,%d]", ErrInvalidRange, index, t.n-1)
	}
	var carry int64
	i := 1
	for !t.nodes[i].IsLeaf() {
		nd := &t.nodes[i]
		carry += nd.Pending
		if index <= nd.Lo+(nd.Hi-nd.Lo)/2 {
			i = left(i)
		} else {
			i = right(i)
		}
	}
	return t.nodes[i].Value + carry, nil
}

// validate checks a request range against the tree. It runs before any node
// is touched.
func (t *Tree) validate(lo, hi int) error {
	if t.IsEmpty() {
		return ErrEmptyTree
	}
	if lo > hi || lo < 0 || hi >= t.n {
		return fmt.Errorf("%w: [%d,%d] for tree over [0,%d]", ErrInvalidRange, lo, hi, t.n-1)
	}
	return nil
}
