package segtree

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuildSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, trace, err := Build([]int64{1, 3, 5, 7, 9, 11}, Sum)
	if err != nil {
		t.Fatal(err)
	}
	root, ok := tree.Root()
	if !ok || root.Value != 36 {
		t.Errorf("expected root value 36, have %v", root)
	}
	if tree.Height() != 3 {
		t.Errorf("expected height 3, have %d", tree.Height())
	}
	if len(tree.Nodes()) != 11 {
		t.Errorf("expected 2n-1 = 11 nodes, have %d", len(tree.Nodes()))
	}
	if trace.Len() != 11 {
		t.Errorf("expected one build event per node, have %d", trace.Len())
	}
	events := trace.Events()
	last := events[len(events)-1]
	if last.Index != 1 || last.Kind != EventBuilt || last.Value != 36 {
		t.Errorf("expected root to be built last, have %v", last)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestBuildPostOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, trace, _ := Build([]int64{4, 1, 7, 3, 2}, Max)
	seen := make(map[int]bool)
	for _, e := range trace.Events() {
		nd, ok := tree.Node(e.Index)
		if !ok {
			t.Fatalf("event for unknown node %d", e.Index)
		}
		if !nd.IsLeaf() && (!seen[left(e.Index)] || !seen[right(e.Index)]) {
			t.Errorf("node %d built before its children", e.Index)
		}
		seen[e.Index] = true
	}
}

func TestBuildDeterministic(t *testing.T) {
	values := []int64{9, -4, 0, 12, 3, 3, 8}
	for _, kind := range []Kind{Sum, Min, Max} {
		t1, _, _ := Build(values, kind)
		t2, _, _ := Build(values, kind)
		if !slices.Equal(t1.Nodes(), t2.Nodes()) {
			t.Errorf("%s: two builds from the same input differ", kind)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, trace, err := Build(nil, Sum)
	if err != nil {
		t.Fatal(err)
	}
	if !tree.IsEmpty() || trace.Len() != 0 {
		t.Errorf("expected empty tree with empty trace")
	}
	if _, _, err := tree.Query(0, 0); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree for query on empty tree, have %v", err)
	}
	if _, err := tree.Update(0, 0, 1); !errors.Is(err, ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree for update on empty tree, have %v", err)
	}
	if len(tree.Leaves()) != 0 {
		t.Errorf("expected no leaves")
	}
}

func TestBuildSingle(t *testing.T) {
	tree, _, _ := Build([]int64{42}, Min)
	v, trace, err := tree.Query(0, 0)
	if err != nil || v != 42 {
		t.Fatalf("expected 42, have %d (%v)", v, err)
	}
	if trace.Len() != 2 {
		t.Errorf("expected visit + accept of root, have %d events", trace.Len())
	}
	if _, err := tree.Update(0, 0, 8); err != nil {
		t.Fatal(err)
	}
	root, _ := tree.Root()
	if root.Value != 50 || root.Pending != 0 {
		t.Errorf("expected leaf root 50 without pending delta, have %v", root)
	}
}

func TestBuildIllegalKind(t *testing.T) {
	if _, _, err := Build([]int64{1}, Kind(17)); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments, have %v", err)
	}
}

func TestLeavesAndAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, _, _ := Build([]int64{1, 3, 5, 7, 9, 11}, Sum)
	tree.Update(1, 4, 2)
	expected := []int64{1, 5, 7, 9, 11, 11}
	if leaves := tree.Leaves(); !slices.Equal(leaves, expected) {
		t.Errorf("expected leaves %v, have %v", expected, leaves)
	}
	for i, x := range expected {
		v, err := tree.At(i)
		if err != nil || v != x {
			t.Errorf("At(%d): expected %d, have %d (%v)", i, x, v, err)
		}
	}
	if _, err := tree.At(6); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for At(6), have %v", err)
	}
	// neither Leaves nor At push pending deltas
	nd, _ := tree.Node(6)
	if nd.Pending != 2 {
		t.Errorf("expected node 6 to still carry pending delta 2, have %v", nd)
	}
}

func TestNodeDepth(t *testing.T) {
	tree, _, _ := Build([]int64{1, 2, 3, 4, 5}, Sum)
	for nd := range tree.RangeNodes() {
		var ev NodeEvent
		for _, e := range mustQueryTrace(t, tree, nd.Lo, nd.Hi).Events() {
			if e.Index == nd.Index {
				ev = e
				break
			}
		}
		if ev.Depth != nd.Depth() {
			t.Errorf("node %d: event depth %d, node depth %d", nd.Index, ev.Depth, nd.Depth())
		}
	}
}

func mustQueryTrace(t *testing.T, tree *Tree, lo, hi int) *Trace {
	t.Helper()
	_, trace, err := tree.Query(lo, hi)
	if err != nil {
		t.Fatal(err)
	}
	return trace
}
