package segtree

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestUpdateSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, _, _ := Build([]int64{1, 3, 5, 7, 9, 11}, Sum)
	trace, err := tree.Update(1, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v, _, _ := tree.Query(0, 5); v != 44 {
		t.Errorf("expected sum[0,5] = 44 after update, have %d", v)
	}
	var accepted []int
	for _, e := range trace.Events() {
		if e.Kind == EventAccepted {
			accepted = append(accepted, e.Index)
			if e.Index == 6 && (e.Value != 20 || e.Pending != 2) {
				t.Errorf("expected node 6 to hold 20 with pending 2, have %v", e)
			}
		}
	}
	if !slices.Equal(accepted, []int{9, 5, 6}) {
		t.Errorf("expected nodes 9, 5, 6 to absorb the update, have %v", accepted)
	}
	// recompute events come bottom up along the partial path
	var recomputed []int
	for _, e := range trace.Events() {
		if e.Kind == EventRecomputed {
			recomputed = append(recomputed, e.Index)
		}
	}
	if !slices.Equal(recomputed, []int{4, 2, 3, 1}) {
		t.Errorf("expected recomputation of 4, 2, 3, 1, have %v", recomputed)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestUpdateInvalidRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, _, _ := Build([]int64{5, 2, 8, 1, 9}, Min)
	before := tree.Nodes()
	if _, err := tree.Update(2, 5, 1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, have %v", err)
	}
	if !slices.Equal(before, tree.Nodes()) {
		t.Errorf("rejected update modified the tree")
	}
}

func TestUpdateZeroDelta(t *testing.T) {
	tree, _, _ := Build([]int64{5, 2, 8, 1, 9}, Sum)
	before := tree.Nodes()
	if _, err := tree.Update(0, 4, 0); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(before, tree.Nodes()) {
		t.Errorf("update with delta 0 changed node values")
	}
}

func TestUpdateStacksPending(t *testing.T) {
	tree, _, _ := Build([]int64{1, 1, 1, 1, 1, 1, 1, 1}, Sum)
	tree.Update(0, 7, 1)
	tree.Update(0, 7, 2)
	root, _ := tree.Root()
	if root.Pending != 3 || root.Value != 32 {
		t.Errorf("expected root 32 with pending 3, have %v", root)
	}
	if v, _, _ := tree.Query(5, 5); v != 4 {
		t.Errorf("expected a[5] = 4, have %d", v)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestFlush(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	for _, kind := range []Kind{Sum, Min, Max} {
		tree, _, _ := Build([]int64{3, 1, 4, 1, 5, 9, 2, 6}, kind)
		tree.Update(0, 5, 3)
		tree.Update(2, 7, -2)
		leaves := tree.Leaves()
		var results []int64
		for lo := range tree.Len() {
			v, _, _ := tree.Query(lo, tree.Len()-1)
			results = append(results, v)
		}
		trace, err := tree.Flush()
		if err != nil {
			t.Fatal(err)
		}
		if trace.Op != OpFlush {
			t.Errorf("expected flush trace, have %s", trace)
		}
		for nd := range tree.RangeNodes() {
			if nd.Pending != 0 {
				t.Errorf("%s: node %v still pending after flush", kind, nd)
			}
		}
		if !slices.Equal(leaves, tree.Leaves()) {
			t.Errorf("%s: flush changed the array", kind)
		}
		for lo := range tree.Len() {
			v, _, _ := tree.Query(lo, tree.Len()-1)
			if v != results[lo] {
				t.Errorf("%s: flush changed [%d,%d] from %d to %d", kind, lo, tree.Len()-1, results[lo], v)
			}
		}
		if err := tree.Check(); err != nil {
			t.Error(err)
		}
	}
}
