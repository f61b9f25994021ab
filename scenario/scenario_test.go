package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/segtree"
)

const demo = `
name: demo
kind: sum
values: [1, 3, 5, 7, 9, 11]
steps:
  - op: query
    lo: 1
    hi: 3
    expect: 15
  - op: update
    lo: 1
    hi: 4
    delta: 2
  - op: query
    lo: 0
    hi: 5
    expect: 44
  - op: query
    lo: -1
    hi: 2
  - op: build
    kind: min
    values: [5, 2, 8, 1, 9]
  - op: update
    lo: 0
    hi: 2
    delta: -3
  - op: query
    lo: 0
    hi: 2
    expect: -1
  - op: flush
`

func TestRunDemo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	s, err := Read(strings.NewReader(demo))
	if err != nil {
		t.Fatal(err)
	}
	sess := segtree.NewSession()
	results, err := s.Run(sess)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(s.Steps)+1 {
		t.Fatalf("expected %d results, have %d", len(s.Steps)+1, len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || !errors.Is(failed[0].Err, segtree.ErrInvalidRange) {
		t.Errorf("expected exactly the invalid query to fail, have %v", failed)
	}
	if sess.Tree().Kind() != segtree.Min {
		t.Errorf("expected rebuilt min tree in session")
	}
	for _, r := range results {
		if r.Err == nil && r.Trace == nil {
			t.Errorf("%s: missing trace", r.Step)
		}
	}
}

func TestExpectation(t *testing.T) {
	s, err := Read(strings.NewReader(`
kind: max
values: [5, 2, 8]
steps:
  - op: query
    lo: 0
    hi: 1
    expect: 8
`))
	if err != nil {
		t.Fatal(err)
	}
	results, _ := s.Run(segtree.NewSession())
	if !errors.Is(results[1].Err, ErrExpectation) {
		t.Errorf("expected unmet expectation, have %v", results[1].Err)
	}
}

func TestMalformed(t *testing.T) {
	for _, input := range []string{
		"kind: avg\nvalues: [1]\n",
		"kind: sum\nvalues: [1]\nsteps:\n  - op: delete\n",
		"kind: sum\nvalues: [1]\ncolor: red\n",
		"kind: sum\nvalues: [1]\nsteps:\n  - op: build\n    kind: median\n",
	} {
		if _, err := Read(strings.NewReader(input)); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed for %q, have %v", input, err)
		}
	}
}
