package viewer

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/segtree"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(80, 24)
	return s
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			b.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func TestViewerSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	tree, _, _ := segtree.Build([]int64{1, 3, 5, 7, 9, 11}, segtree.Sum)
	before := tree.Nodes()
	trace, _ := tree.Update(1, 4, 2)
	screen := simScreen(t)
	defer screen.Fini()
	v, err := New(screen, before, trace)
	if err != nil {
		t.Fatal(err)
	}
	screen.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	v.Run(false)
	if v.Delivered() != 2 {
		t.Errorf("expected 2 events shown, have %d", v.Delivered())
	}
	text := screenText(screen)
	if !strings.Contains(text, "2/") {
		t.Errorf("expected status line to show progress:\n%s", text)
	}
	if !strings.Contains(text, "<- visited") {
		t.Errorf("expected current node to be marked:\n%s", text)
	}
}

func TestViewerAll(t *testing.T) {
	tree, _, _ := segtree.Build([]int64{1, 3, 5, 7, 9, 11}, segtree.Sum)
	before := tree.Nodes()
	trace, _ := tree.Update(1, 4, 2)
	screen := simScreen(t)
	defer screen.Fini()
	v, _ := New(screen, before, trace)
	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	v.Run(true)
	if v.Delivered() != trace.Len() {
		t.Errorf("expected all %d events, have %d", trace.Len(), v.Delivered())
	}
	// after all events the display state equals the tree
	if got, want := v.Nodes(), tree.Nodes(); len(got) != len(want) {
		t.Fatalf("node count differs")
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("display node %v differs from tree node %v", got[i], want[i])
			}
		}
	}
	if _, err := New(screen, before, trace); err == nil {
		t.Errorf("expected error for a trace already replayed")
	}
}

func TestViewerBuild(t *testing.T) {
	tree, trace, _ := segtree.Build([]int64{4, 1, 7}, segtree.Max)
	screen := simScreen(t)
	defer screen.Fini()
	v, _ := New(screen, nil, trace)
	for v.Step() {
	}
	got := v.Nodes()
	want := tree.Nodes()
	if len(got) != len(want) {
		t.Fatalf("expected %d nodes after build replay, have %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("display node %v differs from tree node %v", got[i], want[i])
		}
	}
}
