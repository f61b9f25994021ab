package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/segtree/scenario"
)

const demo = `
kind: sum
values: [1, 3, 5, 7, 9, 11]
steps:
  - op: query
    lo: 1
    hi: 3
  - op: update
    lo: 1
    hi: 4
    delta: 2
  - op: query
    lo: 3
    hi: 3
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	cfg := filepath.Join(t.TempDir(), "none.yaml")
	root.SetArgs(append(args, "--config", cfg, "--interval", "0", "--color=false", "--width", "60"))
	if err := root.Execute(); err != nil {
		t.Fatalf("segviz %v: %v", args, err)
	}
	return out.String()
}

func TestRunCommand(t *testing.T) {
	path := writeFile(t, "demo.yaml", demo)
	out := execute(t, "run", path)
	t.Logf("\n%s", out)
	for _, s := range []string{"== build sum[0,5]", "== query sum[1,3] = 15", "== query sum[3,3] = 9", "lazy-pushed", "== events"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected output to contain %q", s)
		}
	}
}

func TestDotCommand(t *testing.T) {
	path := writeFile(t, "demo.yaml", demo)
	out := execute(t, "dot", path)
	if !strings.Contains(out, "strict digraph {") || strings.Count(out, "->") != 10 {
		t.Errorf("expected DOT graph of 11 nodes, have\n%s", out)
	}
}

func TestHTMLCommand(t *testing.T) {
	path := writeFile(t, "values.html", "<ol><li>5</li><li>2</li><li>8</li></ol>")
	out := execute(t, "html", path, "--kind", "min")
	if !strings.HasPrefix(out, `<table class="segtree min">`) {
		t.Errorf("expected HTML node table, have\n%s", out)
	}
}

func TestStepScenario(t *testing.T) {
	s, err := scenario.Read(strings.NewReader(demo))
	if err != nil {
		t.Fatal(err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	// one viewer per step: build, query, update, query
	for range 4 {
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}
	if err := stepScenario(screen, s); err != nil {
		t.Fatal(err)
	}
}
