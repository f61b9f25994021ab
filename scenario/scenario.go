/*
Package scenario runs scripted sequences of tree requests.

A scenario is a YAML document naming an initial array and a list of steps:

    name: lazy push demo
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
      - op: flush
      - op: build
        kind: min
        values: [5, 2, 8, 1, 9]

Steps run in order against a segtree.Session. A failing step (invalid range,
unmet expectation) is reported in its result and does not stop the scenario.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–21 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/segtree"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

var (
	// ErrMalformed is returned for scenarios which cannot be run at all.
	ErrMalformed = errors.New("scenario: malformed scenario")
	// ErrExpectation is reported for steps whose result differs from the
	// expected one.
	ErrExpectation = errors.New("scenario: unexpected result")
)

// Step is a single request.
type Step struct {
	Op     string  `yaml:"op"`
	Lo     int     `yaml:"lo,omitempty"`
	Hi     int     `yaml:"hi,omitempty"`
	Delta  int64   `yaml:"delta,omitempty"`
	Kind   string  `yaml:"kind,omitempty"`
	Values []int64 `yaml:"values,omitempty"`
	Expect *int64  `yaml:"expect,omitempty"`
}

func (s Step) String() string {
	switch s.Op {
	case "query":
		return fmt.Sprintf("query [%d,%d]", s.Lo, s.Hi)
	case "update":
		return fmt.Sprintf("update [%d,%d] %+d", s.Lo, s.Hi, s.Delta)
	case "build":
		return fmt.Sprintf("build %s %v", s.Kind, s.Values)
	}
	return s.Op
}

// Scenario is an initial array plus a list of steps.
type Scenario struct {
	Name   string  `yaml:"name,omitempty"`
	Kind   string  `yaml:"kind"`
	Values []int64 `yaml:"values"`
	Steps  []Step  `yaml:"steps,omitempty"`
}

// Result is the outcome of a step.
type Result struct {
	Step  Step
	Trace *segtree.Trace // nil if the step failed
	Value int64          // query result
	Err   error
}

// Read decodes a scenario from r and checks it.
func Read(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a scenario from file path.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func (s *Scenario) validate() error {
	if _, err := segtree.KindFromString(s.Kind); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, step := range s.Steps {
		switch step.Op {
		case "query", "update", "flush":
		case "build":
			if _, err := segtree.KindFromString(step.Kind); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrMalformed, i+1, err)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown op %q", ErrMalformed, i+1, step.Op)
		}
	}
	return nil
}

// Run builds the scenario's initial tree in sess and runs all steps.
// The first result is the one of the initial build.
func (s *Scenario) Run(sess *segtree.Session) ([]Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	initial := Step{Op: "build", Kind: s.Kind, Values: s.Values}
	results := make([]Result, 0, len(s.Steps)+1)
	for _, step := range append([]Step{initial}, s.Steps...) {
		r := RunStep(sess, step)
		if r.Err != nil {
			tracer().P("scenario", s.Name).Infof("%s: %v", step, r.Err)
		}
		results = append(results, r)
	}
	return results, nil
}

// RunStep runs a single step against sess.
func RunStep(sess *segtree.Session, step Step) Result {
	r := Result{Step: step}
	switch step.Op {
	case "build":
		kind, err := segtree.KindFromString(step.Kind)
		if err != nil {
			r.Err = err
			return r
		}
		r.Trace, r.Err = sess.Build(step.Values, kind)
	case "query":
		r.Value, r.Trace, r.Err = sess.Query(step.Lo, step.Hi)
		if r.Err == nil && step.Expect != nil && *step.Expect != r.Value {
			r.Err = fmt.Errorf("%w: %s = %d, expected %d", ErrExpectation, step, r.Value, *step.Expect)
		}
	case "update":
		r.Trace, r.Err = sess.Update(step.Lo, step.Hi, step.Delta)
	case "flush":
		r.Trace, r.Err = sess.Flush()
	default:
		r.Err = fmt.Errorf("%w: unknown op %q", ErrMalformed, step.Op)
	}
	return r
}

// Failed returns the results carrying an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
