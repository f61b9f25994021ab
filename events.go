package segtree

import (
	"fmt"
	"iter"
	"slices"
	"sync/atomic"
)

// EventKind tags a node-level step of a tree operation.
type EventKind uint8

// Event kinds, in the order a renderer usually assigns highlight colors.
const (
	EventVisited    EventKind = iota // traversal entered the node
	EventRejected                    // node range does not overlap the request
	EventAccepted                    // node range is fully contained in the request
	EventLazyPushed                  // node's pending delta was pushed to its children
	EventRecomputed                  // node value was recombined from its children
	EventBuilt                       // node was completed during build (post-order)
)

var eventKindNames = [...]string{"visited", "rejected", "accepted", "lazy-pushed",
	"recomputed", "built"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// NodeEvent is one step of a tree operation. Value and Pending are snapshots
// of the node taken right after the step, so consumers never have to read live
// tree state while replaying.
type NodeEvent struct {
	Index   int       // implicit node address, root = 1
	Kind    EventKind // what happened
	Depth   int       // distance from the root
	Lo, Hi  int       // node range
	Value   int64     // node value after the step
	Pending int64     // pending delta after the step
}

func (e NodeEvent) String() string {
	return fmt.Sprintf("#%d [%d,%d] %s v=%d Δ=%d", e.Index, e.Lo, e.Hi, e.Kind, e.Value, e.Pending)
}

// Op identifies the top-level operation a trace was recorded for.
type Op uint8

// Top-level operations.
const (
	OpBuild Op = iota
	OpQuery
	OpUpdate
	OpFlush
)

func (op Op) String() string {
	switch op {
	case OpBuild:
		return "build"
	case OpQuery:
		return "query"
	case OpUpdate:
		return "update"
	case OpFlush:
		return "flush"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Trace is the ordered event log of one completed tree operation.
//
// The events of a trace are fixed once the trace is handed out. A trace may be
// inspected any number of times with Events, but it may be replayed only once
// (see Replay).
type Trace struct {
	Op     Op
	Kind   Kind  // aggregate kind of the tree
	Lo, Hi int   // request range; [0, n-1] for build and flush
	Delta  int64 // update delta
	Result int64 // query result

	events  []NodeEvent
	started atomic.Bool
}

func (tr *Trace) String() string {
	switch tr.Op {
	case OpQuery:
		return fmt.Sprintf("%s %s[%d,%d] = %d (%d events)", tr.Op, tr.Kind, tr.Lo, tr.Hi, tr.Result, len(tr.events))
	case OpUpdate:
		return fmt.Sprintf("%s [%d,%d] %+d (%d events)", tr.Op, tr.Lo, tr.Hi, tr.Delta, len(tr.events))
	}
	return fmt.Sprintf("%s %s[%d,%d] (%d events)", tr.Op, tr.Kind, tr.Lo, tr.Hi, len(tr.events))
}

// Len returns the number of events in the trace.
func (tr *Trace) Len() int {
	if tr == nil {
		return 0
	}
	return len(tr.events)
}

// Events returns a copy of all events in order. Events does not count as
// replay.
func (tr *Trace) Events() []NodeEvent {
	if tr == nil {
		return nil
	}
	return slices.Clone(tr.events)
}

// Replay starts the single replay of a trace. A second call returns
// ErrReplayStarted.
func (tr *Trace) Replay() (*Stepper, error) {
	if tr == nil {
		return nil, ErrIllegalArguments
	}
	if !tr.started.CompareAndSwap(false, true) {
		return nil, ErrReplayStarted
	}
	tracer().P("op", tr.Op.String()).Debugf("replay of %d events started", len(tr.events))
	return &Stepper{events: tr.events}, nil
}

// Stepper hands out the events of a trace one at a time, at the pace of the
// caller. A stepper is not restartable; Stop abandons the replay.
type Stepper struct {
	events  []NodeEvent
	pos     int
	stopped bool
}

// Next returns the next event. The second return value is false if the replay
// is exhausted or has been stopped.
func (st *Stepper) Next() (NodeEvent, bool) {
	if st.stopped || st.pos >= len(st.events) {
		return NodeEvent{}, false
	}
	e := st.events[st.pos]
	st.pos++
	return e, true
}

// Remaining returns the number of events not yet delivered.
func (st *Stepper) Remaining() int {
	if st.stopped {
		return 0
	}
	return len(st.events) - st.pos
}

// Delivered returns the number of events delivered so far.
func (st *Stepper) Delivered() int {
	return st.pos
}

// Stop abandons the replay. It is not an error to stop a finished replay.
func (st *Stepper) Stop() {
	st.stopped = true
}

// All returns an iterator over the remaining events. Breaking out of the loop
// leaves the undelivered events with the stepper.
func (st *Stepper) All() iter.Seq[NodeEvent] {
	return func(yield func(NodeEvent) bool) {
		for {
			e, ok := st.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

// --- Recording -------------------------------------------------------------

// recorder collects events while an operation runs. A nil recorder records
// nothing.
type recorder struct {
	events []NodeEvent
}

func newRecorder(sizeHint int) *recorder {
	return &recorder{events: make([]NodeEvent, 0, sizeHint)}
}

func (r *recorder) emit(t *Tree, i int, kind EventKind, depth int) {
	if r == nil {
		return
	}
	nd := &t.nodes[i]
	r.events = append(r.events, NodeEvent{
		Index:   i,
		Kind:    kind,
		Depth:   depth,
		Lo:      nd.Lo,
		Hi:      nd.Hi,
		Value:   nd.Value,
		Pending: nd.Pending,
	})
}

func (r *recorder) trace(op Op, t *Tree) *Trace {
	tr := &Trace{Op: op, Kind: t.kind, Lo: 0, Hi: t.n - 1}
	if r != nil {
		tr.events = r.events
	}
	return tr
}
