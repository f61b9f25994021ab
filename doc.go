/*
Package segtree implements a range-aggregation tree with lazy propagation
(a “segment tree”), instrumented for algorithm visualization.

Segment Trees

A segment tree is a complete binary tree over the indices of an array. Every node
holds an aggregate of a contiguous sub-range of the array; the root covers the
whole array, leaves cover single elements. Range queries and uniform range
updates both run in O(log n):

	Operation          |  Segment tree  |  Plain array
	-------------------+----------------+-------------
	Build              |   O(n)         |   O(1)
	Query(lo, hi)      |   O(log n)     |   O(n)
	Update(lo, hi, d)  |   O(log n)     |   O(n)

Updates are additive (“add d to every element in [lo, hi]”). They are applied
lazily: a node fully covered by an update records the delta as pending and stops
the descent. The pending delta is pushed one level down only when a later
traversal needs to enter the node's children.

Aggregates

Three aggregate kinds are supported: Sum, Min and Max. Each comes with an
Aggregator which defines the combine operator, the identity element and the
scaling rule of a uniform delta over a range of a given length (sum scales with
the range length, min and max do not).

Traces

Every top-level operation (build, query, update, flush) returns a Trace, an
ordered log of node-level events. The tree operation has completed before the
trace is handed out; the trace is a record, not a driver of control flow. A
trace may be replayed exactly once, at any pace, and replay may be abandoned at
any time without affecting the tree. Package segtree/replay provides paced and
broadcasting replay on top of Trace.Replay.

Trees are owned by a single client. Package-level type Session adds the
in-flight guard which rejects overlapping requests with ErrBusy.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package segtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

// TreeError is an error type for the segtree module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrInvalidRange is flagged whenever a range is reversed or reaches outside
// of [0, n-1].
const ErrInvalidRange = TreeError("invalid range")

// ErrEmptyTree is flagged for queries and updates on a tree built from an
// empty array.
const ErrEmptyTree = TreeError("tree is empty")

// ErrBusy signals that another operation on the same tree is in flight.
const ErrBusy = TreeError("operation in flight")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TreeError("illegal arguments")

// ErrReplayStarted is flagged when a trace is asked for a second replay.
const ErrReplayStarted = TreeError("trace replay already started")

// ErrInvariant is flagged by Check if a tree violates a structural invariant.
const ErrInvariant = TreeError("tree invariant violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
