/*
Package replay drives the replay of segment tree traces.

A trace returned by a tree operation is replayed through a segtree.Stepper.
Manual stepping is done with the stepper directly; this package adds paced
replay (Player), which hands out one event per tick of a rate limiter, and
fan-out to several observers (Broadcaster).

Stopping a replay never affects the tree: the operation a trace was recorded
for has always completed before replay starts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–21 Norbert Pillmayer <norbert@pillmayer.com>

*/
package replay

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

// ErrClosed is returned when subscribing to or broadcasting on a broadcaster
// which already finished its broadcast or whose context is done.
var ErrClosed = errors.New("replay: broadcaster closed")
