package segtree

import "sync/atomic"

// guard flags an operation in flight. Requests arriving while the flag is set
// are rejected, never queued.
type guard struct {
	inflight atomic.Bool
}

// acquire sets the in-flight flag. It returns false if the flag was already set.
func (g *guard) acquire() bool {
	return g.inflight.CompareAndSwap(false, true)
}

func (g *guard) release() {
	g.inflight.Store(false)
}

// Busy reports whether an operation is currently in flight.
func (g *guard) Busy() bool {
	return g.inflight.Load()
}
