package segtree

// applyDelta shifts every element under node i by delta. Interior nodes keep
// the delta as pending for their children; leaves take it into their value
// only.
func (t *Tree) applyDelta(i int, delta int64) {
	nd := &t.nodes[i]
	nd.Value += t.agg.Scale(delta, nd.Len())
	if !nd.IsLeaf() {
		nd.Pending += delta
	}
}

// pushLazy moves the pending delta of node i one level down. It is a no-op
// for leaves and for nodes without a pending delta.
//
// Every traversal entering the children of a node must push first, otherwise
// it reads stale child values.
func (t *Tree) pushLazy(i, depth int, rec *recorder) {
	nd := &t.nodes[i]
	if nd.Pending == 0 || nd.IsLeaf() {
		return
	}
	delta := nd.Pending
	t.applyDelta(left(i), delta)
	t.applyDelta(right(i), delta)
	nd.Pending = 0
	rec.emit(t, i, EventLazyPushed, depth)
}

// recompute recombines the value of an interior node from its children.
// Callers must have pushed the node's pending delta before.
func (t *Tree) recompute(i, depth int, rec *recorder) {
	nd := &t.nodes[i]
	assert(nd.Pending == 0, "recompute called on node with pending delta")
	nd.Value = t.agg.Combine(t.nodes[left(i)].Value, t.nodes[right(i)].Value)
	rec.emit(t, i, EventRecomputed, depth)
}

// Flush pushes all pending deltas down to the leaves and recomputes every
// interior node on the way back up. Afterwards no node carries a pending
// delta. Flush does not change the aggregate of any range.
func (t *Tree) Flush() (*Trace, error) {
	if !t.acquire() {
		return nil, ErrBusy
	}
	defer t.release()
	if t.IsEmpty() {
		return nil, ErrEmptyTree
	}
	rec := newRecorder(4 * t.n)
	t.flush(1, 0, rec)
	tracer().P("op", "flush").Debugf("flushed %d pending deltas", countKind(rec.events, EventLazyPushed))
	return rec.trace(OpFlush, t), nil
}

func (t *Tree) flush(i, depth int, rec *recorder) {
	if t.nodes[i].IsLeaf() {
		return
	}
	t.pushLazy(i, depth, rec)
	t.flush(left(i), depth+1, rec)
	t.flush(right(i), depth+1, rec)
	t.recompute(i, depth, rec)
}

func countKind(events []NodeEvent, kind EventKind) int {
	cnt := 0
	for _, e := range events {
		if e.Kind == kind {
			cnt++
		}
	}
	return cnt
}
