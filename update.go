package segtree

// Update adds delta to every element in [lo, hi].
//
// The range is validated before any node is touched; an invalid request
// leaves the tree unchanged. Fully covered nodes take the delta as pending and
// stop the descent; partially covered nodes push their own pending delta
// first, descend into both children and recompute their value afterwards.
func (t *Tree) Update(lo, hi int, delta int64) (*Trace, error) {
	if !t.acquire() {
		tracer().P("op", "update").Errorf("rejected [%d,%d]: %v", lo, hi, ErrBusy)
		return nil, ErrBusy
	}
	defer t.release()
	if err := t.validate(lo, hi); err != nil {
		return nil, err
	}
	rec := newRecorder(5 * (t.height + 1))
	t.update(1, lo, hi, delta, 0, rec)
	tr := rec.trace(OpUpdate, t)
	tr.Lo, tr.Hi, tr.Delta = lo, hi, delta
	tracer().P("op", "update").Debugf("[%d,%d] %+d, root now %d", lo, hi, delta, t.nodes[1].Value)
	return tr, nil
}

func (t *Tree) update(i, lo, hi int, delta int64, depth int, rec *recorder) {
	rec.emit(t, i, EventVisited, depth)
	switch classify(&t.nodes[i], lo, hi) {
	case noOverlap:
		rec.emit(t, i, EventRejected, depth)
		return
	case fullOverlap:
		t.applyDelta(i, delta)
		rec.emit(t, i, EventAccepted, depth)
		return
	}
	t.pushLazy(i, depth, rec)
	t.update(left(i), lo, hi, delta, depth+1, rec)
	t.update(right(i), lo, hi, delta, depth+1, rec)
	t.recompute(i, depth, rec)
}
