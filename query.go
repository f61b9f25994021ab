package segtree

// Query returns the aggregate of the elements in [lo, hi].
//
// The trace records the traversal: every entered node is visited, then either
// rejected (no overlap), accepted (full containment) or pushed and descended
// into (partial overlap). At most two nodes per tree level are partially
// covered, so a query touches O(log n) nodes.
//
// Query may push pending deltas on its path, but never changes the aggregate
// of any range.
func (t *Tree) Query(lo, hi int) (int64, *Trace, error) {
	if !t.acquire() {
		tracer().P("op", "query").Errorf("rejected [%d,%d]: %v", lo, hi, ErrBusy)
		return 0, nil, ErrBusy
	}
	defer t.release()
	if err := t.validate(lo, hi); err != nil {
		return 0, nil, err
	}
	rec := newRecorder(4 * (t.height + 1))
	v := t.query(1, lo, hi, 0, rec)
	tr := rec.trace(OpQuery, t)
	tr.Lo, tr.Hi, tr.Result = lo, hi, v
	tracer().P("op", "query").Debugf("%s[%d,%d] = %d", t.kind, lo, hi, v)
	return v, tr, nil
}

func (t *Tree) query(i, lo, hi, depth int, rec *recorder) int64 {
	nd := &t.nodes[i]
	rec.emit(t, i, EventVisited, depth)
	switch classify(nd, lo, hi) {
	case noOverlap:
		rec.emit(t, i, EventRejected, depth)
		return t.agg.Identity()
	case fullOverlap:
		rec.emit(t, i, EventAccepted, depth)
		return nd.Value
	}
	t.pushLazy(i, depth, rec)
	l := t.query(left(i), lo, hi, depth+1, rec)
	r := t.query(right(i), lo, hi, depth+1, rec)
	return t.agg.Combine(l, r)
}
