package segtree

import "sync"

// Session is the client-side owner of a tree over its whole lifecycle. It
// serializes nothing: a request arriving while another one is in flight is
// rejected with ErrBusy, and the tree is left untouched.
//
// Rebuilding replaces the current tree wholesale; there is no incremental
// rebuild.
type Session struct {
	guard
	mu   sync.RWMutex // protects tree pointer only
	tree *Tree
}

// NewSession creates a session without a tree. Requests other than Build fail
// with ErrEmptyTree until the first successful Build.
func NewSession() *Session {
	return &Session{}
}

// Tree returns the current tree, or nil.
func (s *Session) Tree() *Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Build replaces the current tree with a new one built from values.
// On error the previous tree is kept.
func (s *Session) Build(values []int64, kind Kind) (*Trace, error) {
	if !s.acquire() {
		tracer().P("session", "build").Errorf("rejected: %v", ErrBusy)
		return nil, ErrBusy
	}
	defer s.release()
	t, tr, err := Build(values, kind)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.tree = t
	s.mu.Unlock()
	return tr, nil
}

// Query runs a range query on the current tree.
func (s *Session) Query(lo, hi int) (int64, *Trace, error) {
	if !s.acquire() {
		tracer().P("session", "query").Errorf("rejected: %v", ErrBusy)
		return 0, nil, ErrBusy
	}
	defer s.release()
	t := s.Tree()
	if t == nil {
		return 0, nil, ErrEmptyTree
	}
	return t.Query(lo, hi)
}

// Update runs a range update on the current tree.
func (s *Session) Update(lo, hi int, delta int64) (*Trace, error) {
	if !s.acquire() {
		tracer().P("session", "update").Errorf("rejected: %v", ErrBusy)
		return nil, ErrBusy
	}
	defer s.release()
	t := s.Tree()
	if t == nil {
		return nil, ErrEmptyTree
	}
	return t.Update(lo, hi, delta)
}

// Flush pushes all pending deltas of the current tree to the leaves.
func (s *Session) Flush() (*Trace, error) {
	if !s.acquire() {
		return nil, ErrBusy
	}
	defer s.release()
	t := s.Tree()
	if t == nil {
		return nil, ErrEmptyTree
	}
	return t.Flush()
}
