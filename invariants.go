package segtree

import "fmt"

// Check verifies the structural invariants of t:
//
//   - node ranges partition their parent's range at the midpoint,
//   - leaves carry no pending delta,
//   - every interior node's value equals the combination of its children
//     plus its own pending delta, scaled to the node length.
//
// Check returns an error wrapping ErrInvariant for the first violation found.
// It is meant for tests and debugging; it does not modify the tree.
func (t *Tree) Check() error {
	if t.IsEmpty() {
		return nil
	}
	root := t.nodes[1]
	if root.Lo != 0 || root.Hi != t.n-1 {
		return fmt.Errorf("%w: root covers [%d,%d], expected [0,%d]", ErrInvariant, root.Lo, root.Hi, t.n-1)
	}
	return t.check(1)
}

func (t *Tree) check(i int) error {
	nd := t.nodes[i]
	if nd.Index != i {
		return fmt.Errorf("%w: node at %d carries index %d", ErrInvariant, i, nd.Index)
	}
	if nd.IsLeaf() {
		if nd.Pending != 0 {
			return fmt.Errorf("%w: leaf %v has pending delta", ErrInvariant, nd)
		}
		return nil
	}
	l, r := t.nodes[left(i)], t.nodes[right(i)]
	mid := nd.Lo + (nd.Hi-nd.Lo)/2
	if l.Lo != nd.Lo || l.Hi != mid || r.Lo != mid+1 || r.Hi != nd.Hi {
		return fmt.Errorf("%w: children %v, %v do not split %v", ErrInvariant, l, r, nd)
	}
	expected := t.agg.Combine(l.Value, r.Value) + t.agg.Scale(nd.Pending, nd.Len())
	if nd.Value != expected {
		return fmt.Errorf("%w: node %v should have value %d", ErrInvariant, nd, expected)
	}
	if err := t.check(left(i)); err != nil {
		return err
	}
	return t.check(right(i))
}
