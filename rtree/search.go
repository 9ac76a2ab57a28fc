// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"iter"

	"github.com/gogama/spatial"
)

// A ticketBag is the collection of pending work items, nodes whose
// entries remain to be examined, during a search loop. It behaves like
// a stack, so the tree is searched depth first.
type ticketBag []NodeID

func (tb *ticketBag) push(id NodeID) {
	*tb = append(*tb, id)
}

func (tb *ticketBag) pop() NodeID {
	old := *tb
	n := len(old)
	x := old[n-1]
	*tb = old[0 : n-1]
	return x
}

// Search calls fn for each value in the tree whose bounding box
// satisfies the predicate, stopping early if fn returns false. Subtrees
// are skipped when the predicate's Visit method rejects their bounding
// box. The order in which values are visited is not defined.
//
// The tree must not be modified during the search.
func (t *RTree[T, A, V]) Search(p spatial.Predicate[T], fn func(v V) bool) {
	q := ticketBag{t.root}
	for len(q) > 0 {
		n := t.node(q.pop())
		if n.level == 0 {
			for i := range n.entries {
				if p.Test(n.entries[i].box) && !fn(n.entries[i].value) {
					return
				}
			}
			continue
		}
		// Push in reverse so that children are searched left to right.
		for i := len(n.entries) - 1; i >= 0; i-- {
			if p.Visit(n.entries[i].box) {
				q.push(n.entries[i].child)
			}
		}
	}
}

// Query appends to dst every value in the tree whose bounding box
// satisfies the predicate, and returns the extended slice.
func (t *RTree[T, A, V]) Query(p spatial.Predicate[T], dst []V) []V {
	t.Search(p, func(v V) bool {
		dst = append(dst, v)
		return true
	})
	return dst
}

// Matches returns a sequence of the values in the tree whose bounding
// box satisfies the predicate.
func (t *RTree[T, A, V]) Matches(p spatial.Predicate[T]) iter.Seq[V] {
	return func(yield func(V) bool) {
		t.Search(p, yield)
	}
}

// Any reports whether at least one value in the tree satisfies the
// predicate. The search stops at the first match.
func (t *RTree[T, A, V]) Any(p spatial.Predicate[T]) bool {
	var found bool
	t.Search(p, func(V) bool {
		found = true
		return false
	})
	return found
}

// Overlaps appends to dst every value whose bounding box overlaps q. It
// is shorthand for Query(spatial.Intersects(q), dst).
func (t *RTree[T, A, V]) Overlaps(q spatial.Box[T], dst []V) []V {
	return t.Query(spatial.Intersects(q), dst)
}

// Within appends to dst every value whose bounding box lies entirely
// within q. It is shorthand for Query(spatial.Contains(q), dst).
func (t *RTree[T, A, V]) Within(q spatial.Box[T], dst []V) []V {
	return t.Query(spatial.Contains(q), dst)
}

// HierarchicalQuery searches the tree depth first, reporting whole
// subtrees where possible instead of their individual values.
//
// A value satisfying the predicate is reported with level zero, its
// bounding box and the value itself. If the predicate implements
// spatial.Coverer and covers the bounding box of an internal entry, the
// entry is reported once with the level of the node holding it, its
// bounding box and its aggregate slot (see DepthCursor.Value), and the
// subtree beneath it is not searched. Otherwise the subtree is searched
// if the predicate's Visit method accepts its bounding box. The search
// stops early if fn returns false.
func (t *RTree[T, A, V]) HierarchicalQuery(p spatial.Predicate[T], fn func(level int, b spatial.Box[T], v V) bool) {
	c, _ := p.(spatial.Coverer[T])
	t.hierarchical(t.root, p, c, fn)
}

func (t *RTree[T, A, V]) hierarchical(id NodeID, p spatial.Predicate[T], c spatial.Coverer[T], fn func(int, spatial.Box[T], V) bool) bool {
	n := t.node(id)
	for i := range n.entries {
		e := &n.entries[i]
		switch {
		case n.level == 0:
			if p.Test(e.box) && !fn(0, e.box, e.value) {
				return false
			}
		case !p.Visit(e.box):
		case c != nil && c.Covers(e.box):
			if !fn(n.level, e.box, e.value) {
				return false
			}
		default:
			if !t.hierarchical(e.child, p, c, fn) {
				return false
			}
		}
	}
	return true
}
