// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"iter"

	"github.com/gogama/spatial"
)

// Search calls fn for each value in the tree whose bounding box
// satisfies the predicate, stopping early if fn returns false.
//
// The values held directly by every visited node are tested, since
// values crossing a midpoint are only held there. A child is visited
// only if the predicate's Visit method accepts the child's region. The
// order in which values are visited is not defined.
//
// The tree must not be modified during the search.
func (t *Tree[T, V]) Search(p spatial.Predicate[T], fn func(v V) bool) {
	stack := []*node[T, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i := range n.items {
			if p.Test(n.items[i].box) && !fn(n.items[i].value) {
				return
			}
		}
		for q := len(n.children) - 1; q >= 0; q-- {
			if c := n.children[q]; p.Visit(c.domain) {
				stack = append(stack, c)
			}
		}
	}
}

// Query appends to dst every value in the tree whose bounding box
// satisfies the predicate, and returns the extended slice.
func (t *Tree[T, V]) Query(p spatial.Predicate[T], dst []V) []V {
	t.Search(p, func(v V) bool {
		dst = append(dst, v)
		return true
	})
	return dst
}

// Matches returns a sequence of the values in the tree whose bounding
// box satisfies the predicate.
func (t *Tree[T, V]) Matches(p spatial.Predicate[T]) iter.Seq[V] {
	return func(yield func(V) bool) {
		t.Search(p, yield)
	}
}

// Any reports whether any value in the tree satisfies the predicate.
func (t *Tree[T, V]) Any(p spatial.Predicate[T]) bool {
	var found bool
	t.Search(p, func(V) bool {
		found = true
		return false
	})
	return found
}

// Values returns a sequence of every value in the tree. Each node's own
// values are visited before those of its children.
func (t *Tree[T, V]) Values() iter.Seq[V] {
	return t.Matches(spatial.All[T]())
}
