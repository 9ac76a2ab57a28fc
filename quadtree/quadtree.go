// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/gogama/spatial"
)

// Tree is a region quad-tree storing values of type V whose bounding
// boxes have coordinates of type T.
//
// Values are expected to lie within the tree's domain. A value outside
// the domain is never lost, but whether queries find it is undefined.
//
// The zero value is not usable. Use New to construct a Tree.
type Tree[T spatial.Coord, V any] struct {
	domain    spatial.Box[T]
	idx       spatial.Indexable[T, V]
	threshold int
	maxDepth  int
	equal     func(a, b V) bool
	log       *spatial.Logger
	root      *node[T, V]
	count     int
	depth     int
}

// New creates an empty quad-tree over domain for values whose bounding
// boxes are reported by idx.
//
// Panics if the domain is inverted or degenerate on any axis, if it has
// more than MaxDims dimensions, if an option is out of range, or if V is
// not comparable and no equality function is given with WithEqual.
func New[T spatial.Coord, V any](domain spatial.Box[T], idx spatial.Indexable[T, V], opts ...Option) *Tree[T, V] {
	if err := domain.Validate(); err != nil {
		fmtPanic("invalid domain: %v", err)
	} else if domain.Dims() < 1 || domain.Dims() > MaxDims {
		fmtPanic("domain has %d dimensions, must be between 1 and %d", domain.Dims(), MaxDims)
	}
	for i := range domain.Min {
		if domain.Min[i] >= domain.Max[i] {
			fmtPanic("domain %s is degenerate on axis %d", domain, i)
		}
	}
	if idx == nil {
		textPanic("nil indexable")
	}
	o := options{
		threshold: DefaultThreshold,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.threshold < 1 {
		textPanic("threshold must be at least 1")
	} else if o.maxDepth < 0 {
		textPanic("max depth must not be negative")
	}
	if o.logger == nil {
		o.logger = spatial.NoopLogger()
	}

	t := &Tree[T, V]{
		domain:    domain.Clone(),
		idx:       idx,
		threshold: o.threshold,
		maxDepth:  o.maxDepth,
		log:       o.logger.WithIndex("quadtree"),
	}
	if o.equal != nil {
		eq, ok := o.equal.(func(a, b V) bool)
		if !ok {
			fmtPanic("equality function type %T does not match tree", o.equal)
		}
		t.equal = eq
	} else if t.equal = spatial.DefaultEqual[T, V](); t.equal == nil {
		fmtPanic("values of type %s are not comparable, use WithEqual", reflect.TypeFor[V]())
	}
	t.Clear()
	return t
}

func (t *Tree[T, V]) bounds(v V) spatial.Box[T] {
	b := spatial.BoundsOf(t.idx, v)
	if len(b.Min) != t.domain.Dims() || len(b.Max) != t.domain.Dims() {
		fmtPanic("value bounds have %d/%d dimensions, tree has %d", len(b.Min), len(b.Max), t.domain.Dims())
	}
	return b
}

// Domain returns a copy of the region covered by the tree.
func (t *Tree[T, V]) Domain() spatial.Box[T] {
	return t.domain.Clone()
}

// Count returns the number of values in the tree.
func (t *Tree[T, V]) Count() int {
	return t.count
}

// Depth returns the depth of the deepest node ever created by
// subdividing. A tree which has never subdivided has depth zero. Since
// nodes are not merged on removal, Depth does not decrease until the
// tree is cleared.
func (t *Tree[T, V]) Depth() int {
	return t.depth
}

// Threshold returns the number of values a node may hold before it is
// subdivided.
func (t *Tree[T, V]) Threshold() int {
	return t.threshold
}

// MaxDepth returns the depth at which nodes stop subdividing.
func (t *Tree[T, V]) MaxDepth() int {
	return t.maxDepth
}

// Clear removes every value from the tree.
func (t *Tree[T, V]) Clear() {
	t.root = newNode[T, V](t.domain, 0, t.maxDepth)
	t.count = 0
	t.depth = 0
}

func (t *Tree[T, V]) String() string {
	return fmt.Sprintf("QuadTree{Domain:%s,Count:%d,Depth:%d,Threshold:%d}",
		t.domain, t.count, t.depth, t.threshold)
}

// Insert adds v to the tree.
//
// Starting at the root, v is placed into the first node which either
// has no children and room for another value, or whose midpoint v's
// bounding box crosses. A node with no room is subdivided first.
// Nodes which cannot be subdivided, because they are at the maximum
// depth or their region is too small to divide, accept any number of
// values.
func (t *Tree[T, V]) Insert(v V) {
	b := t.bounds(v)
	n := t.root
	for {
		if n.children == nil {
			if len(n.items) < t.threshold || !n.splittable {
				break
			}
			stayed, moved := n.subdivide(t.maxDepth)
			t.depth = max(t.depth, n.depth+1)
			t.log.LogSubdivide(n.depth, stayed, moved)
		}
		q, ok := n.quadrant(b)
		if !ok {
			break
		}
		n = n.children[q]
	}
	n.items = append(n.items, item[T, V]{box: b, value: v})
	t.count++
}

// InsertAll adds every value in vs to the tree.
func (t *Tree[T, V]) InsertAll(vs ...V) {
	for _, v := range vs {
		t.Insert(v)
	}
}

// InsertSeq adds every value in seq to the tree.
func (t *Tree[T, V]) InsertSeq(seq iter.Seq[V]) {
	for v := range seq {
		t.Insert(v)
	}
}

// Remove removes one value equal to v from the tree, returning false if
// there is no such value.
//
// The value is sought along the path Insert would take to place it, so
// its bounding box must not have changed since it was inserted. Nodes
// emptied by removal are kept.
func (t *Tree[T, V]) Remove(v V) bool {
	b := t.bounds(v)
	n := t.root
	for {
		i := slices.IndexFunc(n.items, func(it item[T, V]) bool {
			return t.equal(it.value, v)
		})
		if i >= 0 {
			n.items = slices.Delete(n.items, i, i+1)
			t.count--
			return true
		}
		if n.children == nil {
			return false
		}
		q, ok := n.quadrant(b)
		if !ok {
			return false
		}
		n = n.children[q]
	}
}

// Validate checks the structural invariants of the tree, returning an
// error describing the first violation found. Validate is intended for
// tests and debugging.
func (t *Tree[T, V]) Validate() error {
	var count int
	stack := []*node[T, V]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count += len(n.items)
		if n.children == nil {
			if n.splittable && len(n.items) > t.threshold {
				return fmtErr("node %s at depth %d holds %d values, threshold is %d", n.domain, n.depth, len(n.items), t.threshold)
			}
		} else if len(n.children) != 1<<t.domain.Dims() {
			return fmtErr("node %s at depth %d has %d children", n.domain, n.depth, len(n.children))
		}
		for _, it := range n.items {
			if n.children != nil {
				if _, ok := n.quadrant(it.box); ok {
					return fmtErr("node %s at depth %d holds %s which fits a child", n.domain, n.depth, it.box)
				}
			}
			if t.domain.Contains(it.box) && !n.domain.Contains(it.box) {
				return fmtErr("node %s at depth %d holds %s outside its region", n.domain, n.depth, it.box)
			}
		}
		for _, c := range n.children {
			if c.depth != n.depth+1 {
				return fmtErr("node %s at depth %d has child at depth %d", n.domain, n.depth, c.depth)
			}
			stack = append(stack, c)
		}
	}
	if count != t.count {
		return fmtErr("nodes hold %d values but count is %d", count, t.count)
	}
	return nil
}
