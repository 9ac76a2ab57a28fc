// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"fmt"
	"reflect"

	"github.com/gogama/spatial"
)

// RTree is a dynamic R-tree storing values of type V whose bounding
// boxes have coordinates of type T. Node volumes, which drive the
// choice of subtree on insert and the division of entries on split, are
// calculated in the floating-point type A.
//
// The zero value is not usable. Use New to construct an RTree.
type RTree[T spatial.Coord, A spatial.Area, V any] struct {
	dims       int
	maxEntries int
	minEntries int
	mode       spatial.VolumeMode
	idx        spatial.Indexable[T, V]
	alloc      Allocator[T, V]
	equal      func(a, b V) bool
	domain     spatial.Box[T]
	log        *spatial.Logger
	root       NodeID
	count      int
}

// New creates an empty R-tree for values with dims-dimensional bounding
// boxes, as reported by idx.
//
// Panics if dims is less than 1, if the maximum or minimum number of
// entries is out of range, if an option's type parameters do not match
// the tree's, if the allocator cannot supply a root node, or if V is not
// comparable and no equality function is given with WithEqual.
func New[T spatial.Coord, A spatial.Area, V any](dims int, idx spatial.Indexable[T, V], opts ...Option) *RTree[T, A, V] {
	if dims < 1 {
		textPanic("dimensions must be at least 1")
	} else if idx == nil {
		textPanic("nil indexable")
	}
	o := options{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxEntries < 2 {
		textPanic("max entries must be at least 2")
	}
	if o.minEntries == 0 {
		o.minEntries = o.maxEntries / 2
	}
	if o.minEntries < 1 {
		textPanic("min entries must be at least 1")
	} else if o.minEntries > o.maxEntries/2 {
		fmtPanic("min entries %d exceeds half of max entries %d", o.minEntries, o.maxEntries)
	}
	if o.logger == nil {
		o.logger = spatial.NoopLogger()
	}

	t := &RTree[T, A, V]{
		dims:       dims,
		maxEntries: o.maxEntries,
		minEntries: o.minEntries,
		mode:       o.volumeMode,
		idx:        idx,
		log:        o.logger.WithIndex("rtree"),
	}
	if o.allocator != nil {
		a, ok := o.allocator.(Allocator[T, V])
		if !ok {
			fmtPanic("allocator type %T does not match tree", o.allocator)
		}
		t.alloc = a
	} else {
		t.alloc = NewHeapAllocator[T, V]()
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
	if o.domain != nil {
		d, ok := o.domain.(spatial.Box[T])
		if !ok {
			fmtPanic("domain type %T does not match tree", o.domain)
		} else if d.Dims() != dims {
			fmtPanic("domain has %d dimensions, tree has %d", d.Dims(), dims)
		}
		t.domain = d
	}
	t.root = t.alloc.Allocate(0)
	if t.root == NoNode {
		textPanic("allocator cannot supply root node")
	}
	return t
}

func (t *RTree[T, A, V]) node(id NodeID) *Node[T, V] {
	return t.alloc.Node(id)
}

// bounds returns the bounding box of v, panicking if it does not have
// the tree's dimensionality.
func (t *RTree[T, A, V]) bounds(v V) spatial.Box[T] {
	b := spatial.BoundsOf(t.idx, v)
	if len(b.Min) != t.dims || len(b.Max) != t.dims {
		fmtPanic("value bounds have %d/%d dimensions, tree has %d", len(b.Min), len(b.Max), t.dims)
	}
	return b
}

// Dims returns the number of dimensions of the tree.
func (t *RTree[T, A, V]) Dims() int {
	return t.dims
}

// MaxEntries returns the maximum number of entries per node.
func (t *RTree[T, A, V]) MaxEntries() int {
	return t.maxEntries
}

// MinEntries returns the minimum number of entries per non-root node.
func (t *RTree[T, A, V]) MinEntries() int {
	return t.minEntries
}

// Count returns the number of values stored in the tree.
func (t *RTree[T, A, V]) Count() int {
	return t.count
}

// Levels returns the level of the root node, which is zero when the
// root is a leaf. The tree has Levels()+1 levels of nodes.
func (t *RTree[T, A, V]) Levels() int {
	return t.node(t.root).level
}

// Bounds returns the smallest box enclosing every value in the tree,
// which is the empty box if the tree is empty.
func (t *RTree[T, A, V]) Bounds() spatial.Box[T] {
	return t.node(t.root).cover()
}

// Domain returns the domain configured with WithDomain, or the empty box
// if the tree is unrestricted.
func (t *RTree[T, A, V]) Domain() spatial.Box[T] {
	return t.domain.Clone()
}

// Allocator returns the allocator which supplies the tree's nodes.
func (t *RTree[T, A, V]) Allocator() Allocator[T, V] {
	return t.alloc
}

// Clear removes every value from the tree and returns all of its nodes
// to the allocator except an empty root.
func (t *RTree[T, A, V]) Clear() {
	t.free(t.root)
	t.root = t.alloc.Allocate(0)
	if t.root == NoNode {
		textPanic("allocator cannot supply root node")
	}
	t.count = 0
}

// free deallocates the subtree rooted at id.
func (t *RTree[T, A, V]) free(id NodeID) {
	n := t.node(id)
	if n.level > 0 {
		for i := range n.entries {
			t.free(n.entries[i].child)
		}
	}
	t.alloc.Deallocate(id)
}

// String returns a summary description of the tree.
func (t *RTree[T, A, V]) String() string {
	return fmt.Sprintf("RTree{Bounds:%s,Count:%d,Levels:%d,MaxEntries:%d,MinEntries:%d}",
		t.Bounds(), t.count, t.Levels(), t.maxEntries, t.minEntries)
}
