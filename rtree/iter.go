// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"iter"

	"github.com/gogama/spatial"
)

// Values returns a sequence of every value in the tree in leaf order:
// depth first, and left to right within each node. The tree must not be
// modified while the sequence is being iterated.
func (t *RTree[T, A, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		t.walk(t.root, func(_ spatial.Box[T], v V) bool {
			return yield(v)
		})
	}
}

// Entries returns a sequence of every value in the tree, together with
// its bounding box, in the same order as Values. The boxes belong to the
// tree and must not be modified.
func (t *RTree[T, A, V]) Entries() iter.Seq2[spatial.Box[T], V] {
	return func(yield func(spatial.Box[T], V) bool) {
		t.walk(t.root, yield)
	}
}

func (t *RTree[T, A, V]) walk(id NodeID, yield func(spatial.Box[T], V) bool) bool {
	n := t.node(id)
	for i := range n.entries {
		e := &n.entries[i]
		if n.level == 0 {
			if !yield(e.box, e.value) {
				return false
			}
		} else if !t.walk(e.child, yield) {
			return false
		}
	}
	return true
}

// A frame is a node being visited by a DepthCursor, and the index of the
// next of its entries to descend into.
type frame struct {
	id NodeID
	i  int
}

// A DepthCursor visits every internal entry of an RTree in depth order:
// each internal entry is visited after every internal entry beneath it,
// so an aggregate can be computed for a subtree from the aggregates of
// its children.
//
// An internal entry stands for a whole subtree. Its aggregate slot, a
// value of type V reachable through Value, is never read by the tree and
// may be used to store anything the caller likes.
//
// Create a DepthCursor with RTree.Depth and call Next before the first
// access:
//
//	for c := tree.Depth(); c.Next(); {
//		...
//	}
//
// The tree must not be modified while a cursor is in use.
type DepthCursor[T spatial.Coord, A spatial.Area, V any] struct {
	t     *RTree[T, A, V]
	stack []frame
	node  NodeID
	index int
}

// Depth returns a cursor over the internal entries of the tree. A tree
// whose root is a leaf has no internal entries.
func (t *RTree[T, A, V]) Depth() *DepthCursor[T, A, V] {
	return &DepthCursor[T, A, V]{
		t:     t,
		stack: []frame{{id: t.root}},
		node:  NoNode,
	}
}

// Next advances the cursor to the next internal entry, returning false
// when there are none left.
func (c *DepthCursor[T, A, V]) Next() bool {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		n := c.t.node(top.id)
		if n.level > 0 && top.i < len(n.entries) {
			c.stack = append(c.stack, frame{id: n.entries[top.i].child})
			continue
		}
		// Every entry beneath top has been visited, so the entry
		// leading to top is next.
		c.stack = c.stack[:len(c.stack)-1]
		if len(c.stack) == 0 {
			break
		}
		parent := &c.stack[len(c.stack)-1]
		c.node, c.index = parent.id, parent.i
		parent.i++
		return true
	}
	c.node = NoNode
	return false
}

func (c *DepthCursor[T, A, V]) entry() *entry[T, V] {
	if c.node == NoNode {
		textPanic("cursor is not positioned on an entry")
	}
	return &c.t.node(c.node).entries[c.index]
}

// Level returns the level of the node holding the current entry. This is
// one more than the level of the subtree's root node.
func (c *DepthCursor[T, A, V]) Level() int {
	c.entry()
	return c.t.node(c.node).level
}

// Bounds returns the bounding box of the current entry's subtree. The
// box belongs to the tree and must not be modified.
func (c *DepthCursor[T, A, V]) Bounds() spatial.Box[T] {
	return c.entry().box
}

// Value returns a pointer to the aggregate slot of the current entry.
func (c *DepthCursor[T, A, V]) Value() *V {
	return &c.entry().value
}

// Child returns a cursor over the entries of the current entry's child
// node. If the child is a leaf, the child cursor visits stored values.
func (c *DepthCursor[T, A, V]) Child() *ChildCursor[T, V] {
	return &ChildCursor[T, V]{
		n: c.t.node(c.entry().child),
		i: -1,
	}
}

// A ChildCursor visits the entries of a single node in order. Call Next
// before the first access.
type ChildCursor[T spatial.Coord, V any] struct {
	n *Node[T, V]
	i int
}

// Next advances the cursor to the next entry, returning false when there
// are none left.
func (c *ChildCursor[T, V]) Next() bool {
	if c.i < len(c.n.entries) {
		c.i++
	}
	return c.i < len(c.n.entries)
}

func (c *ChildCursor[T, V]) entry() *entry[T, V] {
	if c.i < 0 || c.i >= len(c.n.entries) {
		textPanic("cursor is not positioned on an entry")
	}
	return &c.n.entries[c.i]
}

// Level returns the level of the node whose entries are being visited.
// At level zero the entries are stored values.
func (c *ChildCursor[T, V]) Level() int {
	return c.n.level
}

// Bounds returns the bounding box of the current entry. The box belongs
// to the tree and must not be modified.
func (c *ChildCursor[T, V]) Bounds() spatial.Box[T] {
	return c.entry().box
}

// Value returns a pointer to the current entry's value: a stored value
// at level zero and an aggregate slot otherwise. Stored values must not
// be modified in any way that changes their bounding box.
func (c *ChildCursor[T, V]) Value() *V {
	return &c.entry().value
}
