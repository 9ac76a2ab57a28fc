// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/gogama/spatial"

// A NodeID identifies a node within the arena of an Allocator. A NodeID
// is valid from the moment it is returned by Allocate until it is passed
// to Deallocate.
type NodeID int32

// NoNode is the NodeID returned by Allocate when no node is available.
const NoNode NodeID = -1

// An entry is a single slot within a Node. In a leaf node the entry
// holds a stored value and the value's bounding box. In an internal
// node it holds a child node and the bounding box of the child's
// subtree, and the value slot is a caller-owned aggregate which the
// tree never reads.
type entry[T spatial.Coord, V any] struct {
	box   spatial.Box[T]
	child NodeID
	value V
}

// A Node is a single R-tree node. Nodes are created and owned by an
// Allocator and are only ever modified by the RTree which requested
// them.
type Node[T spatial.Coord, V any] struct {
	level   int
	entries []entry[T, V]
}

// Reset clears the node and assigns it a level. Leaf nodes have level
// zero. An Allocator must reset every node it hands out.
func (n *Node[T, V]) Reset(level int) {
	clear(n.entries)
	n.entries = n.entries[:0]
	n.level = level
}

// Level returns the level of the node within its tree. Leaves are at
// level zero and the root is at the highest level.
func (n *Node[T, V]) Level() int {
	return n.level
}

// Len returns the number of entries in the node.
func (n *Node[T, V]) Len() int {
	return len(n.entries)
}

// IsLeaf reports whether the node is a leaf.
func (n *Node[T, V]) IsLeaf() bool {
	return n.level == 0
}

func (n *Node[T, V]) append(e entry[T, V]) {
	n.entries = append(n.entries, e)
}

// removeAt removes the entry at index i, preserving the order of the
// remaining entries.
func (n *Node[T, V]) removeAt(i int) entry[T, V] {
	e := n.entries[i]
	copy(n.entries[i:], n.entries[i+1:])
	var zero entry[T, V]
	n.entries[len(n.entries)-1] = zero
	n.entries = n.entries[:len(n.entries)-1]
	return e
}

// cover returns a newly-allocated box enclosing every entry in the node.
func (n *Node[T, V]) cover() spatial.Box[T] {
	var b spatial.Box[T]
	for i := range n.entries {
		b.ExtendBox(n.entries[i].box)
	}
	return b
}
