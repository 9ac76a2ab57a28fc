// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/gogama/spatial"
)

// An Allocator supplies the nodes of an RTree.
//
// Allocate returns the ID of a reset node at the requested level, or
// NoNode if no node is available. Deallocate returns a node to the
// allocator, after which its ID must not be used until it is handed out
// again. Node resolves an ID to the node it identifies; the returned
// pointer is only required to remain valid until the node is
// deallocated.
//
// Overflowed reports whether the most recent call to Allocate found the
// allocator out of nodes. Overflowable reports whether the allocator can ever run out: the tree
// only pays for the bookkeeping needed to fail cleanly on exhaustion
// when Overflowable is true. Outstanding returns the number of nodes
// currently allocated.
//
// An Allocator may be shared by several trees.
type Allocator[T spatial.Coord, V any] interface {
	Allocate(level int) NodeID
	Deallocate(id NodeID)
	Node(id NodeID) *Node[T, V]
	Overflowed() bool
	Overflowable() bool
	Outstanding() int
}

// HeapAllocator is an unbounded Allocator which allocates each node
// individually on the heap. The IDs of deallocated nodes are recycled.
//
// The zero value is ready to use.
type HeapAllocator[T spatial.Coord, V any] struct {
	nodes []*Node[T, V]
	free  []NodeID
}

// NewHeapAllocator returns a new, empty, heap allocator.
func NewHeapAllocator[T spatial.Coord, V any]() *HeapAllocator[T, V] {
	return &HeapAllocator[T, V]{}
}

// Allocate returns the ID of a new node at the given level. It never
// returns NoNode.
func (a *HeapAllocator[T, V]) Allocate(level int) NodeID {
	n := &Node[T, V]{level: level}
	if k := len(a.free) - 1; k >= 0 {
		id := a.free[k]
		a.free = a.free[:k]
		a.nodes[id] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// Deallocate releases the node with the given ID. Panics if the node is
// not allocated.
func (a *HeapAllocator[T, V]) Deallocate(id NodeID) {
	if id < 0 || int(id) >= len(a.nodes) || a.nodes[id] == nil {
		fmtPanic("deallocate of unallocated node %d", id)
	}
	a.nodes[id] = nil
	a.free = append(a.free, id)
}

// Node returns the node with the given ID.
func (a *HeapAllocator[T, V]) Node(id NodeID) *Node[T, V] {
	return a.nodes[id]
}

// Overflowed always returns false.
func (a *HeapAllocator[T, V]) Overflowed() bool {
	return false
}

// Overflowable always returns false.
func (a *HeapAllocator[T, V]) Overflowable() bool {
	return false
}

// Outstanding returns the number of allocated nodes.
func (a *HeapAllocator[T, V]) Outstanding() int {
	return len(a.nodes) - len(a.free)
}

// PoolAllocator is a fixed-capacity Allocator whose nodes are allocated
// up front in a single block. Once every node in the pool is in use,
// Allocate returns NoNode, and Overflowed returns true until a later
// Allocate succeeds.
type PoolAllocator[T spatial.Coord, V any] struct {
	nodes      []Node[T, V]
	free       []NodeID
	live       *roaring.Bitmap
	overflowed bool
}

// NewPoolAllocator returns a pool allocator holding capacity nodes. Each
// node is pre-sized to hold maxEntries entries without growing. Panics
// if capacity is less than 1.
func NewPoolAllocator[T spatial.Coord, V any](capacity, maxEntries int) *PoolAllocator[T, V] {
	if capacity < 1 {
		textPanic("pool capacity must be at least 1")
	}
	a := &PoolAllocator[T, V]{
		nodes: make([]Node[T, V], capacity),
		free:  make([]NodeID, capacity),
		live:  roaring.New(),
	}
	// Entries are carved from one block; a node splits only after
	// holding maxEntries+1 entries.
	block := make([]entry[T, V], capacity*(maxEntries+1))
	for i := range a.nodes {
		a.nodes[i].entries = block[i*(maxEntries+1) : i*(maxEntries+1) : (i+1)*(maxEntries+1)]
		a.free[i] = NodeID(capacity - 1 - i)
	}
	return a
}

// Allocate returns the ID of an unused node at the given level, or
// NoNode if the pool is exhausted.
func (a *PoolAllocator[T, V]) Allocate(level int) NodeID {
	k := len(a.free) - 1
	if k < 0 {
		a.overflowed = true
		return NoNode
	}
	id := a.free[k]
	a.free = a.free[:k]
	a.overflowed = false
	a.live.Add(uint32(id))
	a.nodes[id].Reset(level)
	return id
}

// Deallocate returns the node with the given ID to the pool. Panics if
// the node is not allocated.
func (a *PoolAllocator[T, V]) Deallocate(id NodeID) {
	if id < 0 || !a.live.CheckedRemove(uint32(id)) {
		fmtPanic("deallocate of unallocated node %d", id)
	}
	a.nodes[id].Reset(0)
	a.free = append(a.free, id)
}

// Node returns the node with the given ID.
func (a *PoolAllocator[T, V]) Node(id NodeID) *Node[T, V] {
	return &a.nodes[id]
}

// Overflowed reports whether the most recent call to Allocate found the
// pool exhausted. Deallocating nodes does not reset it.
func (a *PoolAllocator[T, V]) Overflowed() bool {
	return a.overflowed
}

// Overflowable always returns true.
func (a *PoolAllocator[T, V]) Overflowable() bool {
	return true
}

// Outstanding returns the number of allocated nodes.
func (a *PoolAllocator[T, V]) Outstanding() int {
	return int(a.live.GetCardinality())
}

// Capacity returns the total number of nodes in the pool.
func (a *PoolAllocator[T, V]) Capacity() int {
	return len(a.nodes)
}
