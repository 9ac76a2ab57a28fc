// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"iter"
	"slices"

	"github.com/gogama/spatial"
)

// A step is one node on a descent path from the root, together with the
// index of the entry followed out of the node. The index of the last
// step on a path is the index of the entry of interest, if any.
type step struct {
	id    NodeID
	index int
}

// A nodeReserve holds nodes allocated ahead of a structural change so
// that the change cannot fail halfway through.
type nodeReserve []NodeID

// Insert adds a value to the tree.
//
// Returns ErrOverflow, leaving the tree unchanged, if the allocator
// cannot supply the nodes needed to hold the value. Returns
// ErrOutOfDomain if the tree has a domain and the value's bounding box
// does not lie within it. Panics if the value's bounding box does not
// have the tree's dimensionality.
func (t *RTree[T, A, V]) Insert(v V) error {
	_, err := t.insert(v, nil)
	return err
}

// InsertIf adds a value to the tree only if the predicate's Test method
// accepts the bounding box the value's leaf node would have after the
// insert, that is the union of the leaf's current bounding box and the
// value's bounding box. Returns true if the value was inserted.
//
// Since the box tested always contains the value's own bounding box, a
// predicate accepting only boxes disjoint from the value's box rejects
// every value. To insert a value only if no stored value overlaps it,
// call Insert after Any(spatial.Intersects(b)) returns false.
//
// A rejected value is not an error: InsertIf returns false and a nil
// error, and the tree is unchanged. Otherwise errors are as for Insert.
func (t *RTree[T, A, V]) InsertIf(v V, p spatial.Predicate[T]) (bool, error) {
	if p == nil {
		textPanic("nil predicate")
	}
	return t.insert(v, p)
}

// InsertAll adds values to the tree in order, stopping at the first
// error. Returns the number of values inserted.
func (t *RTree[T, A, V]) InsertAll(vs ...V) (int, error) {
	return t.InsertSeq(slices.Values(vs))
}

// InsertSeq adds the values of a sequence to the tree, stopping at the
// first error. Returns the number of values inserted.
func (t *RTree[T, A, V]) InsertSeq(seq iter.Seq[V]) (n int, err error) {
	for v := range seq {
		if err = t.Insert(v); err != nil {
			return
		}
		n++
	}
	return
}

func (t *RTree[T, A, V]) insert(v V, p spatial.Predicate[T]) (bool, error) {
	b := t.bounds(v)
	if !t.domain.IsEmpty() && !t.domain.Contains(b) {
		return false, ErrOutOfDomain
	}
	path := t.choosePath(b, 0, nil)
	if p != nil {
		prospect := t.node(path[len(path)-1].id).cover()
		prospect.ExtendBox(b)
		if !p.Test(prospect) {
			return false, nil
		}
	}
	err := t.insertEntry(path, entry[T, V]{box: b, child: NoNode, value: v}, "insert")
	if err != nil {
		return false, err
	}
	t.count++
	return true, nil
}

// choosePath descends from the root to the node at the given level best
// suited to receive an entry with box b, appending each node visited to
// path.
func (t *RTree[T, A, V]) choosePath(b spatial.Box[T], level int, path []step) []step {
	id := t.root
	for {
		n := t.node(id)
		if n.level <= level {
			return append(path, step{id: id, index: -1})
		}
		i := t.chooseSubtree(n, b)
		path = append(path, step{id: id, index: i})
		id = n.entries[i].child
	}
}

// chooseSubtree returns the index of the entry of internal node n
// needing the least enlargement to include b. Ties are resolved in
// favour of the entry with the smaller volume, then in favour of the
// entry whose child holds fewer entries.
func (t *RTree[T, A, V]) chooseSubtree(n *Node[T, V], b spatial.Box[T]) int {
	best, bestLen := -1, -1
	var bestEnl, bestVol A
	for i := range n.entries {
		e := &n.entries[i]
		vol := spatial.Volume[A](e.box, t.mode)
		enl := spatial.UnionVolume[A](e.box, b, t.mode) - vol
		if best >= 0 {
			if enl > bestEnl || enl == bestEnl && vol > bestVol {
				continue
			} else if enl == bestEnl && vol == bestVol {
				if bestLen < 0 {
					bestLen = t.node(n.entries[best].child).Len()
				}
				l := t.node(e.child).Len()
				if l >= bestLen {
					continue
				}
				bestLen = l
			} else {
				bestLen = -1
			}
		}
		best, bestEnl, bestVol = i, enl, vol
	}
	return best
}

// splitsNeeded returns the number of new nodes required to add one entry
// to the last node on path: one for each full node, counting upwards
// from the last node, plus one for a new root if every node on the path
// is full.
func (t *RTree[T, A, V]) splitsNeeded(path []step) int {
	var k int
	for i := len(path) - 1; i >= 0; i-- {
		if t.node(path[i].id).Len() < t.maxEntries {
			return k
		}
		k++
	}
	return k + 1
}

// insertEntry adds e to the last node on path. If the allocator can
// overflow, every node the insert could need is allocated before the
// tree is modified.
func (t *RTree[T, A, V]) insertEntry(path []step, e entry[T, V], op string) error {
	var r nodeReserve
	if t.alloc.Overflowable() {
		var err error
		if r, err = t.preallocate(t.splitsNeeded(path), op); err != nil {
			return err
		}
		defer t.release(&r)
	}
	t.insertAt(path, e, &r)
	return nil
}

// insertAt adds e to the last node on path, splitting overflowing nodes
// and adjusting bounding boxes on the way back up to the root.
func (t *RTree[T, A, V]) insertAt(path []step, e entry[T, V], r *nodeReserve) {
	last := len(path) - 1
	t.node(path[last].id).append(e)
	split := NoNode
	for i := last; i >= 0; i-- {
		n := t.node(path[i].id)
		if i < last {
			parent := &n.entries[path[i].index]
			if split != NoNode {
				parent.box = t.node(path[i+1].id).cover()
				n.append(entry[T, V]{box: t.node(split).cover(), child: split})
				split = NoNode
			} else {
				parent.box.ExtendBox(e.box)
			}
		}
		if n.Len() > t.maxEntries {
			split = t.split(path[i].id, r)
		}
	}
	if split != NoNode {
		t.growRoot(split, r)
	}
}

// growRoot replaces the root with a new root whose two children are the
// old root and its new sibling.
func (t *RTree[T, A, V]) growRoot(sibling NodeID, r *nodeReserve) {
	old := t.root
	level := t.node(old).level + 1
	id := t.newNode(level, r)
	n := t.node(id)
	n.append(entry[T, V]{box: t.node(old).cover(), child: old})
	n.append(entry[T, V]{box: t.node(sibling).cover(), child: sibling})
	t.root = id
	t.log.LogGrow(level-1, level)
}

// preallocate allocates n nodes. If the allocator overflows, the nodes
// already allocated are released and ErrOverflow is returned. The
// allocator's Overflowed method then reports true until a later
// allocation succeeds.
func (t *RTree[T, A, V]) preallocate(n int, op string) (nodeReserve, error) {
	r, ok := t.tryPreallocate(n)
	if !ok {
		t.log.LogOverflow(op, n)
		return nil, ErrOverflow
	}
	return r, nil
}

// tryPreallocate allocates n nodes, returning false and allocating
// nothing if the allocator overflows.
func (t *RTree[T, A, V]) tryPreallocate(n int) (nodeReserve, bool) {
	if n <= 0 {
		return nil, true
	}
	r := make(nodeReserve, 0, n)
	for i := 0; i < n; i++ {
		id := t.alloc.Allocate(0)
		if id == NoNode {
			t.release(&r)
			return nil, false
		}
		r = append(r, id)
	}
	return r, true
}

// release returns unused reserved nodes to the allocator.
func (t *RTree[T, A, V]) release(r *nodeReserve) {
	for _, id := range *r {
		t.alloc.Deallocate(id)
	}
	*r = (*r)[:0]
}

// newNode takes a node from the reserve, or allocates one if the
// reserve is empty.
func (t *RTree[T, A, V]) newNode(level int, r *nodeReserve) NodeID {
	if k := len(*r) - 1; k >= 0 {
		id := (*r)[k]
		*r = (*r)[:k]
		t.node(id).Reset(level)
		return id
	}
	id := t.alloc.Allocate(level)
	if id == NoNode {
		textPanic("allocator exhausted outside reserved nodes")
	}
	return id
}
