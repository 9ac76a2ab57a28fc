// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"slices"

	"github.com/gogama/spatial"
)

// An orphan is an entry detached from an underfull node during
// condensation, waiting to be reinserted at its original level.
type orphan[T spatial.Coord, V any] struct {
	e     entry[T, V]
	level int
}

// Remove removes one occurrence of a value from the tree, returning true
// if the value was found. Values are matched using the tree's equality
// function.
//
// Nodes left underfull by the removal are dissolved and their entries
// reinserted. If the allocator can overflow, the nodes the reinsertions
// could need are reserved before the tree is modified, counting the
// dissolved nodes towards the reserve. If they cannot be reserved,
// Remove returns false and ErrOverflow and the tree is unchanged.
func (t *RTree[T, A, V]) Remove(v V) (bool, error) {
	b := t.bounds(v)
	path, ok := t.findLeaf(t.root, b, v, nil)
	if !ok {
		return false, nil
	}

	orphansAt, dissolved := t.countOrphans(path)
	var r nodeReserve
	if t.alloc.Overflowable() && dissolved > 0 {
		var err error
		if r, err = t.reserveReinserts(orphansAt, dissolved); err != nil {
			return false, err
		}
	}

	orphans := t.condense(path, &r)
	t.count--
	for _, o := range orphans {
		p := t.choosePath(o.e.box, o.level, path[:0])
		t.insertAt(p, o.e, &r)
	}
	t.collapseRoot()
	t.release(&r)
	return true, nil
}

// reserveReinserts reserves the nodes needed to reinsert the orphans of
// a removal, less the dissolved nodes which condense adds to the
// reserve. A cheap bound which assumes every reinsertion splits its
// whole path is tried first. If the allocator cannot meet it, the
// tighter bound from maxSplits is used.
func (t *RTree[T, A, V]) reserveReinserts(orphansAt []int, dissolved int) (nodeReserve, error) {
	var need, numOrphans int
	height := t.Levels() + 2
	for _, k := range orphansAt {
		for i := 0; i < k; i++ {
			need += height + numOrphans
			numOrphans++
		}
	}
	if r, ok := t.tryPreallocate(need - dissolved); ok {
		return r, nil
	}
	return t.preallocate(max(t.maxSplits(orphansAt)-dissolved, 0), "remove")
}

// maxSplits bounds the number of nodes created by reinserting
// orphansAt[l] entries at each level l of the tree as it is before the
// removal. A node holding n entries splits only after receiving
// maxEntries-n+1 entries, and each half of a split node holds at most
// maxEntries-minEntries+1 entries, so it needs at least minEntries more
// to split again. Spending each level's additions on the cheapest splits
// first gives the most splits possible at that level. Each split adds
// one entry to the level above, and each split at or above the root's
// level may add a new root. Each reinsertion grows the tree by at most
// one level.
func (t *RTree[T, A, V]) maxSplits(orphansAt []int) int {
	top := t.Levels()
	costs := make([][]int, top+1)
	t.splitCosts(t.root, costs)

	var need, carry, numOrphans int
	for _, k := range orphansAt {
		numOrphans += k
	}
	for level := 0; level <= top+numOrphans && (level <= top || carry > 0); level++ {
		add := carry
		if level < len(orphansAt) {
			add += orphansAt[level]
		}
		splits := add
		if level <= top {
			splits = cheapestSplits(costs[level], add, t.minEntries)
		}
		need += splits
		if level >= top {
			need += splits
		}
		carry = splits
	}
	return need
}

// splitCosts appends, for each node in the subtree rooted at id, the
// number of entries the node must receive before it splits.
func (t *RTree[T, A, V]) splitCosts(id NodeID, costs [][]int) {
	n := t.node(id)
	costs[n.level] = append(costs[n.level], t.maxEntries-n.Len()+1)
	if n.level > 0 {
		for i := range n.entries {
			t.splitCosts(n.entries[i].child, costs)
		}
	}
}

// cheapestSplits returns the largest number of splits that add entries
// can cause among nodes with the given costs, where a half of a split
// node costs halfCost.
func cheapestSplits(costs []int, add, halfCost int) int {
	slices.Sort(costs)
	var splits, halves, i int
	for {
		if i < len(costs) && (halves == 0 || costs[i] <= halfCost) {
			if costs[i] > add {
				return splits
			}
			add -= costs[i]
			i++
			halves += 2
		} else if halves > 0 && halfCost <= add {
			add -= halfCost
			halves++
		} else {
			return splits
		}
		splits++
	}
}

// findLeaf returns the path to the leaf entry holding v, descending only
// into subtrees whose bounding box contains b.
func (t *RTree[T, A, V]) findLeaf(id NodeID, b spatial.Box[T], v V, path []step) ([]step, bool) {
	n := t.node(id)
	for i := range n.entries {
		e := &n.entries[i]
		if n.level == 0 {
			if t.equal(e.value, v) {
				return append(path, step{id: id, index: i}), true
			}
		} else if e.box.Contains(b) {
			if p, ok := t.findLeaf(e.child, b, v, append(path, step{id: id, index: i})); ok {
				return p, true
			}
		}
	}
	return path, false
}

// countOrphans returns the number of entries at each level which
// condense will detach if the last entry on path is removed, and the
// number of nodes it will dissolve.
func (t *RTree[T, A, V]) countOrphans(path []step) (orphansAt []int, dissolved int) {
	for i := len(path) - 1; i > 0; i-- {
		n := t.node(path[i].id)
		remaining := n.Len() - 1
		if remaining >= t.minEntries {
			break
		}
		if orphansAt == nil {
			orphansAt = make([]int, t.Levels())
		}
		orphansAt[n.level] += remaining
		dissolved++
	}
	return
}

// condense removes the last entry on path, then walks back up the path
// dissolving underfull nodes and shrinking the bounding boxes of the
// survivors. Dissolved nodes are added to the reserve r. Returns the
// entries of the dissolved nodes.
func (t *RTree[T, A, V]) condense(path []step, r *nodeReserve) []orphan[T, V] {
	last := len(path) - 1
	t.node(path[last].id).removeAt(path[last].index)

	var orphans []orphan[T, V]
	var eliminated int
	for i := last; i > 0; i-- {
		id := path[i].id
		n := t.node(id)
		parent := t.node(path[i-1].id)
		if n.Len() < t.minEntries {
			for j := range n.entries {
				orphans = append(orphans, orphan[T, V]{e: n.entries[j], level: n.level})
			}
			parent.removeAt(path[i-1].index)
			*r = append(*r, id)
			eliminated++
		} else {
			parent.entries[path[i-1].index].box = n.cover()
		}
	}
	if eliminated > 0 {
		t.log.LogCondense(eliminated, len(orphans))
	}
	return orphans
}

// collapseRoot replaces an internal root having a single child with the
// child, repeatedly.
func (t *RTree[T, A, V]) collapseRoot() {
	for {
		root := t.node(t.root)
		if root.level == 0 || root.Len() != 1 {
			return
		}
		old, level := t.root, root.level
		t.root = root.entries[0].child
		t.alloc.Deallocate(old)
		t.log.LogGrow(level, level-1)
	}
}
