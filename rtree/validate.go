// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

// Validate checks the structural invariants of the tree, returning an
// error describing the first violation found:
//   - every node other than the root holds between MinEntries and
//     MaxEntries entries, and an internal root holds at least two;
//   - every entry box is well formed and has the tree's dimensionality;
//   - the box of every internal entry is exactly the bounding box of
//     its child node;
//   - every child is one level below its parent, so all leaves are at
//     the same depth;
//   - the number of values in the leaves equals Count.
//
// Validate is intended for tests and debugging. It visits every node.
func (t *RTree[T, A, V]) Validate() error {
	n, err := t.validate(t.root, true)
	if err != nil {
		return err
	} else if n != t.count {
		return fmtErr("leaves hold %d values but count is %d", n, t.count)
	}
	return nil
}

func (t *RTree[T, A, V]) validate(id NodeID, isRoot bool) (int, error) {
	n := t.node(id)
	if n.Len() > t.maxEntries {
		return 0, fmtErr("node %d at level %d has %d entries, max is %d", id, n.level, n.Len(), t.maxEntries)
	} else if !isRoot && n.Len() < t.minEntries {
		return 0, fmtErr("node %d at level %d has %d entries, min is %d", id, n.level, n.Len(), t.minEntries)
	} else if isRoot && n.level > 0 && n.Len() < 2 {
		return 0, fmtErr("internal root %d has %d entries", id, n.Len())
	}
	var count int
	for i := range n.entries {
		e := &n.entries[i]
		if err := e.box.Validate(); err != nil {
			return 0, wrapErr("node %d entry %d", err, id, i)
		} else if e.box.Dims() != t.dims {
			return 0, fmtErr("node %d entry %d has %d dimensions, tree has %d", id, i, e.box.Dims(), t.dims)
		}
		if n.level == 0 {
			count++
			continue
		}
		c := t.node(e.child)
		if c.level != n.level-1 {
			return 0, fmtErr("node %d at level %d has child %d at level %d", id, n.level, e.child, c.level)
		} else if cover := c.cover(); !cover.Equal(e.box) {
			return 0, fmtErr("node %d entry %d has box %s but child %d covers %s", id, i, e.box, e.child, cover)
		}
		k, err := t.validate(e.child, false)
		if err != nil {
			return 0, err
		}
		count += k
	}
	return count, nil
}
