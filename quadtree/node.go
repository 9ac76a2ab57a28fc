// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import "github.com/gogama/spatial"

// An item is a value stored at a node, together with a copy of its
// bounding box.
type item[T spatial.Coord, V any] struct {
	box   spatial.Box[T]
	value V
}

type node[T spatial.Coord, V any] struct {
	domain     spatial.Box[T]
	mid        []T
	items      []item[T, V]
	children   []*node[T, V]
	depth      int
	splittable bool
}

func newNode[T spatial.Coord, V any](domain spatial.Box[T], depth, maxDepth int) *node[T, V] {
	n := &node[T, V]{
		domain: domain,
		mid:    make([]T, domain.Dims()),
		depth:  depth,
	}
	n.splittable = depth < maxDepth
	for i := range n.mid {
		n.mid[i] = midpoint(domain.Min[i], domain.Max[i])
		if n.mid[i] <= domain.Min[i] || n.mid[i] >= domain.Max[i] {
			n.splittable = false
		}
	}
	return n
}

// midpoint returns a coordinate halfway between lo and hi, rounded
// toward lo for integers.
func midpoint[T spatial.Coord](lo, hi T) T {
	if d := hi - lo; d > 0 {
		if m := lo + d/2; m >= lo && m <= hi {
			return m
		}
	}
	// The extent overflows T.
	return lo/2 + hi/2
}

// quadrant returns the index of the child whose region wholly contains
// b, or false if b crosses the midpoint on any axis. Bit i of the index
// is set when b lies in the upper half of axis i.
//
// Child regions are closed, so neighbouring regions share the midpoint.
// A box touching the midpoint from below belongs to the lower half.
func (n *node[T, V]) quadrant(b spatial.Box[T]) (int, bool) {
	var q int
	for i, m := range n.mid {
		switch {
		case b.Max[i] <= m:
		case b.Min[i] >= m:
			q |= 1 << i
		default:
			return 0, false
		}
	}
	return q, true
}

// region returns the region of the child with index q.
func (n *node[T, V]) region(q int) spatial.Box[T] {
	r := n.domain.Clone()
	for i, m := range n.mid {
		if q&(1<<i) == 0 {
			r.Max[i] = m
		} else {
			r.Min[i] = m
		}
	}
	return r
}

// subdivide creates the node's children and moves every item which does
// not cross a midpoint down into the child containing it. It returns the
// number of items which stayed and the number which moved.
func (n *node[T, V]) subdivide(maxDepth int) (stayed, moved int) {
	n.children = make([]*node[T, V], 1<<len(n.mid))
	for q := range n.children {
		n.children[q] = newNode[T, V](n.region(q), n.depth+1, maxDepth)
	}
	items := n.items
	n.items = nil
	for _, it := range items {
		if q, ok := n.quadrant(it.box); ok {
			n.children[q].items = append(n.children[q].items, it)
			moved++
		} else {
			n.items = append(n.items, it)
			stayed++
		}
	}
	return stayed, moved
}
