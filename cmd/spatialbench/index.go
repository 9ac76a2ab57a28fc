// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/dhconnelly/rtreego"
	"github.com/gogama/spatial"
	"github.com/gogama/spatial/internal/config"
	"github.com/gogama/spatial/quadtree"
	"github.com/gogama/spatial/rtree"
)

type queryMode int

const (
	intersects queryMode = iota
	contains
)

func (m queryMode) String() string {
	if m == contains {
		return "contains"
	}
	return "intersects"
}

func (m queryMode) predicate(q spatial.Box[float64]) spatial.Predicate[float64] {
	if m == contains {
		return spatial.Contains(q)
	}
	return spatial.Intersects(q)
}

// An index stores the positions of boxes within a shared slice.
type index interface {
	insert(id uint32) error
	remove(id uint32) (bool, error)
	search(q spatial.Box[float64], mode queryMode) *roaring.Bitmap
	stats() []any
}

func newIndex(c config.Config, boxes []spatial.Box[float64], extent spatial.Box[float64], log *spatial.Logger) (index, error) {
	idx := spatial.SliceIndexable[float64]{Boxes: boxes}
	switch c.Tree {
	case config.TreeRTree:
		opts := []rtree.Option{
			rtree.WithMaxEntries(c.MaxEntries),
			rtree.WithMinEntries(c.MinEntries),
			rtree.WithLogger(log),
		}
		if c.Spherical {
			opts = append(opts, rtree.WithVolumeMode(spatial.Spherical))
		}
		if c.PoolSize > 0 {
			pool := rtree.NewPoolAllocator[float64, uint32](c.PoolSize, c.MaxEntries)
			opts = append(opts, rtree.WithAllocator[float64, uint32](pool))
		}
		return &rtreeIndex{rtree.New[float64, float64, uint32](2, idx, opts...)}, nil
	case config.TreeQuadTree:
		return &quadtreeIndex{quadtree.New[float64, uint32](quadtreeDomain(extent), idx,
			quadtree.WithThreshold(c.Threshold),
			quadtree.WithLogger(log),
		)}, nil
	case config.TreeRTreeGo:
		minEntries := c.MinEntries
		if minEntries == 0 {
			minEntries = c.MaxEntries / 2
		}
		return &rtreegoIndex{
			tree:  rtreego.NewTree(2, minEntries, c.MaxEntries),
			boxes: boxes,
			items: make(map[uint32]*rtreegoItem),
		}, nil
	default:
		return nil, fmt.Errorf("unknown tree %q", c.Tree)
	}
}

// quadtreeDomain widens the extent on any axis where it is degenerate,
// since a quad-tree cannot divide a region with zero width.
func quadtreeDomain(extent spatial.Box[float64]) spatial.Box[float64] {
	d := extent.Clone()
	for i := range d.Min {
		if d.Min[i] == d.Max[i] {
			d.Min[i]--
			d.Max[i]++
		}
	}
	return d
}

type rtreeIndex struct {
	tree *rtree.RTree[float64, float64, uint32]
}

func (x *rtreeIndex) insert(id uint32) error {
	return x.tree.Insert(id)
}

func (x *rtreeIndex) remove(id uint32) (bool, error) {
	return x.tree.Remove(id)
}

func (x *rtreeIndex) search(q spatial.Box[float64], mode queryMode) *roaring.Bitmap {
	return spatial.Bitmap(x.tree.Matches(mode.predicate(q)))
}

func (x *rtreeIndex) stats() []any {
	return []any{"count", x.tree.Count(), "levels", x.tree.Levels(), "nodes", x.tree.Allocator().Outstanding()}
}

type quadtreeIndex struct {
	tree *quadtree.Tree[float64, uint32]
}

func (x *quadtreeIndex) insert(id uint32) error {
	x.tree.Insert(id)
	return nil
}

func (x *quadtreeIndex) remove(id uint32) (bool, error) {
	return x.tree.Remove(id), nil
}

func (x *quadtreeIndex) search(q spatial.Box[float64], mode queryMode) *roaring.Bitmap {
	return spatial.Bitmap(x.tree.Matches(mode.predicate(q)))
}

func (x *quadtreeIndex) stats() []any {
	return []any{"count", x.tree.Count(), "depth", x.tree.Depth()}
}

// rtreegoIndex is the baseline against which the other indices are
// compared. rtreego cannot store degenerate boxes, so every box is given
// a small minimum extent. Items are stored by pointer because rtreego
// identifies the item to delete with ==.
type rtreegoIndex struct {
	tree  *rtreego.Rtree
	boxes []spatial.Box[float64]
	items map[uint32]*rtreegoItem
}

const rtreegoMinExtent = 1e-9

type rtreegoItem struct {
	id   uint32
	rect rtreego.Rect
}

func (it *rtreegoItem) Bounds() rtreego.Rect {
	return it.rect
}

func (x *rtreegoIndex) rect(b spatial.Box[float64]) (rtreego.Rect, error) {
	lengths := make([]float64, b.Dims())
	for i := range lengths {
		lengths[i] = math.Max(b.Max[i]-b.Min[i], rtreegoMinExtent)
	}
	return rtreego.NewRect(rtreego.Point(b.Min), lengths)
}

func (x *rtreegoIndex) insert(id uint32) error {
	r, err := x.rect(x.boxes[id])
	if err != nil {
		return err
	}
	it := &rtreegoItem{id: id, rect: r}
	x.items[id] = it
	x.tree.Insert(it)
	return nil
}

func (x *rtreegoIndex) remove(id uint32) (bool, error) {
	it, ok := x.items[id]
	if !ok {
		return false, nil
	}
	delete(x.items, id)
	return x.tree.Delete(it), nil
}

func (x *rtreegoIndex) search(q spatial.Box[float64], mode queryMode) *roaring.Bitmap {
	r, err := x.rect(q)
	if err != nil {
		return roaring.New()
	}
	p := mode.predicate(q)
	bm := roaring.New()
	for _, obj := range x.tree.SearchIntersect(r) {
		it := obj.(*rtreegoItem)
		if p.Test(x.boxes[it.id]) {
			bm.Add(it.id)
		}
	}
	return bm
}

func (x *rtreegoIndex) stats() []any {
	return []any{"count", x.tree.Size(), "depth", x.tree.Depth()}
}
