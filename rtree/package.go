// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package rtree provides a dynamic, in-memory R-tree with any number of
// dimensions, following Guttman's original design with quadratic node
// splitting.
//
// An RTree stores values of any type V. It learns the bounding box of
// each value from a spatial.Indexable, and answers queries expressed as
// a spatial.Predicate. The nodes of the tree are obtained from an
// Allocator, which may be unbounded (HeapAllocator) or a fixed-size pool
// (PoolAllocator). When a fixed-size pool is exhausted, the operation
// which needed more nodes fails with ErrOverflow and leaves the tree
// unchanged.
//
// An RTree is not safe for concurrent use.
package rtree
