// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package quadtree provides a region quad-tree, generalized to any
// number of dimensions, over a fixed domain.
//
// Each node of a Tree covers a region of the domain. A node stores
// values directly until it holds more than a threshold number of them,
// then divides its region at its midpoint into 2^D child regions and
// pushes each value down into the child wholly containing it. A value
// whose bounding box crosses a midpoint cannot be pushed down, so it
// stays at the node.
//
// A Tree is not safe for concurrent use.
package quadtree
