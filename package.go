// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spatial provides the bounding box, indexable and predicate
// abstractions shared by the in-memory spatial indices in the rtree and
// quadtree sub-packages.
//
// A spatial index stores arbitrary values of type V. The index never
// inspects a value directly: it asks an Indexable for the value's
// axis-aligned bounding box, a Box, and answers queries by evaluating a
// Predicate against the boxes it holds. Boxes have any number of
// dimensions, fixed per index when it is constructed.
package spatial
