// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package quadtree

import "github.com/gogama/spatial"

const (
	// DefaultThreshold is the number of values a node holds before it
	// is subdivided, used when WithThreshold is not given.
	DefaultThreshold = 16
	// DefaultMaxDepth is the depth below which nodes are never
	// subdivided, used when WithMaxDepth is not given.
	DefaultMaxDepth = 32
	// MaxDims is the largest number of dimensions a Tree may have. A
	// node of a D-dimensional tree has 2^D children.
	MaxDims = 16
)

type options struct {
	threshold int
	maxDepth  int
	logger    *spatial.Logger
	equal     any
}

// Option configures a Tree at construction time.
type Option func(*options)

// WithThreshold sets the number of values a node may hold before it is
// subdivided. Must be at least 1.
func WithThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithMaxDepth sets the maximum depth of the tree. Nodes at the maximum
// depth are never subdivided and hold any number of values. Must not be
// negative.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithLogger configures the logger which receives structural events.
// Defaults to a no-op logger.
func WithLogger(l *spatial.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEqual sets the function used by Remove to identify the value to
// remove. Defaults to spatial.DefaultEqual, and is required if V is not
// comparable.
func WithEqual[V any](eq func(a, b V) bool) Option {
	return func(o *options) {
		o.equal = eq
	}
}
