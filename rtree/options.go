// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/gogama/spatial"

const (
	// DefaultMaxEntries is the maximum number of entries per node used
	// when WithMaxEntries is not given.
	DefaultMaxEntries = 8
)

type options struct {
	maxEntries int
	minEntries int
	volumeMode spatial.VolumeMode
	logger     *spatial.Logger
	// The following hold values whose types depend on the tree's type
	// parameters. New checks them against the tree being constructed.
	allocator any
	equal     any
	domain    any
}

// Option configures an RTree at construction time.
type Option func(*options)

// WithMaxEntries sets the maximum number of entries a node may hold
// before it is split. Must be at least 2.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// WithMinEntries sets the minimum number of entries in every node other
// than the root. Must be between 1 and half the maximum number of
// entries. Defaults to half the maximum number of entries.
func WithMinEntries(n int) Option {
	return func(o *options) {
		o.minEntries = n
	}
}

// WithVolumeMode sets the metric used to measure node volumes when
// choosing subtrees and splitting nodes. Defaults to
// spatial.Rectangular.
func WithVolumeMode(m spatial.VolumeMode) Option {
	return func(o *options) {
		o.volumeMode = m
	}
}

// WithLogger configures the logger which receives structural events.
// Defaults to a no-op logger.
func WithLogger(l *spatial.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithAllocator sets the Allocator which supplies the tree's nodes.
// Defaults to a new HeapAllocator. The allocator's type parameters must
// match the tree's coordinate and value types.
func WithAllocator[T spatial.Coord, V any](a Allocator[T, V]) Option {
	return func(o *options) {
		o.allocator = a
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

// WithDomain restricts the tree to values whose bounding box lies
// within domain. Inserting a value outside the domain fails with
// ErrOutOfDomain.
func WithDomain[T spatial.Coord](domain spatial.Box[T]) Option {
	return func(o *options) {
		o.domain = domain.Clone()
	}
}
