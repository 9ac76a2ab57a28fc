// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import "reflect"

// An Indexable maps a value stored in a spatial index to the lower and
// upper bounds of the value's bounding box.
//
// Both methods must return slices with one coordinate per dimension of
// the index, and must return the same bounds for the same value for as
// long as the value is stored in an index. The index copies the bounds,
// so the returned slices may be reused by the Indexable.
type Indexable[T Coord, V any] interface {
	LowerBound(v V) []T
	UpperBound(v V) []T
}

// BoundsOf returns a newly-allocated bounding box for the value v as
// reported by idx.
func BoundsOf[T Coord, V any](idx Indexable[T, V], v V) Box[T] {
	return Box[T]{
		Min: clone(idx.LowerBound(v)),
		Max: clone(idx.UpperBound(v)),
	}
}

// BoxIndexable is the Indexable for indices whose values are boxes.
type BoxIndexable[T Coord] struct{}

// LowerBound returns b.Min.
func (BoxIndexable[T]) LowerBound(b Box[T]) []T { return b.Min }

// UpperBound returns b.Max.
func (BoxIndexable[T]) UpperBound(b Box[T]) []T { return b.Max }

// IndexableFunc adapts a function returning a value's bounding box into
// an Indexable.
type IndexableFunc[T Coord, V any] func(v V) Box[T]

// LowerBound returns f(v).Min.
func (f IndexableFunc[T, V]) LowerBound(v V) []T { return f(v).Min }

// UpperBound returns f(v).Max.
func (f IndexableFunc[T, V]) UpperBound(v V) []T { return f(v).Max }

// SliceIndexable is the Indexable for indices whose values are uint32
// positions within a caller-owned slice of boxes. It lets an index store
// compact integer handles instead of the boxes themselves.
//
// Boxes must not be modified while their positions are stored in an
// index.
type SliceIndexable[T Coord] struct {
	Boxes []Box[T]
}

// LowerBound returns s.Boxes[i].Min.
func (s SliceIndexable[T]) LowerBound(i uint32) []T { return s.Boxes[i].Min }

// UpperBound returns s.Boxes[i].Max.
func (s SliceIndexable[T]) UpperBound(i uint32) []T { return s.Boxes[i].Max }

// DefaultEqual returns the function an index uses to match values of
// type V when no other equality function is configured. Boxes are
// matched with Box.Equal and other comparable types with the ==
// operator. Returns nil if V is not comparable.
//
// An interface type is reported comparable, so the returned function
// panics if the dynamic types it compares are not.
func DefaultEqual[T Coord, V any]() func(a, b V) bool {
	if _, ok := any(*new(V)).(Box[T]); ok {
		return func(a, b V) bool {
			return any(a).(Box[T]).Equal(any(b).(Box[T]))
		}
	}
	if !reflect.TypeFor[V]().Comparable() {
		return nil
	}
	return func(a, b V) bool {
		return any(a) == any(b)
	}
}
