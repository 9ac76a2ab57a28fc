// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

// A Predicate selects values during a spatial index query.
//
// Visit is called with the bounding box of an entire subtree and
// reports whether the subtree may contain a matching value. Returning
// false prunes the subtree. Test is called with the bounding box of an
// individual stored value and reports whether the value matches.
//
// For a query to be correct, Visit must return true for every box which
// encloses a box for which Test returns true.
type Predicate[T Coord] interface {
	Visit(b Box[T]) bool
	Test(b Box[T]) bool
}

// A Coverer is an optional extension of Predicate. Covers reports
// whether every value in a subtree whose bounding box is b certainly
// matches, allowing a hierarchical query to report the subtree as a
// unit without descending into it.
type Coverer[T Coord] interface {
	Covers(b Box[T]) bool
}

type intersects[T Coord] struct {
	q Box[T]
}

// Intersects returns a predicate matching values whose bounding box
// overlaps q. Boxes that merely touch q overlap it.
func Intersects[T Coord](q Box[T]) Predicate[T] {
	return intersects[T]{q}
}

func (p intersects[T]) Visit(b Box[T]) bool  { return p.q.Overlaps(b) }
func (p intersects[T]) Test(b Box[T]) bool   { return p.q.Overlaps(b) }
func (p intersects[T]) Covers(b Box[T]) bool { return p.q.Contains(b) }

type contains[T Coord] struct {
	q Box[T]
}

// Contains returns a predicate matching values whose bounding box lies
// entirely within q.
func Contains[T Coord](q Box[T]) Predicate[T] {
	return contains[T]{q}
}

func (p contains[T]) Visit(b Box[T]) bool  { return p.q.Overlaps(b) }
func (p contains[T]) Test(b Box[T]) bool   { return p.q.Contains(b) }
func (p contains[T]) Covers(b Box[T]) bool { return p.q.Contains(b) }

type encloses[T Coord] struct {
	q Box[T]
}

// Encloses returns a predicate matching values whose bounding box
// entirely encloses q.
func Encloses[T Coord](q Box[T]) Predicate[T] {
	return encloses[T]{q}
}

func (p encloses[T]) Visit(b Box[T]) bool { return b.Contains(p.q) }
func (p encloses[T]) Test(b Box[T]) bool  { return b.Contains(p.q) }

// PredicateFunc adapts a function into a Predicate which uses the
// function for both Visit and Test.
type PredicateFunc[T Coord] func(b Box[T]) bool

// Visit returns f(b).
func (f PredicateFunc[T]) Visit(b Box[T]) bool { return f(b) }

// Test returns f(b).
func (f PredicateFunc[T]) Test(b Box[T]) bool { return f(b) }

type all[T Coord] struct{}

// All returns a predicate matching every value.
func All[T Coord]() Predicate[T] {
	return all[T]{}
}

func (all[T]) Visit(Box[T]) bool  { return true }
func (all[T]) Test(Box[T]) bool   { return true }
func (all[T]) Covers(Box[T]) bool { return true }
