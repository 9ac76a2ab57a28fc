// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"strconv"
	"strings"
	"unsafe"
)

// Coord is a constraint that permits any integer or floating-point type
// to be used as a bounding box coordinate.
type Coord interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Box is an axis-aligned bounding box with any number of dimensions.
// Min[i] and Max[i] are the lower and upper bounds of the box on axis i.
//
// The zero value is the empty box. The empty box has no dimensions, is
// the identity element for Extend, ExtendBox and Union, and neither
// overlaps nor contains any other box.
//
// Boxes returned by the indices in this module share memory with the
// index and must be treated as read-only. Use Clone to obtain a copy
// that may be modified.
type Box[T Coord] struct {
	Min []T
	Max []T
}

// NewBox returns a box with copies of the given lower and upper bounds.
// Panics if min and max differ in length or if min[i] > max[i] on any
// axis.
func NewBox[T Coord](min, max []T) Box[T] {
	b := Box[T]{Min: clone(min), Max: clone(max)}
	if err := b.Validate(); err != nil {
		panic(err.Error())
	}
	return b
}

// PointBox returns a degenerate box whose lower and upper bounds are
// both equal to p.
func PointBox[T Coord](p ...T) Box[T] {
	return Box[T]{Min: clone(p), Max: clone(p)}
}

// Validate returns an error if the box is not well formed: its bound
// slices have different lengths, or its lower bound exceeds its upper
// bound on some axis. The empty box is well formed.
func (b Box[T]) Validate() error {
	if len(b.Min) != len(b.Max) {
		return fmtErr("box has %d lower bounds but %d upper bounds", len(b.Min), len(b.Max))
	}
	for i := range b.Min {
		if b.Min[i] > b.Max[i] {
			return fmtErr("box lower bound %v exceeds upper bound %v on axis %d", b.Min[i], b.Max[i], i)
		}
	}
	return nil
}

// Dims returns the number of dimensions of the box. The empty box has
// zero dimensions.
func (b Box[T]) Dims() int {
	return len(b.Min)
}

// IsEmpty reports whether b is the empty box.
func (b Box[T]) IsEmpty() bool {
	return len(b.Min) == 0
}

// Clone returns a deep copy of the box.
func (b Box[T]) Clone() Box[T] {
	if b.IsEmpty() {
		return Box[T]{}
	}
	return Box[T]{Min: clone(b.Min), Max: clone(b.Max)}
}

// Equal reports whether two boxes have identical bounds.
func (b Box[T]) Equal(c Box[T]) bool {
	if len(b.Min) != len(c.Min) {
		return false
	}
	for i := range b.Min {
		if b.Min[i] != c.Min[i] || b.Max[i] != c.Max[i] {
			return false
		}
	}
	return true
}

// Extend grows the box, in place, to include the point p. Extending the
// empty box makes it the degenerate box at p.
func (b *Box[T]) Extend(p ...T) {
	if b.IsEmpty() {
		*b = PointBox(p...)
		return
	}
	b.checkDims(len(p))
	for i := range p {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// ExtendBox grows the box, in place, to include the box c.
func (b *Box[T]) ExtendBox(c Box[T]) {
	if c.IsEmpty() {
		return
	} else if b.IsEmpty() {
		*b = c.Clone()
		return
	}
	b.checkDims(c.Dims())
	for i := range c.Min {
		if c.Min[i] < b.Min[i] {
			b.Min[i] = c.Min[i]
		}
		if c.Max[i] > b.Max[i] {
			b.Max[i] = c.Max[i]
		}
	}
}

// Union returns a new box that is the smallest box enclosing both b and
// c. Neither input is modified.
func (b Box[T]) Union(c Box[T]) Box[T] {
	u := b.Clone()
	u.ExtendBox(c)
	return u
}

// Overlaps reports whether b and c share at least one point. Boxes
// which only touch on an edge or corner overlap.
func (b Box[T]) Overlaps(c Box[T]) bool {
	if b.IsEmpty() || c.IsEmpty() {
		return false
	}
	b.checkDims(c.Dims())
	for i := range b.Min {
		if b.Min[i] > c.Max[i] || b.Max[i] < c.Min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether c lies entirely within b. Every non-empty
// box contains itself.
func (b Box[T]) Contains(c Box[T]) bool {
	if b.IsEmpty() || c.IsEmpty() {
		return false
	}
	b.checkDims(c.Dims())
	for i := range b.Min {
		if b.Min[i] > c.Min[i] || b.Max[i] < c.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the midpoint of the box on the given axis.
func (b Box[T]) Center(axis int) float64 {
	return (float64(b.Min[axis]) + float64(b.Max[axis])) / 2
}

// String returns a string representation of the box in the form
// [min0,min1,...,max0,max1,...].
func (b Box[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range b.Min {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatCoord(v))
	}
	for _, v := range b.Max {
		sb.WriteByte(',')
		sb.WriteString(formatCoord(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (b Box[T]) checkDims(n int) {
	if len(b.Min) != n {
		fmtPanic("dimension mismatch: box has %d dimensions, operand has %d", len(b.Min), n)
	}
}

func formatCoord[T Coord](v T) string {
	if isFloat[T]() {
		return strconv.FormatFloat(float64(v), 'g', -1, int(unsafe.Sizeof(v))*8)
	} else if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// isFloat reports whether T is a floating-point type.
func isFloat[T Coord]() bool {
	h := 0.5
	return T(h) != 0
}

func clone[T Coord](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}
