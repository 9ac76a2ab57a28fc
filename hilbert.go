// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"math"
	"sort"
)

const (
	// HilbertOrder is the order of the Hilbert curve used in
	// HilbertSort.
	HilbertOrder = 16
	// hilbertMax is the maximum input X- or Y-coordinate hilbertFromXY.
	//
	// In a Hilbert curve of order N, X- and Y- coordinates range from
	// zero to 2^N-1, so in a Hilbert curve of order 1, the X- and Y-
	// coordinates range from 0 to 1, and so on.
	hilbertMax = (1 << HilbertOrder) - 1
)

// hilbertSortable is an implementation of sort.Interface which sorts
// values by a precomputed Hilbert index, so that each value's bounding
// box is fetched from the Indexable only once.
type hilbertSortable[V any] struct {
	values []V
	keys   []uint32
}

func (hs *hilbertSortable[V]) Len() int {
	return len(hs.values)
}

func (hs *hilbertSortable[V]) Less(i, j int) bool {
	return hs.keys[i] < hs.keys[j]
}

func (hs *hilbertSortable[V]) Swap(i, j int) {
	hs.values[i], hs.values[j] = hs.values[j], hs.values[i]
	hs.keys[i], hs.keys[j] = hs.keys[j], hs.keys[i]
}

// HilbertSort sorts a list of values, whose combined bounding box is
// given by extent, according to the position of the centre of each
// value's bounding box on a Hilbert curve of order HilbertOrder.
//
// The curve is laid over the first two dimensions of extent. For
// one-dimensional values the second coordinate is taken to be zero, and
// dimensions beyond the second are ignored. Inserting values into a
// dynamic index in Hilbert order tends to produce nodes with less
// overlap than inserting them in arbitrary order.
//
// The sort algorithm is not guaranteed to be stable, so the relative
// position of two values with the same index on the Hilbert curve may
// change as a result of the sort.
func HilbertSort[T Coord, V any](values []V, idx Indexable[T, V], extent Box[T]) {
	if extent.IsEmpty() {
		textPanic("empty extent")
	}
	ex, ew := extentAxis(extent, 0)
	ey, eh := extentAxis(extent, 1)
	hs := hilbertSortable[V]{
		values: values,
		keys:   make([]uint32, len(values)),
	}
	for i := range values {
		b := BoundsOf(idx, values[i])
		hs.keys[i] = hilbertFromBox(b, ex, ey, ew, eh)
	}
	sort.Sort(&hs)
}

// extentAxis returns the origin and width of extent along an axis, or
// zeroes if the extent does not have that axis.
func extentAxis[T Coord](extent Box[T], axis int) (origin, width float64) {
	if axis < extent.Dims() {
		origin = float64(extent.Min[axis])
		width = float64(extent.Max[axis]) - origin
	}
	return
}

// hilbertFromBox calculates the Hilbert curve index of the centre of a
// box in the context of a set of boxes bounded by the rectangle
// (ex, ey, ex+ew, ey+eh).
//
// NOTES:
//   - 32-bit integers are used because the full 64 bits are not
//     required and the smaller data size may theoretically result in
//     memory/bandwidth/cache benefits at the CPU level, maybe.
func hilbertFromBox[T Coord](b Box[T], ex, ey, ew, eh float64) uint32 {
	var hx uint32 // Hilbert X-coordinate between 0 and hilbertMax
	if ew != 0.0 {
		rx := (b.Center(0) - ex) / ew
		hx = hilbertCoord(rx)
	}
	var hy uint32 // Hilbert Y-coordinate between 0 and hilbertMax
	if eh != 0.0 && b.Dims() > 1 {
		ry := (b.Center(1) - ey) / eh
		hy = hilbertCoord(ry)
	}
	return hilbertFromXY(hx, hy)
}

// hilbertCoord scales a relative position within the extent onto the
// Hilbert curve grid, clamping positions outside the extent.
func hilbertCoord(r float64) uint32 {
	if r <= 0 {
		return 0
	} else if r >= 1 {
		return hilbertMax
	}
	return uint32(math.Floor(hilbertMax * r))
}

// hilbertFromXY calculates the Hilbert curve index of a given
// two-dimensional coordinate.
//
// NOTES:
//   - Based on https://github.com/rawrunprotected/hilbert_curves, which
//     is in the public domain.
func hilbertFromXY(x, y uint32) uint32 {
	a := x ^ y
	b := 0xFFFF ^ a
	c := 0xFFFF ^ (x | y)
	d := x & (y ^ 0xFFFF)

	A := a | (b >> 1)
	B := (a >> 1) ^ a
	C := ((c >> 1) ^ (b & (d >> 1))) ^ c
	D := ((a & (c >> 1)) ^ (d >> 1)) ^ d

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 2)) ^ (b & (b >> 2))
	B = (a & (b >> 2)) ^ (b & ((a ^ b) >> 2))
	C ^= (a & (c >> 2)) ^ (b & (d >> 2))
	D ^= (b & (c >> 2)) ^ ((a ^ b) & (d >> 2))

	a = A
	b = B
	c = C
	d = D
	A = (a & (a >> 4)) ^ (b & (b >> 4))
	B = (a & (b >> 4)) ^ (b & ((a ^ b) >> 4))
	C ^= (a & (c >> 4)) ^ (b & (d >> 4))
	D ^= (b & (c >> 4)) ^ ((a ^ b) & (d >> 4))

	a = A
	b = B
	c = C
	d = D
	C ^= (a & (c >> 8)) ^ (b & (d >> 8))
	D ^= (b & (c >> 8)) ^ ((a ^ b) & (d >> 8))

	a = C ^ (C >> 1)
	b = D ^ (D >> 1)

	i0 := x ^ y
	i1 := b | (0xFFFF ^ (i0 | a))

	i0 = (i0 | (i0 << 8)) & 0x00FF00FF
	i0 = (i0 | (i0 << 4)) & 0x0F0F0F0F
	i0 = (i0 | (i0 << 2)) & 0x33333333
	i0 = (i0 | (i0 << 1)) & 0x55555555

	i1 = (i1 | (i1 << 8)) & 0x00FF00FF
	i1 = (i1 | (i1 << 4)) & 0x0F0F0F0F
	i1 = (i1 | (i1 << 2)) & 0x33333333
	i1 = (i1 | (i1 << 1)) & 0x55555555

	index := (i1 << 1) | i0

	return index
}
