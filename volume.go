// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import "math"

// Area is a constraint that permits the floating-point types in which
// box volumes are calculated. Volumes are never calculated in the
// coordinate type, so that boxes with integer coordinates cannot
// overflow.
type Area interface {
	~float32 | ~float64
}

// VolumeMode selects the metric used to measure the volume of a box.
// The volume of a box is used by the R-tree as the cost function when
// choosing subtrees and splitting nodes. It has no effect on query
// results.
type VolumeMode int

const (
	// Rectangular measures a box as the product of its extents.
	Rectangular VolumeMode = iota
	// Spherical measures a box as the volume of the smallest
	// hypersphere enclosing it. Unlike Rectangular, Spherical gives a
	// non-zero volume to a box which is degenerate on some but not all
	// axes.
	Spherical
)

// String returns the name of the volume mode.
func (m VolumeMode) String() string {
	switch m {
	case Rectangular:
		return "Rectangular"
	case Spherical:
		return "Spherical"
	default:
		return "VolumeMode(" + formatCoord(int(m)) + ")"
	}
}

// unitSphereVolumes holds the volume of the unit hypersphere in
// dimensions 0 to 20.
var unitSphereVolumes = [...]float64{
	1.000000, 2.000000, 3.141593, 4.188790, 4.934802, 5.263789, // 0-5
	5.167713, 4.724766, 4.058712, 3.298509, 2.550164, 1.884104, // 6-11
	1.335263, 0.910629, 0.599265, 0.381443, 0.235331, 0.140981, // 12-17
	0.082146, 0.046622, 0.025807, // 18-20
}

func unitSphereVolume(dims int) float64 {
	if dims < len(unitSphereVolumes) {
		return unitSphereVolumes[dims]
	}
	d := float64(dims)
	return math.Pow(math.Pi, d/2) / math.Gamma(d/2+1)
}

// Volume returns the volume of b measured according to mode. The volume
// of the empty box is zero.
func Volume[A Area, T Coord](b Box[T], mode VolumeMode) A {
	if b.IsEmpty() {
		return 0
	}
	if mode == Spherical {
		var sum float64
		for i := range b.Min {
			h := (float64(b.Max[i]) - float64(b.Min[i])) / 2
			sum += h * h
		}
		return A(sphere(len(b.Min), sum))
	}
	v := 1.0
	for i := range b.Min {
		v *= float64(b.Max[i]) - float64(b.Min[i])
	}
	return A(v)
}

// UnionVolume returns the volume of the union of a and b, measured
// according to mode, without allocating the union.
func UnionVolume[A Area, T Coord](a, b Box[T], mode VolumeMode) A {
	if a.IsEmpty() {
		return Volume[A](b, mode)
	} else if b.IsEmpty() {
		return Volume[A](a, mode)
	}
	a.checkDims(b.Dims())
	v := 1.0
	var sum float64
	for i := range a.Min {
		lo, hi := a.Min[i], a.Max[i]
		if b.Min[i] < lo {
			lo = b.Min[i]
		}
		if b.Max[i] > hi {
			hi = b.Max[i]
		}
		e := float64(hi) - float64(lo)
		v *= e
		sum += e * e / 4
	}
	if mode == Spherical {
		return A(sphere(len(a.Min), sum))
	}
	return A(v)
}

// sphere returns the volume of a hypersphere in dims dimensions given
// the square of its radius.
func sphere(dims int, radiusSquared float64) float64 {
	return unitSphereVolume(dims) * math.Pow(radiusSquared, float64(dims)/2)
}
