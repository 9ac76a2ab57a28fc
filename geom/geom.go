// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geom provides spatial.Indexable implementations for the
// geometry types of github.com/paulmach/orb and github.com/golang/geo,
// so that values of those types can be stored directly in an rtree or
// quadtree.
//
// Planar types map to boxes with one axis per coordinate, in the order
// X, Y[, Z]. Geographic types map to two-dimensional boxes in degrees,
// ordered longitude then latitude to match orb.
package geom

import (
	"github.com/gogama/spatial"
	"github.com/paulmach/orb"
)

// OrbBound is the Indexable for indices whose values are orb.Bound.
type OrbBound struct{}

// LowerBound returns the minimum corner of b.
func (OrbBound) LowerBound(b orb.Bound) []float64 { return []float64{b.Min[0], b.Min[1]} }

// UpperBound returns the maximum corner of b.
func (OrbBound) UpperBound(b orb.Bound) []float64 { return []float64{b.Max[0], b.Max[1]} }

// OrbGeometry is the Indexable for indices whose values are orb
// geometries. The bounding box of each value is its Bound.
type OrbGeometry[G orb.Geometry] struct{}

// LowerBound returns the minimum corner of g.Bound().
func (OrbGeometry[G]) LowerBound(g G) []float64 { return OrbBound{}.LowerBound(g.Bound()) }

// UpperBound returns the maximum corner of g.Bound().
func (OrbGeometry[G]) UpperBound(g G) []float64 { return OrbBound{}.UpperBound(g.Bound()) }

// ToOrbBound converts a two-dimensional box to an orb.Bound. Panics if b
// does not have two dimensions.
func ToOrbBound(b spatial.Box[float64]) orb.Bound {
	if b.Dims() != 2 {
		fmtPanic("cannot convert %d-dimensional box to orb.Bound", b.Dims())
	}
	return orb.Bound{
		Min: orb.Point{b.Min[0], b.Min[1]},
		Max: orb.Point{b.Max[0], b.Max[1]},
	}
}

// FromOrbBound converts an orb.Bound to a two-dimensional box.
func FromOrbBound(b orb.Bound) spatial.Box[float64] {
	return spatial.BoundsOf[float64, orb.Bound](OrbBound{}, b)
}
