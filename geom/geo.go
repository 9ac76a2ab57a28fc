// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geom

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// R2Rect is the Indexable for indices whose values are r2.Rect.
type R2Rect struct{}

// LowerBound returns the minimum corner of r.
func (R2Rect) LowerBound(r r2.Rect) []float64 { return []float64{r.X.Lo, r.Y.Lo} }

// UpperBound returns the maximum corner of r.
func (R2Rect) UpperBound(r r2.Rect) []float64 { return []float64{r.X.Hi, r.Y.Hi} }

// R3Point is the Indexable for indices whose values are points in
// three-dimensional space. Each point is its own degenerate bounding
// box.
type R3Point struct{}

// LowerBound returns the coordinates of v.
func (R3Point) LowerBound(v r3.Vector) []float64 { return []float64{v.X, v.Y, v.Z} }

// UpperBound returns the coordinates of v.
func (R3Point) UpperBound(v r3.Vector) []float64 { return []float64{v.X, v.Y, v.Z} }

// S2Rect is the Indexable for indices whose values are s2.Rect. Boxes are
// in degrees, with longitude on axis 0 and latitude on axis 1.
//
// A rectangle which crosses the antimeridian has an inverted longitude
// interval, which no box can represent. Such rectangles are indexed with
// the full longitude range.
type S2Rect struct{}

// LowerBound returns the south-west corner of r.
func (S2Rect) LowerBound(r s2.Rect) []float64 {
	if r.Lng.IsInverted() {
		return []float64{-180, r.Lo().Lat.Degrees()}
	}
	return []float64{r.Lo().Lng.Degrees(), r.Lo().Lat.Degrees()}
}

// UpperBound returns the north-east corner of r.
func (S2Rect) UpperBound(r s2.Rect) []float64 {
	if r.Lng.IsInverted() {
		return []float64{180, r.Hi().Lat.Degrees()}
	}
	return []float64{r.Hi().Lng.Degrees(), r.Hi().Lat.Degrees()}
}
