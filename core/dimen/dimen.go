// Package dimen implements dimensions and units.
//
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"fmt"
	"math"
)

// Dimen is a dimension type.
// Values are in scaled big points (different from TeX).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// FromPoints converts big points to a dimension.
func FromPoints(pts float64) Dimen {
	return Dimen(math.Round(pts * float64(BP)))
}

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// --- Font-relative dimensions ----------------------------------------------

// Em is a font-relative dimension: a multiple of the active font size.
// Glyph advances and offsets coming out of the shaper are expressed in Em,
// so that a shaping result may be resolved against any concrete size.
type Em float64

// Stringer implementation.
func (e Em) String() string {
	return fmt.Sprintf("%gem", float64(e))
}

// IsZero is true for a zero em-distance.
func (e Em) IsZero() bool {
	return e == 0
}

// Resolve turns a font-relative dimension into a page dimension, given a
// concrete font size.
func (e Em) Resolve(size Dimen) Dimen {
	return Dimen(math.Round(float64(e) * float64(size)))
}

// EmFromUnits converts a distance in font design units to Em, given the
// units-per-em of the owning font.
func EmFromUnits(units float64, upem float64) Em {
	if upem == 0 {
		return 0
	}
	return Em(units / upem)
}
