package frame

import (
	"math"

	"github.com/npillmayer/typeshape/core/font"
)

// Intersection of glyph outlines with a horizontal line. Outlines come as
// open contours (an implicit closing edge back to the contour's start), with
// line, quadratic and cubic segments; crossings are found per segment by
// closed-form root solving. Segment parameters are taken from the half-open
// interval [0,1), so a crossing at a shared vertex is counted exactly once
// and closed contours yield an even number of crossings.

const geomEps = 1e-9

// intersectHorizontal returns the x coordinates at which the outline
// crosses the horizontal line at height y. The result is unsorted.
func intersectHorizontal(outline []font.OutlineSegment, y float64) []float64 {
	var xs []float64
	var cur, contourStart font.OutlinePoint
	open := false
	closeContour := func() {
		if open && cur != contourStart {
			xs = append(xs, lineCrossings(cur, contourStart, y)...)
		}
	}
	for _, seg := range outline {
		switch seg.Op {
		case font.OutlineMoveTo:
			closeContour()
			cur, contourStart, open = seg.Args[0], seg.Args[0], true
		case font.OutlineLineTo:
			xs = append(xs, lineCrossings(cur, seg.Args[0], y)...)
			cur = seg.Args[0]
		case font.OutlineQuadTo:
			xs = append(xs, quadCrossings(cur, seg.Args[0], seg.Args[1], y)...)
			cur = seg.Args[1]
		case font.OutlineCubeTo:
			xs = append(xs, cubeCrossings(cur, seg.Args[0], seg.Args[1], seg.Args[2], y)...)
			cur = seg.Args[2]
		}
	}
	closeContour()
	return xs
}

func lineCrossings(p0, p1 font.OutlinePoint, y float64) []float64 {
	dy := p1.Y - p0.Y
	if math.Abs(dy) < geomEps {
		return nil // parallel to the line
	}
	t := (y - p0.Y) / dy
	if t < 0 || t >= 1 {
		return nil
	}
	return []float64{p0.X + t*(p1.X-p0.X)}
}

func quadCrossings(p0, p1, p2 font.OutlinePoint, y float64) []float64 {
	// y(t) in power basis
	c2 := p0.Y - 2*p1.Y + p2.Y
	c1 := 2 * (p1.Y - p0.Y)
	c0 := p0.Y - y
	var xs []float64
	for _, t := range solveQuadratic(c0, c1, c2) {
		if t < 0 || t >= 1 {
			continue
		}
		mt := 1 - t
		xs = append(xs, mt*mt*p0.X+2*mt*t*p1.X+t*t*p2.X)
	}
	return xs
}

func cubeCrossings(p0, p1, p2, p3 font.OutlinePoint, y float64) []float64 {
	c3 := -p0.Y + 3*p1.Y - 3*p2.Y + p3.Y
	c2 := 3 * (p0.Y - 2*p1.Y + p2.Y)
	c1 := 3 * (p1.Y - p0.Y)
	c0 := p0.Y - y
	var xs []float64
	for _, t := range solveCubic(c0, c1, c2, c3) {
		if t < 0 || t >= 1 {
			continue
		}
		mt := 1 - t
		xs = append(xs, mt*mt*mt*p0.X+3*mt*mt*t*p1.X+3*mt*t*t*p2.X+t*t*t*p3.X)
	}
	return xs
}

// solveQuadratic returns the real roots of c2·x² + c1·x + c0 = 0.
func solveQuadratic(c0, c1, c2 float64) []float64 {
	if math.Abs(c2) < geomEps {
		if math.Abs(c1) < geomEps {
			return nil
		}
		return []float64{-c0 / c1}
	}
	disc := c1*c1 - 4*c2*c0
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-c1 / (2 * c2)}
	}
	// Citardauq for the smaller-magnitude root, for numerical stability.
	q := -0.5 * (c1 + math.Copysign(math.Sqrt(disc), c1))
	return []float64{q / c2, c0 / q}
}

// solveCubic returns the real roots of c3·x³ + c2·x² + c1·x + c0 = 0,
// using the trigonometric/Cardano split (Numerical Recipes §5.6).
func solveCubic(c0, c1, c2, c3 float64) []float64 {
	if math.Abs(c3) < geomEps {
		return solveQuadratic(c0, c1, c2)
	}
	a := c2 / c3
	b := c1 / c3
	c := c0 / c3

	q := (a*a - 3*b) / 9
	r := (2*a*a*a - 9*a*b + 27*c) / 54

	if r*r < q*q*q {
		theta := math.Acos(r / math.Sqrt(q*q*q))
		m := -2 * math.Sqrt(q)
		return []float64{
			m*math.Cos(theta/3) - a/3,
			m*math.Cos((theta+2*math.Pi)/3) - a/3,
			m*math.Cos((theta-2*math.Pi)/3) - a/3,
		}
	}
	e := -math.Copysign(math.Cbrt(math.Abs(r)+math.Sqrt(r*r-q*q*q)), r)
	f := 0.0
	if e != 0 {
		f = q / e
	}
	return []float64{e + f - a/3}
}
