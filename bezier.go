// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "math"

// QuadraticBezier is a quadratic Bézier curve with start P0, control P1 and
// end P2.
type QuadraticBezier struct {
	P0, P1, P2 Point
}

// Split divides the curve at t with de Casteljau subdivision.
func (q QuadraticBezier) Split(t float64) (QuadraticBezier, QuadraticBezier) {
	ab := q.P0.Lerp(q.P1, t)
	bc := q.P1.Lerp(q.P2, t)
	p := ab.Lerp(bc, t)
	return QuadraticBezier{q.P0, ab, p}, QuadraticBezier{p, bc, q.P2}
}

// Subdivide splits the curve at its midpoint n times, doubling the number of
// pieces at each level. Subdivide(0) returns the curve itself.
func (q QuadraticBezier) Subdivide(n int) []QuadraticBezier {
	curves := []QuadraticBezier{q}
	for range n {
		next := make([]QuadraticBezier, 0, len(curves)*2)
		for _, c := range curves {
			l, r := c.Split(0.5)
			next = append(next, l, r)
		}
		curves = next
	}
	return curves
}

// ApproximateLength estimates the arc length as the mean of the chord and
// the control polygon, summed over Subdivide(subdivide) pieces.
func (q QuadraticBezier) ApproximateLength(subdivide int) float64 {
	var sum float64
	for _, c := range q.Subdivide(subdivide) {
		sum += c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P0)
	}
	return sum * 0.5
}

// Interpolate evaluates the curve at t.
func (q QuadraticBezier) Interpolate(t float64) Point {
	u := 1 - t
	return q.P0.Mul(u * u).Add(q.P1.Mul(2 * u * t)).Add(q.P2.Mul(t * t))
}

// Tangent returns the unnormalized derivative at t.
func (q QuadraticBezier) Tangent(t float64) Point {
	u := 1 - t
	return q.P0.Mul(-2 * u).Add(q.P1.Mul(2 - 4*t)).Add(q.P2.Mul(2 * t))
}

// StartDirection returns the unit tangent at the start point.
func (q QuadraticBezier) StartDirection() Point {
	if d := q.P1.Sub(q.P0); d.LengthSquared() > Epsilon {
		return d.Normalize()
	}
	return q.P2.Sub(q.P0).Normalize()
}

// EndDirection returns the unit tangent at the end point.
func (q QuadraticBezier) EndDirection() Point {
	if d := q.P2.Sub(q.P1); d.LengthSquared() > Epsilon {
		return d.Normalize()
	}
	return q.P2.Sub(q.P0).Normalize()
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadraticBezier) BoundingBox() Rect {
	// B'(t) = 2(P1-P0) + 2t(P0-2P1+P2)
	b := q.P0.Sub(q.P1.Mul(2)).Add(q.P2).Mul(2)
	c := q.P1.Sub(q.P0).Mul(2)
	box := BoundingRect(q.P0, q.P2)
	for _, t := range derivativeRoots(0, b.X, c.X) {
		box = q.expandAt(box, t)
	}
	for _, t := range derivativeRoots(0, b.Y, c.Y) {
		box = q.expandAt(box, t)
	}
	return box
}

func (q QuadraticBezier) expandAt(box Rect, t float64) Rect {
	if t > 0 && t < 1 {
		return box.Expand(q.Interpolate(t))
	}
	return box
}

func (q QuadraticBezier) yExtrema() []float64 {
	return unitInterior(derivativeRoots(0, 2*(q.P0.Y-2*q.P1.Y+q.P2.Y), 2*(q.P1.Y-q.P0.Y)))
}

// ToCubic returns the exact cubic representation of the curve.
func (q QuadraticBezier) ToCubic() CubicBezier {
	const k = 2.0 / 3.0
	return CubicBezier{
		P0: q.P0,
		P1: q.P0.Add(q.P1.Sub(q.P0).Mul(k)),
		P2: q.P2.Add(q.P1.Sub(q.P2).Mul(k)),
		P3: q.P2,
	}
}

// IntersectHorizontal returns the parameters in [0, 1] where the curve
// crosses the horizontal segment at y spanning [minX, maxX].
func (q QuadraticBezier) IntersectHorizontal(y, minX, maxX float64) []float64 {
	a := q.P0.Y - 2*q.P1.Y + q.P2.Y
	b := 2 * (q.P1.Y - q.P0.Y)
	c := q.P0.Y - y
	return crossingsWithin(SolveQuadraticInUnitInterval(a, b, c), q.Interpolate, minX, maxX)
}

// CubicBezier is a cubic Bézier curve with start P0, controls P1 and P2 and
// end P3.
type CubicBezier struct {
	P0, P1, P2, P3 Point
}

// Split divides the curve at t with de Casteljau subdivision.
func (c CubicBezier) Split(t float64) (CubicBezier, CubicBezier) {
	ab := c.P0.Lerp(c.P1, t)
	bc := c.P1.Lerp(c.P2, t)
	cd := c.P2.Lerp(c.P3, t)
	abbc := ab.Lerp(bc, t)
	bccd := bc.Lerp(cd, t)
	p := abbc.Lerp(bccd, t)
	return CubicBezier{c.P0, ab, abbc, p}, CubicBezier{p, bccd, cd, c.P3}
}

// Subdivide splits the curve at its midpoint n times, doubling the number of
// pieces at each level. Subdivide(0) returns the curve itself.
func (c CubicBezier) Subdivide(n int) []CubicBezier {
	curves := []CubicBezier{c}
	for range n {
		next := make([]CubicBezier, 0, len(curves)*2)
		for _, cv := range curves {
			l, r := cv.Split(0.5)
			next = append(next, l, r)
		}
		curves = next
	}
	return curves
}

// ApproximateLength estimates the arc length as the mean of the chord and
// the control polygon, summed over Subdivide(subdivide) pieces.
func (c CubicBezier) ApproximateLength(subdivide int) float64 {
	var sum float64
	for _, cv := range c.Subdivide(subdivide) {
		sum += cv.P0.Distance(cv.P1) + cv.P1.Distance(cv.P2) +
			cv.P2.Distance(cv.P3) + cv.P3.Distance(cv.P0)
	}
	return sum * 0.5
}

// Interpolate evaluates the curve at t.
func (c CubicBezier) Interpolate(t float64) Point {
	u := 1 - t
	return c.P0.Mul(u * u * u).
		Add(c.P1.Mul(3 * t * u * u)).
		Add(c.P2.Mul(3 * t * t * u)).
		Add(c.P3.Mul(t * t * t))
}

// Tangent returns the unnormalized derivative at t.
func (c CubicBezier) Tangent(t float64) Point {
	u := 1 - t
	return c.P0.Mul(-3 * u * u).
		Add(c.P1.Mul(3*u*u - 6*t*u)).
		Add(c.P2.Mul(6*t*u - 3*t*t)).
		Add(c.P3.Mul(3 * t * t))
}

// StartDirection returns the unit tangent at the start point, skipping
// coincident control points.
func (c CubicBezier) StartDirection() Point {
	for _, p := range [...]Point{c.P1, c.P2, c.P3} {
		if d := p.Sub(c.P0); d.LengthSquared() > Epsilon {
			return d.Normalize()
		}
	}
	return Point{}
}

// EndDirection returns the unit tangent at the end point, skipping
// coincident control points.
func (c CubicBezier) EndDirection() Point {
	for _, p := range [...]Point{c.P2, c.P1, c.P0} {
		if d := c.P3.Sub(p); d.LengthSquared() > Epsilon {
			return d.Normalize()
		}
	}
	return Point{}
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBezier) BoundingBox() Rect {
	// B'(t) = a*t^2 + b*t + k per axis
	a := c.P3.Sub(c.P0).Add(c.P1.Sub(c.P2).Mul(3)).Mul(3)
	b := c.P0.Sub(c.P1.Mul(2)).Add(c.P2).Mul(6)
	k := c.P1.Sub(c.P0).Mul(3)
	box := BoundingRect(c.P0, c.P3)
	for _, t := range derivativeRoots(a.X, b.X, k.X) {
		box = c.expandAt(box, t)
	}
	for _, t := range derivativeRoots(a.Y, b.Y, k.Y) {
		box = c.expandAt(box, t)
	}
	return box
}

func (c CubicBezier) expandAt(box Rect, t float64) Rect {
	if t > 0 && t < 1 {
		return box.Expand(c.Interpolate(t))
	}
	return box
}

func (c CubicBezier) yExtrema() []float64 {
	a := 3 * (c.P3.Y - c.P0.Y + 3*(c.P1.Y-c.P2.Y))
	b := 6 * (c.P0.Y - 2*c.P1.Y + c.P2.Y)
	k := 3 * (c.P1.Y - c.P0.Y)
	return unitInterior(derivativeRoots(a, b, k))
}

// IntersectHorizontal returns the parameters in [0, 1] where the curve
// crosses the horizontal segment at y spanning [minX, maxX].
func (c CubicBezier) IntersectHorizontal(y, minX, maxX float64) []float64 {
	a := -c.P0.Y + 3*c.P1.Y - 3*c.P2.Y + c.P3.Y
	b := 3 * (c.P0.Y - 2*c.P1.Y + c.P2.Y)
	k := 3 * (c.P1.Y - c.P0.Y)
	d := c.P0.Y - y
	return crossingsWithin(SolveCubicInUnitInterval(a, b, k, d), c.Interpolate, minX, maxX)
}

// unitInterior keeps the roots strictly inside (0, 1).
func unitInterior(ts []float64) []float64 {
	out := ts[:0]
	for _, t := range ts {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

func crossingsWithin(ts []float64, eval func(float64) Point, minX, maxX float64) []float64 {
	out := ts[:0]
	for _, t := range ts {
		x := eval(t).X
		if x >= minX-Epsilon && x <= maxX+Epsilon && !math.IsNaN(x) {
			out = append(out, t)
		}
	}
	return out
}
