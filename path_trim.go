// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "math"

const (
	trimQuadSubdivision  = 2
	trimCubicSubdivision = 3
)

// Trimmed returns the part of the path between the fractions from and to
// of its approximate total length. Both fractions are clamped to [0, 1];
// an empty path is returned when to <= from or either fraction is NaN.
func (p *Path) Trimmed(from, to float64) *Path {
	if math.IsNaN(from) || math.IsNaN(to) {
		return NewPath()
	}
	from, to = clamp(from, 0, 1), clamp(to, 0, 1)
	out := NewPath()
	if to <= from {
		return out
	}

	total := p.approximateLength()
	start, end := total*from, total*to

	// fraction returns the parameter range of a piece of length d that
	// begins at progress and lies inside [start, end].
	fraction := func(d, progress float64) (t0, t1 float64) {
		t1 = 1
		if start > progress {
			t0 = (start - progress) / d
		}
		if end < progress+d {
			t1 = (end - progress) / d
		}
		return t0, t1
	}

	var initial, cur Point
	progress := 0.0
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			initial, cur = e.Point, e.Point
			if progress >= start {
				out.moveToPt(e.Point)
			}
		case LineTo:
			p0 := cur
			cur = e.Point
			d := p0.Distance(e.Point)
			if start >= progress+d {
				progress += d
				continue
			}
			t0, t1 := fraction(d, progress)
			if t0 > 0 {
				out.moveToPt(p0.Lerp(e.Point, t0))
			}
			if t1 < 1 {
				out.lineToPt(p0.Lerp(e.Point, t1))
				return out
			}
			out.lineToPt(e.Point)
			progress += (t1 - t0) * d
		case QuadTo:
			curve := QuadraticBezier{cur, e.Control, e.Point}
			cur = e.Point
			d := curve.ApproximateLength(trimQuadSubdivision)
			if start >= progress+d {
				progress += d
				continue
			}
			t0, t1 := fraction(d, progress)
			if t0 > 0 {
				out.moveToPt(curve.Interpolate(t0))
				_, curve = curve.Split(t0)
				t1 = (t1 - t0) / (1 - t0)
			}
			if t1 < 1 {
				curve, _ = curve.Split(t1)
				out.QuadraticTo(curve.P1.X, curve.P1.Y, curve.P2.X, curve.P2.Y)
				return out
			}
			out.QuadraticTo(curve.P1.X, curve.P1.Y, curve.P2.X, curve.P2.Y)
			progress += (1 - t0) * d
		case CubicTo:
			curve := CubicBezier{cur, e.Control1, e.Control2, e.Point}
			cur = e.Point
			d := curve.ApproximateLength(trimCubicSubdivision)
			if start >= progress+d {
				progress += d
				continue
			}
			t0, t1 := fraction(d, progress)
			if t0 > 0 {
				out.moveToPt(curve.Interpolate(t0))
				_, curve = curve.Split(t0)
				t1 = (t1 - t0) / (1 - t0)
			}
			if t1 < 1 {
				curve, _ = curve.Split(t1)
				out.cubicToPt(curve.P1, curve.P2, curve.P3)
				return out
			}
			out.cubicToPt(curve.P1, curve.P2, curve.P3)
			progress += (1 - t0) * d
		case Close:
			cur = initial
			if progress > start {
				out.Close()
			}
		}
	}
	return out
}

// approximateLength sums line lengths and approximate curve lengths.
// Closing segments do not contribute.
func (p *Path) approximateLength() float64 {
	var total float64
	var initial, cur Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			initial, cur = e.Point, e.Point
		case LineTo:
			total += cur.Distance(e.Point)
			cur = e.Point
		case QuadTo:
			total += QuadraticBezier{cur, e.Control, e.Point}.ApproximateLength(trimQuadSubdivision)
			cur = e.Point
		case CubicTo:
			total += CubicBezier{cur, e.Control1, e.Control2, e.Point}.ApproximateLength(trimCubicSubdivision)
			cur = e.Point
		case Close:
			cur = initial
		}
	}
	return total
}
