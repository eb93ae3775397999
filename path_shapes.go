// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "math"

// kappa places the control points of a cubic quarter circle:
// (4/3)*tan(pi/8).
const kappa = 0.552284749830793

// arcTolerance drops the sliver left over when a multiple of a quarter turn
// does not subtract exactly.
const arcTolerance = 1e-12

// RoundedCornerStyle selects the corner curve of AddRoundedRect.
type RoundedCornerStyle int

const (
	// RoundedCornerCircular uses quarter-circle corners.
	RoundedCornerCircular RoundedCornerStyle = iota
	// RoundedCornerContinuous uses curvature-continuous corners.
	RoundedCornerContinuous
)

// AddRect adds a closed rectangle transformed by t.
func (p *Path) AddRect(r Rect, t Transform) {
	c := r.Corners()
	p.moveToPt(t.Apply(c[0]))
	for _, pt := range c[1:] {
		p.lineToPt(t.Apply(pt))
	}
	p.Close()
}

// AddRects adds a closed rectangle for every entry of rects.
func (p *Path) AddRects(rects []Rect, t Transform) {
	for _, r := range rects {
		p.AddRect(r, t)
	}
}

// AddLines adds a line to every point in turn.
func (p *Path) AddLines(pts []Point) {
	for _, pt := range pts {
		p.lineToPt(pt)
	}
}

// AddEllipse adds a closed ellipse inscribed in r, built from four cubic
// quarter arcs starting at the right-hand midpoint.
func (p *Path) AddEllipse(r Rect, t Transform) {
	mid := r.Mid()
	minX, minY, maxX, maxY := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	pts := [12]Point{
		{maxX, mid.Y}, {maxX, Lerp(mid.Y, maxY, kappa)}, {Lerp(mid.X, maxX, kappa), maxY},
		{mid.X, maxY}, {Lerp(mid.X, minX, kappa), maxY}, {minX, Lerp(mid.Y, maxY, kappa)},
		{minX, mid.Y}, {minX, Lerp(mid.Y, minY, kappa)}, {Lerp(mid.X, minX, kappa), minY},
		{mid.X, minY}, {Lerp(mid.X, maxX, kappa), minY}, {maxX, Lerp(mid.Y, minY, kappa)},
	}
	for i := range pts {
		pts[i] = t.Apply(pts[i])
	}
	p.moveToPt(pts[0])
	p.cubicToPt(pts[1], pts[2], pts[3])
	p.cubicToPt(pts[4], pts[5], pts[6])
	p.cubicToPt(pts[7], pts[8], pts[9])
	p.cubicToPt(pts[10], pts[11], pts[0])
	p.Close()
}

// AddRoundedRect adds a closed rectangle with rounded corners. The corner
// size is clamped to half the rectangle; a degenerate corner adds a plain
// rectangle.
func (p *Path) AddRoundedRect(r Rect, corner Size, style RoundedCornerStyle, t Transform) {
	mid := r.Mid()
	minX, minY, maxX, maxY := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	cx := clamp(corner.Width, 0, maxX-mid.X)
	cy := clamp(corner.Height, 0, maxY-mid.Y)

	if cx <= Epsilon || cy <= Epsilon {
		p.moveToPt(t.Apply(Pt(minX, minY)))
		p.lineToPt(t.Apply(Pt(maxX, minY)))
		p.lineToPt(t.Apply(Pt(maxX, maxY)))
		p.lineToPt(t.Apply(Pt(minX, maxY)))
		p.Close()
		return
	}

	// Each corner maps the unit corner curve from (1,0) to (0,1) into place.
	frames := [4]Transform{
		Scale(cx, cy).
			Translated(maxX-cx, maxY-cy).Concatenating(t),
		Scale(-1, 1).Translated(1, 0).Scaled(cx, cy).
			Translated(minX, maxY-cy).Concatenating(t),
		Rotation(math.Pi).Translated(1, 1).Scaled(cx, cy).
			Translated(minX, minY).Concatenating(t),
		Scale(1, -1).Translated(0, 1).Scaled(cx, cy).
			Translated(maxX-cx, minY).Concatenating(t),
	}

	var unit []Point
	if style == RoundedCornerContinuous {
		rx := math.Min((maxX-mid.X-cx)/(cx*0.54), 1)
		ry := math.Min((maxY-mid.Y-cy)/(cy*0.54), 1)
		unit = []Point{
			{1, Lerp(0, -0.528665, ry)},
			{1, Lerp(0.04, -0.08849, ry)},
			{1, Lerp(0.18, 0.131593, ry)},
			{0.925089, 0.368506},
			{0.83094, 0.627176},
			{0.627176, 0.83094},
			{0.368506, 0.925089},
			{Lerp(0.18, 0.131593, rx), 1},
			{Lerp(0.04, -0.08849, rx), 1},
			{Lerp(0, -0.52866, rx), 1},
		}
	} else {
		unit = []Point{{1, 0}, {1, kappa}, {kappa, 1}, {0, 1}}
	}

	p.moveToPt(t.Apply(Pt(maxX, mid.Y)))
	for i, frame := range frames {
		pts := make([]Point, len(unit))
		for j, u := range unit {
			// Odd corners run the curve backwards to keep the winding.
			if i%2 == 1 {
				u = unit[len(unit)-1-j]
			}
			pts[j] = frame.Apply(u)
		}
		p.lineToPt(pts[0])
		for k := 1; k+2 < len(pts); k += 3 {
			p.cubicToPt(pts[k], pts[k+1], pts[k+2])
		}
	}
	p.Close()
}

// AddRelativeArc adds a circular arc of delta radians starting at
// startAngle. The arc is joined to the current subpath with a line, or
// starts a new subpath when there is none.
func (p *Path) AddRelativeArc(center Point, radius, startAngle, delta float64, t Transform) {
	if math.Abs(delta) < Epsilon {
		return
	}

	frame := Scale(radius, radius)
	if delta < 0 {
		frame = frame.Scaled(1, -1)
		delta = -delta
	}
	frame = frame.Rotated(startAngle).Translated(center.X, center.Y).Concatenating(t)

	start := frame.Apply(Pt(1, 0))
	if n := len(p.elements); n > 0 {
		if _, closed := p.elements[n-1].(Close); !closed {
			p.lineToPt(start)
		} else {
			p.moveToPt(start)
		}
	} else {
		p.moveToPt(start)
	}

	quarter := CubicBezier{Pt(1, 0), Pt(1, kappa), Pt(kappa, 1), Pt(0, 1)}
	const halfPi = math.Pi / 2
	rotate := Identity()
	for delta > arcTolerance {
		f := rotate.Concatenating(frame)
		seg := quarter
		if delta < halfPi {
			seg, _ = quarter.Split(delta / halfPi)
		}
		p.cubicToPt(f.Apply(seg.P1), f.Apply(seg.P2), f.Apply(seg.P3))
		if delta < halfPi {
			break
		}
		delta -= halfPi
		rotate = rotate.Rotated(halfPi)
	}
}

// AddArc adds a circular arc from startAngle to endAngle in the given
// direction.
func (p *Path) AddArc(center Point, radius, startAngle, endAngle float64, clockwise bool, t Transform) {
	delta := endAngle - startAngle
	if clockwise {
		if delta > 0 {
			delta -= 2 * math.Pi
		}
	} else if delta < 0 {
		delta += 2 * math.Pi
	}
	p.AddRelativeArc(center, radius, startAngle, delta, t)
}

// AddTangentArc adds an arc of the given radius tangent to the line from
// the current point to p1 and to the line from p1 to p2.
func (p *Path) AddTangentArc(p1, p2 Point, radius float64, t Transform) {
	if radius < Epsilon {
		return
	}
	p1, p2 = t.Apply(p1), t.Apply(p2)
	cur := p.current

	tan1 := cur.Sub(p1).Normalize()
	tan2 := p2.Sub(p1).Normalize()
	d := tan1.Dot(tan2)
	if 1-math.Abs(d) < Epsilon {
		return
	}
	clockwise := tan1.Cross(tan2) < 0

	half := math.Acos(clamp(d, -1, 1)) * 0.5
	toStart := radius / math.Tan(half)
	arcStart := p1.Add(tan1.Mul(toStart))
	arcEnd := p1.Add(tan2.Mul(toStart))
	center := p1.Add(tan1.Add(tan2).Normalize().Mul(radius / math.Sin(half)))

	sv := arcStart.Sub(center)
	ev := arcEnd.Sub(center)
	startAngle := math.Atan2(sv.Y, sv.X)
	delta := math.Atan2(ev.Y, ev.X) - startAngle
	if clockwise {
		if delta < 0 {
			delta += 2 * math.Pi
		}
	} else if delta > 0 {
		delta -= 2 * math.Pi
	}
	p.AddRelativeArc(center, radius, startAngle, delta, Identity())
}

func (p *Path) moveToPt(pt Point)          { p.MoveTo(pt.X, pt.Y) }
func (p *Path) lineToPt(pt Point)          { p.LineTo(pt.X, pt.Y) }
func (p *Path) cubicToPt(c1, c2, pt Point) { p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y) }
