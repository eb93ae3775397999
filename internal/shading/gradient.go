// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shading

import (
	"math"

	"github.com/gogpu/vgcore"
)

const (
	// radialStep is the angular step of radial gradient rings.
	radialStep = math.Pi / 45
	// conicStep is the angular step of the conic gradient fan.
	conicStep = math.Pi / 180

	radialSteps = 90
	conicSteps  = 360
)

// linear covers the viewport with one quad per stop interval, in gradient
// space where the start point is (0, 0) and the end point is (1, 0).
func (r *Resolver) linear(g vgcore.LinearGradient, view vgcore.Transform) (Geometry, bool) {
	stops := g.Gradient.Normalized().Stops
	if len(stops) == 0 {
		return Geometry{}, false
	}
	axis := g.End.Sub(g.Start)
	length := axis.Length()
	if length < vgcore.Epsilon {
		return r.solid(stops[0].Color), true
	}
	dir := axis.Mul(1 / length)
	gradientTransform := vgcore.Transform{
		A: dir.X * length, B: dir.Y * length,
		C: -dir.Y, D: dir.X,
		Tx: g.Start.X, Ty: g.Start.Y,
	}
	toClip := gradientTransform.Concatenating(view)
	extent := viewportExtent(toClip.Inverted())
	minX, maxX := extent.Min.X, extent.Max.X
	minY, maxY := extent.Min.Y, extent.Max.Y

	band := func(x1, x2 float64, c1, c2 vgcore.Color) {
		r.gradientBand(toClip, x1, x2, minY, maxY, c1, c2, g.Options)
	}
	visible := func(x1, x2 float64) bool {
		return max(x1, x2) >= minX && min(x1, x2) <= maxX
	}

	switch {
	case g.Options&(vgcore.GradientMirror|vgcore.GradientRepeat) != 0:
		first, last := math.Floor(minX), math.Ceil(maxX)
		if last-first > maxPeriods {
			return r.solid(meanColor(stops)), true
		}
		mirror := g.Options&vgcore.GradientMirror != 0
		for pos := first; pos < last; pos++ {
			flip := mirror && math.Mod(math.Abs(pos), 2) == 1
			for i := 1; i < len(stops); i++ {
				s1, s2 := stops[i-1], stops[i]
				loc1, loc2 := s1.Location, s2.Location
				if flip {
					loc1, loc2 = 1-loc1, 1-loc2
				}
				if visible(loc1+pos, loc2+pos) {
					band(loc1+pos, loc2+pos, s1.Color, s2.Color)
				}
			}
		}
	default:
		for i := 1; i < len(stops); i++ {
			band(stops[i-1].Location, stops[i].Location, stops[i-1].Color, stops[i].Color)
		}
		if first := stops[0]; first.Location > minX {
			band(minX, first.Location, first.Color, first.Color)
		}
		if last := stops[len(stops)-1]; last.Location < maxX {
			band(last.Location, maxX, last.Color, last.Color)
		}
	}
	return Geometry{Shader: VertexColor, Vertices: r.vertices}, true
}

// gradientBand emits the quad spanning [x1, x2] along the gradient axis and
// [minY, maxY] across it. With GradientLinearColor the band is split so
// that the linear-light ramp survives the GPU's per-component lerp.
func (r *Resolver) gradientBand(toClip vgcore.Transform, x1, x2, minY, maxY float64, c1, c2 vgcore.Color, opts vgcore.GradientOptions) {
	steps := 1
	if opts&vgcore.GradientLinearColor != 0 && c1 != c2 {
		steps = linearColorSteps
	}
	for k := range steps {
		t0 := float64(k) / float64(steps)
		t1 := float64(k+1) / float64(steps)
		xa, xb := vgcore.Lerp(x1, x2, t0), vgcore.Lerp(x1, x2, t1)
		ca, cb := bandColor(c1, c2, t0, opts), bandColor(c1, c2, t1, opts)

		v0 := vgcore.NewVertex(toClip.Apply(vgcore.Pt(xa, maxY)), vgcore.Point{}, ca)
		v1 := vgcore.NewVertex(toClip.Apply(vgcore.Pt(xa, minY)), vgcore.Point{}, ca)
		v2 := vgcore.NewVertex(toClip.Apply(vgcore.Pt(xb, maxY)), vgcore.Point{}, cb)
		v3 := vgcore.NewVertex(toClip.Apply(vgcore.Pt(xb, minY)), vgcore.Point{}, cb)
		r.vertices = append(r.vertices, v0, v1, v2, v2, v1, v3)
	}
}

func bandColor(c1, c2 vgcore.Color, t float64, opts vgcore.GradientOptions) vgcore.Color {
	switch {
	case t == 0:
		return c1
	case t == 1:
		return c2
	case opts&vgcore.GradientLinearColor != 0:
		return c1.LerpLinear(c2, t)
	default:
		return c1.Lerp(c2, t)
	}
}

// radial covers the circle enclosing the viewport with concentric rings,
// one per stop interval.
func (r *Resolver) radial(g vgcore.RadialGradient, view vgcore.Transform) (Geometry, bool) {
	stops := g.Gradient.Normalized().Stops
	if len(stops) == 0 {
		return Geometry{}, false
	}
	length := math.Abs(g.EndRadius - g.StartRadius)
	if length < vgcore.Epsilon {
		if g.Options&vgcore.GradientRepeat != 0 && g.Options&vgcore.GradientMirror == 0 {
			return r.solid(stops[len(stops)-1].Color), true
		}
		return r.solid(stops[0].Color), true
	}

	// Rings are polygons; push the outer edge out so chords still cover
	// the enclosing circle.
	scale := coverRadius(view.Inverted(), g.Center) / math.Cos(radialStep/2)
	toClip := vgcore.Translation(g.Center.X, g.Center.Y).Concatenating(view)
	ring := func(x1, x2 float64, c1, c2 vgcore.Color) {
		r.circularArc(toClip, scale, x1, x2, c1, c2, g.Options)
	}
	last := len(stops) - 1

	switch {
	case g.Options&vgcore.GradientMirror != 0:
		start := g.StartRadius
		reverse := false
		for start > 0 {
			start -= length
			reverse = !reverse
		}
		if (scale-start)/length > maxPeriods {
			return r.solid(meanColor(stops)), true
		}
		for ; start < scale; start += length {
			r.radialPeriod(stops, start, length, scale, reverse, ring)
			reverse = !reverse
		}

	case g.Options&vgcore.GradientRepeat != 0:
		start := g.StartRadius
		reverse := g.EndRadius < g.StartRadius
		for start > 0 {
			start -= length
		}
		if (scale-start)/length > maxPeriods {
			return r.solid(meanColor(stops)), true
		}
		for ; start < scale; start += length {
			r.radialPeriod(stops, start, length, scale, reverse, ring)
		}

	case g.EndRadius > g.StartRadius:
		ring(0, g.StartRadius, stops[0].Color, stops[0].Color)
		r.radialPeriod(stops, g.StartRadius, length, scale, false, ring)
		ring(g.EndRadius, scale, stops[last].Color, stops[last].Color)

	default:
		ring(0, g.EndRadius, stops[last].Color, stops[last].Color)
		r.radialPeriod(stops, g.EndRadius, length, scale, true, ring)
		ring(g.StartRadius, scale, stops[0].Color, stops[0].Color)
	}
	return Geometry{Shader: VertexColor, Vertices: r.vertices}, true
}

// radialPeriod emits the rings of one gradient period starting at radius
// start. A reversed period runs the stops from the outer edge inward.
func (r *Resolver) radialPeriod(stops []vgcore.GradientStop, start, length, scale float64, reverse bool,
	ring func(x1, x2 float64, c1, c2 vgcore.Color)) {
	for i := 1; i < len(stops); i++ {
		s1, s2 := stops[i-1], stops[i]
		if reverse {
			loc1 := start + length - s1.Location*length
			loc2 := start + length - s2.Location*length
			if loc1 <= 0 && loc2 <= 0 {
				break
			}
			ring(loc1, loc2, s1.Color, s2.Color)
		} else {
			loc1 := start + s1.Location*length
			loc2 := start + s2.Location*length
			if loc1 >= scale && loc2 >= scale {
				break
			}
			ring(loc1, loc2, s1.Color, s2.Color)
		}
	}
}

// circularArc emits a full ring between radii x1 and x2, clipped to
// [0, scale] with colors interpolated at the clip radii.
func (r *Resolver) circularArc(toClip vgcore.Transform, scale, x1, x2 float64, c1, c2 vgcore.Color, opts vgcore.GradientOptions) {
	if x1 >= scale && x2 >= scale {
		return
	}
	if x1 <= 0 && x2 <= 0 {
		return
	}
	if math.Abs(x2-x1) < vgcore.Epsilon {
		return
	}
	if x1 > x2 {
		x1, x2 = x2, x1
		c1, c2 = c2, c1
	}
	a, b := x1, x2
	if a < 0 {
		c1 = bandColor(c1, c2, (0-x1)/(x2-x1), opts)
		a = 0
	}
	if b > scale {
		c2 = bandColor(c1, c2, (scale-a)/(x2-a), opts)
		b = scale
	}
	if b-a < vgcore.Epsilon {
		return
	}

	p0 := vgcore.Pt(a, 0)
	p1 := rotated(p0, radialStep)
	p2 := vgcore.Pt(b, 0)
	p3 := rotated(p2, radialStep)

	var pts []vgcore.Point
	var colors []vgcore.Color
	if p1.Sub(p0).LengthSquared() < vgcore.Epsilon {
		pts = []vgcore.Point{p0, p2, p3}
		colors = []vgcore.Color{c1, c2, c2}
	} else {
		pts = []vgcore.Point{p1, p0, p3, p3, p0, p2}
		colors = []vgcore.Color{c1, c1, c2, c2, c1, c2}
	}
	for step := range radialSteps {
		progress := float64(step) * radialStep
		for i, p := range pts {
			pos := toClip.Apply(rotated(p, progress))
			r.vertices = append(r.vertices, vgcore.NewVertex(pos, vgcore.Point{}, colors[i]))
		}
	}
}

// conic covers the circle enclosing the viewport with a fan of one-degree
// wedges, each colored by sampling the gradient at its angle.
func (r *Resolver) conic(g vgcore.ConicGradient, view vgcore.Transform) (Geometry, bool) {
	gradient := g.Gradient.Normalized()
	if len(gradient.Stops) == 0 {
		return Geometry{}, false
	}
	scale := coverRadius(view.Inverted(), g.Center) / math.Cos(conicStep/2)
	toClip := vgcore.Rotation(g.Angle).
		Concatenating(vgcore.Scale(scale, scale)).
		Concatenating(vgcore.Translation(g.Center.X, g.Center.Y)).
		Concatenating(view)

	center := toClip.Apply(vgcore.Point{})
	unit := vgcore.Pt(1, 0)
	for step := range conicSteps {
		progress := float64(step) * conicStep
		p0 := toClip.Apply(rotated(unit, progress))
		p1 := toClip.Apply(rotated(unit, progress+conicStep))
		c1 := gradient.InterpolatedColor(progress/(2*math.Pi), 0)
		c2 := gradient.InterpolatedColor((progress+conicStep)/(2*math.Pi), 0)
		r.vertices = append(r.vertices,
			vgcore.NewVertex(center, vgcore.Point{}, c1),
			vgcore.NewVertex(p0, vgcore.Point{}, c1),
			vgcore.NewVertex(p1, vgcore.Point{}, c2),
		)
	}
	return Geometry{Shader: VertexColor, Vertices: r.vertices}, true
}

// rotated rotates v counterclockwise by angle radians.
func rotated(v vgcore.Point, angle float64) vgcore.Point {
	sin, cos := math.Sincos(angle)
	return vgcore.Pt(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos)
}
