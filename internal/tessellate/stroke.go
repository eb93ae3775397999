// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"math"

	"github.com/gogpu/vgcore"
)

// strokeInitialCapacity is the initial capacity of the vertex slice,
// measured in vertices. Every 3 consecutive vertices form one triangle.
const strokeInitialCapacity = 512

// StrokeTessellator converts a path and stroke style into an unindexed
// triangle list. Geometry is built in path space and mapped through the
// transform as it is emitted.
//
// The tessellator is designed to be reused across draws via Reset.
type StrokeTessellator struct {
	vertices []vgcore.Point

	style     vgcore.StrokeStyle
	transform vgcore.Transform
	dash      DashState
	dashing   bool
}

// NewStrokeTessellator creates a tessellator with pre-allocated capacity.
func NewStrokeTessellator() *StrokeTessellator {
	return &StrokeTessellator{
		vertices: make([]vgcore.Point, 0, strokeInitialCapacity),
	}
}

// Reset clears the tessellator state for reuse without releasing memory.
func (st *StrokeTessellator) Reset() {
	st.vertices = st.vertices[:0]
	st.dash = DashState{}
	st.dashing = false
}

// Vertices returns the emitted triangle list. The slice is reused by the
// next Tessellate call.
func (st *StrokeTessellator) Vertices() []vgcore.Point {
	return st.vertices
}

// Tessellate appends the stroke of path to the triangle list.
//
// minVisibleScale is the smallest ratio between backbuffer pixels and
// content units. Dashing is applied only when the average dash entry is at
// least one pixel long at that scale; otherwise the stroke is solid.
//
// It reports false for an empty path, a width below Epsilon, or fewer than
// 3 emitted vertices.
func (st *StrokeTessellator) Tessellate(path *vgcore.Path, style vgcore.StrokeStyle, t vgcore.Transform, minVisibleScale float64) bool {
	if path.IsEmpty() || style.Width < vgcore.Epsilon {
		return false
	}
	if minVisibleScale <= 0 {
		minVisibleScale = 1
	}

	st.style = style
	st.transform = t
	st.dash = NewDashState(style.Dash, style.DashPhase)
	st.dashing = st.dash.Enabled() && st.dash.AverageLength() >= 1/minVisibleScale

	var (
		initial, current       vgcore.Point
		hasInitial, hasCurrent bool
		initialDir, currentDir vgcore.Point
		hasInitDir, hasCurDir  bool
	)
	finishSubpath := func() {
		if !hasInitial || !hasInitDir || !hasCurrent || !hasCurDir {
			return
		}
		if st.dash.Drawing() {
			st.addCap(current, currentDir)
		}
		st.dash.Reset()
		if st.dash.Drawing() {
			st.addCap(initial, initialDir.Neg())
		}
	}
	setDirection := func(d vgcore.Point) {
		currentDir, hasCurDir = d, true
		if !hasInitDir {
			initialDir, hasInitDir = d, true
		}
	}

	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case vgcore.MoveTo:
			finishSubpath()
			initial, current = e.Point, e.Point
			hasInitial, hasCurrent = true, true
			hasInitDir, hasCurDir = false, false
			st.dash.Reset()

		case vgcore.LineTo:
			if hasCurrent {
				d := e.Point.Sub(current)
				if length := d.Length(); length > vgcore.Epsilon {
					d1 := d.Mul(1 / length)
					if hasCurDir && st.dash.Drawing() {
						st.addJoin(current, currentDir, d1)
					}
					st.addLine(current, e.Point, d1, d1)
					setDirection(d1)
				}
			}
			current, hasCurrent = e.Point, true

		case vgcore.QuadTo:
			if hasCurrent {
				curve := vgcore.QuadraticBezier{P0: current, P1: e.Control, P2: e.Point}
				if d, ok := st.addCurve(curve.ApproximateLength(0), curve.Interpolate, curve.Tangent,
					current, e.Point, currentDir, hasCurDir, curve.StartDirection(), curve.EndDirection()); ok {
					setDirection(d)
				}
			}
			current, hasCurrent = e.Point, true

		case vgcore.CubicTo:
			if hasCurrent {
				curve := vgcore.CubicBezier{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}
				if d, ok := st.addCurve(curve.ApproximateLength(0), curve.Interpolate, curve.Tangent,
					current, e.Point, currentDir, hasCurDir, curve.StartDirection(), curve.EndDirection()); ok {
					setDirection(d)
				}
			}
			current, hasCurrent = e.Point, true

		case vgcore.Close:
			if hasCurrent && hasInitial {
				st.closeSubpath(current, initial, currentDir, hasCurDir, initialDir, hasInitDir)
			}
			current = initial
			hasInitDir, hasCurDir = false, false
			st.dash.Reset()
		}
	}
	finishSubpath()

	return len(st.vertices) >= 3
}

// Stroke tessellates path with a fresh tessellator. See StrokeTessellator.
func Stroke(path *vgcore.Path, style vgcore.StrokeStyle, t vgcore.Transform, minVisibleScale float64) ([]vgcore.Point, bool) {
	st := NewStrokeTessellator()
	ok := st.Tessellate(path, style, t, minVisibleScale)
	return st.Vertices(), ok
}

// closeSubpath strokes the closing segment and joins or caps it against the
// start of the subpath depending on the dash state at both ends.
func (st *StrokeTessellator) closeSubpath(p0, p1, currentDir vgcore.Point, hasCurDir bool, initialDir vgcore.Point, hasInitDir bool) {
	var d vgcore.Point
	seg := p1.Sub(p0)
	switch length := seg.Length(); {
	case length > vgcore.Epsilon:
		d = seg.Mul(1 / length)
		if hasCurDir && st.dash.Drawing() {
			st.addJoin(p0, currentDir, d)
		}
		st.addLine(p0, p1, d, d)
	case hasCurDir:
		// The subpath already ends on its start point.
		d = currentDir
	default:
		return
	}

	if !hasInitDir {
		return
	}
	if st.dash.Drawing() {
		st.dash.Reset()
		if st.dash.Drawing() {
			st.addJoin(p1, d, initialDir)
		} else {
			st.addCap(p1, d)
		}
	} else {
		st.dash.Reset()
		if st.dash.Drawing() {
			st.addCap(p1, initialDir.Neg())
		}
	}
}

// addCurve flattens a curve at parametric steps of 1/length and strokes the
// pieces with interpolated directions. It returns the end direction and
// whether anything was stroked.
func (st *StrokeTessellator) addCurve(length float64, eval, tangent func(float64) vgcore.Point,
	start, end, currentDir vgcore.Point, hasCurDir bool, startDir, endDir vgcore.Point) (vgcore.Point, bool) {
	if length <= vgcore.Epsilon {
		return vgcore.Point{}, false
	}
	d0 := startDir
	if hasCurDir {
		d0 = currentDir
	}
	step := 1 / length
	pt0 := start
	for u := step; u < 1; u += step {
		pt1 := eval(u)
		d1 := tangent(u).Normalize()
		st.addLine(pt0, pt1, d0, d1)
		pt0, d0 = pt1, d1
	}
	st.addLine(pt0, end, d0, endDir)
	return endDir, true
}

// addLine strokes one straight piece, splitting it along dash boundaries
// when dashing is active.
func (st *StrokeTessellator) addLine(p0, p1, d0, d1 vgcore.Point) {
	length := p1.Sub(p0).Length()
	if length < vgcore.Epsilon {
		return
	}
	if !st.dashing {
		st.addSegment(p0, p1, d0, d1)
		return
	}

	var drawn float64
	start, dir0 := p0, d0
	drawCap := false
	for drawn < length {
		if st.dash.Advance() {
			drawCap = true
		}
		n := math.Min(length-drawn, st.dash.Remain)
		if n > vgcore.Epsilon {
			u := (drawn + n) / length
			end := p0.Lerp(p1, u)
			dir1 := d0.Lerp(d1, u)
			if st.dash.Drawing() {
				if drawCap {
					st.addCap(start, dir1.Neg())
					drawCap = false
				}
				st.addSegment(start, end, dir0, dir1)
				if n == st.dash.Remain {
					st.addCap(end, dir1)
				}
			}
			start, dir0 = end, dir1
		}
		drawn += n
		st.dash.Consume(n)
	}
}

// addSegment emits the quad between the offset edges at start and end.
func (st *StrokeTessellator) addSegment(start, end, dir0, dir1 vgcore.Point) {
	w := st.style.Width
	n0 := normal(dir0).Mul(w * 0.5)
	n1 := normal(dir1).Mul(w * 0.5)
	a := start.Sub(n0)
	b := end.Sub(n1)
	c := start.Add(n0)
	d := end.Add(n1)
	st.emit(c, a, d, d, a, b)
}

// addCap emits the cap at p facing direction d.
func (st *StrokeTessellator) addCap(p, d vgcore.Point) {
	w := st.style.Width
	switch st.style.Cap {
	case vgcore.LineCapRound:
		frame := vgcore.Transform{A: d.X, B: d.Y, C: -d.Y, D: d.X, Tx: p.X, Ty: p.Y}
		half := w * 0.5
		step := math.Pi / w
		pt0 := frame.Apply(vgcore.Pt(0, -half))
		for progress := 0.0; progress < math.Pi; progress += step {
			pt1 := vgcore.Rotation(progress).Concatenating(frame).Apply(vgcore.Pt(0, -half))
			st.emit(p, pt0, pt1)
			pt0 = pt1
		}
		st.emit(p, pt0, frame.Apply(vgcore.Pt(0, half)))

	case vgcore.LineCapSquare:
		frame := vgcore.Transform{A: w * d.X, B: w * d.Y, C: -w * d.Y, D: w * d.X, Tx: p.X, Ty: p.Y}
		q0 := frame.Apply(vgcore.Pt(0, 0.5))
		q1 := frame.Apply(vgcore.Pt(0, -0.5))
		q2 := frame.Apply(vgcore.Pt(0.5, 0.5))
		q3 := frame.Apply(vgcore.Pt(0.5, -0.5))
		st.emit(q0, q1, q2, q2, q1, q3)
	}
}

// addJoin emits the join at p between incoming direction dir0 and outgoing
// direction dir1. The join is built on the outer side of the turn.
func (st *StrokeTessellator) addJoin(p, dir0, dir1 vgcore.Point) {
	if 1-dir0.Dot(dir1) < vgcore.Epsilon {
		return
	}
	w := st.style.Width

	join := st.style.Join
	if join == vgcore.LineJoinMiter {
		angle := math.Acos(clampUnit(dir0.Neg().Dot(dir1)))
		s := math.Sin(angle * 0.5)
		if s <= vgcore.Epsilon || w/s > st.style.MiterLimit*w {
			join = vgcore.LineJoinBevel
		}
	}

	r1, r2 := absoluteAngle(dir0), absoluteAngle(dir1)
	if math.Abs(r1-r2) > math.Pi {
		if r1 > r2 {
			r2 += 2 * math.Pi
		} else {
			r1 += 2 * math.Pi
		}
	}
	// side selects the offset edge on the outside of the turn.
	side := -0.5
	if r1 > r2 {
		side = 0.5
	}
	e0 := p.Add(normal(dir0).Mul(w * side))
	e1 := p.Add(normal(dir1).Mul(w * side))

	switch join {
	case vgcore.LineJoinBevel:
		if r1 > r2 {
			st.emit(p, e1, e0)
		} else {
			st.emit(p, e0, e1)
		}

	case vgcore.LineJoinRound:
		step := 1 / w
		half := w * side
		prev := e0
		for progress := step; progress < 1; progress += step {
			next := p.Add(rotated(vgcore.Pt(0, half), vgcore.Lerp(r1, r2, progress)))
			st.emitWound(r1 > r2, p, prev, next)
			prev = next
		}
		st.emitWound(r1 > r2, p, prev, p.Add(rotated(vgcore.Pt(0, half), r2)))

	case vgcore.LineJoinMiter:
		s := dir0.Cross(dir1)
		u := e1.Sub(e0).Cross(dir1) / s
		tip := e0.Add(dir0.Mul(u))
		if r1 > r2 {
			st.emit(p, tip, e0, p, e1, tip)
		} else {
			st.emit(p, e0, tip, p, tip, e1)
		}
	}
}

// emitWound emits (p, a, b) for a counterclockwise turn and (p, b, a)
// otherwise, keeping round joins consistently wound.
func (st *StrokeTessellator) emitWound(reversed bool, p, a, b vgcore.Point) {
	if reversed {
		st.emit(p, b, a)
		return
	}
	st.emit(p, a, b)
}

// emit appends path-space points mapped through the transform.
func (st *StrokeTessellator) emit(pts ...vgcore.Point) {
	for _, p := range pts {
		st.vertices = append(st.vertices, st.transform.Apply(p))
	}
}

// normal returns d rotated a quarter turn counterclockwise.
func normal(d vgcore.Point) vgcore.Point {
	return vgcore.Pt(-d.Y, d.X)
}

// rotated rotates v by angle radians.
func rotated(v vgcore.Point, angle float64) vgcore.Point {
	sin, cos := math.Sincos(angle)
	return vgcore.Pt(v.X*cos-v.Y*sin, v.X*sin+v.Y*cos)
}

// absoluteAngle returns the angle of a unit vector in [0, 2π).
func absoluteAngle(d vgcore.Point) float64 {
	a := math.Acos(clampUnit(d.X))
	if d.Y < 0 {
		return 2*math.Pi - a
	}
	return a
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
