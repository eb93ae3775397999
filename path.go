// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrPathSyntax is returned by ParsePath for malformed path text.
var ErrPathSyntax = errors.New("vgcore: invalid path syntax")

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bézier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is an ordered list of drawing commands forming zero or more open or
// closed subpaths. A Path is built once and then read by the tessellators;
// it is not safe for concurrent mutation.
type Path struct {
	elements []PathElement

	initial, current Point
	hasCurrent       bool

	controlBounds Rect // includes control points
	bounds        Rect // tight curve bounds
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements:      make([]PathElement, 0, 16),
		controlBounds: NullRect(),
		bounds:        NullRect(),
	}
}

// MoveTo starts a new subpath. A trailing MoveTo is replaced.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	if n := len(p.elements); n > 0 {
		if _, ok := p.elements[n-1].(MoveTo); ok {
			p.elements = p.elements[:n-1]
		}
	}
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.initial = pt
	p.current = pt
	p.hasCurrent = true
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	if p.hasCurrent {
		p.controlBounds = p.controlBounds.Expand(p.current, pt)
		p.bounds = p.bounds.Expand(p.current, pt)
		p.current = pt
	}
}

// QuadraticTo draws a quadratic Bézier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl, pt := Pt(cx, cy), Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	if p.hasCurrent {
		p.controlBounds = p.controlBounds.Expand(p.current, ctrl, pt)
		p.bounds = p.bounds.Union(QuadraticBezier{p.current, ctrl, pt}.BoundingBox())
		p.current = pt
	}
}

// CubicTo draws a cubic Bézier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c1, c2, pt := Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y)
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
	if p.hasCurrent {
		p.controlBounds = p.controlBounds.Expand(p.current, c1, c2, pt)
		p.bounds = p.bounds.Union(CubicBezier{p.current, c1, c2, pt}.BoundingBox())
		p.current = pt
	}
}

// Close closes the current subpath. Consecutive closes collapse into one.
func (p *Path) Close() {
	if n := len(p.elements); n > 0 {
		if _, ok := p.elements[n-1].(Close); !ok {
			p.elements = append(p.elements, Close{})
		}
	}
	p.current = p.initial
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	*p = Path{
		elements:      p.elements[:0],
		controlBounds: NullRect(),
		bounds:        NullRect(),
	}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// CurrentPoint returns the current point and whether one exists.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.hasCurrent
}

// InitialPoint returns the start of the current subpath and whether one exists.
func (p *Path) InitialPoint() (Point, bool) {
	return p.initial, p.hasCurrent
}

// ControlPointBounds returns the smallest rectangle enclosing every point
// of the path including Bézier control points.
func (p *Path) ControlPointBounds() Rect {
	return p.controlBounds
}

// BoundingRect returns the smallest rectangle enclosing the path outline,
// excluding control points that lie off the curves.
func (p *Path) BoundingRect() Rect {
	return p.bounds
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	c := *p
	c.elements = append(make([]PathElement, 0, len(p.elements)), p.elements...)
	return &c
}

// AddPath appends every element of q transformed by t.
func (p *Path) AddPath(q *Path, t Transform) {
	for _, elem := range q.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := t.Apply(e.Point)
			p.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := t.Apply(e.Point)
			p.LineTo(pt.X, pt.Y)
		case QuadTo:
			c, pt := t.Apply(e.Control), t.Apply(e.Point)
			p.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
		case CubicTo:
			c1, c2, pt := t.Apply(e.Control1), t.Apply(e.Control2), t.Apply(e.Point)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			p.Close()
		}
	}
}

// Applying returns the path transformed by t. The identity returns p itself.
func (p *Path) Applying(t Transform) *Path {
	if t.IsIdentity() {
		return p
	}
	result := NewPath()
	result.AddPath(p, t)
	return result
}

// Offset returns the path translated by (dx, dy).
func (p *Path) Offset(dx, dy float64) *Path {
	return p.Applying(Translation(dx, dy))
}

// Contains reports whether pt lies inside the path under the non-zero
// winding rule, or the even-odd rule when evenOdd is set. Open subpaths
// are only closed by an explicit Close.
func (p *Path) Contains(pt Point, evenOdd bool) bool {
	winding := 0

	// line counts edges crossing the leftward ray from pt, treating each
	// edge as half-open in y so shared vertices are counted once.
	line := func(p0, p1 Point) {
		if min(p0.Y, p1.Y) > pt.Y || max(p0.Y, p1.Y) <= pt.Y || min(p0.X, p1.X) > pt.X {
			return
		}
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		x := p0.X
		if math.Abs(dx) >= Epsilon {
			x = p0.X + (pt.Y-p0.Y)*dx/dy
		}
		if x <= pt.X {
			winding += windingStep(dy)
		}
	}

	// curve splits a curve into y-monotonic pieces and applies the same
	// half-open rule as line to each piece.
	curve := func(extrema, roots []float64, eval func(float64) Point) {
		bounds := append([]float64{0}, extrema...)
		bounds = append(bounds, 1)
		slices.Sort(bounds)
		for i := 1; i < len(bounds); i++ {
			ta, tb := bounds[i-1], bounds[i]
			ya, yb := eval(ta).Y, eval(tb).Y
			if min(ya, yb) > pt.Y || max(ya, yb) <= pt.Y {
				continue
			}
			t := pieceRoot(roots, ta, tb, ya, yb, pt.Y)
			if eval(t).X <= pt.X {
				winding += windingStep(yb - ya)
			}
		}
	}

	var start, cur Point
	has := false
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start, cur, has = e.Point, e.Point, true
		case LineTo:
			if has {
				line(cur, e.Point)
				cur = e.Point
			}
		case QuadTo:
			if has {
				q := QuadraticBezier{cur, e.Control, e.Point}
				if crossesRow(BoundingRect(q.P0, q.P1, q.P2), pt) {
					curve(q.yExtrema(), q.IntersectHorizontal(pt.Y, math.Inf(-1), math.Inf(1)), q.Interpolate)
				}
				cur = e.Point
			}
		case CubicTo:
			if has {
				c := CubicBezier{cur, e.Control1, e.Control2, e.Point}
				if crossesRow(BoundingRect(c.P0, c.P1, c.P2, c.P3), pt) {
					curve(c.yExtrema(), c.IntersectHorizontal(pt.Y, math.Inf(-1), math.Inf(1)), c.Interpolate)
				}
				cur = e.Point
			}
		case Close:
			if has {
				line(cur, start)
			}
			cur = start
		}
	}

	if evenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// windingStep returns the winding contribution of an edge going in
// direction dy: downward edges count -1, everything else +1.
func windingStep(dy float64) int {
	if dy > 0 {
		return -1
	}
	return 1
}

func crossesRow(bbox Rect, pt Point) bool {
	return bbox.Min.X <= pt.X && bbox.Min.Y <= pt.Y && bbox.Max.Y > pt.Y
}

// pieceRoot picks the solver root inside the monotonic piece [ta, tb]. When
// rounding pushed every root out of the piece, the end closer to y wins.
func pieceRoot(roots []float64, ta, tb, ya, yb, y float64) float64 {
	const tol = 1e-9
	for _, t := range roots {
		if t >= ta-tol && t <= tb+tol {
			return clamp(t, ta, tb)
		}
	}
	if math.Abs(ya-y) <= math.Abs(yb-y) {
		return ta
	}
	return tb
}

// String encodes the path as operands followed by an operator:
// "x y m", "x y l", "cx cy x y q", "c1x c1y c2x c2y x y c" and "h".
func (p *Path) String() string {
	var sb strings.Builder
	emit := func(op string, pts ...Point) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		for _, pt := range pts {
			sb.WriteString(formatCoord(pt.X))
			sb.WriteByte(' ')
			sb.WriteString(formatCoord(pt.Y))
			sb.WriteByte(' ')
		}
		sb.WriteString(op)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			emit("m", e.Point)
		case LineTo:
			emit("l", e.Point)
		case QuadTo:
			emit("q", e.Control, e.Point)
		case CubicTo:
			emit("c", e.Control1, e.Control2, e.Point)
		case Close:
			emit("h")
		}
	}
	return sb.String()
}

func formatCoord(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// ParsePath decodes the text form produced by Path.String.
func ParsePath(s string) (*Path, error) {
	p := NewPath()
	var operands []float64
	want := func(tok string, n int) error {
		if len(operands) != n {
			return fmt.Errorf("%w: %q takes %d operands, got %d", ErrPathSyntax, tok, n, len(operands))
		}
		return nil
	}
	for _, tok := range strings.Fields(s) {
		var err error
		switch tok {
		case "m":
			if err = want(tok, 2); err == nil {
				p.MoveTo(operands[0], operands[1])
			}
		case "l":
			if err = want(tok, 2); err == nil {
				p.LineTo(operands[0], operands[1])
			}
		case "q":
			if err = want(tok, 4); err == nil {
				p.QuadraticTo(operands[0], operands[1], operands[2], operands[3])
			}
		case "c":
			if err = want(tok, 6); err == nil {
				p.CubicTo(operands[0], operands[1], operands[2], operands[3], operands[4], operands[5])
			}
		case "h":
			if err = want(tok, 0); err == nil {
				p.Close()
			}
		default:
			v, perr := strconv.ParseFloat(tok, 64)
			if perr != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrPathSyntax, tok)
			}
			if !isFinite(v) {
				return nil, fmt.Errorf("%w: %q is not a finite number", ErrPathSyntax, tok)
			}
			operands = append(operands, v)
			continue
		}
		if err != nil {
			return nil, err
		}
		operands = operands[:0]
	}
	if len(operands) > 0 {
		return nil, fmt.Errorf("%w: %d dangling operands", ErrPathSyntax, len(operands))
	}
	return p, nil
}
