// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// path_builder.go

package vgcore

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining.
type PathBuilder struct {
	path *Path
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(x, y)
	return b
}

// QuadTo draws a quadratic Bézier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.QuadraticTo(cx, cy, x, y)
	return b
}

// CubicTo draws a cubic Bézier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Rect adds a rectangle.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	b.path.AddRect(RectXYWH(x, y, w, h), Identity())
	return b
}

// RoundRect adds a rectangle with circular corners of radius r.
func (b *PathBuilder) RoundRect(x, y, w, h, r float64) *PathBuilder {
	b.path.AddRoundedRect(RectXYWH(x, y, w, h), Sz(r, r), RoundedCornerCircular, Identity())
	return b
}

// Circle adds a circle.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) *PathBuilder {
	b.path.AddEllipse(RectXYWH(cx-rx, cy-ry, 2*rx, 2*ry), Identity())
	return b
}

// Arc adds a counter-clockwise arc between two angles in radians.
func (b *PathBuilder) Arc(cx, cy, r, angle1, angle2 float64) *PathBuilder {
	b.path.AddArc(Pt(cx, cy), r, angle1, angle2, false, Identity())
	return b
}

// Transform replaces the path built so far with its transformed copy.
func (b *PathBuilder) Transform(t Transform) *PathBuilder {
	b.path = b.path.Applying(t)
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}
