// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "math"

// Transform is a 2D affine transformation in row-vector convention:
//
//	| a  b  0 |
//	| c  d  0 |
//	| tx ty 1 |
//
// A point is transformed as
//
//	x' = x*a + y*c + tx
//	y' = x*b + y*d + ty
//
// Composition reads left to right: t.Concatenating(u) applies t first and
// then u. The zero value is not the identity; use Identity.
type Transform struct {
	A, B   float64
	C, D   float64
	Tx, Ty float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translation creates a translation transform.
func Translation(x, y float64) Transform {
	return Transform{A: 1, D: 1, Tx: x, Ty: y}
}

// Scale creates a scaling transform.
func Scale(x, y float64) Transform {
	return Transform{A: x, D: y}
}

// Rotation creates a rotation transform (angle in radians).
func Rotation(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{A: cos, B: sin, C: -sin, D: cos}
}

// Concatenating returns the transform that applies t and then t2.
func (t Transform) Concatenating(t2 Transform) Transform {
	return Transform{
		A:  t.A*t2.A + t.B*t2.C,
		B:  t.A*t2.B + t.B*t2.D,
		C:  t.C*t2.A + t.D*t2.C,
		D:  t.C*t2.B + t.D*t2.D,
		Tx: t.Tx*t2.A + t.Ty*t2.C + t2.Tx,
		Ty: t.Tx*t2.B + t.Ty*t2.D + t2.Ty,
	}
}

// Determinant returns the determinant of the linear part.
func (t Transform) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Inverted returns the inverse transform.
//
// When the determinant is exactly zero the linear part of the result is the
// identity and the translation is computed against that identity, so the
// result only undoes the translation. Inverted never fails.
func (t Transform) Inverted() Transform {
	det := t.Determinant()
	inv := Identity()
	if det != 0 {
		r := 1 / det
		inv.A = t.D * r
		inv.B = -t.B * r
		inv.C = -t.C * r
		inv.D = t.A * r
	}
	inv.Tx = -(t.Tx*inv.A + t.Ty*inv.C)
	inv.Ty = -(t.Tx*inv.B + t.Ty*inv.D)
	return inv
}

// Rotated returns t followed by a rotation.
func (t Transform) Rotated(angle float64) Transform {
	return t.Concatenating(Rotation(angle))
}

// Scaled returns t followed by a scale.
func (t Transform) Scaled(x, y float64) Transform {
	return t.Concatenating(Scale(x, y))
}

// Translated returns t followed by a translation.
func (t Transform) Translated(x, y float64) Transform {
	return t.Concatenating(Translation(x, y))
}

// Apply applies the transformation to a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: p.X*t.A + p.Y*t.C + t.Tx,
		Y: p.X*t.B + p.Y*t.D + t.Ty,
	}
}

// ApplyVector applies the transformation to a vector (no translation).
func (t Transform) ApplyVector(p Point) Point {
	return Point{
		X: p.X*t.A + p.Y*t.C,
		Y: p.X*t.B + p.Y*t.D,
	}
}

// IsIdentity reports whether t is exactly the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// ViewTransform maps content coordinates into clip space [-1,1]x[-1,1] with
// the Y axis pointing up. contentScale is clamped to at least 1 on each axis.
func ViewTransform(contentOffset Point, contentScale Size) Transform {
	sx := math.Max(contentScale.Width, 1)
	sy := math.Max(contentScale.Height, 1)
	return Identity().
		Translated(contentOffset.X, contentOffset.Y).
		Scaled(1/sx, 1/sy).
		Scaled(2, -2).
		Translated(-1, 1)
}
