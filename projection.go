// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

// ProjectionTransform is a 3x3 homogeneous transform in row-vector
// convention. The third column (M13, M23, M33) carries the projective terms.
type ProjectionTransform struct {
	M11, M12, M13 float64
	M21, M22, M23 float64
	M31, M32, M33 float64
}

// IdentityProjection returns the identity projection.
func IdentityProjection() ProjectionTransform {
	return ProjectionTransform{M11: 1, M22: 1, M33: 1}
}

// ProjectionFromTransform embeds an affine transform.
func ProjectionFromTransform(t Transform) ProjectionTransform {
	return ProjectionTransform{
		M11: t.A, M12: t.B, M13: 0,
		M21: t.C, M22: t.D, M23: 0,
		M31: t.Tx, M32: t.Ty, M33: 1,
	}
}

// IsIdentity reports whether p is exactly the identity.
func (p ProjectionTransform) IsIdentity() bool {
	return p == IdentityProjection()
}

// IsAffine reports whether the translation row carries a non-zero term.
//
// The predicate is kept as m31 != 0 || m32 != 0 for compatibility with
// existing callers even though the name suggests the projective column.
func (p ProjectionTransform) IsAffine() bool {
	return p.M31 != 0 || p.M32 != 0
}

// Concatenating returns the transform that applies p and then q.
func (p ProjectionTransform) Concatenating(q ProjectionTransform) ProjectionTransform {
	return ProjectionTransform{
		M11: p.M11*q.M11 + p.M12*q.M21 + p.M13*q.M31,
		M12: p.M11*q.M12 + p.M12*q.M22 + p.M13*q.M32,
		M13: p.M11*q.M13 + p.M12*q.M23 + p.M13*q.M33,
		M21: p.M21*q.M11 + p.M22*q.M21 + p.M23*q.M31,
		M22: p.M21*q.M12 + p.M22*q.M22 + p.M23*q.M32,
		M23: p.M21*q.M13 + p.M22*q.M23 + p.M23*q.M33,
		M31: p.M31*q.M11 + p.M32*q.M21 + p.M33*q.M31,
		M32: p.M31*q.M12 + p.M32*q.M22 + p.M33*q.M32,
		M33: p.M31*q.M13 + p.M32*q.M23 + p.M33*q.M33,
	}
}

// Determinant returns the determinant of the full 3x3 matrix.
func (p ProjectionTransform) Determinant() float64 {
	return p.M11*(p.M22*p.M33-p.M23*p.M32) -
		p.M12*(p.M21*p.M33-p.M23*p.M31) +
		p.M13*(p.M21*p.M32-p.M22*p.M31)
}

// Invert replaces p with its inverse. It returns false and leaves p
// unchanged when the determinant is zero.
func (p *ProjectionTransform) Invert() bool {
	det := p.Determinant()
	if det == 0 {
		return false
	}
	r := 1 / det
	*p = ProjectionTransform{
		M11: (p.M22*p.M33 - p.M23*p.M32) * r,
		M12: (p.M13*p.M32 - p.M12*p.M33) * r,
		M13: (p.M12*p.M23 - p.M13*p.M22) * r,
		M21: (p.M23*p.M31 - p.M21*p.M33) * r,
		M22: (p.M11*p.M33 - p.M13*p.M31) * r,
		M23: (p.M13*p.M21 - p.M11*p.M23) * r,
		M31: (p.M21*p.M32 - p.M22*p.M31) * r,
		M32: (p.M12*p.M31 - p.M11*p.M32) * r,
		M33: (p.M11*p.M22 - p.M12*p.M21) * r,
	}
	return true
}

// Inverted returns the inverse of p and whether it exists.
func (p ProjectionTransform) Inverted() (ProjectionTransform, bool) {
	ok := p.Invert()
	return p, ok
}

// Apply transforms a point with the homogeneous divide.
// A point mapped to w == 0 is returned without the divide.
func (p ProjectionTransform) Apply(pt Point) Point {
	x := pt.X*p.M11 + pt.Y*p.M21 + p.M31
	y := pt.X*p.M12 + pt.Y*p.M22 + p.M32
	w := pt.X*p.M13 + pt.Y*p.M23 + p.M33
	if w == 0 {
		return Point{X: x, Y: y}
	}
	return Point{X: x / w, Y: y / w}
}

// Affine drops the projective column.
func (p ProjectionTransform) Affine() Transform {
	return Transform{A: p.M11, B: p.M12, C: p.M21, D: p.M22, Tx: p.M31, Ty: p.M32}
}
