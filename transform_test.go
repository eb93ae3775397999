// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"math"
	"math/rand/v2"
	"testing"
)

func transformNear(a, b Transform, eps float64) bool {
	return math.Abs(a.A-b.A) < eps && math.Abs(a.B-b.B) < eps &&
		math.Abs(a.C-b.C) < eps && math.Abs(a.D-b.D) < eps &&
		math.Abs(a.Tx-b.Tx) < eps && math.Abs(a.Ty-b.Ty) < eps
}

func TestTransformInverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 500 {
		m := Transform{
			A: rng.Float64()*4 - 2, B: rng.Float64()*4 - 2,
			C: rng.Float64()*4 - 2, D: rng.Float64()*4 - 2,
			Tx: rng.Float64()*200 - 100, Ty: rng.Float64()*200 - 100,
		}
		if math.Abs(m.Determinant()) < 1e-3 {
			continue
		}
		got := m.Concatenating(m.Inverted())
		if !transformNear(got, Identity(), 1e-8) {
			t.Fatalf("case %d: %+v * inverse = %+v", i, m, got)
		}
	}
}

func TestTransformSingularInverse(t *testing.T) {
	m := Transform{A: 1, B: 2, C: 2, D: 4, Tx: 5, Ty: -3}
	got := m.Inverted()
	want := Transform{A: 1, D: 1, Tx: -5, Ty: 3}
	if got != want {
		t.Errorf("Inverted() = %+v, want %+v", got, want)
	}
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translation(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90", Rotation(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"scale then translate", Scale(2, 2).Translated(1, 0), Pt(1, 1), Pt(3, 2)},
		{"translate then scale", Translation(1, 0).Scaled(2, 2), Pt(1, 1), Pt(4, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if got.Distance(tt.want) > 1e-12 {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformCompositionOrder(t *testing.T) {
	a := Rotation(0.3)
	b := Translation(4, 7)
	c := Scale(2, 0.5)

	left := a.Concatenating(b).Concatenating(c)
	right := a.Concatenating(b.Concatenating(c))
	if !transformNear(left, right, 1e-12) {
		t.Errorf("concatenation is not associative: %+v vs %+v", left, right)
	}
	if transformNear(a.Concatenating(b), b.Concatenating(a), 1e-9) {
		t.Error("rotation and translation unexpectedly commute")
	}

	p := Pt(1, 2)
	if got, want := a.Concatenating(b).Apply(p), b.Apply(a.Apply(p)); got.Distance(want) > 1e-12 {
		t.Errorf("a.Concatenating(b) applies b after a: got %v, want %v", got, want)
	}
}

func TestTransformIsIdentityExact(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity() is not identity")
	}
	almost := Identity()
	almost.Tx = 1e-300
	if almost.IsIdentity() {
		t.Error("IsIdentity must compare exactly")
	}
	if (Transform{}).IsIdentity() {
		t.Error("zero transform reported as identity")
	}
}

func TestViewTransform(t *testing.T) {
	v := ViewTransform(Point{}, Sz(200, 100))
	tests := []struct {
		in, want Point
	}{
		{Pt(0, 0), Pt(-1, 1)},
		{Pt(200, 100), Pt(1, -1)},
		{Pt(100, 50), Pt(0, 0)},
	}
	for _, tt := range tests {
		if got := v.Apply(tt.in); got.Distance(tt.want) > 1e-12 {
			t.Errorf("ViewTransform.Apply(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Content scale below one is clamped.
	small := ViewTransform(Point{}, Sz(0.5, 0))
	if got := small.Apply(Pt(1, 1)); got.Distance(Pt(1, -1)) > 1e-12 {
		t.Errorf("clamped ViewTransform.Apply(1,1) = %v, want (1,-1)", got)
	}
}
