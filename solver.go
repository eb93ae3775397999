// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "math"

// Polynomial root solvers used by curve extrema and crossing queries.

// SolveQuadratic returns the real roots of a*x^2 + b*x + c = 0 in
// ascending order. A vanishing leading coefficient degrades to the linear
// equation, and an all-zero equation yields the single root 0.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if b == 0 && c == 0 {
			return []float64{0}
		}
		return nil
	}

	disc := sc1*sc1 - 4*sc0
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-0.5 * sc1}
	}

	// Citardauq form avoids cancellation for the smaller root.
	r0 := -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	r1 := sc0 / r0
	if !isFinite(r1) {
		return []float64{r0}
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return []float64{r0, r1}
}

// SolveCubic returns the real roots of a*x^3 + b*x^2 + c*x + d = 0.
// The roots are not sorted. A vanishing leading coefficient degrades to
// SolveQuadratic.
func SolveCubic(a, b, c, d float64) []float64 {
	p := b / a
	q := c / a
	r := d / a
	if !isFinite(p) || !isFinite(q) || !isFinite(r) {
		return SolveQuadratic(b, c, d)
	}

	// Depressed cubic t^3 + m*t + n = 0 with x = t - p/3.
	shift := p / 3
	m := q - p*shift
	n := 2*shift*shift*shift - shift*q + r

	disc := n*n/4 + m*m*m/27
	switch {
	case disc > 0:
		s := math.Sqrt(disc)
		return []float64{math.Cbrt(-n/2+s) + math.Cbrt(-n/2-s) - shift}
	case disc == 0:
		u := math.Cbrt(-n / 2)
		if u == 0 {
			return []float64{-shift}
		}
		return []float64{2*u - shift, -u - shift}
	}

	// Three real roots, trigonometric form.
	rho := 2 * math.Sqrt(-m/3)
	theta := math.Acos(clamp(3*n/(m*rho), -1, 1)) / 3
	return []float64{
		rho*math.Cos(theta) - shift,
		rho*math.Cos(theta-2*math.Pi/3) - shift,
		rho*math.Cos(theta-4*math.Pi/3) - shift,
	}
}

// SolveQuadraticInUnitInterval returns roots of a*x^2 + b*x + c = 0 in [0, 1].
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	return unitRoots(SolveQuadratic(a, b, c))
}

// SolveCubicInUnitInterval returns roots of a*x^3 + b*x^2 + c*x + d = 0 in [0, 1].
func SolveCubicInUnitInterval(a, b, c, d float64) []float64 {
	return unitRoots(SolveCubic(a, b, c, d))
}

// unitRoots keeps roots within a tolerance of [0, 1] and snaps them into it.
func unitRoots(roots []float64) []float64 {
	const tol = 1e-12
	var out []float64
	for _, r := range roots {
		if r < -tol || r > 1+tol {
			continue
		}
		out = append(out, clamp(r, 0, 1))
	}
	return out
}

// derivativeRoots returns the roots of a*t^2 + b*t + c = 0 the way curve
// bounding boxes need them: no roots for a negative discriminant, -c/b when
// the equation is linear, a single root for a zero discriminant and two
// roots otherwise. Roots are not filtered.
func derivativeRoots(a, b, c float64) []float64 {
	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case a == 0:
		return []float64{-c / b}
	case d == 0:
		return []float64{-b / (2 * a)}
	}
	s := math.Sqrt(d)
	return []float64{(s - b) / (2 * a), (-s - b) / (2 * a)}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
