// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"cmp"
	"slices"
)

// GradientOptions modify how a gradient covers the plane.
type GradientOptions uint32

const (
	// GradientRepeat repeats the stop sequence beyond [0, 1].
	GradientRepeat GradientOptions = 1 << iota
	// GradientMirror repeats the stop sequence, reversing every other period.
	GradientMirror
	// GradientLinearColor interpolates sampled colors in linear-light RGB.
	GradientLinearColor
)

// GradientStop is a color at a location along the gradient axis.
type GradientStop struct {
	Color    Color
	Location float64
}

// Gradient is a sequence of color stops. Locations may be unsorted and may
// lie outside [0, 1]; Normalized prepares them for rendering.
type Gradient struct {
	Stops []GradientStop
}

// NewGradient creates a gradient from stops.
func NewGradient(stops ...GradientStop) Gradient {
	return Gradient{Stops: stops}
}

// EvenGradient spreads colors evenly over [0, 1].
func EvenGradient(colors ...Color) Gradient {
	g := Gradient{Stops: make([]GradientStop, len(colors))}
	for i, c := range colors {
		loc := 0.0
		if len(colors) > 1 {
			loc = float64(i) / float64(len(colors)-1)
		}
		g.Stops[i] = GradientStop{Color: c, Location: loc}
	}
	return g
}

// Normalized returns the stops sorted by location, clipped to [0, 1] with
// colors interpolated at the clip points, and bracketed by stops at 0 and
// 1. Exact duplicate stops are dropped; equal locations with different
// colors are kept as hard transitions. An empty gradient stays empty.
func (g Gradient) Normalized() Gradient {
	sorted := slices.Clone(g.Stops)
	slices.SortStableFunc(sorted, func(a, b GradientStop) int {
		return cmp.Compare(a.Location, b.Location)
	})
	sorted = slices.Compact(sorted)
	if len(sorted) == 0 {
		return g
	}

	out := make([]GradientStop, 0, len(sorted)+2)
	current := sorted[0]
	if current.Location > 0 {
		out = append(out, GradientStop{Color: current.Color, Location: 0})
	}
	for _, s := range sorted {
		if s.Location > 0 && s.Location < 1 {
			if current.Location <= 0 {
				out = append(out, GradientStop{
					Color:    current.Color.Lerp(s.Color, stopFraction(current, s, 0)),
					Location: 0,
				})
			}
			out = append(out, s)
		} else if s.Location >= 1 {
			if len(out) == 0 {
				out = append(out, GradientStop{
					Color:    current.Color.Lerp(s.Color, stopFraction(current, s, 0)),
					Location: 0,
				})
			}
			out = append(out, GradientStop{
				Color:    current.Color.Lerp(s.Color, stopFraction(current, s, 1)),
				Location: 1,
			})
			break
		}
		current = s
	}
	if len(out) == 0 {
		// Every stop sits at or before 0.
		c := sorted[len(sorted)-1].Color
		return Gradient{Stops: []GradientStop{{Color: c, Location: 0}, {Color: c, Location: 1}}}
	}
	if n := len(out); out[n-1].Location < 1 {
		last := out[n-1]
		last.Location = 1
		out = append(out, last)
	}
	return Gradient{Stops: out}
}

// stopFraction returns where loc falls between a and b, or 1 when the two
// stops share a location.
func stopFraction(a, b GradientStop, loc float64) float64 {
	if b.Location == a.Location {
		return 1
	}
	return (loc - a.Location) / (b.Location - a.Location)
}

// InterpolatedColor samples normalized stops at t. Locations before the
// first stop take its color and locations past the last stop take the last
// color. With GradientLinearColor the lerp runs in linear-light RGB.
func (g Gradient) InterpolatedColor(t float64, opts GradientOptions) Color {
	if len(g.Stops) == 0 {
		return Transparent
	}
	current := g.Stops[0]
	if t > current.Location {
		for _, next := range g.Stops[1:] {
			if next.Location > t {
				f := (t - current.Location) / (next.Location - current.Location)
				if opts&GradientLinearColor != 0 {
					return current.Color.LerpLinear(next.Color, f)
				}
				return current.Color.Lerp(next.Color, f)
			}
			current = next
		}
	}
	return current.Color
}
