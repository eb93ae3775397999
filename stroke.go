// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "math"

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a semicircle around the endpoint.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillStyle selects the winding rule used to fill a path.
type FillStyle struct {
	// EvenOdd selects the even-odd rule instead of non-zero winding.
	EvenOdd bool
	// Antialiased is advisory; targets without coverage antialiasing ignore it.
	Antialiased bool
}

// DefaultFillStyle returns non-zero winding with antialiasing requested.
func DefaultFillStyle() FillStyle {
	return FillStyle{Antialiased: true}
}

// StrokeStyle defines the style for stroking paths.
type StrokeStyle struct {
	// Width is the line width. Strokes narrower than Epsilon draw nothing.
	Width float64

	// Cap is the shape of open subpath endpoints and dash ends.
	Cap LineCap

	// Join is the shape of corners between segments.
	Join LineJoin

	// MiterLimit bounds miter joins as a multiple of Width before they fall
	// back to bevels.
	MiterLimit float64

	// Dash holds alternating draw and gap lengths. Negative entries are used
	// by magnitude. Empty means a solid line.
	Dash []float64

	// DashPhase is the starting offset into the dash pattern and may be
	// negative.
	DashPhase float64
}

// DefaultStrokeStyle returns a solid 1-unit line with butt caps and miter
// joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// WithWidth returns a copy of the style with the given width.
func (s StrokeStyle) WithWidth(w float64) StrokeStyle {
	s.Width = w
	return s
}

// WithCap returns a copy of the style with the given line cap.
func (s StrokeStyle) WithCap(lineCap LineCap) StrokeStyle {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the style with the given line join.
func (s StrokeStyle) WithJoin(join LineJoin) StrokeStyle {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the style with the given miter limit.
func (s StrokeStyle) WithMiterLimit(limit float64) StrokeStyle {
	s.MiterLimit = limit
	return s
}

// WithDash returns a copy of the style with the given pattern and phase.
func (s StrokeStyle) WithDash(phase float64, lengths ...float64) StrokeStyle {
	s.Dash = append([]float64(nil), lengths...)
	s.DashPhase = phase
	return s
}

// DashPatternLength returns the sum of the dash lengths by magnitude.
func (s StrokeStyle) DashPatternLength() float64 {
	var total float64
	for _, d := range s.Dash {
		total += math.Abs(d)
	}
	return total
}
