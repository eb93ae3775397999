// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"errors"
	"math"
	"testing"
)

func TestPathMoveToReplacesTrailingMove(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.MoveTo(5, 5)
	p.LineTo(10, 5)
	if got := len(p.Elements()); got != 2 {
		t.Fatalf("len(Elements()) = %d, want 2", got)
	}
	if mv := p.Elements()[0].(MoveTo); mv.Point != Pt(5, 5) {
		t.Errorf("first element = %+v, want MoveTo(5,5)", mv)
	}
}

func TestPathCloseCollapses(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Close().Close().Build()
	if got := len(p.Elements()); got != 4 {
		t.Errorf("len(Elements()) = %d, want 4", got)
	}
	if cur, _ := p.CurrentPoint(); cur != Pt(0, 0) {
		t.Errorf("current point after close = %v, want initial point", cur)
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadraticTo(50, 100, 100, 0)

	if got := p.ControlPointBounds(); got.Max.Y != 100 {
		t.Errorf("ControlPointBounds().Max.Y = %v, want 100", got.Max.Y)
	}
	if got := p.BoundingRect(); math.Abs(got.Max.Y-50) > 1e-12 {
		t.Errorf("BoundingRect().Max.Y = %v, want 50", got.Max.Y)
	}
	if !NewPath().BoundingRect().IsNull() {
		t.Error("empty path must have a null bounding rect")
	}
}

func TestPathContains(t *testing.T) {
	square := NewPath()
	square.AddRect(RectXYWH(0, 0, 10, 10), Identity())

	circle := NewPath()
	circle.AddEllipse(RectXYWH(0, 0, 20, 20), Identity())

	// Two squares wound the same way: overlap has winding 2.
	double := NewPath()
	double.AddRect(RectXYWH(0, 0, 10, 10), Identity())
	double.AddRect(RectXYWH(5, 5, 10, 10), Identity())

	quad := NewPath()
	quad.MoveTo(0, 0)
	quad.QuadraticTo(5, 20, 10, 0)
	quad.Close()

	tests := []struct {
		name    string
		path    *Path
		pt      Point
		evenOdd bool
		want    bool
	}{
		{"square inside", square, Pt(5, 5), false, true},
		{"square outside", square, Pt(15, 5), false, false},
		{"square left", square, Pt(-1, 5), false, false},
		{"circle center", circle, Pt(10, 10), false, true},
		{"circle corner", circle, Pt(1, 1), false, false},
		{"circle near edge", circle, Pt(10, 19.5), false, true},
		{"overlap nonzero", double, Pt(7, 7), false, true},
		{"overlap even-odd", double, Pt(7, 7), true, false},
		{"single even-odd", double, Pt(2, 2), true, true},
		{"quad inside", quad, Pt(5, 5), false, true},
		{"quad above", quad, Pt(5, 11), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.Contains(tt.pt, tt.evenOdd); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.pt, tt.evenOdd, got, tt.want)
			}
		})
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.QuadraticTo(15, 5, 10, 10)
	p.CubicTo(8, 12, 2, 12, 0.5, 10.25)
	p.Close()

	text := p.String()
	want := "0 0 m 10 0 l 15 5 10 10 q 8 12 2 12 0.5000 10.2500 c h"
	if text != want {
		t.Fatalf("String() = %q, want %q", text, want)
	}

	parsed, err := ParsePath(text)
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if parsed.String() != text {
		t.Errorf("round trip = %q, want %q", parsed.String(), text)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, in := range []string{"1 m", "1 2 3 l", "1 2 x", "0 0 m 1 2", "1 h", "NaN 1 m", "0 Inf m", "0 0 m -Inf 1 l"} {
		if _, err := ParsePath(in); !errors.Is(err, ErrPathSyntax) {
			t.Errorf("ParsePath(%q) error = %v, want ErrPathSyntax", in, err)
		}
	}
}

func TestPathApplying(t *testing.T) {
	p := BuildPath().Rect(0, 0, 10, 10).Build()
	if p.Applying(Identity()) != p {
		t.Error("Applying(identity) must return the same path")
	}
	moved := p.Offset(5, 5)
	if got := moved.BoundingRect(); got.Min != Pt(5, 5) || got.Max != Pt(15, 15) {
		t.Errorf("Offset bounds = %+v", got)
	}
}

func TestAddRoundedRect(t *testing.T) {
	for _, style := range []RoundedCornerStyle{RoundedCornerCircular, RoundedCornerContinuous} {
		p := NewPath()
		p.AddRoundedRect(RectXYWH(0, 0, 100, 50), Sz(10, 10), style, Identity())
		box := p.BoundingRect()
		if box.Min.X < -1e-9 || box.Max.X > 100+1e-9 || box.Min.Y < -1e-9 || box.Max.Y > 50+1e-9 {
			t.Errorf("style %d bounds %+v escape the rect", style, box)
		}
		if !p.Contains(Pt(50, 25), false) {
			t.Errorf("style %d does not contain its center", style)
		}
		if p.Contains(Pt(0.5, 0.5), false) {
			t.Errorf("style %d contains the cut corner", style)
		}
	}

	// Degenerate corner adds a plain rectangle.
	p := NewPath()
	p.AddRoundedRect(RectXYWH(0, 0, 10, 10), Sz(0, 5), RoundedCornerCircular, Identity())
	if got := len(p.Elements()); got != 5 {
		t.Errorf("degenerate rounded rect has %d elements, want 5", got)
	}
}

func TestAddArc(t *testing.T) {
	p := NewPath()
	p.AddArc(Pt(0, 0), 10, 0, math.Pi, false, Identity())
	end, _ := p.CurrentPoint()
	if end.Distance(Pt(-10, 0)) > 1e-9 {
		t.Errorf("half arc ends at %v, want (-10,0)", end)
	}
	// MoveTo + two quarter curves.
	if got := len(p.Elements()); got != 3 {
		t.Errorf("half arc has %d elements, want 3", got)
	}

	cw := NewPath()
	cw.AddArc(Pt(0, 0), 10, 0, math.Pi/2, true, Identity())
	if got := len(cw.Elements()); got != 4 {
		t.Errorf("clockwise three-quarter arc has %d elements, want 4", got)
	}
	if end, _ := cw.CurrentPoint(); end.Distance(Pt(0, 10)) > 1e-9 {
		t.Errorf("clockwise arc ends at %v, want (0,10)", end)
	}
}

func TestAddTangentArc(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.AddTangentArc(Pt(10, 0), Pt(10, 10), 5, Identity())
	end, _ := p.CurrentPoint()
	if end.Distance(Pt(10, 5)) > 1e-9 {
		t.Errorf("tangent arc ends at %v, want (10,5)", end)
	}
	if _, ok := p.Elements()[1].(LineTo); !ok {
		t.Errorf("tangent arc must join the current point with a line, got %T", p.Elements()[1])
	}
}

func TestPathTrimmed(t *testing.T) {
	p := BuildPath().MoveTo(0, 0).LineTo(100, 0).Build()

	half := p.Trimmed(0.25, 0.75)
	elems := half.Elements()
	if len(elems) != 2 {
		t.Fatalf("trimmed path has %d elements, want 2", len(elems))
	}
	if mv := elems[0].(MoveTo); mv.Point != Pt(25, 0) {
		t.Errorf("trim start = %v, want (25,0)", mv.Point)
	}
	if ln := elems[1].(LineTo); ln.Point != Pt(75, 0) {
		t.Errorf("trim end = %v, want (75,0)", ln.Point)
	}

	if !p.Trimmed(0.8, 0.2).IsEmpty() {
		t.Error("reversed trim must be empty")
	}
	if got := p.Trimmed(-1, 2).String(); got != p.String() {
		t.Errorf("full trim = %q, want %q", got, p.String())
	}

	for _, bounds := range [][2]float64{{math.NaN(), 1}, {0, math.NaN()}} {
		got := p.Trimmed(bounds[0], bounds[1])
		if elems := got.Elements(); len(elems) > 0 {
			if _, ok := elems[0].(MoveTo); !ok {
				t.Errorf("Trimmed(%v, %v) starts with %T, want MoveTo", bounds[0], bounds[1], elems[0])
			}
		}
	}
}
