// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA(0, 0, 0, 0)
)

// RGBA implements color.Color with 16-bit premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA64{
		R: unit16(c.R),
		G: unit16(c.G),
		B: unit16(c.B),
		A: unit16(c.A),
	}.RGBA()
}

// FromColor converts any color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	alpha := 1.0
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:6]
	}
	cf, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: cf.R, G: cf.G, B: cf.B, A: alpha}, nil
}

// Premultiply returns the color with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Lerp interpolates each component as c*(1-t) + other*t.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: Lerp(c.R, other.R, t),
		G: Lerp(c.G, other.G, t),
		B: Lerp(c.B, other.B, t),
		A: Lerp(c.A, other.A, t),
	}
}

// LerpLinear interpolates RGB in linear light and alpha directly.
func (c Color) LerpLinear(other Color, t float64) Color {
	a := colorful.Color{R: clamp(c.R, 0, 1), G: clamp(c.G, 0, 1), B: clamp(c.B, 0, 1)}
	b := colorful.Color{R: clamp(other.R, 0, 1), G: clamp(other.G, 0, 1), B: clamp(other.B, 0, 1)}
	ar, ag, ab := a.LinearRgb()
	br, bg, bb := b.LinearRgb()
	m := colorful.LinearRgb(Lerp(ar, br, t), Lerp(ag, bg, t), Lerp(ab, bb, t))
	return Color{R: m.R, G: m.G, B: m.B, A: Lerp(c.A, other.A, t)}
}

// Float32 returns the components as a vertex attribute.
func (c Color) Float32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func unit16(v float64) uint16 {
	return uint16(clamp(v, 0, 1)*0xffff + 0.5)
}
