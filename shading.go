// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import "image"

// Shading describes what fills the area covered by a fill or stroke.
// It is a closed set: SolidColor, LinearGradient, RadialGradient,
// ConicGradient, TiledImage and Palette.
type Shading interface {
	shadingMarker()
}

// SolidColor fills with a single color.
type SolidColor struct {
	Color Color
}

// LinearGradient varies color along the line from Start to End.
type LinearGradient struct {
	Gradient   Gradient
	Start, End Point
	Options    GradientOptions
}

// RadialGradient varies color between two concentric circles.
type RadialGradient struct {
	Gradient    Gradient
	Center      Point
	StartRadius float64
	EndRadius   float64
	Options     GradientOptions
}

// ConicGradient varies color with the angle around Center, starting at Angle.
type ConicGradient struct {
	Gradient Gradient
	Center   Point
	Angle    float64
}

// ColorMatrix is a 4x5 row-major matrix applied to straight RGBA colors:
// each output channel is the dot product of a row with (r, g, b, a, 1).
type ColorMatrix [20]float64

// IdentityColorMatrix returns the matrix that leaves colors unchanged.
func IdentityColorMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Apply transforms a color by the matrix.
func (m ColorMatrix) Apply(c Color) Color {
	in := [5]float64{c.R, c.G, c.B, c.A, 1}
	var out [4]float64
	for row := range 4 {
		for col, v := range in {
			out[row] += m[row*5+col] * v
		}
	}
	return Color{R: out[0], G: out[1], B: out[2], A: out[3]}
}

// TiledImage fills with an image placed at Origin in content space.
// SourceRect selects the part of the image to use (the whole image when
// empty) and Scale sizes one source pixel in content units.
//
// Single-channel images (*image.Alpha, *image.Gray) are treated as
// coverage masks: the red channel becomes alpha and Tint supplies the color.
type TiledImage struct {
	Image      image.Image
	Origin     Point
	SourceRect image.Rectangle
	Scale      float64
	Tint       Color

	// ColorMatrix, when set, is applied to every sampled color.
	ColorMatrix *ColorMatrix
	// BlurRadius, when positive, blurs the image by this many source pixels.
	BlurRadius float64
}

// Palette resolves to its first entry. An empty palette draws nothing.
type Palette []Shading

func (SolidColor) shadingMarker()     {}
func (LinearGradient) shadingMarker() {}
func (RadialGradient) shadingMarker() {}
func (ConicGradient) shadingMarker()  {}
func (TiledImage) shadingMarker()     {}
func (Palette) shadingMarker()        {}

// Solid creates a SolidColor shading.
func Solid(c Color) SolidColor {
	return SolidColor{Color: c}
}

// Linear creates a LinearGradient shading.
func Linear(g Gradient, start, end Point, opts GradientOptions) LinearGradient {
	return LinearGradient{Gradient: g, Start: start, End: end, Options: opts}
}

// Radial creates a RadialGradient shading.
func Radial(g Gradient, center Point, startRadius, endRadius float64, opts GradientOptions) RadialGradient {
	return RadialGradient{Gradient: g, Center: center, StartRadius: startRadius, EndRadius: endRadius, Options: opts}
}

// Conic creates a ConicGradient shading.
func Conic(g Gradient, center Point, angle float64) ConicGradient {
	return ConicGradient{Gradient: g, Center: center, Angle: angle}
}

// Image creates a TiledImage shading of the whole image at unit scale.
func Image(img image.Image, origin Point) TiledImage {
	return TiledImage{Image: img, Origin: origin, Scale: 1, Tint: White}
}

// Resolve unwraps palettes down to a concrete shading. It returns nil for
// an empty palette.
func Resolve(s Shading) Shading {
	for {
		p, ok := s.(Palette)
		if !ok {
			return s
		}
		if len(p) == 0 {
			return nil
		}
		s = p[0]
	}
}
