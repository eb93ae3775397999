// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
)

// StencilTest selects which winding values let the shading pass write.
type StencilTest = shading.StencilTest

// Stencil tests. The reference value is always 0.
const (
	StencilIgnore  = shading.StencilIgnore
	StencilNonZero = shading.StencilNonZero
	StencilEvenOdd = shading.StencilEvenOdd
	StencilZero    = shading.StencilZero
	StencilOdd     = shading.StencilOdd
)

// Target is a color surface with an 8-bit stencil plane that executes the
// two-pass protocol.
//
// Pass 1 (FillStencil or StrokeStencil) clears the stencil plane and writes
// winding counts for clip-space triangles. Pass 2 (Shade) blends geometry
// wherever the stencil test passes. Colors are stored premultiplied.
//
// Targets are not safe for concurrent use.
type Target interface {
	// Size returns the target size in pixels.
	Size() (width, height int)

	// FillStencil counts the winding of an indexed mesh: front faces
	// increment, back faces decrement, both wrapping.
	FillStencil(vertices []vgcore.Point, indices []uint32) bool

	// StrokeStencil counts the overlap of an unindexed triangle list,
	// clamping at 255.
	StrokeStencil(vertices []vgcore.Point) bool

	// Shade blends g wherever test passes.
	Shade(g shading.Geometry, test StencilTest) bool

	// Clear fills the color surface.
	Clear(c vgcore.Color)

	// Image returns the color surface as premultiplied RGBA.
	Image() (*image.RGBA, error)
}
