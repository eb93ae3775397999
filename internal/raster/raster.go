// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster executes the two-pass stencil protocol on the CPU.
//
// A Rasterizer owns a premultiplied RGBA canvas and an 8-bit stencil plane
// of the same size. FillStencil and StrokeStencil accumulate winding counts
// from clip-space triangles, and Shade blends shading geometry wherever a
// stencil test passes. Triangles are scan converted at pixel centers with
// the top-left rule, so adjacent triangles of a mesh never cover a pixel
// twice and never leave a gap between them.
package raster

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/vgcore"
)

// Rasterizer is a software render target with a stencil plane.
type Rasterizer struct {
	width   int
	height  int
	color   *image.RGBA
	stencil []uint8
}

// NewRasterizer creates a rasterizer for the given dimensions. The canvas
// starts transparent and the stencil zeroed.
func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{}
	r.Resize(width, height)
	return r
}

// Resize reallocates the canvas and stencil plane when the size changes.
// It reports whether anything was reallocated.
func (r *Rasterizer) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	if r.color != nil && width == r.width && height == r.height {
		return false
	}
	r.width, r.height = width, height
	r.color = image.NewRGBA(image.Rect(0, 0, width, height))
	r.stencil = make([]uint8, width*height)
	return true
}

// Size returns the canvas dimensions in pixels.
func (r *Rasterizer) Size() (width, height int) {
	return r.width, r.height
}

// Image returns the canvas. The pixels are premultiplied and the image is
// shared with the rasterizer.
func (r *Rasterizer) Image() *image.RGBA {
	return r.color
}

// Clear fills the canvas with c.
func (r *Rasterizer) Clear(c vgcore.Color) {
	draw.Draw(r.color, r.color.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// StencilAt returns the stencil value at pixel (x, y), or 0 outside the
// canvas.
func (r *Rasterizer) StencilAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0
	}
	return r.stencil[y*r.width+x]
}

// clearStencil resets the stencil plane to 0.
func (r *Rasterizer) clearStencil() {
	clear(r.stencil)
}
