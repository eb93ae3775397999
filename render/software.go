// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/raster"
	"github.com/gogpu/vgcore/internal/shading"
)

// SoftwareTarget is a CPU-backed target over an *image.RGBA canvas.
//
// Example:
//
//	target := render.NewSoftwareTarget(800, 600)
//	ctx := render.NewContext(target)
//	// ... draw ...
//	img, _ := target.Image()
type SoftwareTarget struct {
	r *raster.Rasterizer
}

// NewSoftwareTarget creates a transparent target of the given size.
func NewSoftwareTarget(width, height int) *SoftwareTarget {
	return &SoftwareTarget{r: raster.NewRasterizer(width, height)}
}

// Size returns the target size in pixels.
func (t *SoftwareTarget) Size() (width, height int) {
	return t.r.Size()
}

// Resize changes the target size. The contents are not preserved when the
// size changes.
func (t *SoftwareTarget) Resize(width, height int) {
	t.r.Resize(width, height)
}

// FillStencil counts the winding of an indexed clip-space mesh.
func (t *SoftwareTarget) FillStencil(vertices []vgcore.Point, indices []uint32) bool {
	return t.r.FillStencil(vertices, indices)
}

// StrokeStencil counts the overlap of a clip-space triangle list.
func (t *SoftwareTarget) StrokeStencil(vertices []vgcore.Point) bool {
	return t.r.StrokeStencil(vertices)
}

// Shade blends g wherever test passes.
func (t *SoftwareTarget) Shade(g shading.Geometry, test StencilTest) bool {
	return t.r.Shade(g, test)
}

// Clear fills the canvas with c.
func (t *SoftwareTarget) Clear(c vgcore.Color) {
	t.r.Clear(c)
}

// Image returns the canvas. It shares memory with the target.
func (t *SoftwareTarget) Image() (*image.RGBA, error) {
	return t.r.Image(), nil
}

// StencilAt returns the stencil value at a pixel, 0 outside the target.
func (t *SoftwareTarget) StencilAt(x, y int) uint8 {
	return t.r.StencilAt(x, y)
}

// Ensure SoftwareTarget implements Target.
var _ Target = (*SoftwareTarget)(nil)
