// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/gpu"
	"github.com/gogpu/vgcore/internal/shading"
)

// GPUTarget draws into a color texture on the device of a DeviceContext.
//
// Draws are submitted immediately; Image waits for them to complete.
// GPUTarget is not safe for concurrent use.
type GPUTarget struct {
	dc     *DeviceContext
	color  *gpu.ColorTarget
	raster *gpu.StencilRasterizer
}

// NewGPUTarget creates a width x height target. It fails when the pipeline
// cache of dc is unavailable.
func NewGPUTarget(dc *DeviceContext, width, height int) (*GPUTarget, error) {
	if dc == nil {
		return nil, ErrNilDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid target size %dx%d", width, height)
	}
	cache := dc.Pipelines()
	if cache == nil {
		return nil, ErrPipelineCacheUnavailable
	}
	color, err := gpu.NewColorTarget(dc.device, width, height)
	if err != nil {
		return nil, fmt.Errorf("create gpu target: %w", err)
	}
	raster, err := gpu.NewStencilRasterizer(dc.device, dc.queue, cache)
	if err != nil {
		color.Destroy()
		return nil, fmt.Errorf("create gpu target: %w", err)
	}
	return &GPUTarget{dc: dc, color: color, raster: raster}, nil
}

// Size returns the target size in pixels.
func (t *GPUTarget) Size() (width, height int) {
	return t.color.Size()
}

// FillStencil implements Target.
func (t *GPUTarget) FillStencil(vertices []vgcore.Point, indices []uint32) bool {
	return t.raster.FillStencil(t.color, vertices, indices)
}

// StrokeStencil implements Target.
func (t *GPUTarget) StrokeStencil(vertices []vgcore.Point) bool {
	return t.raster.StrokeStencil(t.color, vertices)
}

// Shade implements Target.
func (t *GPUTarget) Shade(g shading.Geometry, test StencilTest) bool {
	return t.raster.DrawGeometry(t.color, g, test)
}

// Clear fills the target with c.
func (t *GPUTarget) Clear(c vgcore.Color) {
	if !t.raster.Clear(t.color, c) {
		t.dc.logger.Debug("render: gpu clear failed")
	}
}

// Image reads the target back as premultiplied RGBA.
func (t *GPUTarget) Image() (*image.RGBA, error) {
	return t.raster.ReadPixels(t.color)
}

// Flush waits for submitted draws and releases their resources.
func (t *GPUTarget) Flush() {
	t.raster.Flush()
}

// Destroy releases the target's textures. Safe to call more than once.
func (t *GPUTarget) Destroy() {
	if t == nil {
		return
	}
	t.raster.Destroy()
	t.color.Destroy()
}

var _ Target = (*GPUTarget)(nil)
