// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ColorFormat is the format of every color target and intermediate.
const ColorFormat = gputypes.TextureFormatRGBA8Unorm

// ColorTarget is an offscreen RGBA8 render target holding premultiplied
// color. It can be rendered to, sampled and copied out.
type ColorTarget struct {
	device hal.Device
	tex    *gpuTexture
}

// NewColorTarget creates a color target of the given size in pixels.
func NewColorTarget(device hal.Device, width, height int) (*ColorTarget, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gpu: invalid target size %dx%d", width, height)
	}
	tex, err := createTexture(device, "color_target", uint32(width), uint32(height), ColorFormat,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc|gputypes.TextureUsageTextureBinding)
	if err != nil {
		return nil, err
	}
	return &ColorTarget{device: device, tex: tex}, nil
}

// Size returns the target size in pixels.
func (t *ColorTarget) Size() (width, height int) {
	if t == nil || t.tex == nil {
		return 0, 0
	}
	return int(t.tex.width), int(t.tex.height)
}

// Format returns the color format.
func (t *ColorTarget) Format() gputypes.TextureFormat { return ColorFormat }

// View returns the render attachment view, nil after Destroy.
func (t *ColorTarget) View() hal.TextureView {
	if t == nil || t.tex == nil {
		return nil
	}
	return t.tex.view
}

// Destroy releases the texture. Work that uses the target must have
// completed; see StencilRasterizer.Flush.
func (t *ColorTarget) Destroy() {
	if t == nil || t.tex == nil {
		return
	}
	t.tex.destroy(t.device)
	t.tex = nil
}
