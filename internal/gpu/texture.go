// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment WebGPU requires for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// ErrEmptyTexture is returned when uploading an image with no pixels.
var ErrEmptyTexture = errors.New("gpu: empty texture")

// alignedBytesPerRow returns the padded row pitch of an RGBA8 copy.
func alignedBytesPerRow(width uint32) uint32 {
	return (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// gpuTexture is a 2D texture with its default view.
type gpuTexture struct {
	texture hal.Texture
	view    hal.TextureView
	width   uint32
	height  uint32
}

// createTexture creates a single-sampled 2D texture and its view.
func createTexture(device hal.Device, label string, width, height uint32,
	format gputypes.TextureFormat, usage gputypes.TextureUsage) (*gpuTexture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return &gpuTexture{texture: tex, view: view, width: width, height: height}, nil
}

// uploadTexture creates a sampled RGBA8 texture holding img.
func uploadTexture(device hal.Device, queue hal.Queue, label string, img *image.NRGBA) (*gpuTexture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyTexture
	}
	w, h := uint32(b.Dx()), uint32(b.Dy())
	t, err := createTexture(device, label, w, h, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}

	rowBytes := b.Dx() * 4
	data := make([]byte, rowBytes*b.Dy())
	for y := range b.Dy() {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(data[y*rowBytes:(y+1)*rowBytes], img.Pix[off:off+rowBytes])
	}
	err = queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.texture, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{BytesPerRow: uint32(rowBytes), RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		t.destroy(device)
		return nil, fmt.Errorf("upload %s texture: %w", label, err)
	}
	return t, nil
}

// destroy releases the view and texture. Safe on nil.
func (t *gpuTexture) destroy(device hal.Device) {
	if t == nil {
		return
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
