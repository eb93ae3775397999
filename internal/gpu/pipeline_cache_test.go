// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vgcore/internal/shading"
)

func TestNewPipelineCacheNilDevice(t *testing.T) {
	if _, err := NewPipelineCache(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("err = %v, want ErrNilDevice", err)
	}
}

func TestPipelineCacheShared(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	c := newTestCache(t, device, queue)
	defer c.Destroy()

	for kind, m := range c.modules {
		if m == nil {
			t.Errorf("no module for %v", shading.ShaderKind(kind))
		}
	}
	if c.TextureGroupLayout() == nil {
		t.Error("expected texture group layout")
	}
	for mode := range samplerModeCount {
		if c.Sampler(mode) == nil {
			t.Errorf("no sampler %d", mode)
		}
	}
	if c.white == nil {
		t.Error("expected white fallback texture")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d before any pipeline request", c.Len())
	}
}

func TestPipelineCacheReuse(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	c := newTestCache(t, device, queue)
	defer c.Destroy()

	state := RenderState{
		Shader:      shading.VertexColor,
		ColorFormat: ColorFormat,
		DepthFormat: gputypes.TextureFormatStencil8,
		Blend:       BlendPremultiplied,
		Stencil:     StencilNonZero,
	}
	p1, ok := c.Pipeline(state)
	if !ok || p1 == nil {
		t.Fatal("expected pipeline")
	}
	p2, _ := c.Pipeline(state)
	if p1 != p2 {
		t.Error("equal states must share a pipeline")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	// A different stencil test is a different pipeline.
	state.Stencil = StencilEvenOdd
	if _, ok := c.Pipeline(state); !ok {
		t.Fatal("expected pipeline")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestRenderStateNormalized(t *testing.T) {
	tests := []struct {
		name string
		a, b RenderState
	}{
		{
			name: "ignore drops depth format",
			a:    RenderState{Shader: shading.Image, Stencil: StencilIgnore, DepthFormat: gputypes.TextureFormatStencil8},
			b:    RenderState{Shader: shading.Image, Stencil: StencilIgnore},
		},
		{
			name: "stencil defaults depth format",
			a:    RenderState{Shader: shading.Image, Stencil: StencilZero},
			b:    RenderState{Shader: shading.Image, Stencil: StencilZero, DepthFormat: gputypes.TextureFormatStencil8},
		},
		{
			name: "stencil only ignores blend",
			a:    RenderState{Shader: shading.StencilOnly, Stencil: StencilFill, Blend: BlendAlpha},
			b:    RenderState{Shader: shading.StencilOnly, Stencil: StencilFill, Blend: BlendOpaque},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.normalized() != tt.b.normalized() {
				t.Errorf("%+v and %+v normalize differently", tt.a, tt.b)
			}
		})
	}
}

func TestPipelineCacheRejectsInvalidState(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	c := newTestCache(t, device, queue)
	defer c.Destroy()

	if _, ok := c.Pipeline(RenderState{Shader: shading.ShaderKindCount}); ok {
		t.Error("unknown shader must fail")
	}
	if _, ok := c.Pipeline(RenderState{Shader: shading.VertexColor, Stencil: stencilModeCount}); ok {
		t.Error("unknown stencil mode must fail")
	}
}

func TestPipelineCacheDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	c := newTestCache(t, device, queue)
	if _, ok := c.Pipeline(RenderState{Shader: shading.VertexColor, ColorFormat: ColorFormat}); !ok {
		t.Fatal("expected pipeline")
	}
	c.Destroy()
	c.Destroy()

	if _, ok := c.Pipeline(RenderState{Shader: shading.VertexColor, ColorFormat: ColorFormat}); ok {
		t.Error("destroyed cache must not create pipelines")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after Destroy", c.Len())
	}

	var nilCache *PipelineCache
	nilCache.Destroy()
	if _, ok := nilCache.Pipeline(RenderState{}); ok {
		t.Error("nil cache must not create pipelines")
	}
	if nilCache.DepthStencil(StencilFill) != nil {
		t.Error("nil cache has no depth-stencil states")
	}
}

func TestPipelineCacheDepthStencil(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	c := newTestCache(t, device, queue)
	defer c.Destroy()

	if c.DepthStencil(StencilIgnore) != nil {
		t.Error("ignore has no depth-stencil state")
	}
	for _, m := range []StencilMode{StencilNonZero, StencilEvenOdd, StencilZero, StencilOdd, StencilFill, StencilStroke} {
		if c.DepthStencil(m) == nil {
			t.Errorf("%v: missing depth-stencil state", m)
		}
	}
}
