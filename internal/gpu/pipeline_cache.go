// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
)

var (
	// ErrNilDevice is returned when a GPU component is created without a
	// device or queue.
	ErrNilDevice = errors.New("gpu: nil device or queue")

	// ErrPipelineCacheUnavailable is returned when drawing through a
	// cache that failed to initialize or was destroyed.
	ErrPipelineCacheUnavailable = errors.New("gpu: pipeline cache unavailable")
)

// Vertex strides of the two vertex layouts.
const (
	shadedVertexStride  = vgcore.VertexSize
	stencilVertexStride = vgcore.StencilVertexSize
)

// uniformSize is the size of the per-draw uniform block. It fits the
// largest parameter struct, the 4x5 color matrix.
const uniformSize = 80

// BlendState selects the color blend of a pipeline.
type BlendState uint8

const (
	// BlendOpaque replaces the destination.
	BlendOpaque BlendState = iota
	// BlendAlpha blends straight-alpha output.
	BlendAlpha
	// BlendPremultiplied blends premultiplied output. All color shaders
	// produce premultiplied color.
	BlendPremultiplied
)

func (b BlendState) descriptor() *gputypes.BlendState {
	var s gputypes.BlendState
	switch b {
	case BlendAlpha:
		s = gputypes.BlendStateAlpha()
	case BlendPremultiplied:
		s = gputypes.BlendStatePremultiplied()
	default:
		s = gputypes.BlendStateReplace()
	}
	return &s
}

// RenderState is the key of a cached pipeline.
type RenderState struct {
	Shader      shading.ShaderKind
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat
	Blend       BlendState
	Stencil     StencilMode
}

// normalized folds fields that do not affect the pipeline so equal
// pipelines share a key.
func (s RenderState) normalized() RenderState {
	if s.Stencil == StencilIgnore {
		s.DepthFormat = gputypes.TextureFormatUndefined
	} else if s.DepthFormat == gputypes.TextureFormatUndefined {
		s.DepthFormat = stencilFormat
	}
	if s.Shader == shading.StencilOnly {
		s.Blend = BlendOpaque
	}
	return s
}

// SamplerMode selects one of the cache's samplers.
type SamplerMode uint8

const (
	// SamplerLinearClamp filters bilinearly and clamps to the edge.
	SamplerLinearClamp SamplerMode = iota
	// SamplerLinearRepeat filters bilinearly and repeats.
	SamplerLinearRepeat
	// SamplerNearestClamp picks the nearest texel and clamps to the edge.
	SamplerNearestClamp

	samplerModeCount
)

// PipelineCache owns the shader modules, layouts and samplers shared by all
// draws on one device, and creates render pipelines on demand.
//
// PipelineCache is safe for concurrent use.
type PipelineCache struct {
	device hal.Device
	queue  hal.Queue

	mu sync.Mutex

	modules [shading.ShaderKindCount]hal.ShaderModule

	// Untextured shaders use an empty layout; textured ones share one bind
	// group: uniform, texture, sampler.
	emptyLayout    hal.PipelineLayout
	textureGroup   hal.BindGroupLayout
	texturedLayout hal.PipelineLayout

	samplers [samplerModeCount]hal.Sampler
	white    *gpuTexture

	pipelines    map[RenderState]hal.RenderPipeline
	depthStencil [stencilModeCount]*hal.DepthStencilState
}

// NewPipelineCache compiles every shader and creates the shared layouts,
// samplers and the white fallback texture.
func NewPipelineCache(device hal.Device, queue hal.Queue) (*PipelineCache, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	c := &PipelineCache{
		device:    device,
		queue:     queue,
		pipelines: make(map[RenderState]hal.RenderPipeline),
	}
	for m := range stencilModeCount {
		c.depthStencil[m] = newDepthStencilState(m)
	}
	if err := c.init(); err != nil {
		c.Destroy()
		return nil, err
	}
	slogger().Debug("gpu: pipeline cache ready", "shaders", int(shading.ShaderKindCount))
	return c, nil
}

func (c *PipelineCache) init() error {
	for kind := range shading.ShaderKindCount {
		src, err := shaderSource(kind)
		if err != nil {
			return err
		}
		if err := validateShader(shaderFiles[kind], src); err != nil {
			return err
		}
		module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  kind.String(),
			Source: hal.ShaderSource{WGSL: src},
		})
		if err != nil {
			return fmt.Errorf("compile %s shader: %w", kind, err)
		}
		c.modules[kind] = module
	}

	var err error
	c.emptyLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "untextured_layout",
	})
	if err != nil {
		return fmt.Errorf("create untextured layout: %w", err)
	}

	c.textureGroup, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "texture_group",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture group layout: %w", err)
	}

	c.texturedLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "textured_layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.textureGroup},
	})
	if err != nil {
		return fmt.Errorf("create textured layout: %w", err)
	}

	for mode := range samplerModeCount {
		if c.samplers[mode], err = c.createSampler(mode); err != nil {
			return err
		}
	}

	white := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range white.Pix {
		white.Pix[i] = 0xff
	}
	c.white, err = uploadTexture(c.device, c.queue, "white", white)
	return err
}

func (c *PipelineCache) createSampler(mode SamplerMode) (hal.Sampler, error) {
	address := gputypes.AddressModeClampToEdge
	filter := gputypes.FilterModeLinear
	label := "linear_clamp_sampler"
	switch mode {
	case SamplerLinearRepeat:
		address = gputypes.AddressModeRepeat
		label = "linear_repeat_sampler"
	case SamplerNearestClamp:
		filter = gputypes.FilterModeNearest
		label = "nearest_clamp_sampler"
	}
	s, err := c.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: address,
		AddressModeV: address,
		AddressModeW: address,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return s, nil
}

// Pipeline returns the pipeline for state, creating it on first use. It
// reports false when the cache is destroyed or creation fails; failures are
// logged and retried on the next call.
func (c *PipelineCache) Pipeline(state RenderState) (hal.RenderPipeline, bool) {
	if c == nil || state.Shader >= shading.ShaderKindCount || state.Stencil >= stencilModeCount {
		return nil, false
	}
	key := state.normalized()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pipelines == nil {
		return nil, false
	}
	if p, ok := c.pipelines[key]; ok {
		return p, true
	}
	p, err := c.createPipeline(key)
	if err != nil {
		slogger().Warn("gpu: pipeline creation failed",
			"shader", key.Shader, "stencil", key.Stencil, "err", err)
		return nil, false
	}
	c.pipelines[key] = p
	return p, true
}

// DepthStencil returns the depth-stencil state of a mode, nil for
// StencilIgnore. The returned value must not be modified.
func (c *PipelineCache) DepthStencil(mode StencilMode) *hal.DepthStencilState {
	if c == nil || mode >= stencilModeCount {
		return nil
	}
	return c.depthStencil[mode]
}

// Sampler returns one of the shared samplers.
func (c *PipelineCache) Sampler(mode SamplerMode) hal.Sampler {
	if c == nil || mode >= samplerModeCount {
		return nil
	}
	return c.samplers[mode]
}

// TextureGroupLayout returns the bind group layout of textured shaders.
func (c *PipelineCache) TextureGroupLayout() hal.BindGroupLayout {
	if c == nil {
		return nil
	}
	return c.textureGroup
}

// Len returns the number of cached pipelines.
func (c *PipelineCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pipelines)
}

func (c *PipelineCache) createPipeline(key RenderState) (hal.RenderPipeline, error) {
	module := c.modules[key.Shader]
	if module == nil {
		return nil, ErrPipelineCacheUnavailable
	}

	layout := c.emptyLayout
	if key.Shader.Textured() {
		layout = c.texturedLayout
	}

	target := gputypes.ColorTargetState{
		Format:    key.ColorFormat,
		Blend:     key.Blend.descriptor(),
		WriteMask: gputypes.ColorWriteMaskAll,
	}
	if key.Shader == shading.StencilOnly {
		target.Blend = nil
		target.WriteMask = gputypes.ColorWriteMaskNone
	}

	var ds *hal.DepthStencilState
	if base := c.depthStencil[key.Stencil]; base != nil {
		copied := *base
		copied.Format = key.DepthFormat
		ds = &copied
	}

	p, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_%s", key.Shader, key.Stencil),
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: vertexEntryPoint,
			Buffers:    vertexLayout(key.Shader),
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntryPoint,
			Targets:    []gputypes.ColorTargetState{target},
		},
		DepthStencil: ds,
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s pipeline: %w", key.Shader, err)
	}
	return p, nil
}

// vertexLayout returns the vertex buffer layout of a shader: positions only
// for StencilOnly, position, texture coordinate and color otherwise.
func vertexLayout(kind shading.ShaderKind) []gputypes.VertexBufferLayout {
	if kind == shading.StencilOnly {
		return []gputypes.VertexBufferLayout{{
			ArrayStride: stencilVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		}}
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: shadedVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
		},
	}}
}

// Destroy releases every pipeline and shared resource in reverse creation
// order. Safe to call more than once and on nil.
func (c *PipelineCache) Destroy() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, p := range c.pipelines {
		c.device.DestroyRenderPipeline(p)
		delete(c.pipelines, key)
	}
	c.pipelines = nil
	c.white.destroy(c.device)
	c.white = nil
	for i, s := range c.samplers {
		if s != nil {
			c.device.DestroySampler(s)
			c.samplers[i] = nil
		}
	}
	if c.texturedLayout != nil {
		c.device.DestroyPipelineLayout(c.texturedLayout)
		c.texturedLayout = nil
	}
	if c.textureGroup != nil {
		c.device.DestroyBindGroupLayout(c.textureGroup)
		c.textureGroup = nil
	}
	if c.emptyLayout != nil {
		c.device.DestroyPipelineLayout(c.emptyLayout)
		c.emptyLayout = nil
	}
	for i, m := range c.modules {
		if m != nil {
			c.device.DestroyShaderModule(m)
			c.modules[i] = nil
		}
	}
}
