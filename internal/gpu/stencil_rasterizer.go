// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
)

// ErrNoTarget is returned when drawing to a nil or destroyed target.
var ErrNoTarget = errors.New("gpu: no color target")

// pendingRelease frees resources once the submission that used them has
// completed.
type pendingRelease struct {
	index   uint64
	release func()
}

// StencilRasterizer draws on a ColorTarget with the stencil-then-cover
// technique. It owns the winding plane, which it resizes to the target.
//
// StencilRasterizer is not safe for concurrent use.
type StencilRasterizer struct {
	device hal.Device
	queue  hal.Queue
	cache  *PipelineCache

	stencil *gpuTexture
	pending []pendingRelease
}

// NewStencilRasterizer creates a rasterizer that takes its pipelines from
// cache. The winding plane is created on the first draw.
func NewStencilRasterizer(device hal.Device, queue hal.Queue, cache *PipelineCache) (*StencilRasterizer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if cache == nil {
		return nil, ErrPipelineCacheUnavailable
	}
	return &StencilRasterizer{device: device, queue: queue, cache: cache}, nil
}

// EnsureStencil makes the winding plane match the given size. The plane is
// recreated only when the size changes; in-flight work is drained first.
func (sr *StencilRasterizer) EnsureStencil(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("gpu: invalid stencil size %dx%d", width, height)
	}
	if sr.stencil != nil && sr.stencil.width == width && sr.stencil.height == height {
		return nil
	}
	if sr.stencil != nil {
		sr.Flush()
		sr.stencil.destroy(sr.device)
		sr.stencil = nil
	}
	tex, err := createTexture(sr.device, "winding", width, height, stencilFormat,
		gputypes.TextureUsageRenderAttachment)
	if err != nil {
		return err
	}
	sr.stencil = tex
	slogger().Debug("gpu: winding plane resized", "width", width, "height", height)
	return nil
}

// FillStencil clears the winding plane and accumulates the winding count of
// an indexed clip-space mesh: front faces increment, back faces decrement.
// It reports false when an index is out of range or the pass fails.
func (sr *StencilRasterizer) FillStencil(target *ColorTarget, vertices []vgcore.Point, indices []uint32) bool {
	for _, i := range indices {
		if int(i) >= len(vertices) {
			slogger().Warn("gpu: fill index out of range", "index", i, "vertices", len(vertices))
			return false
		}
	}
	count := uint32(len(indices) - len(indices)%3)
	return sr.windingPass(target, StencilFill, vertices, indices[:count], count)
}

// StrokeStencil clears the winding plane and counts the overlap of an
// unindexed clip-space triangle list, clamping at 255.
func (sr *StencilRasterizer) StrokeStencil(target *ColorTarget, vertices []vgcore.Point) bool {
	count := uint32(len(vertices) - len(vertices)%3)
	return sr.windingPass(target, StencilStroke, vertices[:count], nil, count)
}

func (sr *StencilRasterizer) windingPass(target *ColorTarget, mode StencilMode,
	vertices []vgcore.Point, indices []uint32, count uint32) bool {
	sr.collect()
	if !sr.prepare(target, true) {
		return false
	}

	res := &drawResources{}
	var pipeline hal.RenderPipeline
	if count > 0 {
		var ok bool
		pipeline, ok = sr.cache.Pipeline(RenderState{
			Shader:      shading.StencilOnly,
			ColorFormat: target.Format(),
			DepthFormat: stencilFormat,
			Stencil:     mode,
		})
		if !ok {
			return false
		}
		var err error
		if res.vertices, err = sr.createBuffer("winding_vertices", vgcore.AppendPositions(nil, vertices),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst); err != nil {
			slogger().Warn("gpu: winding upload failed", "err", err)
			return false
		}
		if indices != nil {
			if res.indices, err = sr.createBuffer("winding_indices", vgcore.AppendIndices(nil, indices),
				gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst); err != nil {
				res.destroy(sr.device)
				slogger().Warn("gpu: winding upload failed", "err", err)
				return false
			}
		}
	}

	desc := sr.passDescriptor("winding", target, gputypes.LoadOpLoad, gputypes.LoadOpClear)
	return sr.submitPass(desc, func(rp hal.RenderPassEncoder) {
		if count == 0 {
			return
		}
		rp.SetPipeline(pipeline)
		rp.SetStencilReference(0)
		rp.SetVertexBuffer(0, res.vertices, 0)
		if res.indices != nil {
			rp.SetIndexBuffer(res.indices, gputypes.IndexFormatUint32, 0)
			rp.DrawIndexed(count, 1, 0, 0, 0)
		} else {
			rp.Draw(count, 1, 0, 0)
		}
	}, func() { res.destroy(sr.device) })
}

// Shade opens a render pass on target whose stencil state keeps the
// winding plane, and lets encode record draws into it. Pipelines bound by
// encode must use ModeFor(test) with a Stencil8 depth format, or
// StencilIgnore with none. release runs once the pass has completed on the
// GPU, or immediately when the pass cannot be submitted.
func (sr *StencilRasterizer) Shade(target *ColorTarget, test shading.StencilTest,
	encode func(rp hal.RenderPassEncoder), release func()) bool {
	sr.collect()
	useStencil := ModeFor(test) != StencilIgnore
	if !sr.prepare(target, useStencil) {
		if release != nil {
			release()
		}
		return false
	}
	stencilLoad := gputypes.LoadOpLoad
	if !useStencil {
		stencilLoad = gputypes.LoadOpUndefined
	}
	desc := sr.passDescriptor("shade", target, gputypes.LoadOpLoad, stencilLoad)
	return sr.submitPass(desc, func(rp hal.RenderPassEncoder) {
		rp.SetStencilReference(0)
		encode(rp)
	}, release)
}

// DrawGeometry runs the shading pass for g on target wherever test passes.
// Blurred images are filtered horizontally into an intermediate texture
// first, then vertically while shading.
func (sr *StencilRasterizer) DrawGeometry(target *ColorTarget, g shading.Geometry, test shading.StencilTest) bool {
	if len(g.Vertices) < 3 || g.Shader == shading.StencilOnly || g.Shader >= shading.ShaderKindCount {
		return false
	}
	if g.Shader.Textured() && g.Texture == nil {
		return false
	}
	mode := ModeFor(test)
	pipeline, ok := sr.cache.Pipeline(RenderState{
		Shader:      g.Shader,
		ColorFormat: target.Format(),
		DepthFormat: stencilFormat,
		Blend:       BlendPremultiplied,
		Stencil:     mode,
	})
	if !ok {
		return false
	}

	res := &drawResources{}
	fail := func(err error) bool {
		res.destroy(sr.device)
		slogger().Warn("gpu: draw setup failed", "shader", g.Shader, "err", err)
		return false
	}

	count := uint32(len(g.Vertices) - len(g.Vertices)%3)
	vb, err := sr.createBuffer("shade_vertices", vgcore.AppendVertices(nil, g.Vertices[:count]),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fail(err)
	}
	res.vertices = vb

	var group hal.BindGroup
	if g.Shader.Textured() {
		src, err := uploadTexture(sr.device, sr.queue, "shade_source", g.Texture)
		if err != nil {
			return fail(err)
		}
		res.textures = append(res.textures, src)

		sampler := SamplerLinearClamp
		switch {
		case g.Tiled:
			sampler = SamplerLinearRepeat
		case g.Shader == shading.MaskResolve:
			sampler = SamplerNearestClamp
		}

		uniforms := geometryUniforms(g)
		if g.Shader == shading.BlurImage {
			weights, step := blurWeights(g.BlurRadius)
			mid, err := sr.blurHorizontal(src, sampler, weights, step, res)
			if err != nil {
				return fail(err)
			}
			src = mid
			uniforms = blurUniforms(0, step/float32(src.height), true, weights)
		}
		if group, err = sr.bindGroup(src, sampler, uniforms, res); err != nil {
			return fail(err)
		}
	}

	return sr.Shade(target, test, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(pipeline)
		if group != nil {
			rp.SetBindGroup(0, group, nil)
		}
		rp.SetVertexBuffer(0, res.vertices, 0)
		rp.Draw(count, 1, 0, 0)
	}, func() { res.destroy(sr.device) })
}

// blurHorizontal filters src along x into a new premultiplied texture.
func (sr *StencilRasterizer) blurHorizontal(src *gpuTexture, sampler SamplerMode,
	weights [blurTaps]float32, step float32, res *drawResources) (*gpuTexture, error) {
	mid, err := createTexture(sr.device, "blur_intermediate", src.width, src.height, ColorFormat,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageTextureBinding)
	if err != nil {
		return nil, err
	}
	res.textures = append(res.textures, mid)

	pipeline, ok := sr.cache.Pipeline(RenderState{
		Shader:      shading.BlurImage,
		ColorFormat: ColorFormat,
		Blend:       BlendOpaque,
		Stencil:     StencilIgnore,
	})
	if !ok {
		return nil, ErrPipelineCacheUnavailable
	}
	quad := fullscreenQuad()
	vb, err := sr.createBuffer("blur_vertices", vgcore.AppendVertices(nil, quad[:]),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.buffers = append(res.buffers, vb)
	group, err := sr.bindGroup(src, sampler, blurUniforms(step/float32(src.width), 0, false, weights), res)
	if err != nil {
		return nil, err
	}

	desc := &hal.RenderPassDescriptor{
		Label: "blur_horizontal",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    mid.view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
		}},
	}
	// The intermediate is released with the rest of res after the shading
	// pass, which is submitted later on the same queue.
	if !sr.submitPass(desc, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(pipeline)
		rp.SetBindGroup(0, group, nil)
		rp.SetVertexBuffer(0, vb, 0)
		rp.Draw(uint32(len(quad)), 1, 0, 0)
	}, nil) {
		return nil, errors.New("blur pass failed")
	}
	return mid, nil
}

// fullscreenQuad covers clip space with texture coordinates running from
// (0, 0) at the top-left to (1, 1) at the bottom-right.
func fullscreenQuad() [6]vgcore.Vertex {
	v := func(x, y, u, w float64) vgcore.Vertex {
		return vgcore.NewVertex(vgcore.Pt(x, y), vgcore.Pt(u, w), vgcore.White)
	}
	tl, tr := v(-1, 1, 0, 0), v(1, 1, 1, 0)
	br, bl := v(1, -1, 1, 1), v(-1, -1, 0, 1)
	return [6]vgcore.Vertex{tl, bl, br, tl, br, tr}
}

// Clear fills target with a straight-alpha color, stored premultiplied.
func (sr *StencilRasterizer) Clear(target *ColorTarget, c vgcore.Color) bool {
	sr.collect()
	if target.View() == nil {
		return false
	}
	p := c.Premultiply()
	desc := &hal.RenderPassDescriptor{
		Label: "clear",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target.View(),
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: p.R, G: p.G, B: p.B, A: p.A},
		}},
	}
	return sr.submitPass(desc, func(hal.RenderPassEncoder) {}, nil)
}

// ReadPixels copies target into a premultiplied RGBA image. It waits for
// all submitted work.
func (sr *StencilRasterizer) ReadPixels(target *ColorTarget) (*image.RGBA, error) {
	if target.View() == nil {
		return nil, ErrNoTarget
	}
	w, h := target.tex.width, target.tex.height
	bytesPerRow := w * 4
	pitch := alignedBytesPerRow(w)
	size := uint64(pitch) * uint64(h)

	staging, err := sr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer sr.device.DestroyBuffer(staging)

	cmd, err := sr.encode("readback", func(enc hal.CommandEncoder) {
		enc.TransitionTextures([]hal.TextureBarrier{{
			Texture: target.tex.texture,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})
		enc.CopyTextureToBuffer(target.tex.texture, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{BytesPerRow: pitch, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: target.tex.texture, Aspect: gputypes.TextureAspectAll},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
		enc.TransitionTextures([]hal.TextureBarrier{{
			Texture: target.tex.texture,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	})
	if err != nil {
		return nil, err
	}
	defer sr.device.FreeCommandBuffer(cmd)

	if _, err := sr.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if err := sr.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wait for GPU: %w", err)
	}
	sr.collect()

	mapping, err := sr.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	defer func() { _ = sr.device.UnmapBuffer(staging) }()
	src := unsafe.Slice((*byte)(mapping.Ptr), size)

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	for row := range int(h) {
		srcOff := row * int(pitch)
		copy(img.Pix[row*img.Stride:row*img.Stride+int(bytesPerRow)], src[srcOff:srcOff+int(bytesPerRow)])
	}
	return img, nil
}

// Flush waits for all submitted work and releases its resources.
func (sr *StencilRasterizer) Flush() {
	if len(sr.pending) == 0 {
		return
	}
	if err := sr.device.WaitIdle(); err != nil {
		slogger().Warn("gpu: wait idle failed", "err", err)
	}
	for _, p := range sr.pending {
		p.release()
	}
	sr.pending = sr.pending[:0]
}

// Pending returns the number of submissions whose resources are not yet
// released.
func (sr *StencilRasterizer) Pending() int {
	return len(sr.pending)
}

// Destroy drains the queue and releases the winding plane. Safe to call
// more than once. The pipeline cache is not destroyed.
func (sr *StencilRasterizer) Destroy() {
	if sr == nil || sr.device == nil {
		return
	}
	sr.Flush()
	sr.stencil.destroy(sr.device)
	sr.stencil = nil
}

// prepare checks the target and sizes the winding plane to it.
func (sr *StencilRasterizer) prepare(target *ColorTarget, withStencil bool) bool {
	if target.View() == nil {
		slogger().Warn("gpu: draw without target")
		return false
	}
	if !withStencil {
		return true
	}
	w, h := target.Size()
	if err := sr.EnsureStencil(uint32(w), uint32(h)); err != nil {
		slogger().Warn("gpu: winding plane unavailable", "err", err)
		return false
	}
	return true
}

// passDescriptor builds a pass that loads the target color. The winding
// plane is attached unless stencilLoad is LoadOpUndefined.
func (sr *StencilRasterizer) passDescriptor(label string, target *ColorTarget,
	colorLoad, stencilLoad gputypes.LoadOp) *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    target.View(),
			LoadOp:  colorLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	}
	if stencilLoad != gputypes.LoadOpUndefined {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              sr.stencil.view,
			DepthReadOnly:     true,
			StencilLoadOp:     stencilLoad,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		}
	}
	return desc
}

// submitPass records one render pass in its own command buffer and submits
// it. release runs after completion, or at once on failure.
func (sr *StencilRasterizer) submitPass(desc *hal.RenderPassDescriptor,
	record func(rp hal.RenderPassEncoder), release func()) bool {
	cmd, err := sr.encode(desc.Label, func(enc hal.CommandEncoder) {
		rp := enc.BeginRenderPass(desc)
		record(rp)
		rp.End()
	})
	if err != nil {
		if release != nil {
			release()
		}
		slogger().Warn("gpu: encode failed", "pass", desc.Label, "err", err)
		return false
	}
	index, err := sr.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		sr.device.FreeCommandBuffer(cmd)
		if release != nil {
			release()
		}
		slogger().Warn("gpu: submit failed", "pass", desc.Label, "err", err)
		return false
	}
	sr.pending = append(sr.pending, pendingRelease{index: index, release: func() {
		sr.device.FreeCommandBuffer(cmd)
		if release != nil {
			release()
		}
	}})
	return true
}

// encode records commands into a fresh command buffer.
func (sr *StencilRasterizer) encode(label string, record func(enc hal.CommandEncoder)) (hal.CommandBuffer, error) {
	enc, err := sr.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create %s encoder: %w", label, err)
	}
	if err := enc.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin %s encoding: %w", label, err)
	}
	record(enc)
	cmd, err := enc.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end %s encoding: %w", label, err)
	}
	return cmd, nil
}

// collect releases resources of completed submissions. Submissions
// complete in order.
func (sr *StencilRasterizer) collect() {
	if len(sr.pending) == 0 {
		return
	}
	done := sr.queue.PollCompleted()
	n := 0
	for n < len(sr.pending) && sr.pending[n].index <= done {
		sr.pending[n].release()
		n++
	}
	if n > 0 {
		sr.pending = append(sr.pending[:0], sr.pending[n:]...)
	}
}

// createBuffer creates a GPU buffer and uploads data, padded to a multiple
// of four bytes.
func (sr *StencilRasterizer) createBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	buf, err := sr.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := sr.queue.WriteBuffer(buf, 0, data); err != nil {
		sr.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

// bindGroup creates the texture group for src and records both the group
// and its uniform buffer in res.
func (sr *StencilRasterizer) bindGroup(src *gpuTexture, sampler SamplerMode, uniforms []byte,
	res *drawResources) (hal.BindGroup, error) {
	ub, err := sr.createBuffer("shade_uniforms", uniforms,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.buffers = append(res.buffers, ub)
	group, err := sr.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "texture_group",
		Layout: sr.cache.TextureGroupLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Size: uniformSize}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: src.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: sr.cache.Sampler(sampler).NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture group: %w", err)
	}
	res.groups = append(res.groups, group)
	return group, nil
}

// drawResources holds the per-draw GPU objects released together.
type drawResources struct {
	vertices hal.Buffer
	indices  hal.Buffer
	buffers  []hal.Buffer
	groups   []hal.BindGroup
	textures []*gpuTexture
}

func (r *drawResources) destroy(device hal.Device) {
	for _, g := range r.groups {
		device.DestroyBindGroup(g)
	}
	for _, b := range r.buffers {
		device.DestroyBuffer(b)
	}
	if r.indices != nil {
		device.DestroyBuffer(r.indices)
	}
	if r.vertices != nil {
		device.DestroyBuffer(r.vertices)
	}
	for i := len(r.textures) - 1; i >= 0; i-- {
		r.textures[i].destroy(device)
	}
	*r = drawResources{}
}
