// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"log/slog"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
	"github.com/gogpu/vgcore/internal/tessellate"
)

// Context issues draws to a Target.
//
// Path and shading coordinates are content coordinates mapped by the
// current transform. The view transform then maps content coordinates to
// clip space, with content (0, 0) at the top-left corner of the target.
//
// A Context reuses its tessellation buffers and is not safe for concurrent
// use.
type Context struct {
	target Target
	opts   options
	logger *slog.Logger

	fill     *tessellate.FillTessellator
	stroke   *tessellate.StrokeTessellator
	resolver *shading.Resolver
}

// NewContext creates a drawing context for target.
func NewContext(target Target, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = vgcore.Logger()
	}
	return &Context{
		target:   target,
		opts:     o,
		logger:   logger,
		fill:     tessellate.NewFillTessellator(),
		stroke:   tessellate.NewStrokeTessellator(),
		resolver: shading.NewResolver(),
	}
}

// Target returns the target the context draws to.
func (c *Context) Target() Target {
	return c.target
}

// Transform returns the current transform.
func (c *Context) Transform() vgcore.Transform {
	return c.opts.transform
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(t vgcore.Transform) {
	c.opts.transform = t
}

// ConcatenateTransform applies t before the current transform.
func (c *Context) ConcatenateTransform(t vgcore.Transform) {
	c.opts.transform = t.Concatenating(c.opts.transform)
}

// ContentOffset returns the content offset.
func (c *Context) ContentOffset() vgcore.Point {
	return c.opts.contentOffset
}

// ContentScale returns the content size that covers the target.
func (c *Context) ContentScale() vgcore.Size {
	if c.opts.hasScale {
		return c.opts.contentScale
	}
	w, h := c.target.Size()
	return vgcore.Sz(float64(w), float64(h))
}

// ViewTransform maps content coordinates to clip space.
func (c *Context) ViewTransform() vgcore.Transform {
	return vgcore.ViewTransform(c.opts.contentOffset, c.ContentScale())
}

// clipTransform maps path coordinates to clip space.
func (c *Context) clipTransform() vgcore.Transform {
	return c.opts.transform.Concatenating(c.ViewTransform())
}

// minVisibleScale is the smaller of the horizontal and vertical pixels per
// content unit.
func (c *Context) minVisibleScale() float64 {
	w, h := c.target.Size()
	scale := c.ContentScale()
	sx := float64(w) / max(scale.Width, 1)
	sy := float64(h) / max(scale.Height, 1)
	return min(sx, sy)
}

// Fill fills path with s using the winding rule of style. It reports false
// when nothing was drawn.
func (c *Context) Fill(path *vgcore.Path, s vgcore.Shading, style vgcore.FillStyle) bool {
	test := StencilNonZero
	if style.EvenOdd {
		test = StencilEvenOdd
	}
	return c.fillWithTest(path, s, test)
}

// FillInverse fills the area outside path, within the target, with s. The
// winding rule of style decides what counts as inside.
func (c *Context) FillInverse(path *vgcore.Path, s vgcore.Shading, style vgcore.FillStyle) bool {
	test := StencilZero
	if style.EvenOdd {
		test = StencilOdd
	}
	return c.fillWithTest(path, s, test)
}

func (c *Context) fillWithTest(path *vgcore.Path, s vgcore.Shading, test StencilTest) bool {
	view := c.clipTransform()
	c.fill.Reset()
	if !c.fill.Tessellate(path, view) {
		c.logger.Debug("render: fill skipped, no geometry")
		return false
	}
	mesh := c.fill.Mesh()
	if !c.target.FillStencil(mesh.Vertices, mesh.Indices) {
		c.logger.Debug("render: fill stencil pass failed", "vertices", len(mesh.Vertices))
		return false
	}
	return c.shade(s, view, test)
}

// Stroke strokes path with s. Overlapping parts of the stroke are covered
// once. It reports false when nothing was drawn.
func (c *Context) Stroke(path *vgcore.Path, s vgcore.Shading, style vgcore.StrokeStyle) bool {
	view := c.clipTransform()
	c.stroke.Reset()
	if !c.stroke.Tessellate(path, style, view, c.minVisibleScale()) {
		c.logger.Debug("render: stroke skipped, no geometry", "width", style.Width)
		return false
	}
	vertices := c.stroke.Vertices()
	if !c.target.StrokeStencil(vertices) {
		c.logger.Debug("render: stroke stencil pass failed", "vertices", len(vertices))
		return false
	}
	return c.shade(s, view, StencilNonZero)
}

func (c *Context) shade(s vgcore.Shading, view vgcore.Transform, test StencilTest) bool {
	g, ok := c.resolver.Resolve(s, view)
	if !ok {
		c.logger.Debug("render: shading produced no geometry")
		return false
	}
	if !c.target.Shade(g, test) {
		c.logger.Debug("render: shading pass failed", "shader", g.Shader)
		return false
	}
	return true
}

// DrawImage draws img stretched over rect, in path coordinates. No stencil
// test applies.
func (c *Context) DrawImage(img image.Image, rect vgcore.Rect) bool {
	g, ok := shading.ImageQuad(img, rect, c.clipTransform())
	if !ok {
		c.logger.Debug("render: image skipped", "rect", rect)
		return false
	}
	return c.target.Shade(g, StencilIgnore)
}

// DrawMask writes color over rect wherever the red channel of mask is set,
// or where it is clear when inverse is true.
func (c *Context) DrawMask(mask image.Image, rect vgcore.Rect, color vgcore.Color, inverse bool) bool {
	g, ok := shading.MaskQuad(mask, rect, c.clipTransform(), color, inverse)
	if !ok {
		c.logger.Debug("render: mask skipped", "rect", rect)
		return false
	}
	return c.target.Shade(g, StencilIgnore)
}

// Clear fills the whole target with color.
func (c *Context) Clear(color vgcore.Color) {
	c.target.Clear(color)
}

// Image returns the target contents as premultiplied RGBA.
func (c *Context) Image() (*image.RGBA, error) {
	return c.target.Image()
}
