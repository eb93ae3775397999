// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
)

// fragment computes the premultiplied output color from interpolated
// texture coordinates and straight vertex color. It reports false to
// discard the fragment.
type fragment func(uv [2]float64, c [4]float64) ([4]float64, bool)

// Shade blends the triangles of g onto the canvas wherever test passes.
// Blending is premultiplied source-over. Both facings are drawn.
//
// It reports false when g has no triangles or uses a shader the software
// target cannot run.
func (r *Rasterizer) Shade(g shading.Geometry, test shading.StencilTest) bool {
	if len(g.Vertices) < 3 {
		return false
	}
	frag, ok := newFragment(g)
	if !ok {
		vgcore.Logger().Debug("raster: unsupported shader", "shader", g.Shader)
		return false
	}
	for i := 0; i+2 < len(g.Vertices); i += 3 {
		tri := [3]*vgcore.Vertex{&g.Vertices[i], &g.Vertices[i+1], &g.Vertices[i+2]}
		r.shadeTriangle(tri, test, frag)
	}
	return true
}

func (r *Rasterizer) shadeTriangle(v [3]*vgcore.Vertex, test shading.StencilTest, frag fragment) {
	var p [3]fixedPoint
	for i := range v {
		p[i] = r.toFixed(float64(v[i].Position[0]), float64(v[i].Position[1]))
	}
	t, ok := r.setupTriangle(p[0], p[1], p[2])
	if !ok {
		return
	}
	t.scan(func(x, y int, w [3]float64) {
		i := y*r.width + x
		if !test.Pass(r.stencil[i]) {
			return
		}
		var uv [2]float64
		var c [4]float64
		for k := range v {
			uv[0] += w[k] * float64(v[k].TexCoord[0])
			uv[1] += w[k] * float64(v[k].TexCoord[1])
			for j := range c {
				c[j] += w[k] * float64(v[k].Color[j])
			}
		}
		src, keep := frag(uv, c)
		if !keep {
			return
		}
		r.blend(x, y, src)
	})
}

// blend composites a premultiplied color over the canvas pixel.
func (r *Rasterizer) blend(x, y int, src [4]float64) {
	off := r.color.PixOffset(x, y)
	pix := r.color.Pix[off : off+4 : off+4]
	inv := 1 - clampUnit(src[3])
	for i := range pix {
		d := float64(pix[i]) / 0xff
		pix[i] = uint8(clampUnit(clampUnit(src[i])+d*inv)*0xff + 0.5)
	}
}

// newFragment selects the fragment function for the geometry's shader.
func newFragment(g shading.Geometry) (fragment, bool) {
	switch g.Shader {
	case shading.VertexColor:
		return func(_ [2]float64, c [4]float64) ([4]float64, bool) {
			return premultiply(c), true
		}, true
	case shading.Image, shading.BlurImage:
		if g.Texture == nil {
			return nil, false
		}
		radius := 0.0
		if g.Shader == shading.BlurImage {
			radius = g.BlurRadius
		}
		s := newSampler(g.Texture, g.Tiled, radius)
		return func(uv [2]float64, c [4]float64) ([4]float64, bool) {
			return modulate(s.sample(uv[0], uv[1]), c), true
		}, true
	case shading.RedChannelToAlphaImage:
		if g.Texture == nil {
			return nil, false
		}
		s := newSampler(g.Texture, g.Tiled, 0)
		return func(uv [2]float64, c [4]float64) ([4]float64, bool) {
			coverage := s.sample(uv[0], uv[1])[0]
			return scale(premultiply(c), coverage), true
		}, true
	case shading.MaskResolve:
		if g.Texture == nil {
			return nil, false
		}
		s := newSampler(g.Texture, false, 0)
		return func(uv [2]float64, c [4]float64) ([4]float64, bool) {
			m := s.nearest(uv[0], uv[1])[0]
			if m*g.MaskLinear+g.MaskConstant <= 0 {
				return [4]float64{}, false
			}
			return premultiply(c), true
		}, true
	case shading.ColorMatrixImage:
		if g.Texture == nil {
			return nil, false
		}
		s := newSampler(g.Texture, g.Tiled, 0)
		m := g.ColorMatrix
		return func(uv [2]float64, c [4]float64) ([4]float64, bool) {
			p := s.sample(uv[0], uv[1])
			straight := unpremultiply(p)
			out := m.Apply(vgcore.Color{R: straight[0], G: straight[1], B: straight[2], A: straight[3]})
			q := [4]float64{
				clampUnit(out.R) * c[0],
				clampUnit(out.G) * c[1],
				clampUnit(out.B) * c[2],
				clampUnit(out.A) * c[3],
			}
			return premultiply(q), true
		}, true
	default:
		return nil, false
	}
}

// modulate multiplies a premultiplied texel by a straight tint.
func modulate(p, c [4]float64) [4]float64 {
	return [4]float64{p[0] * c[0] * c[3], p[1] * c[1] * c[3], p[2] * c[2] * c[3], p[3] * c[3]}
}

func premultiply(c [4]float64) [4]float64 {
	a := clampUnit(c[3])
	return [4]float64{clampUnit(c[0]) * a, clampUnit(c[1]) * a, clampUnit(c[2]) * a, a}
}

func unpremultiply(p [4]float64) [4]float64 {
	if p[3] <= 0 {
		return [4]float64{}
	}
	return [4]float64{p[0] / p[3], p[1] / p[3], p[2] / p[3], p[3]}
}

func scale(c [4]float64, s float64) [4]float64 {
	return [4]float64{c[0] * s, c[1] * s, c[2] * s, c[3] * s}
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
