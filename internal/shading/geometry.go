// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shading resolves shading descriptors into clip-space geometry.
//
// Every resolver works the same way: the four corners of the clip-space
// viewport ([-1, 1] on both axes) are mapped back through the inverse of
// the shading's local transform concatenated with the view transform. That
// gives the region of gradient (or image) space that must be covered, and
// geometry is emitted for exactly that region. The stencil pass has already
// marked which pixels may be written, so the geometry never needs to follow
// the path outline.
package shading

import (
	"image"

	"github.com/gogpu/vgcore"
)

// ShaderKind identifies a shader program.
type ShaderKind uint8

const (
	// StencilOnly writes winding counts and no color.
	StencilOnly ShaderKind = iota
	// VertexColor interpolates per-vertex colors.
	VertexColor
	// Image samples a texture multiplied by the vertex color.
	Image
	// RedChannelToAlphaImage samples a coverage mask from the red channel and
	// colors it with the vertex color.
	RedChannelToAlphaImage
	// MaskResolve writes the vertex color where mask.r*linear+constant > 0.
	MaskResolve
	// ColorMatrixImage samples a texture and applies a 4x5 color matrix.
	ColorMatrixImage
	// BlurImage samples a texture with a separable Gaussian kernel.
	BlurImage

	// ShaderKindCount is the number of shader kinds.
	ShaderKindCount
)

// String returns the shader kind name.
func (k ShaderKind) String() string {
	switch k {
	case StencilOnly:
		return "StencilOnly"
	case VertexColor:
		return "VertexColor"
	case Image:
		return "Image"
	case RedChannelToAlphaImage:
		return "RedChannelToAlphaImage"
	case MaskResolve:
		return "MaskResolve"
	case ColorMatrixImage:
		return "ColorMatrixImage"
	case BlurImage:
		return "BlurImage"
	default:
		return "Unknown"
	}
}

// Textured reports whether the shader samples a texture.
func (k ShaderKind) Textured() bool {
	return k >= Image && k < ShaderKindCount
}

// Geometry is an unindexed clip-space triangle list ready for the shading
// pass.
type Geometry struct {
	Shader   ShaderKind
	Vertices []vgcore.Vertex

	// Texture holds straight-alpha texels for textured shaders.
	Texture *image.NRGBA
	// Tiled selects repeat addressing; otherwise texture coordinates clamp.
	Tiled bool

	// ColorMatrix is used by ColorMatrixImage.
	ColorMatrix vgcore.ColorMatrix
	// BlurRadius is the Gaussian radius in texels, used by BlurImage.
	BlurRadius float64
	// MaskLinear and MaskConstant are used by MaskResolve.
	MaskLinear, MaskConstant float64
}

// clipCorners are the viewport corners in clip space.
var clipCorners = [4]vgcore.Point{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}}

// fullViewport returns two triangles covering the viewport in one color.
func fullViewport(dst []vgcore.Vertex, c vgcore.Color) []vgcore.Vertex {
	v := func(x, y float64) vgcore.Vertex {
		return vgcore.NewVertex(vgcore.Pt(x, y), vgcore.Point{}, c)
	}
	return append(dst,
		v(-1, -1), v(-1, 1), v(1, -1),
		v(1, -1), v(-1, 1), v(1, 1),
	)
}

// viewportExtent maps the viewport corners through inv and returns their
// bounding box.
func viewportExtent(inv vgcore.Transform) vgcore.Rect {
	r := vgcore.NullRect()
	for _, c := range clipCorners {
		r = r.Expand(inv.Apply(c))
	}
	return r
}

// coverRadius returns the distance from center to the farthest viewport
// corner mapped through inv.
func coverRadius(inv vgcore.Transform, center vgcore.Point) float64 {
	var r float64
	for _, c := range clipCorners {
		r = max(r, inv.Apply(c).Distance(center))
	}
	return r
}
