// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shading

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/vgcore"
)

// tiledImage covers the viewport with a quad whose texture coordinates
// count tiles, so a repeating sampler tiles the image across the plane.
func (r *Resolver) tiledImage(s vgcore.TiledImage, view vgcore.Transform) (Geometry, bool) {
	src, ok := sourceRect(s.Image, s.SourceRect)
	if !ok {
		return Geometry{}, false
	}
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	tile := vgcore.Scale(float64(src.Dx())*scale, float64(src.Dy())*scale).
		Concatenating(vgcore.Translation(s.Origin.X, s.Origin.Y))
	toUV := tile.Concatenating(view).Inverted()

	tint := tintColor(s.Tint)
	vertex := func(c vgcore.Point) vgcore.Vertex {
		return vgcore.NewVertex(c, toUV.Apply(c), tint)
	}
	v := [4]vgcore.Vertex{}
	for i, c := range clipCorners {
		v[i] = vertex(c)
	}
	// Corners run (-1,-1), (-1,1), (1,1), (1,-1).
	r.vertices = append(r.vertices, v[0], v[1], v[3], v[3], v[1], v[2])

	geom := imageGeometry(s.Image, src, s.ColorMatrix, s.BlurRadius)
	geom.Vertices = r.vertices
	geom.Tiled = true
	return geom, true
}

// ImageQuad returns a textured quad drawing the whole of img into rect.
// view maps rect into clip space.
func ImageQuad(img image.Image, rect vgcore.Rect, view vgcore.Transform) (Geometry, bool) {
	src, ok := sourceRect(img, image.Rectangle{})
	if !ok || rect.Width() <= 0 || rect.Height() <= 0 {
		return Geometry{}, false
	}
	geom := imageGeometry(img, src, nil, 0)
	geom.Vertices = rectQuad(rect, view, vgcore.White)
	return geom, true
}

// MaskQuad returns a quad that writes c into rect wherever the red channel
// of mask is set. Inverse writes where it is clear instead.
func MaskQuad(mask image.Image, rect vgcore.Rect, view vgcore.Transform, c vgcore.Color, inverse bool) (Geometry, bool) {
	src, ok := sourceRect(mask, image.Rectangle{})
	if !ok || rect.Width() <= 0 || rect.Height() <= 0 {
		return Geometry{}, false
	}
	geom := Geometry{
		Shader:       MaskResolve,
		Texture:      maskTexture(mask, src, false),
		Vertices:     rectQuad(rect, view, c),
		MaskLinear:   1,
		MaskConstant: 0,
	}
	if inverse {
		geom.MaskLinear, geom.MaskConstant = -1, 1
	}
	return geom, true
}

// rectQuad maps rect through view with texture coordinates 0..1, top-left
// at (0, 0).
func rectQuad(rect vgcore.Rect, view vgcore.Transform, c vgcore.Color) []vgcore.Vertex {
	v := func(x, y, u, w float64) vgcore.Vertex {
		return vgcore.NewVertex(view.Apply(vgcore.Pt(x, y)), vgcore.Pt(u, w), c)
	}
	lb := v(rect.Min.X, rect.Max.Y, 0, 1)
	lt := v(rect.Min.X, rect.Min.Y, 0, 0)
	rb := v(rect.Max.X, rect.Max.Y, 1, 1)
	rt := v(rect.Max.X, rect.Min.Y, 1, 0)
	return []vgcore.Vertex{lb, lt, rb, rb, lt, rt}
}

// imageGeometry selects the shader for an image and converts its texels.
func imageGeometry(img image.Image, src image.Rectangle, cm *vgcore.ColorMatrix, blur float64) Geometry {
	mask := isMask(img)
	switch {
	case blur > 0:
		return Geometry{Shader: BlurImage, Texture: texture(img, src, mask), BlurRadius: blur}
	case cm != nil:
		return Geometry{Shader: ColorMatrixImage, Texture: texture(img, src, mask), ColorMatrix: *cm}
	case mask:
		return Geometry{Shader: RedChannelToAlphaImage, Texture: maskTexture(img, src, false)}
	default:
		return Geometry{Shader: Image, Texture: texture(img, src, false)}
	}
}

// sourceRect clips the requested rectangle to the image bounds. An empty
// request selects the whole image.
func sourceRect(img image.Image, req image.Rectangle) (image.Rectangle, bool) {
	if img == nil {
		return image.Rectangle{}, false
	}
	b := img.Bounds()
	if !req.Empty() {
		b = req.Intersect(b)
	}
	return b, !b.Empty()
}

func isMask(img image.Image) bool {
	switch img.(type) {
	case *image.Alpha, *image.Alpha16, *image.Gray, *image.Gray16:
		return true
	}
	return false
}

// texture converts the src part of img to straight-alpha texels with the
// origin at (0, 0). Masks become white with coverage in alpha so that
// shaders treating them as ordinary images still tint correctly.
func texture(img image.Image, src image.Rectangle, mask bool) *image.NRGBA {
	if mask {
		return maskTexture(img, src, true)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// maskTexture stores the coverage of a single-channel image in the red
// channel, or in alpha under white when asAlpha is set.
func maskTexture(img image.Image, src image.Rectangle, asAlpha bool) *image.NRGBA {
	gray := image.NewGray(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(gray, gray.Bounds(), img, src.Min, draw.Src)

	dst := image.NewNRGBA(gray.Rect)
	for y := range gray.Rect.Dy() {
		for x := range gray.Rect.Dx() {
			v := gray.Pix[y*gray.Stride+x]
			c := color.NRGBA{R: v, G: v, B: v, A: 0xff}
			if asAlpha {
				c = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: v}
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

// tintColor treats the zero color as "no tint".
func tintColor(c vgcore.Color) vgcore.Color {
	if c == (vgcore.Color{}) {
		return vgcore.White
	}
	return c
}
