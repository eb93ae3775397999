// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
	"github.com/gogpu/vgcore/internal/tessellate"
)

func view(w, h int) vgcore.Transform {
	return vgcore.ViewTransform(vgcore.Point{}, vgcore.Sz(float64(w), float64(h)))
}

func solid(t *testing.T, c vgcore.Color, w, h int) shading.Geometry {
	t.Helper()
	g, ok := shading.Resolve(vgcore.Solid(c), view(w, h))
	if !ok {
		t.Fatal("solid shading did not resolve")
	}
	return g
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestNewRasterizer(t *testing.T) {
	r := NewRasterizer(4, 3)
	if w, h := r.Size(); w != 4 || h != 3 {
		t.Errorf("Size() = %d, %d, want 4, 3", w, h)
	}
	if r.Image().Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Image bounds = %v", r.Image().Bounds())
	}
	if r.Resize(4, 3) {
		t.Error("Resize to the same size reallocated")
	}
	if !r.Resize(8, 8) {
		t.Error("Resize to a new size did not reallocate")
	}
	if r.StencilAt(-1, 0) != 0 || r.StencilAt(8, 0) != 0 {
		t.Error("StencilAt outside the canvas is not 0")
	}
}

func TestClear(t *testing.T) {
	r := NewRasterizer(2, 2)
	r.Clear(vgcore.RGBA(1, 0, 0, 0.5))
	got := r.Image().RGBAAt(1, 1)
	if !near(got.R, 128) || got.G != 0 || !near(got.A, 128) {
		t.Errorf("cleared pixel = %v, want premultiplied half red", got)
	}
}

func TestFillStencilSquare(t *testing.T) {
	r := NewRasterizer(40, 40)
	path := vgcore.NewPath()
	path.AddRect(vgcore.RectXYWH(10, 10, 20, 20), vgcore.Identity())
	mesh, ok := tessellate.Fill(path, view(40, 40))
	if !ok {
		t.Fatal("Fill returned false")
	}
	if !r.FillStencil(mesh.Vertices, mesh.Indices) {
		t.Fatal("FillStencil returned false")
	}

	covered := 0
	for y := range 40 {
		for x := range 40 {
			v := r.StencilAt(x, y)
			inside := x >= 10 && x < 30 && y >= 10 && y < 30
			switch {
			case inside && v != 1 && v != 0xff:
				t.Fatalf("stencil(%d,%d) = %d, want a single winding", x, y, v)
			case !inside && v != 0:
				t.Fatalf("stencil(%d,%d) = %d outside the square", x, y, v)
			}
			if v != 0 {
				covered++
			}
		}
	}
	if covered != 400 {
		t.Errorf("covered = %d, want 400", covered)
	}
}

func TestFacing(t *testing.T) {
	r := NewRasterizer(8, 8)
	ccw := []vgcore.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}}
	r.FillStencil(ccw, []uint32{0, 1, 2})
	if got := r.StencilAt(1, 6); got != 1 {
		t.Errorf("front face stencil = %d, want 1", got)
	}
	r.FillStencil(ccw, []uint32{0, 2, 1})
	if got := r.StencilAt(1, 6); got != 0xff {
		t.Errorf("back face stencil = %d, want 255", got)
	}
}

func TestFillStencilWraps(t *testing.T) {
	r := NewRasterizer(4, 4)
	quad := []vgcore.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}}
	var indices []uint32
	for range 257 {
		indices = append(indices, 0, 1, 2)
	}
	r.FillStencil(quad, indices)
	if got := r.StencilAt(0, 3); got != 1 {
		t.Errorf("stencil after 257 increments = %d, want 1", got)
	}
}

func TestFillStencilBadIndex(t *testing.T) {
	r := NewRasterizer(4, 4)
	if r.FillStencil([]vgcore.Point{{}, {}}, []uint32{0, 1, 2}) {
		t.Error("FillStencil with out-of-range index = true")
	}
}

func TestStrokeStencilClamps(t *testing.T) {
	r := NewRasterizer(4, 4)
	tri := []vgcore.Point{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: -1}}
	var vertices []vgcore.Point
	for range 300 {
		vertices = append(vertices, tri...)
	}
	r.StrokeStencil(vertices)
	if got := r.StencilAt(0, 3); got != 0xff {
		t.Errorf("stencil after 300 increments = %d, want 255", got)
	}
}

func TestWindingParity(t *testing.T) {
	path := vgcore.NewPath()
	path.AddRect(vgcore.RectXYWH(2, 2, 10, 10), vgcore.Identity())
	path.AddRect(vgcore.RectXYWH(7, 7, 10, 10), vgcore.Identity())
	mesh, ok := tessellate.Fill(path, view(20, 20))
	if !ok {
		t.Fatal("Fill returned false")
	}

	tests := []struct {
		test        shading.StencilTest
		overlap     bool
		single      bool
		outsidePath bool
	}{
		{shading.StencilNonZero, true, true, false},
		{shading.StencilEvenOdd, false, true, false},
		{shading.StencilZero, false, false, true},
		{shading.StencilOdd, true, false, true},
		{shading.StencilIgnore, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.test.String(), func(t *testing.T) {
			r := NewRasterizer(20, 20)
			r.FillStencil(mesh.Vertices, mesh.Indices)
			if !r.Shade(solid(t, vgcore.Red, 20, 20), tt.test) {
				t.Fatal("Shade returned false")
			}
			img := r.Image()
			check := func(name string, x, y int, want bool) {
				if got := img.RGBAAt(x, y).A != 0; got != want {
					t.Errorf("%s pixel (%d,%d) painted = %v, want %v", name, x, y, got, want)
				}
			}
			check("overlap", 9, 9, tt.overlap)
			check("single", 3, 3, tt.single)
			check("outside", 18, 2, tt.outsidePath)
		})
	}
}

func TestSharedEdgeCoveredOnce(t *testing.T) {
	r := NewRasterizer(8, 8)
	half := vgcore.RGBA(1, 0, 0, 0.5)
	// Two triangles sharing the diagonal, whose pixel centers lie exactly
	// on it.
	g := shading.Geometry{
		Shader: shading.VertexColor,
		Vertices: []vgcore.Vertex{
			vgcore.NewVertex(vgcore.Pt(-1, -1), vgcore.Point{}, half),
			vgcore.NewVertex(vgcore.Pt(-1, 1), vgcore.Point{}, half),
			vgcore.NewVertex(vgcore.Pt(1, -1), vgcore.Point{}, half),
			vgcore.NewVertex(vgcore.Pt(1, -1), vgcore.Point{}, half),
			vgcore.NewVertex(vgcore.Pt(-1, 1), vgcore.Point{}, half),
			vgcore.NewVertex(vgcore.Pt(1, 1), vgcore.Point{}, half),
		},
	}
	r.Shade(g, shading.StencilIgnore)
	for y := range 8 {
		for x := range 8 {
			got := r.Image().RGBAAt(x, y)
			if !near(got.R, 128) || !near(got.A, 128) {
				t.Fatalf("pixel (%d,%d) = %v, want a single half-red blend", x, y, got)
			}
		}
	}
}

func TestShadeRejects(t *testing.T) {
	r := NewRasterizer(4, 4)
	if r.Shade(shading.Geometry{Shader: shading.VertexColor}, shading.StencilIgnore) {
		t.Error("Shade with no vertices = true")
	}
	g := solid(t, vgcore.Red, 4, 4)
	g.Shader = shading.Image
	if r.Shade(g, shading.StencilIgnore) {
		t.Error("Shade of a textured shader without texture = true")
	}
	g.Shader = shading.StencilOnly
	if r.Shade(g, shading.StencilIgnore) {
		t.Error("Shade with StencilOnly = true")
	}
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestShadeImageQuad(t *testing.T) {
	r := NewRasterizer(2, 2)
	img := testImage()
	g, ok := shading.ImageQuad(img, vgcore.RectXYWH(0, 0, 2, 2), view(2, 2))
	if !ok {
		t.Fatal("ImageQuad returned false")
	}
	r.Shade(g, shading.StencilIgnore)
	for y := range 2 {
		for x := range 2 {
			want := img.NRGBAAt(x, y)
			got := r.Image().RGBAAt(x, y)
			if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestShadeColorMatrix(t *testing.T) {
	r := NewRasterizer(2, 2)
	swap := vgcore.ColorMatrix{
		0, 0, 1, 0, 0,
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}
	s := vgcore.Image(testImage(), vgcore.Point{})
	s.ColorMatrix = &swap
	g, ok := shading.Resolve(s, view(2, 2))
	if !ok {
		t.Fatal("Resolve returned false")
	}
	r.Shade(g, shading.StencilIgnore)
	if got := r.Image().RGBAAt(0, 0); !near(got.B, 255) || got.R > 1 {
		t.Errorf("swapped red pixel = %v, want blue", got)
	}
}

func TestShadeMaskTint(t *testing.T) {
	r := NewRasterizer(2, 2)
	mask := image.NewAlpha(image.Rect(0, 0, 2, 2))
	mask.SetAlpha(1, 1, color.Alpha{A: 255})
	s := vgcore.Image(mask, vgcore.Point{})
	s.Tint = vgcore.Green
	g, ok := shading.Resolve(s, view(2, 2))
	if !ok {
		t.Fatal("Resolve returned false")
	}
	r.Shade(g, shading.StencilIgnore)
	if got := r.Image().RGBAAt(1, 1); !near(got.G, 255) || !near(got.A, 255) {
		t.Errorf("covered pixel = %v, want green", got)
	}
	if got := r.Image().RGBAAt(0, 0); got.A > 1 {
		t.Errorf("uncovered pixel = %v, want transparent", got)
	}
}

func TestShadeMaskResolve(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 2, 2))
	mask.SetGray(0, 0, color.Gray{Y: 255})

	for _, inverse := range []bool{false, true} {
		r := NewRasterizer(2, 2)
		g, ok := shading.MaskQuad(mask, vgcore.RectXYWH(0, 0, 2, 2), view(2, 2), vgcore.Red, inverse)
		if !ok {
			t.Fatal("MaskQuad returned false")
		}
		r.Shade(g, shading.StencilIgnore)
		for y := range 2 {
			for x := range 2 {
				set := x == 0 && y == 0
				want := set != inverse
				if got := r.Image().RGBAAt(x, y).A != 0; got != want {
					t.Errorf("inverse=%v pixel (%d,%d) painted = %v, want %v", inverse, x, y, got, want)
				}
			}
		}
	}
}

func TestShadeBlur(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	img.SetNRGBA(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	s := vgcore.Image(img, vgcore.Point{})
	s.BlurRadius = 2

	r := NewRasterizer(9, 9)
	g, ok := shading.Resolve(s, view(9, 9))
	if !ok || g.Shader != shading.BlurImage {
		t.Fatalf("Resolve = %v, shader %v", ok, g.Shader)
	}
	r.Shade(g, shading.StencilIgnore)
	center := r.Image().RGBAAt(4, 4).A
	side := r.Image().RGBAAt(5, 4).A
	if center == 0xff || center == 0 {
		t.Errorf("blurred center alpha = %d, want spread", center)
	}
	if side == 0 || side > center {
		t.Errorf("blurred neighbor alpha = %d, center %d", side, center)
	}
}

func TestSamplerWrap(t *testing.T) {
	s := newSampler(testImage(), true, 0)
	// Texel centers: (0.25, 0.25) is red, wrapping one tile over stays red.
	for _, uv := range [][2]float64{{0.25, 0.25}, {1.25, 0.25}, {-0.75, 2.25}} {
		if got := s.sample(uv[0], uv[1]); got[0] < 0.99 || got[1] > 0.01 {
			t.Errorf("sample(%v) = %v, want red", uv, got)
		}
	}
	clamped := newSampler(testImage(), false, 0)
	if got := clamped.sample(5, 0.25); got[1] < 0.99 {
		t.Errorf("clamped sample = %v, want green edge texel", got)
	}
}

func BenchmarkFillStencil(b *testing.B) {
	r := NewRasterizer(256, 256)
	path := vgcore.NewPath()
	path.AddEllipse(vgcore.RectXYWH(16, 16, 224, 224), vgcore.Identity())
	mesh, _ := tessellate.Fill(path, view(256, 256))
	for b.Loop() {
		r.FillStencil(mesh.Vertices, mesh.Indices)
	}
}
