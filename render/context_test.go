// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/vgcore"
)

func rectPath(x, y, w, h float64) *vgcore.Path {
	p := vgcore.NewPath()
	p.AddRect(vgcore.RectXYWH(x, y, w, h), vgcore.Identity())
	return p
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func pixel(t *testing.T, ctx *Context, x, y int) color.RGBA {
	t.Helper()
	img, err := ctx.Image()
	if err != nil {
		t.Fatalf("Image() failed: %v", err)
	}
	return img.RGBAAt(x, y)
}

func TestContextDefaults(t *testing.T) {
	ctx := NewContext(NewSoftwareTarget(40, 30))
	if got := ctx.ContentScale(); got != vgcore.Sz(40, 30) {
		t.Errorf("ContentScale() = %v, want target size", got)
	}
	if ctx.Transform() != vgcore.Identity() {
		t.Errorf("Transform() = %v, want identity", ctx.Transform())
	}
	want := vgcore.ViewTransform(vgcore.Point{}, vgcore.Sz(40, 30))
	if ctx.ViewTransform() != want {
		t.Errorf("ViewTransform() = %v, want %v", ctx.ViewTransform(), want)
	}
	if ctx.Target() == nil {
		t.Error("Target() is nil")
	}
}

func TestContextOptions(t *testing.T) {
	tr := vgcore.Translation(3, 4)
	ctx := NewContext(NewSoftwareTarget(40, 40),
		WithContentOffset(vgcore.Pt(1, 2)),
		WithContentScale(vgcore.Sz(20, 10)),
		WithTransform(tr),
		WithLogger(vgcore.NopLogger()),
	)
	if ctx.ContentOffset() != vgcore.Pt(1, 2) {
		t.Errorf("ContentOffset() = %v", ctx.ContentOffset())
	}
	if ctx.ContentScale() != vgcore.Sz(20, 10) {
		t.Errorf("ContentScale() = %v", ctx.ContentScale())
	}
	if ctx.Transform() != tr {
		t.Errorf("Transform() = %v, want %v", ctx.Transform(), tr)
	}
}

func TestContextFill(t *testing.T) {
	ctx := NewContext(NewSoftwareTarget(40, 40))
	if !ctx.Fill(rectPath(10, 10, 20, 20), vgcore.Solid(vgcore.Red), vgcore.DefaultFillStyle()) {
		t.Fatal("Fill() = false")
	}
	if got := pixel(t, ctx, 20, 20); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside = %v, want opaque red", got)
	}
	if got := pixel(t, ctx, 5, 5); got.A != 0 {
		t.Errorf("outside = %v, want transparent", got)
	}
}

func TestContextFillSingleStopGradient(t *testing.T) {
	tests := []struct {
		name    string
		shading vgcore.Shading
	}{
		{"linear", vgcore.Linear(vgcore.EvenGradient(vgcore.Red), vgcore.Pt(0, 0), vgcore.Pt(40, 0), 0)},
		{"radial", vgcore.Radial(vgcore.EvenGradient(vgcore.Red), vgcore.Pt(20, 20), 0, 20, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(NewSoftwareTarget(40, 40))
			if !ctx.Fill(rectPath(10, 10, 20, 20), tt.shading, vgcore.DefaultFillStyle()) {
				t.Fatal("Fill() = false")
			}
			if got := pixel(t, ctx, 20, 20); !near(got.R, 255) || got.G != 0 || got.B != 0 || !near(got.A, 255) {
				t.Errorf("inside = %v, want opaque red", got)
			}
		})
	}
}

func TestContextFillRule(t *testing.T) {
	// Two nested squares with the same orientation: winding 2 in the middle.
	path := rectPath(0, 0, 40, 40)
	path.AddRect(vgcore.RectXYWH(10, 10, 20, 20), vgcore.Identity())

	tests := []struct {
		name      string
		evenOdd   bool
		wantInner uint8
	}{
		{"non-zero", false, 255},
		{"even-odd", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(NewSoftwareTarget(40, 40))
			style := vgcore.FillStyle{EvenOdd: tt.evenOdd}
			if !ctx.Fill(path, vgcore.Solid(vgcore.Blue), style) {
				t.Fatal("Fill() = false")
			}
			if got := pixel(t, ctx, 20, 20).A; got != tt.wantInner {
				t.Errorf("inner alpha = %d, want %d", got, tt.wantInner)
			}
			if got := pixel(t, ctx, 5, 5).A; got != 255 {
				t.Errorf("ring alpha = %d, want 255", got)
			}
		})
	}
}

func TestContextFillInverse(t *testing.T) {
	ctx := NewContext(NewSoftwareTarget(40, 40))
	if !ctx.FillInverse(rectPath(10, 10, 20, 20), vgcore.Solid(vgcore.Red), vgcore.DefaultFillStyle()) {
		t.Fatal("FillInverse() = false")
	}
	if got := pixel(t, ctx, 20, 20).A; got != 0 {
		t.Errorf("inside alpha = %d, want 0", got)
	}
	if got := pixel(t, ctx, 2, 2).A; got != 255 {
		t.Errorf("outside alpha = %d, want 255", got)
	}
}

func TestContextFillDegenerate(t *testing.T) {
	ctx := NewContext(NewSoftwareTarget(20, 20))
	if ctx.Fill(vgcore.NewPath(), vgcore.Solid(vgcore.Red), vgcore.DefaultFillStyle()) {
		t.Error("Fill of an empty path = true")
	}
	if ctx.Fill(rectPath(0, 0, 10, 10), nil, vgcore.DefaultFillStyle()) {
		t.Error("Fill with nil shading = true")
	}
	if got := pixel(t, ctx, 5, 5).A; got != 0 {
		t.Errorf("pixel alpha = %d after failed fills, want 0", got)
	}
}

func TestContextStrokeCoversOverlapOnce(t *testing.T) {
	ctx := NewContext(NewSoftwareTarget(40, 40))
	p := vgcore.NewPath()
	p.MoveTo(4, 20)
	p.LineTo(36, 20)
	p.MoveTo(20, 4)
	p.LineTo(20, 36)

	half := vgcore.RGBA(0, 0, 1, 0.5)
	if !ctx.Stroke(p, vgcore.Solid(half), vgcore.DefaultStrokeStyle().WithWidth(6)) {
		t.Fatal("Stroke() = false")
	}
	crossing := pixel(t, ctx, 20, 20)
	arm := pixel(t, ctx, 8, 20)
	if !near(crossing.A, 128) || !near(arm.A, 128) {
		t.Errorf("alpha crossing = %d, arm = %d, want both ~128", crossing.A, arm.A)
	}
	if got := pixel(t, ctx, 8, 8).A; got != 0 {
		t.Errorf("off-stroke alpha = %d, want 0", got)
	}
}

func TestContextTransforms(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		setup func(ctx *Context)
		on    image.Point
		off   image.Point
	}{
		{
			name:  "set",
			setup: func(ctx *Context) { ctx.SetTransform(vgcore.Translation(20, 0)) },
			on:    image.Pt(25, 5),
			off:   image.Pt(5, 5),
		},
		{
			// Scale applies first, then the existing translation.
			name: "concatenate",
			setup: func(ctx *Context) {
				ctx.SetTransform(vgcore.Translation(10, 10))
				ctx.ConcatenateTransform(vgcore.Scale(2, 2))
			},
			on:  image.Pt(28, 28),
			off: image.Pt(5, 5),
		},
		{
			name:  "content scale",
			opts:  []Option{WithContentScale(vgcore.Sz(20, 20))},
			setup: func(*Context) {},
			on:    image.Pt(15, 15),
			off:   image.Pt(25, 25),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(NewSoftwareTarget(40, 40), tt.opts...)
			tt.setup(ctx)
			ctx.Fill(rectPath(0, 0, 10, 10), vgcore.Solid(vgcore.Red), vgcore.DefaultFillStyle())
			if got := pixel(t, ctx, tt.on.X, tt.on.Y).A; got != 255 {
				t.Errorf("alpha at %v = %d, want 255", tt.on, got)
			}
			if got := pixel(t, ctx, tt.off.X, tt.off.Y).A; got != 0 {
				t.Errorf("alpha at %v = %d, want 0", tt.off, got)
			}
		})
	}
}

func TestContextDrawImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		img.Set(i%2, i/2, color.RGBA{B: 255, A: 255})
	}
	ctx := NewContext(NewSoftwareTarget(40, 40))
	if !ctx.DrawImage(img, vgcore.RectXYWH(0, 0, 20, 40)) {
		t.Fatal("DrawImage() = false")
	}
	if got := pixel(t, ctx, 10, 20); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("covered pixel = %v, want opaque blue", got)
	}
	if got := pixel(t, ctx, 30, 20).A; got != 0 {
		t.Errorf("uncovered alpha = %d, want 0", got)
	}
	if ctx.DrawImage(nil, vgcore.RectXYWH(0, 0, 10, 10)) {
		t.Error("DrawImage(nil) = true")
	}
	if ctx.DrawImage(img, vgcore.RectXYWH(0, 0, 0, 10)) {
		t.Error("DrawImage into an empty rect = true")
	}
}

func TestContextDrawMask(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		mask.SetGray(0, y, color.Gray{Y: 255})
		mask.SetGray(1, y, color.Gray{Y: 255})
	}
	tests := []struct {
		name    string
		inverse bool
		left    uint8
		right   uint8
	}{
		{"direct", false, 255, 0},
		{"inverse", true, 0, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(NewSoftwareTarget(40, 40))
			if !ctx.DrawMask(mask, vgcore.RectXYWH(0, 0, 40, 40), vgcore.Red, tt.inverse) {
				t.Fatal("DrawMask() = false")
			}
			if got := pixel(t, ctx, 5, 20).A; got != tt.left {
				t.Errorf("left alpha = %d, want %d", got, tt.left)
			}
			if got := pixel(t, ctx, 35, 20).A; got != tt.right {
				t.Errorf("right alpha = %d, want %d", got, tt.right)
			}
		})
	}
}

func TestContextClear(t *testing.T) {
	ctx := NewContext(NewSoftwareTarget(8, 8))
	ctx.Clear(vgcore.White)
	if got := pixel(t, ctx, 7, 7); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("cleared pixel = %v, want white", got)
	}
}
