// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
)

// sampler filters premultiplied texels bilinearly.
type sampler struct {
	pix    []float64
	width  int
	height int
	repeat bool
}

// newSampler copies img into premultiplied float texels. A positive blur
// radius applies a Gaussian blur first.
func newSampler(img image.Image, repeat bool, blurRadius float64) *sampler {
	var rgba *image.RGBA
	if blurRadius > 0 {
		rgba = blur.Gaussian(img, blurRadius)
	} else {
		rgba = clone.AsRGBA(img)
	}
	b := rgba.Bounds()
	s := &sampler{
		pix:    make([]float64, b.Dx()*b.Dy()*4),
		width:  b.Dx(),
		height: b.Dy(),
		repeat: repeat,
	}
	for y := range s.height {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+s.width*4]
		for i, v := range row {
			s.pix[y*s.width*4+i] = float64(v) / 0xff
		}
	}
	return s
}

// sample returns the filtered premultiplied color at texture coordinate
// (u, v), where (0, 0) is the top-left corner of the texture and (1, 1)
// the bottom-right.
func (s *sampler) sample(u, v float64) [4]float64 {
	if s.width == 0 || s.height == 0 {
		return [4]float64{}
	}
	x := u*float64(s.width) - 0.5
	y := v*float64(s.height) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0

	ix0, ix1 := s.wrap(int(x0), s.width), s.wrap(int(x0)+1, s.width)
	iy0, iy1 := s.wrap(int(y0), s.height), s.wrap(int(y0)+1, s.height)

	var out [4]float64
	for c := range out {
		top := s.texel(ix0, iy0, c)*(1-fx) + s.texel(ix1, iy0, c)*fx
		bottom := s.texel(ix0, iy1, c)*(1-fx) + s.texel(ix1, iy1, c)*fx
		out[c] = top*(1-fy) + bottom*fy
	}
	return out
}

// nearest returns the texel containing (u, v) without filtering.
func (s *sampler) nearest(u, v float64) [4]float64 {
	if s.width == 0 || s.height == 0 {
		return [4]float64{}
	}
	x := s.wrap(int(math.Floor(u*float64(s.width))), s.width)
	y := s.wrap(int(math.Floor(v*float64(s.height))), s.height)
	return [4]float64{s.texel(x, y, 0), s.texel(x, y, 1), s.texel(x, y, 2), s.texel(x, y, 3)}
}

func (s *sampler) texel(x, y, c int) float64 {
	return s.pix[(y*s.width+x)*4+c]
}

// wrap maps a texel index into [0, n) by repeating or clamping.
func (s *sampler) wrap(i, n int) int {
	if s.repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}
