// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/vgcore/internal/shading"
)

// blurTaps is the number of distinct weights of the 9-tap kernel: the
// center and four on each side.
const blurTaps = 5

// packUniforms encodes floats into a little-endian uniform block of
// uniformSize bytes.
func packUniforms(values ...float32) []byte {
	buf := make([]byte, uniformSize)
	for i, v := range values {
		if (i+1)*4 > uniformSize {
			break
		}
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// geometryUniforms returns the uniform block of a geometry's shader.
// Blur parameters are set per pass by blurUniforms.
func geometryUniforms(g shading.Geometry) []byte {
	switch g.Shader {
	case shading.MaskResolve:
		return packUniforms(float32(g.MaskLinear), float32(g.MaskConstant))
	case shading.ColorMatrixImage:
		m := g.ColorMatrix
		var v [20]float32
		for row := range 4 {
			for col := range 4 {
				v[row*4+col] = float32(m[row*5+col])
			}
			v[16+row] = float32(m[row*5+4])
		}
		return packUniforms(v[:]...)
	default:
		return packUniforms()
	}
}

// blurUniforms returns the parameters of one blur direction. stepU and
// stepV are the tap spacing in texture coordinates.
func blurUniforms(stepU, stepV float32, premultiplied bool, w [blurTaps]float32) []byte {
	var pre float32
	if premultiplied {
		pre = 1
	}
	return packUniforms(stepU, stepV, pre, 0, w[0], w[1], w[2], w[3], w[4])
}

// blurWeights returns normalized Gaussian weights for a 9-tap kernel that
// spans radius texels on each side, and the spacing between taps in texels.
// Sigma is half the radius.
func blurWeights(radius float64) (w [blurTaps]float32, step float32) {
	r := math32.Max(float32(radius), 0)
	step = r / (blurTaps - 1)
	sigma := math32.Max(r/2, 1e-3)
	var sum float32
	for i := range w {
		x := float32(i) * step
		w[i] = math32.Exp(-x * x / (2 * sigma * sigma))
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w, step
}
