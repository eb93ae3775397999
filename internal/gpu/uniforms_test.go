// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/shading"
)

func uniformAt(buf []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
}

func TestBlurWeightsNormalized(t *testing.T) {
	for _, radius := range []float64{0, 1, 4, 12.5} {
		w, step := blurWeights(radius)
		sum := w[0]
		for _, v := range w[1:] {
			sum += 2 * v
		}
		if math.Abs(float64(sum)-1) > 1e-5 {
			t.Errorf("radius %v: weights sum to %v", radius, sum)
		}
		if want := float32(radius) / 4; math.Abs(float64(step-want)) > 1e-6 {
			t.Errorf("radius %v: step = %v, want %v", radius, step, want)
		}
		if radius > 0 {
			for i := 1; i < len(w); i++ {
				if w[i] > w[i-1] {
					t.Errorf("radius %v: weights increase at tap %d", radius, i)
				}
			}
		}
	}
}

func TestGeometryUniformsColorMatrix(t *testing.T) {
	var m vgcore.ColorMatrix
	for i := range m {
		m[i] = float64(i)
	}
	buf := geometryUniforms(shading.Geometry{Shader: shading.ColorMatrixImage, ColorMatrix: m})
	if len(buf) != uniformSize {
		t.Fatalf("len = %d, want %d", len(buf), uniformSize)
	}
	// Rows hold the first four columns; the fifth column follows.
	want := []float32{
		0, 1, 2, 3,
		5, 6, 7, 8,
		10, 11, 12, 13,
		15, 16, 17, 18,
		4, 9, 14, 19,
	}
	for i, v := range want {
		if got := uniformAt(buf, i); got != v {
			t.Errorf("uniform[%d] = %v, want %v", i, got, v)
		}
	}
}

func TestGeometryUniformsMask(t *testing.T) {
	buf := geometryUniforms(shading.Geometry{Shader: shading.MaskResolve, MaskLinear: -1, MaskConstant: 1})
	if uniformAt(buf, 0) != -1 || uniformAt(buf, 1) != 1 {
		t.Errorf("mask uniforms = %v, %v", uniformAt(buf, 0), uniformAt(buf, 1))
	}
}

func TestBlurUniforms(t *testing.T) {
	w := [blurTaps]float32{0.5, 0.2, 0.05, 0, 0}
	buf := blurUniforms(0.25, 0, true, w)
	want := []float32{0.25, 0, 1, 0, 0.5, 0.2, 0.05, 0, 0}
	for i, v := range want {
		if got := uniformAt(buf, i); got != v {
			t.Errorf("uniform[%d] = %v, want %v", i, got, v)
		}
	}
}
