// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestVertexLayout(t *testing.T) {
	var v Vertex
	if got := unsafe.Sizeof(v); got != VertexSize {
		t.Errorf("Sizeof(Vertex) = %d, want %d", got, VertexSize)
	}
	if got := unsafe.Offsetof(v.TexCoord); got != 8 {
		t.Errorf("TexCoord offset = %d, want 8", got)
	}
	if got := unsafe.Offsetof(v.Color); got != 16 {
		t.Errorf("Color offset = %d, want 16", got)
	}
}

func TestAppendVertices(t *testing.T) {
	v := NewVertex(Pt(1, -1), Pt(0.25, 0.75), RGBA(1, 0, 0, 0.5))
	buf := AppendVertices(nil, []Vertex{v, v})
	if len(buf) != 2*VertexSize {
		t.Fatalf("len = %d, want %d", len(buf), 2*VertexSize)
	}
	want := []float32{1, -1, 0.25, 0.75, 1, 0, 0, 0.5}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[VertexSize+i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestAppendPositionsAndIndices(t *testing.T) {
	buf := AppendPositions(nil, []Point{{X: 2, Y: 3}})
	if len(buf) != StencilVertexSize {
		t.Fatalf("len = %d, want %d", len(buf), StencilVertexSize)
	}
	if y := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])); y != 3 {
		t.Errorf("y = %v, want 3", y)
	}
	idx := AppendIndices(nil, []uint32{7, 0x01020304})
	if len(idx) != 8 || binary.LittleEndian.Uint32(idx[4:]) != 0x01020304 {
		t.Errorf("AppendIndices = %v", idx)
	}
}
