// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vgcore

import (
	"encoding/binary"
	"math"
)

// VertexSize is the byte size of an encoded Vertex.
const VertexSize = 32

// StencilVertexSize is the byte size of an encoded position-only vertex.
const StencilVertexSize = 8

// Vertex is the shading vertex layout: position at offset 0, texcoord at
// offset 8 and straight RGBA color at offset 16.
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
	Color    [4]float32
}

// NewVertex builds a vertex from a clip-space position, texture coordinate
// and color.
func NewVertex(pos, uv Point, c Color) Vertex {
	return Vertex{
		Position: [2]float32{float32(pos.X), float32(pos.Y)},
		TexCoord: [2]float32{float32(uv.X), float32(uv.Y)},
		Color:    c.Float32(),
	}
}

// AppendVertices appends the little-endian encoding of vs to dst.
func AppendVertices(dst []byte, vs []Vertex) []byte {
	for i := range vs {
		v := &vs[i]
		dst = appendFloat32s(dst, v.Position[:]...)
		dst = appendFloat32s(dst, v.TexCoord[:]...)
		dst = appendFloat32s(dst, v.Color[:]...)
	}
	return dst
}

// AppendPositions appends the little-endian position-only encoding of pts.
func AppendPositions(dst []byte, pts []Point) []byte {
	for _, p := range pts {
		dst = appendFloat32s(dst, float32(p.X), float32(p.Y))
	}
	return dst
}

// AppendIndices appends little-endian uint32 indices.
func AppendIndices(dst []byte, indices []uint32) []byte {
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

func appendFloat32s(dst []byte, vs ...float32) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}
