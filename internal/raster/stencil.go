// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"github.com/gogpu/vgcore"
)

// stencilOp updates a stencil value.
type stencilOp func(v uint8) uint8

func incrementWrap(v uint8) uint8 { return v + 1 }
func decrementWrap(v uint8) uint8 { return v - 1 }

func incrementClamp(v uint8) uint8 {
	if v == 0xff {
		return v
	}
	return v + 1
}

// FillStencil clears the stencil plane and accumulates the winding count of
// an indexed triangle mesh: front faces increment, back faces decrement,
// both wrapping. Vertices are in clip space.
//
// It reports false when an index is out of range.
func (r *Rasterizer) FillStencil(vertices []vgcore.Point, indices []uint32) bool {
	for _, i := range indices {
		if int(i) >= len(vertices) {
			vgcore.Logger().Warn("raster: fill index out of range", "index", i, "vertices", len(vertices))
			return false
		}
	}
	r.clearStencil()
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		r.stencilTriangle(a, b, c, incrementWrap, decrementWrap)
	}
	return true
}

// StrokeStencil clears the stencil plane and counts the overlap of an
// unindexed triangle list, clamping at 255 regardless of facing.
func (r *Rasterizer) StrokeStencil(vertices []vgcore.Point) bool {
	r.clearStencil()
	for i := 0; i+2 < len(vertices); i += 3 {
		r.stencilTriangle(vertices[i], vertices[i+1], vertices[i+2], incrementClamp, incrementClamp)
	}
	return true
}

func (r *Rasterizer) stencilTriangle(a, b, c vgcore.Point, front, back stencilOp) {
	t, ok := r.setupTriangle(r.toFixed(a.X, a.Y), r.toFixed(b.X, b.Y), r.toFixed(c.X, c.Y))
	if !ok {
		return
	}
	op := back
	if t.front {
		op = front
	}
	t.scan(func(x, y int, _ [3]float64) {
		i := y*r.width + x
		r.stencil[i] = op(r.stencil[i])
	})
}
