// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"
)

const (
	// subpixelBits is the fixed-point precision of vertex positions.
	subpixelBits = 8
	subpixel     = 1 << subpixelBits
	halfSubpixel = subpixel / 2

	// maxCoord bounds vertex positions in pixels so edge functions cannot
	// overflow int64.
	maxCoord = 1 << 20
)

// fixedPoint is a vertex position in subpixel units, y pointing down.
type fixedPoint struct {
	x, y int64
}

// toFixed maps a clip-space position to subpixel coordinates.
func (r *Rasterizer) toFixed(x, y float64) fixedPoint {
	px := (x + 1) / 2 * float64(r.width)
	py := (1 - y) / 2 * float64(r.height)
	return fixedPoint{x: fixed(px), y: fixed(py)}
}

func fixed(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-maxCoord, math.Min(maxCoord, v))
	return int64(math.Round(v * subpixel))
}

// orient is twice the signed area of (a, b, p). It is positive when p lies
// to the right of a->b on screen.
func orient(a, b, p fixedPoint) int64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// topLeft reports whether a->b is a top or left edge of a triangle whose
// edge functions are positive inside.
func topLeft(a, b fixedPoint) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy < 0 || (dy == 0 && dx > 0)
}

// triangle is a set-up triangle ready for scan conversion.
type triangle struct {
	v     [3]fixedPoint
	order [3]int // original index of each entry in v
	area  int64
	front bool

	minX, minY, maxX, maxY int
}

// setupTriangle prepares a, b, c for scan conversion, clipped to the
// canvas. It reports false for degenerate or fully clipped triangles.
//
// Front faces are counterclockwise in clip space, which is clockwise once
// y points down.
func (r *Rasterizer) setupTriangle(a, b, c fixedPoint) (triangle, bool) {
	area := orient(a, b, c)
	if area == 0 {
		return triangle{}, false
	}
	t := triangle{
		v:     [3]fixedPoint{a, b, c},
		order: [3]int{0, 1, 2},
		area:  area,
		front: area < 0,
	}
	if area < 0 {
		t.v[1], t.v[2] = c, b
		t.order[1], t.order[2] = 2, 1
		t.area = -area
	}

	lo := fixedPoint{x: min(a.x, b.x, c.x), y: min(a.y, b.y, c.y)}
	hi := fixedPoint{x: max(a.x, b.x, c.x), y: max(a.y, b.y, c.y)}
	// Pixel x is sampled at x*subpixel + halfSubpixel.
	t.minX = max(0, int(ceilDiv(lo.x-halfSubpixel, subpixel)))
	t.minY = max(0, int(ceilDiv(lo.y-halfSubpixel, subpixel)))
	t.maxX = min(r.width-1, int(floorDiv(hi.x-halfSubpixel, subpixel)))
	t.maxY = min(r.height-1, int(floorDiv(hi.y-halfSubpixel, subpixel)))
	if t.minX > t.maxX || t.minY > t.maxY {
		return triangle{}, false
	}
	return t, true
}

// scan calls fn for every covered pixel with the barycentric weights of
// the original vertices.
func (t *triangle) scan(fn func(x, y int, w [3]float64)) {
	v0, v1, v2 := t.v[0], t.v[1], t.v[2]
	// Non-top-left edges exclude pixels exactly on them.
	var bias [3]int64
	if !topLeft(v1, v2) {
		bias[0] = -1
	}
	if !topLeft(v2, v0) {
		bias[1] = -1
	}
	if !topLeft(v0, v1) {
		bias[2] = -1
	}
	inv := 1 / float64(t.area)

	for y := t.minY; y <= t.maxY; y++ {
		py := int64(y)*subpixel + halfSubpixel
		for x := t.minX; x <= t.maxX; x++ {
			p := fixedPoint{x: int64(x)*subpixel + halfSubpixel, y: py}
			e0 := orient(v1, v2, p)
			e1 := orient(v2, v0, p)
			e2 := orient(v0, v1, p)
			if e0+bias[0] < 0 || e1+bias[1] < 0 || e2+bias[2] < 0 {
				continue
			}
			var w [3]float64
			w[t.order[0]] = float64(e0) * inv
			w[t.order[1]] = float64(e1) * inv
			w[t.order[2]] = float64(e2) * inv
			fn(x, y, w)
		}
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
