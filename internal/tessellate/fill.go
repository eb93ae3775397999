// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"github.com/gogpu/vgcore"
)

// fillInitialCapacity is the initial capacity of the vertex slice.
const fillInitialCapacity = 256

// FillMesh is an indexed triangle mesh of position-only vertices.
type FillMesh struct {
	Vertices []vgcore.Point
	Indices  []uint32
}

// TriangleCount returns the number of indexed triangles.
func (m FillMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// FillTessellator converts paths into centroid fans for stencil filling.
//
// For each polygon, the arithmetic mean of its boundary vertices becomes the
// pivot and the tessellator emits triangles (i-1, i, pivot) around the ring
// plus a closing triangle (last, first, pivot). A polygon of N boundary
// vertices yields N+1 vertices and N triangles.
//
// The tessellator is designed to be reused across draws via Reset.
type FillTessellator struct {
	// polygon accumulates the flattened boundary of the current subpath.
	polygon []vgcore.Point

	mesh FillMesh
}

// NewFillTessellator creates a tessellator with pre-allocated capacity.
func NewFillTessellator() *FillTessellator {
	return &FillTessellator{
		polygon: make([]vgcore.Point, 0, fillInitialCapacity),
		mesh: FillMesh{
			Vertices: make([]vgcore.Point, 0, fillInitialCapacity),
			Indices:  make([]uint32, 0, fillInitialCapacity*3),
		},
	}
}

// Reset clears the tessellator state for reuse without releasing memory.
func (ft *FillTessellator) Reset() {
	ft.polygon = ft.polygon[:0]
	ft.mesh.Vertices = ft.mesh.Vertices[:0]
	ft.mesh.Indices = ft.mesh.Indices[:0]
}

// Mesh returns the tessellated mesh. The slices are reused by the next
// Tessellate call.
func (ft *FillTessellator) Mesh() FillMesh {
	return ft.mesh
}

// Tessellate appends the fan tessellation of path, mapped through t, to the
// mesh. It reports false when the result has fewer than 3 vertices or
// fewer than 3 indices, which is a valid "nothing to fill" outcome.
func (ft *FillTessellator) Tessellate(path *vgcore.Path, t vgcore.Transform) bool {
	if path.IsEmpty() {
		return false
	}

	var (
		initial, current vgcore.Point
		hasCurrent       bool
	)
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case vgcore.MoveTo:
			ft.flushPolygon(t)
			initial, current = e.Point, e.Point
			hasCurrent = true

		case vgcore.LineTo:
			if hasCurrent {
				ft.startPolygon(current)
				ft.polygon = append(ft.polygon, e.Point)
			}
			current, hasCurrent = e.Point, true

		case vgcore.QuadTo:
			if hasCurrent {
				curve := vgcore.QuadraticBezier{P0: current, P1: e.Control, P2: e.Point}
				ft.flatten(curve.ApproximateLength(0), curve.Interpolate, current, e.Point)
			}
			current, hasCurrent = e.Point, true

		case vgcore.CubicTo:
			if hasCurrent {
				curve := vgcore.CubicBezier{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}
				ft.flatten(curve.ApproximateLength(0), curve.Interpolate, current, e.Point)
			}
			current, hasCurrent = e.Point, true

		case vgcore.Close:
			ft.flushPolygon(t)
			current = initial
		}
	}
	ft.flushPolygon(t)

	return len(ft.mesh.Vertices) >= 3 && len(ft.mesh.Indices) >= 3
}

// Fill tessellates path with a fresh tessellator. See FillTessellator.
func Fill(path *vgcore.Path, t vgcore.Transform) (FillMesh, bool) {
	ft := NewFillTessellator()
	ok := ft.Tessellate(path, t)
	return ft.Mesh(), ok
}

// startPolygon records the segment start when it opens a new polygon.
func (ft *FillTessellator) startPolygon(p vgcore.Point) {
	if len(ft.polygon) == 0 {
		ft.polygon = append(ft.polygon, p)
	}
}

// flatten samples a curve at parametric steps of 1/length. Curves shorter
// than Epsilon contribute nothing.
func (ft *FillTessellator) flatten(length float64, eval func(float64) vgcore.Point, start, end vgcore.Point) {
	if length <= vgcore.Epsilon {
		return
	}
	ft.startPolygon(start)
	step := 1 / length
	for u := step; u < 1; u += step {
		ft.polygon = append(ft.polygon, eval(u))
	}
	ft.polygon = append(ft.polygon, end)
}

// flushPolygon fans the current polygon into the mesh and starts a new one.
// Polygons with fewer than 2 vertices are dropped.
func (ft *FillTessellator) flushPolygon(t vgcore.Transform) {
	defer func() { ft.polygon = ft.polygon[:0] }()
	if len(ft.polygon) < 2 {
		return
	}

	base := uint32(len(ft.mesh.Vertices))
	var center vgcore.Point
	for _, p := range ft.polygon {
		v := t.Apply(p)
		ft.mesh.Vertices = append(ft.mesh.Vertices, v)
		center = center.Add(v)
	}
	center = center.Mul(1 / float64(len(ft.polygon)))
	pivot := uint32(len(ft.mesh.Vertices))
	ft.mesh.Vertices = append(ft.mesh.Vertices, center)

	for i := base + 1; i < pivot; i++ {
		ft.mesh.Indices = append(ft.mesh.Indices, i-1, i, pivot)
	}
	ft.mesh.Indices = append(ft.mesh.Indices, pivot-1, base, pivot)
}
