// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shading

import (
	"github.com/gogpu/vgcore"
)

// resolverInitialCapacity is the initial vertex capacity. A full conic fan
// is 1080 vertices.
const resolverInitialCapacity = 1152

// maxPeriods bounds how many repeat or mirror periods a gradient may emit.
// Beyond it the gradient is too fine to see and is drawn as its mean color.
const maxPeriods = 1 << 14

// linearColorSteps is how many sub-bands a stop interval is split into when
// colors interpolate in linear light.
const linearColorSteps = 8

// Resolver turns shadings into geometry. The vertex slice is reused across
// calls via Reset, so a Geometry is only valid until the next Resolve.
type Resolver struct {
	vertices []vgcore.Vertex
}

// NewResolver creates a resolver with pre-allocated capacity.
func NewResolver() *Resolver {
	return &Resolver{vertices: make([]vgcore.Vertex, 0, resolverInitialCapacity)}
}

// Reset clears the resolver for reuse without releasing memory.
func (r *Resolver) Reset() {
	r.vertices = r.vertices[:0]
}

// Resolve builds geometry covering the viewport for s. view maps shading
// coordinates (the space gradient points and image origins are given in)
// into clip space.
//
// It reports false when there is nothing to draw: a nil shading or empty
// palette, a gradient without stops, a missing or empty image, or a view
// transform that collapses the plane.
func (r *Resolver) Resolve(s vgcore.Shading, view vgcore.Transform) (Geometry, bool) {
	r.Reset()
	if view.Determinant() == 0 {
		return Geometry{}, false
	}
	switch s := vgcore.Resolve(s).(type) {
	case vgcore.SolidColor:
		return r.solid(s.Color), true
	case vgcore.LinearGradient:
		return r.linear(s, view)
	case vgcore.RadialGradient:
		return r.radial(s, view)
	case vgcore.ConicGradient:
		return r.conic(s, view)
	case vgcore.TiledImage:
		return r.tiledImage(s, view)
	default:
		return Geometry{}, false
	}
}

// Resolve resolves s with a fresh Resolver.
func Resolve(s vgcore.Shading, view vgcore.Transform) (Geometry, bool) {
	return NewResolver().Resolve(s, view)
}

func (r *Resolver) solid(c vgcore.Color) Geometry {
	r.vertices = fullViewport(r.vertices, c)
	return Geometry{Shader: VertexColor, Vertices: r.vertices}
}

// meanColor averages the stop colors, weighting each interval by its width.
func meanColor(stops []vgcore.GradientStop) vgcore.Color {
	var sum vgcore.Color
	var total float64
	for i := 1; i < len(stops); i++ {
		w := stops[i].Location - stops[i-1].Location
		m := stops[i-1].Color.Lerp(stops[i].Color, 0.5)
		sum = vgcore.Color{R: sum.R + m.R*w, G: sum.G + m.G*w, B: sum.B + m.B*w, A: sum.A + m.A*w}
		total += w
	}
	if total == 0 {
		return stops[0].Color
	}
	return vgcore.Color{R: sum.R / total, G: sum.G / total, B: sum.B / total, A: sum.A / total}
}
