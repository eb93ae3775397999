// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tessellate converts paths into triangle geometry for the two-pass
// stencil rasterizer.
//
// # Fill
//
// Fill splits a path into polygons at every MoveTo and Close, flattens
// curves by uniform parametric stepping (one step per unit of approximate
// curve length in path space), and fans each polygon around its centroid.
// The fan is not a valid triangulation of concave or self-intersecting
// polygons on its own: the stencil pass accumulates signed winding counts
// and the fill rule is applied when shading.
//
// # Stroke
//
// Stroke emits an unindexed triangle list covering the stroked outline.
// Every flattened segment becomes one quad; joins (miter, round, bevel) and
// caps (butt, round, square) add triangles around the shared points. Dash
// patterns are tracked by a DashState that is advanced along the path and
// reset at every subpath.
//
// Both tessellators produce vertices already mapped through the caller's
// transform, normally the user transform concatenated with the view
// transform into clip space.
package tessellate
