// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vgcore is the vector rasterization core of a declarative UI
// toolkit: transform math, Bézier curves, paths, stroke and fill styles,
// gradients and shadings.
//
// # Overview
//
// Drawing follows a fixed pipeline. A path is tessellated on the CPU into
// triangles, the triangles are rasterized into a stencil buffer to record
// winding counts, and the requested shading is drawn where the stencil test
// passes. Content coordinates reach clip space through ViewTransform,
// which flips Y and maps the content rectangle to [-1,1]x[-1,1].
//
//	ctx := render.NewContext(render.NewSoftwareTarget(256, 256))
//
//	p := vgcore.NewPath()
//	p.AddEllipse(vgcore.RectXYWH(16, 16, 224, 224), vgcore.Identity())
//	ctx.Fill(p, vgcore.Solid(vgcore.Red), vgcore.DefaultFillStyle())
//
//	style := vgcore.DefaultStrokeStyle().WithWidth(8).WithCap(vgcore.LineCapRound)
//	ctx.Stroke(p, vgcore.Solid(vgcore.Black), style)
//
// # Architecture
//
// The module is organized into:
//   - vgcore: geometry and style data model (this package)
//   - internal/tessellate: fill fans and stroke outlines
//   - internal/shading: gradient and image geometry in clip space
//   - internal/gpu: WGSL shaders, pipeline cache and stencil rasterizer
//   - internal/raster: CPU reference rasterizer with a stencil plane
//   - render: device context and drawing context
//   - scene: YAML and TOML scene documents
//
// # Failure model
//
// Draw calls return false instead of an error. Degenerate input draws
// nothing silently; resource failures are logged through Logger and skip
// the one draw.
package vgcore
