// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu runs the two-pass stencil-then-cover pipeline on a WebGPU
// device through the gogpu/wgpu hardware abstraction layer.
//
// # Passes
//
// Every draw is split into two render passes on the same color target:
//
//  1. Winding: the tessellated path is drawn with the StencilOnly shader and
//     no color writes. A fill increments the stencil on front faces and
//     decrements it on back faces, both wrapping. A stroke increments on
//     both faces and clamps.
//  2. Shading: the geometry produced by the shading resolver is drawn with
//     one of the color shaders. The stencil test selected by the caller
//     decides which pixels are written. The reference value is always 0.
//
// # Pipelines
//
// PipelineCache compiles each WGSL program once and creates render
// pipelines on demand, keyed by RenderState. Shader sources are embedded
// and validated with naga before they reach the device.
//
// # Resources
//
// Vertex buffers, uniforms, uploaded textures and bind groups live for one
// draw. StencilRasterizer releases them once Queue.PollCompleted reports
// the submission that used them, or on Flush.
package gpu
