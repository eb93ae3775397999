// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws paths, images and masks onto a target with the
// stencil-then-cover technique.
//
// # Key Principle
//
// vgcore RECEIVES a GPU device from the host application, it does NOT
// create its own. A DeviceContext wraps the host's device and queue and owns
// the pipeline cache shared by every GPUTarget made from it. Without a GPU,
// SoftwareTarget runs the same two passes on the CPU.
//
// # Drawing
//
// Context holds the content mapping and the current transform, and issues
// draws:
//
//   - Fill tessellates the path into a centroid fan, counts winding in the
//     stencil plane and covers it with the resolved shading.
//   - Stroke tessellates the outline into triangles and covers their union.
//   - DrawImage and DrawMask cover a rectangle without a stencil test.
//
// Draws never return errors. A draw that produces nothing, such as an empty
// path or a failed allocation, reports false and is logged at debug level.
//
// # Usage
//
// Software rendering:
//
//	target := render.NewSoftwareTarget(800, 600)
//	ctx := render.NewContext(target)
//	ctx.Clear(vgcore.White)
//
//	path := vgcore.NewPath()
//	path.AddEllipse(vgcore.RectXYWH(100, 100, 200, 120), vgcore.Identity())
//	ctx.Fill(path, vgcore.Solid(vgcore.Blue), vgcore.DefaultFillStyle())
//
//	img, _ := target.Image()
//
// GPU rendering with a host device:
//
//	dc, err := render.NewDeviceContextFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	defer dc.Close()
//
//	target, err := render.NewGPUTarget(dc, 800, 600)
//	if err != nil {
//	    return err
//	}
//	defer target.Destroy()
//	ctx := render.NewContext(target)
package render
