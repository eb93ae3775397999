// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vgcore/internal/shading"
)

// stencilFormat is the format of the winding plane.
const stencilFormat = gputypes.TextureFormatStencil8

// StencilMode selects the depth-stencil state of a pipeline. The first five
// modes test the winding plane during the shading pass and share their
// values with shading.StencilTest. Fill and Stroke write it.
type StencilMode uint8

const (
	StencilIgnore  = StencilMode(shading.StencilIgnore)
	StencilNonZero = StencilMode(shading.StencilNonZero)
	StencilEvenOdd = StencilMode(shading.StencilEvenOdd)
	StencilZero    = StencilMode(shading.StencilZero)
	StencilOdd     = StencilMode(shading.StencilOdd)

	// StencilFill increments on front faces and decrements on back faces,
	// wrapping.
	StencilFill = StencilMode(shading.StencilTestCount)
	// StencilStroke increments on both faces, clamping at 255.
	StencilStroke = StencilFill + 1

	stencilModeCount = StencilStroke + 1
)

// ModeFor returns the stencil mode that applies a shading-pass test.
func ModeFor(t shading.StencilTest) StencilMode {
	if t >= shading.StencilTestCount {
		return StencilIgnore
	}
	return StencilMode(t)
}

// String returns the mode name.
func (m StencilMode) String() string {
	switch m {
	case StencilFill:
		return "Fill"
	case StencilStroke:
		return "Stroke"
	default:
		return shading.StencilTest(m).String()
	}
}

// Writes reports whether the mode updates the winding plane.
func (m StencilMode) Writes() bool {
	return m == StencilFill || m == StencilStroke
}

// stencilFace builds a face state that applies pass on every covered sample.
func stencilFace(compare gputypes.CompareFunction, pass hal.StencilOperation) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     compare,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      pass,
	}
}

// newDepthStencilState returns the depth-stencil state of a mode, or nil
// for StencilIgnore, whose pipelines have no depth-stencil attachment.
// Depth is never tested or written.
func newDepthStencilState(m StencilMode) *hal.DepthStencilState {
	ds := &hal.DepthStencilState{
		Format:            stencilFormat,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
	}
	switch m {
	case StencilFill:
		ds.StencilFront = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationIncrementWrap)
		ds.StencilBack = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationDecrementWrap)
		ds.StencilReadMask = 0xff
		ds.StencilWriteMask = 0xff
	case StencilStroke:
		ds.StencilFront = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationIncrementClamp)
		ds.StencilBack = ds.StencilFront
		ds.StencilReadMask = 0xff
		ds.StencilWriteMask = 0xff
	case StencilNonZero, StencilEvenOdd, StencilZero, StencilOdd:
		compare := gputypes.CompareFunctionEqual
		if m == StencilNonZero || m == StencilEvenOdd {
			compare = gputypes.CompareFunctionNotEqual
		}
		ds.StencilFront = stencilFace(compare, hal.StencilOperationKeep)
		ds.StencilBack = ds.StencilFront
		ds.StencilReadMask = uint32(shading.StencilTest(m).ReadMask())
		ds.StencilWriteMask = 0
	default:
		return nil
	}
	return ds
}
