// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shading

// StencilTest selects which winding values let the shading pass write.
type StencilTest uint8

const (
	// StencilIgnore always passes.
	StencilIgnore StencilTest = iota
	// StencilNonZero passes where the winding count is not zero.
	StencilNonZero
	// StencilEvenOdd passes where the winding count is odd.
	StencilEvenOdd
	// StencilZero passes where the winding count is zero.
	StencilZero
	// StencilOdd passes where the winding count is even, the inverse of
	// StencilEvenOdd.
	StencilOdd

	// StencilTestCount is the number of stencil tests.
	StencilTestCount
)

// String returns the stencil test name.
func (t StencilTest) String() string {
	switch t {
	case StencilIgnore:
		return "Ignore"
	case StencilNonZero:
		return "NonZero"
	case StencilEvenOdd:
		return "EvenOdd"
	case StencilZero:
		return "Zero"
	case StencilOdd:
		return "Odd"
	default:
		return "Unknown"
	}
}

// ReadMask returns the stencil read mask: 1 for parity tests, 0xff
// otherwise.
func (t StencilTest) ReadMask() uint8 {
	if t == StencilEvenOdd || t == StencilOdd {
		return 1
	}
	return 0xff
}

// Pass reports whether a pixel with the given stencil value passes. The
// reference value is always 0: NonZero and EvenOdd compare not-equal, Zero
// and Odd compare equal.
func (t StencilTest) Pass(value uint8) bool {
	v := value & t.ReadMask()
	switch t {
	case StencilNonZero, StencilEvenOdd:
		return v != 0
	case StencilZero, StencilOdd:
		return v == 0
	default:
		return true
	}
}
