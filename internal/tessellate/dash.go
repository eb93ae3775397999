// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tessellate

import (
	"math"

	"github.com/gogpu/vgcore"
)

// DashState tracks the position inside a cyclic dash pattern. Even indices
// are dashes (drawn) and odd indices are gaps. Index grows without bound;
// the pattern entry is Index modulo the pattern length.
type DashState struct {
	// Index is the current pattern entry.
	Index int
	// Remain is the length left in the current entry.
	Remain float64

	pattern     []float64
	initIndex   int
	initRemain  float64
	cycleLength float64
}

// NewDashState returns the state at the given phase. Negative lengths are
// used by magnitude. A positive phase walks the pattern forward and a
// negative phase walks it backward; the result always lands inside an
// entry with at least Epsilon remaining.
//
// An empty or all-zero pattern yields a state that is always drawing.
func NewDashState(pattern []float64, phase float64) DashState {
	var d DashState
	var total float64
	for _, v := range pattern {
		d.pattern = append(d.pattern, math.Abs(v))
		total += math.Abs(v)
	}
	if total < vgcore.Epsilon {
		d.pattern = nil
		return d
	}

	// Parity of an odd-length pattern flips every pass, so the state only
	// repeats after two passes.
	d.cycleLength = total
	if len(d.pattern)%2 == 1 {
		d.cycleLength *= 2
	}
	if math.Abs(phase) > d.cycleLength {
		phase = math.Mod(phase, d.cycleLength)
	}

	if phase > 0 {
		d.Remain = d.length(0)
		for phase > d.Remain {
			d.Index++
			d.Remain += d.length(d.Index)
		}
		d.Remain -= phase
	} else {
		for phase < 0 {
			if d.Index == 0 {
				d.Index += len(d.pattern) * 2
			}
			d.Index--
			phase += d.length(d.Index)
		}
		d.Remain = d.length(d.Index) - phase
	}
	d.Advance()

	d.initIndex, d.initRemain = d.Index, d.Remain
	return d
}

// Enabled reports whether the state carries a usable pattern.
func (d *DashState) Enabled() bool {
	return len(d.pattern) > 0
}

// Drawing reports whether the current entry is a dash.
func (d *DashState) Drawing() bool {
	return d.Index%2 == 0
}

// Advance skips exhausted entries. It reports whether any entry boundary
// was crossed.
func (d *DashState) Advance() bool {
	if !d.Enabled() {
		return false
	}
	crossed := false
	for d.Remain < vgcore.Epsilon {
		d.Index++
		d.Remain += d.length(d.Index)
		crossed = true
	}
	return crossed
}

// Consume shortens the current entry by n.
func (d *DashState) Consume(n float64) {
	d.Remain -= n
}

// Reset returns to the state produced by NewDashState.
func (d *DashState) Reset() {
	d.Index, d.Remain = d.initIndex, d.initRemain
}

// AverageLength returns the mean pattern entry length, or 0 when the
// pattern is empty.
func (d *DashState) AverageLength() float64 {
	if !d.Enabled() {
		return 0
	}
	var total float64
	for _, v := range d.pattern {
		total += v
	}
	return total / float64(len(d.pattern))
}

func (d *DashState) length(i int) float64 {
	return d.pattern[i%len(d.pattern)]
}
