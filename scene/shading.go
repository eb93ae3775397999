// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/vgcore"
)

// Shading kinds.
const (
	ShadingColor  = "color"
	ShadingLinear = "linear"
	ShadingRadial = "radial"
	ShadingConic  = "conic"
)

// Shading describes how an item is colored. Colors are hex strings. An
// empty Kind is a solid color.
type Shading struct {
	Kind        string     `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Color       string     `yaml:"color,omitempty" toml:"color,omitempty"`
	Stops       []Stop     `yaml:"stops,omitempty" toml:"stops,omitempty"`
	Start       [2]float64 `yaml:"start,omitempty" toml:"start,omitempty"`
	End         [2]float64 `yaml:"end,omitempty" toml:"end,omitempty"`
	Center      [2]float64 `yaml:"center,omitempty" toml:"center,omitempty"`
	StartRadius float64    `yaml:"startRadius,omitempty" toml:"startRadius,omitempty"`
	EndRadius   float64    `yaml:"endRadius,omitempty" toml:"endRadius,omitempty"`
	Angle       float64    `yaml:"angle,omitempty" toml:"angle,omitempty"`
	Repeat      bool       `yaml:"repeat,omitempty" toml:"repeat,omitempty"`
	Mirror      bool       `yaml:"mirror,omitempty" toml:"mirror,omitempty"`
	LinearLight bool       `yaml:"linearLight,omitempty" toml:"linearLight,omitempty"`
}

// Stop is a gradient color stop.
type Stop struct {
	Color  string  `yaml:"color" toml:"color"`
	Offset float64 `yaml:"offset" toml:"offset"`
}

func parseColor(s string) (vgcore.Color, error) {
	if s == "" {
		return vgcore.Color{}, errors.New("empty color")
	}
	return vgcore.ParseHex(s)
}

func (s *Shading) shading() (vgcore.Shading, error) {
	if s.Kind == "" || s.Kind == ShadingColor {
		c, err := parseColor(s.Color)
		if err != nil {
			return nil, err
		}
		return vgcore.Solid(c), nil
	}
	g, err := s.gradient()
	if err != nil {
		return nil, err
	}
	switch s.Kind {
	case ShadingLinear:
		return vgcore.Linear(g, point(s.Start), point(s.End), s.options()), nil
	case ShadingRadial:
		return vgcore.Radial(g, point(s.Center), s.StartRadius, s.EndRadius, s.options()), nil
	case ShadingConic:
		return vgcore.Conic(g, point(s.Center), degrees(s.Angle)), nil
	default:
		return nil, fmt.Errorf("unknown shading %q", s.Kind)
	}
}

func (s *Shading) gradient() (vgcore.Gradient, error) {
	if len(s.Stops) == 0 {
		return vgcore.Gradient{}, fmt.Errorf("%s gradient without stops", s.Kind)
	}
	stops := make([]vgcore.GradientStop, len(s.Stops))
	for i, st := range s.Stops {
		c, err := parseColor(st.Color)
		if err != nil {
			return vgcore.Gradient{}, fmt.Errorf("stop %d: %w", i, err)
		}
		stops[i] = vgcore.GradientStop{Color: c, Location: st.Offset}
	}
	return vgcore.NewGradient(stops...), nil
}

func (s *Shading) options() vgcore.GradientOptions {
	var opts vgcore.GradientOptions
	if s.Repeat {
		opts |= vgcore.GradientRepeat
	}
	if s.Mirror {
		opts |= vgcore.GradientMirror
	}
	if s.LinearLight {
		opts |= vgcore.GradientLinearColor
	}
	return opts
}

func point(v [2]float64) vgcore.Point {
	return vgcore.Pt(v[0], v[1])
}
