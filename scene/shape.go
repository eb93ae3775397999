// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"fmt"
	"math"

	"github.com/gogpu/vgcore"
)

// Shape kinds.
const (
	ShapeRect        = "rect"
	ShapeRoundedRect = "roundedRect"
	ShapeEllipse     = "ellipse"
	ShapeArc         = "arc"
)

// Shape is a geometric primitive. Rect is [x, y, width, height] for rect,
// roundedRect and ellipse. Arc uses Center, Radius and the Start and End
// angles in degrees.
type Shape struct {
	Kind       string     `yaml:"kind" toml:"kind"`
	Rect       [4]float64 `yaml:"rect,omitempty" toml:"rect,omitempty"`
	Radius     float64    `yaml:"radius,omitempty" toml:"radius,omitempty"`
	Continuous bool       `yaml:"continuous,omitempty" toml:"continuous,omitempty"`
	Center     [2]float64 `yaml:"center,omitempty" toml:"center,omitempty"`
	Start      float64    `yaml:"start,omitempty" toml:"start,omitempty"`
	End        float64    `yaml:"end,omitempty" toml:"end,omitempty"`
	Clockwise  bool       `yaml:"clockwise,omitempty" toml:"clockwise,omitempty"`
}

// ToPath converts the shape to a path.
func (s *Shape) ToPath() (*vgcore.Path, error) {
	p := vgcore.NewPath()
	r := vgcore.RectXYWH(s.Rect[0], s.Rect[1], s.Rect[2], s.Rect[3])
	switch s.Kind {
	case ShapeRect:
		p.AddRect(r, vgcore.Identity())
	case ShapeRoundedRect:
		style := vgcore.RoundedCornerCircular
		if s.Continuous {
			style = vgcore.RoundedCornerContinuous
		}
		p.AddRoundedRect(r, vgcore.Sz(s.Radius, s.Radius), style, vgcore.Identity())
	case ShapeEllipse:
		p.AddEllipse(r, vgcore.Identity())
	case ShapeArc:
		if s.Radius <= 0 {
			return nil, fmt.Errorf("arc radius %g", s.Radius)
		}
		center := vgcore.Pt(s.Center[0], s.Center[1])
		p.AddArc(center, s.Radius, degrees(s.Start), degrees(s.End), s.Clockwise, vgcore.Identity())
	default:
		return nil, fmt.Errorf("unknown shape %q", s.Kind)
	}
	return p, nil
}

func degrees(v float64) float64 {
	return v * math.Pi / 180
}

// path builds the item's path from its text form or shape.
func (it *Item) path() (*vgcore.Path, error) {
	if it.Shape != nil {
		return it.Shape.ToPath()
	}
	return vgcore.ParsePath(it.Path)
}

// transform composes the item's transform steps, first step first.
func (it *Item) transform() (vgcore.Transform, error) {
	t := vgcore.Identity()
	for i, step := range it.Transform {
		var next vgcore.Transform
		n := 0
		if step.Translate != nil {
			next = vgcore.Translation(step.Translate[0], step.Translate[1])
			n++
		}
		if step.Scale != nil {
			next = vgcore.Scale(step.Scale[0], step.Scale[1])
			n++
		}
		if step.Rotate != nil {
			next = vgcore.Rotation(degrees(*step.Rotate))
			n++
		}
		if n != 1 {
			return t, fmt.Errorf("transform step %d: want exactly one of translate, scale, rotate", i)
		}
		t = t.Concatenating(next)
	}
	return t, nil
}

var (
	lineCaps = map[string]vgcore.LineCap{
		"":       vgcore.LineCapButt,
		"butt":   vgcore.LineCapButt,
		"round":  vgcore.LineCapRound,
		"square": vgcore.LineCapSquare,
	}
	lineJoins = map[string]vgcore.LineJoin{
		"":      vgcore.LineJoinMiter,
		"miter": vgcore.LineJoinMiter,
		"round": vgcore.LineJoinRound,
		"bevel": vgcore.LineJoinBevel,
	}
)

func (s *Stroke) style() (vgcore.StrokeStyle, error) {
	lineCap, ok := lineCaps[s.Cap]
	if !ok {
		return vgcore.StrokeStyle{}, fmt.Errorf("unknown cap %q", s.Cap)
	}
	join, ok := lineJoins[s.Join]
	if !ok {
		return vgcore.StrokeStyle{}, fmt.Errorf("unknown join %q", s.Join)
	}
	if s.Width < 0 {
		return vgcore.StrokeStyle{}, fmt.Errorf("negative stroke width %g", s.Width)
	}
	style := vgcore.DefaultStrokeStyle().WithWidth(s.Width).WithCap(lineCap).WithJoin(join)
	if s.MiterLimit > 0 {
		style = style.WithMiterLimit(s.MiterLimit)
	}
	if len(s.Dash) > 0 {
		style = style.WithDash(s.DashPhase, s.Dash...)
	}
	return style, nil
}
