// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"fmt"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("scene: invalid document")

// Document is a drawing: a canvas and the items drawn on it in order.
type Document struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Background string `yaml:"background,omitempty" toml:"background,omitempty"`
	Items      []Item `yaml:"items" toml:"items"`
}

// Item is one fill or stroke. Exactly one of Path and Shape is set, and
// exactly one of Fill and Stroke.
type Item struct {
	Path      string      `yaml:"path,omitempty" toml:"path,omitempty"`
	Shape     *Shape      `yaml:"shape,omitempty" toml:"shape,omitempty"`
	Fill      *Fill       `yaml:"fill,omitempty" toml:"fill,omitempty"`
	Stroke    *Stroke     `yaml:"stroke,omitempty" toml:"stroke,omitempty"`
	Shading   Shading     `yaml:"shading" toml:"shading"`
	Transform []Transform `yaml:"transform,omitempty" toml:"transform,omitempty"`
}

// Fill selects the winding rule of a fill. Inverse fills outside the path.
type Fill struct {
	EvenOdd bool `yaml:"evenOdd,omitempty" toml:"evenOdd,omitempty"`
	Inverse bool `yaml:"inverse,omitempty" toml:"inverse,omitempty"`
}

// Stroke describes a stroke. Cap is butt, round or square; Join is miter,
// round or bevel.
type Stroke struct {
	Width      float64   `yaml:"width" toml:"width"`
	Cap        string    `yaml:"cap,omitempty" toml:"cap,omitempty"`
	Join       string    `yaml:"join,omitempty" toml:"join,omitempty"`
	MiterLimit float64   `yaml:"miterLimit,omitempty" toml:"miterLimit,omitempty"`
	Dash       []float64 `yaml:"dash,omitempty" toml:"dash,omitempty"`
	DashPhase  float64   `yaml:"dashPhase,omitempty" toml:"dashPhase,omitempty"`
}

// Transform is one step of an item transform. Exactly one field is set.
// Steps apply in order; Rotate is in degrees.
type Transform struct {
	Translate *[2]float64 `yaml:"translate,omitempty" toml:"translate,omitempty"`
	Scale     *[2]float64 `yaml:"scale,omitempty" toml:"scale,omitempty"`
	Rotate    *float64    `yaml:"rotate,omitempty" toml:"rotate,omitempty"`
}

// Validate checks the document without drawing it.
func (d *Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidScene, d.Width, d.Height)
	}
	if d.Background != "" {
		if _, err := parseColor(d.Background); err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidScene, err)
		}
	}
	for i := range d.Items {
		if err := d.Items[i].validate(); err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidScene, i, err)
		}
	}
	return nil
}

func (it *Item) validate() error {
	switch {
	case it.Path != "" && it.Shape != nil:
		return errors.New("both path and shape given")
	case it.Path == "" && it.Shape == nil:
		return errors.New("missing path or shape")
	case it.Fill != nil && it.Stroke != nil:
		return errors.New("both fill and stroke given")
	case it.Fill == nil && it.Stroke == nil:
		return errors.New("missing fill or stroke")
	}
	if _, err := it.path(); err != nil {
		return err
	}
	if it.Stroke != nil {
		if _, err := it.Stroke.style(); err != nil {
			return err
		}
	}
	if _, err := it.transform(); err != nil {
		return err
	}
	if _, err := it.Shading.shading(); err != nil {
		return fmt.Errorf("shading: %w", err)
	}
	return nil
}
