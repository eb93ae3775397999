// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/render"
)

// Render draws the document on ctx in item order. The context transform
// applies to every item and is restored afterwards.
//
// Items that draw nothing are skipped and logged at debug level; Render
// only fails for documents that do not validate.
func (d *Document) Render(ctx *render.Context) error {
	if ctx == nil {
		return errors.New("scene: nil context")
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Background != "" {
		c, err := parseColor(d.Background)
		if err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidScene, err)
		}
		ctx.Clear(c)
	}

	base := ctx.Transform()
	defer ctx.SetTransform(base)

	for i := range d.Items {
		it := &d.Items[i]
		drawn, err := it.draw(ctx, base)
		if err != nil {
			return fmt.Errorf("%w: item %d: %w", ErrInvalidScene, i, err)
		}
		if !drawn {
			vgcore.Logger().Debug("scene: item skipped", "item", i)
		}
	}
	return nil
}

func (it *Item) draw(ctx *render.Context, base vgcore.Transform) (bool, error) {
	path, err := it.path()
	if err != nil {
		return false, err
	}
	t, err := it.transform()
	if err != nil {
		return false, err
	}
	s, err := it.Shading.shading()
	if err != nil {
		return false, err
	}
	ctx.SetTransform(t.Concatenating(base))

	if it.Stroke != nil {
		style, err := it.Stroke.style()
		if err != nil {
			return false, err
		}
		return ctx.Stroke(path, s, style), nil
	}
	style := vgcore.DefaultFillStyle()
	style.EvenOdd = it.Fill.EvenOdd
	if it.Fill.Inverse {
		return ctx.FillInverse(path, s, style), nil
	}
	return ctx.Fill(path, s, style), nil
}
