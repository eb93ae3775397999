// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/vgcore"
)

// options holds the settings shared by NewContext and NewDeviceContext.
type options struct {
	contentOffset vgcore.Point
	contentScale  vgcore.Size
	hasScale      bool
	transform     vgcore.Transform
	logger        *slog.Logger
}

// Option configures a Context or a DeviceContext.
type Option func(*options)

func defaultOptions() options {
	return options{transform: vgcore.Identity()}
}

// WithContentOffset sets the offset added to content coordinates before
// they are mapped to the target.
func WithContentOffset(offset vgcore.Point) Option {
	return func(o *options) {
		o.contentOffset = offset
	}
}

// WithContentScale sets the size of the content area that covers the whole
// target. The default is the target size in pixels, one content unit per
// pixel.
func WithContentScale(scale vgcore.Size) Option {
	return func(o *options) {
		o.contentScale = scale
		o.hasScale = true
	}
}

// WithTransform sets the initial current transform.
func WithTransform(t vgcore.Transform) Option {
	return func(o *options) {
		o.transform = t
	}
}

// WithLogger sets the logger used for skipped draws. Given to
// NewDeviceContext it also becomes the GPU pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
