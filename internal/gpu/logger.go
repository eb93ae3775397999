// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/vgcore"
)

// loggerPtr stores a package override. Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

// slogger returns the current package logger.
// All logging in internal/gpu goes through this function. Without an
// override it follows vgcore.SetLogger.
func slogger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return vgcore.Logger()
}

// SetLogger overrides the package logger. Pass nil to follow
// vgcore.SetLogger again. Called by render.DeviceContext when it is
// created with its own logger.
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(l)
}
