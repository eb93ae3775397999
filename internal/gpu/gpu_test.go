// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice opens a device on the noop backend, which accepts every
// command and completes submissions immediately.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestCache builds a pipeline cache on device, skipping the test when
// naga cannot yet handle one of the shaders.
func newTestCache(t *testing.T, device hal.Device, queue hal.Queue) *PipelineCache {
	t.Helper()
	cache, err := NewPipelineCache(device, queue)
	if errors.Is(err, ErrShaderValidation) {
		t.Skipf("Skipping: naga limitation: %v", err)
	}
	if err != nil {
		t.Fatalf("NewPipelineCache failed: %v", err)
	}
	return cache
}
