// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vgcore"
	"github.com/gogpu/vgcore/internal/gpu"
)

// Errors returned by NewDeviceContext and GPU targets.
var (
	ErrNilDevice                = gpu.ErrNilDevice
	ErrPipelineCacheUnavailable = gpu.ErrPipelineCacheUnavailable
	ErrShaderValidation         = gpu.ErrShaderValidation
)

// halProvider is implemented by hosts that expose their HAL device, such as
// gogpu's App.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// DeviceContext shares one GPU device and its pipeline cache between GPU
// targets.
//
// vgcore RECEIVES the device from the host; it never creates one. The
// pipeline cache is built on first use and lives until Close.
type DeviceContext struct {
	device hal.Device
	queue  hal.Queue
	logger *slog.Logger

	once  sync.Once
	cache *gpu.PipelineCache

	mu     sync.Mutex
	closed bool
}

// NewDeviceContext wraps a HAL device and queue. A WithLogger option
// becomes the GPU pipeline logger; the other options are ignored.
func NewDeviceContext(device hal.Device, queue hal.Queue, opts ...Option) (*DeviceContext, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger != nil {
		gpu.SetLogger(logger)
	} else {
		logger = vgcore.Logger()
	}
	return &DeviceContext{device: device, queue: queue, logger: logger}, nil
}

// NewDeviceContextFromProvider wraps the device of a host application. The
// provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue.
func NewDeviceContextFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*DeviceContext, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: provider HalQueue is not hal.Queue")
	}
	return NewDeviceContext(device, queue, opts...)
}

// Pipelines returns the shared pipeline cache, creating it on first call.
// It returns nil when the cache could not be created or the context is
// closed.
func (dc *DeviceContext) Pipelines() *gpu.PipelineCache {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.closed {
		return nil
	}
	dc.once.Do(func() {
		cache, err := gpu.NewPipelineCache(dc.device, dc.queue)
		if err != nil {
			dc.logger.Error("render: pipeline cache unavailable", "err", err)
			return
		}
		dc.cache = cache
	})
	return dc.cache
}

// Close waits for the device to go idle and releases the pipeline cache.
// Targets created from the context must be destroyed first.
func (dc *DeviceContext) Close() {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if dc.closed {
		return
	}
	dc.closed = true
	if dc.cache != nil {
		if err := dc.device.WaitIdle(); err != nil {
			dc.logger.Warn("render: wait idle failed", "err", err)
		}
		dc.cache.Destroy()
		dc.cache = nil
	}
}
