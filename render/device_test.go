// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/vgcore"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
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
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// newTestDeviceContext skips the test when naga cannot yet compile one of
// the shaders.
func newTestDeviceContext(t *testing.T) *DeviceContext {
	t.Helper()
	device, queue := createNoopDevice(t)
	dc, err := NewDeviceContext(device, queue)
	if err != nil {
		t.Fatalf("NewDeviceContext failed: %v", err)
	}
	t.Cleanup(dc.Close)
	if dc.Pipelines() == nil {
		t.Skip("Skipping: pipeline cache unavailable (naga limitation)")
	}
	return dc
}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return m.queue }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// halMockProvider also exposes its HAL objects.
type halMockProvider struct {
	mockProvider
	halDevice any
	halQueue  any
}

func (m *halMockProvider) HalDevice() any { return m.halDevice }
func (m *halMockProvider) HalQueue() any  { return m.halQueue }

func TestNewDeviceContextNil(t *testing.T) {
	if _, err := NewDeviceContext(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewDeviceContext(nil, nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := NewDeviceContextFromProvider(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewDeviceContextFromProvider(nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := NewGPUTarget(nil, 4, 4); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewGPUTarget(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestNewDeviceContextFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  bool
	}{
		{"no HAL accessors", &mockProvider{device: device, queue: queue}, true},
		{"wrong device type", &halMockProvider{halDevice: "device", halQueue: queue}, true},
		{"wrong queue type", &halMockProvider{halDevice: device, halQueue: 42}, true},
		{"HAL provider", &halMockProvider{halDevice: device, halQueue: queue}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc, err := NewDeviceContextFromProvider(tt.provider, WithLogger(vgcore.NopLogger()))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if dc != nil {
				dc.Close()
			}
		})
	}
}

func TestDeviceContextClose(t *testing.T) {
	dc := newTestDeviceContext(t)
	if dc.Pipelines() != dc.Pipelines() {
		t.Error("Pipelines() returned different caches")
	}
	dc.Close()
	dc.Close()
	if dc.Pipelines() != nil {
		t.Error("Pipelines() after Close is not nil")
	}
	if _, err := NewGPUTarget(dc, 4, 4); !errors.Is(err, ErrPipelineCacheUnavailable) {
		t.Errorf("NewGPUTarget after Close error = %v, want ErrPipelineCacheUnavailable", err)
	}
}

func TestNewGPUTargetInvalidSize(t *testing.T) {
	dc := newTestDeviceContext(t)
	for _, size := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if _, err := NewGPUTarget(dc, size[0], size[1]); err == nil {
			t.Errorf("NewGPUTarget(%d, %d) succeeded", size[0], size[1])
		}
	}
}

func TestGPUTargetDraws(t *testing.T) {
	dc := newTestDeviceContext(t)
	target, err := NewGPUTarget(dc, 32, 24)
	if err != nil {
		t.Fatalf("NewGPUTarget failed: %v", err)
	}
	defer target.Destroy()

	if w, h := target.Size(); w != 32 || h != 24 {
		t.Errorf("Size() = %d, %d, want 32, 24", w, h)
	}
	ctx := NewContext(target)
	ctx.Clear(vgcore.White)
	if !ctx.Fill(rectPath(4, 4, 16, 8), vgcore.Solid(vgcore.Red), vgcore.DefaultFillStyle()) {
		t.Error("Fill() = false")
	}
	if !ctx.FillInverse(rectPath(4, 4, 16, 8), vgcore.Solid(vgcore.Blue), vgcore.FillStyle{EvenOdd: true}) {
		t.Error("FillInverse() = false")
	}
	p := vgcore.NewPath()
	p.MoveTo(2, 2)
	p.LineTo(30, 20)
	if !ctx.Stroke(p, vgcore.Solid(vgcore.Blue), vgcore.DefaultStrokeStyle().WithWidth(3)) {
		t.Error("Stroke() = false")
	}
	target.Flush()

	img, err := ctx.Image()
	if err != nil {
		t.Fatalf("Image() failed: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Errorf("Image bounds = %v, want 32x24", img.Bounds())
	}
}

func TestGPUTargetDestroy(t *testing.T) {
	dc := newTestDeviceContext(t)
	target, err := NewGPUTarget(dc, 8, 8)
	if err != nil {
		t.Fatalf("NewGPUTarget failed: %v", err)
	}
	target.Destroy()
	target.Destroy()
	if target.FillStencil([]vgcore.Point{{}, {X: 1}, {Y: 1}}, []uint32{0, 1, 2}) {
		t.Error("FillStencil on a destroyed target = true")
	}
	if _, err := target.Image(); err == nil {
		t.Error("Image() on a destroyed target succeeded")
	}
}
