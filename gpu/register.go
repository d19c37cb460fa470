package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/surface"
)

// BackendName is the registry name of the GPU backend.
const BackendName = "gpu"

// NewStandaloneProvider opens its own Vulkan device and creates a provider
// on it. Close destroys the device.
func NewStandaloneProvider(opts ...Option) (*Provider, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: no GPU adapters found")
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	p, err := NewProviderFromHAL(openDev.Device, openDev.Queue, opts...)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	p.release = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	tileatlas.Logger().Info("gpu: standalone device opened", "adapter", selected.Info.Name)
	return p, nil
}

// Register adds the GPU backend to the surface registry. Providers
// created through the registry open a standalone device.
func Register(opts ...Option) {
	surface.Register(surface.Backend{
		Name:     BackendName,
		Priority: surface.PriorityGPU,
		New: func() (tileatlas.Provider, error) {
			return NewStandaloneProvider(opts...)
		},
		Available: available,
	})
}

func available() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}
