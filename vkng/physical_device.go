package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

type PhysicalDevice struct {
	Handle core1_0.PhysicalDevice
}

var deviceTypes = map[core1_0.PhysicalDeviceType]gfx.DeviceType{
	core1_0.PhysicalDeviceTypeOther:         gfx.DeviceTypeOther,
	core1_0.PhysicalDeviceTypeIntegratedGPU: gfx.DeviceTypeIntegratedGPU,
	core1_0.PhysicalDeviceTypeDiscreteGPU:   gfx.DeviceTypeDiscreteGPU,
	core1_0.PhysicalDeviceTypeVirtualGPU:    gfx.DeviceTypeVirtualGPU,
	core1_0.PhysicalDeviceTypeCPU:           gfx.DeviceTypeCPU,
}

func deviceType(t core1_0.PhysicalDeviceType) gfx.DeviceType {
	// unknown values are reported as Other
	return deviceTypes[t]
}

func (d *PhysicalDevice) Properties() (gfx.DeviceProperties, error) {
	properties, err := d.Handle.Properties()
	if err != nil {
		return gfx.DeviceProperties{}, err
	}

	result := gfx.DeviceProperties{
		Name:              properties.DriverName,
		Type:              deviceType(properties.DriverType),
		VendorID:          properties.VendorID,
		DeviceID:          properties.DeviceID,
		PipelineCacheUUID: properties.PipelineCacheUUID,
	}
	if properties.Limits != nil {
		result.MaxImageDimension2D = properties.Limits.MaxImageDimension2D
	}
	return result, nil
}

func (d *PhysicalDevice) Features() gfx.DeviceFeatures {
	features := d.Handle.Features()
	if features == nil {
		return gfx.DeviceFeatures{}
	}
	return gfx.DeviceFeatures{
		GeometryShader:    features.GeometryShader,
		SamplerAnisotropy: features.SamplerAnisotropy,
	}
}

func (d *PhysicalDevice) QueueFamilies() []gfx.QueueFamily {
	properties := d.Handle.QueueFamilyProperties()

	families := make([]gfx.QueueFamily, 0, len(properties))
	for _, family := range properties {
		families = append(families, gfx.QueueFamily{Flags: family.QueueFlags, Count: family.QueueCount})
	}
	return families
}

func (d *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	extensions, _, err := d.Handle.EnumerateDeviceExtensionProperties()
	if err != nil {
		return nil, err
	}
	return names(extensions), nil
}

func (d *PhysicalDevice) CreateDevice(info gfx.DeviceCreateInfo) (gfx.Device, error) {
	var queueInfos []core1_0.DeviceQueueCreateInfo
	for _, queue := range info.Queues {
		queueInfos = append(queueInfos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.FamilyIndex,
			QueuePriorities:  queue.Priorities,
		})
	}

	handle, _, err := d.Handle.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queueInfos,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			GeometryShader:    info.Features.GeometryShader,
			SamplerAnisotropy: info.Features.SamplerAnisotropy,
		},
		EnabledExtensionNames: info.ExtensionNames,
		EnabledLayerNames:     info.LayerNames,
	})
	if err != nil {
		return nil, err
	}

	return newDevice(handle), nil
}

// physicalHandle recovers the driver handle behind device
func physicalHandle(device gfx.PhysicalDevice) (core1_0.PhysicalDevice, error) {
	d, ok := device.(*PhysicalDevice)
	if !ok || d == nil {
		return nil, errors.AssertionFailedf("vkng: unexpected physical device type %T", device)
	}
	return d.Handle, nil
}
