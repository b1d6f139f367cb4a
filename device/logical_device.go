package device

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extensions/khr_portability_subset"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

// QueuePriority is used for every requested queue
const QueuePriority = float32(1.0)

// BuildOptions configures logical device creation
type BuildOptions struct {
	// Extensions must all be available on the device
	Extensions []string
	// ValidationLayers are passed through to the device when non-empty
	ValidationLayers []string
}

// LogicalDevice is a created device together with its queues. The caller owns Device
// and must Destroy it; the queues are released with it.
type LogicalDevice struct {
	Device         gfx.Device
	GraphicsQueue  gfx.Queue
	PresentQueue   gfx.Queue
	ExtensionNames []string
}

// QueueCreateInfos requests one queue per unique family in indices
func QueueCreateInfos(indices QueueFamilyIndices) []gfx.QueueCreateInfo {
	var queueFamilyOptions []gfx.QueueCreateInfo
	for _, queueFamily := range indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, gfx.QueueCreateInfo{
			FamilyIndex: queueFamily,
			Priorities:  []float32{QueuePriority},
		})
	}
	return queueFamilyOptions
}

// BuildLogicalDevice creates a logical device on physical with one queue per unique family
// in indices and retrieves the graphics and present queues. No optional features are enabled.
func BuildLogicalDevice(physical gfx.PhysicalDevice, indices QueueFamilyIndices, opts BuildOptions) (*LogicalDevice, error) {
	if !indices.IsComplete() {
		return nil, errors.Wrap(gfx.ErrDeviceCreationFailed, "queue family indices are incomplete")
	}

	available, err := physical.Extensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate device extensions")
	}

	missing := MissingExtensions(available, opts.Extensions)
	if len(missing) > 0 {
		return nil, errors.Wrapf(gfx.ErrMissingRequiredExtension, "device: %s", strings.Join(missing, ", "))
	}

	var extensionNames []string
	extensionNames = append(extensionNames, opts.Extensions...)

	// Required on portability implementations such as MoltenVK
	_, supported := available[khr_portability_subset.ExtensionName]
	_, requested := toSet(extensionNames)[khr_portability_subset.ExtensionName]
	if supported && !requested {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	device, err := physical.CreateDevice(gfx.DeviceCreateInfo{
		Queues:         QueueCreateInfos(indices),
		ExtensionNames: extensionNames,
		LayerNames:     opts.ValidationLayers,
		Features:       gfx.DeviceFeatures{},
	})
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "create logical device"), gfx.ErrDeviceCreationFailed)
	}

	return &LogicalDevice{
		Device:         device,
		GraphicsQueue:  device.Queue(indices.Graphics.Index, 0),
		PresentQueue:   device.Queue(indices.Present.Index, 0),
		ExtensionNames: extensionNames,
	}, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
