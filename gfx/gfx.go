// Package gfx describes the parts of the graphics runtime and the window system that device
// and swapchain negotiation depend on. The vkng package binds these to vkngwrapper; tests bind
// them to fakes.
package gfx

import (
	"github.com/google/uuid"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// DeviceType is the category a physical device reports itself as
type DeviceType int

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeOther:         "Other",
	DeviceTypeIntegratedGPU: "Integrated GPU",
	DeviceTypeDiscreteGPU:   "Discrete GPU",
	DeviceTypeVirtualGPU:    "Virtual GPU",
	DeviceTypeCPU:           "CPU",
}

func (t DeviceType) String() string {
	name, ok := deviceTypeNames[t]
	if !ok {
		return "Unknown"
	}
	return name
}

// DeviceProperties are the immutable properties queried from a physical device
type DeviceProperties struct {
	Name                string
	Type                DeviceType
	VendorID            uint32
	DeviceID            uint32
	PipelineCacheUUID   uuid.UUID
	MaxImageDimension2D int
}

// DeviceFeatures are the feature flags a physical device supports, or that a
// logical device enables. The zero value enables nothing.
type DeviceFeatures struct {
	GeometryShader    bool
	SamplerAnisotropy bool
}

// QueueFamily is one entry of a physical device's queue family list
type QueueFamily struct {
	Flags core1_0.QueueFlags
	Count int
}

// Instance is an initialized graphics runtime instance.
type Instance interface {
	PhysicalDevices() ([]PhysicalDevice, error)
	Destroy()
}

// PhysicalDevice is a read-only view over an enumerated device. It is never owned:
// the handle stays valid only while the Instance that produced it is alive.
type PhysicalDevice interface {
	Properties() (DeviceProperties, error)
	Features() DeviceFeatures
	// QueueFamilies returns the queue families in their fixed index order
	QueueFamilies() []QueueFamily
	// Extensions returns the names of the available device extensions
	Extensions() (map[string]struct{}, error)
	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// Surface is a presentation target bound to a native window.
type Surface interface {
	SupportsPresent(device PhysicalDevice, queueFamily int) (bool, error)
	Capabilities(device PhysicalDevice) (*khr_surface.SurfaceCapabilities, error)
	Formats(device PhysicalDevice) ([]khr_surface.SurfaceFormat, error)
	PresentModes(device PhysicalDevice) ([]khr_surface.PresentMode, error)
	Destroy()
}

// QueueCreateInfo requests queues from a single family
type QueueCreateInfo struct {
	FamilyIndex int
	Priorities  []float32
}

// DeviceCreateInfo collects everything needed to create a logical device
type DeviceCreateInfo struct {
	Queues         []QueueCreateInfo
	ExtensionNames []string
	LayerNames     []string
	Features       DeviceFeatures
}

// Device is a logical device. It owns its queues and any swapchain created from it.
type Device interface {
	Queue(familyIndex, queueIndex int) Queue
	CreateSwapchain(surface Surface, info SwapchainCreateInfo) (Swapchain, error)
	WaitIdle() error
	Destroy()
}

// Queue is a handle retrieved from a logical device
type Queue interface {
	FamilyIndex() int
}

// SwapchainCreateInfo carries the negotiated swapchain parameters
type SwapchainCreateInfo struct {
	MinImageCount      int
	Format             khr_surface.SurfaceFormat
	PresentMode        khr_surface.PresentMode
	Extent             core1_0.Extent2D
	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
	PreTransform       khr_surface.SurfaceTransformFlags
}

// Swapchain is a created image chain together with one view per image.
// Destroy releases the image views before the swapchain itself.
type Swapchain interface {
	ImageCount() int
	Destroy()
}

// Window supplies surfaces and reports its drawable size in pixels
type Window interface {
	CreateSurface(instance Instance) (Surface, error)
	DrawableSize() (width, height int)
}
