package device_test

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

var requiredExtensions = []string{khr_swapchain.ExtensionName}

type fakePhysicalDevice struct {
	properties    gfx.DeviceProperties
	propertiesErr error
	features      gfx.DeviceFeatures
	families      []gfx.QueueFamily
	extensions    map[string]struct{}

	// surface side, read by fakeSurface
	presentable  map[int]bool
	presentErr   error
	formats      []khr_surface.SurfaceFormat
	presentModes []khr_surface.PresentMode

	createInfo *gfx.DeviceCreateInfo
	createErr  error
}

func (d *fakePhysicalDevice) Properties() (gfx.DeviceProperties, error) {
	return d.properties, d.propertiesErr
}

func (d *fakePhysicalDevice) Features() gfx.DeviceFeatures {
	return d.features
}

func (d *fakePhysicalDevice) QueueFamilies() []gfx.QueueFamily {
	return d.families
}

func (d *fakePhysicalDevice) Extensions() (map[string]struct{}, error) {
	return d.extensions, nil
}

func (d *fakePhysicalDevice) CreateDevice(info gfx.DeviceCreateInfo) (gfx.Device, error) {
	d.createInfo = &info
	if d.createErr != nil {
		return nil, d.createErr
	}
	return &fakeDevice{}, nil
}

type fakeQueue struct {
	family int
}

func (q fakeQueue) FamilyIndex() int {
	return q.family
}

type fakeDevice struct {
	gfx.Device
	destroyed bool
}

func (d *fakeDevice) Queue(familyIndex, queueIndex int) gfx.Queue {
	return fakeQueue{family: familyIndex}
}

func (d *fakeDevice) Destroy() {
	d.destroyed = true
}

type fakeSurface struct {
	queries int
}

func (s *fakeSurface) SupportsPresent(device gfx.PhysicalDevice, queueFamily int) (bool, error) {
	s.queries++
	d := device.(*fakePhysicalDevice)
	return d.presentable[queueFamily], d.presentErr
}

func (s *fakeSurface) Capabilities(device gfx.PhysicalDevice) (*khr_surface.SurfaceCapabilities, error) {
	return &khr_surface.SurfaceCapabilities{MinImageCount: 2}, nil
}

func (s *fakeSurface) Formats(device gfx.PhysicalDevice) ([]khr_surface.SurfaceFormat, error) {
	return device.(*fakePhysicalDevice).formats, nil
}

func (s *fakeSurface) PresentModes(device gfx.PhysicalDevice) ([]khr_surface.PresentMode, error) {
	return device.(*fakePhysicalDevice).presentModes, nil
}

func (s *fakeSurface) Destroy() {}

var errLost = errors.New("device lost")

// suitableDevice meets every requirement: one graphics+present family, geometry shaders,
// the swapchain extension and a format and present mode.
func suitableDevice(name string, deviceType gfx.DeviceType, maxImageDimension2D int) *fakePhysicalDevice {
	return &fakePhysicalDevice{
		properties: gfx.DeviceProperties{
			Name:                name,
			Type:                deviceType,
			MaxImageDimension2D: maxImageDimension2D,
		},
		features: gfx.DeviceFeatures{GeometryShader: true},
		families: []gfx.QueueFamily{
			{Flags: core1_0.QueueGraphics, Count: 1},
		},
		extensions:  map[string]struct{}{khr_swapchain.ExtensionName: {}},
		presentable: map[int]bool{0: true},
		formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		presentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}
}
