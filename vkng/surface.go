package vkng

import (
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

type Surface struct {
	Handle khr_surface.Surface
}

func (s *Surface) SupportsPresent(device gfx.PhysicalDevice, queueFamily int) (bool, error) {
	handle, err := physicalHandle(device)
	if err != nil {
		return false, err
	}

	supported, _, err := s.Handle.PhysicalDeviceSurfaceSupport(handle, queueFamily)
	return supported, err
}

func (s *Surface) Capabilities(device gfx.PhysicalDevice) (*khr_surface.SurfaceCapabilities, error) {
	handle, err := physicalHandle(device)
	if err != nil {
		return nil, err
	}

	capabilities, _, err := s.Handle.PhysicalDeviceSurfaceCapabilities(handle)
	return capabilities, err
}

func (s *Surface) Formats(device gfx.PhysicalDevice) ([]khr_surface.SurfaceFormat, error) {
	handle, err := physicalHandle(device)
	if err != nil {
		return nil, err
	}

	formats, _, err := s.Handle.PhysicalDeviceSurfaceFormats(handle)
	return formats, err
}

func (s *Surface) PresentModes(device gfx.PhysicalDevice) ([]khr_surface.PresentMode, error) {
	handle, err := physicalHandle(device)
	if err != nil {
		return nil, err
	}

	presentModes, _, err := s.Handle.PhysicalDeviceSurfacePresentModes(handle)
	return presentModes, err
}

func (s *Surface) Destroy() {
	s.Handle.Destroy(nil)
}
