package swapchain

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

// SupportDetails is what a (device, surface) pair supports for presentation.
// It is queried fresh for every device and never cached.
type SupportDetails struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

// Adequate reports whether at least one format and one present mode are supported
func (d SupportDetails) Adequate() bool {
	return len(d.Formats) > 0 && len(d.PresentModes) > 0
}

// QuerySupport queries surface capabilities, formats and present modes for device.
// Empty format or present mode lists are not an error.
func QuerySupport(device gfx.PhysicalDevice, surface gfx.Surface) (SupportDetails, error) {
	var details SupportDetails
	var err error

	details.Capabilities, err = surface.Capabilities(device)
	if err != nil {
		return details, errors.Wrap(err, "query surface capabilities")
	}

	details.Formats, err = surface.Formats(device)
	if err != nil {
		return details, errors.Wrap(err, "query surface formats")
	}

	details.PresentModes, err = surface.PresentModes(device)
	if err != nil {
		return details, errors.Wrap(err, "query surface present modes")
	}

	return details, nil
}
