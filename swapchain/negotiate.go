// Package swapchain probes what a device can present to a surface and negotiates the
// concrete swapchain parameters from it.
package swapchain

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

// PreferredFormat is chosen whenever the surface offers it
var PreferredFormat = khr_surface.SurfaceFormat{
	Format:     core1_0.FormatB8G8R8A8SRGB,
	ColorSpace: khr_surface.ColorSpaceSRGBNonlinear,
}

// Config is the negotiated swapchain configuration. It has no identity of its own and is
// recomputed whenever the surface changes.
type Config struct {
	Format      khr_surface.SurfaceFormat
	PresentMode khr_surface.PresentMode
	Extent      core1_0.Extent2D
	ImageCount  int
}

// Negotiate picks format, present mode, extent and image count from details. width and
// height are the window's current drawable size in pixels, used only when the surface
// leaves the extent to the application.
func Negotiate(details SupportDetails, width, height int) (Config, error) {
	if details.Capabilities == nil || !details.Adequate() {
		return Config{}, errors.Wrapf(gfx.ErrSwapchainInadequate,
			"%d formats, %d present modes", len(details.Formats), len(details.PresentModes))
	}

	return Config{
		Format:      ChooseSurfaceFormat(details.Formats),
		PresentMode: ChoosePresentMode(details.PresentModes),
		Extent:      ChooseExtent(details.Capabilities, width, height),
		ImageCount:  ChooseImageCount(details.Capabilities),
	}, nil
}

// ChooseSurfaceFormat returns PreferredFormat if it is available, otherwise the first
// available format. availableFormats must not be empty.
func ChooseSurfaceFormat(availableFormats []khr_surface.SurfaceFormat) khr_surface.SurfaceFormat {
	for _, format := range availableFormats {
		if format.Format == PreferredFormat.Format && format.ColorSpace == PreferredFormat.ColorSpace {
			return format
		}
	}

	return availableFormats[0]
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every device supports.
func ChoosePresentMode(availablePresentModes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// undefinedExtent reports whether the platform left the surface size to the application.
// The runtime reports this as the maximum uint32 width, which may reach us as -1.
func undefinedExtent(extent core1_0.Extent2D) bool {
	return uint32(extent.Width) == math.MaxUint32
}

// ChooseExtent returns the current extent when the platform fixes it. Otherwise the
// drawable size is clamped into the supported range, each dimension on its own.
func ChooseExtent(capabilities *khr_surface.SurfaceCapabilities, width, height int) core1_0.Extent2D {
	if !undefinedExtent(capabilities.CurrentExtent) {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum, bounded by the maximum.
// A maximum of zero means there is no limit.
func ChooseImageCount(capabilities *khr_surface.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// ChooseSharing returns exclusive sharing when both roles use one family, and concurrent
// sharing across both families otherwise.
func ChooseSharing(graphicsFamily, presentFamily int) (core1_0.SharingMode, []int) {
	if graphicsFamily == presentFamily {
		return core1_0.SharingModeExclusive, nil
	}
	return core1_0.SharingModeConcurrent, []int{graphicsFamily, presentFamily}
}

// CreateInfo merges a negotiated config with the queue layout into creation parameters
func CreateInfo(cfg Config, capabilities *khr_surface.SurfaceCapabilities, graphicsFamily, presentFamily int) gfx.SwapchainCreateInfo {
	sharingMode, queueFamilyIndices := ChooseSharing(graphicsFamily, presentFamily)

	return gfx.SwapchainCreateInfo{
		MinImageCount:      cfg.ImageCount,
		Format:             cfg.Format,
		PresentMode:        cfg.PresentMode,
		Extent:             cfg.Extent,
		SharingMode:        sharingMode,
		QueueFamilyIndices: queueFamilyIndices,
		PreTransform:       capabilities.CurrentTransform,
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
