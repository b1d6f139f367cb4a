package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

type Queue struct {
	Handle core1_0.Queue
	family int
}

func (q *Queue) FamilyIndex() int {
	return q.family
}

type Device struct {
	Handle core1_0.Device

	swapchainExtension khr_swapchain.Extension
}

func newDevice(handle core1_0.Device) *Device {
	return &Device{
		Handle:             handle,
		swapchainExtension: khr_swapchain.CreateExtensionFromDevice(handle),
	}
}

func (d *Device) Queue(familyIndex, queueIndex int) gfx.Queue {
	return &Queue{
		Handle: d.Handle.GetQueue(familyIndex, queueIndex),
		family: familyIndex,
	}
}

// CreateSwapchain creates the swapchain and one color view for each of its images
func (d *Device) CreateSwapchain(surface gfx.Surface, info gfx.SwapchainCreateInfo) (gfx.Swapchain, error) {
	s, ok := surface.(*Surface)
	if !ok || s == nil {
		return nil, errors.AssertionFailedf("vkng: unexpected surface type %T", surface)
	}

	handle, _, err := d.swapchainExtension.CreateSwapchain(d.Handle, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: s.Handle,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      info.Format.Format,
		ImageColorSpace:  info.Format.ColorSpace,
		ImageExtent:      info.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   info.SharingMode,
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   info.PreTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    info.PresentMode,
		Clipped:        true,
	})
	if err != nil {
		return nil, err
	}

	chain := &Swapchain{Handle: handle}
	if err := chain.createImageViews(d.Handle, info.Format.Format); err != nil {
		chain.Destroy()
		return nil, err
	}
	return chain, nil
}

func (d *Device) WaitIdle() error {
	_, err := d.Handle.WaitIdle()
	return err
}

func (d *Device) Destroy() {
	d.Handle.Destroy(nil)
}
