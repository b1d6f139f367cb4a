package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

type Swapchain struct {
	Handle khr_swapchain.Swapchain
	Images []core1_0.Image
	Views  []core1_0.ImageView
}

func (s *Swapchain) createImageViews(device core1_0.Device, format core1_0.Format) error {
	images, _, err := s.Handle.SwapchainImages()
	if err != nil {
		return errors.Wrap(err, "get swapchain images")
	}
	s.Images = images

	for _, image := range images {
		view, _, err := device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			return errors.Wrap(err, "create image view")
		}
		s.Views = append(s.Views, view)
	}

	return nil
}

func (s *Swapchain) ImageCount() int {
	return len(s.Images)
}

// Destroy releases the image views, then the swapchain. Images belong to the swapchain.
func (s *Swapchain) Destroy() {
	for _, view := range s.Views {
		view.Destroy(nil)
	}
	s.Views = nil
	s.Images = nil

	s.Handle.Destroy(nil)
}
