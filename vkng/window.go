package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/extensions/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2"
	"github.com/vkngwrapper/vulkan-negotiation/config"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

type Window struct {
	Handle *sdl.Window
}

// OpenWindow creates a Vulkan capable SDL window. SDL video must already be initialized.
func OpenWindow(cfg config.Config) (*Window, error) {
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_VULKAN)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}

	handle, err := sdl.CreateWindow(cfg.WindowTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.WindowWidth), int32(cfg.WindowHeight), flags)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	return &Window{Handle: handle}, nil
}

// InstanceExtensions lists the instance extensions SDL needs to create surfaces
func (w *Window) InstanceExtensions() []string {
	return w.Handle.VulkanGetInstanceExtensions()
}

func (w *Window) CreateSurface(instance gfx.Instance) (gfx.Surface, error) {
	i, ok := instance.(*Instance)
	if !ok || i == nil {
		return nil, errors.AssertionFailedf("vkng: unexpected instance type %T", instance)
	}

	surfaceLoader := khr_surface.CreateExtensionFromInstance(i.Handle)
	handle, err := vkng_sdl2.CreateSurface(i.Handle, surfaceLoader, w.Handle)
	if err != nil {
		return nil, err
	}
	return &Surface{Handle: handle}, nil
}

// DrawableSize reports zero while the window is minimized
func (w *Window) DrawableSize() (int, int) {
	if w.Handle.GetFlags()&sdl.WINDOW_MINIMIZED != 0 {
		return 0, 0
	}

	width, height := w.Handle.VulkanGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
}
