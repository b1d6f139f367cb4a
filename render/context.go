// Package render owns the chain of objects a rendering context needs: surface, selected
// device, logical device and swapchain. They are acquired in that order and released in
// exactly the reverse order, on success and on every failure path.
package render

import (
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/vulkan-negotiation/config"
	"github.com/vkngwrapper/vulkan-negotiation/device"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
	"github.com/vkngwrapper/vulkan-negotiation/swapchain"
)

// Options configures context creation
type Options struct {
	DeviceExtensions []string
	// ValidationLayers are enabled on the logical device, empty when validation is off
	ValidationLayers []string
	Log              logrus.FieldLogger
}

// OptionsFromConfig derives context options from the startup configuration
func OptionsFromConfig(cfg config.Config, log logrus.FieldLogger) Options {
	opts := Options{
		DeviceExtensions: cfg.DeviceExtensions,
		Log:              log,
	}
	if cfg.EnableValidation {
		opts.ValidationLayers = cfg.ValidationLayers
	}
	return opts
}

// Context is a ready to use rendering context
type Context struct {
	Instance gfx.Instance
	Window   gfx.Window
	Surface  gfx.Surface

	Physical  *device.Candidate
	Device    *device.LogicalDevice
	Swapchain gfx.Swapchain
	Config    swapchain.Config

	log      logrus.FieldLogger
	teardown teardown
}

// Open takes ownership of instance and builds a context on it. If Open fails everything it
// acquired, instance included, has already been released.
func Open(instance gfx.Instance, window gfx.Window, opts Options) (*Context, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	c := &Context{
		Instance: instance,
		Window:   window,
		log:      log,
	}
	c.teardown.push("instance", instance.Destroy)

	if err := c.open(opts); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Context) open(opts Options) error {
	start := hrtime.Now()

	surface, err := c.Window.CreateSurface(c.Instance)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "create surface"), gfx.ErrSurfaceCreationFailed)
	}
	c.Surface = surface
	c.teardown.push("surface", surface.Destroy)

	physicalDevices, err := c.Instance.PhysicalDevices()
	if err != nil {
		return errors.Wrap(err, "enumerate physical devices")
	}

	selector := device.NewSelector(opts.DeviceExtensions, c.log)
	c.Physical, err = selector.SelectBest(physicalDevices, c.Surface)
	if err != nil {
		return err
	}

	c.Device, err = device.BuildLogicalDevice(c.Physical.Device, c.Physical.Indices, device.BuildOptions{
		Extensions:       opts.DeviceExtensions,
		ValidationLayers: opts.ValidationLayers,
	})
	if err != nil {
		return err
	}
	c.teardown.push("device", c.Device.Device.Destroy)

	if err := c.createSwapchain(); err != nil {
		return err
	}

	c.log.WithField("elapsed", hrtime.Since(start)).Info("rendering context ready")
	return nil
}

func (c *Context) createSwapchain() error {
	start := hrtime.Now()

	// the device was probed during selection, but the surface may have changed since
	support, err := swapchain.QuerySupport(c.Physical.Device, c.Surface)
	if err != nil {
		return err
	}

	width, height := c.Window.DrawableSize()
	cfg, err := swapchain.Negotiate(support, width, height)
	if err != nil {
		return err
	}

	info := swapchain.CreateInfo(cfg, support.Capabilities, c.Physical.Indices.Graphics.Index, c.Physical.Indices.Present.Index)
	chain, err := c.Device.Device.CreateSwapchain(c.Surface, info)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "create swapchain"), gfx.ErrSwapchainCreationFailed)
	}

	c.Swapchain = chain
	c.Config = cfg

	c.log.WithFields(logrus.Fields{
		"format":      cfg.Format.Format,
		"colorSpace":  cfg.Format.ColorSpace,
		"presentMode": cfg.PresentMode,
		"width":       cfg.Extent.Width,
		"height":      cfg.Extent.Height,
		"images":      chain.ImageCount(),
		"elapsed":     hrtime.Since(start),
	}).Info("swapchain negotiated")
	return nil
}

func (c *Context) destroySwapchain() {
	if c.Swapchain != nil {
		c.log.WithField("resource", "swapchain").Debug("destroying")
		c.Swapchain.Destroy()
		c.Swapchain = nil
	}
}

// Recreate renegotiates and rebuilds the swapchain for the window's current size. It
// reports false without doing anything while the drawable size is zero.
func (c *Context) Recreate() (bool, error) {
	width, height := c.Window.DrawableSize()
	if width == 0 || height == 0 {
		return false, nil
	}

	if err := c.Device.Device.WaitIdle(); err != nil {
		return false, errors.Wrap(err, "wait for device idle")
	}

	c.destroySwapchain()
	if err := c.createSwapchain(); err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the swapchain, logical device, surface and instance in that order.
// It is safe to call more than once.
func (c *Context) Close() {
	c.destroySwapchain()
	c.teardown.run(c.log)
}

// Survey rates every physical device against window's surface without selecting one,
// for diagnostics. The temporary surface is destroyed before returning.
func Survey(instance gfx.Instance, window gfx.Window, opts Options) ([]*device.Candidate, error) {
	surface, err := window.CreateSurface(instance)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "create surface"), gfx.ErrSurfaceCreationFailed)
	}
	defer surface.Destroy()

	physicalDevices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}

	return device.NewSelector(opts.DeviceExtensions, opts.Log).RateAll(physicalDevices, surface), nil
}
