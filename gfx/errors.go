package gfx

import "github.com/cockroachdb/errors"

// Error kinds surfaced by negotiation and context setup. All of them are fatal at startup;
// match them with errors.Is.
var (
	// ErrNoSuitableDevice is returned when no enumerated device scored above zero.
	ErrNoSuitableDevice = errors.New("gfx: failed to find a suitable GPU")

	// ErrMissingRequiredExtension is returned when a required instance or device extension is absent.
	ErrMissingRequiredExtension = errors.New("gfx: required extension not supported")

	// ErrMissingValidationLayer is returned when validation is enabled but a requested layer is absent.
	ErrMissingValidationLayer = errors.New("gfx: validation layer not available")

	// ErrSurfaceCreationFailed is returned when the window could not produce a surface.
	ErrSurfaceCreationFailed = errors.New("gfx: failed to create window surface")

	// ErrDeviceCreationFailed is returned when logical device creation reported failure.
	ErrDeviceCreationFailed = errors.New("gfx: failed to create logical device")

	// ErrSwapchainInadequate is returned when negotiation is attempted without any supported
	// format or present mode.
	ErrSwapchainInadequate = errors.New("gfx: swapchain support is inadequate")

	// ErrSwapchainCreationFailed is returned when swapchain or image view creation reported failure.
	ErrSwapchainCreationFailed = errors.New("gfx: failed to create swapchain")
)
