// Package instance decides which instance extensions and layers to enable before the
// graphics runtime instance is created.
package instance

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_portability_enumeration"
	"github.com/vkngwrapper/vulkan-negotiation/config"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

// Plan is the validated set of instance extensions and layers to enable
type Plan struct {
	Extensions []string
	Layers     []string

	// EnumeratePortability is set when portability enumeration is available and enabled
	EnumeratePortability bool
	// DebugMessenger is set when validation is enabled
	DebugMessenger bool
}

// NewPlan checks windowExtensions and, when validation is enabled, the configured layers
// against what the loader offers.
func NewPlan(windowExtensions []string, availableExtensions, availableLayers map[string]struct{}, cfg config.Config) (Plan, error) {
	var plan Plan

	var missing []string
	for _, ext := range windowExtensions {
		if _, hasExt := availableExtensions[ext]; !hasExt {
			missing = append(missing, ext)
			continue
		}
		plan.Extensions = append(plan.Extensions, ext)
	}
	if len(missing) > 0 {
		return Plan{}, errors.Wrapf(gfx.ErrMissingRequiredExtension, "window system: %s", strings.Join(missing, ", "))
	}

	if cfg.EnableValidation {
		if _, hasExt := availableExtensions[ext_debug_utils.ExtensionName]; !hasExt {
			return Plan{}, errors.Wrapf(gfx.ErrMissingRequiredExtension, "validation: %s", ext_debug_utils.ExtensionName)
		}
		plan.Extensions = append(plan.Extensions, ext_debug_utils.ExtensionName)
		plan.DebugMessenger = true

		for _, layer := range cfg.ValidationLayers {
			if _, hasValidation := availableLayers[layer]; !hasValidation {
				return Plan{}, errors.Wrapf(gfx.ErrMissingValidationLayer, "%s- install LunarG Vulkan SDK", layer)
			}
			plan.Layers = append(plan.Layers, layer)
		}
	}

	if _, enumerationSupported := availableExtensions[khr_portability_enumeration.ExtensionName]; enumerationSupported {
		plan.Extensions = append(plan.Extensions, khr_portability_enumeration.ExtensionName)
		plan.EnumeratePortability = true
	}

	return plan, nil
}
