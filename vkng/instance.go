// Package vkng binds the gfx interfaces to vkngwrapper and SDL2. It is the only package
// that touches driver handles directly.
package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_portability_enumeration"
	"github.com/vkngwrapper/vulkan-negotiation/config"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
	"github.com/vkngwrapper/vulkan-negotiation/instance"
)

// NewLoader creates a loader from SDL's vkGetInstanceProcAddr. SDL video must already be
// initialized.
func NewLoader() (core.Loader, error) {
	loader, err := core.CreateLoaderFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "create loader")
	}
	return loader, nil
}

func names[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for name := range m {
		set[name] = struct{}{}
	}
	return set
}

// PlanInstance checks the window's required extensions and the configured validation
// layers against what loader offers.
func PlanInstance(loader core.Loader, window *Window, cfg config.Config) (instance.Plan, error) {
	extensions, _, err := loader.AvailableExtensions()
	if err != nil {
		return instance.Plan{}, errors.Wrap(err, "enumerate instance extensions")
	}

	layers, _, err := loader.AvailableLayers()
	if err != nil {
		return instance.Plan{}, errors.Wrap(err, "enumerate instance layers")
	}

	return instance.NewPlan(window.InstanceExtensions(), names(extensions), names(layers), cfg)
}

// Instance is a vkngwrapper instance and, when validation is on, its debug messenger
type Instance struct {
	Handle core1_0.Instance

	messenger ext_debug_utils.DebugUtilsMessenger
	log       logrus.FieldLogger
}

// CreateInstance creates the instance described by plan. Validation messages are
// forwarded to log.
func CreateInstance(loader core.Loader, plan instance.Plan, cfg config.Config, log logrus.FieldLogger) (*Instance, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	i := &Instance{log: log}

	createInfo := core1_0.InstanceCreateInfo{
		ApplicationName:    cfg.ApplicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,

		EnabledExtensionNames: plan.Extensions,
		EnabledLayerNames:     plan.Layers,
	}
	if plan.EnumeratePortability {
		createInfo.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}
	if plan.DebugMessenger {
		// covers messages emitted while the instance itself is created and destroyed
		createInfo.Next = i.messengerCreateInfo()
	}

	var err error
	i.Handle, _, err = loader.CreateInstance(nil, createInfo)
	if err != nil {
		return nil, errors.Wrap(err, "create instance")
	}

	if plan.DebugMessenger {
		debugLoader := ext_debug_utils.CreateExtensionFromInstance(i.Handle)
		i.messenger, _, err = debugLoader.CreateDebugUtilsMessenger(i.Handle, nil, i.messengerCreateInfo())
		if err != nil {
			i.Handle.Destroy(nil)
			return nil, errors.Wrap(err, "create debug messenger")
		}
	}

	return i, nil
}

func (i *Instance) messengerCreateInfo() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    i.logDebug,
	}
}

func (i *Instance) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	i.log.WithFields(logrus.Fields{
		"type":     msgType,
		"severity": severity,
	}).Log(severityLevel(severity), data.Message)
	return false
}

func severityLevel(severity ext_debug_utils.DebugUtilsMessageSeverityFlags) logrus.Level {
	switch {
	case severity&ext_debug_utils.SeverityError != 0:
		return logrus.ErrorLevel
	case severity&ext_debug_utils.SeverityWarning != 0:
		return logrus.WarnLevel
	case severity&ext_debug_utils.SeverityInfo != 0:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

func (i *Instance) PhysicalDevices() ([]gfx.PhysicalDevice, error) {
	handles, _, err := i.Handle.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]gfx.PhysicalDevice, 0, len(handles))
	for _, handle := range handles {
		devices = append(devices, &PhysicalDevice{Handle: handle})
	}
	return devices, nil
}

// Destroy releases the debug messenger, then the instance
func (i *Instance) Destroy() {
	if i.messenger != nil {
		i.messenger.Destroy(nil)
		i.messenger = nil
	}
	i.Handle.Destroy(nil)
}
