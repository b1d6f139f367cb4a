// Package config holds the startup configuration that is passed explicitly into
// instance, device and window creation.
package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// ErrInvalid marks configuration values that could not be used
var ErrInvalid = errors.New("config: invalid value")

// Environment keys
const (
	KeyApplicationName  = "VKNEG_APP_NAME"
	KeyWindowTitle      = "VKNEG_TITLE"
	KeyWindowWidth      = "VKNEG_WIDTH"
	KeyWindowHeight     = "VKNEG_HEIGHT"
	KeyResizable        = "VKNEG_RESIZABLE"
	KeyValidation       = "VKNEG_VALIDATION"
	KeyValidationLayers = "VKNEG_LAYERS"
	KeyDeviceExtensions = "VKNEG_DEVICE_EXTENSIONS"
	KeyLogLevel         = "VKNEG_LOG_LEVEL"
)

// Config defines the startup configuration
type Config struct {
	ApplicationName string

	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Resizable    bool

	// EnableValidation turns on ValidationLayers and the debug messenger
	EnableValidation bool
	ValidationLayers []string

	// DeviceExtensions must be supported by the selected device
	DeviceExtensions []string

	LogLevel logrus.Level
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		ApplicationName:  "Hello Triangle",
		WindowTitle:      "Vulkan",
		WindowWidth:      800,
		WindowHeight:     600,
		Resizable:        false,
		EnableValidation: true,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions: []string{khr_swapchain.ExtensionName},
		LogLevel:         logrus.InfoLevel,
	}
}

// Load starts from Default, applies values from the dotenv files and then lets the
// process environment override any key.
func Load(files ...string) (Config, error) {
	values := map[string]string{}
	if len(files) > 0 {
		var err error
		values, err = godotenv.Read(files...)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config files")
		}
	}

	lookup := func(key string) string {
		return envy.Get(key, values[key])
	}

	return parse(Default(), lookup)
}

func parse(cfg Config, lookup func(key string) string) (Config, error) {
	var err error

	if v := lookup(KeyApplicationName); v != "" {
		cfg.ApplicationName = v
	}
	if v := lookup(KeyWindowTitle); v != "" {
		cfg.WindowTitle = v
	}

	if cfg.WindowWidth, err = parseSize(KeyWindowWidth, lookup(KeyWindowWidth), cfg.WindowWidth); err != nil {
		return Config{}, err
	}
	if cfg.WindowHeight, err = parseSize(KeyWindowHeight, lookup(KeyWindowHeight), cfg.WindowHeight); err != nil {
		return Config{}, err
	}

	if cfg.Resizable, err = parseBool(KeyResizable, lookup(KeyResizable), cfg.Resizable); err != nil {
		return Config{}, err
	}
	if cfg.EnableValidation, err = parseBool(KeyValidation, lookup(KeyValidation), cfg.EnableValidation); err != nil {
		return Config{}, err
	}

	if v := lookup(KeyValidationLayers); v != "" {
		cfg.ValidationLayers = splitList(v)
	}
	if v := lookup(KeyDeviceExtensions); v != "" {
		cfg.DeviceExtensions = splitList(v)
	}
	if len(cfg.DeviceExtensions) == 0 {
		return Config{}, errors.Wrapf(ErrInvalid, "%s: at least one device extension is required", KeyDeviceExtensions)
	}

	if v := lookup(KeyLogLevel); v != "" {
		cfg.LogLevel, err = logrus.ParseLevel(v)
		if err != nil {
			return Config{}, errors.Mark(errors.Wrapf(err, "%s", KeyLogLevel), ErrInvalid)
		}
	}

	return cfg, nil
}

func parseSize(key, value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}

	size, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "%s", key), ErrInvalid)
	}
	if size <= 0 {
		return 0, errors.Wrapf(ErrInvalid, "%s: %d is not a positive size", key, size)
	}
	return size, nil
}

func parseBool(key, value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Mark(errors.Wrapf(err, "%s", key), ErrInvalid)
	}
	return b, nil
}

func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
