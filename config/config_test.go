package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/vulkan-negotiation/config"
)

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "negotiate.env")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}

	expected := config.Default()
	if cfg.WindowWidth != expected.WindowWidth || cfg.WindowHeight != expected.WindowHeight {
		t.Errorf("Load: expected %dx%d, got %dx%d", expected.WindowWidth, expected.WindowHeight, cfg.WindowWidth, cfg.WindowHeight)
	}
	if len(cfg.DeviceExtensions) != 1 || cfg.DeviceExtensions[0] != "VK_KHR_swapchain" {
		t.Errorf("Load: expected VK_KHR_swapchain, got %v", cfg.DeviceExtensions)
	}
	if !cfg.EnableValidation || cfg.Resizable {
		t.Errorf("Load: unexpected flags %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeEnvFile(t, `
VKNEG_WIDTH=1920
VKNEG_HEIGHT=1080
VKNEG_VALIDATION=false
VKNEG_LAYERS=VK_LAYER_KHRONOS_validation, VK_LAYER_LUNARG_monitor
VKNEG_LOG_LEVEL=debug
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.WindowWidth != 1920 || cfg.WindowHeight != 1080 {
		t.Errorf("Load: expected 1920x1080, got %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.EnableValidation {
		t.Error("Load: expected validation to be disabled")
	}
	if len(cfg.ValidationLayers) != 2 || cfg.ValidationLayers[1] != "VK_LAYER_LUNARG_monitor" {
		t.Errorf("Load: unexpected layers %v", cfg.ValidationLayers)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("Load: expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeEnvFile(t, "VKNEG_WIDTH=1920\nVKNEG_TITLE=from-file\n")

	envy.Temp(func() {
		envy.Set(config.KeyWindowWidth, "1280")

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.WindowWidth != 1280 {
			t.Errorf("Load: expected environment width 1280, got %d", cfg.WindowWidth)
		}
		if cfg.WindowTitle != "from-file" {
			t.Errorf("Load: expected title from file, got %q", cfg.WindowTitle)
		}
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"non-numeric width": "VKNEG_WIDTH=wide\n",
		"zero height":       "VKNEG_HEIGHT=0\n",
		"bad bool":          "VKNEG_VALIDATION=maybe\n",
		"bad level":         "VKNEG_LOG_LEVEL=loud\n",
		"empty extensions":  "VKNEG_DEVICE_EXTENSIONS=\" , \"\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeEnvFile(t, contents))
			if !errors.Is(err, config.ErrInvalid) {
				t.Errorf("Load: expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load: expected an error for a missing file")
	}
}
