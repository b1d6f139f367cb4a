package device_test

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-negotiation/device"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

func quietSelector() *device.Selector {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return device.NewSelector(requiredExtensions, log)
}

func TestSelectBestEmpty(t *testing.T) {
	_, err := quietSelector().SelectBest(nil, &fakeSurface{})
	if !errors.Is(err, gfx.ErrNoSuitableDevice) {
		t.Errorf("SelectBest: expected ErrNoSuitableDevice, got %v", err)
	}
}

func TestSelectBestPrefersDiscrete(t *testing.T) {
	integrated := suitableDevice("integrated", gfx.DeviceTypeIntegratedGPU, 4096)
	discrete := suitableDevice("discrete", gfx.DeviceTypeDiscreteGPU, 4096)

	best, err := quietSelector().SelectBest([]gfx.PhysicalDevice{discrete, integrated}, &fakeSurface{})
	if err != nil {
		t.Fatal(err)
	}

	if best.Device != discrete {
		t.Errorf("SelectBest: expected discrete, got %s", best.Properties.Name)
	}
	if best.Score != 1000+4096 {
		t.Errorf("SelectBest: expected score %d, got %d", 1000+4096, best.Score)
	}
}

func TestSelectBestLargerImageDimension(t *testing.T) {
	small := suitableDevice("small", gfx.DeviceTypeIntegratedGPU, 4096)
	large := suitableDevice("large", gfx.DeviceTypeIntegratedGPU, 16384)

	best, err := quietSelector().SelectBest([]gfx.PhysicalDevice{large, small}, &fakeSurface{})
	if err != nil {
		t.Fatal(err)
	}
	if best.Device != large {
		t.Errorf("SelectBest: expected large, got %s", best.Properties.Name)
	}
}

func TestSelectBestTieGoesToLast(t *testing.T) {
	first := suitableDevice("first", gfx.DeviceTypeDiscreteGPU, 8192)
	second := suitableDevice("second", gfx.DeviceTypeDiscreteGPU, 8192)

	best, err := quietSelector().SelectBest([]gfx.PhysicalDevice{first, second}, &fakeSurface{})
	if err != nil {
		t.Fatal(err)
	}
	if best.Device != second {
		t.Errorf("SelectBest: expected the later device on a tie, got %s", best.Properties.Name)
	}
}

func TestSelectBestWithoutGeometryShader(t *testing.T) {
	d := suitableDevice("no-geometry", gfx.DeviceTypeDiscreteGPU, 16384)
	d.features.GeometryShader = false
	surface := &fakeSurface{}

	_, err := quietSelector().SelectBest([]gfx.PhysicalDevice{d}, surface)
	if !errors.Is(err, gfx.ErrNoSuitableDevice) {
		t.Errorf("SelectBest: expected ErrNoSuitableDevice, got %v", err)
	}

	// evaluation stops before queue families are resolved
	if surface.queries != 0 {
		t.Errorf("SelectBest: expected no present queries, got %d", surface.queries)
	}
}

func TestRateRejections(t *testing.T) {
	selector := quietSelector()

	tests := []struct {
		name   string
		modify func(d *fakePhysicalDevice)
		reason string
	}{
		{"geometry shader", func(d *fakePhysicalDevice) { d.features.GeometryShader = false }, device.ReasonGeometryShader},
		{"no present family", func(d *fakePhysicalDevice) { d.presentable = nil }, device.ReasonQueueFamilies},
		{"no graphics family", func(d *fakePhysicalDevice) {
			d.families = []gfx.QueueFamily{{Flags: core1_0.QueueCompute}}
		}, device.ReasonQueueFamilies},
		{"no swapchain extension", func(d *fakePhysicalDevice) { d.extensions = map[string]struct{}{} }, device.ReasonExtensions},
		{"no formats", func(d *fakePhysicalDevice) { d.formats = nil }, device.ReasonSwapchainSupport},
		{"no present modes", func(d *fakePhysicalDevice) { d.presentModes = nil }, device.ReasonSwapchainSupport},
		{"properties error", func(d *fakePhysicalDevice) { d.propertiesErr = errLost }, device.ReasonProperties},
		{"present query error", func(d *fakePhysicalDevice) { d.presentErr = errLost }, device.ReasonQueryFailed},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := suitableDevice(test.name, gfx.DeviceTypeDiscreteGPU, 16384)
			test.modify(d)

			candidate := selector.Rate(d, &fakeSurface{})
			if candidate.Score != 0 {
				t.Errorf("Rate: expected score 0, got %d", candidate.Score)
			}
			if candidate.Reason != test.reason {
				t.Errorf("Rate: expected reason %q, got %q", test.reason, candidate.Reason)
			}
		})
	}
}

func TestRateMissingExtensionSkipsSwapchainProbe(t *testing.T) {
	d := suitableDevice("gpu", gfx.DeviceTypeDiscreteGPU, 4096)
	d.extensions = map[string]struct{}{}

	candidate := quietSelector().Rate(d, &fakeSurface{})
	if candidate.Support.Capabilities != nil {
		t.Error("Rate: expected swapchain support not to be probed")
	}
	if len(candidate.Missing) != 1 || candidate.Missing[0] != requiredExtensions[0] {
		t.Errorf("Rate: expected missing %v, got %v", requiredExtensions, candidate.Missing)
	}
}

func TestRateIsDeterministic(t *testing.T) {
	selector := quietSelector()
	d := suitableDevice("gpu", gfx.DeviceTypeVirtualGPU, 2048)

	first := selector.Rate(d, &fakeSurface{})
	second := selector.Rate(d, &fakeSurface{})
	if first.Score != second.Score || first.Score != 2048 {
		t.Errorf("Rate: expected 2048 twice, got %d and %d", first.Score, second.Score)
	}
}

func TestBestSkipsUnsuitable(t *testing.T) {
	candidates := []*device.Candidate{
		{Score: 0},
		{Score: 5000},
		{Score: 0},
	}

	best, err := device.Best(candidates)
	if err != nil {
		t.Fatal(err)
	}
	if best != candidates[1] {
		t.Errorf("Best: expected the only positive candidate, got %+v", best)
	}

	if _, err := device.Best([]*device.Candidate{{Score: 0}}); !errors.Is(err, gfx.ErrNoSuitableDevice) {
		t.Errorf("Best: expected ErrNoSuitableDevice, got %v", err)
	}
}

func TestMissingExtensions(t *testing.T) {
	available := map[string]struct{}{"a": {}, "c": {}}

	missing := device.MissingExtensions(available, []string{"d", "a", "b"})
	if len(missing) != 2 || missing[0] != "b" || missing[1] != "d" {
		t.Errorf("MissingExtensions: expected [b d], got %v", missing)
	}

	if missing := device.MissingExtensions(available, nil); len(missing) != 0 {
		t.Errorf("MissingExtensions: expected none, got %v", missing)
	}
}
