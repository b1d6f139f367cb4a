// Package device selects the physical device to render with and creates the logical
// device and queues for it.
package device

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
	"github.com/vkngwrapper/vulkan-negotiation/swapchain"
)

// DiscreteGPUBonus is added to the score of discrete GPUs
const DiscreteGPUBonus = 1000

// Reasons a candidate was rejected
const (
	ReasonProperties       = "could not get physical device properties"
	ReasonGeometryShader   = "geometry shader not supported"
	ReasonQueueFamilies    = "missing graphics or present queue family"
	ReasonExtensions       = "missing required device extensions"
	ReasonSwapchainSupport = "no surface formats or present modes"
	ReasonQueryFailed      = "device query failed"
)

// Candidate is everything learned about one physical device during selection.
// It is only meaningful for the selection pass that produced it.
type Candidate struct {
	Device     gfx.PhysicalDevice
	Properties gfx.DeviceProperties
	Features   gfx.DeviceFeatures
	Indices    QueueFamilyIndices
	Extensions map[string]struct{}
	Missing    []string
	Support    swapchain.SupportDetails

	// Score is zero for unusable devices, higher is better
	Score  int
	Reason string
}

// Suitable reports whether the candidate can be used at all
func (c *Candidate) Suitable() bool {
	return c.Score > 0
}

// Selector scores physical devices against a fixed set of required device extensions.
type Selector struct {
	RequiredExtensions []string
	Log                logrus.FieldLogger
}

// NewSelector returns a Selector requiring requiredExtensions. A nil logger logs to
// the logrus standard logger.
func NewSelector(requiredExtensions []string, log logrus.FieldLogger) *Selector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Selector{
		RequiredExtensions: requiredExtensions,
		Log:                log,
	}
}

// MissingExtensions returns the required extensions absent from available, sorted
func MissingExtensions(available map[string]struct{}, required []string) []string {
	var missing []string
	for _, extension := range required {
		if _, hasExtension := available[extension]; !hasExtension {
			missing = append(missing, extension)
		}
	}
	sort.Strings(missing)
	return missing
}

// Rate queries device and scores it. Query failures reject the device instead of
// failing selection.
func (s *Selector) Rate(device gfx.PhysicalDevice, surface gfx.Surface) *Candidate {
	candidate := &Candidate{Device: device}
	s.rate(candidate, surface)

	log := s.Log.WithFields(logrus.Fields{
		"device": candidate.Properties.Name,
		"type":   candidate.Properties.Type,
		"score":  candidate.Score,
		"uuid":   candidate.Properties.PipelineCacheUUID.String(),
	})
	if candidate.Reason != "" {
		log = log.WithField("reason", candidate.Reason)
	}
	log.Debug("rated physical device")

	return candidate
}

func (s *Selector) rate(c *Candidate, surface gfx.Surface) {
	var err error

	c.Properties, err = c.Device.Properties()
	if err != nil {
		s.Log.WithError(err).Warn(ReasonProperties)
		c.Reason = ReasonProperties
		return
	}
	c.Features = c.Device.Features()

	score := 0
	if c.Properties.Type == gfx.DeviceTypeDiscreteGPU {
		score += DiscreteGPUBonus
	}
	score += c.Properties.MaxImageDimension2D

	if !c.Features.GeometryShader {
		c.Reason = ReasonGeometryShader
		return
	}

	c.Indices, err = ResolveQueueFamilies(c.Device, surface)
	if err != nil {
		s.Log.WithError(err).WithField("device", c.Properties.Name).Warn(ReasonQueryFailed)
		c.Reason = ReasonQueryFailed
		return
	}

	c.Extensions, err = c.Device.Extensions()
	if err != nil {
		s.Log.WithError(err).WithField("device", c.Properties.Name).Warn(ReasonQueryFailed)
		c.Reason = ReasonQueryFailed
		return
	}
	c.Missing = MissingExtensions(c.Extensions, s.RequiredExtensions)
	extensionsSupported := len(c.Missing) == 0

	var swapChainAdequate bool
	if extensionsSupported {
		c.Support, err = swapchain.QuerySupport(c.Device, surface)
		if err != nil {
			s.Log.WithError(err).WithField("device", c.Properties.Name).Warn(ReasonQueryFailed)
			c.Reason = ReasonQueryFailed
			return
		}
		swapChainAdequate = c.Support.Adequate()
	}

	switch {
	case !c.Indices.IsComplete():
		c.Reason = ReasonQueueFamilies
	case !extensionsSupported:
		c.Reason = ReasonExtensions
	case !swapChainAdequate:
		c.Reason = ReasonSwapchainSupport
	default:
		c.Score = score
	}
}

// RateAll rates every device in enumeration order
func (s *Selector) RateAll(devices []gfx.PhysicalDevice, surface gfx.Surface) []*Candidate {
	candidates := make([]*Candidate, 0, len(devices))
	for _, device := range devices {
		candidates = append(candidates, s.Rate(device, surface))
	}
	return candidates
}

// Best returns the candidate with the highest positive score. Among equal scores the one
// enumerated last wins.
func Best(candidates []*Candidate) (*Candidate, error) {
	var best *Candidate
	for _, candidate := range candidates {
		if !candidate.Suitable() {
			continue
		}
		if best == nil || candidate.Score >= best.Score {
			best = candidate
		}
	}

	if best == nil {
		return nil, errors.Wrapf(gfx.ErrNoSuitableDevice, "%d candidates", len(candidates))
	}
	return best, nil
}

// SelectBest rates devices and returns the best one, or ErrNoSuitableDevice.
func (s *Selector) SelectBest(devices []gfx.PhysicalDevice, surface gfx.Surface) (*Candidate, error) {
	best, err := Best(s.RateAll(devices, surface))
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"device":   best.Properties.Name,
		"type":     best.Properties.Type,
		"score":    best.Score,
		"graphics": best.Indices.Graphics.Index,
		"present":  best.Indices.Present.Index,
	}).Info("selected physical device")
	return best, nil
}
