package device

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/vulkan-negotiation/gfx"
)

// FamilyIndex is an optional queue family index. The zero value is absent,
// which keeps it distinct from a valid index 0.
type FamilyIndex struct {
	Index int
	Valid bool
}

// Family returns a present FamilyIndex
func Family(index int) FamilyIndex {
	return FamilyIndex{Index: index, Valid: true}
}

type QueueFamilyIndices struct {
	Graphics FamilyIndex
	Present  FamilyIndex
}

func (i QueueFamilyIndices) IsComplete() bool {
	return i.Graphics.Valid && i.Present.Valid
}

// Unique returns each distinct family once, graphics first. Both indices must be valid.
func (i QueueFamilyIndices) Unique() []int {
	uniqueQueueFamilies := []int{i.Graphics.Index}
	if i.Present.Index != i.Graphics.Index {
		uniqueQueueFamilies = append(uniqueQueueFamilies, i.Present.Index)
	}
	return uniqueQueueFamilies
}

// ResolveQueueFamilies scans queue families in index order and records the first graphics
// capable family and the first family that can present to surface. An incomplete result
// is valid; only errors from the presentation query are returned.
func ResolveQueueFamilies(device gfx.PhysicalDevice, surface gfx.Surface) (QueueFamilyIndices, error) {
	var indices QueueFamilyIndices

	for queueFamilyIdx, queueFamily := range device.QueueFamilies() {
		if !indices.Graphics.Valid && (queueFamily.Flags&core1_0.QueueGraphics) != 0 {
			indices.Graphics = Family(queueFamilyIdx)
		}

		if !indices.Present.Valid {
			supported, err := surface.SupportsPresent(device, queueFamilyIdx)
			if err != nil {
				return indices, errors.Wrapf(err, "query present support for queue family %d", queueFamilyIdx)
			}

			if supported {
				indices.Present = Family(queueFamilyIdx)
			}
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}
