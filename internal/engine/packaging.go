package engine

import (
	"sort"

	"order_intake/internal/models"
)

// PackagingFee computes the container cost for a cart. Orders at or
// above the free-from threshold ship free regardless of volume. Below
// it, containers are picked greedily: the largest box is used as long
// as the remaining volume exceeds it, then the smallest box that covers
// the remainder. A greedy best fit, not optimal bin packing — cost
// stays predictable and monotonic.
func PackagingFee(cart []models.CartLine, cfg models.PackagingConfig) float64 {
	if len(cfg.Types) == 0 {
		return 0
	}
	if models.CartSubtotal(cart) >= cfg.FreeFrom {
		return 0
	}

	remaining := 0.0
	for _, line := range cart {
		remaining += line.Volume * float64(line.Quantity)
	}

	types := make([]models.PackagingType, len(cfg.Types))
	copy(types, cfg.Types)
	sort.Slice(types, func(i, j int) bool { return types[i].Volume < types[j].Volume })

	largest := types[len(types)-1]
	if largest.Volume <= 0 {
		// malformed configuration is rejected at the settings write
		// boundary; don't loop on it here
		return 0
	}

	fee := 0.0
	for remaining > 0 {
		if remaining > largest.Volume {
			fee += largest.Price
			remaining -= largest.Volume
			continue
		}
		fitted := false
		for _, t := range types {
			if t.Volume >= remaining {
				fee += t.Price
				remaining = 0
				fitted = true
				break
			}
		}
		if !fitted {
			fee += largest.Price
			remaining -= largest.Volume
		}
	}
	return fee
}
