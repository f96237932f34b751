// Package engine contains the order admission and pricing logic:
// capacity resolution, load aggregation, availability classification,
// discount validation and packaging fees. Everything here is a pure
// function over caller-supplied snapshots, safe to re-run on every cart
// or date change.
package engine

import "order_intake/internal/models"

// CapacityConfig is an immutable snapshot of the capacity settings:
// the global per-category defaults plus any day-specific configs,
// keyed by YYYY-MM-DD.
type CapacityConfig struct {
	Defaults map[models.Category]float64
	Days     map[string]models.DayConfig
}

// EffectiveLimit resolves the capacity limit for a date and category:
// the day override wins when present, otherwise the global default.
// Limits are validated >= 0 at the settings write boundary.
func (c CapacityConfig) EffectiveLimit(date string, category models.Category) float64 {
	if day, ok := c.Days[date]; ok {
		if limit, ok := day.OverrideFor(category); ok {
			return limit
		}
	}
	return c.Defaults[category]
}

// IsDateClosed reports whether a date is explicitly closed. A date
// without a day config is open by default.
func (c CapacityConfig) IsDateClosed(date string) bool {
	day, ok := c.Days[date]
	return ok && !day.IsOpen
}
