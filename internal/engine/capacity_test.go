package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"order_intake/internal/models"
)

func testCapacity() CapacityConfig {
	overrideDay := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	closedDay := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return CapacityConfig{
		Defaults: map[models.Category]float64{
			models.CategoryWarm:    100,
			models.CategoryCold:    80,
			models.CategoryDessert: 50,
			models.CategoryDrink:   200,
		},
		Days: map[string]models.DayConfig{
			"2025-06-01": {
				Date:   overrideDay,
				IsOpen: true,
				Overrides: []models.CapacityOverride{
					{Category: models.CategoryWarm, Limit: 40},
				},
			},
			"2025-06-02": {Date: closedDay, IsOpen: false},
		},
	}
}

func TestEffectiveLimit_DayOverrideWins(t *testing.T) {
	capacity := testCapacity()

	assert.Equal(t, 40.0, capacity.EffectiveLimit("2025-06-01", models.CategoryWarm))
	// override is partial, other categories fall through to defaults
	assert.Equal(t, 80.0, capacity.EffectiveLimit("2025-06-01", models.CategoryCold))
}

func TestEffectiveLimit_DefaultWithoutConfig(t *testing.T) {
	capacity := testCapacity()

	assert.Equal(t, 100.0, capacity.EffectiveLimit("2025-07-15", models.CategoryWarm))
	assert.Equal(t, 200.0, capacity.EffectiveLimit("2025-07-15", models.CategoryDrink))
}

func TestIsDateClosed(t *testing.T) {
	capacity := testCapacity()

	assert.True(t, capacity.IsDateClosed("2025-06-02"))
	assert.False(t, capacity.IsDateClosed("2025-06-01"))
	// absence of a day config means open
	assert.False(t, capacity.IsDateClosed("2025-07-15"))
}
