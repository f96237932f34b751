package models

import (
	"time"

	"gorm.io/gorm"
)

// DayConfig overrides the defaults for a single delivery date. A date
// without a DayConfig is open and uses the default capacities.
type DayConfig struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	Date      time.Time          `json:"date" gorm:"uniqueIndex;not null"`
	IsOpen    bool               `json:"is_open" gorm:"default:true"`
	Note      string             `json:"note"`
	Overrides []CapacityOverride `json:"overrides" gorm:"foreignKey:DayConfigID"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `json:"deleted_at" gorm:"index"`
}

// Day returns the config's date as a YYYY-MM-DD key.
func (d *DayConfig) Day() string {
	return d.Date.Format(time.DateOnly)
}

// OverrideFor returns the day-specific limit for a category, if one is
// configured.
func (d *DayConfig) OverrideFor(category Category) (float64, bool) {
	for _, ov := range d.Overrides {
		if ov.Category == category {
			return ov.Limit, true
		}
	}
	return 0, false
}

// CapacityOverride is a partial per-day category limit.
type CapacityOverride struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	DayConfigID uint     `json:"day_config_id" gorm:"not null;index"`
	Category    Category `json:"category" gorm:"not null"`
	Limit       float64  `json:"limit" gorm:"not null"`
}

// DefaultCapacity is the global daily limit for one category. Every
// category has exactly one row; limits are validated >= 0 at write time.
type DefaultCapacity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Category  Category  `json:"category" gorm:"uniqueIndex;not null"`
	Limit     float64   `json:"limit" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
