package models

import "time"

// Setting names used by the engine configuration.
const (
	SettingPackagingFreeFrom = "packaging_free_from"
)

// ShopSetting is a named numeric setting.
type ShopSetting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Value     float64   `json:"value" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
