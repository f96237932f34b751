package models

import (
	"time"

	"gorm.io/gorm"
)

// PackagingType is one configured container size.
type PackagingType struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Volume    float64        `json:"volume" gorm:"not null"`
	Price     float64        `json:"price" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// PackagingConfig is the snapshot the fee calculation runs on.
type PackagingConfig struct {
	Types    []PackagingType `json:"types"`
	FreeFrom float64         `json:"free_from"`
}
