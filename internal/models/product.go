package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the preparation category a product belongs to. Daily
// capacity is tracked per category.
type Category string

const (
	CategoryWarm    Category = "WARM"
	CategoryCold    Category = "COLD"
	CategoryDessert Category = "DESSERT"
	CategoryDrink   Category = "DRINK"
)

// AllCategories lists every known category. Load maps always carry an
// entry for each of these.
var AllCategories = []Category{
	CategoryWarm,
	CategoryCold,
	CategoryDessert,
	CategoryDrink,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"not null"`
	Category         Category       `json:"category" gorm:"not null;index"`
	Price            float64        `json:"price" gorm:"not null"`
	Workload         float64        `json:"workload" gorm:"not null"`
	WorkloadOverhead float64        `json:"workload_overhead"`
	Volume           float64        `json:"volume"`
	LeadTimeDays     int            `json:"lead_time_days"`
	IsActive         bool           `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
