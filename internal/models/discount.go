package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

type DiscountCode struct {
	ID            uint               `json:"id" gorm:"primaryKey"`
	Code          string             `json:"code" gorm:"uniqueIndex;not null"`
	Description   string             `json:"description"`
	Type          DiscountType       `json:"type" gorm:"not null"`
	Value         float64            `json:"value" gorm:"not null"`
	ValidFrom     *time.Time         `json:"valid_from"`
	ValidTo       *time.Time         `json:"valid_to"`
	MinOrderValue float64            `json:"min_order_value"`
	Stackable     bool               `json:"stackable"`
	MaxUsage      int                `json:"max_usage"` // 0 = unlimited
	Enabled       bool               `json:"enabled" gorm:"default:true"`
	Categories    []DiscountCategory `json:"categories" gorm:"foreignKey:DiscountCodeID"`

	// Informational aggregates only. Usage limits are always enforced by
	// recounting applied discounts on non-cancelled orders, never by
	// trusting these counters.
	UsageCount int     `json:"usage_count"`
	TotalSaved float64 `json:"total_saved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// DiscountCategory restricts a code to a product category. A code with
// no category rows applies to the whole cart.
type DiscountCategory struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	DiscountCodeID uint     `json:"discount_code_id" gorm:"not null;index"`
	Category       Category `json:"category" gorm:"not null"`
}

// ApplicableCategories returns the restricted category set, empty when
// the code is unrestricted.
func (d *DiscountCode) ApplicableCategories() []Category {
	categories := make([]Category, 0, len(d.Categories))
	for _, dc := range d.Categories {
		categories = append(categories, dc.Category)
	}
	return categories
}

// AppliedDiscount is a session-scoped discount on a cart, pre-checkout.
// Amounts are recomputed on every cart mutation.
type AppliedDiscount struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}
