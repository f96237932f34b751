package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a line of a submitted order. Workload, overhead and the
// unit price are snapshotted at order time so later catalog edits never
// change historical load or totals.
type OrderItem struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	OrderID          uint           `json:"order_id" gorm:"not null;index"`
	ProductID        uint           `json:"product_id" gorm:"not null"`
	ProductName      string         `json:"product_name" gorm:"not null"`
	Category         Category       `json:"category" gorm:"not null"`
	Quantity         int            `json:"quantity" gorm:"not null"`
	UnitPrice        float64        `json:"unit_price" gorm:"not null"`
	TotalPrice       float64        `json:"total_price" gorm:"not null"`
	Workload         float64        `json:"workload"`
	WorkloadOverhead float64        `json:"workload_overhead"`
	Volume           float64        `json:"volume"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// ItemFromLine converts a cart line into a persisted order item.
func ItemFromLine(line CartLine) OrderItem {
	return OrderItem{
		ProductID:        line.ProductID,
		ProductName:      line.Name,
		Category:         line.Category,
		Quantity:         line.Quantity,
		UnitPrice:        line.Price,
		TotalPrice:       line.Price * float64(line.Quantity),
		Workload:         line.Workload,
		WorkloadOverhead: line.WorkloadOverhead,
		Volume:           line.Volume,
	}
}
