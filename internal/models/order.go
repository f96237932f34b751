package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderCreated     OrderStatus = "CREATED"
	OrderConfirmed   OrderStatus = "CONFIRMED"
	OrderPreparing   OrderStatus = "PREPARING"
	OrderReady       OrderStatus = "READY"
	OrderOnWay       OrderStatus = "ON_WAY"
	OrderDelivered   OrderStatus = "DELIVERED"
	OrderNotPickedUp OrderStatus = "NOT_PICKED_UP"
	OrderCancelled   OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderCreated, OrderConfirmed, OrderPreparing, OrderReady,
		OrderOnWay, OrderDelivered, OrderNotPickedUp, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderNumber   string          `json:"order_number" gorm:"unique;not null"`
	CustomerName  string          `json:"customer_name" gorm:"not null"`
	CustomerPhone string          `json:"customer_phone"`
	DeliveryDate  time.Time       `json:"delivery_date" gorm:"not null;index"`
	Status        OrderStatus     `json:"status" gorm:"default:'CREATED'"`
	Subtotal      float64         `json:"subtotal"`
	DiscountTotal float64         `json:"discount_total"`
	PackagingFee  float64         `json:"packaging_fee"`
	TotalAmount   float64         `json:"total_amount"`
	Notes         string          `json:"notes" gorm:"type:text"`
	Items         []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Discounts     []OrderDiscount `json:"discounts" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

// DeliveryDay returns the delivery date as a YYYY-MM-DD key. All load
// accounting is date-only; time-of-day is ignored.
func (o *Order) DeliveryDay() string {
	return o.DeliveryDate.Format(time.DateOnly)
}

// OrderDiscount records a discount code applied to a submitted order,
// with the amount computed at checkout time. Usage counting for a code
// scans these rows on non-cancelled orders.
type OrderDiscount struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	OrderID uint    `json:"order_id" gorm:"not null;index"`
	Code    string  `json:"code" gorm:"not null"`
	Amount  float64 `json:"amount" gorm:"not null"`
}
