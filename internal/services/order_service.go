package services

import (
	"errors"
	"fmt"
	"time"

	"order_intake/internal/engine"
	"order_intake/internal/models"
	"order_intake/internal/repository"
)

var ErrInvalidStatus = errors.New("invalid order status")

// RescheduleResult reports the availability decision for the new date;
// the order only moves when the date is available.
type RescheduleResult struct {
	Moved        bool                      `json:"moved"`
	Availability engine.AvailabilityResult `json:"availability"`
	Order        *models.Order             `json:"order,omitempty"`
}

type OrderService interface {
	GetByID(id uint) (*models.Order, error)
	GetByDay(day time.Time) ([]models.Order, error)
	GetByDateRange(startDate, endDate time.Time) ([]models.Order, error)
	UpdateStatus(id uint, status models.OrderStatus) error
	Cancel(id uint) error
	Reschedule(id uint, newDate time.Time) (*RescheduleResult, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	availability AvailabilityService
}

func NewOrderService(orderRepo repository.OrderRepository, availability AvailabilityService) OrderService {
	return &orderService{orderRepo: orderRepo, availability: availability}
}

func (s *orderService) GetByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetByDay(day time.Time) ([]models.Order, error) {
	return s.orderRepo.GetByDeliveryDay(day)
}

func (s *orderService) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	return s.orderRepo.GetByDateRange(startDate, endDate)
}

func (s *orderService) UpdateStatus(id uint, status models.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.orderRepo.UpdateStatus(id, status)
}

// Cancel releases the order's capacity and discount usage: load and
// usage accounting skip cancelled orders, so nothing else to undo.
func (s *orderService) Cancel(id uint) error {
	return s.orderRepo.UpdateStatus(id, models.OrderCancelled)
}

// Reschedule re-checks availability for the new date with the order's
// own load excluded, so an order never blocks its own move.
func (s *orderService) Reschedule(id uint, newDate time.Time) (*RescheduleResult, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	cart := make([]models.CartLine, 0, len(order.Items))
	for _, item := range order.Items {
		cart = append(cart, models.CartLine{
			ProductID:        item.ProductID,
			Name:             item.ProductName,
			Category:         item.Category,
			Price:            item.UnitPrice,
			Workload:         item.Workload,
			WorkloadOverhead: item.WorkloadOverhead,
			Volume:           item.Volume,
			Quantity:         item.Quantity,
		})
	}

	result, err := s.availability.CheckDate(newDate, cart, order.ID)
	if err != nil {
		return nil, err
	}
	if result.Status != engine.StatusAvailable {
		return &RescheduleResult{Availability: result}, nil
	}

	order.DeliveryDate = newDate
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return &RescheduleResult{Moved: true, Availability: result, Order: order}, nil
}
