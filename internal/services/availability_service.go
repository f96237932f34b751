package services

import (
	"fmt"
	"time"

	"order_intake/internal/engine"
	"order_intake/internal/models"
	"order_intake/internal/repository"
)

type AvailabilityService interface {
	CheckDate(date time.Time, cart []models.CartLine, excludeOrderID uint) (engine.AvailabilityResult, error)
	Calendar(startDate, endDate time.Time, cart []models.CartLine) (map[string]engine.AvailabilityStatus, error)
}

type availabilityService struct {
	snapshots *snapshotLoader
	now       func() time.Time
}

func NewAvailabilityService(
	orderRepo repository.OrderRepository,
	dayConfigRepo repository.DayConfigRepository,
	settingsRepo repository.SettingsRepository,
	cache SnapshotCache,
	cacheTTL time.Duration,
) AvailabilityService {
	return &availabilityService{
		snapshots: &snapshotLoader{
			orderRepo:     orderRepo,
			dayConfigRepo: dayConfigRepo,
			settingsRepo:  settingsRepo,
			cache:         cache,
			cacheTTL:      cacheTTL,
		},
		now: time.Now,
	}
}

// CheckDate classifies one candidate (date, cart) pair. Called by the
// UI before checkout and again on every cart or date change; the engine
// is pure, so repeated calls are safe.
func (s *availabilityService) CheckDate(date time.Time, cart []models.CartLine, excludeOrderID uint) (engine.AvailabilityResult, error) {
	orders, err := s.snapshots.orderRepo.GetByDeliveryDay(date)
	if err != nil {
		return engine.AvailabilityResult{}, fmt.Errorf("failed to load orders: %w", err)
	}

	capacity, err := s.snapshots.capacityConfig(date, date)
	if err != nil {
		return engine.AvailabilityResult{}, fmt.Errorf("failed to load capacity settings: %w", err)
	}

	return engine.CheckAvailability(engine.AvailabilityInput{
		Date:           date.Format(time.DateOnly),
		Today:          s.now().Format(time.DateOnly),
		Cart:           cart,
		Orders:         orders,
		Capacity:       capacity,
		ExcludeOrderID: excludeOrderID,
	}), nil
}

// Calendar returns the per-day status over a date range, for rendering
// the delivery-date picker. One order read covers the whole range.
func (s *availabilityService) Calendar(startDate, endDate time.Time, cart []models.CartLine) (map[string]engine.AvailabilityStatus, error) {
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("invalid range: end date before start date")
	}

	orders, err := s.snapshots.orderRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	capacity, err := s.snapshots.capacityConfig(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load capacity settings: %w", err)
	}

	today := s.now().Format(time.DateOnly)
	statuses := make(map[string]engine.AvailabilityStatus)
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		statuses[day.Format(time.DateOnly)] = engine.DateStatus(engine.AvailabilityInput{
			Date:     day.Format(time.DateOnly),
			Today:    today,
			Cart:     cart,
			Orders:   orders,
			Capacity: capacity,
		})
	}

	return statuses, nil
}
