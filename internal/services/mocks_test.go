package services

import (
	"errors"
	"time"

	"order_intake/internal/models"
	"order_intake/internal/redis"
)

// In-memory fakes for the repository and redis interfaces.

type mockOrderRepo struct {
	orders    []models.Order
	createErr error
	nextID    uint
}

func (m *mockOrderRepo) Create(order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderRepo) GetByID(id uint) (*models.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			return &m.orders[i], nil
		}
	}
	return nil, errors.New("order not found")
}

func (m *mockOrderRepo) GetByNumber(orderNumber string) (*models.Order, error) {
	for i := range m.orders {
		if m.orders[i].OrderNumber == orderNumber {
			return &m.orders[i], nil
		}
	}
	return nil, errors.New("order not found")
}

func (m *mockOrderRepo) GetByDeliveryDay(day time.Time) ([]models.Order, error) {
	key := day.Format(time.DateOnly)
	var result []models.Order
	for _, order := range m.orders {
		if order.DeliveryDay() == key {
			result = append(result, order)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	var result []models.Order
	for _, order := range m.orders {
		if !order.DeliveryDate.Before(startDate) && !order.DeliveryDate.After(endDate.AddDate(0, 0, 1)) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) GetAll() ([]models.Order, error) {
	return m.orders, nil
}

func (m *mockOrderRepo) Update(order *models.Order) error {
	for i := range m.orders {
		if m.orders[i].ID == order.ID {
			m.orders[i] = *order
			return nil
		}
	}
	return errors.New("order not found")
}

func (m *mockOrderRepo) UpdateStatus(id uint, status models.OrderStatus) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return errors.New("order not found")
}

type mockProductRepo struct {
	products map[uint]models.Product
}

func (m *mockProductRepo) Create(product *models.Product) error { return nil }

func (m *mockProductRepo) GetByID(id uint) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return &product, nil
}

func (m *mockProductRepo) GetAll() ([]models.Product, error) { return nil, nil }

func (m *mockProductRepo) GetActive() ([]models.Product, error) { return nil, nil }

func (m *mockProductRepo) Update(product *models.Product) error { return nil }

func (m *mockProductRepo) Delete(id uint) error { return nil }

type mockDayConfigRepo struct {
	configs []models.DayConfig
}

func (m *mockDayConfigRepo) GetByDate(date time.Time) (*models.DayConfig, error) {
	key := date.Format(time.DateOnly)
	for i := range m.configs {
		if m.configs[i].Day() == key {
			return &m.configs[i], nil
		}
	}
	return nil, errors.New("day config not found")
}

func (m *mockDayConfigRepo) GetByDateRange(startDate, endDate time.Time) ([]models.DayConfig, error) {
	var result []models.DayConfig
	for _, config := range m.configs {
		if !config.Date.Before(startDate) && !config.Date.After(endDate) {
			result = append(result, config)
		}
	}
	return result, nil
}

func (m *mockDayConfigRepo) GetAll() ([]models.DayConfig, error) { return m.configs, nil }

func (m *mockDayConfigRepo) Upsert(config *models.DayConfig) error { return nil }

func (m *mockDayConfigRepo) Delete(id uint) error { return nil }

type mockSettingsRepo struct {
	capacities []models.DefaultCapacity
	packaging  []models.PackagingType
	settings   map[string]float64
}

func (m *mockSettingsRepo) GetDefaultCapacities() ([]models.DefaultCapacity, error) {
	return m.capacities, nil
}

func (m *mockSettingsRepo) UpsertDefaultCapacity(capacity *models.DefaultCapacity) error {
	return nil
}

func (m *mockSettingsRepo) GetPackagingTypes() ([]models.PackagingType, error) {
	return m.packaging, nil
}

func (m *mockSettingsRepo) CreatePackagingType(packaging *models.PackagingType) error { return nil }

func (m *mockSettingsRepo) UpdatePackagingType(packaging *models.PackagingType) error { return nil }

func (m *mockSettingsRepo) DeletePackagingType(id uint) error { return nil }

func (m *mockSettingsRepo) GetSetting(name string) (*models.ShopSetting, error) {
	value, ok := m.settings[name]
	if !ok {
		return nil, errors.New("setting not found")
	}
	return &models.ShopSetting{Name: name, Value: value, IsActive: true}, nil
}

func (m *mockSettingsRepo) UpsertSetting(setting *models.ShopSetting) error { return nil }

type mockDiscountRepo struct {
	codes    []models.DiscountCode
	recorded map[string]int
}

func (m *mockDiscountRepo) Create(code *models.DiscountCode) error { return nil }

func (m *mockDiscountRepo) GetByID(id uint) (*models.DiscountCode, error) {
	return nil, errors.New("not found")
}

func (m *mockDiscountRepo) GetByCode(code string) (*models.DiscountCode, error) {
	return nil, errors.New("not found")
}

func (m *mockDiscountRepo) GetAll() ([]models.DiscountCode, error) {
	return m.codes, nil
}

func (m *mockDiscountRepo) Update(code *models.DiscountCode) error { return nil }

func (m *mockDiscountRepo) Delete(id uint) error { return nil }

func (m *mockDiscountRepo) RecordUsage(code string, amount float64) error {
	if m.recorded == nil {
		m.recorded = make(map[string]int)
	}
	m.recorded[code]++
	return nil
}

type mockSessionStore struct {
	sessions map[string]*redis.CartSession
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*redis.CartSession)}
}

func (m *mockSessionStore) SetCartSession(sessionID string, session *redis.CartSession, ttl time.Duration) error {
	copied := *session
	m.sessions[sessionID] = &copied
	return nil
}

func (m *mockSessionStore) GetCartSession(sessionID string) (*redis.CartSession, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.New("cart session not found")
	}
	copied := *session
	return &copied, nil
}

func (m *mockSessionStore) DeleteCartSession(sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type mockLocker struct {
	busy     bool
	acquired []string
	released []string
}

func (m *mockLocker) AcquireDateLock(date string, ttl time.Duration) (bool, error) {
	if m.busy {
		return false, nil
	}
	m.acquired = append(m.acquired, date)
	return true, nil
}

func (m *mockLocker) ReleaseDateLock(date string) error {
	m.released = append(m.released, date)
	return nil
}
