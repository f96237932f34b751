package services

import (
	"errors"
	"fmt"
	"time"

	"order_intake/internal/models"
	"order_intake/internal/repository"
)

var (
	ErrNegativeLimit   = errors.New("capacity limit must not be negative")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidDiscount = errors.New("invalid discount definition")
	ErrInvalidVolume   = errors.New("packaging volume must be positive")
)

// SettingsService is the write boundary for engine configuration.
// Malformed settings (negative limits, unknown categories) are rejected
// here; the engine itself assumes clean data.
type SettingsService interface {
	GetDayConfig(date time.Time) (*models.DayConfig, error)
	UpsertDayConfig(config *models.DayConfig) error
	DeleteDayConfig(id uint) error

	GetDefaultCapacities() (map[models.Category]float64, error)
	SetDefaultCapacity(category models.Category, limit float64) error

	GetPackagingConfig() (models.PackagingConfig, error)
	CreatePackagingType(packaging *models.PackagingType) error
	UpdatePackagingType(packaging *models.PackagingType) error
	DeletePackagingType(id uint) error
	SetFreeFromThreshold(value float64) error

	ListDiscounts() ([]models.DiscountCode, error)
	CreateDiscount(code *models.DiscountCode) error
	UpdateDiscount(code *models.DiscountCode) error
	DeleteDiscount(id uint) error
}

type settingsService struct {
	dayConfigRepo repository.DayConfigRepository
	settingsRepo  repository.SettingsRepository
	discountRepo  repository.DiscountRepository
	cache         SnapshotCache
}

func NewSettingsService(
	dayConfigRepo repository.DayConfigRepository,
	settingsRepo repository.SettingsRepository,
	discountRepo repository.DiscountRepository,
	cache SnapshotCache,
) SettingsService {
	return &settingsService{
		dayConfigRepo: dayConfigRepo,
		settingsRepo:  settingsRepo,
		discountRepo:  discountRepo,
		cache:         cache,
	}
}

func (s *settingsService) GetDayConfig(date time.Time) (*models.DayConfig, error) {
	return s.dayConfigRepo.GetByDate(date)
}

func (s *settingsService) UpsertDayConfig(config *models.DayConfig) error {
	for _, override := range config.Overrides {
		if !override.Category.Valid() {
			return ErrInvalidCategory
		}
		if override.Limit < 0 {
			return ErrNegativeLimit
		}
	}
	return s.dayConfigRepo.Upsert(config)
}

func (s *settingsService) DeleteDayConfig(id uint) error {
	return s.dayConfigRepo.Delete(id)
}

func (s *settingsService) GetDefaultCapacities() (map[models.Category]float64, error) {
	rows, err := s.settingsRepo.GetDefaultCapacities()
	if err != nil {
		return nil, err
	}
	defaults := make(map[models.Category]float64, len(rows))
	for _, row := range rows {
		defaults[row.Category] = row.Limit
	}
	return defaults, nil
}

func (s *settingsService) SetDefaultCapacity(category models.Category, limit float64) error {
	if !category.Valid() {
		return ErrInvalidCategory
	}
	if limit < 0 {
		return ErrNegativeLimit
	}
	err := s.settingsRepo.UpsertDefaultCapacity(&models.DefaultCapacity{
		Category: category,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("failed to update capacity: %w", err)
	}
	s.invalidate(cacheKeyCapacityDefaults)
	return nil
}

func (s *settingsService) GetPackagingConfig() (models.PackagingConfig, error) {
	types, err := s.settingsRepo.GetPackagingTypes()
	if err != nil {
		return models.PackagingConfig{}, err
	}
	config := models.PackagingConfig{Types: types}
	if setting, err := s.settingsRepo.GetSetting(models.SettingPackagingFreeFrom); err == nil {
		config.FreeFrom = setting.Value
	}
	return config, nil
}

func (s *settingsService) CreatePackagingType(packaging *models.PackagingType) error {
	if packaging.Volume <= 0 {
		return ErrInvalidVolume
	}
	if err := s.settingsRepo.CreatePackagingType(packaging); err != nil {
		return err
	}
	s.invalidate(cacheKeyPackagingConfig)
	return nil
}

func (s *settingsService) UpdatePackagingType(packaging *models.PackagingType) error {
	if packaging.Volume <= 0 {
		return ErrInvalidVolume
	}
	if err := s.settingsRepo.UpdatePackagingType(packaging); err != nil {
		return err
	}
	s.invalidate(cacheKeyPackagingConfig)
	return nil
}

func (s *settingsService) DeletePackagingType(id uint) error {
	if err := s.settingsRepo.DeletePackagingType(id); err != nil {
		return err
	}
	s.invalidate(cacheKeyPackagingConfig)
	return nil
}

func (s *settingsService) SetFreeFromThreshold(value float64) error {
	if value < 0 {
		return fmt.Errorf("free-from threshold must not be negative")
	}
	err := s.settingsRepo.UpsertSetting(&models.ShopSetting{
		Name:     models.SettingPackagingFreeFrom,
		Value:    value,
		IsActive: true,
	})
	if err != nil {
		return err
	}
	s.invalidate(cacheKeyPackagingConfig)
	return nil
}

func (s *settingsService) ListDiscounts() ([]models.DiscountCode, error) {
	return s.discountRepo.GetAll()
}

func (s *settingsService) CreateDiscount(code *models.DiscountCode) error {
	if err := validateDiscountDefinition(code); err != nil {
		return err
	}
	if err := s.discountRepo.Create(code); err != nil {
		return err
	}
	s.invalidate(cacheKeyDiscountCatalog)
	return nil
}

func (s *settingsService) UpdateDiscount(code *models.DiscountCode) error {
	if err := validateDiscountDefinition(code); err != nil {
		return err
	}
	if err := s.discountRepo.Update(code); err != nil {
		return err
	}
	s.invalidate(cacheKeyDiscountCatalog)
	return nil
}

func (s *settingsService) DeleteDiscount(id uint) error {
	if err := s.discountRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(cacheKeyDiscountCatalog)
	return nil
}

func validateDiscountDefinition(code *models.DiscountCode) error {
	if code.Code == "" || code.Value <= 0 {
		return ErrInvalidDiscount
	}
	if code.Type != models.DiscountPercentage && code.Type != models.DiscountFixed {
		return ErrInvalidDiscount
	}
	if code.Type == models.DiscountPercentage && code.Value > 100 {
		return ErrInvalidDiscount
	}
	for _, category := range code.Categories {
		if !category.Category.Valid() {
			return ErrInvalidCategory
		}
	}
	return nil
}

func (s *settingsService) invalidate(key string) {
	if s.cache != nil {
		_ = s.cache.InvalidateCached(key)
	}
}
