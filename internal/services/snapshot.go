package services

import (
	"time"

	"order_intake/internal/engine"
	"order_intake/internal/models"
	"order_intake/internal/redis"
	"order_intake/internal/repository"
)

// Redis-backed collaborators, narrowed to what the services use so
// tests can substitute in-memory fakes.

type SessionStore interface {
	SetCartSession(sessionID string, session *redis.CartSession, ttl time.Duration) error
	GetCartSession(sessionID string) (*redis.CartSession, error)
	DeleteCartSession(sessionID string) error
}

type SnapshotCache interface {
	SetCached(key string, value interface{}, ttl time.Duration) error
	GetCached(key string, dest interface{}) error
	InvalidateCached(key string) error
}

type DateLocker interface {
	AcquireDateLock(date string, ttl time.Duration) (bool, error)
	ReleaseDateLock(date string) error
}

// Cache keys for settings snapshots.
const (
	cacheKeyCapacityDefaults = "capacity_defaults"
	cacheKeyDiscountCatalog  = "discount_catalog"
	cacheKeyPackagingConfig  = "packaging_config"
)

// snapshotLoader assembles the immutable snapshots the engine runs on.
// Settings reads go through the cache; order reads are always fresh,
// since load and usage accounting must reflect cancellations.
type snapshotLoader struct {
	orderRepo     repository.OrderRepository
	dayConfigRepo repository.DayConfigRepository
	settingsRepo  repository.SettingsRepository
	discountRepo  repository.DiscountRepository
	cache         SnapshotCache
	cacheTTL      time.Duration
}

func (l *snapshotLoader) capacityConfig(startDate, endDate time.Time) (engine.CapacityConfig, error) {
	defaults, err := l.defaultCapacities()
	if err != nil {
		return engine.CapacityConfig{}, err
	}

	configs, err := l.dayConfigRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		return engine.CapacityConfig{}, err
	}

	days := make(map[string]models.DayConfig, len(configs))
	for _, config := range configs {
		days[config.Day()] = config
	}

	return engine.CapacityConfig{Defaults: defaults, Days: days}, nil
}

func (l *snapshotLoader) defaultCapacities() (map[models.Category]float64, error) {
	var defaults map[models.Category]float64
	if l.cache != nil {
		if err := l.cache.GetCached(cacheKeyCapacityDefaults, &defaults); err == nil {
			return defaults, nil
		}
	}

	rows, err := l.settingsRepo.GetDefaultCapacities()
	if err != nil {
		return nil, err
	}
	defaults = make(map[models.Category]float64, len(rows))
	for _, row := range rows {
		defaults[row.Category] = row.Limit
	}

	if l.cache != nil {
		_ = l.cache.SetCached(cacheKeyCapacityDefaults, defaults, l.cacheTTL)
	}
	return defaults, nil
}

func (l *snapshotLoader) discountCatalog() ([]models.DiscountCode, error) {
	var catalog []models.DiscountCode
	if l.cache != nil {
		if err := l.cache.GetCached(cacheKeyDiscountCatalog, &catalog); err == nil {
			return catalog, nil
		}
	}

	catalog, err := l.discountRepo.GetAll()
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		_ = l.cache.SetCached(cacheKeyDiscountCatalog, catalog, l.cacheTTL)
	}
	return catalog, nil
}

func (l *snapshotLoader) packagingConfig() (models.PackagingConfig, error) {
	var config models.PackagingConfig
	if l.cache != nil {
		if err := l.cache.GetCached(cacheKeyPackagingConfig, &config); err == nil {
			return config, nil
		}
	}

	types, err := l.settingsRepo.GetPackagingTypes()
	if err != nil {
		return models.PackagingConfig{}, err
	}
	config = models.PackagingConfig{Types: types}

	freeFrom, err := l.settingsRepo.GetSetting(models.SettingPackagingFreeFrom)
	if err == nil {
		config.FreeFrom = freeFrom.Value
	}

	if l.cache != nil {
		_ = l.cache.SetCached(cacheKeyPackagingConfig, config, l.cacheTTL)
	}
	return config, nil
}
