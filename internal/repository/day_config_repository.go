package repository

import (
	"time"

	"gorm.io/gorm"

	"order_intake/internal/models"
)

type DayConfigRepository interface {
	GetByDate(date time.Time) (*models.DayConfig, error)
	GetByDateRange(startDate, endDate time.Time) ([]models.DayConfig, error)
	GetAll() ([]models.DayConfig, error)
	Upsert(config *models.DayConfig) error
	Delete(id uint) error
}

type dayConfigRepository struct {
	db *gorm.DB
}

func NewDayConfigRepository(db *gorm.DB) DayConfigRepository {
	return &dayConfigRepository{db: db}
}

func (r *dayConfigRepository) GetByDate(date time.Time) (*models.DayConfig, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	var config models.DayConfig
	err := r.db.Preload("Overrides").
		Where("date >= ? AND date < ?", start, end).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *dayConfigRepository) GetByDateRange(startDate, endDate time.Time) ([]models.DayConfig, error) {
	var configs []models.DayConfig
	err := r.db.Preload("Overrides").
		Where("date BETWEEN ? AND ?", startDate, endDate).Find(&configs).Error
	return configs, err
}

func (r *dayConfigRepository) GetAll() ([]models.DayConfig, error) {
	var configs []models.DayConfig
	err := r.db.Preload("Overrides").Find(&configs).Error
	return configs, err
}

// Upsert replaces the config for a date, overrides included.
func (r *dayConfigRepository) Upsert(config *models.DayConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		existing, err := r.getByDateTx(tx, config.Date)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if existing != nil {
			if err := tx.Where("day_config_id = ?", existing.ID).
				Delete(&models.CapacityOverride{}).Error; err != nil {
				return err
			}
			config.ID = existing.ID
		}
		return tx.Save(config).Error
	})
}

func (r *dayConfigRepository) getByDateTx(tx *gorm.DB, date time.Time) (*models.DayConfig, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	var config models.DayConfig
	err := tx.Where("date >= ? AND date < ?", start, end).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *dayConfigRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("day_config_id = ?", id).
			Delete(&models.CapacityOverride{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DayConfig{}, id).Error
	})
}
