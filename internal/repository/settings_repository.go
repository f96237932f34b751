package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"order_intake/internal/models"
)

type SettingsRepository interface {
	GetDefaultCapacities() ([]models.DefaultCapacity, error)
	UpsertDefaultCapacity(capacity *models.DefaultCapacity) error

	GetPackagingTypes() ([]models.PackagingType, error)
	CreatePackagingType(packaging *models.PackagingType) error
	UpdatePackagingType(packaging *models.PackagingType) error
	DeletePackagingType(id uint) error

	GetSetting(name string) (*models.ShopSetting, error)
	UpsertSetting(setting *models.ShopSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetDefaultCapacities() ([]models.DefaultCapacity, error) {
	var capacities []models.DefaultCapacity
	err := r.db.Find(&capacities).Error
	return capacities, err
}

func (r *settingsRepository) UpsertDefaultCapacity(capacity *models.DefaultCapacity) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit", "updated_at"}),
	}).Create(capacity).Error
}

func (r *settingsRepository) GetPackagingTypes() ([]models.PackagingType, error) {
	var types []models.PackagingType
	err := r.db.Order("volume asc").Find(&types).Error
	return types, err
}

func (r *settingsRepository) CreatePackagingType(packaging *models.PackagingType) error {
	return r.db.Create(packaging).Error
}

func (r *settingsRepository) UpdatePackagingType(packaging *models.PackagingType) error {
	return r.db.Save(packaging).Error
}

func (r *settingsRepository) DeletePackagingType(id uint) error {
	return r.db.Delete(&models.PackagingType{}, id).Error
}

func (r *settingsRepository) GetSetting(name string) (*models.ShopSetting, error) {
	var setting models.ShopSetting
	err := r.db.Where("name = ? AND is_active = ?", name, true).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) UpsertSetting(setting *models.ShopSetting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "is_active", "updated_at"}),
	}).Create(setting).Error
}
