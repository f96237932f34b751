package repository

import (
	"gorm.io/gorm"

	"order_intake/internal/models"
)

type DiscountRepository interface {
	Create(code *models.DiscountCode) error
	GetByID(id uint) (*models.DiscountCode, error)
	GetByCode(code string) (*models.DiscountCode, error)
	GetAll() ([]models.DiscountCode, error)
	Update(code *models.DiscountCode) error
	Delete(id uint) error
	RecordUsage(code string, amount float64) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(code *models.DiscountCode) error {
	return r.db.Create(code).Error
}

func (r *discountRepository) GetByID(id uint) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	err := r.db.Preload("Categories").First(&discount, id).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetByCode(code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	err := r.db.Preload("Categories").
		Where("LOWER(code) = LOWER(?)", code).First(&discount).Error
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetAll() ([]models.DiscountCode, error) {
	var discounts []models.DiscountCode
	err := r.db.Preload("Categories").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepository) Update(code *models.DiscountCode) error {
	return r.db.Save(code).Error
}

func (r *discountRepository) Delete(id uint) error {
	return r.db.Delete(&models.DiscountCode{}, id).Error
}

// RecordUsage bumps the informational aggregates on a code after a
// checkout. Enforcement never reads these; the engine recounts from
// order history.
func (r *discountRepository) RecordUsage(code string, amount float64) error {
	return r.db.Model(&models.DiscountCode{}).
		Where("LOWER(code) = LOWER(?)", code).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + 1"),
			"total_saved": gorm.Expr("total_saved + ?", amount),
		}).Error
}
