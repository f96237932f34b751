package services

import (
	"errors"

	"order_intake/internal/models"
	"order_intake/internal/repository"
)

var ErrInvalidProduct = errors.New("invalid product definition")

type CatalogService interface {
	CreateProduct(product *models.Product) error
	GetProduct(id uint) (*models.Product, error)
	GetProducts() ([]models.Product, error)
	GetActiveProducts() ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Create(product)
}

func (s *catalogService) GetProduct(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) GetProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

func (s *catalogService) GetActiveProducts() ([]models.Product, error) {
	return s.productRepo.GetActive()
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.productRepo.Update(product)
}

func (s *catalogService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

func validateProduct(product *models.Product) error {
	if product.Name == "" || product.Price < 0 {
		return ErrInvalidProduct
	}
	if !product.Category.Valid() {
		return ErrInvalidCategory
	}
	if product.Workload < 0 || product.WorkloadOverhead < 0 ||
		product.Volume < 0 || product.LeadTimeDays < 0 {
		return ErrInvalidProduct
	}
	return nil
}
