package repositories

import (
	"belanja/internal/models"
)

// DiscountRepository defines the interface for discount code data access.
type DiscountRepository interface {
	GetAll() ([]models.Discount, error)
	GetByCode(code string) (*models.Discount, error)
	Create(discount *models.Discount) error
	Delete(code string) error
}
