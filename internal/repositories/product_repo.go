package repositories

import (
	"belanja/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// GetByIDForUpdate reads a product while holding a row-level write lock,
	// so concurrent checkouts against the same product serialize on the
	// stock check. Only meaningful inside a UnitOfWork transaction.
	GetByIDForUpdate(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// AdjustStock adds delta (possibly negative) to the product's stock.
	// The adjustment fails if it would drive stock below zero.
	AdjustStock(id string, delta int) error
	Delete(id string) error
}
