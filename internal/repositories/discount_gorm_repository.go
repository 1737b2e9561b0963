package repositories

import (
	"errors"
	"fmt"

	"belanja/internal/models"

	"gorm.io/gorm"
)

// GORMDiscountRepository is a GORM implementation of DiscountRepository.
type GORMDiscountRepository struct {
	db *gorm.DB
}

// NewGORMDiscountRepository creates a new instance of GORMDiscountRepository.
func NewGORMDiscountRepository(db *gorm.DB) *GORMDiscountRepository {
	return &GORMDiscountRepository{
		db: db,
	}
}

// GetAll retrieves all discount codes.
func (r *GORMDiscountRepository) GetAll() ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.db.Find(&discounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get all discounts: %w", err)
	}
	return discounts, nil
}

// GetByCode retrieves a discount by its code.
func (r *GORMDiscountRepository) GetByCode(code string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.First(&discount, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("discount with code %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get discount by code %s: %w", code, err)
	}
	return &discount, nil
}

// Create creates a new discount code.
func (r *GORMDiscountRepository) Create(discount *models.Discount) error {
	var count int64
	if err := r.db.Model(&models.Discount{}).Where("code = ?", discount.Code).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check discount code %s: %w", discount.Code, err)
	}
	if count > 0 {
		return fmt.Errorf("discount with code %s: %w", discount.Code, ErrAlreadyExists)
	}
	if err := r.db.Create(discount).Error; err != nil {
		return fmt.Errorf("failed to create discount: %w", err)
	}
	return nil
}

// Delete deletes a discount by its code.
func (r *GORMDiscountRepository) Delete(code string) error {
	res := r.db.Delete(&models.Discount{}, "code = ?", code)
	if res.Error != nil {
		return fmt.Errorf("failed to delete discount: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("discount with code %s for deletion: %w", code, ErrNotFound)
	}
	return nil
}
