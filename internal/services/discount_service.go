package services

import (
	"errors"
	"fmt"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"
)

// DiscountService handles discount code lookup and application.
type DiscountService struct {
	repo repositories.DiscountRepository
	now  func() time.Time // injectable clock for expiry tests
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(repo repositories.DiscountRepository) *DiscountService {
	return &DiscountService{
		repo: repo,
		now:  time.Now,
	}
}

// GetAllDiscounts retrieves all discount codes.
func (s *DiscountService) GetAllDiscounts() ([]models.Discount, error) {
	return s.repo.GetAll()
}

// GetByCode retrieves a discount by its code, or nil if absent.
func (s *DiscountService) GetByCode(code string) (*models.Discount, error) {
	discount, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return discount, nil
}

// IsValid reports whether a discount exists for code and its expiration date
// is strictly in the future.
func (s *DiscountService) IsValid(code string) (bool, error) {
	discount, err := s.GetByCode(code)
	if err != nil {
		return false, err
	}
	return discount != nil && discount.IsValidAt(s.now()), nil
}

// ApplyDiscount returns total reduced by the discount's percentage. Missing
// and expired codes leave the total unchanged; invalid codes are not an
// error, by policy, so a shopper can always complete checkout.
func (s *DiscountService) ApplyDiscount(code string, total float64) (float64, error) {
	return applyDiscount(s.repo, code, total, s.now())
}

// applyDiscount implements the discount policy against any repository, so
// checkout can evaluate the code through its transaction-bound repository
// with the same semantics as the standalone service.
func applyDiscount(repo repositories.DiscountRepository, code string, total float64, now time.Time) (float64, error) {
	discount, err := repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return total, nil
		}
		return total, err
	}
	if !discount.IsValidAt(now) {
		return total, nil
	}
	return total - total*(discount.DiscountPercentage/100), nil
}

// CreateDiscount creates a new discount code. The percentage is validated
// here at creation time, so apply-time can stay pass-through.
func (s *DiscountService) CreateDiscount(discount *models.Discount) error {
	if discount.DiscountPercentage < 0 || discount.DiscountPercentage > 100 {
		return fmt.Errorf("discount percentage %.2f is outside [0, 100]", discount.DiscountPercentage)
	}
	return s.repo.Create(discount)
}

// DeleteDiscount deletes a discount by its code.
func (s *DiscountService) DeleteDiscount(code string) error {
	return s.repo.Delete(code)
}
