package repositories

import (
	"fmt"

	"belanja/internal/models"
)

// MockDiscountRepository is an in-memory implementation of DiscountRepository.
type MockDiscountRepository struct {
	src stateSource
}

// GetAll returns all discount codes.
func (r *MockDiscountRepository) GetAll() ([]models.Discount, error) {
	st, done := r.src.acquire()
	defer done()

	discountList := make([]models.Discount, 0, len(st.discounts))
	for _, d := range st.discounts {
		discountList = append(discountList, d)
	}
	return discountList, nil
}

// GetByCode returns a discount by its code.
func (r *MockDiscountRepository) GetByCode(code string) (*models.Discount, error) {
	st, done := r.src.acquire()
	defer done()

	discount, ok := st.discounts[code]
	if !ok {
		return nil, fmt.Errorf("discount with code %s: %w", code, ErrNotFound)
	}
	return &discount, nil
}

// Create adds a new discount code.
func (r *MockDiscountRepository) Create(discount *models.Discount) error {
	st, done := r.src.acquire()
	defer done()

	if _, ok := st.discounts[discount.Code]; ok {
		return fmt.Errorf("discount with code %s: %w", discount.Code, ErrAlreadyExists)
	}
	st.discounts[discount.Code] = *discount
	return nil
}

// Delete removes a discount by its code.
func (r *MockDiscountRepository) Delete(code string) error {
	st, done := r.src.acquire()
	defer done()

	if _, ok := st.discounts[code]; !ok {
		return fmt.Errorf("discount with code %s for deletion: %w", code, ErrNotFound)
	}
	delete(st.discounts, code)
	return nil
}
