package repositories

import (
	"fmt"

	"belanja/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository
// backed by a MemoryStore or a transaction's working state.
type MockProductRepository struct {
	src stateSource
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	st, done := r.src.acquire()
	defer done()

	productList := make([]models.Product, 0, len(st.products))
	for _, p := range st.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	st, done := r.src.acquire()
	defer done()

	product, ok := st.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// GetByIDForUpdate behaves like GetByID; the in-memory store serializes all
// transactions with one mutex, so the row lock is implicit.
func (r *MockProductRepository) GetByIDForUpdate(id string) (*models.Product, error) {
	return r.GetByID(id)
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	st, done := r.src.acquire()
	defer done()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	st.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	st, done := r.src.acquire()
	defer done()

	if _, ok := st.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %s for update: %w", product.ID, ErrNotFound)
	}
	st.products[product.ID] = *product
	return nil
}

// AdjustStock applies a relative stock change, rejecting adjustments that
// would drive stock below zero.
func (r *MockProductRepository) AdjustStock(id string, delta int) error {
	st, done := r.src.acquire()
	defer done()

	product, ok := st.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	if product.Stock+delta < 0 {
		return fmt.Errorf("stock adjustment of %d rejected for product %s", delta, id)
	}
	product.Stock += delta
	st.products[id] = product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	st, done := r.src.acquire()
	defer done()

	if _, ok := st.products[id]; !ok {
		return fmt.Errorf("product with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(st.products, id)
	return nil
}
