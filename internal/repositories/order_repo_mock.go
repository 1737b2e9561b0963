package repositories

import (
	"fmt"
	"time"

	"belanja/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	src stateSource
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	st, done := r.src.acquire()
	defer done()

	order, ok := st.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetByIDForUpdate behaves like GetByID; the in-memory store serializes all
// transactions with one mutex, so the row lock is implicit.
func (r *MockOrderRepository) GetByIDForUpdate(id string) (*models.Order, error) {
	return r.GetByID(id)
}

// GetByUserID returns all orders belonging to a user.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	st, done := r.src.acquire()
	defer done()

	var orders []models.Order
	for _, order := range st.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// Create adds a new order with its items.
func (r *MockOrderRepository) Create(order *models.Order) error {
	st, done := r.src.acquire()
	defer done()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	st.orders[order.ID] = *order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	st, done := r.src.acquire()
	defer done()

	order, ok := st.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s for status update: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	st.orders[id] = order
	return nil
}
