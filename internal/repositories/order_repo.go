package repositories

import (
	"belanja/internal/models"
)

// OrderRepository defines the interface for order data access. An order's
// items are always loaded together with the order.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	// GetByIDForUpdate reads an order while holding a row-level write lock,
	// so concurrent cancellations of the same order serialize on the
	// status check. Only meaningful inside a UnitOfWork transaction.
	GetByIDForUpdate(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) error
}
