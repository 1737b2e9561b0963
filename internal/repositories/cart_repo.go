package repositories

import (
	"belanja/internal/models"
)

// CartRepository defines the interface for cart data access. A cart's items
// are always loaded together with the cart.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(id string) error
	// DeleteItemsByCartID empties the cart without deleting the cart itself.
	DeleteItemsByCartID(cartID string) error
}
