package services

import (
	"errors"
	"fmt"

	"belanja/internal/models"
	"belanja/internal/repositories"
)

// CartService handles business logic for shopping carts. A customer has at
// most one cart, created lazily by the first AddItem.
type CartService struct {
	store repositories.RepositoryProvider
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.RepositoryProvider) *CartService {
	return &CartService{
		store: store,
	}
}

// GetCart retrieves the customer's cart. A customer who has never added an
// item gets an empty, unpersisted cart rather than an error.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.store.Carts().GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem puts quantity units of a product into the customer's cart,
// creating the cart if needed and merging into an existing line for the
// same product.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	// The product must exist; stock is not reserved here, checkout is where
	// stock is checked and decremented.
	if _, err := s.store.Products().GetByID(productID); err != nil {
		return nil, err
	}

	carts := s.store.Carts()
	cart, err := carts.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID}
		if err := carts.Create(cart); err != nil {
			return nil, err
		}
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			if err := carts.UpdateItem(&cart.Items[i]); err != nil {
				return nil, err
			}
			return carts.GetByUserID(userID)
		}
	}

	item := models.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := carts.CreateItem(&item); err != nil {
		return nil, err
	}
	return carts.GetByUserID(userID)
}

// UpdateItemQuantity sets the quantity of an existing cart line. Quantity
// zero removes the line.
func (s *CartService) UpdateItemQuantity(userID, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}

	carts := s.store.Carts()
	cart, err := carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ID != itemID {
			continue
		}
		if quantity == 0 {
			if err := carts.DeleteItem(itemID); err != nil {
				return nil, err
			}
		} else {
			cart.Items[i].Quantity = quantity
			if err := carts.UpdateItem(&cart.Items[i]); err != nil {
				return nil, err
			}
		}
		return carts.GetByUserID(userID)
	}
	return nil, fmt.Errorf("cart item with ID %s: %w", itemID, repositories.ErrNotFound)
}

// RemoveItem deletes a line from the customer's cart.
func (s *CartService) RemoveItem(userID, itemID string) (*models.Cart, error) {
	return s.UpdateItemQuantity(userID, itemID, 0)
}

// ClearCart removes every line from the customer's cart. Clearing a
// nonexistent cart is a no-op.
func (s *CartService) ClearCart(userID string) error {
	cart, err := s.store.Carts().GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.store.Carts().DeleteItemsByCartID(cart.ID)
}
