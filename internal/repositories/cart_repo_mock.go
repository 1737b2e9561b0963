package repositories

import (
	"fmt"
	"sort"

	"belanja/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	src stateSource
}

// GetByUserID returns a user's cart with its items assembled.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	st, done := r.src.acquire()
	defer done()

	for _, cart := range st.carts {
		if cart.UserID != userID {
			continue
		}
		cart.Items = collectItems(st, cart.ID)
		return &cart, nil
	}
	return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
}

func collectItems(st *memoryState, cartID string) []models.CartItem {
	var items []models.CartItem
	for _, item := range st.cartItems {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	// Map iteration order is random; keep item order stable for callers.
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	st, done := r.src.acquire()
	defer done()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	for _, existing := range st.carts {
		if existing.UserID == cart.UserID {
			return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrAlreadyExists)
		}
	}
	stored := *cart
	stored.Items = nil
	st.carts[cart.ID] = stored
	return nil
}

// CreateItem adds a new line to a cart.
func (r *MockCartRepository) CreateItem(item *models.CartItem) error {
	st, done := r.src.acquire()
	defer done()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if _, ok := st.carts[item.CartID]; !ok {
		return fmt.Errorf("cart with ID %s: %w", item.CartID, ErrNotFound)
	}
	st.cartItems[item.ID] = *item
	return nil
}

// UpdateItem modifies an existing cart line.
func (r *MockCartRepository) UpdateItem(item *models.CartItem) error {
	st, done := r.src.acquire()
	defer done()

	if _, ok := st.cartItems[item.ID]; !ok {
		return fmt.Errorf("cart item with ID %s for update: %w", item.ID, ErrNotFound)
	}
	st.cartItems[item.ID] = *item
	return nil
}

// DeleteItem removes a single cart line.
func (r *MockCartRepository) DeleteItem(id string) error {
	st, done := r.src.acquire()
	defer done()

	if _, ok := st.cartItems[id]; !ok {
		return fmt.Errorf("cart item with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(st.cartItems, id)
	return nil
}

// DeleteItemsByCartID empties the cart.
func (r *MockCartRepository) DeleteItemsByCartID(cartID string) error {
	st, done := r.src.acquire()
	defer done()

	for id, item := range st.cartItems {
		if item.CartID == cartID {
			delete(st.cartItems, id)
		}
	}
	return nil
}
