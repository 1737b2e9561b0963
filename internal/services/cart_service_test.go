package services_test

import (
	"testing"

	"belanja/internal/repositories"
	"belanja/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartTestEnv() (repositories.Store, *services.CartService) {
	store := repositories.NewMemoryStore()
	return store, services.NewCartService(store)
}

func TestCartService_GetCartForNewCustomer(t *testing.T) {
	_, service := newCartTestEnv()

	cart, err := service.GetCart(testUserID)
	assert.NoError(t, err)
	assert.Equal(t, testUserID, cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestCartService_AddItemCreatesCartLazily(t *testing.T) {
	store, service := newCartTestEnv()

	productID := seedProduct(t, store, "Mouse", 25.0, 10)

	cart, err := service.AddItem(testUserID, productID, 2)
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_AddItemMergesExistingLine(t *testing.T) {
	store, service := newCartTestEnv()

	productID := seedProduct(t, store, "Mouse", 25.0, 10)

	_, err := service.AddItem(testUserID, productID, 2)
	assert.NoError(t, err)
	cart, err := service.AddItem(testUserID, productID, 3)
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItemRejectsBadInput(t *testing.T) {
	store, service := newCartTestEnv()

	productID := seedProduct(t, store, "Mouse", 25.0, 10)

	_, err := service.AddItem(testUserID, productID, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity must be positive")

	_, err = service.AddItem(testUserID, "44444444-4444-4444-4444-444444444444", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	store, service := newCartTestEnv()

	productID := seedProduct(t, store, "Mouse", 25.0, 10)
	cart, err := service.AddItem(testUserID, productID, 2)
	assert.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = service.UpdateItemQuantity(testUserID, itemID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Quantity zero removes the line.
	cart, err = service.UpdateItemQuantity(testUserID, itemID, 0)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_UpdateItemInUnknownCart(t *testing.T) {
	_, service := newCartTestEnv()

	_, err := service.UpdateItemQuantity(testUserID, "55555555-5555-5555-5555-555555555555", 1)
	assert.ErrorIs(t, err, services.ErrCartNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	store, service := newCartTestEnv()

	mouseID := seedProduct(t, store, "Mouse", 25.0, 10)
	keyboardID := seedProduct(t, store, "Keyboard", 75.0, 10)
	_, err := service.AddItem(testUserID, mouseID, 1)
	assert.NoError(t, err)
	_, err = service.AddItem(testUserID, keyboardID, 1)
	assert.NoError(t, err)

	assert.NoError(t, service.ClearCart(testUserID))

	cart, err := service.GetCart(testUserID)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a cart that was never created is a no-op.
	assert.NoError(t, service.ClearCart("66666666-6666-6666-6666-666666666666"))
}
