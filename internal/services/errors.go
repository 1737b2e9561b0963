package services

import (
	"errors"
	"fmt"
)

// Business-rule failures returned by the cart and order workflows. Handlers
// match these with errors.Is / errors.As to pick a response status, instead
// of comparing error strings.
var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrCartEmpty     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

// InsufficientStockError reports a checkout line whose requested quantity
// exceeds the product's available stock.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}
