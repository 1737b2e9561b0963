package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
// Cancelled and Delivered are terminal; everything else can still move.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

// CanTransitionTo reports whether the status machine allows moving from s
// to next. Cancelled is reachable from any non-terminal state; the rest
// advance strictly pending -> processing -> shipped -> delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

// OrderItem represents a single line within an order. Price is a
// point-in-time copy of the product price at checkout and is never
// recomputed, so order totals stay stable when catalog prices change.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int     `json:"quantity" gorm:"check:quantity > 0"`
	Price     float64 `json:"price" gorm:"check:price >= 0"` // Unit price at the time of order
}

// Order represents a customer order created by checkout. Immutable after
// creation except for Status.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
