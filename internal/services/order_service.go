package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/pkg/rabbitmq"

	"github.com/google/uuid"
)

// CheckoutRequest carries the inputs of the checkout workflow. The payment
// method is an opaque descriptor; charging it is someone else's job.
type CheckoutRequest struct {
	UserID          string `json:"-"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	BillingAddress  string `json:"billing_address" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	DiscountCode    string `json:"discount_code"`
}

// OrderService handles the order workflows: checkout, cancellation, and
// status management. Checkout and cancellation run inside one store
// transaction each; stock reads take row locks so concurrent invocations
// against the same product or order serialize instead of racing.
type OrderService struct {
	store     repositories.Store
	audit     *AuditRecorder
	publisher rabbitmq.Publisher // may be nil when messaging is disabled
	now       func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(store repositories.Store, audit *AuditRecorder, publisher rabbitmq.Publisher) *OrderService {
	return &OrderService{
		store:     store,
		audit:     audit,
		publisher: publisher,
		now:       time.Now,
	}
}

// Checkout turns the customer's cart into an order: it validates stock,
// snapshots prices, applies the discount code if one is supplied and valid,
// decrements stock, and empties the cart, all inside a single transaction.
// It returns the new order's ID.
//
// Failures (ErrCartNotFound, ErrCartEmpty, InsufficientStockError) roll the
// transaction back and leave every table untouched.
func (s *OrderService) Checkout(req CheckoutRequest) (string, error) {
	var orderID string

	err := s.store.Do(func(tx repositories.RepositoryProvider) error {
		cart, err := tx.Carts().GetByUserID(req.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		// Lock every product row before deciding anything, so a concurrent
		// checkout cannot pass the stock check against a stale snapshot.
		var total float64
		orderItems := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			product, err := tx.Products().GetByIDForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     product.Price, // Unit price snapshot at checkout time
			})
			total += product.Price * float64(line.Quantity)
		}

		if req.DiscountCode != "" {
			total, err = applyDiscount(tx.Discounts(), req.DiscountCode, total, s.now())
			if err != nil {
				return err
			}
		}

		order := &models.Order{
			ID:              uuid.New().String(),
			UserID:          req.UserID,
			Items:           orderItems,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			ShippingAddress: req.ShippingAddress,
			BillingAddress:  req.BillingAddress,
			PaymentMethod:   req.PaymentMethod,
		}
		if err := tx.Orders().Create(order); err != nil {
			return err
		}

		for _, line := range cart.Items {
			if err := tx.Products().AdjustStock(line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}

		// The cart is emptied, not deleted; it is reused by the next
		// add-to-cart.
		if err := tx.Carts().DeleteItemsByCartID(cart.ID); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	s.audit.Record(req.UserID, "Order", orderID, fmt.Sprintf("Checked out by customer %s", req.UserID))
	s.publishOrderEvent("order.created", orderID, req.UserID)
	return orderID, nil
}

// CancelOrder restores the stock consumed by an order and marks it
// cancelled, inside a single transaction. It returns false with a nil error
// when the order is already cancelled or otherwise terminal: repeated
// cancellation attempts after the first are inert, never double-restocked.
func (s *OrderService) CancelOrder(orderID, userID string) (bool, error) {
	cancelled := false

	err := s.store.Do(func(tx repositories.RepositoryProvider) error {
		order, err := tx.Orders().GetByIDForUpdate(orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		// An order that belongs to someone else is reported as not found;
		// cancellation must not leak other customers' order IDs.
		if order.UserID != userID {
			return ErrOrderNotFound
		}
		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return nil
		}

		for _, item := range order.Items {
			if err := tx.Products().AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Orders().UpdateStatus(orderID, models.OrderStatusCancelled); err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if cancelled {
		s.audit.Record(userID, "Order", orderID, fmt.Sprintf("Cancelled by customer %s", userID))
		s.publishOrderEvent("order.cancelled", orderID, userID)
	}
	return cancelled, nil
}

// GetOrderByID retrieves one of the customer's orders. Orders belonging to
// other customers are reported as not found.
func (s *OrderService) GetOrderByID(orderID, userID string) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrdersByUser retrieves all orders belonging to the customer.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.store.Orders().GetByUserID(userID)
}

// UpdateOrderStatus advances an order along its lifecycle. Transitions to
// cancelled are rejected here; CancelOrder is the only path that restores
// stock, so it must be the only path into that state.
func (s *OrderService) UpdateOrderStatus(orderID string, status models.OrderStatus) error {
	if status == models.OrderStatusCancelled {
		return fmt.Errorf("orders are cancelled through the cancellation workflow, not a status update")
	}

	return s.store.Do(func(tx repositories.RepositoryProvider) error {
		order, err := tx.Orders().GetByIDForUpdate(orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("invalid status transition from %s to %s for order %s", order.Status, status, orderID)
		}
		return tx.Orders().UpdateStatus(orderID, status)
	})
}

// publishOrderEvent emits an order lifecycle event, best-effort: a publish
// failure is logged and never surfaced to the caller whose transaction has
// already committed.
func (s *OrderService) publishOrderEvent(event, orderID, userID string) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":    event,
		"order_id": orderID,
		"user_id":  userID,
	})
	if err != nil {
		log.Printf("Warning: failed to marshal %s event for order %s: %v", event, orderID, err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.OrderEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, orderID, err)
	} else {
		log.Printf("Published %s event for order %s", event, orderID)
	}
}
