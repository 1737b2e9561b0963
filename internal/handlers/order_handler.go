package handlers

import (
	"errors"
	"log"

	"belanja/internal/models"
	"belanja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders: checkout, cancellation,
// retrieval, and status updates.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. All of them require
// authentication; the customer is taken from the JWT locals.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/checkout", h.HandleCheckout)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves the authenticated customer's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	orders, err := h.service.GetOrdersByUser(userID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one of the customer's orders by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID, userID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleCheckout turns the customer's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	req.UserID = userID

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	orderID, err := h.service.Checkout(req)
	if err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.Is(err, services.ErrCartNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		case errors.Is(err, services.ErrCartEmpty):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Insufficient stock",
				"product": stockErr.ProductName,
				"error":   stockErr.Error(),
			})
		}
		log.Printf("Error during checkout for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id": orderID,
	})
}

// HandleCancelOrder cancels one of the customer's orders, restoring stock.
// Cancelling an already-cancelled order reports success=false without error.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	orderID := c.Params("id")
	cancelled, err := h.service.CancelOrder(orderID, userID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": cancelled,
	})
}

// UpdateStatusRequest represents the request body for an order status update.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus advances an order along its lifecycle.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.service.UpdateOrderStatus(orderID, req.Status); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}
