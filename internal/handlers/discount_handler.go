package handlers

import (
	"errors"
	"log"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DiscountHandler handles HTTP requests for discount codes.
type DiscountHandler struct {
	service  *services.DiscountService
	validate *validator.Validate
}

// NewDiscountHandler creates a new DiscountHandler.
func NewDiscountHandler(service *services.DiscountService) *DiscountHandler {
	return &DiscountHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the discount routes on the authenticated router.
func (h *DiscountHandler) RegisterRoutes(router fiber.Router) {
	discountRoutes := router.Group("/discounts")
	discountRoutes.Get("/", h.HandleGetDiscounts)
	discountRoutes.Get("/:code", h.HandleGetDiscountByCode)
	discountRoutes.Post("/", h.HandleCreateDiscount)
	discountRoutes.Delete("/:code", h.HandleDeleteDiscount)
}

// HandleGetDiscounts retrieves all discount codes.
func (h *DiscountHandler) HandleGetDiscounts(c *fiber.Ctx) error {
	discounts, err := h.service.GetAllDiscounts()
	if err != nil {
		log.Printf("Error getting all discounts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve discounts",
			"error":   err.Error(),
		})
	}
	return c.JSON(discounts)
}

// HandleGetDiscountByCode retrieves a discount and whether it is currently
// valid.
func (h *DiscountHandler) HandleGetDiscountByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	discount, err := h.service.GetByCode(code)
	if err != nil {
		log.Printf("Error getting discount %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve discount",
			"error":   err.Error(),
		})
	}
	if discount == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Discount not found",
		})
	}

	valid, err := h.service.IsValid(code)
	if err != nil {
		log.Printf("Error validating discount %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not validate discount",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"discount": discount,
		"valid":    valid,
	})
}

// HandleCreateDiscount creates a new discount code.
func (h *DiscountHandler) HandleCreateDiscount(c *fiber.Ctx) error {
	var discount models.Discount
	if err := c.BodyParser(&discount); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(discount); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.CreateDiscount(&discount); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Discount already exists",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating discount %s: %v", discount.Code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create discount",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(discount)
}

// HandleDeleteDiscount deletes a discount by its code.
func (h *DiscountHandler) HandleDeleteDiscount(c *fiber.Ctx) error {
	code := c.Params("code")
	if err := h.service.DeleteDiscount(code); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Discount not found",
			})
		}
		log.Printf("Error deleting discount %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete discount",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Discount deleted successfully",
	})
}
