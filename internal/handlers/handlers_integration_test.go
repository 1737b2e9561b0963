package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"belanja/internal/handlers"
	"belanja/internal/middleware"
	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp boots the full application over an in-memory SQLite database,
// mirroring the wiring in main.go minus RabbitMQ.
func setupApp(t *testing.T) (*fiber.App, repositories.Store) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// One named in-memory database per test: shared cache keeps it visible
	// across pooled connections, the name keeps tests independent.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Discount{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)

	store := repositories.NewGORMStore(db)

	auditRecorder := services.NewAuditRecorder(store.AuditLogs(), nil)
	productService := services.NewProductService(store.Products())
	cartService := services.NewCartService(store)
	discountService := services.NewDiscountService(store.Discounts())
	orderService := services.NewOrderService(store, auditRecorder, nil)
	authService := services.NewAuthService(store.Users(), jwtSecret)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	discountHandler := handlers.NewDiscountHandler(discountService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterProtectedRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	discountHandler.RegisterRoutes(protected)

	return app, store
}

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 {
		// Array responses are not decoded here; tests that need them decode
		// the raw body themselves.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// registerAndLogin creates an account and returns its auth token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func seedProduct(t *testing.T, store repositories.Store, name string, price float64, stock int) string {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	assert.NoError(t, store.Products().Create(&product))
	return product.ID
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	token := registerAndLogin(t, app, "authuser")
	assert.NotEmpty(t, token)

	// Duplicate registration is rejected.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "authuser",
		"email":    "authuser@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "authuser",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/cart/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Catalog browsing stays public.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutAndCancelFlow(t *testing.T) {
	app, store := setupApp(t)
	token := registerAndLogin(t, app, "shopper")

	productID := seedProduct(t, store, "Test Laptop", 1000.00, 5)
	assert.NoError(t, store.Discounts().Create(&models.Discount{
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(time.Hour),
	}))

	// Add two units to the cart.
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	items, _ := body["items"].([]interface{})
	assert.Len(t, items, 1)

	// Checkout with the discount code.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"shipping_address": "Jl. Merdeka 1, Jakarta",
		"billing_address":  "Jl. Merdeka 1, Jakarta",
		"payment_method":   "credit_card",
		"discount_code":    "SAVE10",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID, _ := body["order_id"].(string)
	assert.NotEmpty(t, orderID)

	// The order carries the discounted total and a pending status.
	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+orderID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 1800.0, body["total_amount"].(float64), 1e-6)
	assert.Equal(t, "pending", body["status"])

	// Stock went down, cart is empty.
	product, err := store.Products().GetByID(productID)
	assert.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/cart/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = body["items"].([]interface{})
	assert.Empty(t, items)

	// Cancel restores stock.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	product, err = store.Products().GetByID(productID)
	assert.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	// A second cancel is inert.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	product, err = store.Products().GetByID(productID)
	assert.NoError(t, err)
	assert.Equal(t, 5, product.Stock)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	app, store := setupApp(t)
	token := registerAndLogin(t, app, "greedyshopper")

	productID := seedProduct(t, store, "Test Monitor", 200.00, 3)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"shipping_address": "Jl. Merdeka 1, Jakarta",
		"billing_address":  "Jl. Merdeka 1, Jakarta",
		"payment_method":   "credit_card",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Test Monitor", body["product"])

	// Nothing changed: stock intact, no order created, cart still full.
	product, err := store.Products().GetByID(productID)
	assert.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	var orders []map[string]interface{}
	assert.NoError(t, json.NewDecoder(listResp.Body).Decode(&orders))
	listResp.Body.Close()
	assert.Empty(t, orders)
}

func TestCheckoutWithoutCart(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "emptyhanded")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"shipping_address": "Jl. Merdeka 1, Jakarta",
		"billing_address":  "Jl. Merdeka 1, Jakarta",
		"payment_method":   "credit_card",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrdersAreIsolatedPerCustomer(t *testing.T) {
	app, store := setupApp(t)
	aliceToken := registerAndLogin(t, app, "alice")
	bobToken := registerAndLogin(t, app, "bob")

	productID := seedProduct(t, store, "Test Keyboard", 75.00, 10)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", aliceToken, map[string]interface{}{
		"product_id": productID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", aliceToken, map[string]string{
		"shipping_address": "Jl. Merdeka 1, Jakarta",
		"billing_address":  "Jl. Merdeka 1, Jakarta",
		"payment_method":   "credit_card",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID, _ := body["order_id"].(string)

	// Bob can neither read nor cancel Alice's order.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+orderID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	app, store := setupApp(t)
	token := registerAndLogin(t, app, "cartuser")

	productID := seedProduct(t, store, "Test Mouse", 25.00, 50)

	// Add, then merge into the same line.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	items, _ := body["items"].([]interface{})
	assert.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, 3.0, line["quantity"])
	itemID := line["id"].(string)

	// Change the quantity.
	resp, body = doJSON(t, app, http.MethodPatch, "/api/v1/cart/items/"+itemID, token, map[string]interface{}{
		"quantity": 5,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = body["items"].([]interface{})
	assert.Equal(t, 5.0, items[0].(map[string]interface{})["quantity"])

	// Remove the line.
	resp, body = doJSON(t, app, http.MethodDelete, "/api/v1/cart/items/"+itemID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ = body["items"].([]interface{})
	assert.Empty(t, items)

	// Unknown product is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": "99999999-9999-9999-9999-999999999999",
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDiscountEndpoints(t *testing.T) {
	app, _ := setupApp(t)
	token := registerAndLogin(t, app, "discountadmin")

	// Create a discount.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/discounts/", token, map[string]interface{}{
		"code":                "SPRING15",
		"discount_percentage": 15,
		"expiration_date":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Fetch it back, with validity.
	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/discounts/SPRING15", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])

	// An out-of-range percentage is rejected at creation.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/discounts/", token, map[string]interface{}{
		"code":                "BOGUS",
		"discount_percentage": 150,
		"expiration_date":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delete it.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/discounts/SPRING15", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/discounts/SPRING15", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderStatusUpdateOverHTTP(t *testing.T) {
	app, store := setupApp(t)
	token := registerAndLogin(t, app, "statususer")

	productID := seedProduct(t, store, "Test Webcam", 60.00, 10)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": productID,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"shipping_address": "Jl. Merdeka 1, Jakarta",
		"billing_address":  "Jl. Merdeka 1, Jakarta",
		"payment_method":   "bank_transfer",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID, _ := body["order_id"].(string)

	// pending -> processing is allowed.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", token, map[string]string{
		"status": "processing",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// processing -> delivered skips shipped and is rejected.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", token, map[string]string{
		"status": "delivered",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Cancelling through the status endpoint is rejected; the cancel
	// endpoint owns restocking.
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", token, map[string]string{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
