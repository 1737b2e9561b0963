package services_test

import (
	"testing"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"

	"github.com/stretchr/testify/assert"
)

func newDiscountTestEnv(t *testing.T) (repositories.Store, *services.DiscountService) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return store, services.NewDiscountService(store.Discounts())
}

func TestDiscountService_ApplyDiscount(t *testing.T) {
	store, service := newDiscountTestEnv(t)

	assert.NoError(t, store.Discounts().Create(&models.Discount{
		Code:               "SAVE20",
		DiscountPercentage: 20,
		ExpirationDate:     time.Now().Add(24 * time.Hour),
	}))
	assert.NoError(t, store.Discounts().Create(&models.Discount{
		Code:               "BYGONE20",
		DiscountPercentage: 20,
		ExpirationDate:     time.Now().Add(-time.Minute),
	}))

	// Valid code reduces the total by its percentage.
	total, err := service.ApplyDiscount("SAVE20", 100)
	assert.NoError(t, err)
	assert.Equal(t, 80.0, total)

	// Expired code leaves the total unchanged.
	total, err = service.ApplyDiscount("BYGONE20", 100)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, total)

	// Unknown code leaves the total unchanged.
	total, err = service.ApplyDiscount("NOSUCHCODE", 100)
	assert.NoError(t, err)
	assert.Equal(t, 100.0, total)
}

func TestDiscountService_IsValid(t *testing.T) {
	store, service := newDiscountTestEnv(t)

	assert.NoError(t, store.Discounts().Create(&models.Discount{
		Code:               "FRESH",
		DiscountPercentage: 5,
		ExpirationDate:     time.Now().Add(time.Hour),
	}))
	assert.NoError(t, store.Discounts().Create(&models.Discount{
		Code:               "STALE",
		DiscountPercentage: 5,
		ExpirationDate:     time.Now().Add(-time.Hour),
	}))

	valid, err := service.IsValid("FRESH")
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = service.IsValid("STALE")
	assert.NoError(t, err)
	assert.False(t, valid)

	valid, err = service.IsValid("MISSING")
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestDiscountService_GetByCode(t *testing.T) {
	store, service := newDiscountTestEnv(t)

	assert.NoError(t, store.Discounts().Create(&models.Discount{
		Code:               "HELLO",
		DiscountPercentage: 15,
		ExpirationDate:     time.Now().Add(time.Hour),
	}))

	discount, err := service.GetByCode("HELLO")
	assert.NoError(t, err)
	assert.NotNil(t, discount)
	assert.Equal(t, 15.0, discount.DiscountPercentage)

	// Absent codes come back as nil, not as an error.
	discount, err = service.GetByCode("ABSENT")
	assert.NoError(t, err)
	assert.Nil(t, discount)
}

func TestDiscountService_CreateValidatesPercentage(t *testing.T) {
	_, service := newDiscountTestEnv(t)

	err := service.CreateDiscount(&models.Discount{
		Code:               "TOOMUCH",
		DiscountPercentage: 120,
		ExpirationDate:     time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0, 100]")

	err = service.CreateDiscount(&models.Discount{
		Code:               "NEGATIVE",
		DiscountPercentage: -5,
		ExpirationDate:     time.Now().Add(time.Hour),
	})
	assert.Error(t, err)

	err = service.CreateDiscount(&models.Discount{
		Code:               "OK50",
		DiscountPercentage: 50,
		ExpirationDate:     time.Now().Add(time.Hour),
	})
	assert.NoError(t, err)
}
