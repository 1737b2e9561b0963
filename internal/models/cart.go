package models

import "gorm.io/gorm"

// Cart holds a customer's pending line items. One cart per customer,
// created lazily on the first add-to-cart and emptied (not deleted) by a
// successful checkout.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is a single product line in a cart.
type CartItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CartID     string `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID  string `json:"product_id" gorm:"type:varchar(36)" validate:"required,uuid"`
	Quantity   int    `json:"quantity" gorm:"check:quantity > 0" validate:"required,gt=0"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
