package models

import "time"

// Discount is a percentage-off code. It is valid only while ExpirationDate
// is strictly in the future.
type Discount struct {
	Code               string    `json:"code" gorm:"primaryKey;type:varchar(50)" validate:"required,min=2,max=50"`
	DiscountPercentage float64   `json:"discount_percentage" validate:"gte=0,lte=100"`
	ExpirationDate     time.Time `json:"expiration_date" validate:"required"`
}

// IsValidAt reports whether the discount can be applied at the given time.
func (d *Discount) IsValidAt(t time.Time) bool {
	return d.ExpirationDate.After(t)
}
