package model

import "github.com/shopspring/decimal"

// Promotion represents a discount applied to products.
// Discount is a fraction of the price, e.g. 0.10 for 10% off.
type Promotion struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Title       string          `json:"title" gorm:"type:varchar(50);not null"`
	Description string          `json:"description" gorm:"type:varchar(255)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:numeric(5,4);not null"`
}
