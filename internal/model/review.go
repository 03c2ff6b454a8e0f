package model

import "time"

// Review is customer feedback on a product.
// CustomerID is denormalized on purpose to match the upstream schema:
// there is no foreign key to Customer, and 0 means an anonymous author.
type Review struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	ProductID   uint      `json:"product_id" gorm:"index;not null"`
	CustomerID  uint      `json:"customer_id" gorm:"not null;default:0"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Date        time.Time `json:"date" gorm:"autoCreateTime"`
}
