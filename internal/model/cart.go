package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is an ephemeral shopping cart identified by a random token.
// It is deleted once converted into an Order.
type Cart struct {
	ID        string     `json:"id" gorm:"type:uuid;primarykey"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the random cart token
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CartItem is one product line in a cart, unique per (cart, product)
type CartItem struct {
	ID        uint     `json:"id" gorm:"primarykey"`
	CartID    string   `json:"cart_id" gorm:"type:uuid;uniqueIndex:idx_cart_product;not null"`
	ProductID uint     `json:"product_id" gorm:"uniqueIndex:idx_cart_product;not null"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Product   *Product `json:"product,omitempty"`
}
