package model

import (
	"time"

	"github.com/shopspring/decimal"
)

var taxRate = decimal.NewFromFloat(0.10)

// SetTaxRate overrides the tax fraction applied on top of product prices
func SetTaxRate(rate decimal.Decimal) {
	taxRate = rate
}

// Product represents an item in the store catalog
type Product struct {
	ID          uint            `json:"id" gorm:"primarykey"`
	Title       string          `json:"title" gorm:"type:varchar(50);not null"`
	Slug        string          `json:"slug" gorm:"type:varchar(50);index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Inventory   int             `json:"inventory" gorm:"not null;default:0"`
	LastUpdate  time.Time       `json:"last_update" gorm:"autoUpdateTime"`
	CreatedAt   time.Time       `json:"created_at"`

	CollectionID uint        `json:"collection_id" gorm:"index;not null"`
	Collection   *Collection `json:"collection,omitempty"`

	PromotionID *uint      `json:"promotion_id,omitempty" gorm:"index"`
	Promotion   *Promotion `json:"promotion,omitempty"`

	Images  []ProductImage `json:"images,omitempty"`
	Reviews []Review       `json:"reviews,omitempty"`
}

// EffectivePrice returns the price after the promotional discount, before tax
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.Promotion != nil {
		return p.Price.Mul(decimal.NewFromInt(1).Sub(p.Promotion.Discount))
	}
	return p.Price
}

// PriceWithTax returns the undiscounted price including tax, rounded to cents
func (p *Product) PriceWithTax() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(1).Add(taxRate)).Round(2)
}

// ProductImage stores a reference to an uploaded product image file
type ProductImage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	Image     string    `json:"image" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
}
