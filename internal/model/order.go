package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks payment progress on an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "P"
	PaymentStatusComplete PaymentStatus = "C"
	PaymentStatusFailed   PaymentStatus = "F"
)

// Valid reports whether the payment status code is known
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}

// Order is a placed purchase owned by a customer
type Order struct {
	ID            uint          `json:"id" gorm:"primarykey"`
	CustomerID    uint          `json:"customer_id" gorm:"index;not null"`
	PlacedAt      time.Time     `json:"placed_at" gorm:"autoCreateTime"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(1);not null;default:'P'"`
	Items         []OrderItem   `json:"items,omitempty"`
}

// TotalPrice sums quantity times the snapshotted unit price over all items
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// OrderItem is one product line in an order. Price is the per-unit
// effective price captured at placement time and never recomputed.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	OrderID   uint            `json:"order_id" gorm:"index;not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Product   *Product        `json:"product,omitempty"`
}
