package handler

import (
	"github.com/shopspring/decimal"

	"storefront-service/internal/model"
)

// ProductResponse is a product with its derived price fields
type ProductResponse struct {
	ID                uint                 `json:"id"`
	Title             string               `json:"title"`
	Slug              string               `json:"slug"`
	Description       string               `json:"description"`
	Price             decimal.Decimal      `json:"price"`
	PriceWithDiscount decimal.Decimal      `json:"price_with_discount"`
	PriceWithTax      decimal.Decimal      `json:"price_with_tax"`
	Inventory         int                  `json:"inventory"`
	LastUpdate        string               `json:"last_update"`
	Collection        *model.Collection    `json:"collection,omitempty"`
	Promotion         *model.Promotion     `json:"promotion,omitempty"`
	Images            []model.ProductImage `json:"images,omitempty"`
	Reviews           []model.Review       `json:"reviews,omitempty"`
}

func newProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Title:             p.Title,
		Slug:              p.Slug,
		Description:       p.Description,
		Price:             p.Price,
		PriceWithDiscount: p.EffectivePrice(),
		PriceWithTax:      p.PriceWithTax(),
		Inventory:         p.Inventory,
		LastUpdate:        p.LastUpdate.Format("2006-01-02T15:04:05Z07:00"),
		Collection:        p.Collection,
		Promotion:         p.Promotion,
		Images:            p.Images,
		Reviews:           p.Reviews,
	}
}

// CartItemResponse is a cart line with its aggregate price
type CartItemResponse struct {
	ID         uint             `json:"id"`
	ProductID  uint             `json:"product_id"`
	Quantity   int              `json:"quantity"`
	Product    *ProductResponse `json:"product,omitempty"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

func newCartItemResponse(item *model.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		product := newProductResponse(item.Product)
		resp.Product = &product
		resp.TotalPrice = item.Product.EffectivePrice().
			Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
	}
	return resp
}

// CartResponse is a cart with per-item and aggregate totals
type CartResponse struct {
	ID         string             `json:"id"`
	CreatedAt  string             `json:"created_at"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

func newCartResponse(cart *model.Cart) CartResponse {
	resp := CartResponse{
		ID:        cart.ID,
		CreatedAt: cart.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Items:     make([]CartItemResponse, 0, len(cart.Items)),
	}
	total := decimal.Zero
	for i := range cart.Items {
		item := newCartItemResponse(&cart.Items[i])
		resp.Items = append(resp.Items, item)
		total = total.Add(item.TotalPrice)
	}
	resp.TotalPrice = total
	return resp
}

// OrderItemResponse is an order line with its snapshotted unit price
type OrderItemResponse struct {
	ID         uint             `json:"id"`
	ProductID  uint             `json:"product_id"`
	Quantity   int              `json:"quantity"`
	Price      decimal.Decimal  `json:"price"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Product    *ProductResponse `json:"product,omitempty"`
}

// OrderResponse is an order with items and the derived total
type OrderResponse struct {
	ID            uint                `json:"id"`
	CustomerID    uint                `json:"customer_id"`
	PlacedAt      string              `json:"placed_at"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	Items         []OrderItemResponse `json:"items"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
}

func newOrderResponse(order *model.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		PlacedAt:      order.PlacedAt.Format("2006-01-02T15:04:05Z07:00"),
		PaymentStatus: order.PaymentStatus,
		Items:         make([]OrderItemResponse, 0, len(order.Items)),
	}
	for i := range order.Items {
		item := &order.Items[i]
		itemResp := OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			TotalPrice: item.Price.
				Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2),
		}
		if item.Product != nil {
			product := newProductResponse(item.Product)
			itemResp.Product = &product
		}
		resp.Items = append(resp.Items, itemResp)
	}
	resp.TotalPrice = order.TotalPrice()
	return resp
}
