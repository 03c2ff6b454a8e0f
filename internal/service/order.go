package service

import (
	"errors"

	"storefront-service/internal/event"
	"storefront-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceOrder converts a cart into an order for the given user inside a
// single transaction: the cart must exist and be non-empty, every item
// must fit current inventory, unit prices are snapshotted at their
// effective (discounted) value, inventory is decremented and the cart is
// deleted. On success an OrderCreated event is published asynchronously;
// event delivery never affects the committed transaction.
func PlaceOrder(db *gorm.DB, bus *event.Bus, userID uint, cartID string) (*model.Order, error) {
	var orderID uint

	err := db.Transaction(func(tx *gorm.DB) error {
		customer, err := GetOrCreateCustomer(tx, userID)
		if err != nil {
			return err
		}

		var cartCount int64
		if err := tx.Model(&model.Cart{}).Where("id = ?", cartID).Count(&cartCount).Error; err != nil {
			return err
		}
		if cartCount == 0 {
			return NewValidationError("cart_id", "no cart with this id")
		}

		var items []model.CartItem
		if err := tx.Where("cart_id = ?", cartID).Order("id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return NewValidationError("cart_id", "cart is empty")
		}

		products, err := lockProducts(tx, items)
		if err != nil {
			return err
		}

		var shortfalls []Shortfall
		for _, item := range items {
			product := products[item.ProductID]
			if item.Quantity > product.Inventory {
				shortfalls = append(shortfalls, Shortfall{
					ProductID:    product.ID,
					ProductTitle: product.Title,
					Requested:    item.Quantity,
					Available:    product.Inventory,
					Missing:      item.Quantity - product.Inventory,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &InsufficientInventoryError{Items: shortfalls}
		}

		order := model.Order{CustomerID: customer.ID, PaymentStatus: model.PaymentStatusPending}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			product := products[item.ProductID]

			orderItem := model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.EffectivePrice().Round(2),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			result := tx.Model(&model.Product{}).
				Where("id = ?", product.ID).
				Update("inventory", gorm.Expr("inventory - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Cart{}, "id = ?", cartID).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := GetOrder(db, orderID)
	if err != nil {
		return nil, err
	}

	if bus != nil {
		bus.PublishAsync(event.OrderCreated{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			ItemCount:  len(order.Items),
			Total:      order.TotalPrice(),
		})
	}

	return order, nil
}

// lockProducts loads the products behind the cart items under row locks
// so two concurrent placements cannot both pass the inventory check.
// Their promotions are read afterwards; promotion rows are never written
// here so they need no lock.
func lockProducts(tx *gorm.DB, items []model.CartItem) (map[uint]*model.Product, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	query := tx.Where("id IN ?", ids)
	// SQLite (used in tests) has no FOR UPDATE; its write transactions
	// are serialized already
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, NewValidationError("items", "cart references a missing product")
	}

	promotionIDs := make([]uint, 0, len(products))
	for _, product := range products {
		if product.PromotionID != nil {
			promotionIDs = append(promotionIDs, *product.PromotionID)
		}
	}
	promotions := map[uint]*model.Promotion{}
	if len(promotionIDs) > 0 {
		var rows []model.Promotion
		if err := tx.Where("id IN ?", promotionIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			promotions[rows[i].ID] = &rows[i]
		}
	}

	byID := make(map[uint]*model.Product, len(products))
	for i := range products {
		product := &products[i]
		if product.PromotionID != nil {
			product.Promotion = promotions[*product.PromotionID]
		}
		byID[product.ID] = product
	}
	return byID, nil
}

// GetOrder loads an order with its items and products
func GetOrder(db *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	err := db.Preload("Items.Product.Promotion").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
