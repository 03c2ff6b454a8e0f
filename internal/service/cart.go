package service

import (
	"errors"

	"storefront-service/internal/model"

	"gorm.io/gorm"
)

// CreateCart opens a new empty cart with a random token
func CreateCart(db *gorm.DB) (*model.Cart, error) {
	cart := model.Cart{}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart loads a cart with its items, products and promotions
func GetCart(db *gorm.DB, cartID string) (*model.Cart, error) {
	var cart model.Cart
	err := db.Preload("Items.Product.Promotion").First(&cart, "id = ?", cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteCart removes a cart and its items
func DeleteCart(db *gorm.DB, cartID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Cart{}, "id = ?", cartID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
	})
}

// AddCartItem adds a signed quantity delta for a product to a cart.
// An existing (cart, product) row is incremented, never duplicated; a
// resulting negative quantity is clamped to zero and the row is kept.
// A delta of exactly zero is rejected.
func AddCartItem(db *gorm.DB, cartID string, productID uint, delta int) (*model.CartItem, error) {
	if delta == 0 {
		return nil, NewValidationError("quantity", "quantity must not be zero")
	}

	var count int64
	if err := db.Model(&model.Cart{}).Where("id = ?", cartID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	if err := db.Model(&model.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NewValidationError("product_id", "no product with this id")
	}

	var item model.CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			quantity := delta
			if quantity < 0 {
				quantity = 0
			}
			item = model.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		item.Quantity += delta
		if item.Quantity < 0 {
			item.Quantity = 0
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Product.Promotion").First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetCartItemQuantity replaces the quantity of an existing cart item
func SetCartItemQuantity(db *gorm.DB, cartID string, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity < 0 {
		return nil, NewValidationError("quantity", "quantity must not be negative")
	}

	var item model.CartItem
	err := db.Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Product.Promotion").First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes one item row from a cart
func RemoveCartItem(db *gorm.DB, cartID string, itemID uint) error {
	result := db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
