package service

import (
	"testing"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCollection(t *testing.T, db *gorm.DB, title string) *model.Collection {
	t.Helper()

	collection := model.Collection{Title: title}
	require.NoError(t, db.Create(&collection).Error)
	return &collection
}

func seedProduct(t *testing.T, db *gorm.DB, title, price string, inventory int) *model.Product {
	t.Helper()

	collection := seedCollection(t, db, title+" collection")
	product := model.Product{
		Title:        title,
		Price:        decimal.RequireFromString(price),
		Inventory:    inventory,
		CollectionID: collection.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func seedPromotion(t *testing.T, db *gorm.DB, title, discount string) *model.Promotion {
	t.Helper()

	promotion := model.Promotion{Title: title, Discount: decimal.RequireFromString(discount)}
	require.NoError(t, db.Create(&promotion).Error)
	return &promotion
}

func attachPromotion(t *testing.T, db *gorm.DB, product *model.Product, promotion *model.Promotion) {
	t.Helper()

	require.NoError(t, db.Model(product).Update("promotion_id", promotion.ID).Error)
	product.PromotionID = &promotion.ID
	product.Promotion = promotion
}

func seedCartWithItem(t *testing.T, db *gorm.DB, productID uint, quantity int) *model.Cart {
	t.Helper()

	cart, err := CreateCart(db)
	require.NoError(t, err)
	_, err = AddCartItem(db, cart.ID, productID, quantity)
	require.NoError(t, err)
	return cart
}
