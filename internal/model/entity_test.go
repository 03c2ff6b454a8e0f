package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestKnownEntityType(t *testing.T) {
	for _, kind := range []EntityType{
		EntityProduct, EntityCollection, EntityPromotion,
		EntityReview, EntityCustomer, EntityOrder,
	} {
		assert.True(t, KnownEntityType(kind), "kind %s", kind)
	}
	assert.False(t, KnownEntityType("cart"))
	assert.False(t, KnownEntityType(""))
}

func TestEntityExists(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Collection{}, &Product{}))

	collection := Collection{Title: "pets"}
	require.NoError(t, db.Create(&collection).Error)
	product := Product{Title: "Leash", Price: decimal.RequireFromString("12.00"), CollectionID: collection.ID}
	require.NoError(t, db.Create(&product).Error)

	exists, err := EntityExists(db, EntityProduct, product.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = EntityExists(db, EntityProduct, product.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = EntityExists(db, "bogus", 1)
	require.NoError(t, err)
	assert.False(t, exists)
}
