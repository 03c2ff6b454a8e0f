package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"storefront-service/internal/model"
	"storefront-service/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeTestOrder(t *testing.T, db *gorm.DB, userID uint, productID uint, quantity int) *model.Order {
	t.Helper()

	cart, err := service.CreateCart(db)
	require.NoError(t, err)
	_, err = service.AddCartItem(db, cart.ID, productID, quantity)
	require.NoError(t, err)

	order, err := service.PlaceOrder(db, nil, userID, cart.ID)
	require.NoError(t, err)
	return order
}

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)

	collection := createTestCollection(t, db, "sports")
	product := createTestProduct(t, db, collection.ID, "Football", "22.00", 8)

	t.Run("places an order from a cart", func(t *testing.T) {
		cart, err := service.CreateCart(db)
		require.NoError(t, err)
		_, err = service.AddCartItem(db, cart.ID, product.ID, 2)
		require.NoError(t, err)

		c, rec := newRequestContext(http.MethodPost, "/orders",
			fmt.Sprintf(`{"cart_id":%q}`, cart.ID))
		authenticate(c, 70, false)

		require.NoError(t, CreateOrder(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.PaymentStatusPending, resp.PaymentStatus)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("44.00")),
			"total %s", resp.TotalPrice)
	})

	t.Run("rejects a malformed cart token", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodPost, "/orders", `{"cart_id":"not-a-uuid"}`)
		authenticate(c, 70, false)

		require.NoError(t, CreateOrder(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reports every inventory shortfall", func(t *testing.T) {
		scarce := createTestProduct(t, db, collection.ID, "Racket", "40.00", 1)

		cart, err := service.CreateCart(db)
		require.NoError(t, err)
		_, err = service.AddCartItem(db, cart.ID, scarce.ID, 5)
		require.NoError(t, err)

		c, rec := newRequestContext(http.MethodPost, "/orders",
			fmt.Sprintf(`{"cart_id":%q}`, cart.ID))
		authenticate(c, 70, false)

		require.NoError(t, CreateOrder(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error string              `json:"error"`
			Items []service.Shortfall `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Racket(4)")
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 4, resp.Items[0].Missing)
	})
}

func TestGetOrder_Ownership(t *testing.T) {
	db := setupTestDB(t)

	collection := createTestCollection(t, db, "music")
	product := createTestProduct(t, db, collection.ID, "Guitar", "300.00", 4)
	order := placeTestOrder(t, db, 80, product.ID, 1)

	t.Run("owner sees the order", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/orders/1", "")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(order.ID))
		authenticate(c, 80, false)

		require.NoError(t, GetOrder(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("another customer is forbidden", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/orders/1", "")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(order.ID))
		authenticate(c, 81, false)

		require.NoError(t, GetOrder(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff sees any order", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/orders/1", "")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(order.ID))
		authenticate(c, 82, true)

		require.NoError(t, GetOrder(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListOrders_ScopedToCaller(t *testing.T) {
	db := setupTestDB(t)

	collection := createTestCollection(t, db, "games")
	product := createTestProduct(t, db, collection.ID, "Chess Set", "35.00", 10)
	placeTestOrder(t, db, 90, product.ID, 1)
	placeTestOrder(t, db, 91, product.ID, 1)

	t.Run("customer sees only their own", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/orders", "")
		authenticate(c, 90, false)

		require.NoError(t, ListOrders(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var orders []OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		assert.Len(t, orders, 1)
	})

	t.Run("staff sees all", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/orders", "")
		authenticate(c, 92, true)

		require.NoError(t, ListOrders(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var orders []OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		assert.Len(t, orders, 2)
	})
}

func TestUpdateOrder_PaymentStatus(t *testing.T) {
	db := setupTestDB(t)

	collection := createTestCollection(t, db, "garden tools")
	product := createTestProduct(t, db, collection.ID, "Rake", "18.00", 6)
	order := placeTestOrder(t, db, 95, product.ID, 1)

	t.Run("accepts a known status", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodPatch, "/orders/1", `{"payment_status":"C"}`)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(order.ID))

		require.NoError(t, UpdateOrder(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var reloaded model.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, model.PaymentStatusComplete, reloaded.PaymentStatus)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodPatch, "/orders/1", `{"payment_status":"X"}`)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(order.ID))

		require.NoError(t, UpdateOrder(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
