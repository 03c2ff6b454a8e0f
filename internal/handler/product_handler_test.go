package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"storefront-service/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productListPage struct {
	Count    int64             `json:"count"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Results  []ProductResponse `json:"results"`
}

func TestListProducts(t *testing.T) {
	db := setupTestDB(t)

	electronics := createTestCollection(t, db, "electronics")
	office := createTestCollection(t, db, "office")
	createTestProduct(t, db, electronics.ID, "Wireless Keyboard", "49.00", 10)
	createTestProduct(t, db, electronics.ID, "Wireless Mouse", "25.00", 10)
	createTestProduct(t, db, office.ID, "Stapler", "8.00", 10)

	t.Run("returns everything by default", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/products", "")
		require.NoError(t, ListProducts(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var page productListPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.EqualValues(t, 3, page.Count)
		assert.Len(t, page.Results, 3)
		assert.Equal(t, "Stapler", page.Results[0].Title)
	})

	t.Run("filters by collection", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet,
			fmt.Sprintf("/products?collection_id=%d", office.ID), "")
		require.NoError(t, ListProducts(c))

		var page productListPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.EqualValues(t, 1, page.Count)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "Stapler", page.Results[0].Title)
	})

	t.Run("searches title and description", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/products?search=Wireless", "")
		require.NoError(t, ListProducts(c))

		var page productListPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.EqualValues(t, 2, page.Count)
	})

	t.Run("orders by price descending", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/products?ordering=-price", "")
		require.NoError(t, ListProducts(c))

		var page productListPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		require.Len(t, page.Results, 3)
		assert.Equal(t, "Wireless Keyboard", page.Results[0].Title)
		assert.Equal(t, "Stapler", page.Results[2].Title)
	})

	t.Run("paginates", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/products?page=2&page_size=2", "")
		require.NoError(t, ListProducts(c))

		var page productListPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.EqualValues(t, 3, page.Count)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.PageSize)
		assert.Len(t, page.Results, 1)
	})
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	collection := createTestCollection(t, db, "kitchen")

	t.Run("creates with discounted and taxed prices in the response", func(t *testing.T) {
		promotion := model.Promotion{Title: "opening", Discount: decimal.RequireFromString("0.20")}
		require.NoError(t, db.Create(&promotion).Error)

		body := fmt.Sprintf(
			`{"title":"Kettle","slug":"kettle","price":"50.00","inventory":10,"collection_id":%d,"promotion_id":%d}`,
			collection.ID, promotion.ID)
		c, rec := newRequestContext(http.MethodPost, "/products", body)
		require.NoError(t, CreateProduct(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ProductResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.PriceWithDiscount.Equal(decimal.RequireFromString("40.00")),
			"discounted %s", resp.PriceWithDiscount)
		assert.True(t, resp.PriceWithTax.Equal(decimal.RequireFromString("55.00")),
			"taxed %s", resp.PriceWithTax)
	})

	t.Run("rejects a price below one", func(t *testing.T) {
		body := fmt.Sprintf(
			`{"title":"Sticker","slug":"sticker","price":"0.50","inventory":1,"collection_id":%d}`,
			collection.ID)
		c, rec := newRequestContext(http.MethodPost, "/products", body)
		require.NoError(t, CreateProduct(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "price")
	})

	t.Run("rejects an unknown collection", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodPost, "/products",
			`{"title":"Pan","slug":"pan","price":"20.00","inventory":1,"collection_id":9999}`)
		require.NoError(t, CreateProduct(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "collection_id")
	})
}

func TestDeleteProduct_BlockedByOrderItems(t *testing.T) {
	db := setupTestDB(t)

	collection := createTestCollection(t, db, "audio")
	product := createTestProduct(t, db, collection.ID, "Earbuds", "60.00", 5)

	customer := model.Customer{UserID: 60, Membership: model.MembershipBronze}
	require.NoError(t, db.Create(&customer).Error)
	order := model.Order{CustomerID: customer.ID, PaymentStatus: model.PaymentStatusPending}
	require.NoError(t, db.Create(&order).Error)
	item := model.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	}
	require.NoError(t, db.Create(&item).Error)

	c, rec := newRequestContext(http.MethodDelete, "/products/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(product.ID))

	require.NoError(t, DeleteProduct(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	db.Model(&model.Product{}).Where("id = ?", product.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}
