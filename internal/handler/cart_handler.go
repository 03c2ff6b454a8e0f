package handler

import (
	"net/http"
	"strconv"

	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddCartItemRequest carries a signed quantity delta for a product
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartItemRequest replaces a cart item's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CreateCart handles opening a new empty cart
func CreateCart(c echo.Context) error {
	log := logger.FromContext(c)

	cart, err := service.CreateCart(database.GetDB())
	if err != nil {
		log.Error("Failed to create cart", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create cart"})
	}

	prometheus.RecordCartOperation("create")
	log.Info("Cart created", zap.String("cart_id", cart.ID))
	return c.JSON(http.StatusCreated, newCartResponse(cart))
}

// GetCart handles retrieving a cart with items and totals
func GetCart(c echo.Context) error {
	log := logger.FromContext(c)
	cartID := c.Param("id")

	cart, err := service.GetCart(database.GetDB(), cartID)
	if err != nil {
		return writeServiceError(c, log, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// DeleteCart handles discarding a cart
func DeleteCart(c echo.Context) error {
	log := logger.FromContext(c)
	cartID := c.Param("id")

	if err := service.DeleteCart(database.GetDB(), cartID); err != nil {
		return writeServiceError(c, log, err)
	}

	prometheus.RecordCartOperation("delete")
	log.Info("Cart deleted", zap.String("cart_id", cartID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart deleted successfully"})
}

// ListCartItems handles retrieving the items of a cart
func ListCartItems(c echo.Context) error {
	log := logger.FromContext(c)
	cartID := c.Param("id")

	cart, err := service.GetCart(database.GetDB(), cartID)
	if err != nil {
		return writeServiceError(c, log, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart).Items)
}

// AddCartItem handles the add-or-update of a product in a cart
func AddCartItem(c echo.Context) error {
	log := logger.FromContext(c)
	cartID := c.Param("id")

	var req AddCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid cart item request", zap.Error(err))
		return writeServiceError(c, log, err)
	}

	item, err := service.AddCartItem(database.GetDB(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		return writeServiceError(c, log, err)
	}

	prometheus.RecordCartOperation("add_item")
	log.Info("Cart item upserted",
		zap.String("cart_id", cartID),
		zap.Uint("product_id", req.ProductID),
		zap.Int("delta", req.Quantity),
		zap.Int("quantity", item.Quantity))
	return c.JSON(http.StatusOK, newCartItemResponse(item))
}

// UpdateCartItem handles setting the absolute quantity of a cart item
func UpdateCartItem(c echo.Context) error {
	log := logger.FromContext(c)
	cartID := c.Param("id")

	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Cart item not found"})
	}

	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}

	item, err := service.SetCartItemQuantity(database.GetDB(), cartID, uint(itemID), req.Quantity)
	if err != nil {
		return writeServiceError(c, log, err)
	}

	prometheus.RecordCartOperation("update_item")
	return c.JSON(http.StatusOK, newCartItemResponse(item))
}

// RemoveCartItem handles removing one item row from a cart
func RemoveCartItem(c echo.Context) error {
	log := logger.FromContext(c)
	cartID := c.Param("id")

	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Cart item not found"})
	}

	if err := service.RemoveCartItem(database.GetDB(), cartID, uint(itemID)); err != nil {
		return writeServiceError(c, log, err)
	}

	prometheus.RecordCartOperation("remove_item")
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart item removed"})
}
