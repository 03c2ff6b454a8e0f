package handler

import (
	"net/http"

	"storefront-service/internal/middleware"
	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateOrderRequest places an order from a cart
type CreateOrderRequest struct {
	CartID string `json:"cart_id" validate:"required,uuid4"`
}

// UpdateOrderRequest changes the payment status of an order
type UpdateOrderRequest struct {
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"required"`
}

// ListOrders handles retrieving orders: staff see all, everyone else
// only their own
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	query := db.Preload("Items.Product.Promotion").Order("id")
	if !middleware.IsStaff(c) {
		userID, _ := middleware.UserIDFromContext(c)
		customer, err := service.GetOrCreateCustomer(db, userID)
		if err != nil {
			log.Error("Failed to resolve customer", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
		}
		query = query.Where("customer_id = ?", customer.ID)
	}

	var orders []model.Order
	if result := query.Find(&orders); result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	results := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		results = append(results, newOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, results)
}

// GetOrder handles retrieving a single order, owners and staff only
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var order model.Order
	if err := db.Preload("Items.Product.Promotion").First(&order, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	if !middleware.IsStaff(c) {
		userID, _ := middleware.UserIDFromContext(c)
		customer, err := service.GetOrCreateCustomer(db, userID)
		if err != nil || customer.ID != order.CustomerID {
			log.Warn("Order access forbidden", zap.Uint("order_id", order.ID))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you may only view your own orders"})
		}
	}

	return c.JSON(http.StatusOK, newOrderResponse(&order))
}

// CreateOrder handles converting a cart into an order for the caller
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid order request", zap.Error(err))
		prometheus.RecordOrderRejected("invalid_request")
		return writeServiceError(c, log, err)
	}

	userID, _ := middleware.UserIDFromContext(c)

	order, err := service.PlaceOrder(database.GetDB(), eventBus, userID, req.CartID)
	if err != nil {
		log.Warn("Order placement failed",
			zap.String("cart_id", req.CartID),
			zap.Uint("user_id", userID),
			zap.Error(err))
		prometheus.RecordOrderRejected("validation")
		return writeServiceError(c, log, err)
	}

	prometheus.OrdersPlacedCounter.Inc()
	log.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalPrice().String()))
	return c.JSON(http.StatusCreated, newOrderResponse(order))
}

// UpdateOrder handles a staff payment-status change
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var req UpdateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}
	if !req.PaymentStatus.Valid() {
		return writeServiceError(c, log,
			service.NewValidationError("payment_status", "must be one of P, C, F"))
	}

	db := database.GetDB()
	var order model.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	order.PaymentStatus = req.PaymentStatus
	if err := db.Save(&order).Error; err != nil {
		log.Error("Failed to update order", zap.Uint("order_id", order.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	log.Info("Order payment status updated",
		zap.Uint("order_id", order.ID),
		zap.String("payment_status", string(order.PaymentStatus)))
	db.Preload("Items.Product.Promotion").First(&order, order.ID)
	return c.JSON(http.StatusOK, newOrderResponse(&order))
}

// DeleteOrder handles a staff order deletion, items included
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	db := database.GetDB()

	var order model.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	if err := db.Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
		log.Error("Failed to delete order items", zap.Uint("order_id", order.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete order"})
	}
	if err := db.Delete(&order).Error; err != nil {
		log.Error("Failed to delete order", zap.Uint("order_id", order.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete order"})
	}

	log.Info("Order deleted", zap.Uint("order_id", order.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}
