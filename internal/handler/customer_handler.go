package handler

import (
	"net/http"
	"time"

	"storefront-service/internal/middleware"
	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerRequest is the profile update payload. Membership is honored
// only for staff callers; everyone else gets the read-only variant.
type CustomerRequest struct {
	Phone      string            `json:"phone" validate:"required,max=50"`
	BirthDate  *string           `json:"birth_date"`
	Membership *model.Membership `json:"membership"`
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, service.NewValidationError("birth_date", "must be formatted YYYY-MM-DD")
	}
	return &t, nil
}

// applyCustomerUpdate applies the request to a customer record,
// honoring the membership field only for staff
func applyCustomerUpdate(customer *model.Customer, req *CustomerRequest, staff bool) error {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return err
	}

	customer.Phone = req.Phone
	customer.BirthDate = birthDate
	if staff && req.Membership != nil {
		if !req.Membership.Valid() {
			return service.NewValidationError("membership", "must be one of B, S, G")
		}
		customer.Membership = *req.Membership
	}
	return nil
}

// ListCustomers handles the staff listing of all customers
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	var customers []model.Customer
	if result := database.GetDB().Order("id").Find(&customers); result.Error != nil {
		log.Error("Failed to list customers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve customers"})
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles the staff retrieval of one customer
func GetCustomer(c echo.Context) error {
	var customer model.Customer
	if err := database.GetDB().First(&customer, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer handles the staff update of one customer
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	var customer model.Customer
	if err := database.GetDB().First(&customer, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	}

	var req CustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}
	if err := applyCustomerUpdate(&customer, &req, true); err != nil {
		return writeServiceError(c, log, err)
	}

	if err := database.GetDB().Save(&customer).Error; err != nil {
		log.Error("Failed to update customer", zap.Uint("customer_id", customer.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update customer"})
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles the staff deletion of a customer. Deletion is
// blocked while the customer still owns orders.
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var referencing int64
	database.GetDB().Model(&model.Order{}).Where("customer_id = ?", id).Count(&referencing)
	if referencing > 0 {
		log.Warn("Customer deletion blocked by orders",
			zap.String("customer_id", id),
			zap.Int64("orders", referencing))
		return writeServiceError(c, log, &service.ConflictError{
			Message: "Customer cannot be deleted: existing orders reference it",
		})
	}

	result := database.GetDB().Delete(&model.Customer{}, id)
	if result.Error != nil {
		log.Error("Failed to delete customer", zap.String("customer_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete customer"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted successfully"})
}

// GetMe returns the caller's own customer record, creating it lazily
func GetMe(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	customer, err := service.GetOrCreateCustomer(database.GetDB(), userID)
	if err != nil {
		log.Error("Failed to resolve customer", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve profile"})
	}
	return c.JSON(http.StatusOK, customer)
}

// UpdateMe updates the caller's own customer record, creating it lazily.
// Non-staff callers cannot change their membership tier.
func UpdateMe(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	customer, err := service.GetOrCreateCustomer(database.GetDB(), userID)
	if err != nil {
		log.Error("Failed to resolve customer", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve profile"})
	}

	var req CustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}
	if err := applyCustomerUpdate(customer, &req, middleware.IsStaff(c)); err != nil {
		return writeServiceError(c, log, err)
	}

	if err := database.GetDB().Save(customer).Error; err != nil {
		log.Error("Failed to update profile", zap.Uint("customer_id", customer.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update profile"})
	}

	log.Info("Customer profile updated", zap.Uint("customer_id", customer.ID))
	return c.JSON(http.StatusOK, customer)
}
