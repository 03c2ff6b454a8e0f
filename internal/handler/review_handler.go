package handler

import (
	"net/http"

	"storefront-service/internal/middleware"
	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReviewRequest defines the structure for review creation/update requests
type ReviewRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required"`
}

// callerCustomerID resolves the caller's customer id, 0 for anonymous
// callers or identities without a customer profile
func callerCustomerID(c echo.Context) uint {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return 0
	}
	var customer model.Customer
	if err := database.GetDB().Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return 0
	}
	return customer.ID
}

// canModifyReview reports whether the caller owns the review or is staff
func canModifyReview(c echo.Context, review *model.Review) bool {
	if middleware.IsStaff(c) {
		return true
	}
	customerID := callerCustomerID(c)
	return customerID != 0 && customerID == review.CustomerID
}

func findReview(c echo.Context) (*model.Review, error) {
	var review model.Review
	err := database.GetDB().
		Where("product_id = ? AND id = ?", c.Param("id"), c.Param("reviewID")).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews handles retrieving the reviews of a product
func ListReviews(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("id")

	var reviews []model.Review
	result := database.GetDB().Where("product_id = ?", productID).Order("id").Find(&reviews)
	if result.Error != nil {
		log.Error("Failed to list reviews", zap.String("product_id", productID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve reviews"})
	}
	return c.JSON(http.StatusOK, reviews)
}

// GetReview handles retrieving a single review of a product
func GetReview(c echo.Context) error {
	log := logger.FromContext(c)

	review, err := findReview(c)
	if err != nil {
		log.Warn("Review not found", zap.String("review_id", c.Param("reviewID")))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}
	return c.JSON(http.StatusOK, review)
}

// CreateReview handles posting a review on a product. The author's
// customer id is recorded when the caller is authenticated.
func CreateReview(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("id")

	var req ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid review request", zap.Error(err))
		return writeServiceError(c, log, err)
	}

	var product model.Product
	if err := database.GetDB().First(&product, productID).Error; err != nil {
		log.Warn("Product not found for review", zap.String("product_id", productID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	review := model.Review{
		ProductID:   product.ID,
		CustomerID:  callerCustomerID(c),
		Name:        req.Name,
		Description: req.Description,
	}
	if result := database.GetDB().Create(&review); result.Error != nil {
		log.Error("Failed to create review", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create review"})
	}

	log.Info("Review created",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", product.ID),
		zap.Uint("customer_id", review.CustomerID))
	return c.JSON(http.StatusCreated, review)
}

// UpdateReview handles editing a review; only its author or staff may
func UpdateReview(c echo.Context) error {
	log := logger.FromContext(c)

	review, err := findReview(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}
	if !canModifyReview(c, review) {
		log.Warn("Review update forbidden",
			zap.Uint("review_id", review.ID),
			zap.Uint("review_customer_id", review.CustomerID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you may only modify your own reviews"})
	}

	var req ReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}

	review.Name = req.Name
	review.Description = req.Description
	// Date and CustomerID stay as created
	if result := database.GetDB().Model(review).Select("Name", "Description").Updates(review); result.Error != nil {
		log.Error("Failed to update review", zap.Uint("review_id", review.ID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update review"})
	}
	return c.JSON(http.StatusOK, review)
}

// DeleteReview handles removing a review; only its author or staff may
func DeleteReview(c echo.Context) error {
	log := logger.FromContext(c)

	review, err := findReview(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Review not found"})
	}
	if !canModifyReview(c, review) {
		log.Warn("Review deletion forbidden", zap.Uint("review_id", review.ID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you may only delete your own reviews"})
	}

	if err := database.GetDB().Delete(review).Error; err != nil {
		log.Error("Failed to delete review", zap.Uint("review_id", review.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Review deleted successfully"})
}
