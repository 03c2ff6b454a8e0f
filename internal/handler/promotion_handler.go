package handler

import (
	"net/http"

	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PromotionRequest defines the structure for promotion creation/update requests
type PromotionRequest struct {
	Title       string          `json:"title" validate:"required,max=50"`
	Description string          `json:"description" validate:"max=255"`
	Discount    decimal.Decimal `json:"discount"`
}

func (r *PromotionRequest) checkDiscount() error {
	if r.Discount.IsNegative() {
		return service.NewValidationError("discount", "discount must not be negative")
	}
	if r.Discount.GreaterThan(decimal.NewFromInt(1)) {
		return service.NewValidationError("discount", "discount is a fraction and must not exceed 1")
	}
	return nil
}

// ListPromotions handles retrieving all promotions
func ListPromotions(c echo.Context) error {
	log := logger.FromContext(c)

	var promotions []model.Promotion
	if result := database.GetDB().Find(&promotions); result.Error != nil {
		log.Error("Failed to list promotions", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve promotions"})
	}
	return c.JSON(http.StatusOK, promotions)
}

// GetPromotion handles retrieving a single promotion by ID
func GetPromotion(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var promotion model.Promotion
	if result := database.GetDB().First(&promotion, id); result.Error != nil {
		log.Warn("Promotion not found", zap.String("promotion_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Promotion not found"})
	}
	return c.JSON(http.StatusOK, promotion)
}

// CreatePromotion handles creating a new promotion
func CreatePromotion(c echo.Context) error {
	log := logger.FromContext(c)

	var req PromotionRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid promotion request", zap.Error(err))
		return writeServiceError(c, log, err)
	}
	if err := req.checkDiscount(); err != nil {
		return writeServiceError(c, log, err)
	}

	promotion := model.Promotion{
		Title:       req.Title,
		Description: req.Description,
		Discount:    req.Discount,
	}
	if result := database.GetDB().Create(&promotion); result.Error != nil {
		log.Error("Failed to create promotion", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create promotion"})
	}

	log.Info("Promotion created successfully",
		zap.Uint("promotion_id", promotion.ID),
		zap.String("discount", promotion.Discount.String()))
	return c.JSON(http.StatusCreated, promotion)
}

// UpdatePromotion handles updating an existing promotion
func UpdatePromotion(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req PromotionRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid promotion request", zap.String("promotion_id", id), zap.Error(err))
		return writeServiceError(c, log, err)
	}
	if err := req.checkDiscount(); err != nil {
		return writeServiceError(c, log, err)
	}

	var promotion model.Promotion
	if result := database.GetDB().First(&promotion, id); result.Error != nil {
		log.Warn("Promotion not found for update", zap.String("promotion_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Promotion not found"})
	}

	promotion.Title = req.Title
	promotion.Description = req.Description
	promotion.Discount = req.Discount
	if result := database.GetDB().Save(&promotion); result.Error != nil {
		log.Error("Failed to update promotion", zap.String("promotion_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update promotion"})
	}

	return c.JSON(http.StatusOK, promotion)
}

// DeletePromotion handles deleting a promotion. Products that carried
// it fall back to their undiscounted price.
func DeletePromotion(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	db := database.GetDB()
	if err := db.Model(&model.Product{}).Where("promotion_id = ?", id).
		Update("promotion_id", nil).Error; err != nil {
		log.Error("Failed to detach promotion from products", zap.String("promotion_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete promotion"})
	}

	result := db.Delete(&model.Promotion{}, id)
	if result.Error != nil {
		log.Error("Failed to delete promotion", zap.String("promotion_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete promotion"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Promotion not found"})
	}

	log.Info("Promotion deleted successfully", zap.String("promotion_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Promotion deleted successfully"})
}
