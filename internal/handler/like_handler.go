package handler

import (
	"net/http"

	"storefront-service/internal/middleware"
	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LikedItemRequest records the caller liking an entity
type LikedItemRequest struct {
	EntityType model.EntityType `json:"entity_type" validate:"required"`
	EntityID   uint             `json:"entity_id" validate:"required"`
}

// ListLikedItems handles retrieving likes: staff see all, everyone
// else only their own
func ListLikedItems(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Order("id")
	if !middleware.IsStaff(c) {
		userID, _ := middleware.UserIDFromContext(c)
		query = query.Where("user_id = ?", userID)
	}

	var items []model.LikedItem
	if result := query.Find(&items); result.Error != nil {
		log.Error("Failed to list liked items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve liked items"})
	}
	return c.JSON(http.StatusOK, items)
}

// CreateLikedItem records the caller's like of an entity
func CreateLikedItem(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req LikedItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}

	db := database.GetDB()

	if !model.KnownEntityType(req.EntityType) {
		return writeServiceError(c, log,
			service.NewValidationError("entity_type", "unknown entity type"))
	}
	exists, err := model.EntityExists(db, req.EntityType, req.EntityID)
	if err != nil {
		log.Error("Failed to check entity", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create liked item"})
	}
	if !exists {
		return writeServiceError(c, log,
			service.NewValidationError("entity_id", "no entity of this type with this id"))
	}

	item := model.LikedItem{UserID: userID, EntityType: req.EntityType, EntityID: req.EntityID}
	if result := db.Create(&item); result.Error != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "already liked"})
	}

	log.Info("Entity liked",
		zap.Uint("user_id", userID),
		zap.String("entity_type", string(req.EntityType)),
		zap.Uint("entity_id", req.EntityID))
	return c.JSON(http.StatusCreated, item)
}

// DeleteLikedItem removes a like; non-staff may only remove their own
func DeleteLikedItem(c echo.Context) error {
	log := logger.FromContext(c)

	var item model.LikedItem
	if err := database.GetDB().First(&item, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Liked item not found"})
	}

	if !middleware.IsStaff(c) {
		userID, _ := middleware.UserIDFromContext(c)
		if item.UserID != userID {
			log.Warn("Liked item deletion forbidden", zap.Uint("liked_item_id", item.ID))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you may only remove your own likes"})
		}
	}

	if err := database.GetDB().Delete(&item).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete liked item"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Liked item deleted successfully"})
}
