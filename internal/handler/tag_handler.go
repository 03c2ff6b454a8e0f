package handler

import (
	"net/http"

	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TagRequest defines the structure for tag creation/update requests
type TagRequest struct {
	Label string `json:"label" validate:"required,max=255"`
}

// TaggedItemRequest attaches a tag to an entity by kind and id
type TaggedItemRequest struct {
	TagID      uint             `json:"tag_id" validate:"required"`
	EntityType model.EntityType `json:"entity_type" validate:"required"`
	EntityID   uint             `json:"entity_id" validate:"required"`
}

// ListTags handles retrieving all tags
func ListTags(c echo.Context) error {
	log := logger.FromContext(c)

	var tags []model.Tag
	if result := database.GetDB().Order("label").Find(&tags); result.Error != nil {
		log.Error("Failed to list tags", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve tags"})
	}
	return c.JSON(http.StatusOK, tags)
}

// GetTag handles retrieving a single tag by ID
func GetTag(c echo.Context) error {
	var tag model.Tag
	if err := database.GetDB().First(&tag, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tag not found"})
	}
	return c.JSON(http.StatusOK, tag)
}

// CreateTag handles creating a new tag
func CreateTag(c echo.Context) error {
	log := logger.FromContext(c)

	var req TagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}

	var count int64
	database.GetDB().Model(&model.Tag{}).Where("label = ?", req.Label).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "tag with this label already exists"})
	}

	tag := model.Tag{Label: req.Label}
	if result := database.GetDB().Create(&tag); result.Error != nil {
		log.Error("Failed to create tag", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create tag"})
	}

	log.Info("Tag created", zap.Uint("tag_id", tag.ID), zap.String("label", tag.Label))
	return c.JSON(http.StatusCreated, tag)
}

// UpdateTag handles renaming a tag
func UpdateTag(c echo.Context) error {
	log := logger.FromContext(c)

	var req TagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}

	var tag model.Tag
	if err := database.GetDB().First(&tag, c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tag not found"})
	}

	tag.Label = req.Label
	if err := database.GetDB().Save(&tag).Error; err != nil {
		log.Error("Failed to update tag", zap.Uint("tag_id", tag.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update tag"})
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag handles removing a tag and its attachments
func DeleteTag(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	db := database.GetDB()
	if err := db.Where("tag_id = ?", id).Delete(&model.TaggedItem{}).Error; err != nil {
		log.Error("Failed to delete tag attachments", zap.String("tag_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete tag"})
	}

	result := db.Delete(&model.Tag{}, id)
	if result.Error != nil {
		log.Error("Failed to delete tag", zap.String("tag_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete tag"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tag not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tag deleted successfully"})
}

// ListTaggedItems handles retrieving tag attachments, filterable by
// entity kind and id
func ListTaggedItems(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB().Preload("Tag")
	if kind := c.QueryParam("entity_type"); kind != "" {
		query = query.Where("entity_type = ?", kind)
	}
	if entityID := c.QueryParam("entity_id"); entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}

	var items []model.TaggedItem
	if result := query.Order("id").Find(&items); result.Error != nil {
		log.Error("Failed to list tagged items", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve tagged items"})
	}
	return c.JSON(http.StatusOK, items)
}

// CreateTaggedItem attaches a tag to an entity after checking that both
// the tag and the target entity exist
func CreateTaggedItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req TaggedItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeServiceError(c, log, err)
	}

	db := database.GetDB()

	if !model.KnownEntityType(req.EntityType) {
		return writeServiceError(c, log,
			service.NewValidationError("entity_type", "unknown entity type"))
	}

	var count int64
	db.Model(&model.Tag{}).Where("id = ?", req.TagID).Count(&count)
	if count == 0 {
		return writeServiceError(c, log,
			service.NewValidationError("tag_id", "no tag with this id"))
	}

	exists, err := model.EntityExists(db, req.EntityType, req.EntityID)
	if err != nil {
		log.Error("Failed to check entity", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create tagged item"})
	}
	if !exists {
		return writeServiceError(c, log,
			service.NewValidationError("entity_id", "no entity of this type with this id"))
	}

	item := model.TaggedItem{TagID: req.TagID, EntityType: req.EntityType, EntityID: req.EntityID}
	if result := db.Create(&item); result.Error != nil {
		log.Error("Failed to create tagged item", zap.Error(result.Error))
		return c.JSON(http.StatusConflict, echo.Map{"error": "entity already carries this tag"})
	}

	db.Preload("Tag").First(&item, item.ID)
	return c.JSON(http.StatusCreated, item)
}

// DeleteTaggedItem detaches a tag from an entity
func DeleteTaggedItem(c echo.Context) error {
	result := database.GetDB().Delete(&model.TaggedItem{}, c.Param("id"))
	if result.Error != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete tagged item"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Tagged item not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tagged item deleted successfully"})
}
