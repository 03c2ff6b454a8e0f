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

// CollectionRequest defines the structure for collection creation/update requests
type CollectionRequest struct {
	Title string `json:"title" validate:"required,max=50"`
}

// CollectionResponse annotates a collection with its product count
type CollectionResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ProductCount int64  `json:"product_count"`
}

// ListCollections handles retrieving all collections
func ListCollections(c echo.Context) error {
	log := logger.FromContext(c)

	var collections []model.Collection
	if result := database.GetDB().Order("title").Find(&collections); result.Error != nil {
		log.Error("Failed to list collections", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve collections"})
	}

	results := make([]CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		var count int64
		database.GetDB().Model(&model.Product{}).Where("collection_id = ?", collection.ID).Count(&count)
		results = append(results, CollectionResponse{
			ID:           collection.ID,
			Title:        collection.Title,
			ProductCount: count,
		})
	}

	return c.JSON(http.StatusOK, results)
}

// GetCollection handles retrieving a single collection by ID
func GetCollection(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var collection model.Collection
	if result := database.GetDB().First(&collection, id); result.Error != nil {
		log.Warn("Collection not found", zap.String("collection_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Collection not found"})
	}

	var count int64
	database.GetDB().Model(&model.Product{}).Where("collection_id = ?", collection.ID).Count(&count)

	return c.JSON(http.StatusOK, CollectionResponse{
		ID:           collection.ID,
		Title:        collection.Title,
		ProductCount: count,
	})
}

// CreateCollection handles creating a new collection
func CreateCollection(c echo.Context) error {
	log := logger.FromContext(c)

	var req CollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid collection request", zap.Error(err))
		return writeServiceError(c, log, err)
	}

	collection := model.Collection{Title: req.Title}
	if result := database.GetDB().Create(&collection); result.Error != nil {
		log.Error("Failed to create collection", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create collection"})
	}

	log.Info("Collection created successfully",
		zap.Uint("collection_id", collection.ID),
		zap.String("title", collection.Title))
	return c.JSON(http.StatusCreated, collection)
}

// UpdateCollection handles updating an existing collection
func UpdateCollection(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req CollectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid collection request", zap.String("collection_id", id), zap.Error(err))
		return writeServiceError(c, log, err)
	}

	var collection model.Collection
	if result := database.GetDB().First(&collection, id); result.Error != nil {
		log.Warn("Collection not found for update", zap.String("collection_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Collection not found"})
	}

	collection.Title = req.Title
	if result := database.GetDB().Save(&collection); result.Error != nil {
		log.Error("Failed to update collection", zap.String("collection_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update collection"})
	}

	return c.JSON(http.StatusOK, collection)
}

// DeleteCollection handles deleting a collection. Deletion is blocked
// while any product still belongs to the collection.
func DeleteCollection(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var referencing int64
	database.GetDB().Model(&model.Product{}).Where("collection_id = ?", id).Count(&referencing)
	if referencing > 0 {
		log.Warn("Collection deletion blocked by products",
			zap.String("collection_id", id),
			zap.Int64("products", referencing))
		return writeServiceError(c, log, &service.ConflictError{
			Message: "Collection cannot be deleted: it still contains products",
		})
	}

	result := database.GetDB().Delete(&model.Collection{}, id)
	if result.Error != nil {
		log.Error("Failed to delete collection", zap.String("collection_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete collection"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Collection not found"})
	}

	log.Info("Collection deleted successfully", zap.String("collection_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Collection deleted successfully"})
}
