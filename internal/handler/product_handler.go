package handler

import (
	"net/http"
	"strconv"

	"storefront-service/internal/model"
	"storefront-service/internal/service"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Title       string          `json:"title" validate:"required,max=50"`
	Slug        string          `json:"slug" validate:"required,max=50"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Inventory   int             `json:"inventory" validate:"gte=0"`
	CollectionID uint           `json:"collection_id" validate:"required"`
	PromotionID *uint           `json:"promotion_id"`
}

// ListProducts handles retrieving products with filtering, search,
// ordering and pagination
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	query := db.Model(&model.Product{})

	// Filter by collection if specified
	if collectionID := c.QueryParam("collection_id"); collectionID != "" {
		query = query.Where("collection_id = ?", collectionID)
		log.Info("Filtering products by collection", zap.String("collection_id", collectionID))
	}

	// Search over title and description
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	// Ordering, whitelisted to price and last_update
	switch c.QueryParam("ordering") {
	case "price":
		query = query.Order("price")
	case "-price":
		query = query.Order("price DESC")
	case "last_update":
		query = query.Order("last_update")
	case "-last_update":
		query = query.Order("last_update DESC")
	default:
		query = query.Order("title")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	var products []model.Product
	result := query.
		Preload("Collection").Preload("Promotion").Preload("Images").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	results := make([]ProductResponse, 0, len(products))
	for i := range products {
		results = append(results, newProductResponse(&products[i]))
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(results)))
	return c.JSON(http.StatusOK, echo.Map{
		"count":     count,
		"page":      page,
		"page_size": pageSize,
		"results":   results,
	})
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().
		Preload("Collection").Preload("Promotion").Preload("Images").Preload("Reviews").
		First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	return c.JSON(http.StatusOK, newProductResponse(&product))
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid product request", zap.Error(err))
		return writeServiceError(c, log, err)
	}

	if req.Price.LessThan(decimal.NewFromInt(1)) {
		return writeServiceError(c, log,
			service.NewValidationError("price", "price must be at least 1"))
	}

	db := database.GetDB()

	var count int64
	db.Model(&model.Collection{}).Where("id = ?", req.CollectionID).Count(&count)
	if count == 0 {
		return writeServiceError(c, log,
			service.NewValidationError("collection_id", "no collection with this id"))
	}
	if req.PromotionID != nil {
		db.Model(&model.Promotion{}).Where("id = ?", *req.PromotionID).Count(&count)
		if count == 0 {
			return writeServiceError(c, log,
				service.NewValidationError("promotion_id", "no promotion with this id"))
		}
	}

	product := model.Product{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
		PromotionID:  req.PromotionID,
	}

	if result := db.Create(&product); result.Error != nil {
		log.Error("Failed to create product",
			zap.String("title", req.Title),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10), product.Title, float64(product.Inventory))
	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("title", product.Title))

	db.Preload("Collection").Preload("Promotion").First(&product, product.ID)
	return c.JSON(http.StatusCreated, newProductResponse(&product))
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		log.Error("Invalid product request", zap.String("product_id", id), zap.Error(err))
		return writeServiceError(c, log, err)
	}
	if req.Price.LessThan(decimal.NewFromInt(1)) {
		return writeServiceError(c, log,
			service.NewValidationError("price", "price must be at least 1"))
	}

	db := database.GetDB()

	var product model.Product
	result := db.First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	oldPrice := product.Price

	product.Title = req.Title
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = req.Price
	product.Inventory = req.Inventory
	product.CollectionID = req.CollectionID
	product.PromotionID = req.PromotionID

	if result := db.Save(&product); result.Error != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	prometheus.UpdateProductInventory(id, product.Title, float64(product.Inventory))
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("old_price", oldPrice.String()),
		zap.String("new_price", product.Price.String()))

	db.Preload("Collection").Preload("Promotion").First(&product, product.ID)
	return c.JSON(http.StatusOK, newProductResponse(&product))
}

// DeleteProduct handles deleting a product. Deletion is blocked while
// any order item still references the product.
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	db := database.GetDB()

	var referencing int64
	db.Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&referencing)
	if referencing > 0 {
		log.Warn("Product deletion blocked by order items",
			zap.String("product_id", id),
			zap.Int64("order_items", referencing))
		return writeServiceError(c, log, &service.ConflictError{
			Message: "Product cannot be deleted: it is referenced by existing orders",
		})
	}

	result := db.Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	db.Where("product_id = ?", id).Delete(&model.ProductImage{})
	db.Where("product_id = ?", id).Delete(&model.Review{})

	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
