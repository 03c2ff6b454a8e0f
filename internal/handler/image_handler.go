package handler

import (
	"errors"
	"net/http"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/storage"
	"storefront-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListProductImages handles retrieving the images of a product
func ListProductImages(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("id")

	var images []model.ProductImage
	result := database.GetDB().Where("product_id = ?", productID).Order("id").Find(&images)
	if result.Error != nil {
		log.Error("Failed to list product images", zap.String("product_id", productID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve images"})
	}
	return c.JSON(http.StatusOK, images)
}

// UploadProductImage handles a multipart image upload for a product
func UploadProductImage(c echo.Context) error {
	log := logger.FromContext(c)
	productID := c.Param("id")

	var product model.Product
	if err := database.GetDB().First(&product, productID).Error; err != nil {
		log.Warn("Product not found for image upload", zap.String("product_id", productID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		log.Error("Missing image in upload request", zap.Error(err))
		prometheus.ImageUploadsCounter.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded image", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to read image"})
	}
	defer src.Close()

	name, err := imageStore.Save(src, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		var tooLarge *storage.ErrFileTooLarge
		if errors.As(err, &tooLarge) {
			log.Warn("Image upload rejected, file too large",
				zap.Int64("size", tooLarge.Size),
				zap.Int64("max", tooLarge.Max))
			prometheus.ImageUploadsCounter.WithLabelValues("too_large").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": tooLarge.Error()})
		}
		log.Error("Failed to store image", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store image"})
	}

	image := model.ProductImage{ProductID: product.ID, Image: name}
	if result := database.GetDB().Create(&image); result.Error != nil {
		_ = imageStore.Remove(name)
		log.Error("Failed to record image", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store image"})
	}

	prometheus.ImageUploadsCounter.WithLabelValues("ok").Inc()
	log.Info("Product image uploaded",
		zap.Uint("product_id", product.ID),
		zap.Uint("image_id", image.ID),
		zap.String("file", name))
	return c.JSON(http.StatusCreated, image)
}

// DeleteProductImage handles removing a product image
func DeleteProductImage(c echo.Context) error {
	log := logger.FromContext(c)

	var image model.ProductImage
	err := database.GetDB().
		Where("product_id = ? AND id = ?", c.Param("id"), c.Param("imageID")).
		First(&image).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Image not found"})
	}

	if err := database.GetDB().Delete(&image).Error; err != nil {
		log.Error("Failed to delete image", zap.Uint("image_id", image.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete image"})
	}
	if err := imageStore.Remove(image.Image); err != nil {
		log.Warn("Failed to remove image file", zap.String("file", image.Image), zap.Error(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}
