package main

import (
	"net/http"

	"storefront-service/internal/event"
	"storefront-service/internal/handler"
	mid "storefront-service/internal/middleware"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/storage"
	"storefront-service/prometheus"

	"storefront-service/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Tax rate for derived price fields
	taxRate, err := decimal.NewFromString(appConfig.Store.TaxRate)
	if err != nil {
		log.Fatal("Invalid TAX_RATE", zap.String("tax_rate", appConfig.Store.TaxRate), zap.Error(err))
	}
	model.SetTaxRate(taxRate)

	// Image storage
	imageStore, err := storage.NewImageStore(&appConfig.Upload)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Domain event bus: order notifications are best-effort and run
	// outside the placement transaction
	bus := event.NewBus(log)
	bus.Subscribe(func(e event.OrderCreated) error {
		log.Info("order created",
			zap.Uint("order_id", e.OrderID),
			zap.Uint("customer_id", e.CustomerID),
			zap.Int("item_count", e.ItemCount),
			zap.String("total", e.Total.String()))
		return nil
	})
	defer bus.Wait()

	handler.Init(appConfig, imageStore, bus)

	// Initialize Echo instance
	e := echo.New()
	e.Validator = handler.NewValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authentication
	e.POST("/auth/register", handler.Register)
	e.POST("/auth/login", handler.Login)

	// Catalog: read open to anyone, writes staff-only
	productAPI := e.Group("/api/products", mid.OptionalAuthMiddleware, mid.StaffOrReadOnly)
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)
	productAPI.GET("/:id/images", handler.ListProductImages)
	productAPI.POST("/:id/images", handler.UploadProductImage)
	productAPI.DELETE("/:id/images/:imageID", handler.DeleteProductImage)

	// Reviews: read/create open to anyone; updates and deletes are
	// owner-or-staff, checked in the handlers against the review's
	// customer id
	reviewAPI := e.Group("/api/products/:id/reviews", mid.OptionalAuthMiddleware)
	reviewAPI.GET("", handler.ListReviews)
	reviewAPI.GET("/:reviewID", handler.GetReview)
	reviewAPI.POST("", handler.CreateReview)
	reviewAPI.PUT("/:reviewID", handler.UpdateReview)
	reviewAPI.DELETE("/:reviewID", handler.DeleteReview)

	collectionAPI := e.Group("/api/collections", mid.OptionalAuthMiddleware, mid.StaffOrReadOnly)
	collectionAPI.GET("", handler.ListCollections)
	collectionAPI.GET("/:id", handler.GetCollection)
	collectionAPI.POST("", handler.CreateCollection)
	collectionAPI.PUT("/:id", handler.UpdateCollection)
	collectionAPI.DELETE("/:id", handler.DeleteCollection)

	promotionAPI := e.Group("/api/promotions", mid.OptionalAuthMiddleware, mid.StaffOrReadOnly)
	promotionAPI.GET("", handler.ListPromotions)
	promotionAPI.GET("/:id", handler.GetPromotion)
	promotionAPI.POST("", handler.CreatePromotion)
	promotionAPI.PUT("/:id", handler.UpdatePromotion)
	promotionAPI.DELETE("/:id", handler.DeletePromotion)

	tagAPI := e.Group("/api/tags", mid.OptionalAuthMiddleware, mid.StaffOrReadOnly)
	tagAPI.GET("", handler.ListTags)
	tagAPI.GET("/:id", handler.GetTag)
	tagAPI.POST("", handler.CreateTag)
	tagAPI.PUT("/:id", handler.UpdateTag)
	tagAPI.DELETE("/:id", handler.DeleteTag)

	taggedAPI := e.Group("/api/tagged_items", mid.OptionalAuthMiddleware, mid.StaffOrReadOnly)
	taggedAPI.GET("", handler.ListTaggedItems)
	taggedAPI.POST("", handler.CreateTaggedItem)
	taggedAPI.DELETE("/:id", handler.DeleteTaggedItem)

	likedAPI := e.Group("/api/liked_items", mid.AuthMiddleware)
	likedAPI.GET("", handler.ListLikedItems)
	likedAPI.POST("", handler.CreateLikedItem)
	likedAPI.DELETE("/:id", handler.DeleteLikedItem)

	// Carts are anonymous: the random token is the capability
	cartAPI := e.Group("/api/carts")
	cartAPI.POST("", handler.CreateCart)
	cartAPI.GET("/:id", handler.GetCart)
	cartAPI.DELETE("/:id", handler.DeleteCart)
	cartAPI.GET("/:id/items", handler.ListCartItems)
	cartAPI.POST("/:id/items", handler.AddCartItem)
	cartAPI.PATCH("/:id/items/:itemID", handler.UpdateCartItem)
	cartAPI.DELETE("/:id/items/:itemID", handler.RemoveCartItem)

	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("/me", handler.GetMe)
	customerAPI.PUT("/me", handler.UpdateMe)
	customerAPI.GET("", handler.ListCustomers, mid.StaffOnly)
	customerAPI.GET("/:id", handler.GetCustomer, mid.StaffOnly)
	customerAPI.PUT("/:id", handler.UpdateCustomer, mid.StaffOnly)
	customerAPI.DELETE("/:id", handler.DeleteCustomer, mid.StaffOnly)

	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.GET("", handler.ListOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.POST("", handler.CreateOrder)
	orderAPI.PATCH("/:id", handler.UpdateOrder, mid.StaffOnly)
	orderAPI.DELETE("/:id", handler.DeleteOrder, mid.StaffOnly)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
