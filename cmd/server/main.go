package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"order_intake/internal/config"
	"order_intake/internal/database"
	"order_intake/internal/handlers"
	"order_intake/internal/migrations"
	"order_intake/internal/redis"
	"order_intake/internal/repository"
	"order_intake/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	dayConfigRepo := repository.NewDayConfigRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	discountRepo := repository.NewDiscountRepository(db)

	// Initialize services
	availabilityService := services.NewAvailabilityService(
		orderRepo, dayConfigRepo, settingsRepo, redisClient, cacheTTL,
	)
	checkoutService := services.NewCheckoutService(
		orderRepo, productRepo, dayConfigRepo, settingsRepo, discountRepo,
		redisClient, redisClient, redisClient, sessionTTL, cacheTTL,
	)
	orderService := services.NewOrderService(orderRepo, availabilityService)
	settingsService := services.NewSettingsService(dayConfigRepo, settingsRepo, discountRepo, redisClient)
	catalogService := services.NewCatalogService(productRepo)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(availabilityService, checkoutService, catalogService)
	adminHandler := handlers.NewAdminHandler(orderService, settingsService, catalogService)

	// Setup routes
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/products", apiHandler.GetProducts)

		api.POST("/availability/check", apiHandler.CheckAvailability)
		api.POST("/availability/calendar", apiHandler.Calendar)

		api.GET("/cart/:session_id", apiHandler.GetCart)
		api.POST("/cart/:session_id/items", apiHandler.AddItem)
		api.PUT("/cart/:session_id/items/:product_id", apiHandler.UpdateItem)
		api.DELETE("/cart/:session_id/items/:product_id", apiHandler.RemoveItem)
		api.PUT("/cart/:session_id/delivery-date", apiHandler.SetDeliveryDate)
		api.POST("/cart/:session_id/discounts", apiHandler.ApplyDiscount)
		api.DELETE("/cart/:session_id/discounts/:code", apiHandler.RemoveDiscount)
		api.GET("/cart/:session_id/quote", apiHandler.Quote)
		api.POST("/cart/:session_id/checkout", apiHandler.Checkout)
	}

	admin := router.Group("/api/admin")
	{
		admin.GET("/products", adminHandler.GetProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.GET("/orders", adminHandler.GetOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		admin.POST("/orders/:id/cancel", adminHandler.CancelOrder)
		admin.POST("/orders/:id/reschedule", adminHandler.RescheduleOrder)

		admin.GET("/days/:date", adminHandler.GetDayConfig)
		admin.PUT("/days", adminHandler.UpsertDayConfig)
		admin.DELETE("/days/:id", adminHandler.DeleteDayConfig)

		admin.GET("/capacities", adminHandler.GetDefaultCapacities)
		admin.PUT("/capacities", adminHandler.SetDefaultCapacity)

		admin.GET("/packaging", adminHandler.GetPackagingConfig)
		admin.POST("/packaging/types", adminHandler.CreatePackagingType)
		admin.PUT("/packaging/types/:id", adminHandler.UpdatePackagingType)
		admin.DELETE("/packaging/types/:id", adminHandler.DeletePackagingType)
		admin.PUT("/packaging/free-from", adminHandler.SetFreeFromThreshold)

		admin.GET("/discounts", adminHandler.GetDiscounts)
		admin.POST("/discounts", adminHandler.CreateDiscount)
		admin.PUT("/discounts/:id", adminHandler.UpdateDiscount)
		admin.DELETE("/discounts/:id", adminHandler.DeleteDiscount)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
