package main

import (
	"log"
	"time"

	"storefront-be/internal/cache"
	"storefront-be/internal/config"
	"storefront-be/internal/controllers"
	"storefront-be/internal/database"
	"storefront-be/internal/jwt"
	"storefront-be/internal/mailer"
	"storefront-be/internal/middleware"
	"storefront-be/internal/repository"
	"storefront-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLMinutes)*time.Minute,
	)

	// Initialize mail delivery
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, mail, cfg.FrontendURL, cfg.AdminEmail)
	catalogService := service.NewCatalogService(productRepo, cacheClient)
	orderService := service.NewOrderService(orderRepo)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	profileController := controllers.NewProfileController(authService)
	productController := controllers.NewProductController(catalogService)
	orderController := controllers.NewOrderController(orderService)
	qrcodeController := controllers.NewQRCodeController(catalogService, cfg.FrontendURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes, unversioned to stay wire-compatible with the storefront client
	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth and reset endpoints with stricter rate limiting
		api.POST("/register", authRateLimiter.LimitMiddleware(), authController.Register)
		api.POST("/login", authRateLimiter.LimitMiddleware(), authController.Login)
		api.POST("/reset-password-request", authRateLimiter.LimitMiddleware(), authController.RequestReset)
		api.POST("/reset-password", authRateLimiter.LimitMiddleware(), authController.ResetPassword)

		// Public catalog
		api.GET("/products", productController.List)
		api.GET("/products/:id", productController.Get)
		api.GET("/products/:id/qrcode", qrcodeController.ProductQRCode)

		// Protected routes - require a valid bearer token
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/profile", profileController.Get)
			protected.PUT("/profile", profileController.Update)

			protected.GET("/orders", orderController.List)
			protected.POST("/orders", orderController.Create)

			// Mutating catalog operations go through the admin gate
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/products", productController.Create)
				admin.PUT("/products/:id", productController.Update)
				admin.DELETE("/products/:id", productController.Delete)
			}
		}
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
