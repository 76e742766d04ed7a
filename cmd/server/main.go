package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iwamergun/dentalmarket-backend/config"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/controller"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/Iwamergun/dentalmarket-backend/internal/db"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/Iwamergun/dentalmarket-backend/internal/router"
	"github.com/Iwamergun/dentalmarket-backend/internal/scheduler"
	"github.com/Iwamergun/dentalmarket-backend/internal/storage"
	"github.com/Iwamergun/dentalmarket-backend/internal/websocket"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/Iwamergun/dentalmarket-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting DentalMarket Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis keeps favorites and the token blacklist. The server still works
	// without it: favorites fall back to an in-process store, blacklist
	// checks are skipped.
	useRedis := true
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory favorites", map[string]interface{}{
			"error": err.Error(),
		})
		useRedis = false
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewProductVariantRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	redirectRepo := repository.NewRedirectRuleRepository(db.GetDB())

	var favoriteStore repository.FavoriteStore
	if useRedis {
		favoriteStore = repository.NewRedisFavoriteStore(redis.GetClient())
	} else {
		favoriteStore = repository.NewMemoryFavoriteStore()
	}

	// Order feed hub doubles as the order service's notifier
	orderFeedHub := websocket.NewHub()
	go orderFeedHub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService := service.NewCatalogService(categoryRepo, brandRepo)
	productService := service.NewProductService(productRepo, variantRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo, variantRepo)
	favoriteService := service.NewFavoriteService(favoriteStore)
	orderService := service.NewOrderService(orderRepo, cartRepo, orderFeedHub, db.GetDB())
	redirectService := service.NewRedirectService(redirectRepo)

	// S3 presigned upload storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.Secret, useRedis)
	productController := controller.NewProductController(productService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	orderController := controller.NewOrderController(orderService)
	redirectController := controller.NewRedirectController(redirectService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, useRedis)

	// Nightly cleanup of expired redirect rules
	cleanupScheduler := scheduler.NewRedirectCleanupScheduler(redirectService, cfg.Redirect.CleanupSchedule)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Warn("Redirect cleanup scheduler not started", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cleanupScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		catalogController,
		cartController,
		favoriteController,
		orderController,
		redirectController,
		uploadController,
		authMiddleware,
		redirectService,
		orderFeedHub,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
