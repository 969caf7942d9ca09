package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wildtour/wildtour-backend/config"
	"github.com/wildtour/wildtour-backend/internal/app/controller"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	"github.com/wildtour/wildtour-backend/internal/db"
	"github.com/wildtour/wildtour-backend/internal/favorites"
	"github.com/wildtour/wildtour-backend/internal/middleware"
	"github.com/wildtour/wildtour-backend/internal/router"
	"github.com/wildtour/wildtour-backend/internal/scheduler"
	"github.com/wildtour/wildtour-backend/internal/storage"
	"github.com/wildtour/wildtour-backend/internal/ws"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"github.com/wildtour/wildtour-backend/pkg/redis"
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

	logger.Info("Starting Wild Tour Colombia Backend Server", map[string]interface{}{
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

	// Seed initial catalog data (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis; without it the favorites snapshots fall back to the
	// filesystem backend and token revocation is disabled.
	redisUp := true
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, favorites snapshots fall back to files", map[string]interface{}{
			"error": err.Error(),
		})
		redisUp = false
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	destinationRepo := repository.NewDestinationRepository(db.GetDB())
	activityRepo := repository.NewActivityRepository(db.GetDB())
	accommodationRepo := repository.NewAccommodationRepository(db.GetDB())
	packageRepo := repository.NewPackageRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	destinationService := service.NewDestinationService(destinationRepo)
	catalogService := service.NewCatalogService(activityRepo, accommodationRepo, packageRepo)
	reviewService := service.NewReviewService(reviewRepo, destinationRepo)
	snapshotService := service.NewSnapshotService(catalogService)

	// Favorites: pick the snapshot backend, build the one manager every
	// consumer shares.
	var snapshotStore favorites.SnapshotStore
	switch {
	case cfg.Favorites.SnapshotBackend == "redis" && redisUp:
		snapshotStore = favorites.NewRedisSnapshotStore(redis.GetClient(), cfg.Favorites.SnapshotKey)
		logger.Info("Favorites snapshots on Redis", map[string]interface{}{
			"slot": cfg.Favorites.SnapshotKey,
		})
	default:
		snapshotStore = favorites.NewFileSnapshotStore(cfg.Favorites.DataDir, cfg.Favorites.SnapshotKey)
		logger.Info("Favorites snapshots on filesystem", map[string]interface{}{
			"dir":  cfg.Favorites.DataDir,
			"slot": cfg.Favorites.SnapshotKey,
		})
	}
	favoritesManager := favorites.NewManager(snapshotStore, favorites.Options{
		Latency: cfg.Favorites.Latency,
	})

	// Realtime favorites feed
	hub := ws.NewHub(favoritesManager)
	go hub.Run()

	// S3 storage for catalog images
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, favoritesManager, redisUp, cfg.JWT.AccessTokenExpiry)
	destinationController := controller.NewDestinationController(destinationService)
	catalogController := controller.NewCatalogController(catalogService)
	reviewController := controller.NewReviewController(reviewService)
	favoritesController := controller.NewFavoritesController(favoritesManager, snapshotService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, redisUp)

	// Background availability refresh for favorited items
	availabilityScheduler := scheduler.NewAvailabilityScheduler(favoritesManager, snapshotService)
	if err := availabilityScheduler.Start(); err != nil {
		logger.Error("Failed to start availability scheduler", err)
	}
	defer availabilityScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		destinationController,
		catalogController,
		reviewController,
		favoritesController,
		uploadController,
		hub,
		authMiddleware,
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
