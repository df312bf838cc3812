package main

import (
	"fmt"
	"log"
	"net/http"

	"unipool/internal/config"
	"unipool/internal/handlers"
	"unipool/internal/middleware"
	"unipool/internal/services"
	"unipool/internal/store"
	"unipool/pkg/logger"
	"unipool/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Single-document data store
	dataStore, err := store.NewFileStore(store.FileStoreOptions{
		Path:     cfg.Store.Path,
		MaxBytes: cfg.Store.MaxBytes,
		Seed:     cfg.Store.Seed,
		Logger:   appLogger,
	})
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}

	// Core services
	searchService := services.NewSearchService(dataStore, appLogger)
	bookingService := services.NewBookingService(dataStore, appLogger)
	recommendationService := services.NewRecommendationService(dataStore, appLogger)
	ratingService := services.NewRatingService(dataStore, appLogger)
	userService := services.NewUserService(dataStore, appLogger)

	// Initialize handlers
	rideHandler := handlers.NewRideHandler(bookingService, searchService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	userHandler := handlers.NewUserHandler(userService, ratingService)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	if cfg.Simulation.Delay > 0 {
		router.Use(middleware.SimulatedDelayMiddleware(cfg.Simulation.Delay))
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupRideRoutes(v1, rideHandler)
		routes.SetupRecommendationRoutes(v1, recommendationHandler)
		routes.SetupUserRoutes(v1, userHandler)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
