package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/handlers"
	"github.com/hillcountrygardens/backend/internal/middleware"
	"github.com/hillcountrygardens/backend/internal/models"
	"github.com/hillcountrygardens/backend/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)
	blogService := services.NewBlogService(db)
	galleryService := services.NewGalleryService(db)
	reviewService := services.NewReviewService(db)
	contactService := services.NewContactService(db)
	newsletterService := services.NewNewsletterService(db)
	teamService := services.NewTeamService(db)
	settingsService := services.NewSettingsService(db)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		log.Fatalf("Failed to init storage service: %v", err)
	}
	visionService := services.NewVisionService(cfg)
	identifyService := services.NewIdentifyService(cfg, galleryService, visionService)
	defer identifyService.Shutdown()

	// Create admin user if not exists
	if err := authService.CreateDefaultAdmin(); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Periodic cleanup of expired refresh tokens
	go func() {
		for {
			deleted, err := authService.CleanupExpiredTokens()
			if err != nil {
				log.Printf("Refresh token cleanup error: %v", err)
			} else if deleted > 0 {
				log.Printf("Refresh token cleanup: removed %d expired tokens", deleted)
			}
			time.Sleep(1 * time.Hour)
		}
	}()

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers and mount routes
	registry := &handlers.Registry{
		Auth:     handlers.NewAuthHandler(authService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Blog:     handlers.NewBlogHandler(blogService),
		Gallery:  handlers.NewGalleryHandler(galleryService, storageService, identifyService),
		Reviews:  handlers.NewReviewHandler(reviewService),
		Contact:  handlers.NewContactHandler(contactService, newsletterService),
		Team:     handlers.NewTeamHandler(teamService),
		Settings: handlers.NewSettingsHandler(settingsService),
	}
	registry.Register(router, cfg)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
