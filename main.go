package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/controllers"
	"catalog-service/database"
	"catalog-service/middleware"
	"catalog-service/models"
	"catalog-service/repository"
	"catalog-service/routes"
	"catalog-service/seed"
	servicepkg "catalog-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := database.Connect(); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := models.Migrate(database.DB); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.AutoSeed || cfg.Environment == "development" {
		if err := seed.Run(context.Background(), database.DB, cfg.DataDir, logger); err != nil {
			logger.Error("Database seeding failed", zap.Error(err))
		}
	}

	// Optional Redis-backed listing cache
	var cacheManager *controllers.CacheManager
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cacheManager = controllers.NewCacheManager(rdb, logger)
	}

	// DI chain
	productRepo := repository.NewGormProductRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	tokenService := servicepkg.NewTokenService(cfg.JWTSecret)
	productService := servicepkg.NewProductService(productRepo, logger)
	authService := servicepkg.NewAuthService(userRepo, tokenService, logger)
	contentfulClient := servicepkg.NewContentfulClient(cfg.Contentful, logger)
	externalService := servicepkg.NewExternalAPIService(contentfulClient, productService, cacheManager, logger)

	validator := controllers.NewRequestValidator()
	productController := controllers.NewProductController(productService, validator, cacheManager)
	authController := controllers.NewAuthController(authService)
	externalController := controllers.NewExternalController(externalService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "catalog-service"})
	})

	routes.RegisterRoutes(r, productController, authController, externalController, tokenService)

	// Scheduled external sync, stopped on shutdown
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	externalService.StartScheduler(schedulerCtx, cfg.SyncInterval)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Catalog service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down catalog service...")
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
