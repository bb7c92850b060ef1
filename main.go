package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/clients"
	"storefront/common/errors"
	"storefront/common/logger"
	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/kafka"
	"storefront/middleware"
	"storefront/models"
	aws_pkg "storefront/pkg/aws"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"
)

func main() {

	// Load environment configuration
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Sync()

	// Durable session/cart storage
	redisClient := database.NewRedisClient(cfg.RedisURL)
	stateStore := repository.NewRedisStateStore(redisClient)
	cartRepo := repository.NewCartRepository(stateStore, cfg.CartTTL)
	sessionRepo := repository.NewSessionRepository(stateStore, cfg.CartTTL)

	// Accounts and wishlists
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set")
	}
	db, err := database.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("Could not connect to PostgreSQL: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	userRepo := repository.NewGormUserRepository(db)
	wishlistRepo := repository.NewGormWishlistRepository(db)

	// Auth
	tokens := services.NewTokenService(cfg.JWTSecret)
	provider := services.NewLocalAuthProvider(userRepo, tokens, logger.Log)

	// Commerce backend client
	backend := clients.NewBackendClient(cfg.BackendBaseURL, cfg.BackendTimeout)

	sessions := services.NewSessionManager(cartRepo, sessionRepo, provider, backend, logger.Log)

	// Checkout event producer
	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic, logger.Log)
	defer producer.Close()

	// Order notifications via SNS (optional; skipped when no topic is configured)
	var snsClient aws_pkg.SNSPublisher
	if cfg.OrderTopicArn != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			log.Fatalf("failed to load AWS config: %v", err)
		}
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	} else {
		logger.Log.Warn("ORDER_TOPIC_ARN not set, order notifications disabled")
	}

	checkout := services.NewCheckoutService(sessions, backend, producer, snsClient, cfg.OrderTopicArn, logger.Log)
	wishlist := services.NewWishlistService(wishlistRepo, logger.Log)

	// Initialize Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.Log))
	router.Use(errors.ErrorMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.Session())

	routes.Register(
		router,
		tokens,
		middleware.RateLimitMiddleware(cfg.AuthRatePerMinute, cfg.AuthRateBurst),
		controllers.NewAuthController(sessions, provider),
		controllers.NewCartController(sessions),
		controllers.NewProductController(backend),
		controllers.NewOrderController(checkout, backend),
		controllers.NewWishlistController(wishlist),
		controllers.NewReviewController(backend),
		controllers.NewAdminController(backend),
	)

	// Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Storefront is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	logger.Log.Info("Server shutdown complete")
}
