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
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fadilsflow/tegaltourism-marketplace-sub001/config"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/controllers"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/database"
	awspkg "github.com/fadilsflow/tegaltourism-marketplace-sub001/pkg/aws"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/providers"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/repository"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/routes"
	"github.com/fadilsflow/tegaltourism-marketplace-sub001/services"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	var snsClient awspkg.SNSPublisher
	if cfg.OrderSNSTopicARN != "" {
		awsCfg, awsErr := awspkg.LoadAWSConfig(context.Background())
		if awsErr != nil {
			logger.Warn("AWS config unavailable, order events disabled", zap.Error(awsErr))
		} else {
			snsClient = awspkg.NewSNSClient(awsCfg)
		}
	}

	// DI chain
	paymentRepo := repository.NewGormPaymentRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	ticketRepo := repository.NewGormTicketRepository(db)
	catalogRepo := repository.NewGormCatalogRepository(db)

	qrRenderer := providers.NewQRServerProvider(cfg.QRAPIBaseURL)
	issuer := services.NewTicketIssuer(ticketRepo, catalogRepo, qrRenderer, logger)
	settlementService := services.NewSettlementService(
		paymentRepo, orderRepo, ticketRepo, issuer,
		snsClient, cfg.OrderSNSTopicARN, cfg.MidtransServerKey, logger,
	)
	sellerService := services.NewSellerService(orderRepo, catalogRepo, redisClient, logger)

	paymentController := controllers.NewPaymentController(settlementService, logger)
	ticketController := controllers.NewTicketController(settlementService, logger)
	sellerController := controllers.NewSellerController(sellerService, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "settlement-service"})
	})

	routes.Register(r, paymentController, ticketController, sellerController, cfg.JWTSecret)

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

	logger.Info("Settlement service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down settlement service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
