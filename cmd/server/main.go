package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Laju-Ride-Hailing/service-rides/internal/application"
	"github.com/Laju-Ride-Hailing/service-rides/internal/cache"
	"github.com/Laju-Ride-Hailing/service-rides/internal/config"
	pricingDomain "github.com/Laju-Ride-Hailing/service-rides/internal/domain/pricing"
	rideEvents "github.com/Laju-Ride-Hailing/service-rides/internal/events"
	"github.com/Laju-Ride-Hailing/service-rides/internal/handler"
	"github.com/Laju-Ride-Hailing/service-rides/internal/media"
	"github.com/Laju-Ride-Hailing/service-rides/internal/notify"
	"github.com/Laju-Ride-Hailing/service-rides/internal/repository"
	"github.com/Laju-Ride-Hailing/service-rides/internal/routing"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/auth"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/database"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/health"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/kafka"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/logger"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rides")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rides",
		zap.String("port", cfg.Port),
		zap.String("routing_provider", cfg.Routing.Provider),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.PricingConfigModel{}, &repository.LedgerEntryModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := dbConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Select the routing provider
	router, err := newRouter(cfg.Routing)
	if err != nil {
		log.Fatal("failed to initialize routing provider", zap.Error(err))
	}

	// Initialize repositories
	pricingRepo := repository.NewGormPricingConfigRepository(db)
	ledgerRepo := repository.NewGormLedgerRepository(db)

	// Initialize application services
	quoteCache := cache.NewMemoryQuoteCache()
	calculator := pricingDomain.NewFareCalculator()
	quoteService := application.NewQuoteService(
		router,
		pricingRepo,
		calculator,
		quoteCache,
		kafkaProducer,
		log,
	)
	walletService := application.NewWalletService(ledgerRepo, log)
	pricingService := application.NewPricingService(pricingRepo, log)

	// Initialize the SMS sender
	var smsSender notify.SMSSender
	if cfg.SMS.Enabled {
		smsSender, err = notify.NewGatewaySMSSender(cfg.SMS.GatewayURL, cfg.SMS.APIKey, cfg.SMS.SenderID)
		if err != nil {
			log.Fatal("failed to initialize SMS sender", zap.Error(err))
		}
	} else {
		smsSender = notify.NewNoopSMSSender(log)
	}

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "rides-service"
	paymentConsumer := rideEvents.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		walletService,
		smsSender,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	quoteHandler := handler.NewQuoteHandler(quoteService)
	walletHandler := handler.NewWalletHandler(walletService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-rides")
	healthHandler.RegisterRoutes(engine)

	// Register routes
	quoteHandler.RegisterRoutes(&engine.RouterGroup, jwtManager)
	walletHandler.RegisterRoutes(&engine.RouterGroup, jwtManager)

	// The media handler is only mounted when an upload host is configured.
	if cfg.Media.UploadURL != "" {
		uploader, err := media.NewHTTPUploader(cfg.Media.UploadURL, cfg.Media.APIKey)
		if err != nil {
			log.Fatal("failed to initialize media uploader", zap.Error(err))
		}
		mediaHandler := handler.NewMediaHandler(uploader)
		mediaHandler.RegisterRoutes(&engine.RouterGroup, jwtManager)
	}

	// Register admin handler routes
	adminPricingHandler := handler.NewAdminPricingHandler(pricingService)
	adminPricingHandler.RegisterRoutes(&engine.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rides...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rides stopped")
}

// newRouter builds the routing provider selected by configuration.
func newRouter(cfg config.RoutingConfig) (routing.Router, error) {
	switch cfg.Provider {
	case config.RoutingProviderGoogle:
		return routing.NewGoogleRouter(cfg.GoogleAPIKey)
	case config.RoutingProviderOSRM:
		return routing.NewOSRMRouter(cfg.OSRMBaseURL)
	default:
		return nil, fmt.Errorf("unknown routing provider: %s", cfg.Provider)
	}
}
