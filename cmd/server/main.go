package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nirajd1102/shopping-website/internal/api"
	"github.com/nirajd1102/shopping-website/internal/cart"
	"github.com/nirajd1102/shopping-website/internal/checkout"
	"github.com/nirajd1102/shopping-website/internal/config"
	"github.com/nirajd1102/shopping-website/internal/orderrecord"
	"github.com/nirajd1102/shopping-website/internal/repository/postgres"
	"github.com/nirajd1102/shopping-website/internal/service"
	"github.com/nirajd1102/shopping-website/internal/whatsapp"
)

func main() {
	// Load .env if present; real env vars still win
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting storefront API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Cart storage (Redis, one key per shopping session)
	storage, err := cart.NewRedisStorage(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Checkout pipeline
	links := whatsapp.NewLinkBuilder(cfg.WhatsApp)
	recorder := orderrecord.NewClient(cfg.OrderRecord, logger)
	submitter := checkout.NewSubmitter(links, recorder, logger)
	couponSvc := service.NewCouponService(repos, logger)

	// Initialize router
	router := api.NewRouter(cfg, repos, storage, submitter, couponSvc, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Coupon sweep: deactivate expired coupons on startup, then every 10 minutes
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go service.RunCouponSweepLoop(sweepCtx, repos, logger)
	logger.Info("Coupon sweep job started (runs on startup and every 10 minutes)")

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
