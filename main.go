// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tour-booking/cmd"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/wire"
	"tour-booking/pkg/cache"
	"tour-booking/pkg/database"
	"tour-booking/pkg/metrics"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	// Optional webhook event ledger
	var ledger cache.EventLedger
	redisClient, err := cache.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		ledger = cache.NewRedisEventLedger(redisClient, time.Duration(config.Redis.EventTTLHours)*time.Hour)
		logger.Info("Webhook event ledger enabled", zap.String("addr", config.Redis.Addr))
	}

	metrics.Register()

	processor := payment.NewStripeProcessor(config.Stripe.SecretKey, config.Stripe.WebhookSecret)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	go cleanSessions(ctx, repos.Session, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, processor, ledger, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

func cleanSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("Expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
