// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/checkout"
	"github.com/your-org/seed-marketplace/internal/domain/seed"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/domain/user"
	"github.com/your-org/seed-marketplace/internal/domain/verification"
	"github.com/your-org/seed-marketplace/internal/infrastructure/database/postgres"
	"github.com/your-org/seed-marketplace/internal/infrastructure/database/redis"
	"github.com/your-org/seed-marketplace/internal/interfaces/http"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/handlers"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/routes"
	"github.com/your-org/seed-marketplace/internal/pkg/auth"
	"github.com/your-org/seed-marketplace/internal/pkg/logger"
	"github.com/your-org/seed-marketplace/internal/pkg/metrics"
	"github.com/your-org/seed-marketplace/internal/pkg/pdf"
	"github.com/your-org/seed-marketplace/internal/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("starting")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect to database
	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := db.Health(ctx); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	// Run database migrations
	migration := postgres.NewMigration(db.GetDB(), log)
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("index creation failed")
	}
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			log.WithError(err).Warn("data seeding failed")
		}
	}

	// Object storage
	objectStore, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Sessions
	sessions := session.NewStore(cfg.Session.MaxSessions, cfg.Session.IdleTimeout, log)
	if err := metrics.RegisterSessionGauge(prometheus.DefaultRegisterer, sessions.Len); err != nil {
		log.WithError(err).Warn("failed to register session gauge")
	}

	// Services
	recorder := metrics.NewRecorder()
	jwtManager := auth.NewJWTManager(cfg)
	userService := user.NewService(
		user.NewRepository(db.GetDB()),
		jwtManager,
		user.NewRedisDenylist(redisClient.GetClient()),
		sessions,
		cfg,
		log,
	)
	seedService := seed.NewService(seed.NewRepository(db.GetDB()), objectStore, cfg, log)
	checkoutService := checkout.NewService(pdf.NewService(cfg), recorder, cfg, log)
	verifier := verification.NewHTTPVerifier(cfg, log)
	if !cfg.VerificationEnabled() {
		log.Warn("seed quality verification is not configured; the verify endpoint is disabled")
	}

	deps := http.Deps{
		Handlers: &routes.Handlers{
			Auth:     handlers.NewAuthHandler(userService, log),
			Seeds:    handlers.NewSeedHandler(seedService, verifier, recorder, log),
			Cart:     handlers.NewCartHandler(seedService, recorder, cfg, log),
			Checkout: handlers.NewCheckoutHandler(checkoutService, seedService, log),
			Voice:    handlers.NewVoiceHandler(recorder, cfg),
		},
		Sessions: sessions,
		Resolver: userService,
		Redis:    redisClient.GetClient(),
		Database: db,
		Cache:    redisClient,
	}
	if local, ok := objectStore.(*storage.LocalStore); ok {
		deps.Files = handlers.NewFileHandler(local)
	}
	if closer, ok := objectStore.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	server := http.NewServer(cfg, log, deps)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to shutdown HTTP server gracefully")
	}

	log.Info("server shutdown completed")
}
