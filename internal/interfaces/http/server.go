// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/session"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/handlers"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/middleware"
	"github.com/your-org/seed-marketplace/internal/interfaces/http/routes"
	"github.com/your-org/seed-marketplace/internal/pkg/metrics"
)

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators the server is built from
type Deps struct {
	Handlers *routes.Handlers
	Files    *handlers.FileHandler // nil unless the local object store is in use
	Sessions *session.Store
	Resolver middleware.IdentityResolver
	Redis    *redis.Client
	Database HealthChecker
	Cache    HealthChecker
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	logger     *logrus.Logger
	deps       Deps
	gin        *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance with its routes in place
func NewServer(cfg *config.Config, logger *logrus.Logger, deps Deps) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:    cfg,
		logger:    logger,
		deps:      deps,
		gin:       gin.New(),
		startedAt: time.Now(),
	}

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			logger.WithError(err).Warn("invalid trusted proxies")
		}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"api_base": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.logger))
	s.gin.Use(metrics.Middleware())
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())

	if s.deps.Redis != nil {
		s.gin.Use(middleware.RateLimit(s.config, s.deps.Redis, s.logger))
	}

	s.gin.Use(middleware.RequestSizeLimit(s.config.Upload.MaxSize + 1<<20))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)
	s.gin.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if s.deps.Files != nil {
		s.gin.GET("/files/*path", s.deps.Files.Serve)
	}

	apiV1 := s.gin.Group("/api/v1")
	apiV1.Use(middleware.Session(s.config, s.deps.Sessions, s.deps.Resolver, s.logger))
	routes.SetupRoutes(apiV1, s.deps.Handlers)

	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     "Seed Marketplace API",
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"auth":     "/api/v1/auth",
					"seeds":    "/api/v1/seeds",
					"farmer":   "/api/v1/farmer/seeds",
					"cart":     "/api/v1/cart",
					"checkout": "/api/v1/checkout",
					"voice":    "/api/v1/voice/commands",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if s.deps.Database != nil {
		if err := s.deps.Database.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
			return
		}
	}

	if s.deps.Cache != nil {
		if err := s.deps.Cache.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).String(),
		"sessions":  s.deps.Sessions.Len(),
	})
}
