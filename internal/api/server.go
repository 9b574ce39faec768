package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/dhima/synclog/internal/api/handlers"
	"github.com/dhima/synclog/internal/api/middleware"
	"github.com/dhima/synclog/internal/logging"
	"github.com/dhima/synclog/pkg/clock"
	"github.com/dhima/synclog/pkg/config"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the services the API routes to. DB may be nil in tests.
type Dependencies struct {
	DB        *sql.DB
	Logs      handlers.LogService
	LogTypes  handlers.LogTypeRegistry
	Settings  handlers.SettingsService
	Retention handlers.RetentionPolicy
	Clock     clock.Clock
}

// Server orchestrates HTTP routing and dependencies for the API service.
type Server struct {
	config config.App
	logger logging.Logger
	router *gin.Engine
	deps   Dependencies
}

// NewServer builds the router. Construction does no I/O.
func NewServer(cfg config.App, logger logging.Logger, deps Dependencies) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	server := &Server{
		config: cfg,
		logger: logger,
		deps:   deps,
	}
	server.setupRouter()
	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	router := gin.New()
	zapLogger := logging.Unwrap(s.logger)

	// Recovery first so it also catches panics from the middleware below.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(ginzap.GinzapWithConfig(zapLogger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health", "/metrics"},
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", c.GetString(middleware.RequestIDKey))}
		},
	}))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(s.config.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	var pinger handlers.Pinger
	if s.deps.DB != nil {
		pinger = s.deps.DB
	}
	router.GET("/health", handlers.NewHealthHandler(s.logger, pinger).Health)
	router.GET("/metrics", handlers.NewMetricsHandler(s.logger).Metrics)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		logHandler := handlers.NewLogHandler(s.logger, s.deps.Logs, s.deps.LogTypes)
		logRoutes := v1.Group("/logs")
		{
			logRoutes.GET("", logHandler.ListLogs)
			logRoutes.GET("/count", logHandler.CountLogs)
			logRoutes.POST("/events", handlers.NewIngestHandler(s.logger, s.deps.Logs).LogEvent)
		}
		v1.GET("/log-types", logHandler.ListLogTypes)

		settingsHandler := handlers.NewSettingsHandler(s.logger, s.deps.Settings)
		v1.GET("/settings", settingsHandler.GetSettings)
		v1.PUT("/settings", settingsHandler.UpdateSettings)

		v1.GET("/retention", handlers.NewRetentionHandler(s.logger, s.deps.Retention, s.deps.Clock).GetPolicy)
	}

	s.router = router
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	addr := ":" + s.config.APIPort
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server",
			zap.String("address", addr),
			zap.String("environment", s.config.Environment),
			zap.String("log_level", s.config.LogLevel),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("server stopped")
	return nil
}
