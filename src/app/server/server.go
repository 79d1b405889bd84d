// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/handler"
	"bureporting/src/app/middleware"
	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
	"bureporting/src/core/usecase"
	"bureporting/src/infra/config"
	"bureporting/src/infra/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	adminService *usecase.AdminService

	// Handlers
	healthHandler    *handler.HealthHandler
	authHandler      *handler.AuthHandler
	reportingHandler *handler.ReportingHandler
	adminHandler     *handler.AdminHandler
	logHandler       *handler.LogHandler
}

// New creates a new Server with all dependencies wired up. dbStats feeds the
// detailed health endpoint and may be nil.
func New(cfg *config.Config, log *slog.Logger, store ports.Store, mailer ports.Mailer, dbStats func() any) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()

	// Create services
	healthService := usecase.NewHealthService(log, store, dbStats)
	authService := usecase.NewAuthService(store, mailer, cfg.Auth.LoginCodeExpiry, logger.WithComponent(log, "auth"))
	reportingService := usecase.NewReportingService(store, logger.WithComponent(log, "reporting"))
	adminService := usecase.NewAdminService(store, logger.WithComponent(log, "admin"))
	auditService := usecase.NewAuditService(store, logger.WithComponent(log, "audit"))

	s := &Server{
		cfg:              cfg,
		log:              log,
		router:           router,
		adminService:     adminService,
		healthHandler:    handler.NewHealthHandler(healthService, cfg.API.ProjectName),
		authHandler:      handler.NewAuthHandler(authService),
		reportingHandler: handler.NewReportingHandler(reportingService),
		adminHandler:     handler.NewAdminHandler(adminService),
		logHandler:       handler.NewLogHandler(auditService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS(s.cfg.API.AllowedOrigins))
	s.router.Use(middleware.Logging(s.log))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.Root)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	api := s.router.Group(s.cfg.API.Prefix)
	{
		// Auth
		api.POST("/auth/request-code", s.authHandler.RequestCode)
		api.POST("/auth/verify-code", s.authHandler.VerifyCode)

		// Reporting
		api.GET("/business-units", s.reportingHandler.BusinessUnits)
		api.GET("/okr-tracker/:user_id", s.reportingHandler.OKRTracker)
		api.GET("/kjops/:user_id", s.reportingHandler.KJOps)
		api.GET("/priority-statuses", s.reportingHandler.PriorityStatuses)
		for _, entity := range domain.Entities() {
			api.GET("/"+string(entity)+"/:user_id", s.reportingHandler.Fetch(entity))
			api.PUT("/"+string(entity)+"/bulk-update", s.reportingHandler.BulkUpdate(entity))
		}

		// Client logs
		api.POST("/logs", s.logHandler.Create)
	}

	admin := api.Group("/admin", middleware.AdminAuth(s.adminService))
	{
		admin.POST("/reporting-period", s.adminHandler.SetPeriod)
		admin.POST("/reporting-period/open", s.adminHandler.OpenPeriod)
		admin.POST("/reporting-period/close", s.adminHandler.ClosePeriod)
		admin.GET("/okrs-submissions", s.adminHandler.OKRSubmissions)
		admin.GET("/okr-master-list/:bu_id", s.adminHandler.OKRMasterList)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
