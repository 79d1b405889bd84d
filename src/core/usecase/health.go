package usecase

import (
	"context"
	"log/slog"

	"bureporting/src/core/ports"
)

// HealthService checks the application's dependencies.
type HealthService struct {
	log     *slog.Logger
	db      ports.ExternalService
	dbStats func() any
}

// NewHealthService creates a new HealthService. dbStats may be nil.
func NewHealthService(log *slog.Logger, db ports.ExternalService, dbStats func() any) *HealthService {
	return &HealthService{
		log:     log,
		db:      db,
		dbStats: dbStats,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Check performs a health check of all application components.
// Returns the overall health status.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	if s.db != nil {
		component := ComponentHealth{Status: "healthy"}
		if err := s.db.Health(ctx); err != nil {
			s.log.Warn("database health check failed", "error", err)
			status.Status = "degraded"
			component = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
		}
		if s.dbStats != nil {
			component.Details = s.dbStats()
		}
		status.Components["database"] = component
	}

	return status
}
