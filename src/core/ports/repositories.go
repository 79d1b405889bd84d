// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"
	"time"

	"bureporting/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// AuthRepository issues and verifies one-time login codes.
//
// Both calls run as a single database transaction. The callback decides
// whether it commits: a non-nil error from deliver or accept rolls back and is
// returned unchanged.
type AuthRepository interface {
	// IssueLoginCode generates a code for email and hands it to deliver.
	// deliver receives nil when the database returned no row.
	IssueLoginCode(ctx context.Context, email string, deliver func(*domain.LoginCode) error) error

	// VerifyLoginCode looks up the user for email and code, lets accept
	// check it, then loads the user's permissions.
	// accept receives nil when the database returned no row.
	VerifyLoginCode(ctx context.Context, email, code string, accept func(*domain.LoginUser) error) (*domain.LoginUser, []domain.Permission, error)
}

// ReportingRepository reads and bulk updates reporting entities.
type ReportingRepository interface {
	// Records calls a row returning procedure.
	Records(ctx context.Context, proc string, args ...any) ([]domain.Record, error)

	// BulkUpdate applies an XML change set to table and returns the affected row count.
	BulkUpdate(ctx context.Context, table, xml string, userID int64) (int64, error)
}

// AdminRepository manages reporting periods and admin lookups.
type AdminRepository interface {
	Records(ctx context.Context, proc string, args ...any) ([]domain.Record, error)

	// SetSubmissionPeriod, OpenSubmissionPeriod and CloseSubmissionPeriod
	// return nil when the procedure produced no row.
	SetSubmissionPeriod(ctx context.Context, year, month int, userID int64) (domain.PeriodStatus, error)
	OpenSubmissionPeriod(ctx context.Context, userID int64) (domain.PeriodStatus, error)
	CloseSubmissionPeriod(ctx context.Context, userID int64, closedAt time.Time) (domain.PeriodStatus, error)

	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AuditRepository stores client submitted log entries.
type AuditRepository interface {
	InsertAppLog(ctx context.Context, entry domain.LogEntry) error
}

// Store is everything the application needs from the reporting database.
type Store interface {
	Repository
	AuthRepository
	ReportingRepository
	AdminRepository
	AuditRepository
}
