package usecase

import (
	"context"
	"log/slog"
	"strings"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
)

// Audit log outcomes reported to the client.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
)

// AuditService records client side log entries. It never fails the request.
type AuditService struct {
	repo ports.AuditRepository
	log  *slog.Logger
}

func NewAuditService(repo ports.AuditRepository, log *slog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record stores entry and returns AuditStatusSuccess or AuditStatusFailed.
func (s *AuditService) Record(ctx context.Context, entry domain.LogEntry) string {
	if strings.TrimSpace(entry.Module) == "" {
		entry.Module = domain.DefaultLogModule
	}

	if err := s.repo.InsertAppLog(ctx, entry); err != nil {
		s.log.Error("failed to create log entry",
			"user_id", entry.UserID,
			"module", entry.Module,
			"client_ip", entry.ClientIP,
			"error", err,
		)
		return AuditStatusFailed
	}
	return AuditStatusSuccess
}
