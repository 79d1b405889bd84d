package usecase

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
)

// ReportingService reads and bulk updates the reporting entities of a user.
type ReportingService struct {
	repo ports.ReportingRepository
	log  *slog.Logger
}

func NewReportingService(repo ports.ReportingRepository, log *slog.Logger) *ReportingService {
	return &ReportingService{repo: repo, log: log}
}

// BusinessUnits lists the business units visible to userID.
func (s *ReportingService) BusinessUnits(ctx context.Context, userID int64) ([]domain.Record, error) {
	s.log.Info("fetching business units", "user_id", userID)
	return s.records(ctx, domain.ProcBusinessUnits, userID)
}

// Fetch returns the rows of a reporting entity for userID.
func (s *ReportingService) Fetch(ctx context.Context, entity domain.Entity, userID int64) ([]domain.Record, error) {
	spec, err := entity.Spec()
	if err != nil {
		return nil, err
	}
	s.log.Info("fetching reporting entity", "entity", string(entity), "user_id", userID)
	return s.records(ctx, spec.FetchProc, userID)
}

// OKRTracker returns the OKR tracker rows for userID.
func (s *ReportingService) OKRTracker(ctx context.Context, userID int64) ([]domain.Record, error) {
	s.log.Info("fetching okr tracker", "user_id", userID)
	return s.records(ctx, domain.ProcOKRTrackerByUser, userID)
}

// KJOps returns the KJ OPS rows for userID.
func (s *ReportingService) KJOps(ctx context.Context, userID int64) ([]domain.Record, error) {
	s.log.Info("fetching kj ops", "user_id", userID)
	return s.records(ctx, domain.ProcKJOpsByUser, userID)
}

// PriorityStatuses returns the priority status lookup.
func (s *ReportingService) PriorityStatuses(ctx context.Context) ([]domain.Record, error) {
	s.log.Info("fetching priority statuses")
	return s.records(ctx, domain.ProcPriorityStatuses)
}

// BulkUpdate applies an XML change set to a reporting entity.
func (s *ReportingService) BulkUpdate(ctx context.Context, entity domain.Entity, body string, userID int64) (*domain.BulkUpdateResult, error) {
	spec, err := entity.Spec()
	if err != nil {
		return nil, err
	}
	if err := checkXML(body); err != nil {
		return nil, err
	}

	s.log.Info("bulk updating reporting entity", "entity", string(entity), "user_id", userID)
	affected, err := s.repo.BulkUpdate(ctx, spec.Table, body, userID)
	if err != nil {
		return nil, err
	}

	msg := "Operation successful, but no changes were made to the data."
	if affected > 0 {
		msg = fmt.Sprintf("Data processed for '%s'. %d row(s) were updated.", spec.ItemName, affected)
	}
	return &domain.BulkUpdateResult{
		Status:       "success",
		Message:      msg,
		AffectedRows: affected,
	}, nil
}

func (s *ReportingService) records(ctx context.Context, proc string, args ...any) ([]domain.Record, error) {
	rows, err := s.repo.Records(ctx, proc, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Record{}
	}
	return rows, nil
}

// checkXML rejects empty or malformed documents before they reach the database.
func checkXML(body string) error {
	if strings.TrimSpace(body) == "" {
		return domain.NewValidationError("body", "XML payload is required")
	}

	dec := xml.NewDecoder(strings.NewReader(body))
	sawElement := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.NewValidationError("body", "malformed XML payload: "+err.Error())
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
	if !sawElement {
		return domain.NewValidationError("body", "XML payload has no root element")
	}
	return nil
}
