package usecase

import (
	"context"
	"log/slog"
	"time"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
)

// AdminService manages submission periods and admin views.
type AdminService struct {
	repo ports.AdminRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewAdminService(repo ports.AdminRepository, log *slog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log, now: time.Now}
}

// IsAdmin reports whether userID holds administrator privileges.
func (s *AdminService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.repo.IsAdmin(ctx, userID)
}

// SetPeriod moves the submission period to year/month.
func (s *AdminService) SetPeriod(ctx context.Context, year, month int, userID int64) (domain.PeriodStatus, error) {
	if month < 1 || month > 12 {
		return nil, domain.NewValidationError("month", "month must be between 1 and 12")
	}
	if year < 2000 || year > 9999 {
		return nil, domain.NewValidationError("year", "year must be between 2000 and 9999")
	}

	s.log.Info("setting submission period", "year", year, "month", month, "user_id", userID)
	status, err := s.repo.SetSubmissionPeriod(ctx, year, month, userID)
	return s.checkStatus(domain.ProcSetSubmissionPeriod, userID, status, err)
}

// OpenPeriod reopens the current submission period.
func (s *AdminService) OpenPeriod(ctx context.Context, userID int64) (domain.PeriodStatus, error) {
	s.log.Info("opening submission period", "user_id", userID)
	status, err := s.repo.OpenSubmissionPeriod(ctx, userID)
	return s.checkStatus(domain.ProcOpenSubmissionPeriod, userID, status, err)
}

// ClosePeriod closes the current submission period as of now.
func (s *AdminService) ClosePeriod(ctx context.Context, userID int64) (domain.PeriodStatus, error) {
	closedAt := s.now()
	s.log.Info("closing submission period", "user_id", userID, "closed_at", closedAt)
	status, err := s.repo.CloseSubmissionPeriod(ctx, userID, closedAt)
	status, err = s.checkStatus(domain.ProcCloseSubmissionPeriod, userID, status, err)
	if err == nil {
		s.log.Info("submission period closed", "user_id", userID, "status", status["status"])
	}
	return status, err
}

// OKRMasterList returns the OKR master list of a business unit.
func (s *AdminService) OKRMasterList(ctx context.Context, buID int64) ([]domain.Record, error) {
	s.log.Info("fetching okr master list", "bu_id", buID)
	return s.records(ctx, domain.ProcOKRMasterList, buID)
}

// BusinessUnitsWithOKRs lists business units with their OKR submissions.
func (s *AdminService) BusinessUnitsWithOKRs(ctx context.Context, userID int64) ([]domain.Record, error) {
	s.log.Info("fetching business units with okrs", "user_id", userID)
	return s.records(ctx, domain.ProcBusinessUnitsWithOKRs, userID)
}

func (s *AdminService) records(ctx context.Context, proc string, args ...any) ([]domain.Record, error) {
	rows, err := s.repo.Records(ctx, proc, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Record{}
	}
	return rows, nil
}

func (s *AdminService) checkStatus(proc string, userID int64, status domain.PeriodStatus, err error) (domain.PeriodStatus, error) {
	if err != nil {
		s.log.Error("submission period procedure failed", "proc", proc, "user_id", userID, "error", err)
		return nil, err
	}
	if _, ok := status["status"]; !ok {
		s.log.Error("no status returned from stored procedure", "proc", proc, "user_id", userID)
		return nil, &domain.DomainError{Base: domain.ErrSubmissionPeriod, Message: "no status returned from stored procedure"}
	}
	return status, nil
}
