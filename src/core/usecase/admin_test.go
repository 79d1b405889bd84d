package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports/mocks"
)

func TestAdminService_SetPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		repo := mocks.NewStore(t)
		want := domain.PeriodStatus{"status": "success", "message": "Period set to 2025-08"}
		repo.On("SetSubmissionPeriod", ctx, 2025, 8, int64(1)).Return(want, nil).Once()

		svc := NewAdminService(repo, discardLogger())
		got, err := svc.SetPeriod(ctx, 2025, 8, 1)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid_month", func(t *testing.T) {
		svc := NewAdminService(mocks.NewStore(t), discardLogger())

		for _, m := range []int{0, 13} {
			_, err := svc.SetPeriod(ctx, 2025, m, 1)
			assert.True(t, domain.IsValidationError(err))
		}
	})

	t.Run("invalid_year", func(t *testing.T) {
		svc := NewAdminService(mocks.NewStore(t), discardLogger())
		_, err := svc.SetPeriod(ctx, 25, 8, 1)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("no_status", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("SetSubmissionPeriod", ctx, 2025, 8, int64(1)).Return(domain.PeriodStatus{"message": "?"}, nil).Once()

		svc := NewAdminService(repo, discardLogger())
		_, err := svc.SetPeriod(ctx, 2025, 8, 1)

		assert.ErrorIs(t, err, domain.ErrSubmissionPeriod)
	})

	t.Run("no_row", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("SetSubmissionPeriod", ctx, 2025, 8, int64(1)).Return(nil, nil).Once()

		svc := NewAdminService(repo, discardLogger())
		_, err := svc.SetPeriod(ctx, 2025, 8, 1)

		assert.ErrorIs(t, err, domain.ErrSubmissionPeriod)
	})
}

func TestAdminService_OpenClosePeriod(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 3, 10, 0, 0, 0, time.UTC)

	repo := mocks.NewStore(t)
	repo.On("OpenSubmissionPeriod", ctx, int64(1)).Return(domain.PeriodStatus{"status": "open"}, nil).Once()
	repo.On("CloseSubmissionPeriod", ctx, int64(1), now).Return(domain.PeriodStatus{"status": "closed"}, nil).Once()

	svc := NewAdminService(repo, discardLogger())
	svc.now = func() time.Time { return now }

	got, err := svc.OpenPeriod(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "open", got["status"])

	got, err = svc.ClosePeriod(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "closed", got["status"])
}

func TestAdminService_ClosePeriodError(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewStore(t)
	dbErr := domain.NewValidationError("period", "period already closed")
	repo.On("CloseSubmissionPeriod", ctx, int64(1), mock.AnythingOfType("time.Time")).Return(nil, dbErr).Once()

	svc := NewAdminService(repo, discardLogger())
	_, err := svc.ClosePeriod(ctx, 1)

	assert.ErrorIs(t, err, dbErr)
}

func TestAdminService_Listings(t *testing.T) {
	ctx := context.Background()
	rows := []domain.Record{{"bu_name": "Retail", "okr_count": int64(4)}}

	repo := mocks.NewStore(t)
	repo.On("Records", ctx, domain.ProcOKRMasterList, int64(5)).Return(rows, nil).Once()
	repo.On("Records", ctx, domain.ProcBusinessUnitsWithOKRs, int64(1)).Return(nil, errors.New("timeout")).Once()

	svc := NewAdminService(repo, discardLogger())

	got, err := svc.OKRMasterList(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	_, err = svc.BusinessUnitsWithOKRs(ctx, 1)
	assert.Error(t, err)
}

func TestAdminService_IsAdmin(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewStore(t)
	repo.On("IsAdmin", ctx, int64(1)).Return(true, nil).Once()
	repo.On("IsAdmin", ctx, int64(2)).Return(false, nil).Once()

	svc := NewAdminService(repo, discardLogger())

	ok, err := svc.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
