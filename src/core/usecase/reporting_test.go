package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports/mocks"
)

func TestReportingService_Fetch(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		entity domain.Entity
		proc   string
	}{
		{domain.EntityOKRs, "usp_get_okr_details"},
		{domain.EntityCommentaries, "usp_get_commentary_details"},
		{domain.EntityPriorities, "usp_get_priorities"},
		{domain.EntityTrackerStatuses, "usp_get_ops_tracker_statuses"},
		{domain.EntityOverdues, "usp_get_ops_overdues"},
	}
	for _, tc := range cases {
		t.Run(string(tc.entity), func(t *testing.T) {
			repo := mocks.NewStore(t)
			rows := []domain.Record{{"id": int64(1), "title": "Grow revenue"}}
			repo.On("Records", ctx, tc.proc, int64(7)).Return(rows, nil).Once()

			svc := NewReportingService(repo, discardLogger())
			got, err := svc.Fetch(ctx, tc.entity, 7)

			require.NoError(t, err)
			assert.Equal(t, rows, got)
		})
	}

	t.Run("unknown_entity", func(t *testing.T) {
		svc := NewReportingService(mocks.NewStore(t), discardLogger())
		_, err := svc.Fetch(ctx, domain.Entity("budgets"), 7)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("nil_rows_become_empty", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("Records", ctx, "usp_get_okr_details", int64(7)).Return(nil, nil).Once()

		svc := NewReportingService(repo, discardLogger())
		got, err := svc.Fetch(ctx, domain.EntityOKRs, 7)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("repo_error", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("Records", ctx, "usp_get_ops_overdues", int64(7)).Return(nil, errors.New("db down")).Once()

		svc := NewReportingService(repo, discardLogger())
		got, err := svc.Fetch(ctx, domain.EntityOverdues, 7)

		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestReportingService_Lookups(t *testing.T) {
	ctx := context.Background()
	rows := []domain.Record{{"name": "Retail"}}

	repo := mocks.NewStore(t)
	repo.On("Records", ctx, domain.ProcBusinessUnits, int64(3)).Return(rows, nil).Once()
	repo.On("Records", ctx, domain.ProcOKRTrackerByUser, int64(3)).Return(rows, nil).Once()
	repo.On("Records", ctx, domain.ProcKJOpsByUser, int64(3)).Return(rows, nil).Once()
	repo.On("Records", ctx, domain.ProcPriorityStatuses).Return(rows, nil).Once()

	svc := NewReportingService(repo, discardLogger())

	got, err := svc.BusinessUnits(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	got, err = svc.OKRTracker(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	got, err = svc.KJOps(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	got, err = svc.PriorityStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestReportingService_BulkUpdate(t *testing.T) {
	ctx := context.Background()
	const body = `<root><row id="1"><status>Done</status></row></root>`

	t.Run("rows_updated", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("BulkUpdate", ctx, "okr_details", body, int64(9)).Return(int64(3), nil).Once()

		svc := NewReportingService(repo, discardLogger())
		res, err := svc.BulkUpdate(ctx, domain.EntityOKRs, body, 9)

		require.NoError(t, err)
		assert.Equal(t, "success", res.Status)
		assert.Equal(t, int64(3), res.AffectedRows)
		assert.Equal(t, "Data processed for 'OKRs'. 3 row(s) were updated.", res.Message)
	})

	t.Run("no_changes", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("BulkUpdate", ctx, "commentary_details", body, int64(9)).Return(int64(0), nil).Once()

		svc := NewReportingService(repo, discardLogger())
		res, err := svc.BulkUpdate(ctx, domain.EntityCommentaries, body, 9)

		require.NoError(t, err)
		assert.Equal(t, int64(0), res.AffectedRows)
		assert.Equal(t, "Operation successful, but no changes were made to the data.", res.Message)
	})

	t.Run("invalid_payloads", func(t *testing.T) {
		svc := NewReportingService(mocks.NewStore(t), discardLogger())
		for _, bad := range []string{"", "   ", "<root><row></root>", "just text"} {
			_, err := svc.BulkUpdate(ctx, domain.EntityPriorities, bad, 9)
			assert.True(t, domain.IsValidationError(err), "payload %q", bad)
		}
	})

	t.Run("repo_error", func(t *testing.T) {
		repo := mocks.NewStore(t)
		repo.On("BulkUpdate", ctx, "ops_overdues", body, int64(9)).Return(int64(0), errors.New("deadlock")).Once()

		svc := NewReportingService(repo, discardLogger())
		res, err := svc.BulkUpdate(ctx, domain.EntityOverdues, body, 9)

		require.Error(t, err)
		assert.Nil(t, res)
	})
}
