package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"bureporting/src/core/domain"
	"bureporting/src/infra/db"
)

func TestProcCall(t *testing.T) {
	assert.Equal(t, `SELECT * FROM "usp_get_priority_statuses"()`, procCall("usp_get_priority_statuses", 0))
	assert.Equal(t, `SELECT * FROM "usp_get_okr_details"($1)`, procCall("usp_get_okr_details", 1))
	assert.Equal(t, `SELECT * FROM "usp_bulk_update"($1, $2, $3)`, procCall("usp_bulk_update", 3))
	assert.Equal(t, `SELECT * FROM "odd""name"($1)`, procCall(`odd"name`, 1))
}

func TestTranslate(t *testing.T) {
	r := &ProcedureRepository{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, r.translate("p", nil))
	})

	t.Run("pool_errors_are_unavailable", func(t *testing.T) {
		for _, cause := range []error{
			db.ErrPoolExhausted,
			fmt.Errorf("%w: %w", db.ErrConnectionCreation, errors.New("dial tcp: refused")),
			db.ErrPoolClosed,
		} {
			err := r.translate("p", cause)
			assert.True(t, domain.IsUnavailable(err))
			assert.ErrorIs(t, err, cause)
		}
	})

	t.Run("raise_exception", func(t *testing.T) {
		err := r.translate("p", &pgconn.PgError{Code: "P0001", Message: "submission period is closed"})
		assert.True(t, domain.IsValidationError(err))
		assert.Contains(t, err.Error(), "submission period is closed")
	})

	t.Run("unique_violation", func(t *testing.T) {
		err := r.translate("p", &pgconn.PgError{Code: "23505", Message: "duplicate key"})
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("other_pg_error_is_wrapped", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42883", Message: "function does not exist"}
		err := r.translate("usp_missing", pgErr)
		assert.ErrorIs(t, err, pgErr)
		assert.Contains(t, err.Error(), "usp_missing")
	})

	t.Run("callback_errors_pass_through", func(t *testing.T) {
		cause := domain.NewUnauthorizedError("invalid or expired login code")
		assert.Same(t, cause, r.translate("p", cause))

		assert.ErrorIs(t, r.translate("p", context.Canceled), context.Canceled)
	})
}
