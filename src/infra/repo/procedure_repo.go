package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
	"bureporting/src/infra/db"
	"bureporting/src/infra/logger"
)

var _ ports.Store = (*ProcedureRepository)(nil)

// querier is satisfied by both *pgx.Conn and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProcedureRepository implements ports.Store with stored procedures.
type ProcedureRepository struct {
	pool *db.Pool[*pgx.Conn]
	log  *slog.Logger
}

// NewProcedureRepository constructs a repository backed by the pool of pg.
func NewProcedureRepository(pg *db.Postgres, log *slog.Logger) *ProcedureRepository {
	return &ProcedureRepository{
		pool: pg.Pool,
		log:  logger.WithComponent(log, "repo"),
	}
}

func (r *ProcedureRepository) Health(ctx context.Context) error {
	return r.translate("health", r.pool.With(ctx, func(*pgx.Conn) error { return nil }))
}

// Auth

func (r *ProcedureRepository) IssueLoginCode(ctx context.Context, email string, deliver func(*domain.LoginCode) error) error {
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			row, err := queryOne(ctx, tx, domain.ProcGenerateLoginCode, email)
			if err != nil {
				return err
			}
			return deliver(decodeLoginCode(row))
		})
	})
	return r.translate(domain.ProcGenerateLoginCode, err)
}

func (r *ProcedureRepository) VerifyLoginCode(ctx context.Context, email, code string, accept func(*domain.LoginUser) error) (*domain.LoginUser, []domain.Permission, error) {
	var (
		user  *domain.LoginUser
		perms []domain.Permission
	)
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		return pgx.BeginFunc(ctx, conn, func(tx pgx.Tx) error {
			row, err := queryOne(ctx, tx, domain.ProcVerifyLoginCode, email, code)
			if err != nil {
				return err
			}
			user = decodeLoginUser(row)
			if err := accept(user); err != nil {
				return err
			}

			rows, err := queryRecords(ctx, tx, domain.ProcUserPermissions, user.UserID)
			if err != nil {
				return err
			}
			perms = decodePermissions(rows)
			return nil
		})
	})
	if err != nil {
		return nil, nil, r.translate(domain.ProcVerifyLoginCode, err)
	}
	return user, perms, nil
}

// Reporting

func (r *ProcedureRepository) Records(ctx context.Context, proc string, args ...any) ([]domain.Record, error) {
	var rows []domain.Record
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		var err error
		rows, err = queryRecords(ctx, conn, proc, args...)
		return err
	})
	if err != nil {
		return nil, r.translate(proc, err)
	}
	return rows, nil
}

func (r *ProcedureRepository) BulkUpdate(ctx context.Context, table, xml string, userID int64) (int64, error) {
	var affected int64
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		row, err := queryOne(ctx, conn, domain.ProcBulkUpdate, table, xml, userID)
		if err != nil {
			return err
		}
		if row != nil {
			affected = int64Col(row, "affected_row_count")
		}
		return nil
	})
	if err != nil {
		return 0, r.translate(domain.ProcBulkUpdate, err)
	}
	return affected, nil
}

// Admin

func (r *ProcedureRepository) SetSubmissionPeriod(ctx context.Context, year, month int, userID int64) (domain.PeriodStatus, error) {
	return r.periodStatus(ctx, domain.ProcSetSubmissionPeriod, year, month, userID)
}

func (r *ProcedureRepository) OpenSubmissionPeriod(ctx context.Context, userID int64) (domain.PeriodStatus, error) {
	return r.periodStatus(ctx, domain.ProcOpenSubmissionPeriod, userID)
}

func (r *ProcedureRepository) CloseSubmissionPeriod(ctx context.Context, userID int64, closedAt time.Time) (domain.PeriodStatus, error) {
	return r.periodStatus(ctx, domain.ProcCloseSubmissionPeriod, userID, closedAt)
}

func (r *ProcedureRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var admin bool
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		row, err := queryOne(ctx, conn, domain.ProcUserIsAdmin, userID)
		if err != nil {
			return err
		}
		admin = row != nil && boolCol(row, "is_admin")
		return nil
	})
	if err != nil {
		return false, r.translate(domain.ProcUserIsAdmin, err)
	}
	return admin, nil
}

func (r *ProcedureRepository) periodStatus(ctx context.Context, proc string, args ...any) (domain.PeriodStatus, error) {
	var status domain.PeriodStatus
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		row, err := queryOne(ctx, conn, proc, args...)
		if row != nil {
			status = domain.PeriodStatus(row)
		}
		return err
	})
	if err != nil {
		return nil, r.translate(proc, err)
	}
	return status, nil
}

// Audit

func (r *ProcedureRepository) InsertAppLog(ctx context.Context, entry domain.LogEntry) error {
	err := r.pool.With(ctx, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, procCall(domain.ProcInsertAppLog, 5),
			entry.Level, entry.Message, entry.Module, entry.UserID, entry.ClientIP)
		return err
	})
	return r.translate(domain.ProcInsertAppLog, err)
}

// translate maps pool and database failures onto domain errors. Anything
// else, including errors from callbacks, is returned unchanged.
func (r *ProcedureRepository) translate(proc string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, db.ErrPoolExhausted) || errors.Is(err, db.ErrConnectionCreation) || errors.Is(err, db.ErrPoolClosed) {
		r.log.Error("database unavailable", "proc", proc, "error", err)
		return domain.NewUnavailableError(err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	r.log.Error("stored procedure failed",
		"proc", proc,
		"code", pgErr.Code,
		"error", pgErr.Message,
	)
	switch pgErr.Code {
	case "P0001":
		// RAISE EXCEPTION inside the procedure carries a user facing message.
		return domain.NewValidationError("", pgErr.Message)
	case "23505":
		return domain.NewConflictError(pgErr.Message)
	}
	return fmt.Errorf("%s: %w", proc, err)
}

func queryRecords(ctx context.Context, q querier, proc string, args ...any) ([]domain.Record, error) {
	rows, err := q.Query(ctx, procCall(proc, len(args)), args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Record, len(maps))
	for i, m := range maps {
		out[i] = domain.Record(m)
	}
	return out, nil
}

// queryOne returns the first row, or nil when the procedure produced none.
func queryOne(ctx context.Context, q querier, proc string, args ...any) (domain.Record, error) {
	rows, err := queryRecords(ctx, q, proc, args...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

// procCall builds SELECT * FROM "proc"($1, ..., $n).
func procCall(proc string, n int) string {
	params := make([]string, n)
	for i := range params {
		params[i] = "$" + strconv.Itoa(i+1)
	}
	return "SELECT * FROM " + pgx.Identifier{proc}.Sanitize() + "(" + strings.Join(params, ", ") + ")"
}
