package repo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"bureporting/src/core/domain"
)

// lookup finds a column ignoring case and underscores, so affected_row_count
// matches AffectedRowCount and the folded affectedrowcount alike.
func lookup(rec domain.Record, column string) (any, bool) {
	if v, ok := rec[column]; ok {
		return v, true
	}
	want := foldColumn(column)
	for k, v := range rec {
		if foldColumn(k) == want {
			return v, true
		}
	}
	return nil, false
}

func foldColumn(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

func int64Col(rec domain.Record, column string) int64 {
	v, _ := lookup(rec, column)
	return toInt64(v)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int8:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case pgtype.Numeric:
		i, err := n.Int64Value()
		if err != nil || !i.Valid {
			return 0
		}
		return i.Int64
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i
	}
	return 0
}

func boolCol(rec domain.Record, column string) bool {
	v, _ := lookup(rec, column)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		ok, _ := strconv.ParseBool(strings.TrimSpace(b))
		return ok
	case nil:
		return false
	}
	return toInt64(v) != 0
}

func stringCol(rec domain.Record, column string) string {
	v, _ := lookup(rec, column)
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func timeCol(rec domain.Record, column string) *time.Time {
	v, _ := lookup(rec, column)
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case pgtype.Date:
		if t.Valid {
			return &t.Time
		}
	case pgtype.Timestamp:
		if t.Valid {
			return &t.Time
		}
	case pgtype.Timestamptz:
		if t.Valid {
			return &t.Time
		}
	}
	return nil
}

func decodeLoginCode(rec domain.Record) *domain.LoginCode {
	if rec == nil {
		return nil
	}
	return &domain.LoginCode{
		UserID:          int64Col(rec, "user_id"),
		IsActive:        boolCol(rec, "is_active"),
		Code:            stringCol(rec, "login_code"),
		MinutesToExpire: int(int64Col(rec, "minutes_to_expire")),
	}
}

func decodeLoginUser(rec domain.Record) *domain.LoginUser {
	if rec == nil {
		return nil
	}
	return &domain.LoginUser{
		UserID:            int64Col(rec, "user_id"),
		FirstName:         stringCol(rec, "first_name"),
		IsActive:          boolCol(rec, "is_active"),
		IsAdmin:           boolCol(rec, "is_admin"),
		LoginCode:         stringCol(rec, "login_code"),
		PeriodStart:       timeCol(rec, "period_start"),
		PeriodEnd:         timeCol(rec, "period_end"),
		IsPeriodClosed:    boolCol(rec, "is_period_closed"),
		IsPrioritiesMonth: boolCol(rec, "is_priorities_month"),
	}
}

func decodePermissions(rows []domain.Record) []domain.Permission {
	perms := make([]domain.Permission, 0, len(rows))
	for _, rec := range rows {
		perms = append(perms, domain.Permission{
			ModuleName: stringCol(rec, "module_name"),
			BUName:     stringCol(rec, "bu_name"),
			AccessType: stringCol(rec, "access_type"),
		})
	}
	return perms
}
