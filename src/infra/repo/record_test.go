package repo

import (
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bureporting/src/core/domain"
)

func TestLookup(t *testing.T) {
	rec := domain.Record{"AffectedRowCount": int32(4), "user_id": int64(9)}

	v, ok := lookup(rec, "affected_row_count")
	assert.True(t, ok)
	assert.Equal(t, int32(4), v)

	v, ok = lookup(rec, "user_id")
	assert.True(t, ok)
	assert.Equal(t, int64(9), v)

	_, ok = lookup(rec, "missing")
	assert.False(t, ok)

	v, ok = lookup(domain.Record{"affectedrowcount": int64(2)}, "affected_row_count")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestInt64Col(t *testing.T) {
	cases := map[string]struct {
		value any
		want  int64
	}{
		"int64":   {int64(7), 7},
		"int32":   {int32(7), 7},
		"int16":   {int16(7), 7},
		"float64": {float64(7), 7},
		"string":  {" 7 ", 7},
		"numeric": {pgtype.Numeric{Int: big.NewInt(7), Valid: true}, 7},
		"null":    {nil, 0},
		"garbage": {"seven", 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, int64Col(domain.Record{"n": tc.value}, "n"))
		})
	}
}

func TestBoolCol(t *testing.T) {
	assert.True(t, boolCol(domain.Record{"b": true}, "b"))
	assert.True(t, boolCol(domain.Record{"b": int16(1)}, "b"))
	assert.True(t, boolCol(domain.Record{"b": "true"}, "b"))
	assert.False(t, boolCol(domain.Record{"b": int32(0)}, "b"))
	assert.False(t, boolCol(domain.Record{"b": nil}, "b"))
	assert.False(t, boolCol(domain.Record{}, "b"))
}

func TestTimeCol(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, &now, timeCol(domain.Record{"t": now}, "t"))
	assert.Equal(t, &now, timeCol(domain.Record{"t": pgtype.Date{Time: now, Valid: true}}, "t"))
	assert.Nil(t, timeCol(domain.Record{"t": pgtype.Date{}}, "t"))
	assert.Nil(t, timeCol(domain.Record{"t": nil}, "t"))
}

func TestDecodeLoginCode(t *testing.T) {
	assert.Nil(t, decodeLoginCode(nil))

	lc := decodeLoginCode(domain.Record{
		"user_id":           int32(12),
		"is_active":         true,
		"login_code":        "482913",
		"minutes_to_expire": int32(15),
	})
	require.NotNil(t, lc)
	assert.Equal(t, domain.LoginCode{UserID: 12, IsActive: true, Code: "482913", MinutesToExpire: 15}, *lc)
}

func TestDecodeLoginUser(t *testing.T) {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	u := decodeLoginUser(domain.Record{
		"user_id":             int64(12),
		"first_name":          "Dana",
		"is_active":           true,
		"is_admin":            false,
		"login_code":          "482913",
		"period_start":        start,
		"period_end":          nil,
		"is_period_closed":    false,
		"is_priorities_month": true,
	})
	require.NotNil(t, u)
	assert.Equal(t, int64(12), u.UserID)
	assert.Equal(t, "Dana", u.FirstName)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "482913", u.LoginCode)
	assert.Equal(t, &start, u.PeriodStart)
	assert.Nil(t, u.PeriodEnd)
	assert.True(t, u.IsPrioritiesMonth)
}

func TestDecodePermissions(t *testing.T) {
	perms := decodePermissions([]domain.Record{
		{"module_name": "OKRs", "bu_name": "Retail", "access_type": "edit"},
	})
	assert.Equal(t, []domain.Permission{{ModuleName: "OKRs", BUName: "Retail", AccessType: "edit"}}, perms)

	assert.NotNil(t, decodePermissions(nil))
}
