// Package mocks contains testify mocks for the ports package.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is a mock of ports.Store.
//
// IssueLoginCode and VerifyLoginCode behave like the database: the values
// given to Return are what the procedure produced, and they are passed
// through the callback before the call returns.
type Store struct {
	mock.Mock
}

// NewStore creates a Store and asserts its expectations on cleanup.
func NewStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *Store {
	m := &Store{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Store) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// IssueLoginCode expects Return(*domain.LoginCode, error).
func (m *Store) IssueLoginCode(ctx context.Context, email string, deliver func(*domain.LoginCode) error) error {
	args := m.Called(ctx, email, deliver)
	if err := args.Error(1); err != nil {
		return err
	}
	code, _ := args.Get(0).(*domain.LoginCode)
	return deliver(code)
}

// VerifyLoginCode expects Return(*domain.LoginUser, []domain.Permission, error).
func (m *Store) VerifyLoginCode(ctx context.Context, email, code string, accept func(*domain.LoginUser) error) (*domain.LoginUser, []domain.Permission, error) {
	args := m.Called(ctx, email, code, accept)
	if err := args.Error(2); err != nil {
		return nil, nil, err
	}
	user, _ := args.Get(0).(*domain.LoginUser)
	if err := accept(user); err != nil {
		return nil, nil, err
	}
	perms, _ := args.Get(1).([]domain.Permission)
	return user, perms, nil
}

func (m *Store) Records(ctx context.Context, proc string, params ...any) ([]domain.Record, error) {
	args := m.Called(append([]any{ctx, proc}, params...)...)
	rows, _ := args.Get(0).([]domain.Record)
	return rows, args.Error(1)
}

func (m *Store) BulkUpdate(ctx context.Context, table, xml string, userID int64) (int64, error) {
	args := m.Called(ctx, table, xml, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Store) SetSubmissionPeriod(ctx context.Context, year, month int, userID int64) (domain.PeriodStatus, error) {
	args := m.Called(ctx, year, month, userID)
	status, _ := args.Get(0).(domain.PeriodStatus)
	return status, args.Error(1)
}

func (m *Store) OpenSubmissionPeriod(ctx context.Context, userID int64) (domain.PeriodStatus, error) {
	args := m.Called(ctx, userID)
	status, _ := args.Get(0).(domain.PeriodStatus)
	return status, args.Error(1)
}

func (m *Store) CloseSubmissionPeriod(ctx context.Context, userID int64, closedAt time.Time) (domain.PeriodStatus, error) {
	args := m.Called(ctx, userID, closedAt)
	status, _ := args.Get(0).(domain.PeriodStatus)
	return status, args.Error(1)
}

func (m *Store) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *Store) InsertAppLog(ctx context.Context, entry domain.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
