package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bureporting/src/core/ports"
)

var _ ports.Mailer = (*Mailer)(nil)

// Mailer is a mock of ports.Mailer.
type Mailer struct {
	mock.Mock
}

// NewMailer creates a Mailer and asserts its expectations on cleanup.
func NewMailer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}
