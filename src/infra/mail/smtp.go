// Package mail sends HTML email over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"bureporting/src/core/ports"
	"bureporting/src/infra/config"
	"bureporting/src/infra/logger"
)

// ErrNotConfigured is returned by Send when no sender account is configured.
var ErrNotConfigured = errors.New("mail sender is not configured")

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPMailer delivers mail through an authenticated STARTTLS relay.
type SMTPMailer struct {
	cfg config.MailConfig
	log *slog.Logger
}

func NewSMTPMailer(cfg config.MailConfig, log *slog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: logger.WithComponent(log, "mail")}
}

// Send opens a fresh SMTP session for one message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.cfg.SenderEmail == "" || m.cfg.SenderPassword == "" {
		m.log.Error("email credentials are not set")
		return ErrNotConfigured
	}

	msg, err := m.buildMessage(to, subject, htmlBody)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(m.cfg.SenderEmail),
		gomail.WithPassword(m.cfg.SenderPassword),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if m.cfg.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(m.cfg.Timeout))
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error("failed to send email", "to", to, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("email sent", "to", to)
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, htmlBody string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.SenderEmail); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)
	return msg, nil
}
