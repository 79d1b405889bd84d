package usecase

import (
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"bureporting/src/core/domain"
	"bureporting/src/core/ports"
)

const loginCodeSubject = "Your One-Time Login Code"

// LoginCodeSentMessage is returned after a login code email went out.
const LoginCodeSentMessage = "A login code has been sent to your email. Please check your inbox."

var loginCodeEmail = template.Must(template.New("login_code").Parse(`<html><body>
<p>Hello,</p>
<p>Your one-time login code is: <strong>{{.Code}}</strong></p>
<p>This code will expire in <strong>{{.Minutes}} minutes</strong>.</p>
<p>If you did not request this code, you can safely ignore this email.</p>
<br>
<p>Thank you,<br><em>BU Reporting Team</em></p>
</body></html>
`))

// AuthService handles passwordless login with emailed one-time codes.
type AuthService struct {
	repo          ports.AuthRepository
	mailer        ports.Mailer
	log           *slog.Logger
	validate      *validator.Validate
	defaultExpiry int
}

// NewAuthService creates an AuthService. codeExpiry is quoted in the email
// when the database does not report one.
func NewAuthService(repo ports.AuthRepository, mailer ports.Mailer, codeExpiry time.Duration, log *slog.Logger) *AuthService {
	minutes := int(codeExpiry / time.Minute)
	if minutes <= 0 {
		minutes = domain.DefaultLoginCodeExpiryMinutes
	}
	return &AuthService{
		repo:          repo,
		mailer:        mailer,
		log:           log,
		validate:      validator.New(),
		defaultExpiry: minutes,
	}
}

// RequestCode generates a one-time code for email and mails it. The code is
// only committed once the email has been handed to the mail server.
func (s *AuthService) RequestCode(ctx context.Context, email string) (string, error) {
	if err := s.checkEmail(email); err != nil {
		return "", err
	}

	err := s.repo.IssueLoginCode(ctx, email, func(lc *domain.LoginCode) error {
		if lc == nil || lc.UserID <= 0 {
			s.log.Warn("email not found or user is not active", "email", email)
			return domain.NewNotFoundError("email not found or user is not active")
		}
		if !lc.IsActive {
			s.log.Warn("user is not active", "email", email)
			return domain.NewForbiddenError("user is not active")
		}
		if lc.Code == "" {
			s.log.Error("no login code generated", "email", email)
			return fmt.Errorf("failed to generate login code")
		}

		minutes := lc.MinutesToExpire
		if minutes <= 0 {
			minutes = s.defaultExpiry
		}
		body, err := renderLoginCodeEmail(lc.Code, minutes)
		if err != nil {
			return err
		}
		if err := s.mailer.Send(ctx, email, loginCodeSubject, body); err != nil {
			s.log.Error("failed to send login code email", "email", email, "error", err)
			return fmt.Errorf("failed to send the login code email: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("login code sent and committed", "email", email)
	return LoginCodeSentMessage, nil
}

// VerifyCode checks a one-time code and returns the user's session.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*domain.Session, error) {
	if err := s.checkEmail(email); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, domain.NewValidationError("code", "login code is required")
	}

	user, perms, err := s.repo.VerifyLoginCode(ctx, email, code, func(u *domain.LoginUser) error {
		if u == nil || u.UserID <= 0 {
			s.log.Warn("email not found or user is not active", "email", email)
			return domain.NewNotFoundError("email not found or user is not active")
		}
		if !u.IsActive {
			s.log.Warn("user is not active", "email", email)
			return domain.NewForbiddenError("user is not active")
		}
		if u.LoginCode == "" || subtle.ConstantTimeCompare([]byte(u.LoginCode), []byte(code)) != 1 {
			s.log.Warn("invalid or expired login code", "email", email)
			return domain.NewUnauthorizedError("invalid or expired login code")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	firstName := user.FirstName
	if firstName == "" {
		firstName = domain.DefaultFirstName
	}
	if perms == nil {
		perms = []domain.Permission{}
	}

	s.log.Info("user successfully logged in", "user_id", user.UserID, "email", email)
	return &domain.Session{
		UserID:            user.UserID,
		FirstName:         firstName,
		IsAdmin:           user.IsAdmin,
		PeriodStart:       user.PeriodStart,
		PeriodEnd:         user.PeriodEnd,
		IsPeriodClosed:    user.IsPeriodClosed,
		IsPrioritiesMonth: user.IsPrioritiesMonth,
		Permissions:       perms,
	}, nil
}

func (s *AuthService) checkEmail(email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		s.log.Warn("invalid email format attempted", "email", email)
		return domain.NewValidationError("email", "invalid email format provided")
	}
	return nil
}

func renderLoginCodeEmail(code string, minutes int) (string, error) {
	var buf bytes.Buffer
	err := loginCodeEmail.Execute(&buf, struct {
		Code    string
		Minutes int
	}{code, minutes})
	if err != nil {
		return "", fmt.Errorf("failed to render login code email: %w", err)
	}
	return buf.String(), nil
}
