package dto

import (
	"fmt"
	"time"

	"bureporting/src/core/domain"
)

// RequestCodeRequest is the payload for /auth/request-code.
type RequestCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyCodeRequest is the payload for /auth/verify-code.
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// MessageResponse carries a single user facing message.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned after a successful code verification.
type LoginResponse struct {
	UserID  int64       `json:"user_id"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    SessionData `json:"data"`
}

// SessionData is what the client keeps for the session.
type SessionData struct {
	IsAdmin           bool                `json:"is_admin"`
	PeriodStart       *time.Time          `json:"period_start"`
	PeriodEnd         *time.Time          `json:"period_end"`
	IsPeriodClosed    bool                `json:"is_period_closed"`
	IsPrioritiesMonth bool                `json:"is_priorities_month"`
	Permissions       []domain.Permission `json:"permissions"`
}

func FromSession(s *domain.Session) LoginResponse {
	return LoginResponse{
		UserID:  s.UserID,
		Status:  "success",
		Message: fmt.Sprintf("Welcome, %s!", s.FirstName),
		Data: SessionData{
			IsAdmin:           s.IsAdmin,
			PeriodStart:       s.PeriodStart,
			PeriodEnd:         s.PeriodEnd,
			IsPeriodClosed:    s.IsPeriodClosed,
			IsPrioritiesMonth: s.IsPrioritiesMonth,
			Permissions:       s.Permissions,
		},
	}
}
