package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/dto"
	"bureporting/src/app/http/response"
	"bureporting/src/app/middleware"
	"bureporting/src/core/usecase"
)

// AuthHandler handles passwordless login.
type AuthHandler struct {
	authService *usecase.AuthService
}

func NewAuthHandler(authService *usecase.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RequestCode emails a one-time login code.
// POST /auth/request-code
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req dto.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	msg, err := h.authService.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

// VerifyCode exchanges a login code for the user's session data.
// POST /auth/verify-code
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	session, err := h.authService.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.JSON(http.StatusOK, dto.FromSession(session))
}
