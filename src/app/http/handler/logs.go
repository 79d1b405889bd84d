package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/dto"
	"bureporting/src/app/http/response"
	"bureporting/src/app/middleware"
	"bureporting/src/core/domain"
	"bureporting/src/core/usecase"
)

// LogHandler accepts client side log entries.
type LogHandler struct {
	auditService *usecase.AuditService
}

func NewLogHandler(auditService *usecase.AuditService) *LogHandler {
	return &LogHandler{auditService: auditService}
}

// Create stores a log entry. It answers 200 even when nothing was stored so
// clients never retry log writes.
// POST /logs
func (h *LogHandler) Create(c *gin.Context) {
	var req dto.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	userID, ok := headerUserID(c)
	if !ok {
		c.JSON(http.StatusOK, dto.StatusResponse{
			Status:  usecase.AuditStatusFailed,
			Message: "User ID is missing",
		})
		return
	}

	status := h.auditService.Record(c.Request.Context(), domain.LogEntry{
		Level:    req.Level,
		Message:  req.Message,
		Module:   req.ModuleName,
		UserID:   userID,
		ClientIP: middleware.ClientIP(c),
	})
	c.JSON(http.StatusOK, dto.StatusResponse{Status: status})
}
