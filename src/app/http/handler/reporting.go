package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/response"
	"bureporting/src/app/middleware"
	"bureporting/src/core/domain"
	"bureporting/src/core/usecase"
)

// maxBulkUpdateBody caps the XML payload of a bulk update.
const maxBulkUpdateBody = 10 << 20

// ReportingHandler serves the reporting entities.
type ReportingHandler struct {
	reportingService *usecase.ReportingService
}

func NewReportingHandler(reportingService *usecase.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingService: reportingService}
}

// BusinessUnits lists the caller's business units.
// GET /business-units
func (h *ReportingHandler) BusinessUnits(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.reportingService.BusinessUnits(c.Request.Context(), userID)
	h.respond(c, rows, err)
}

// Fetch serves GET /<entity>/:user_id.
func (h *ReportingHandler) Fetch(entity domain.Entity) gin.HandlerFunc {
	return h.perUser(func(ctx context.Context, userID int64) ([]domain.Record, error) {
		return h.reportingService.Fetch(ctx, entity, userID)
	})
}

// OKRTracker serves GET /okr-tracker/:user_id.
func (h *ReportingHandler) OKRTracker(c *gin.Context) {
	h.perUser(h.reportingService.OKRTracker)(c)
}

// KJOps serves GET /kjops/:user_id.
func (h *ReportingHandler) KJOps(c *gin.Context) {
	h.perUser(h.reportingService.KJOps)(c)
}

// PriorityStatuses serves GET /priority-statuses.
func (h *ReportingHandler) PriorityStatuses(c *gin.Context) {
	rows, err := h.reportingService.PriorityStatuses(c.Request.Context())
	h.respond(c, rows, err)
}

// BulkUpdate serves PUT /<entity>/bulk-update. The body is the raw XML
// change set.
func (h *ReportingHandler) BulkUpdate(entity domain.Entity) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBulkUpdateBody))
		if err != nil {
			response.BadRequest(c, "could not read request body", middleware.GetRequestID(c))
			return
		}

		res, err := h.reportingService.BulkUpdate(c.Request.Context(), entity, string(body), userID)
		if err != nil {
			c.Error(err)
			response.FromDomainError(c, err, middleware.GetRequestID(c))
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func (h *ReportingHandler) perUser(fetch func(context.Context, int64) ([]domain.Record, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		rows, err := fetch(c.Request.Context(), userID)
		h.respond(c, rows, err)
	}
}

func (h *ReportingHandler) respond(c *gin.Context, rows []domain.Record, err error) {
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, rows)
}
