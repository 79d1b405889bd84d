package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bureporting/src/app/http/dto"
	"bureporting/src/app/http/response"
	"bureporting/src/app/middleware"
	"bureporting/src/core/usecase"
)

// AdminHandler handles submission periods and admin listings. Every route
// sits behind middleware.AdminAuth.
type AdminHandler struct {
	adminService *usecase.AdminService
}

func NewAdminHandler(adminService *usecase.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// SetPeriod moves the submission period.
// POST /admin/reporting-period
func (h *AdminHandler) SetPeriod(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.SetPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	status, err := h.adminService.SetPeriod(c.Request.Context(), req.Year, req.Month, userID)
	h.respond(c, status, err)
}

// OpenPeriod reopens the submission period.
// POST /admin/reporting-period/open
func (h *AdminHandler) OpenPeriod(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	status, err := h.adminService.OpenPeriod(c.Request.Context(), userID)
	h.respond(c, status, err)
}

// ClosePeriod closes the submission period.
// POST /admin/reporting-period/close
func (h *AdminHandler) ClosePeriod(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	status, err := h.adminService.ClosePeriod(c.Request.Context(), userID)
	h.respond(c, status, err)
}

// OKRSubmissions lists business units with their OKR submissions.
// GET /admin/okrs-submissions
func (h *AdminHandler) OKRSubmissions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	rows, err := h.adminService.BusinessUnitsWithOKRs(c.Request.Context(), userID)
	h.respond(c, rows, err)
}

// OKRMasterList returns the OKR master list of one business unit.
// GET /admin/okr-master-list/:bu_id
func (h *AdminHandler) OKRMasterList(c *gin.Context) {
	buID, ok := pathID(c, "bu_id")
	if !ok {
		return
	}
	rows, err := h.adminService.OKRMasterList(c.Request.Context(), buID)
	h.respond(c, rows, err)
}

func (h *AdminHandler) respond(c *gin.Context, body any, err error) {
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, body)
}
