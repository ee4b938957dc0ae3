package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepiq/prepiq-backend/internal/middleware"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/response"
	"github.com/prepiq/prepiq-backend/internal/service"
	"github.com/prepiq/prepiq-backend/internal/validator"
)

// ReportHandler handles question flagging and admin triage.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ListReasons godoc
// GET /api/v1/reports/reasons
// Returns the preset reasons offered by the report dialog.
func (h *ReportHandler) ListReasons(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"reasons": model.ReportReasons})
}

// FileReport godoc
// POST /api/v1/questions/:id/report
// Flags a question issue. The report opens in PENDING status.
func (h *ReportHandler) FileReport(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReportQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rep, err := h.reportService.FileReport(c.Request.Context(), questionID, claims.UserID, req.Reason)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"report": rep})
}

// ListPendingReports godoc
// GET /api/v1/admin/reports?page=&per_page=
func (h *ReportHandler) ListPendingReports(c *gin.Context) {
	page, perPage := pageParams(c)

	reports, total, err := h.reportService.ListPending(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"reports": reports}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// ResolveReport godoc
// PATCH /api/v1/admin/reports/:id
// Closes a report as RESOLVED or REJECTED.
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ResolveReportRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.reportService.Resolve(c.Request.Context(), id, req.Status); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
