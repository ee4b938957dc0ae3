package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepiq/prepiq-backend/internal/middleware"
	"github.com/prepiq/prepiq-backend/internal/response"
	"github.com/prepiq/prepiq-backend/internal/service"
)

// ResultHandler serves persisted practice history.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// History godoc
// GET /api/v1/results?page=&per_page=
// Lists the caller's finished results, newest first. Results appear here
// once the persist worker has drained them from the queue.
func (h *ResultHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := pageParams(c)

	results, total, err := h.resultService.History(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	totalPages := (total + perPage - 1) / perPage
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}
