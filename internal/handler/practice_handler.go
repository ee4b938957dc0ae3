package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepiq/prepiq-backend/internal/middleware"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/quiz"
	"github.com/prepiq/prepiq-backend/internal/response"
	"github.com/prepiq/prepiq-backend/internal/service"
	"github.com/prepiq/prepiq-backend/internal/validator"
)

// PracticeHandler drives live practice and mock-test sessions over REST.
// Every mutating endpoint returns a fresh snapshot so the client palette
// never drifts from server state.
type PracticeHandler struct {
	practiceService *service.PracticeService
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// session resolves the :session_id route param to a live session owned by
// the caller. Writes the error response itself; callers bail on nil.
func (h *PracticeHandler) session(c *gin.Context) *quiz.Session {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil
	}

	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil
	}

	sess, err := h.practiceService.GetSession(id, claims.UserID)
	if err != nil {
		if errors.Is(err, quiz.ErrNotSessionOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
			return nil
		}
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return nil
	}
	return sess
}

// StartSession godoc
// POST /api/v1/practice/sessions
// Opens a new session over the requested subject/topic and returns the
// paper (questions without answer keys) plus the initial snapshot.
func (h *PracticeHandler) StartSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sess, err := h.practiceService.StartSession(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"paper":      h.practiceService.Paper(sess),
		"snapshot":   sess.Snapshot(),
	})
}

// GetActiveSession godoc
// GET /api/v1/practice/sessions/active
// Returns the caller's live session pointer, for "resume where you left off".
func (h *PracticeHandler) GetActiveSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := h.practiceService.ActiveSessionID(c.Request.Context(), claims.UserID)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session_id": id})
}

// GetSnapshot godoc
// GET /api/v1/practice/sessions/:session_id
func (h *PracticeHandler) GetSnapshot(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// GetPaper godoc
// GET /api/v1/practice/sessions/:session_id/paper
// Returns the question list stripped of answer keys and explanations.
func (h *PracticeHandler) GetPaper(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"paper": h.practiceService.Paper(sess)})
}

// SelectAnswer godoc
// POST /api/v1/practice/sessions/:session_id/answer
// Records an option for the current question. In practice mode the first
// selection locks.
func (h *PracticeHandler) SelectAnswer(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !sess.SelectAnswer(req.Option) {
		if sess.Finished() {
			response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		} else {
			response.Fail(c, http.StatusConflict, response.ErrAnswerLocked)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// ClearAnswer godoc
// POST /api/v1/practice/sessions/:session_id/clear
func (h *PracticeHandler) ClearAnswer(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	if sess.Finished() {
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		return
	}
	sess.ClearAnswer()
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// GoTo godoc
// POST /api/v1/practice/sessions/:session_id/goto
// Jumps to a question by index. Out-of-range indices are a no-op.
func (h *PracticeHandler) GoTo(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	var req model.GoToRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if sess.Finished() {
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		return
	}
	sess.GoTo(req.Index)
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// Next godoc
// POST /api/v1/practice/sessions/:session_id/next
// Advances one question. In practice mode, advancing past the last
// question finishes the session.
func (h *PracticeHandler) Next(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	if sess.Finished() {
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		return
	}
	sess.Next()
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// Prev godoc
// POST /api/v1/practice/sessions/:session_id/prev
func (h *PracticeHandler) Prev(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	if sess.Finished() {
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		return
	}
	sess.Prev()
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// MarkForReview godoc
// POST /api/v1/practice/sessions/:session_id/mark-review
// Flags the current question for review and advances.
func (h *PracticeHandler) MarkForReview(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	if sess.Finished() {
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		return
	}
	sess.MarkForReviewAndNext()
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// ToggleBookmark godoc
// POST /api/v1/practice/sessions/:session_id/bookmark
func (h *PracticeHandler) ToggleBookmark(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	if sess.Finished() {
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
		return
	}
	sess.ToggleBookmark()
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// Finish godoc
// POST /api/v1/practice/sessions/:session_id/finish
// Submits the session: grades it, stops the clock, returns the summary.
// Idempotent — finishing a finished session re-returns the same summary.
func (h *PracticeHandler) Finish(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	sess.Finish()
	summary := sess.Summary()
	if summary == nil {
		// Only possible for an empty paper, which StartSession rejects.
		response.Fail(c, http.StatusConflict, response.ErrSessionNotFinished)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// GetResult godoc
// GET /api/v1/practice/sessions/:session_id/result
// Returns the graded summary with per-question review detail.
func (h *PracticeHandler) GetResult(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}

	summary := sess.Summary()
	if summary == nil {
		response.Fail(c, http.StatusConflict, response.ErrSessionNotFinished)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Restart godoc
// POST /api/v1/practice/sessions/:session_id/restart
// Discards all progress and reopens the same paper from question one.
func (h *PracticeHandler) Restart(c *gin.Context) {
	sess := h.session(c)
	if sess == nil {
		return
	}
	sess.Restart()
	response.Success(c, http.StatusOK, gin.H{"snapshot": sess.Snapshot()})
}

// AbandonSession godoc
// DELETE /api/v1/practice/sessions/:session_id
// Discards the session without grading. No result is persisted.
func (h *PracticeHandler) AbandonSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.practiceService.AbandonSession(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, quiz.ErrNotSessionOwner) {
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
