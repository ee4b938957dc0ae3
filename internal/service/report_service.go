package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ReportService handles user-flagged question issues.
type ReportService struct {
	reportRepo   *repository.ReportRepository
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo *repository.ReportRepository, questionRepo *repository.QuestionRepository, log zerolog.Logger) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "report_service").Logger(),
	}
}

// FileReport flags a question. The subject/topic snapshot is denormalized
// onto the report so triage survives question edits.
func (s *ReportService) FileReport(ctx context.Context, questionID uuid.UUID, userID int, reason string) (*model.QuestionReport, error) {
	q, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	rep := &model.QuestionReport{
		QuestionID: questionID,
		UserID:     userID,
		Subject:    q.Subject,
		Topic:      q.Topic,
		Reason:     reason,
		Status:     model.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.log.Info().
		Str("question_id", questionID.String()).
		Int("user_id", userID).
		Str("reason", reason).
		Msg("Question flagged")

	return rep, nil
}

// ListPending retrieves reports awaiting triage.
func (s *ReportService) ListPending(ctx context.Context, page, perPage int) ([]model.QuestionReport, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.reportRepo.ListByStatus(ctx, model.ReportStatusPending, perPage, (page-1)*perPage)
}

// Resolve closes a report as RESOLVED or REJECTED.
func (s *ReportService) Resolve(ctx context.Context, id uuid.UUID, status model.ReportStatus) error {
	return s.reportRepo.SetStatus(ctx, id, status)
}
