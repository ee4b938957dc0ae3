package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/repository"
)

// QuestionService handles admin question management.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

func (s *QuestionService) List(ctx context.Context, subject, topic string, page, perPage int) ([]model.Question, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.questionRepo.ListPaginated(ctx, subject, topic, perPage, (page-1)*perPage)
}

func (s *QuestionService) Create(ctx context.Context, req model.CreateQuestionRequest) (*model.Question, error) {
	q := &model.Question{
		Subject:          req.Subject,
		Topic:            req.Topic,
		Text:             req.Text,
		TextHindi:        req.TextHindi,
		Options:          req.Options,
		CorrectAnswer:    req.CorrectAnswer,
		Explanation:      req.Explanation,
		ExplanationHindi: req.ExplanationHindi,
		Difficulty:       req.Difficulty,
		ExamReference:    req.ExamReference,
		OrderNum:         req.OrderNum,
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != "" {
		q.Text = req.Text
	}
	if req.TextHindi != "" {
		q.TextHindi = req.TextHindi
	}
	if len(req.Options) > 0 {
		q.Options = req.Options
	}
	if req.CorrectAnswer != "" {
		q.CorrectAnswer = req.CorrectAnswer
	}
	if req.Explanation != "" {
		q.Explanation = req.Explanation
	}
	if req.ExplanationHindi != "" {
		q.ExplanationHindi = req.ExplanationHindi
	}
	if req.Difficulty != "" {
		q.Difficulty = req.Difficulty
	}
	if req.ExamReference != "" {
		q.ExamReference = req.ExamReference
	}
	if req.OrderNum != nil {
		q.OrderNum = *req.OrderNum
	}

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, id)
}
