package service

import (
	"context"

	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/repository"
)

// ResultService reads persisted practice history.
type ResultService struct {
	resultRepo *repository.ResultRepository
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo}
}

// History retrieves a user's finished results, newest first.
func (s *ResultService) History(ctx context.Context, userID, page, perPage int) ([]model.PracticeResult, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.resultRepo.ListByUser(ctx, userID, perPage, (page-1)*perPage)
}
