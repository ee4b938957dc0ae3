package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prepiq/prepiq-backend/internal/config"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// topicsCacheTTL bounds how stale the chapter listing can get after
// question edits; there is no active invalidation.
const topicsCacheTTL = 5 * time.Minute

type SubjectService struct {
	subjectRepo  *repository.SubjectRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo:  subjectRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) GetAll(ctx context.Context) ([]model.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

// GetTopics lists a subject's chapters with question counts, cached in
// Redis since the listing is read on every practice setup screen.
func (s *SubjectService) GetTopics(ctx context.Context, subject string) ([]model.Topic, error) {
	cacheKey := config.CacheKey.SubjectTopicsKey(subject)

	if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var topics []model.Topic
		if err := json.Unmarshal([]byte(raw), &topics); err == nil {
			return topics, nil
		}
	}

	topics, err := s.questionRepo.ListTopics(ctx, subject)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(topics); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, raw, topicsCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("subject", subject).Msg("Failed to cache topics")
		}
	}

	return topics, nil
}

func (s *SubjectService) Create(ctx context.Context, sub *model.Subject) error {
	return s.subjectRepo.Create(ctx, sub)
}

func (s *SubjectService) Update(ctx context.Context, sub *model.Subject) error {
	return s.subjectRepo.Update(ctx, sub)
}

func (s *SubjectService) Delete(ctx context.Context, id int) error {
	return s.subjectRepo.Delete(ctx, id)
}
