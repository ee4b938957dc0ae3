package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prepiq/prepiq-backend/internal/config"
	"github.com/prepiq/prepiq-backend/internal/model"
	"github.com/prepiq/prepiq-backend/internal/quiz"
	"github.com/prepiq/prepiq-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNoQuestions is returned when a subject/topic has no questions. The
// fetch fails closed: no fallback to another topic, no partial data.
var ErrNoQuestions = errors.New("no questions found")

// PracticeService orchestrates practice/quiz sessions: fetches the paper,
// owns the live session registry, and sinks finished results onto the
// persist queue.
type PracticeService struct {
	questionRepo *repository.QuestionRepository
	manager      *quiz.Manager
	rdb          *redis.Client
	cfg          *config.Config
	log          zerolog.Logger
}

// NewPracticeService creates a new PracticeService.
func NewPracticeService(
	questionRepo *repository.QuestionRepository,
	manager *quiz.Manager,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		questionRepo: questionRepo,
		manager:      manager,
		rdb:          rdb,
		cfg:          cfg,
		log:          log.With().Str("component", "practice_service").Logger(),
	}
}

// StartSession fetches the question list and opens a new in-memory session.
func (s *PracticeService) StartSession(ctx context.Context, userID int, req model.StartSessionRequest) (*quiz.Session, error) {
	records, err := s.questionRepo.ListBySubjectTopic(ctx, req.Subject, req.Topic)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]quiz.Question, 0, len(records))
	for i := range records {
		q := toEngineQuestion(&records[i])
		if !q.Gradable() {
			s.log.Warn().
				Str("question_id", q.ID).
				Str("subject", req.Subject).
				Msg("Malformed question in paper; will never grade correct")
		}
		questions = append(questions, q)
	}

	var engineCfg quiz.Config
	if req.Mode == model.ModeMockTest {
		engineCfg = quiz.MockTestConfig(s.cfg.MockTestDuration)
	} else {
		engineCfg = quiz.PracticeConfig()
	}

	sess := quiz.NewSession(userID, req.Subject, req.Topic, questions, engineCfg)
	mode := string(req.Mode)
	sess.SetFinishHandler(func(sum quiz.Summary) {
		s.submitResult(mode, sum)
	})
	s.manager.Put(sess)

	// Best-effort pointer for "resume where you left off" on the client.
	activeKey := config.CacheKey.UserActiveQuizKey(userID)
	if err := s.rdb.Set(ctx, activeKey, sess.ID.String(), s.cfg.JWTExpiry).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache active quiz pointer")
	}

	return sess, nil
}

// GetSession returns a live session, enforcing ownership.
func (s *PracticeService) GetSession(sessionID uuid.UUID, userID int) (*quiz.Session, error) {
	return s.manager.Get(sessionID, userID)
}

// AbandonSession discards a session, stopping its timer. No result is
// submitted for an abandoned attempt.
func (s *PracticeService) AbandonSession(ctx context.Context, sessionID uuid.UUID, userID int) error {
	if _, err := s.manager.Get(sessionID, userID); err != nil {
		return err
	}
	s.manager.Remove(sessionID)
	_ = s.rdb.Del(ctx, config.CacheKey.UserActiveQuizKey(userID)).Err()
	return nil
}

// ActiveSessionID returns the user's cached active session pointer, if any.
func (s *PracticeService) ActiveSessionID(ctx context.Context, userID int) (uuid.UUID, bool) {
	val, err := s.rdb.Get(ctx, config.CacheKey.UserActiveQuizKey(userID)).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	// The pointer may outlive the session (eviction, restart).
	if _, err := s.manager.Get(id, userID); err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Paper returns the session's questions stripped of answer keys and
// explanations.
func (s *PracticeService) Paper(sess *quiz.Session) []model.PaperQuestion {
	questions := sess.Questions()
	paper := make([]model.PaperQuestion, len(questions))
	for i, q := range questions {
		paper[i] = model.PaperQuestion{
			ID:        q.ID,
			Index:     i,
			Text:      q.Text,
			TextHindi: q.TextHindi,
			Options:   q.Options,
		}
	}
	return paper
}

// resultPayload is the wire format pushed onto the persist queue. The
// result worker decodes the same shape.
type resultPayload struct {
	SessionID string  `json:"session_id"`
	UserID    int     `json:"user_id"`
	Subject   string  `json:"subject"`
	Topic     string  `json:"topic,omitempty"`
	Mode      string  `json:"mode"`
	Total     int     `json:"total"`
	Attempted int     `json:"attempted"`
	Correct   int     `json:"correct"`
	Wrong     int     `json:"wrong"`
	Score     float64 `json:"score"`
	Accuracy  int     `json:"accuracy"`
	TimeTaken int     `json:"time_taken_seconds"`
	Finished  int64   `json:"finished_at_unix"`
}

// submitResult enqueues a finished summary for durable persistence.
// Fire-and-forget: a queue failure is logged and reported nowhere else —
// the session stays finished and the summary remains readable in memory.
func (s *PracticeService) submitResult(mode string, sum quiz.Summary) {
	payload := resultPayload{
		SessionID: sum.SessionID.String(),
		UserID:    sum.OwnerID,
		Subject:   sum.Subject,
		Topic:     sum.Topic,
		Mode:      mode,
		Total:     sum.Total,
		Attempted: sum.Attempted,
		Correct:   sum.Correct,
		Wrong:     sum.Wrong,
		Score:     sum.Score,
		Accuracy:  sum.Accuracy,
		TimeTaken: sum.TimeTaken,
		Finished:  sum.FinishedAt.Unix(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Msg("Marshal result payload failed")
		return
	}

	ctx := context.Background()
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).
			Str("session_id", payload.SessionID).
			Msg("Failed to enqueue result; summary remains in memory only")
	}
}

func toEngineQuestion(q *model.Question) quiz.Question {
	return quiz.Question{
		ID:               q.ID.String(),
		Text:             q.Text,
		TextHindi:        q.TextHindi,
		Options:          q.Options,
		CorrectAnswer:    q.CorrectAnswer,
		Explanation:      q.Explanation,
		ExplanationHindi: q.ExplanationHindi,
		Difficulty:       q.Difficulty,
		Subject:          q.Subject,
		Topic:            q.Topic,
	}
}
