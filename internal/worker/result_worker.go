package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepiq/prepiq-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// ResultWorker drains finished session summaries off the Redis persist
// queue into PostgreSQL. Finishing a session never blocks on the database:
// the engine enqueues and moves on; durability happens here.
type ResultWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewResultWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "result_worker").Logger(),
	}
}

// resultPayload mirrors the shape pushed by the practice service.
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

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*resultPayload, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p resultPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// ----------------------------------------------------------------
// Batch insert wrapper
// ----------------------------------------------------------------

func (w *ResultWorker) flushSafe(ctx context.Context, batch []*resultPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsertResults(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk result insert failed, using fallback")

		for _, p := range batch {
			if err := w.persistSingle(ctx, p); err != nil {
				w.log.Error().Err(err).Msg("persistSingle failed — requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
	}
}

// ----------------------------------------------------------------
// BULK PostgreSQL INSERT using UNNEST + alias
// ----------------------------------------------------------------

func (w *ResultWorker) bulkInsertResults(ctx context.Context, batch []*resultPayload) error {
	n := len(batch)

	sessionIDs := make([]uuid.UUID, 0, n)
	userIDs := make([]int, 0, n)
	subjects := make([]string, 0, n)
	topics := make([]string, 0, n)
	modes := make([]string, 0, n)
	totals := make([]int, 0, n)
	attempteds := make([]int, 0, n)
	corrects := make([]int, 0, n)
	wrongs := make([]int, 0, n)
	scores := make([]float64, 0, n)
	accuracies := make([]int, 0, n)
	timeTakens := make([]int, 0, n)
	finishedAts := make([]time.Time, 0, n)

	for _, p := range batch {
		sID, err := uuid.Parse(p.SessionID)
		if err != nil {
			return err
		}
		sessionIDs = append(sessionIDs, sID)
		userIDs = append(userIDs, p.UserID)
		subjects = append(subjects, p.Subject)
		topics = append(topics, p.Topic)
		modes = append(modes, p.Mode)
		totals = append(totals, p.Total)
		attempteds = append(attempteds, p.Attempted)
		corrects = append(corrects, p.Correct)
		wrongs = append(wrongs, p.Wrong)
		scores = append(scores, p.Score)
		accuracies = append(accuracies, p.Accuracy)
		timeTakens = append(timeTakens, p.TimeTaken)
		finishedAts = append(finishedAts, time.Unix(p.Finished, 0))
	}

	query := `
		INSERT INTO practice_results
			(session_id, user_id, subject, topic, mode, total, attempted,
			 correct, wrong, score, accuracy, time_taken_seconds, finished_at)
		SELECT * FROM UNNEST(
			$1::uuid[],
			$2::int[],
			$3::text[],
			$4::text[],
			$5::text[],
			$6::int[],
			$7::int[],
			$8::int[],
			$9::int[],
			$10::float8[],
			$11::int[],
			$12::int[],
			$13::timestamptz[]
		)
		ON CONFLICT (session_id) DO NOTHING
	`

	_, err := w.pool.Exec(ctx, query,
		sessionIDs, userIDs, subjects, topics, modes, totals, attempteds,
		corrects, wrongs, scores, accuracies, timeTakens, finishedAts,
	)
	return err
}

// ----------------------------------------------------------------
// FALLBACK single insert
// ----------------------------------------------------------------

func (w *ResultWorker) persistSingle(ctx context.Context, p *resultPayload) error {
	sID, err := uuid.Parse(p.SessionID)
	if err != nil {
		return err
	}

	_, err = w.pool.Exec(ctx,
		`INSERT INTO practice_results
			(session_id, user_id, subject, topic, mode, total, attempted,
			 correct, wrong, score, accuracy, time_taken_seconds, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (session_id) DO NOTHING`,
		sID, p.UserID, p.Subject, p.Topic, p.Mode, p.Total, p.Attempted,
		p.Correct, p.Wrong, p.Score, p.Accuracy, p.TimeTaken, time.Unix(p.Finished, 0),
	)

	return err
}
