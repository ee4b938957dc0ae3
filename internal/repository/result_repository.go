package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepiq/prepiq-backend/internal/model"
)

// ResultRepository reads persisted practice results (writes go through the
// result worker's batch path).
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// ListByUser retrieves a user's finished results, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID, limit, offset int) ([]model.PracticeResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM practice_results WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, user_id, subject, topic, mode, total, attempted,
		        correct, wrong, score, accuracy, time_taken_seconds, finished_at
		 FROM practice_results
		 WHERE user_id = $1
		 ORDER BY finished_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.PracticeResult
	for rows.Next() {
		var p model.PracticeResult
		if err := rows.Scan(&p.ID, &p.SessionID, &p.UserID, &p.Subject, &p.Topic,
			&p.Mode, &p.Total, &p.Attempted, &p.Correct, &p.Wrong, &p.Score,
			&p.Accuracy, &p.TimeTaken, &p.FinishedAt); err != nil {
			return nil, 0, err
		}
		results = append(results, p)
	}
	return results, total, rows.Err()
}
