package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepiq/prepiq-backend/internal/model"
)

// ReportRepository handles flagged-question data access.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create files a new report with PENDING status.
func (r *ReportRepository) Create(ctx context.Context, rep *model.QuestionReport) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO question_reports (question_id, user_id, subject, topic, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, reported_at`,
		rep.QuestionID, rep.UserID, rep.Subject, rep.Topic, rep.Reason, rep.Status,
	).Scan(&rep.ID, &rep.ReportedAt)
}

// ListByStatus retrieves reports for admin triage, oldest first.
func (r *ReportRepository) ListByStatus(ctx context.Context, status model.ReportStatus, limit, offset int) ([]model.QuestionReport, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM question_reports WHERE status = $1`, status,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, user_id, subject, topic, reason, status, reported_at, resolved_at
		 FROM question_reports
		 WHERE status = $1
		 ORDER BY reported_at
		 LIMIT $2 OFFSET $3`, status, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reports []model.QuestionReport
	for rows.Next() {
		var rep model.QuestionReport
		if err := rows.Scan(&rep.ID, &rep.QuestionID, &rep.UserID, &rep.Subject,
			&rep.Topic, &rep.Reason, &rep.Status, &rep.ReportedAt, &rep.ResolvedAt); err != nil {
			return nil, 0, err
		}
		reports = append(reports, rep)
	}
	return reports, total, rows.Err()
}

// SetStatus resolves or rejects a report.
func (r *ReportRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ReportStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE question_reports SET status = $1, resolved_at = NOW() WHERE id = $2`,
		status, id,
	)
	return err
}
