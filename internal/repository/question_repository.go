package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepiq/prepiq-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, subject, topic, text, text_hindi, options, correct_answer,
	explanation, explanation_hindi, difficulty, exam_reference, order_num, created_at, updated_at`

func scanQuestion(row interface{ Scan(...any) error }) (model.Question, error) {
	var q model.Question
	err := row.Scan(&q.ID, &q.Subject, &q.Topic, &q.Text, &q.TextHindi, &q.Options,
		&q.CorrectAnswer, &q.Explanation, &q.ExplanationHindi, &q.Difficulty,
		&q.ExamReference, &q.OrderNum, &q.CreatedAt, &q.UpdatedAt)
	return q, err
}

// ListBySubjectTopic retrieves questions for a subject, optionally filtered
// by topic, ordered by order_num. Question order is preserved as session
// order; the engine never reorders.
func (r *QuestionRepository) ListBySubjectTopic(ctx context.Context, subject, topic string) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE subject = $1`
	args := []any{subject}
	if topic != "" {
		query += ` AND topic = $2`
		args = append(args, topic)
	}
	query += ` ORDER BY order_num, created_at`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	q, err := scanQuestion(row)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListPaginated retrieves questions for the admin console.
func (r *QuestionRepository) ListPaginated(ctx context.Context, subject, topic string, limit, offset int) ([]model.Question, int, error) {
	countQuery := `SELECT COUNT(*) FROM questions WHERE 1=1`
	dataQuery := `SELECT ` + questionColumns + ` FROM questions WHERE 1=1`
	var args []any
	argIdx := 1

	if subject != "" {
		cond := ` AND subject = $` + strconv.Itoa(argIdx)
		countQuery += cond
		dataQuery += cond
		args = append(args, subject)
		argIdx++
	}
	if topic != "" {
		cond := ` AND topic = $` + strconv.Itoa(argIdx)
		countQuery += cond
		dataQuery += cond
		args = append(args, topic)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataQuery += ` ORDER BY subject, topic, order_num LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (subject, topic, text, text_hindi, options, correct_answer,
		   explanation, explanation_hindi, difficulty, exam_reference, order_num)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		q.Subject, q.Topic, q.Text, q.TextHindi, q.Options, q.CorrectAnswer,
		q.Explanation, q.ExplanationHindi, q.Difficulty, q.ExamReference, q.OrderNum,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update rewrites a question's mutable fields.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET text = $1, text_hindi = $2, options = $3, correct_answer = $4,
		     explanation = $5, explanation_hindi = $6, difficulty = $7,
		     exam_reference = $8, order_num = $9, updated_at = NOW()
		 WHERE id = $10`,
		q.Text, q.TextHindi, q.Options, q.CorrectAnswer, q.Explanation,
		q.ExplanationHindi, q.Difficulty, q.ExamReference, q.OrderNum, q.ID,
	)
	return err
}

// Delete removes a question.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// ListTopics returns the distinct topics under a subject with their
// question counts, for the chapter listing.
func (r *QuestionRepository) ListTopics(ctx context.Context, subject string) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT topic, COUNT(*) FROM questions
		 WHERE subject = $1
		 GROUP BY topic
		 ORDER BY topic`, subject,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Name, &t.QuestionCount); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}
