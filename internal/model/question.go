package model

import (
	"time"

	"github.com/google/uuid"
)

// Question represents a practice question as stored in PostgreSQL.
// Options is an ordered list; its order drives the A/B/C/D labels.
type Question struct {
	ID               uuid.UUID `json:"id"`
	Subject          string    `json:"subject"`
	Topic            string    `json:"topic"`
	Text             string    `json:"text"`
	TextHindi        string    `json:"text_hindi,omitempty"`
	Options          []string  `json:"options"`
	CorrectAnswer    string    `json:"correct_answer"`
	Explanation      string    `json:"explanation,omitempty"`
	ExplanationHindi string    `json:"explanation_hindi,omitempty"`
	Difficulty       string    `json:"difficulty,omitempty"`
	ExamReference    string    `json:"exam_reference,omitempty"`
	OrderNum         int       `json:"order_num"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PaperQuestion is a question as sent to a client taking a session:
// no answer key, no explanation.
type PaperQuestion struct {
	ID        string   `json:"id"`
	Index     int      `json:"index"`
	Text      string   `json:"text"`
	TextHindi string   `json:"text_hindi,omitempty"`
	Options   []string `json:"options"`
}

// CreateQuestionRequest is the admin payload for adding a question.
type CreateQuestionRequest struct {
	Subject          string   `json:"subject" binding:"required,min=2,max=100"`
	Topic            string   `json:"topic" binding:"required,min=2,max=100"`
	Text             string   `json:"text" binding:"required,min=1,max=4000"`
	TextHindi        string   `json:"text_hindi" binding:"omitempty,max=4000"`
	Options          []string `json:"options" binding:"required,min=2,max=6,dive,required,max=500"`
	CorrectAnswer    string   `json:"correct_answer" binding:"required,max=500"`
	Explanation      string   `json:"explanation" binding:"omitempty,max=4000"`
	ExplanationHindi string   `json:"explanation_hindi" binding:"omitempty,max=4000"`
	Difficulty       string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	ExamReference    string   `json:"exam_reference" binding:"omitempty,max=200"`
	OrderNum         int      `json:"order_num" binding:"min=0"`
}

// UpdateQuestionRequest is the admin payload for editing a question.
type UpdateQuestionRequest struct {
	Text             string   `json:"text" binding:"omitempty,min=1,max=4000"`
	TextHindi        string   `json:"text_hindi" binding:"omitempty,max=4000"`
	Options          []string `json:"options" binding:"omitempty,min=2,max=6,dive,required,max=500"`
	CorrectAnswer    string   `json:"correct_answer" binding:"omitempty,max=500"`
	Explanation      string   `json:"explanation" binding:"omitempty,max=4000"`
	ExplanationHindi string   `json:"explanation_hindi" binding:"omitempty,max=4000"`
	Difficulty       string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	ExamReference    string   `json:"exam_reference" binding:"omitempty,max=200"`
	OrderNum         *int     `json:"order_num" binding:"omitempty,min=0"`
}
