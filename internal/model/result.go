package model

import (
	"time"

	"github.com/google/uuid"
)

// PracticeResult is a persisted summary of a finished session.
type PracticeResult struct {
	ID         uuid.UUID `json:"id"`
	SessionID  uuid.UUID `json:"session_id"`
	UserID     int       `json:"user_id"`
	Subject    string    `json:"subject"`
	Topic      string    `json:"topic,omitempty"`
	Mode       string    `json:"mode"`
	Total      int       `json:"total"`
	Attempted  int       `json:"attempted"`
	Correct    int       `json:"correct"`
	Wrong      int       `json:"wrong"`
	Score      float64   `json:"score"`
	Accuracy   int       `json:"accuracy"`
	TimeTaken  int       `json:"time_taken_seconds"`
	FinishedAt time.Time `json:"finished_at"`
}
