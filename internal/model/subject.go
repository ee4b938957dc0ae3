package model

import "time"

// Subject represents an exam subject (Mathematics, Reasoning, ...).
type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Topic is a chapter within a subject, with its question count for the
// chapter-practice listing.
type Topic struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// CreateSubjectRequest is the payload for creating a subject.
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Icon string `json:"icon" binding:"omitempty,max=50"`
}

// UpdateSubjectRequest is the payload for updating a subject.
type UpdateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Icon string `json:"icon" binding:"omitempty,max=50"`
}
