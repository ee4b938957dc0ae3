package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus tracks the triage state of a flagged question.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusResolved ReportStatus = "RESOLVED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

// Preset report reasons offered by the client. "Other" carries free text.
var ReportReasons = []string{
	"Wrong Answer Key",
	"Typo / Spelling Mistake",
	"Incomplete Question",
	"Out of Syllabus",
	"Other",
}

// QuestionReport is a user-flagged issue on a question.
type QuestionReport struct {
	ID         uuid.UUID    `json:"id"`
	QuestionID uuid.UUID    `json:"question_id"`
	UserID     int          `json:"user_id"`
	Subject    string       `json:"subject"`
	Topic      string       `json:"topic"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	ReportedAt time.Time    `json:"reported_at"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
}

// ReportQuestionRequest is the payload for flagging a question.
type ReportQuestionRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// ResolveReportRequest is the admin payload for triaging a report.
type ResolveReportRequest struct {
	Status ReportStatus `json:"status" binding:"required,oneof=RESOLVED REJECTED"`
}
