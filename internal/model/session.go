package model

// SessionMode selects the engine behavior for a new session.
type SessionMode string

const (
	ModeMockTest SessionMode = "mock_test"
	ModePractice SessionMode = "practice"
)

// StartSessionRequest is the payload for opening a practice/quiz session.
type StartSessionRequest struct {
	Subject string      `json:"subject" binding:"required,min=2,max=100"`
	Topic   string      `json:"topic" binding:"omitempty,min=2,max=100"`
	Mode    SessionMode `json:"mode" binding:"required,oneof=mock_test practice"`
}

// SelectAnswerRequest records an option for the current question.
type SelectAnswerRequest struct {
	Option string `json:"option" binding:"required,max=500"`
}

// GoToRequest jumps to a question by index.
type GoToRequest struct {
	Index int `json:"index" binding:"min=0"`
}
