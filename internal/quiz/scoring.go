package quiz

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// QuestionResult is the per-question detail for the review screen.
type QuestionResult struct {
	QuestionID       string `json:"question_id"`
	Text             string `json:"text"`
	Options          []string `json:"options"`
	Selected         string `json:"selected,omitempty"`
	CorrectAnswer    string `json:"correct_answer"`
	Attempted        bool   `json:"attempted"`
	Correct          bool   `json:"correct"`
	Explanation      string `json:"explanation,omitempty"`
	ExplanationHindi string `json:"explanation_hindi,omitempty"`
}

// Summary is the graded outcome of a finished session.
type Summary struct {
	SessionID  uuid.UUID        `json:"session_id"`
	OwnerID    int              `json:"owner_id"`
	Subject    string           `json:"subject"`
	Topic      string           `json:"topic,omitempty"`
	Total      int              `json:"total"`
	Attempted  int              `json:"attempted"`
	Correct    int              `json:"correct"`
	Wrong      int              `json:"wrong"`
	Score      float64          `json:"score"`
	Accuracy   int              `json:"accuracy"`
	TimeTaken  int              `json:"time_taken_seconds"`
	FinishedAt time.Time        `json:"finished_at"`
	Questions  []QuestionResult `json:"questions"`
}

// gradeLocked computes the summary from the current answers. Pure over
// the session state: grading the same finished state twice yields an
// identical result. Requires s.mu.
func (s *Session) gradeLocked() *Summary {
	sum := &Summary{
		SessionID:  s.ID,
		OwnerID:    s.OwnerID,
		Subject:    s.Subject,
		Topic:      s.Topic,
		Total:      len(s.questions),
		FinishedAt: s.finishedAt,
		Questions:  make([]QuestionResult, 0, len(s.questions)),
	}
	if s.cfg.Timed {
		sum.TimeTaken = int(s.cfg.Duration/time.Second) - s.timeLeft
	}

	for i := range s.questions {
		q := &s.questions[i]
		selected, attempted := s.answers[q.ID]

		res := QuestionResult{
			QuestionID:       q.ID,
			Text:             q.Text,
			Options:          q.Options,
			Selected:         selected,
			CorrectAnswer:    q.CorrectAnswer,
			Attempted:        attempted,
			Explanation:      q.Explanation,
			ExplanationHindi: q.ExplanationHindi,
		}
		if attempted {
			sum.Attempted++
			if q.Gradable() && Normalize(selected) == Normalize(q.CorrectAnswer) {
				res.Correct = true
				sum.Correct++
			} else {
				sum.Wrong++
			}
		}
		sum.Questions = append(sum.Questions, res)
	}

	sum.Score = float64(sum.Correct)*s.cfg.CorrectWeight - float64(sum.Wrong)*s.cfg.NegativeWeight
	if sum.Attempted > 0 {
		sum.Accuracy = int(math.Round(float64(sum.Correct) / float64(sum.Attempted) * 100))
	}
	return sum
}
