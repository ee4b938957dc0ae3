package quiz

// Question is a single multiple-choice question as loaded into a session.
// Immutable once the session is created. Text fields may contain inline
// math markup delimited by $...$, rendered by the frontend.
type Question struct {
	ID               string   `json:"id"`
	Text             string   `json:"text"`
	TextHindi        string   `json:"text_hindi,omitempty"`
	Options          []string `json:"options"`
	CorrectAnswer    string   `json:"correct_answer"`
	Explanation      string   `json:"explanation,omitempty"`
	ExplanationHindi string   `json:"explanation_hindi,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Subject          string   `json:"subject,omitempty"`
	Topic            string   `json:"topic,omitempty"`
}

// Gradable reports whether the question carries enough data to ever grade
// an answer as correct. A malformed record (no options, or an empty answer
// key) stays displayable but grades as wrong whenever attempted.
func (q *Question) Gradable() bool {
	return len(q.Options) > 0 && Normalize(q.CorrectAnswer) != ""
}
