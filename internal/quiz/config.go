package quiz

import "time"

// Default marking weights for timed mock tests.
const (
	DefaultCorrectWeight  = 1.0
	DefaultNegativeWeight = 0.25
)

// Config selects between the timed mock-test and untimed chapter-practice
// behaviors without branching the engine ad hoc.
type Config struct {
	// Timed enables the countdown. Duration is ignored when false.
	Timed    bool
	Duration time.Duration

	// AllowAnswerChange permits overwriting a recorded answer. Practice
	// mode locks the first selection; mock tests allow changing.
	AllowAnswerChange bool

	// CorrectWeight and NegativeWeight drive the signed score. Practice
	// mode uses zero NegativeWeight and reports accuracy only.
	CorrectWeight  float64
	NegativeWeight float64

	// IndependentBookmarks tracks "marked for review" as a flag separate
	// from the answered status. When false, marking a question collapses
	// its status to marked_for_review even if it was answered.
	IndependentBookmarks bool

	// FinishOnLastNext makes Next() on the final question finish the
	// session (single-question practice flow). Mock tests require an
	// explicit submit instead.
	FinishOnLastNext bool
}

// MockTestConfig returns the timed mock-test configuration.
func MockTestConfig(duration time.Duration) Config {
	return Config{
		Timed:             true,
		Duration:          duration,
		AllowAnswerChange: true,
		CorrectWeight:     DefaultCorrectWeight,
		NegativeWeight:    DefaultNegativeWeight,
	}
}

// PracticeConfig returns the untimed chapter-practice configuration.
func PracticeConfig() Config {
	return Config{
		AllowAnswerChange:    false,
		CorrectWeight:        DefaultCorrectWeight,
		NegativeWeight:       0,
		IndependentBookmarks: true,
		FinishOnLastNext:     true,
	}
}
