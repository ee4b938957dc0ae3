package quiz

import (
	"reflect"
	"testing"
	"time"
)

func TestNegativeMarking(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	// 3 correct, 1 wrong out of 4.
	s.SelectAnswer("4")
	s.GoTo(1)
	s.SelectAnswer("Paris")
	s.GoTo(2)
	s.SelectAnswer("$9$")
	s.GoTo(3)
	s.SelectAnswer("Mars")
	s.Finish()

	sum := s.Summary()
	if sum == nil {
		t.Fatal("no summary")
	}
	if sum.Attempted != 4 || sum.Correct != 3 || sum.Wrong != 1 {
		t.Fatalf("attempted/correct/wrong = %d/%d/%d, want 4/3/1", sum.Attempted, sum.Correct, sum.Wrong)
	}
	if want := 3*1.0 - 1*0.25; sum.Score != want {
		t.Errorf("score = %v, want %v", sum.Score, want)
	}
	if sum.Accuracy != 75 {
		t.Errorf("accuracy = %d, want 75", sum.Accuracy)
	}
}

func TestNormalizedMatching(t *testing.T) {
	qs := []Question{
		{ID: "a", Text: "Q", Options: []string{"$4$ ", "5"}, CorrectAnswer: "4"},
		{ID: "b", Text: "Q", Options: []string{"Paris", "London"}, CorrectAnswer: " paris "},
	}
	s := newTimedSession(t, time.Hour, qs)

	s.SelectAnswer("$4$ ")
	s.GoTo(1)
	s.SelectAnswer("Paris")
	s.Finish()

	sum := s.Summary()
	if sum.Correct != 2 {
		t.Errorf("correct = %d, want 2 (normalization must bridge markup and spacing)", sum.Correct)
	}
}

func TestMalformedQuestionNeverCorrect(t *testing.T) {
	qs := []Question{
		{ID: "ok", Text: "Q", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		{ID: "no-key", Text: "Q", Options: []string{"A", "B"}, CorrectAnswer: "  "},
		{ID: "no-opts", Text: "Q", CorrectAnswer: "A"},
	}
	s := newTimedSession(t, time.Hour, qs)

	s.SelectAnswer("A")
	s.GoTo(1)
	s.SelectAnswer("  ") // matches the blank key byte-wise, still never correct
	s.GoTo(2)
	s.SelectAnswer("A")
	s.Finish()

	sum := s.Summary()
	if sum.Correct != 1 {
		t.Errorf("correct = %d, want 1", sum.Correct)
	}
	if sum.Wrong != 2 {
		t.Errorf("wrong = %d, want 2 (malformed records degrade to wrong, never crash)", sum.Wrong)
	}
}

func TestUnattemptedScoresZero(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())
	s.Finish()

	sum := s.Summary()
	if sum.Attempted != 0 || sum.Score != 0 || sum.Accuracy != 0 {
		t.Errorf("attempted/score/accuracy = %d/%v/%d, want 0/0/0", sum.Attempted, sum.Score, sum.Accuracy)
	}
	if sum.Total != 4 {
		t.Errorf("total = %d, want 4", sum.Total)
	}
}

func TestScoringIdempotent(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())
	s.SelectAnswer("4")
	s.GoTo(1)
	s.SelectAnswer("London")
	s.Finish()

	first := s.Summary()
	second := s.Summary()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("summaries differ between reads:\n%+v\n%+v", first, second)
	}

	// Finish again: the stored summary must not be recomputed or shifted.
	s.Finish()
	third := s.Summary()
	if !reflect.DeepEqual(first, third) {
		t.Errorf("summary changed after redundant Finish:\n%+v\n%+v", first, third)
	}
}

func TestSummaryReviewDetail(t *testing.T) {
	qs := []Question{
		{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4", Explanation: "Basic addition."},
		{ID: "q2", Text: "Capital?", Options: []string{"Paris", "London"}, CorrectAnswer: "Paris"},
	}
	s := newTimedSession(t, time.Hour, qs)
	s.SelectAnswer("3")
	s.Finish()

	sum := s.Summary()
	if len(sum.Questions) != 2 {
		t.Fatalf("review rows = %d, want 2", len(sum.Questions))
	}

	q1 := sum.Questions[0]
	if !q1.Attempted || q1.Correct || q1.Selected != "3" || q1.Explanation != "Basic addition." {
		t.Errorf("q1 review row wrong: %+v", q1)
	}
	q2 := sum.Questions[1]
	if q2.Attempted || q2.Correct || q2.Selected != "" {
		t.Errorf("q2 review row wrong: %+v", q2)
	}
}

func TestTimeTaken(t *testing.T) {
	s := newTimedSession(t, 10*time.Second, fourQuestions())
	s.tick()
	s.tick()
	s.tick()
	s.Finish()

	if sum := s.Summary(); sum.TimeTaken != 3 {
		t.Errorf("timeTaken = %d, want 3", sum.TimeTaken)
	}
}
