package quiz

import (
	"reflect"
	"testing"
	"time"
)

func fourQuestions() []Question {
	return []Question{
		{ID: "q1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{ID: "q2", Text: "Capital of France?", Options: []string{"Paris", "London"}, CorrectAnswer: "Paris"},
		{ID: "q3", Text: "$3^2$?", Options: []string{"$9$", "$6$"}, CorrectAnswer: "9"},
		{ID: "q4", Text: "Largest planet?", Options: []string{"Mars", "Jupiter"}, CorrectAnswer: "Jupiter"},
	}
}

// newUntimedMockSession builds a mock-test session without a live ticker
// so tests can drive the countdown deterministically via tick().
func newTimedSession(t *testing.T, d time.Duration, qs []Question) *Session {
	t.Helper()
	s := NewSession(1, "Mathematics", "", qs, MockTestConfig(d))
	s.Close() // stop the wall-clock ticker; tests call tick() directly
	return s
}

func TestInitialStatus(t *testing.T) {
	s := NewSession(1, "Mathematics", "algebra", fourQuestions(), PracticeConfig())
	snap := s.Snapshot()

	if snap.CurrentIndex != 0 {
		t.Fatalf("currentIndex = %d, want 0", snap.CurrentIndex)
	}
	if snap.Status["q1"] != StatusVisited {
		t.Errorf("q1 status = %s, want visited", snap.Status["q1"])
	}
	for _, id := range []string{"q2", "q3", "q4"} {
		if snap.Status[id] != StatusNotVisited {
			t.Errorf("%s status = %s, want not_visited", id, snap.Status[id])
		}
	}
	if snap.Finished {
		t.Error("fresh session must not be finished")
	}
}

func TestAnswerStatusConsistency(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.SelectAnswer("4")
	snap := s.Snapshot()
	if snap.Status["q1"] != StatusAnswered {
		t.Fatalf("q1 status = %s, want answered", snap.Status["q1"])
	}
	if snap.Answers["q1"] != "4" {
		t.Fatalf("q1 answer = %q, want 4", snap.Answers["q1"])
	}

	s.ClearAnswer()
	snap = s.Snapshot()
	if snap.Status["q1"] != StatusVisited {
		t.Errorf("cleared q1 status = %s, want visited (never not_visited)", snap.Status["q1"])
	}
	if _, ok := snap.Answers["q1"]; ok {
		t.Error("cleared answer still present")
	}
}

func TestNavigationUpgradesStatus(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.GoTo(2)
	snap := s.Snapshot()
	if snap.CurrentIndex != 2 {
		t.Fatalf("currentIndex = %d, want 2", snap.CurrentIndex)
	}
	if snap.Status["q3"] != StatusVisited {
		t.Errorf("q3 status = %s, want visited", snap.Status["q3"])
	}
	// q2 was skipped over, never current.
	if snap.Status["q2"] != StatusNotVisited {
		t.Errorf("q2 status = %s, want not_visited", snap.Status["q2"])
	}
}

func TestBoundaryNavigation(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())
	s.GoTo(1)

	s.GoTo(-1)
	if snap := s.Snapshot(); snap.CurrentIndex != 1 {
		t.Errorf("GoTo(-1) moved currentIndex to %d", snap.CurrentIndex)
	}
	s.GoTo(4)
	if snap := s.Snapshot(); snap.CurrentIndex != 1 {
		t.Errorf("GoTo(len) moved currentIndex to %d", snap.CurrentIndex)
	}

	s.GoTo(0)
	s.Prev() // clamped at the start
	if snap := s.Snapshot(); snap.CurrentIndex != 0 {
		t.Errorf("Prev at index 0 moved to %d", snap.CurrentIndex)
	}
	s.GoTo(3)
	s.Next() // mock test: no finish-on-last-next, clamped
	snap := s.Snapshot()
	if snap.CurrentIndex != 3 {
		t.Errorf("Next at last index moved to %d", snap.CurrentIndex)
	}
	if snap.Finished {
		t.Error("Next at last index finished a mock-test session")
	}
}

func TestPracticeAnswerLock(t *testing.T) {
	s := NewSession(1, "Mathematics", "algebra", fourQuestions(), PracticeConfig())

	if ok := s.SelectAnswer("3"); !ok {
		t.Fatal("first selection rejected")
	}
	if ok := s.SelectAnswer("4"); ok {
		t.Fatal("practice mode allowed changing a locked answer")
	}
	snap := s.Snapshot()
	if snap.Answers["q1"] != "3" {
		t.Errorf("locked answer overwritten: %q", snap.Answers["q1"])
	}
	if snap.Status["q1"] != StatusAnswered {
		t.Errorf("q1 status = %s, want answered", snap.Status["q1"])
	}
}

func TestMockTestAllowsAnswerChange(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.SelectAnswer("3")
	if ok := s.SelectAnswer("4"); !ok {
		t.Fatal("mock test rejected changing an answer")
	}
	if snap := s.Snapshot(); snap.Answers["q1"] != "4" {
		t.Errorf("answer = %q, want 4", snap.Answers["q1"])
	}
}

func TestMarkForReviewCollapses(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.SelectAnswer("4")
	s.MarkForReviewAndNext()
	snap := s.Snapshot()

	// Quiz mode status enum has no combined answered+marked state.
	if snap.Status["q1"] != StatusMarkedForReview {
		t.Errorf("q1 status = %s, want marked_for_review", snap.Status["q1"])
	}
	if snap.CurrentIndex != 1 {
		t.Errorf("currentIndex = %d, want 1", snap.CurrentIndex)
	}
	if snap.Status["q2"] != StatusVisited {
		t.Errorf("q2 status = %s, want visited", snap.Status["q2"])
	}
	// The recorded answer survives and still grades.
	if snap.Answers["q1"] != "4" {
		t.Errorf("q1 answer lost on marking: %q", snap.Answers["q1"])
	}
}

func TestIndependentBookmarks(t *testing.T) {
	s := NewSession(1, "Mathematics", "algebra", fourQuestions(), PracticeConfig())

	s.SelectAnswer("4")
	s.MarkForReviewAndNext()
	snap := s.Snapshot()

	if snap.Status["q1"] != StatusAnswered {
		t.Errorf("q1 status = %s, want answered preserved", snap.Status["q1"])
	}
	if !snap.Bookmarked["q1"] {
		t.Error("q1 not bookmarked")
	}

	s.Prev()
	s.ToggleBookmark()
	if snap := s.Snapshot(); snap.Bookmarked["q1"] {
		t.Error("bookmark not cleared by toggle")
	}
}

func TestStatusMonotonicity(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.SelectAnswer("4")
	s.ClearAnswer()
	s.MarkForReviewAndNext()
	s.Prev()
	s.Next()
	s.GoTo(0)

	for id, st := range s.Snapshot().Status {
		if id == "q1" || id == "q2" {
			if st == StatusNotVisited {
				t.Errorf("%s downgraded to not_visited", id)
			}
		}
	}
}

func TestFinishedImmutability(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.SelectAnswer("4")
	s.GoTo(1)
	s.Finish()

	before := s.Snapshot()
	if !before.Finished {
		t.Fatal("session not finished")
	}

	s.SelectAnswer("London")
	s.ClearAnswer()
	s.GoTo(3)
	s.Next()
	s.Prev()
	s.MarkForReviewAndNext()
	s.ToggleBookmark()

	after := s.Snapshot()
	if after.CurrentIndex != before.CurrentIndex {
		t.Errorf("currentIndex mutated after finish: %d -> %d", before.CurrentIndex, after.CurrentIndex)
	}
	if !reflect.DeepEqual(before.Answers, after.Answers) {
		t.Errorf("answers mutated after finish: %v -> %v", before.Answers, after.Answers)
	}
	if !reflect.DeepEqual(before.Status, after.Status) {
		t.Errorf("status mutated after finish: %v -> %v", before.Status, after.Status)
	}
}

func TestFinishOnLastNext(t *testing.T) {
	qs := fourQuestions()[:2]
	s := NewSession(1, "Mathematics", "algebra", qs, PracticeConfig())

	s.SelectAnswer("4")
	s.Next()
	if s.Finished() {
		t.Fatal("finished before last question")
	}
	s.SelectAnswer("Paris")
	s.Next() // past the end: terminal in practice flow

	if !s.Finished() {
		t.Fatal("Next past the last question did not finish a practice session")
	}
	sum := s.Summary()
	if sum == nil {
		t.Fatal("no summary after finish")
	}
	if sum.Correct != 2 || sum.Wrong != 0 {
		t.Errorf("correct/wrong = %d/%d, want 2/0", sum.Correct, sum.Wrong)
	}
	if sum.Accuracy != 100 {
		t.Errorf("accuracy = %d, want 100", sum.Accuracy)
	}
}

func TestEmptyQuestionList(t *testing.T) {
	s := NewSession(1, "History", "", nil, MockTestConfig(time.Hour))
	defer s.Close()

	// Nothing to finish, nothing to crash on.
	s.SelectAnswer("A")
	s.Next()
	s.Prev()
	s.GoTo(0)
	s.MarkForReviewAndNext()
	s.Finish()

	snap := s.Snapshot()
	if snap.Finished {
		t.Error("empty session reported finished")
	}
	if snap.Total != 0 {
		t.Errorf("total = %d, want 0", snap.Total)
	}
	if s.Summary() != nil {
		t.Error("empty session produced a summary")
	}
}

func TestRestartResetsState(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	s.SelectAnswer("4")
	s.GoTo(2)
	s.Finish()
	if s.Summary() == nil {
		t.Fatal("no summary after finish")
	}

	s.Restart()
	s.Close() // stop the fresh ticker

	snap := s.Snapshot()
	if snap.Finished {
		t.Error("restarted session still finished")
	}
	if snap.CurrentIndex != 0 {
		t.Errorf("currentIndex = %d, want 0", snap.CurrentIndex)
	}
	if len(snap.Answers) != 0 {
		t.Errorf("answers survive restart: %v", snap.Answers)
	}
	if snap.Status["q1"] != StatusVisited || snap.Status["q3"] != StatusNotVisited {
		t.Errorf("statuses not reset: %v", snap.Status)
	}
	if snap.TimeLeft != 3600 {
		t.Errorf("timeLeft = %d, want 3600", snap.TimeLeft)
	}
	if s.Summary() != nil {
		t.Error("score survives restart")
	}
}

func TestTimerExpiryScenario(t *testing.T) {
	qs := []Question{
		{ID: "1", Text: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{ID: "2", Text: "Capital of France?", Options: []string{"Paris", "London"}, CorrectAnswer: "Paris"},
	}
	s := newTimedSession(t, 5*time.Second, qs)

	s.SelectAnswer("4")
	s.GoTo(1)
	s.MarkForReviewAndNext() // Q2 marked, left unanswered

	// Let the clock run out.
	for i := 0; i < 5; i++ {
		s.tick()
	}

	snap := s.Snapshot()
	if !snap.Finished {
		t.Fatal("timer expiry did not finish the session")
	}
	if snap.TimeLeft != 0 {
		t.Errorf("timeLeft = %d, want 0", snap.TimeLeft)
	}

	sum := s.Summary()
	if sum == nil {
		t.Fatal("no summary")
	}
	if sum.Attempted != 1 || sum.Correct != 1 || sum.Wrong != 0 {
		t.Errorf("attempted/correct/wrong = %d/%d/%d, want 1/1/0", sum.Attempted, sum.Correct, sum.Wrong)
	}
	if sum.Score != 1 {
		t.Errorf("score = %v, want 1", sum.Score)
	}
}

func TestTimeFloor(t *testing.T) {
	s := newTimedSession(t, 2*time.Second, fourQuestions())

	// Ticks past zero must clamp, and zero must coincide with finished in
	// the same snapshot.
	for i := 0; i < 10; i++ {
		s.tick()
		snap := s.Snapshot()
		if snap.TimeLeft < 0 {
			t.Fatalf("timeLeft went negative: %d", snap.TimeLeft)
		}
		if snap.TimeLeft == 0 && !snap.Finished {
			t.Fatal("observed timeLeft == 0 with finished == false")
		}
	}
}

func TestWallClockTimerFinishes(t *testing.T) {
	if testing.Short() {
		t.Skip("wall-clock timer test")
	}
	s := NewSession(1, "Mathematics", "", fourQuestions(), MockTestConfig(time.Second))
	defer s.Close()

	deadline := time.Now().Add(5 * time.Second)
	for !s.Finished() {
		if time.Now().After(deadline) {
			t.Fatal("session did not finish after timer expiry")
		}
		time.Sleep(50 * time.Millisecond)
	}
	if snap := s.Snapshot(); snap.TimeLeft != 0 {
		t.Errorf("timeLeft = %d, want 0", snap.TimeLeft)
	}
}

func TestFinishHandlerFires(t *testing.T) {
	s := newTimedSession(t, time.Hour, fourQuestions())

	done := make(chan Summary, 1)
	s.SetFinishHandler(func(sum Summary) { done <- sum })

	s.SelectAnswer("4")
	s.Finish()

	select {
	case sum := <-done:
		if sum.Correct != 1 {
			t.Errorf("handler summary correct = %d, want 1", sum.Correct)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("finish handler never invoked")
	}

	// Finish is idempotent: the handler must not fire twice.
	s.Finish()
	select {
	case <-done:
		t.Fatal("finish handler invoked twice")
	case <-time.After(100 * time.Millisecond):
	}
}
