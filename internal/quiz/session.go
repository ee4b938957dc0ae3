package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a single question within a session.
type Status string

const (
	StatusNotVisited      Status = "not_visited"
	StatusVisited         Status = "visited"
	StatusAnswered        Status = "answered"
	StatusMarkedForReview Status = "marked_for_review"
)

// Session holds the full in-memory state of one practice or mock-test
// attempt. It is the single source of truth for the attempt: all mutation
// goes through its methods, and every method (timer ticks included) runs
// under one mutex, so user actions and the countdown never interleave
// mid-transition.
type Session struct {
	ID        uuid.UUID
	OwnerID   int
	Subject   string
	Topic     string
	CreatedAt time.Time

	cfg Config

	mu         sync.Mutex
	questions  []Question
	current    int
	answers    map[string]string // question ID -> selected option
	status     map[string]Status
	bookmarked map[string]bool
	timeLeft   int // seconds; meaningful only when cfg.Timed
	finished   bool
	finishedAt time.Time
	summary    *Summary
	touchedAt  time.Time

	// Timer lifecycle. stop is closed exactly once per timer run; a
	// restart replaces it with a fresh channel.
	stop         chan struct{}
	timerStopped bool

	// onFinish receives the graded summary whenever the session finishes,
	// whether by user submit, last-question flow, or timer expiry. Invoked
	// on its own goroutine; fire-and-forget.
	onFinish func(Summary)
}

// NewSession builds a session over an already-fetched question list and
// starts the countdown for timed configurations. An empty question list
// produces a valid session that never finishes on its own; the caller is
// expected to surface it as a "no questions" state.
func NewSession(ownerID int, subject, topic string, questions []Question, cfg Config) *Session {
	s := &Session{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Subject:   subject,
		Topic:     topic,
		CreatedAt: time.Now(),
		cfg:       cfg,
		questions: questions,
		touchedAt: time.Now(),
	}
	s.reset()
	return s
}

// SetFinishHandler registers the result sink called when the session
// finishes. Must be set before any operation can finish the session.
func (s *Session) SetFinishHandler(fn func(Summary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFinish = fn
}

// reset re-initializes all mutable state and (re)starts the timer.
// Callers must not hold s.mu.
func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	s.current = 0
	s.answers = make(map[string]string, len(s.questions))
	s.status = make(map[string]Status, len(s.questions))
	s.bookmarked = make(map[string]bool)
	for i := range s.questions {
		s.status[s.questions[i].ID] = StatusNotVisited
	}
	if len(s.questions) > 0 {
		s.status[s.questions[0].ID] = StatusVisited
	}
	s.finished = false
	s.finishedAt = time.Time{}
	s.summary = nil
	s.touchedAt = time.Now()

	if s.cfg.Timed && len(s.questions) > 0 {
		s.timeLeft = int(s.cfg.Duration / time.Second)
		s.stop = make(chan struct{})
		s.timerStopped = false
		go s.runTimer(s.stop)
	} else {
		s.timeLeft = 0
		s.stop = nil
		s.timerStopped = true
	}
}

// SelectAnswer records an option for the current question and upgrades its
// status to answered. Returns false when the session is finished, empty,
// or the mode locks the first selection.
func (s *Session) SelectAnswer(option string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || len(s.questions) == 0 {
		return false
	}
	q := &s.questions[s.current]
	if _, already := s.answers[q.ID]; already && !s.cfg.AllowAnswerChange {
		return false
	}

	s.answers[q.ID] = option
	s.status[q.ID] = StatusAnswered
	s.touchedAt = time.Now()
	return true
}

// ClearAnswer removes the current question's recorded answer and reverts
// its status to visited. Never downgrades to not_visited.
func (s *Session) ClearAnswer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || len(s.questions) == 0 {
		return
	}
	q := &s.questions[s.current]
	delete(s.answers, q.ID)
	s.status[q.ID] = StatusVisited
	s.touchedAt = time.Now()
}

// GoTo moves to the question at index. Out-of-range indices are silently
// ignored: they only ever originate from a stale or buggy client.
func (s *Session) GoTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goToLocked(index)
}

func (s *Session) goToLocked(index int) {
	if s.finished || index < 0 || index >= len(s.questions) {
		return
	}
	s.current = index
	q := &s.questions[index]
	if s.status[q.ID] == StatusNotVisited {
		s.status[q.ID] = StatusVisited
	}
	s.touchedAt = time.Now()
}

// Next advances one question, clamped at the end. In single-question
// practice flow, advancing past the last question finishes the session.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || len(s.questions) == 0 {
		return
	}
	if s.current == len(s.questions)-1 {
		if s.cfg.FinishOnLastNext {
			s.finishLocked()
		}
		return
	}
	s.goToLocked(s.current + 1)
}

// Prev moves back one question, clamped at the start.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goToLocked(s.current - 1)
}

// MarkForReviewAndNext flags the current question for review, then
// advances with Next semantics. In collapsing mode the status becomes
// marked_for_review even for an answered question; with independent
// bookmarks the answered status is preserved and only the flag is set.
func (s *Session) MarkForReviewAndNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || len(s.questions) == 0 {
		return
	}
	q := &s.questions[s.current]
	if s.cfg.IndependentBookmarks {
		s.bookmarked[q.ID] = true
	} else {
		s.status[q.ID] = StatusMarkedForReview
	}
	if s.current+1 < len(s.questions) {
		s.goToLocked(s.current + 1)
	}
	s.touchedAt = time.Now()
}

// ToggleBookmark flips the current question's bookmark flag. Only
// meaningful with independent bookmarks; a no-op otherwise.
func (s *Session) ToggleBookmark() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || len(s.questions) == 0 || !s.cfg.IndependentBookmarks {
		return
	}
	q := &s.questions[s.current]
	s.bookmarked[q.ID] = !s.bookmarked[q.ID]
	s.touchedAt = time.Now()
}

// Finish terminates the session immediately and grades it. Idempotent.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked()
}

// finishLocked performs the one-way finished transition: grade once, stop
// the countdown, hand the summary to the result sink. Requires s.mu.
func (s *Session) finishLocked() {
	if s.finished || len(s.questions) == 0 {
		return
	}
	s.finished = true
	s.finishedAt = time.Now()
	s.summary = s.gradeLocked()
	s.stopTimerLocked()

	if s.onFinish != nil {
		summary := *s.summary
		go s.onFinish(summary)
	}
}

// Restart discards all progress and re-initializes over the same question
// list: answers and statuses cleared, timer reset, score dropped.
func (s *Session) Restart() {
	s.reset()
}

// Close stops the countdown without finishing. Must be called when the
// session is abandoned so the timer goroutine cannot outlive it and
// mutate a discarded attempt.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *Session) stopTimerLocked() {
	if s.stop != nil && !s.timerStopped {
		s.timerStopped = true
		close(s.stop)
	}
}

// runTimer decrements the countdown once per second until the session
// finishes or the stop channel closes.
func (s *Session) runTimer(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.tick() {
				return
			}
		}
	}
}

// tick applies one countdown step. Reaching zero clamps the clock and
// finishes the session in the same critical section, so no reader can
// ever observe timeLeft == 0 with finished still false.
func (s *Session) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return false
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.finishLocked()
		return false
	}
	return true
}

// ─── Read accessors ─────────────────────────────────────────────────

// Snapshot is a point-in-time copy of the session's observable state.
type Snapshot struct {
	ID           uuid.UUID         `json:"id"`
	Subject      string            `json:"subject"`
	Topic        string            `json:"topic,omitempty"`
	CurrentIndex int               `json:"current_index"`
	Total        int               `json:"total_questions"`
	Answers      map[string]string `json:"answers"`
	Status       map[string]Status `json:"status"`
	Bookmarked   map[string]bool   `json:"bookmarked,omitempty"`
	Counts       map[Status]int    `json:"counts"`
	Timed        bool              `json:"timed"`
	TimeLeft     int               `json:"time_left_seconds"`
	Finished     bool              `json:"finished"`
	Score        *float64          `json:"score,omitempty"`
}

// Snapshot returns a consistent copy of the observable state. The counts
// map feeds the question palette.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:           s.ID,
		Subject:      s.Subject,
		Topic:        s.Topic,
		CurrentIndex: s.current,
		Total:        len(s.questions),
		Answers:      make(map[string]string, len(s.answers)),
		Status:       make(map[string]Status, len(s.status)),
		Counts:       make(map[Status]int, 4),
		Timed:        s.cfg.Timed,
		TimeLeft:     s.timeLeft,
		Finished:     s.finished,
	}
	for id, a := range s.answers {
		snap.Answers[id] = a
	}
	for id, st := range s.status {
		snap.Status[id] = st
		snap.Counts[st]++
	}
	if s.cfg.IndependentBookmarks {
		snap.Bookmarked = make(map[string]bool, len(s.bookmarked))
		for id, b := range s.bookmarked {
			if b {
				snap.Bookmarked[id] = true
			}
		}
	}
	if s.summary != nil {
		score := s.summary.Score
		snap.Score = &score
	}
	return snap
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() (Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.questions) == 0 {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Questions returns a copy of the session's question list.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Finished reports whether the session has terminated.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Summary returns the graded result, or nil while the session is active.
// Stable after finish: grading runs exactly once.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return nil
	}
	out := *s.summary
	return &out
}

// IdleSince reports the last time the session was touched by its owner.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
