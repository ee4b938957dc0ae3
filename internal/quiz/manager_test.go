package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestManagerOwnership(t *testing.T) {
	m := NewManager()
	s := NewSession(7, "Mathematics", "algebra", fourQuestions(), PracticeConfig())
	m.Put(s)

	got, err := m.Get(s.ID, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != s {
		t.Fatal("Get returned a different session")
	}

	if _, err := m.Get(s.ID, 8); !errors.Is(err, ErrNotSessionOwner) {
		t.Errorf("foreign owner error = %v, want ErrNotSessionOwner", err)
	}
	if _, err := m.Get(uuid.New(), 7); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown ID error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerRemoveStopsTimer(t *testing.T) {
	m := NewManager()
	s := NewSession(1, "Mathematics", "", fourQuestions(), MockTestConfig(time.Hour))
	m.Put(s)

	before := s.Snapshot().TimeLeft
	m.Remove(s.ID)

	if _, err := m.Get(s.ID, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("removed session still retrievable")
	}

	// A stopped timer must not keep decrementing the discarded state.
	time.Sleep(1500 * time.Millisecond)
	if after := s.Snapshot().TimeLeft; after != before {
		t.Errorf("timer still running after Remove: %d -> %d", before, after)
	}
}

func TestManagerLen(t *testing.T) {
	m := NewManager()
	if m.Len() != 0 {
		t.Fatalf("fresh manager len = %d", m.Len())
	}
	a := NewSession(1, "Mathematics", "", fourQuestions(), PracticeConfig())
	b := NewSession(2, "History", "", fourQuestions(), PracticeConfig())
	m.Put(a)
	m.Put(b)
	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
	m.Remove(a.ID)
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
}
