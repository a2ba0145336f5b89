package notify

import (
	"testing"
	"time"

	"github.com/mfigueredo/smarket/internal/model"
)

func intent(id string, fireAt time.Time) model.NotificationIntent {
	return model.NotificationIntent{ID: id, Title: "t", Body: "b", FireAt: fireAt}
}

func TestReplaceAllRetractsPrior(t *testing.T) {
	s := NewScheduler()
	later := time.Now().Add(time.Hour)

	seq := s.NextSeq()
	s.ReplaceAll(seq, []model.NotificationIntent{intent("a", later), intent("b", later)})
	if s.Len() != 2 {
		t.Fatalf("pending = %d, want 2", s.Len())
	}

	seq = s.NextSeq()
	s.ReplaceAll(seq, []model.NotificationIntent{intent("b", later)})

	pending := s.Pending()
	if len(pending) != 1 || pending[0].ID != "b" {
		t.Fatalf("pending after replace = %v, want only b", pending)
	}
}

// An older plan completing after a newer one must not clobber it.
func TestReplaceAllSequencing(t *testing.T) {
	s := NewScheduler()
	later := time.Now().Add(time.Hour)

	oldSeq := s.NextSeq()
	newSeq := s.NextSeq()

	if !s.ReplaceAll(newSeq, []model.NotificationIntent{intent("new", later)}) {
		t.Fatal("newer plan was rejected")
	}
	if s.ReplaceAll(oldSeq, []model.NotificationIntent{intent("stale", later)}) {
		t.Fatal("stale plan was applied")
	}

	pending := s.Pending()
	if len(pending) != 1 || pending[0].ID != "new" {
		t.Fatalf("pending = %v, want only the newer plan", pending)
	}
}

func TestDueDrainsOnlyElapsed(t *testing.T) {
	s := NewScheduler()
	now := time.Now()

	seq := s.NextSeq()
	s.ReplaceAll(seq, []model.NotificationIntent{
		intent("past", now.Add(-time.Minute)),
		intent("exact", now),
		intent("future", now.Add(time.Hour)),
	})

	due := s.Due(now)
	if len(due) != 2 {
		t.Fatalf("due = %d intents, want 2", len(due))
	}
	if due[0].ID != "past" || due[1].ID != "exact" {
		t.Fatalf("due order = [%s, %s], want [past, exact]", due[0].ID, due[1].ID)
	}
	if s.Len() != 1 {
		t.Fatalf("pending after drain = %d, want 1", s.Len())
	}

	// Draining again yields nothing: delivery is one-shot.
	if again := s.Due(now); len(again) != 0 {
		t.Fatalf("second drain returned %d intents, want 0", len(again))
	}
}

func TestAddDedupesByID(t *testing.T) {
	s := NewScheduler()
	now := time.Now()

	s.Add(intent(model.BudgetAlertID, now))
	s.Add(intent(model.BudgetAlertID, now.Add(time.Minute)))

	if s.Len() != 1 {
		t.Fatalf("pending = %d, want 1 (deduped by ID)", s.Len())
	}
}
