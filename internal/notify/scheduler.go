// Package notify owns the device-side pending notification set: the only
// mutable state the app keeps outside the database. Planning replaces the
// whole set; delivery drains whatever is due.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/mfigueredo/smarket/internal/model"
)

// Scheduler holds pending notification intents keyed by ID and dispatches
// them as their fire instants pass. Safe for concurrent use.
//
// ReplaceAll is sequenced: each planning cycle passes a monotonically
// increasing sequence number, and a replace carrying an older sequence than
// one already applied is dropped. That keeps a slow, stale plan from
// clobbering a newer one regardless of completion order.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]model.NotificationIntent
	seq     uint64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]model.NotificationIntent)}
}

// NextSeq reserves a sequence number for an upcoming planning cycle. Call
// it before computing the plan so sequencing follows data-change order,
// not plan-completion order.
func (s *Scheduler) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// ReplaceAll installs the given intents as the complete pending set,
// retracting everything scheduled before. Returns false if a newer replace
// already landed and this one was dropped.
func (s *Scheduler) ReplaceAll(seq uint64, intents []model.NotificationIntent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.seq {
		return false
	}
	s.seq = seq

	s.pending = make(map[string]model.NotificationIntent, len(intents))
	for _, in := range intents {
		s.pending[in.ID] = in
	}
	return true
}

// Add schedules or overwrites a single intent by ID without touching the
// rest of the set. Used for the ad-hoc budget alert.
func (s *Scheduler) Add(in model.NotificationIntent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[in.ID] = in
}

// Pending returns a snapshot of the pending intents sorted by fire time.
func (s *Scheduler) Pending() []model.NotificationIntent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.NotificationIntent, 0, len(s.pending))
	for _, in := range s.pending {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out
}

// Due removes and returns every intent whose fire instant is at or before
// now, sorted by fire time.
func (s *Scheduler) Due(now time.Time) []model.NotificationIntent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []model.NotificationIntent
	for id, in := range s.pending {
		if !in.FireAt.After(now) {
			due = append(due, in)
			delete(s.pending, id)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].FireAt.Before(due[j].FireAt) })
	return due
}

// Len reports the number of pending intents.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
