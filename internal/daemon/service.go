// Package daemon provides the long-running background refresh service: it
// re-plans reminders and re-evaluates the budget on every trigger, and
// delivers due notifications.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mfigueredo/smarket/internal/budget"
	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/notify"
	"github.com/mfigueredo/smarket/internal/planner"
	"github.com/mfigueredo/smarket/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	Interval     time.Duration // replan interval
	Location     *time.Location
	EventsBuffer int
}

// Snapshot is a compact state summary for status/event payloads.
type Snapshot struct {
	At           time.Time `json:"at"`
	Products     int       `json:"products"`
	DueSoon      int       `json:"due_soon"`
	Pending      int       `json:"pending"`
	TotalMonthly float64   `json:"total_monthly"`
	ReminderHour int       `json:"reminder_hour"`
}

// Event is emitted whenever a refresh changes state or a notification is
// delivered.
type Event struct {
	ID        int64                     `json:"id"`
	Type      string                    `json:"type"` // replan, budget_alert, notified
	Timestamp time.Time                 `json:"timestamp"`
	Snapshot  Snapshot                  `json:"snapshot"`
	Intent    *model.NotificationIntent `json:"intent,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastRefreshAt   time.Time `json:"last_refresh_at"`
	IntervalSec     int       `json:"interval_sec"`
	RefreshCount    int64     `json:"refresh_count"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg      Config
	log      zerolog.Logger
	store    *store.Store
	sched    *notify.Scheduler
	notifier notify.Notifier

	mu           sync.RWMutex
	startedAt    time.Time
	lastRefresh  time.Time
	refreshCount int64
	lastError    string
	snapshot     Snapshot
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event

	refreshCh chan struct{}
}

// New returns a new daemon service with the provided config.
func New(cfg Config, st *store.Store, notifier notify.Notifier, log zerolog.Logger) *Service {
	if cfg.Interval < time.Minute {
		cfg.Interval = time.Hour
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8997"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		cfg:       cfg,
		log:       log,
		store:     st,
		sched:     notify.NewScheduler(),
		notifier:  notifier,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
		refreshCh: make(chan struct{}, 1),
	}
}

// Run starts HTTP endpoints, the replan loop, and the delivery loop until
// ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/pending", s.handlePending)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("/v1/refresh", s.handleRefresh)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Refresh immediately so reminders survive a reboot without waiting
	// for the first tick.
	s.refresh(ctx, time.Now())

	replan := time.NewTicker(s.cfg.Interval)
	defer replan.Stop()
	dispatch := time.NewTicker(30 * time.Second)
	defer dispatch.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-replan.C:
			s.refresh(ctx, time.Now())
		case <-s.refreshCh:
			s.refresh(ctx, time.Now())
		case <-dispatch.C:
			s.deliverDue(ctx, time.Now())
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// refresh re-runs planning and budget evaluation against a fresh snapshot.
// Safe to run redundantly: planning is a full replace.
func (s *Service) refresh(ctx context.Context, now time.Time) {
	// Reserve the sequence before reading data so plans apply in
	// data-change order even if refreshes overlap.
	seq := s.sched.NextSeq()

	products, err := s.store.ListProducts()
	if err != nil {
		s.recordError(now, err)
		return
	}
	settings, err := s.store.Settings()
	if err != nil {
		s.recordError(now, err)
		return
	}

	loc := s.cfg.Location
	intents := planner.PlanHeadsUp(products, settings, now, loc)
	applied := s.sched.ReplaceAll(seq, intents)

	total := forecast.TotalMonthly(products)
	alerted := false
	if budget.ShouldAlert(total, settings, now, loc) {
		s.sched.Add(budget.AlertIntent(total, settings, now))
		// Persist immediately so a redundant trigger in the same
		// day cannot fire a duplicate.
		if err := s.store.MarkBudgetAlerted(now); err != nil {
			s.log.Error().Err(err).Msg("persist budget alert timestamp")
		}
		alerted = true
	}

	dueSoon := len(forecast.DueWithin(products, settings.HeadsUpDays, now, loc))
	snap := Snapshot{
		At:           now,
		Products:     len(products),
		DueSoon:      dueSoon,
		Pending:      s.sched.Len(),
		TotalMonthly: total,
		ReminderHour: settings.ReminderHour,
	}

	s.mu.Lock()
	s.snapshot = snap
	s.lastRefresh = now
	s.refreshCount++
	s.lastError = ""
	s.mu.Unlock()

	if applied {
		s.publish("replan", snap, nil)
	}
	if alerted {
		s.publish("budget_alert", snap, nil)
	}

	s.log.Debug().
		Int("products", len(products)).
		Int("planned", len(intents)).
		Bool("applied", applied).
		Msg("refresh")

	// Anything already due (the budget alert in particular) goes out now.
	s.deliverDue(ctx, now)
}

// deliverDue drains and delivers every intent whose fire instant passed.
// Delivery failures are logged and dropped; the next refresh recomputes
// the schedule anyway.
func (s *Service) deliverDue(ctx context.Context, now time.Time) {
	for _, in := range s.sched.Due(now) {
		if err := s.notifier.Notify(ctx, in); err != nil {
			s.log.Error().Err(err).Str("id", in.ID).Msg("notification delivery failed")
			continue
		}
		s.log.Info().Str("id", in.ID).Str("title", in.Title).Msg("notification delivered")

		s.mu.RLock()
		snap := s.snapshot
		s.mu.RUnlock()
		snap.Pending = s.sched.Len()
		intent := in
		s.publish("notified", snap, &intent)
	}
}

func (s *Service) recordError(now time.Time, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastRefresh = now
	s.refreshCount++
	s.mu.Unlock()
	s.log.Error().Err(err).Msg("refresh failed")
}

// RequestRefresh queues an out-of-band refresh (e.g. after a data change).
// Non-blocking; coalesces with any refresh already queued.
func (s *Service) RequestRefresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

func (s *Service) publish(evType string, snap Snapshot, intent *model.NotificationIntent) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      evType,
		Timestamp: time.Now(),
		Snapshot:  snap,
		Intent:    intent,
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastRefreshAt:   s.lastRefresh,
		IntervalSec:     int(s.cfg.Interval.Seconds()),
		RefreshCount:    s.refreshCount,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handlePending(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.sched.Pending())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.RequestRefresh()
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("refresh queued\n"))
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
