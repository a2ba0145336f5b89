package daemon

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/store"
)

type captureNotifier struct {
	mu        sync.Mutex
	delivered []model.NotificationIntent
}

func (c *captureNotifier) Notify(_ context.Context, in model.NotificationIntent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivered = append(c.delivered, in)
	return nil
}

func (c *captureNotifier) ids() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []string
	for _, in := range c.delivered {
		ids = append(ids, in.ID)
	}
	return ids
}

func newTestService(t *testing.T) (*Service, *store.Store, *captureNotifier) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cn := &captureNotifier{}
	svc := New(Config{Location: time.UTC, Interval: time.Hour}, st, cn, zerolog.Nop())
	return svc, st, cn
}

func TestRefreshPlansHeadsUp(t *testing.T) {
	svc, st, cn := newTestService(t)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	p := model.NewProduct("Coffee", 25000, 10,
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "", model.CategoryBeverages)
	if err := st.SaveProduct(p); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}

	svc.refresh(context.Background(), now)

	pending := svc.sched.Pending()
	if len(pending) != 1 {
		t.Fatalf("pending = %d intents, want 1", len(pending))
	}
	if pending[0].ID != p.ID {
		t.Fatalf("pending intent ID = %q, want product ID", pending[0].ID)
	}
	if len(cn.ids()) != 0 {
		t.Fatalf("delivered %v before fire time", cn.ids())
	}
}

// Refreshing twice is idempotent: the pending set reflects the latest
// snapshot only.
func TestRefreshReplaces(t *testing.T) {
	svc, st, _ := newTestService(t)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	p := model.NewProduct("Coffee", 25000, 10,
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "", model.CategoryBeverages)
	if err := st.SaveProduct(p); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}

	svc.refresh(context.Background(), now)
	if svc.sched.Len() != 1 {
		t.Fatalf("pending = %d, want 1", svc.sched.Len())
	}

	if err := st.DeleteProduct(p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	svc.refresh(context.Background(), now)
	if svc.sched.Len() != 0 {
		t.Fatalf("pending after delete = %d, want 0", svc.sched.Len())
	}
}

func TestRefreshFiresBudgetAlertOncePerDay(t *testing.T) {
	svc, st, cn := newTestService(t)
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	// 300000/mo against a 100000 budget.
	p := model.NewProduct("Groceries", 10000, 1, now, "", model.CategoryFood)
	if err := st.SaveProduct(p); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	settings, err := st.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	settings.BudgetEnabled = true
	settings.BudgetAmount = 100000
	if err := st.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	svc.refresh(context.Background(), now)

	ids := cn.ids()
	if len(ids) != 1 || ids[0] != model.BudgetAlertID {
		t.Fatalf("delivered = %v, want one budget alert", ids)
	}

	// Same-day re-refresh: throttled by the persisted timestamp.
	svc.refresh(context.Background(), now.Add(2*time.Hour))
	if len(cn.ids()) != 1 {
		t.Fatalf("delivered = %v, want still one budget alert", cn.ids())
	}

	// Next day: fires again.
	svc.refresh(context.Background(), now.AddDate(0, 0, 1))
	if len(cn.ids()) != 2 {
		t.Fatalf("delivered = %v, want a second alert the next day", cn.ids())
	}
}

func TestDeliverDueFiresElapsedIntent(t *testing.T) {
	svc, _, cn := newTestService(t)
	now := time.Now()

	seq := svc.sched.NextSeq()
	svc.sched.ReplaceAll(seq, []model.NotificationIntent{
		{ID: "due", Title: "t", Body: "b", FireAt: now.Add(-time.Minute)},
		{ID: "later", Title: "t", Body: "b", FireAt: now.Add(time.Hour)},
	})

	svc.deliverDue(context.Background(), now)

	ids := cn.ids()
	if len(ids) != 1 || ids[0] != "due" {
		t.Fatalf("delivered = %v, want [due]", ids)
	}
	if svc.sched.Len() != 1 {
		t.Fatalf("pending = %d, want 1", svc.sched.Len())
	}
}

func TestRequestRefreshCoalesces(t *testing.T) {
	svc, _, _ := newTestService(t)

	svc.RequestRefresh()
	svc.RequestRefresh() // queue full, dropped

	select {
	case <-svc.refreshCh:
	default:
		t.Fatal("expected one queued refresh")
	}
	select {
	case <-svc.refreshCh:
		t.Fatal("second refresh should have been coalesced")
	default:
	}
}
