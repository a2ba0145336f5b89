package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/mfigueredo/smarket/internal/model"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	return loc
}

func TestNextRunOut(t *testing.T) {
	loc := time.UTC
	p := model.Product{
		LastsDays:       7,
		LastPurchasedAt: time.Date(2024, 1, 10, 15, 30, 0, 0, loc),
	}

	got := NextRunOut(p, loc)
	want := time.Date(2024, 1, 17, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("NextRunOut = %v, want %v", got, want)
	}
}

// Run-out dates are calendar days, so crossing a DST transition must not
// shift the projected date.
func TestNextRunOutAcrossDST(t *testing.T) {
	loc := mustLoc(t, "America/New_York")

	// US DST starts 2024-03-10; the window below spans it.
	p := model.Product{
		LastsDays:       5,
		LastPurchasedAt: time.Date(2024, 3, 8, 22, 0, 0, 0, loc),
	}

	got := NextRunOut(p, loc)
	want := time.Date(2024, 3, 13, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("NextRunOut across DST = %v, want %v", got, want)
	}
}

func TestDaysUntil(t *testing.T) {
	loc := time.UTC
	p := model.Product{
		LastsDays:       10,
		LastPurchasedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, loc),
	}
	// run-out is 2024-01-11

	tests := []struct {
		ref  time.Time
		want int
	}{
		{time.Date(2024, 1, 8, 23, 59, 0, 0, loc), 3},
		{time.Date(2024, 1, 11, 0, 0, 0, 0, loc), 0},
		{time.Date(2024, 1, 12, 9, 0, 0, 0, loc), -1},
		{time.Date(2024, 1, 20, 0, 0, 0, 0, loc), -9},
	}

	for _, tt := range tests {
		if got := DaysUntil(p, tt.ref, loc); got != tt.want {
			t.Errorf("DaysUntil(ref=%v) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

func TestDaysUntilAcrossDST(t *testing.T) {
	loc := mustLoc(t, "America/New_York")

	p := model.Product{
		LastsDays:       4,
		LastPurchasedAt: time.Date(2024, 3, 8, 12, 0, 0, 0, loc),
	}
	// run-out 2024-03-12; 03-09 -> 03-12 spans the spring-forward night.
	ref := time.Date(2024, 3, 9, 6, 0, 0, 0, loc)
	if got := DaysUntil(p, ref, loc); got != 3 {
		t.Fatalf("DaysUntil across DST = %d, want 3", got)
	}
}

func TestDailyCost(t *testing.T) {
	p := model.Product{PriceLatest: 21000, LastsDays: 7}
	if got := DailyCost(p); math.Abs(got-3000) > 1e-9 {
		t.Fatalf("DailyCost = %f, want 3000", got)
	}

	// dailyCost * lastsDays recovers the price.
	if got := DailyCost(p) * float64(p.LastsDays); math.Abs(got-p.PriceLatest) > 1e-6 {
		t.Fatalf("DailyCost*LastsDays = %f, want %f", got, p.PriceLatest)
	}

	zero := model.Product{PriceLatest: 100, LastsDays: 0}
	if got := DailyCost(zero); got != 0 {
		t.Fatalf("DailyCost with LastsDays=0 = %f, want 0", got)
	}
}

func TestMonthlyCost(t *testing.T) {
	p := model.Product{PriceLatest: 30, LastsDays: 30}
	if got := MonthlyCost(p); math.Abs(got-30) > 1e-9 {
		t.Fatalf("MonthlyCost = %f, want 30", got)
	}
}

func TestTotalMonthly(t *testing.T) {
	products := []model.Product{
		{PriceLatest: 30, LastsDays: 30}, // 30/mo
		{PriceLatest: 70, LastsDays: 7},  // 300/mo
	}
	if got := TotalMonthly(products); math.Abs(got-330) > 1e-9 {
		t.Fatalf("TotalMonthly = %f, want 330", got)
	}
}

func TestStatusFor(t *testing.T) {
	const headsUp = 3

	tests := []struct {
		days int
		want Status
	}{
		{-5, StatusOverdue},
		{-1, StatusOverdue},
		{0, StatusToday},
		{1, StatusTomorrow},
		{2, StatusSoon},
		{headsUp, StatusSoon},     // boundary inclusive
		{headsUp + 1, StatusOK},   // first day past the window
		{30, StatusOK},
	}

	for _, tt := range tests {
		if got := StatusFor(tt.days, headsUp); got != tt.want {
			t.Errorf("StatusFor(%d, %d) = %q, want %q", tt.days, headsUp, got, tt.want)
		}
	}
}

func TestDueWithin(t *testing.T) {
	loc := time.UTC
	ref := time.Date(2024, 1, 10, 12, 0, 0, 0, loc)

	mk := func(name string, lastsDays int, purchased time.Time) model.Product {
		return model.Product{Name: name, LastsDays: lastsDays, LastPurchasedAt: purchased}
	}

	products := []model.Product{
		mk("later", 10, time.Date(2024, 1, 9, 0, 0, 0, 0, loc)),   // due 01-19
		mk("soon", 2, time.Date(2024, 1, 9, 0, 0, 0, 0, loc)),     // due 01-11
		mk("overdue", 1, time.Date(2024, 1, 5, 0, 0, 0, 0, loc)),  // due 01-06
	}

	due := DueWithin(products, 2, ref, loc)
	if len(due) != 2 {
		t.Fatalf("DueWithin returned %d products, want 2", len(due))
	}
	if due[0].Name != "overdue" || due[1].Name != "soon" {
		t.Fatalf("DueWithin order = [%s, %s], want [overdue, soon]", due[0].Name, due[1].Name)
	}
}
