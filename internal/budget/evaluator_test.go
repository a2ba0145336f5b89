package budget

import (
	"strings"
	"testing"
	"time"

	"github.com/mfigueredo/smarket/internal/model"
)

func enabledSettings(amount float64) model.AppSettings {
	s := model.DefaultSettings()
	s.BudgetEnabled = true
	s.BudgetAmount = amount
	return s
}

func TestShouldAlertEqualityCounts(t *testing.T) {
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	s := enabledSettings(100000)

	if !ShouldAlert(100000, s, now, time.UTC) {
		t.Fatal("total equal to budget should alert")
	}
	if ShouldAlert(99999.99, s, now, time.UTC) {
		t.Fatal("total below budget should not alert")
	}
}

func TestShouldAlertDisabled(t *testing.T) {
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	s := model.DefaultSettings()
	s.BudgetAmount = 100

	if ShouldAlert(1000, s, now, time.UTC) {
		t.Fatal("disabled budget should never alert")
	}
}

func TestShouldAlertSameDayThrottle(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, loc)
	s := enabledSettings(100)

	// Unset last-alert: fires.
	if !ShouldAlert(200, s, now, loc) {
		t.Fatal("first alert of the day should fire")
	}

	// Persisted same-day last-alert: suppressed, even hours later.
	s.LastBudgetAlertAt = &now
	later := time.Date(2024, 5, 10, 23, 59, 0, 0, loc)
	if ShouldAlert(200, s, later, loc) {
		t.Fatal("second alert on the same calendar day should be suppressed")
	}

	// Next calendar day, even a minute past midnight: fires again.
	nextDay := time.Date(2024, 5, 11, 0, 1, 0, 0, loc)
	if !ShouldAlert(200, s, nextDay, loc) {
		t.Fatal("alert on the next calendar day should fire")
	}
}

// The throttle is calendar-day based, not a 24h window: an alert at 23:50
// does not suppress one at 00:10 the next day.
func TestShouldAlertCalendarDayNot24h(t *testing.T) {
	loc := time.UTC
	lateNight := time.Date(2024, 5, 10, 23, 50, 0, 0, loc)
	s := enabledSettings(100)
	s.LastBudgetAlertAt = &lateNight

	earlyNext := time.Date(2024, 5, 11, 0, 10, 0, 0, loc)
	if !ShouldAlert(200, s, earlyNext, loc) {
		t.Fatal("alert 20 minutes later but on a new calendar day should fire")
	}
}

func TestAlertIntent(t *testing.T) {
	now := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	s := enabledSettings(100000)
	s.Currency = model.CurrencyCOP

	in := AlertIntent(150000, s, now)
	if in.ID != model.BudgetAlertID {
		t.Fatalf("intent ID = %q, want %q", in.ID, model.BudgetAlertID)
	}
	if !in.FireAt.Equal(now) {
		t.Fatalf("intent FireAt = %v, want %v", in.FireAt, now)
	}
	if !strings.Contains(in.Body, "COP 150,000") || !strings.Contains(in.Body, "COP 100,000") {
		t.Fatalf("intent body missing formatted amounts: %q", in.Body)
	}
}
