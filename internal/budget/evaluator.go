// Package budget decides when the monthly-spend estimate warrants an
// alert, throttled to one alert per calendar day.
package budget

import (
	"fmt"
	"time"

	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
)

// ShouldAlert reports whether a budget alert is due right now. An alert is
// eligible when budgeting is enabled and the estimated total meets or
// exceeds the budget; meeting it exactly counts. A prior alert on the same
// calendar day (local calendar, not a 24h window) suppresses it.
//
// On true, the caller must persist LastBudgetAlertAt = now before the next
// evaluation, or the same-day throttle cannot hold.
func ShouldAlert(totalMonthly float64, settings model.AppSettings, now time.Time, loc *time.Location) bool {
	if !settings.BudgetEnabled || totalMonthly < settings.BudgetAmount {
		return false
	}
	if last := settings.LastBudgetAlertAt; last != nil && sameDay(*last, now, loc) {
		return false
	}
	return true
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return forecast.StartOfDay(a, loc).Equal(forecast.StartOfDay(b, loc))
}

// AlertIntent builds the single budget-alert notification. Its fixed ID
// means the pending set holds at most one, and FireAt of now means it
// delivers on the next dispatch pass.
func AlertIntent(totalMonthly float64, settings model.AppSettings, now time.Time) model.NotificationIntent {
	total := money.Format(totalMonthly, settings.Currency)
	amount := money.Format(settings.BudgetAmount, settings.Currency)
	return model.NotificationIntent{
		ID:    model.BudgetAlertID,
		Title: "Budget alert",
		Body: fmt.Sprintf("Estimated monthly spend (%s) meets/exceeds your budget (%s).",
			total, amount),
		FireAt: now,
	}
}
