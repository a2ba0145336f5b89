// Package planner computes the full set of heads-up reminder intents for a
// product snapshot. Output always replaces the previous pending set; the
// planner never diffs against it, so stale schedules cannot survive a
// data change.
package planner

import (
	"fmt"
	"time"

	"github.com/mfigueredo/smarket/internal/forecast"
	"github.com/mfigueredo/smarket/internal/model"
	"github.com/mfigueredo/smarket/internal/money"
)

// PlanHeadsUp returns one reminder intent per product whose fire instant is
// still in the future. The fire instant is headsUpDays before the run-out
// date, at reminderHour:00 local time. The intent ID is the product ID, so
// a product can have at most one pending heads-up at a time.
func PlanHeadsUp(products []model.Product, settings model.AppSettings, now time.Time, loc *time.Location) []model.NotificationIntent {
	intents := make([]model.NotificationIntent, 0, len(products))

	for _, p := range products {
		runOut := forecast.NextRunOut(p, loc)
		fireDay := runOut.AddDate(0, 0, -settings.HeadsUpDays)
		fireAt := time.Date(fireDay.Year(), fireDay.Month(), fireDay.Day(),
			settings.ReminderHour, 0, 0, 0, loc)

		if !fireAt.After(now) {
			continue
		}

		price := money.Format(p.PriceLatest, settings.Currency)
		intents = append(intents, model.NotificationIntent{
			ID:     p.ID,
			Title:  fmt.Sprintf("Restock: %s", p.Name),
			Body:   fmt.Sprintf("Expected to run out soon. Latest price: %s.", price),
			FireAt: fireAt,
		})
	}

	return intents
}
