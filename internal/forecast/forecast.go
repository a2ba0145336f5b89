// Package forecast computes run-out projections and cost estimates for
// products. Everything in here is a pure function over snapshot values.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/mfigueredo/smarket/internal/model"
)

// Status buckets a product's days-until-run-out relative to the configured
// heads-up lead time.
type Status string

// Status values, from most to least urgent.
const (
	StatusOverdue  Status = "overdue"
	StatusToday    Status = "today"
	StatusTomorrow Status = "tomorrow"
	StatusSoon     Status = "soon"
	StatusOK       Status = "ok"
)

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// NextRunOut is the projected depletion date: start of the purchase day
// plus LastsDays calendar days. AddDate keeps the arithmetic calendar-based
// so DST transitions don't shift the date.
func NextRunOut(p model.Product, loc *time.Location) time.Time {
	return StartOfDay(p.LastPurchasedAt, loc).AddDate(0, 0, p.LastsDays)
}

// DailyCost is the linear per-day cost of the product. LastsDays below 1
// is unreachable given the model invariant, but returns 0 rather than
// dividing by zero.
func DailyCost(p model.Product) float64 {
	if p.LastsDays <= 0 {
		return 0
	}
	return p.PriceLatest / float64(p.LastsDays)
}

// MonthlyCost estimates a 30-day spend for the product.
func MonthlyCost(p model.Product) float64 {
	return DailyCost(p) * 30
}

// TotalMonthly sums the monthly cost estimate across all products.
func TotalMonthly(products []model.Product) float64 {
	var total float64
	for _, p := range products {
		total += MonthlyCost(p)
	}
	return total
}

// DaysUntil is the calendar-day distance from ref to the product's run-out
// date. Negative when the product is overdue.
func DaysUntil(p model.Product, ref time.Time, loc *time.Location) int {
	from := StartOfDay(ref, loc)
	to := NextRunOut(p, loc)
	// Both instants sit at local midnight, so the difference is a whole
	// number of days give or take a DST hour; rounding absorbs the hour.
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// StatusFor buckets a days-until value. Boundaries are inclusive: exactly
// headsUpDays away is still "soon".
func StatusFor(days, headsUpDays int) Status {
	switch {
	case days < 0:
		return StatusOverdue
	case days == 0:
		return StatusToday
	case days == 1:
		return StatusTomorrow
	case days <= headsUpDays:
		return StatusSoon
	default:
		return StatusOK
	}
}

// ProductStatus is a convenience combining DaysUntil and StatusFor.
func ProductStatus(p model.Product, headsUpDays int, ref time.Time, loc *time.Location) Status {
	return StatusFor(DaysUntil(p, ref, loc), headsUpDays)
}

// DueWithin returns the products running out within the given number of
// days (inclusive, overdue included), sorted by run-out date then name.
func DueWithin(products []model.Product, days int, ref time.Time, loc *time.Location) []model.Product {
	var due []model.Product
	for _, p := range products {
		if DaysUntil(p, ref, loc) <= days {
			due = append(due, p)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		ri, rj := NextRunOut(due[i], loc), NextRunOut(due[j], loc)
		if !ri.Equal(rj) {
			return ri.Before(rj)
		}
		return due[i].Name < due[j].Name
	})
	return due
}
