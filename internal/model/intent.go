package model

import "time"

// BudgetAlertID is the fixed identifier of the single budget-alert intent.
// The pending set dedupes by ID, so at most one is ever scheduled.
const BudgetAlertID = "budget-alert"

// NotificationIntent is one planned local notification: what to say and
// when to say it. Intents are values; the pending set they live in is
// replaced wholesale on every planning pass.
type NotificationIntent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fire_at"`
}
