package model

import "time"

// Currency selects the display currency for prices and notification bodies.
type Currency string

// Supported currencies.
const (
	CurrencyCOP Currency = "COP"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency maps a stored code to a Currency, defaulting to COP.
func ParseCurrency(s string) Currency {
	if s == string(CurrencyUSD) {
		return CurrencyUSD
	}
	return CurrencyCOP
}

// Settings defaults, used whenever no settings row exists yet.
const (
	DefaultHeadsUpDays  = 2
	DefaultReminderHour = 9
)

// AppSettings is the singleton per-installation settings record.
type AppSettings struct {
	Currency          Currency
	HeadsUpDays       int // days of lead time before run-out
	ReminderHour      int // local hour of day, 0-23
	BudgetEnabled     bool
	BudgetAmount      float64
	LastBudgetAlertAt *time.Time
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() AppSettings {
	return AppSettings{
		Currency:     CurrencyCOP,
		HeadsUpDays:  DefaultHeadsUpDays,
		ReminderHour: DefaultReminderHour,
	}
}
