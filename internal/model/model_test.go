package model

import (
	"testing"
	"time"
)

func TestNewProductClampsLastsDays(t *testing.T) {
	p := NewProduct("Milk", 5000, 0, time.Now(), "", CategoryBeverages)
	if p.LastsDays != 1 {
		t.Fatalf("LastsDays = %d, want 1", p.LastsDays)
	}
	if p.ID == "" {
		t.Fatal("ID should be assigned")
	}

	p = NewProduct("Rice", 8000, 30, time.Now(), "", CategoryFood)
	if p.LastsDays != 30 {
		t.Fatalf("LastsDays = %d, want 30", p.LastsDays)
	}
}

func TestParseCategory(t *testing.T) {
	if got := ParseCategory("Pet Supplies"); got != CategoryPetSupplies {
		t.Fatalf("ParseCategory = %q", got)
	}
	if got := ParseCategory("bogus"); got != CategoryOther {
		t.Fatalf("ParseCategory(bogus) = %q, want Other", got)
	}
}

func TestParseCurrency(t *testing.T) {
	if got := ParseCurrency("USD"); got != CurrencyUSD {
		t.Fatalf("ParseCurrency(USD) = %q", got)
	}
	if got := ParseCurrency(""); got != CurrencyCOP {
		t.Fatalf("ParseCurrency default = %q, want COP", got)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Currency != CurrencyCOP || s.HeadsUpDays != 2 || s.ReminderHour != 9 {
		t.Fatalf("defaults = %+v", s)
	}
	if s.BudgetEnabled || s.LastBudgetAlertAt != nil {
		t.Fatalf("budget defaults = %+v", s)
	}
}
