package money

import (
	"testing"

	"github.com/mfigueredo/smarket/internal/model"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		cur    model.Currency
		want   string
	}{
		{15000, model.CurrencyCOP, "COP 15,000"},
		{0, model.CurrencyCOP, "COP 0"},
		{4.5, model.CurrencyUSD, "$4.50"},
		{1234.56, model.CurrencyUSD, "$1,234.56"},
	}

	for _, tt := range tests {
		if got := Format(tt.amount, tt.cur); got != tt.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tt.amount, tt.cur, got, tt.want)
		}
	}
}
