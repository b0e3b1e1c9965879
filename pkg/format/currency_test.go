package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "₹0.00"},
		{"Small", 12.5, "₹12.50"},
		{"Thousands", 1234.56, "₹1,234.56"},
		{"Rounds half away", 100.005, "₹100.01"},
		{"Negative", -151098.9, "-₹151,098.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestCurrencyIn(t *testing.T) {
	if got := CurrencyIn(1234.5, "USD"); got != "$1,234.50" {
		t.Errorf("CurrencyIn(USD) = %q, expected $1,234.50", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(14.750283); got != "14.75%" {
		t.Errorf("Percent() = %q", got)
	}
	if got := Percent(-3.456); got != "-3.46%" {
		t.Errorf("Percent(-3.456) = %q", got)
	}
}
