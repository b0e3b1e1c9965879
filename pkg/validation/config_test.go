package validation

import (
	"strings"
	"testing"
)

func TestValidateHoldingPeriod(t *testing.T) {
	tests := []struct {
		name             string
		investmentMonths int
		holdingMonths    int
		expectedWarnings int
		contains         string
	}{
		{"Holding equals investment", 60, 60, 0, ""},
		{"Holding longer", 12, 36, 0, ""},
		{"Holding shorter", 60, 12, 1, "shorter than the investment period"},
		{"Negative holding", 12, -1, 1, "negative"},
		{"No investment period", 0, 12, 1, "will not be computed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateHoldingPeriod(tt.investmentMonths, tt.holdingMonths)
			if len(warnings) != tt.expectedWarnings {
				t.Fatalf("expected %d warnings, got %d: %v", tt.expectedWarnings, len(warnings), warnings)
			}
			if tt.contains != "" && !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("warning %q should contain %q", warnings[0], tt.contains)
			}
		})
	}
}

func TestValidateFundType(t *testing.T) {
	for _, ft := range []string{"equity", "Equity", " EQUITY "} {
		if w := ValidateFundType(ft); w != "" {
			t.Errorf("ValidateFundType(%q) = %q, want no warning", ft, w)
		}
	}
	for _, ft := range []string{"debt", "", "hybrid"} {
		if w := ValidateFundType(ft); w == "" {
			t.Errorf("ValidateFundType(%q) expected a warning", ft)
		}
	}
}

func TestValidateLumpsum(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		purchaseNAV  float64
		holdingYears float64
		expectWarn   bool
	}{
		{"Complete", 100000, 45.5, 3, false},
		{"No amount", 0, 0, 0, false},
		{"Missing NAV", 100000, 0, 3, true},
		{"Missing years", 100000, 45.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLumpsum(tt.amount, tt.purchaseNAV, tt.holdingYears)
			if (got != "") != tt.expectWarn {
				t.Errorf("ValidateLumpsum() = %q, expectWarn %v", got, tt.expectWarn)
			}
		})
	}
}
