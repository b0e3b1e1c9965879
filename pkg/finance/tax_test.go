package finance

import (
	"errors"
	"testing"

	"github.com/iwvelando/mf-returns/pkg/irr"
	"github.com/iwvelando/mf-returns/pkg/mathutil"
	"go.uber.org/zap"
)

func TestCapitalGainsTaxEquity(t *testing.T) {
	calc := NewCalculator(zap.NewNop(), irr.Options{})

	tests := []struct {
		name        string
		gain        float64
		months      int
		term        GainTerm
		rate        float64
		exempt      float64
		taxableGain float64
		tax         float64
		postTaxGain float64
	}{
		{
			name:        "Short term",
			gain:        100000,
			months:      6,
			term:        ShortTerm,
			rate:        0.20,
			taxableGain: 100000,
			tax:         20000,
			postTaxGain: 80000,
		},
		{
			name:        "Long term below exemption",
			gain:        100000,
			months:      24,
			term:        LongTerm,
			rate:        0.125,
			exempt:      125000,
			taxableGain: 0,
			tax:         0,
			postTaxGain: 100000,
		},
		{
			name:        "Long term above exemption",
			gain:        225000,
			months:      24,
			term:        LongTerm,
			rate:        0.125,
			exempt:      125000,
			taxableGain: 100000,
			tax:         12500,
			postTaxGain: 212500,
		},
		{
			name:        "Twelve months is long term",
			gain:        225000,
			months:      12,
			term:        LongTerm,
			rate:        0.125,
			exempt:      125000,
			taxableGain: 100000,
			tax:         12500,
			postTaxGain: 212500,
		},
		{
			name:        "Eleven months is short term",
			gain:        50000,
			months:      11,
			term:        ShortTerm,
			rate:        0.20,
			taxableGain: 50000,
			tax:         10000,
			postTaxGain: 40000,
		},
		{
			name:        "Zero months",
			gain:        1000,
			months:      0,
			term:        ShortTerm,
			rate:        0.20,
			taxableGain: 1000,
			tax:         200,
			postTaxGain: 800,
		},
		{
			name:        "Long term loss",
			gain:        -5000,
			months:      36,
			term:        LongTerm,
			rate:        0.125,
			exempt:      125000,
			taxableGain: 0,
			tax:         0,
			postTaxGain: -5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.CapitalGainsTax(TaxInput{GainAmount: tt.gain, HoldingMonths: tt.months, FundType: "equity"})
			if err != nil {
				t.Fatalf("CapitalGainsTax() error = %v", err)
			}
			if !result.Supported {
				t.Fatal("expected equity to be supported")
			}
			if result.Term != tt.term {
				t.Errorf("Term = %s, want %s", result.Term, tt.term)
			}
			checks := []struct {
				field string
				got   float64
				want  float64
			}{
				{"Rate", result.Rate, tt.rate},
				{"ExemptAmount", result.ExemptAmount, tt.exempt},
				{"TaxableGain", result.TaxableGain, tt.taxableGain},
				{"Tax", result.Tax, tt.tax},
				{"PostTaxGain", result.PostTaxGain, tt.postTaxGain},
				{"TotalGain", result.TotalGain, tt.gain},
			}
			for _, c := range checks {
				if !mathutil.WithinTolerance(c.got, c.want, 1e-9) {
					t.Errorf("%s = %v, want %v", c.field, c.got, c.want)
				}
			}
		})
	}
}

func TestCapitalGainsTaxFundTypeCaseInsensitive(t *testing.T) {
	calc := NewCalculator(zap.NewNop(), irr.Options{})
	for _, fundType := range []string{"Equity", "EQUITY", " equity "} {
		result, err := calc.CapitalGainsTax(TaxInput{GainAmount: 100000, HoldingMonths: 6, FundType: fundType})
		if err != nil {
			t.Fatalf("CapitalGainsTax(%q) error = %v", fundType, err)
		}
		if !result.Supported || result.Tax != 20000 {
			t.Errorf("CapitalGainsTax(%q) = %+v, want supported with tax 20000", fundType, result)
		}
	}
}

func TestCapitalGainsTaxUnsupportedFundType(t *testing.T) {
	calc := NewCalculator(zap.NewNop(), irr.Options{})
	for _, fundType := range []string{"debt", "hybrid", ""} {
		result, err := calc.CapitalGainsTax(TaxInput{GainAmount: 100000, HoldingMonths: 24, FundType: fundType})
		if err != nil {
			t.Fatalf("CapitalGainsTax(%q) error = %v, want nil", fundType, err)
		}
		if result.Supported {
			t.Errorf("CapitalGainsTax(%q) should not be supported", fundType)
		}
		if result.Note != UnsupportedFundTypeNote {
			t.Errorf("Note = %q, want %q", result.Note, UnsupportedFundTypeNote)
		}
		if result.Tax != 0 || result.Term != "" {
			t.Errorf("unsupported result carries computed figures: %+v", result)
		}
	}
}

func TestCapitalGainsTaxNegativeHoldingMonths(t *testing.T) {
	calc := NewCalculator(zap.NewNop(), irr.Options{})
	_, err := calc.CapitalGainsTax(TaxInput{GainAmount: 1000, HoldingMonths: -1, FundType: "equity"})
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("CapitalGainsTax() error = %v, want InvalidInputError", err)
	}
}

func TestGainTermLabel(t *testing.T) {
	if ShortTerm.Label() != "Short Term (STCG)" {
		t.Errorf("ShortTerm.Label() = %q", ShortTerm.Label())
	}
	if LongTerm.Label() != "Long Term (LTCG)" {
		t.Errorf("LongTerm.Label() = %q", LongTerm.Label())
	}
	if GainTerm("").Label() != "" {
		t.Errorf("empty term label = %q", GainTerm("").Label())
	}
}
