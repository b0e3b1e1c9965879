package finance

import (
	"strings"

	"github.com/iwvelando/mf-returns/pkg/constants"
	"go.uber.org/zap"
)

// GainTerm classifies a capital gain by holding period.
type GainTerm string

const (
	// ShortTerm gains were held for less than a year.
	ShortTerm GainTerm = "short-term"
	// LongTerm gains were held for a year or more.
	LongTerm GainTerm = "long-term"
)

// Label returns the conventional abbreviation for the term.
func (g GainTerm) Label() string {
	switch g {
	case ShortTerm:
		return "Short Term (STCG)"
	case LongTerm:
		return "Long Term (LTCG)"
	}
	return ""
}

// UnsupportedFundTypeNote explains why no tax is computed for non-equity funds.
const UnsupportedFundTypeNote = "debt fund taxation requires income tax slab information"

// TaxInput describes a realized gain.
type TaxInput struct {
	GainAmount    float64
	HoldingMonths int
	FundType      string
}

// TaxResult is the capital gains tax on a gain. When Supported is false the
// fund type has no computed rule and only Note is meaningful.
type TaxResult struct {
	FundType      string
	HoldingMonths int
	Supported     bool
	Note          string
	Term          GainTerm
	Rate          float64
	ExemptAmount  float64
	TotalGain     float64
	TaxableGain   float64
	Tax           float64
	PostTaxGain   float64
}

// CapitalGainsTax applies the equity capital gains rules: 20% on gains held
// under 12 months, 12.5% on long term gains above a 125000 exemption.
func (c *Calculator) CapitalGainsTax(in TaxInput) (TaxResult, error) {
	if in.HoldingMonths < 0 {
		return TaxResult{}, &InvalidInputError{Field: "holding months", Value: float64(in.HoldingMonths), Reason: "must not be negative"}
	}

	fundType := strings.ToLower(strings.TrimSpace(in.FundType))
	if fundType != constants.FundTypeEquity {
		c.logger.Debug("capital gains tax not computed for fund type",
			zap.String("op", "finance.CapitalGainsTax"),
			zap.String("fundType", in.FundType),
		)
		return TaxResult{
			FundType:      fundType,
			HoldingMonths: in.HoldingMonths,
			TotalGain:     in.GainAmount,
			Note:          UnsupportedFundTypeNote,
		}, nil
	}

	result := TaxResult{
		FundType:      fundType,
		HoldingMonths: in.HoldingMonths,
		Supported:     true,
		TotalGain:     in.GainAmount,
	}

	if in.HoldingMonths < constants.LongTermHoldingMonths {
		result.Term = ShortTerm
		result.Rate = constants.ShortTermEquityRate
		result.TaxableGain = in.GainAmount
	} else {
		result.Term = LongTerm
		result.Rate = constants.LongTermEquityRate
		result.ExemptAmount = constants.LongTermEquityExemption
		result.TaxableGain = max(0, in.GainAmount-constants.LongTermEquityExemption)
	}
	result.Tax = result.TaxableGain * result.Rate
	result.PostTaxGain = in.GainAmount - result.Tax

	c.logger.Debug("capital gains tax computed",
		zap.String("op", "finance.CapitalGainsTax"),
		zap.String("term", string(result.Term)),
		zap.Float64("gain", in.GainAmount),
		zap.Float64("tax", result.Tax),
	)

	return result, nil
}
