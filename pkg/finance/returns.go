package finance

import (
	"math"
	"time"

	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/iwvelando/mf-returns/pkg/irr"
	"github.com/iwvelando/mf-returns/pkg/mathutil"
	"github.com/iwvelando/mf-returns/pkg/navseries"
	"go.uber.org/zap"
)

// SIPInput describes a monthly systematic investment over the most recent
// months of a NAV series.
type SIPInput struct {
	Series           *navseries.MonthlySeries
	MonthlySIP       float64
	InvestmentMonths int
	// CurrentNAV values the accumulated units. Zero selects the NAV of the
	// latest record in Series.
	CurrentNAV float64
}

// SIPResult holds the outcome of a SIP computation. AnnualizedIRRPct is nil
// when no IRR could be determined for the cash flows.
type SIPResult struct {
	MonthlySIP       float64
	MonthsConsidered int
	FirstMonth       navseries.MonthKey
	LastMonth        navseries.MonthKey
	TotalInvested    float64
	Units            float64
	CurrentNAV       float64
	// ValuationDate is the date of the latest record when CurrentNAV was
	// taken from the series, and zero otherwise.
	ValuationDate     time.Time
	CurrentValue      float64
	AbsoluteGain      float64
	AbsoluteReturnPct float64
	AnnualizedIRRPct  *float64
	IRR               irr.Result
	CashFlows         []float64
}

// SIPReturns buys MonthlySIP worth of units at the NAV of each of the most
// recent InvestmentMonths months and values them at the current NAV.
func (c *Calculator) SIPReturns(in SIPInput) (SIPResult, error) {
	if err := mustBePositive("monthly SIP", in.MonthlySIP); err != nil {
		return SIPResult{}, err
	}
	if in.InvestmentMonths <= 0 {
		return SIPResult{}, &InvalidInputError{Field: "investment months", Value: float64(in.InvestmentMonths), Reason: "must be greater than zero"}
	}
	if in.CurrentNAV < 0 {
		return SIPResult{}, &InvalidInputError{Field: "current NAV", Value: in.CurrentNAV, Reason: "must not be negative"}
	}
	if available := in.Series.Len(); available < in.InvestmentMonths {
		return SIPResult{}, &InsufficientHistoryError{Available: available, Required: in.InvestmentMonths}
	}

	window := in.Series.Latest(in.InvestmentMonths)
	cashFlows := make([]float64, 0, len(window)+1)
	units := 0.0
	for _, month := range window {
		if !mathutil.IsPositiveFinite(month.NAV) {
			return SIPResult{}, &InvalidInputError{Field: "NAV for " + month.Key.String(), Value: month.NAV, Reason: "must be greater than zero"}
		}
		units += in.MonthlySIP / month.NAV
		cashFlows = append(cashFlows, -in.MonthlySIP)
	}

	currentNAV := in.CurrentNAV
	var valuationDate time.Time
	if currentNAV == 0 {
		currentNAV = in.Series.LatestNAV()
		valuationDate = in.Series.LatestDate()
	}
	currentValue := units * currentNAV
	cashFlows = append(cashFlows, currentValue)

	totalInvested := in.MonthlySIP * float64(in.InvestmentMonths)
	gain := currentValue - totalInvested

	result := SIPResult{
		MonthlySIP:        in.MonthlySIP,
		MonthsConsidered:  in.InvestmentMonths,
		FirstMonth:        window[0].Key,
		LastMonth:         window[len(window)-1].Key,
		TotalInvested:     totalInvested,
		Units:             units,
		CurrentNAV:        currentNAV,
		ValuationDate:     valuationDate,
		CurrentValue:      currentValue,
		AbsoluteGain:      gain,
		AbsoluteReturnPct: mathutil.CalculatePercentage(gain, totalInvested),
		CashFlows:         cashFlows,
	}

	solved, err := irr.Solve(cashFlows, c.solverOpt)
	if err != nil {
		return SIPResult{}, err
	}
	result.IRR = solved
	if solved.Solved {
		annualized := irr.Annualize(solved.Rate)
		result.AnnualizedIRRPct = &annualized
	} else {
		c.logger.Info("IRR not determinable for SIP cash flows",
			zap.String("op", "finance.SIPReturns"),
			zap.Int("months", in.InvestmentMonths),
			zap.Float64("currentValue", currentValue),
		)
	}

	c.logger.Debug("SIP returns computed",
		zap.String("op", "finance.SIPReturns"),
		zap.Float64("monthlySip", in.MonthlySIP),
		zap.Int("months", in.InvestmentMonths),
		zap.Float64("units", units),
		zap.Float64("currentValue", currentValue),
		zap.Int("irrIterations", solved.Iterations),
	)

	return result, nil
}

// LumpsumInput describes a one-time purchase held for HoldingYears.
type LumpsumInput struct {
	PurchaseNAV      float64
	CurrentNAV       float64
	InvestmentAmount float64
	HoldingYears     float64
}

// LumpsumResult holds the outcome of a lumpsum computation.
type LumpsumResult struct {
	InvestedAmount    float64
	PurchaseNAV       float64
	CurrentNAV        float64
	HoldingYears      float64
	Units             float64
	CurrentValue      float64
	Gain              float64
	AbsoluteReturnPct float64
	CAGRPct           float64
}

// LumpsumReturns computes absolute return and CAGR for a one-time investment.
func (c *Calculator) LumpsumReturns(in LumpsumInput) (LumpsumResult, error) {
	if err := mustBePositive("purchase NAV", in.PurchaseNAV); err != nil {
		return LumpsumResult{}, err
	}
	if err := mustBePositive("investment amount", in.InvestmentAmount); err != nil {
		return LumpsumResult{}, err
	}
	if err := mustBePositive("holding years", in.HoldingYears); err != nil {
		return LumpsumResult{}, err
	}
	if in.CurrentNAV < 0 {
		return LumpsumResult{}, &InvalidInputError{Field: "current NAV", Value: in.CurrentNAV, Reason: "must not be negative"}
	}

	units := in.InvestmentAmount / in.PurchaseNAV
	currentValue := units * in.CurrentNAV
	gain := currentValue - in.InvestmentAmount
	cagr := (math.Pow(currentValue/in.InvestmentAmount, 1/in.HoldingYears) - 1) * constants.PercentageMultiplier
	if math.IsInf(cagr, 0) || math.IsNaN(cagr) {
		return LumpsumResult{}, &InvalidInputError{Field: "holding years", Value: in.HoldingYears, Reason: "too short to annualize the return"}
	}

	c.logger.Debug("lumpsum returns computed",
		zap.String("op", "finance.LumpsumReturns"),
		zap.Float64("amount", in.InvestmentAmount),
		zap.Float64("units", units),
		zap.Float64("cagrPct", cagr),
	)

	return LumpsumResult{
		InvestedAmount:    in.InvestmentAmount,
		PurchaseNAV:       in.PurchaseNAV,
		CurrentNAV:        in.CurrentNAV,
		HoldingYears:      in.HoldingYears,
		Units:             units,
		CurrentValue:      currentValue,
		Gain:              gain,
		AbsoluteReturnPct: mathutil.CalculatePercentage(gain, in.InvestmentAmount),
		CAGRPct:           cagr,
	}, nil
}
