// Package analysis combines the returns and tax calculations for a scheme
// into a single report and runs batches of them concurrently.
package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/iwvelando/mf-returns/pkg/finance"
	"github.com/iwvelando/mf-returns/pkg/irr"
	"github.com/iwvelando/mf-returns/pkg/navseries"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request describes the investments to analyze for one scheme.
type Request struct {
	SchemeCode string
	SchemeName string
	Series     *navseries.MonthlySeries

	MonthlySIP       float64
	InvestmentMonths int
	HoldingMonths    int

	// The lumpsum is valued at CurrentNAV; SIP units are valued at the
	// latest NAV of Series.
	LumpsumAmount float64
	PurchaseNAV   float64
	CurrentNAV    float64
	HoldingYears  float64

	FundType string
}

// Report holds every result computed for a Request. Results for steps that
// did not apply are nil and the reason is recorded in Notes. Tax holds a
// standalone tax computation and is never set by Analyze.
type Report struct {
	SchemeCode string
	SchemeName string
	SIP        *finance.SIPResult
	SIPTax     *finance.TaxResult
	Lumpsum    *finance.LumpsumResult
	LumpsumTax *finance.TaxResult
	Tax        *finance.TaxResult
	Notes      []string
}

// Analyzer runs analyses with a shared calculator.
type Analyzer struct {
	logger      *zap.Logger
	calc        *finance.Calculator
	concurrency int
}

// NewAnalyzer creates an Analyzer. A non-positive concurrency selects the
// default batch size.
func NewAnalyzer(logger *zap.Logger, calc *finance.Calculator, concurrency int) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calc == nil {
		calc = finance.NewCalculator(logger, irr.Options{})
	}
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}
	return &Analyzer{logger: logger, calc: calc, concurrency: concurrency}
}

// Analyze computes SIP returns and their tax when the request has a series
// and a monthly SIP, and lumpsum returns and their tax when it has a lumpsum
// amount. The first failing step aborts the report.
func (a *Analyzer) Analyze(req Request) (Report, error) {
	report := Report{SchemeCode: req.SchemeCode, SchemeName: req.SchemeName}

	switch {
	case req.MonthlySIP <= 0:
		report.Notes = append(report.Notes, "SIP returns skipped: no monthly SIP amount")
	case req.Series == nil:
		report.Notes = append(report.Notes, "SIP returns skipped: no NAV history")
	default:
		sip, err := a.calc.SIPReturns(finance.SIPInput{
			Series:           req.Series,
			MonthlySIP:       req.MonthlySIP,
			InvestmentMonths: req.InvestmentMonths,
		})
		if err != nil {
			return Report{}, fmt.Errorf("%s: SIP returns: %w", req.label(), err)
		}
		report.SIP = &sip
		if sip.AnnualizedIRRPct == nil {
			report.Notes = append(report.Notes, "SIP IRR could not be determined")
		}

		tax, err := a.calc.CapitalGainsTax(finance.TaxInput{
			GainAmount:    sip.AbsoluteGain,
			HoldingMonths: req.HoldingMonths,
			FundType:      req.FundType,
		})
		if err != nil {
			return Report{}, fmt.Errorf("%s: SIP tax: %w", req.label(), err)
		}
		report.SIPTax = &tax
	}

	if req.LumpsumAmount > 0 {
		lumpsum, err := a.calc.LumpsumReturns(finance.LumpsumInput{
			PurchaseNAV:      req.PurchaseNAV,
			CurrentNAV:       req.CurrentNAV,
			InvestmentAmount: req.LumpsumAmount,
			HoldingYears:     req.HoldingYears,
		})
		if err != nil {
			return Report{}, fmt.Errorf("%s: lumpsum returns: %w", req.label(), err)
		}
		report.Lumpsum = &lumpsum

		tax, err := a.calc.CapitalGainsTax(finance.TaxInput{
			GainAmount:    lumpsum.Gain,
			HoldingMonths: int(math.Round(req.HoldingYears * constants.MonthsPerYear)),
			FundType:      req.FundType,
		})
		if err != nil {
			return Report{}, fmt.Errorf("%s: lumpsum tax: %w", req.label(), err)
		}
		report.LumpsumTax = &tax
	} else {
		report.Notes = append(report.Notes, "lumpsum returns skipped: no investment amount")
	}

	a.logger.Debug("analysis complete",
		zap.String("op", "analysis.Analyze"),
		zap.String("scheme", req.label()),
		zap.Bool("sip", report.SIP != nil),
		zap.Bool("lumpsum", report.Lumpsum != nil),
	)

	return report, nil
}

// AnalyzeAll analyzes reqs concurrently and returns the reports in request
// order. The first error cancels the remaining requests.
func (a *Analyzer) AnalyzeAll(ctx context.Context, reqs []Request) ([]Report, error) {
	reports := make([]Report, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := a.Analyze(reqs[i])
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Warn("batch analysis failed",
			zap.String("op", "analysis.AnalyzeAll"),
			zap.Int("requests", len(reqs)),
			zap.Error(err),
		)
		return nil, err
	}
	return reports, nil
}

func (r Request) label() string {
	switch {
	case r.SchemeName != "":
		return r.SchemeName
	case r.SchemeCode != "":
		return "scheme " + r.SchemeCode
	}
	return "request"
}
