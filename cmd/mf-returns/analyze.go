package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/pkg/validation"
	"go.uber.org/zap"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	app              *app
	histories        stringList
	schemes          stringList
	monthlySIP       float64
	investmentMonths int
	holdingMonths    int
	lumpsumAmount    float64
	purchaseNAV      float64
	currentNAV       float64
	holdingYears     float64
	fundType         string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "SIP, lumpsum and tax report for one or more schemes" }
func (*analyzeCmd) Usage() string {
	return `mf-returns analyze [-history <file>]... [-scheme <code>]... [investment flags]

  Computes SIP returns over each scheme's history, lumpsum returns, and the
  capital gains tax on both. Without -history or -scheme only the lumpsum is
  analyzed. Schemes are analyzed concurrently.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	d := c.app.conf.Defaults
	f.Var(&c.histories, "history", "NAV history document (repeatable)")
	f.Var(&c.schemes, "scheme", "scheme code to read from the data directory (repeatable)")
	f.Float64Var(&c.monthlySIP, "sip", d.MonthlySIP, "monthly SIP amount")
	f.IntVar(&c.investmentMonths, "months", d.InvestmentMonths, "number of most recent months invested")
	f.IntVar(&c.holdingMonths, "holding-months", d.HoldingMonths, "SIP holding period in months for tax")
	f.Float64Var(&c.lumpsumAmount, "lumpsum", d.LumpsumAmount, "lumpsum amount (0 skips the lumpsum)")
	f.Float64Var(&c.purchaseNAV, "purchase-nav", d.PurchaseNAV, "lumpsum purchase NAV")
	f.Float64Var(&c.currentNAV, "current-nav", d.CurrentNAV, "current NAV")
	f.Float64Var(&c.holdingYears, "years", d.HoldingYears, "lumpsum holding period in years")
	f.StringVar(&c.fundType, "fund-type", d.FundType, "fund type (equity, debt, ...)")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, w := range validation.ValidateHoldingPeriod(c.investmentMonths, c.holdingMonths) {
		c.app.logger.Warn("Input warning: "+w, zap.String("op", "main.analyzeCmd"))
	}

	base := analysis.Request{
		MonthlySIP:       c.monthlySIP,
		InvestmentMonths: c.investmentMonths,
		HoldingMonths:    c.holdingMonths,
		LumpsumAmount:    c.lumpsumAmount,
		PurchaseNAV:      c.purchaseNAV,
		CurrentNAV:       c.currentNAV,
		HoldingYears:     c.holdingYears,
		FundType:         c.fundType,
	}

	var reqs []analysis.Request
	add := func(file, scheme string) error {
		meta, series, err := c.app.loadSeries(file, scheme)
		if err != nil {
			return err
		}
		req := base
		req.SchemeCode = meta.SchemeCode
		req.SchemeName = meta.SchemeName
		req.Series = series
		reqs = append(reqs, req)
		return nil
	}
	for _, file := range c.histories {
		if err := add(file, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading NAV history: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	for _, scheme := range c.schemes {
		if err := add("", scheme); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading NAV history: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if len(reqs) == 0 {
		reqs = append(reqs, base)
	}

	reports, err := c.app.analyzer().AnalyzeAll(ctx, reqs)
	if err != nil {
		return c.app.fail("analysis failed", "main.analyzeCmd", err)
	}
	return c.app.report(reports...)
}
