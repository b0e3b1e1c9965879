package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/pkg/finance"
	"go.uber.org/zap"
)

// sipCmd holds the flags for the 'sip' subcommand.
type sipCmd struct {
	app        *app
	history    string
	scheme     string
	amount     float64
	months     int
	currentNAV float64
}

func (*sipCmd) Name() string     { return "sip" }
func (*sipCmd) Synopsis() string { return "returns of a monthly SIP over recent NAV history" }
func (*sipCmd) Usage() string {
	return `mf-returns sip (-history <file> | -scheme <code>) [-amount <sip>] [-months <n>] [-current-nav <nav>]

  Buys a fixed amount of units at each of the last n monthly NAVs and values
  them at the current NAV, reporting absolute return and annualized IRR.
`
}

func (c *sipCmd) SetFlags(f *flag.FlagSet) {
	d := c.app.conf.Defaults
	f.StringVar(&c.history, "history", "", "NAV history document (JSON)")
	f.StringVar(&c.scheme, "scheme", "", "scheme code to read from the data directory")
	f.Float64Var(&c.amount, "amount", d.MonthlySIP, "monthly SIP amount")
	f.IntVar(&c.months, "months", d.InvestmentMonths, "number of most recent months invested")
	f.Float64Var(&c.currentNAV, "current-nav", 0, "NAV to value units at (0 uses the latest NAV in the history)")
}

func (c *sipCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	meta, series, err := c.app.loadSeries(c.history, c.scheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading NAV history: %v\n", err)
		return subcommands.ExitUsageError
	}

	result, err := c.app.calc.SIPReturns(finance.SIPInput{
		Series:           series,
		MonthlySIP:       c.amount,
		InvestmentMonths: c.months,
		CurrentNAV:       c.currentNAV,
	})
	if err != nil {
		return c.app.fail("SIP calculation failed", "main.sipCmd", err)
	}

	return c.app.report(analysis.Report{SchemeCode: meta.SchemeCode, SchemeName: meta.SchemeName, SIP: &result})
}

// lumpsumCmd holds the flags for the 'lumpsum' subcommand.
type lumpsumCmd struct {
	app         *app
	purchaseNAV float64
	currentNAV  float64
	amount      float64
	years       float64
}

func (*lumpsumCmd) Name() string     { return "lumpsum" }
func (*lumpsumCmd) Synopsis() string { return "returns and CAGR of a one-time investment" }
func (*lumpsumCmd) Usage() string {
	return `mf-returns lumpsum [-purchase-nav <nav>] [-current-nav <nav>] [-amount <amount>] [-years <years>]

  Reports units bought, current value, absolute return and CAGR.
`
}

func (c *lumpsumCmd) SetFlags(f *flag.FlagSet) {
	d := c.app.conf.Defaults
	f.Float64Var(&c.purchaseNAV, "purchase-nav", d.PurchaseNAV, "NAV at purchase")
	f.Float64Var(&c.currentNAV, "current-nav", d.CurrentNAV, "current NAV")
	f.Float64Var(&c.amount, "amount", d.LumpsumAmount, "amount invested")
	f.Float64Var(&c.years, "years", d.HoldingYears, "holding period in years")
}

func (c *lumpsumCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := c.app.calc.LumpsumReturns(finance.LumpsumInput{
		PurchaseNAV:      c.purchaseNAV,
		CurrentNAV:       c.currentNAV,
		InvestmentAmount: c.amount,
		HoldingYears:     c.years,
	})
	if err != nil {
		return c.app.fail("lumpsum calculation failed", "main.lumpsumCmd", err)
	}
	return c.app.report(analysis.Report{Lumpsum: &result})
}

// taxCmd holds the flags for the 'tax' subcommand.
type taxCmd struct {
	app      *app
	gain     float64
	months   int
	fundType string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "capital gains tax on a realized gain" }
func (*taxCmd) Usage() string {
	return `mf-returns tax -gain <amount> [-months <holding months>] [-fund-type <type>]

  Applies the equity capital gains rules. Other fund types are reported
  without a tax amount.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	d := c.app.conf.Defaults
	f.Float64Var(&c.gain, "gain", 0, "realized gain")
	f.IntVar(&c.months, "months", d.HoldingMonths, "holding period in months")
	f.StringVar(&c.fundType, "fund-type", d.FundType, "fund type (equity, debt, ...)")
}

func (c *taxCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := c.app.calc.CapitalGainsTax(finance.TaxInput{
		GainAmount:    c.gain,
		HoldingMonths: c.months,
		FundType:      c.fundType,
	})
	if err != nil {
		return c.app.fail("tax calculation failed", "main.taxCmd", err)
	}
	return c.app.report(analysis.Report{Tax: &result})
}

func (a *app) report(reports ...analysis.Report) subcommands.ExitStatus {
	if err := a.write(reports); err != nil {
		return a.fail("failed to write output", "main.report", err)
	}
	return subcommands.ExitSuccess
}

func (a *app) fail(msg, op string, err error) subcommands.ExitStatus {
	a.logger.Error(msg,
		zap.String("op", op),
		zap.Error(err),
	)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}
