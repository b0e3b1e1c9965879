// Package irr finds the periodic internal rate of return of evenly spaced
// cash flows by bisection.
package irr

import (
	"fmt"
	"math"

	"github.com/iwvelando/mf-returns/pkg/constants"
)

// Options tunes the solver. Zero values select the defaults.
type Options struct {
	Tolerance     float64 `mapstructure:"tolerance" yaml:"tolerance,omitempty"`
	MaxIterations int     `mapstructure:"maxIterations" yaml:"maxIterations,omitempty"`
}

// DefaultOptions returns the solver defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:     constants.DefaultIRRTolerance,
		MaxIterations: constants.DefaultIRRMaxIterations,
	}
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = constants.DefaultIRRTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultIRRMaxIterations
	}
	return o
}

// Result is the outcome of Solve. When Solved is false no sign change of the
// NPV could be bracketed and Rate is 0; that is distinct from a solved rate
// of 0.
type Result struct {
	Rate       float64
	Solved     bool
	Iterations int
}

// InvalidInputError reports cash flows the solver cannot work with.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid IRR input: " + e.Reason
}

// NPV discounts cashFlows at rate, treating the first flow as occurring at
// time zero.
func NPV(rate float64, cashFlows []float64) float64 {
	total := 0.0
	factor := 1.0
	for _, cf := range cashFlows {
		total += cf / factor
		factor *= 1 + rate
	}
	return total
}

// Solve returns the periodic rate at which the NPV of cashFlows is zero.
//
// The root is bracketed in [-0.9999, 1.0], widening the upper bound by 1.0 up
// to ten times. An unbracketed root is not an error: the unsolvable result is
// returned instead. Bisection stops early once |NPV| is under the tolerance,
// otherwise the last midpoint after MaxIterations steps is returned. With
// several sign changes the root found is whichever the bisection reaches.
func Solve(cashFlows []float64, opts Options) (Result, error) {
	if len(cashFlows) < 2 {
		return Result{}, &InvalidInputError{Reason: fmt.Sprintf("need at least 2 cash flows, got %d", len(cashFlows))}
	}
	opts = opts.withDefaults()

	low, high := constants.IRRLowerBound, constants.IRRUpperBound
	npvLow := boundNPV(low, cashFlows)
	npvHigh := boundNPV(high, cashFlows)

	for expansions := 0; npvLow*npvHigh > 0 && expansions < constants.IRRBracketExpansions; expansions++ {
		high += 1.0
		npvHigh = boundNPV(high, cashFlows)
	}

	if npvLow*npvHigh > 0 || !isFinite(npvLow) || !isFinite(npvHigh) {
		return Result{}, nil
	}

	var rate float64
	for i := 1; i <= opts.MaxIterations; i++ {
		rate = (low + high) / 2
		npvMid := NPV(rate, cashFlows)
		if math.Abs(npvMid) < opts.Tolerance {
			return Result{Rate: rate, Solved: true, Iterations: i}, nil
		}
		if npvLow*npvMid < 0 {
			high = rate
		} else {
			low = rate
			npvLow = npvMid
		}
	}
	return Result{Rate: rate, Solved: true, Iterations: opts.MaxIterations}, nil
}

// Annualize compounds a monthly rate over a year and returns it as a percentage.
func Annualize(monthlyRate float64) float64 {
	return (math.Pow(1+monthlyRate, constants.MonthsPerYear) - 1) * constants.PercentageMultiplier
}

// boundNPV is NPV for a bracket endpoint. Near -100% the discount factors of
// long series underflow, so a non-finite NPV is replaced by the NPV scaled by
// (1+rate)^(n-1), which has the same sign for rate > -1.
func boundNPV(rate float64, cashFlows []float64) float64 {
	if v := NPV(rate, cashFlows); isFinite(v) {
		return v
	}
	total := 0.0
	factor := 1.0
	for i := len(cashFlows) - 1; i >= 0; i-- {
		total += cashFlows[i] * factor
		factor *= 1 + rate
	}
	return total
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
