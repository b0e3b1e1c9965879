// Package finance computes SIP and lumpsum returns and equity capital gains
// tax for mutual fund investments.
package finance

import (
	"fmt"

	"github.com/iwvelando/mf-returns/pkg/irr"
	"go.uber.org/zap"
)

// Calculator runs the returns and tax computations. It holds no mutable
// state and may be shared between goroutines.
type Calculator struct {
	logger    *zap.Logger
	solverOpt irr.Options
}

// NewCalculator creates a calculator with the given logger and IRR solver
// options. If logger is nil, it will use a no-op logger to prevent panics.
func NewCalculator(logger *zap.Logger, opts irr.Options) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, solverOpt: opts}
}

// InvalidInputError reports an input that cannot be used, typically a
// non-positive value that would be divided by.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// InsufficientHistoryError reports a NAV series shorter than the requested
// investment period.
type InsufficientHistoryError struct {
	Available int
	Required  int
}

func (e *InsufficientHistoryError) Error() string {
	if e.Available == 0 {
		return "no historical NAV data available for SIP calculation"
	}
	return fmt.Sprintf("only %d months of NAV data available; %d required for SIP calculation", e.Available, e.Required)
}

func mustBePositive(field string, value float64) error {
	if value > 0 {
		return nil
	}
	return &InvalidInputError{Field: field, Value: value, Reason: "must be greater than zero"}
}
