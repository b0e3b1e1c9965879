// Package format renders amounts for human-readable output.
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns amount in the default currency with its symbol and
// thousands separators (e.g., "-₹1,234.56").
func Currency(amount float64) string {
	return CurrencyIn(amount, constants.DefaultCurrency)
}

// CurrencyIn formats amount using the conventions of the ISO currency code.
// Unknown codes are formatted with two decimals and the code as symbol.
func CurrencyIn(amount float64, code string) string {
	m := money.New(0, code)
	cur := m.Currency()
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Percent renders a percentage with two decimals.
func Percent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
