// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/mf-returns/pkg/constants"
)

// ValidateHoldingPeriod warns about holding periods that cannot follow from
// the investment period.
func ValidateHoldingPeriod(investmentMonths, holdingMonths int) []string {
	var warnings []string
	if investmentMonths <= 0 {
		warnings = append(warnings, fmt.Sprintf("investment period of %d months; SIP returns will not be computed", investmentMonths))
	}
	if holdingMonths < 0 {
		warnings = append(warnings, fmt.Sprintf("holding period is negative (%d months)", holdingMonths))
	} else if holdingMonths < investmentMonths {
		warnings = append(warnings, fmt.Sprintf("holding period (%d months) is shorter than the investment period (%d months)",
			holdingMonths, investmentMonths))
	}
	return warnings
}

// ValidateFundType warns when capital gains tax will not be computed for
// fundType.
func ValidateFundType(fundType string) string {
	if strings.ToLower(strings.TrimSpace(fundType)) == constants.FundTypeEquity {
		return ""
	}
	return fmt.Sprintf("capital gains tax is only computed for equity funds, got %q", fundType)
}

// ValidateLumpsum warns when a lumpsum amount is set without the values
// needed to compute its returns.
func ValidateLumpsum(amount, purchaseNAV, holdingYears float64) string {
	if amount > 0 && (purchaseNAV <= 0 || holdingYears <= 0) {
		return "lumpsum amount is set but purchase NAV or holding years is not positive"
	}
	return ""
}
