// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/mf-returns/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, constants.OutputFormatXLSX:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, constants.OutputFormatXLSX, format)
}

// ValidateOutputTarget checks the format and that formats written to a file
// have one.
func ValidateOutputTarget(format, file string) error {
	if err := ValidateOutputFormat(format); err != nil {
		return err
	}
	if format == constants.OutputFormatXLSX && file == "" {
		return fmt.Errorf("output format %s requires an output file", format)
	}
	return nil
}
