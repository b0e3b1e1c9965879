// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/mf-returns/pkg/constants"
)

const (
	// NAVDateLayout is the format NAV records carry their dates in.
	NAVDateLayout = constants.NAVDateLayout

	// MonthKeyLayout is the format used to print a month key.
	MonthKeyLayout = constants.MonthKeyLayout
)

// ParseNAVDate parses a day-month-year NAV date. Day and month may omit
// their leading zero.
func ParseNAVDate(date string) (time.Time, error) {
	t, err := time.Parse(NAVDateLayout, date)
	if err == nil {
		return t, nil
	}
	if t, unpaddedErr := time.Parse(constants.NAVDateUnpaddedLayout, date); unpaddedErr == nil {
		return t, nil
	}
	return time.Time{}, err
}

// FormatNAVDate renders t in the day-month-year NAV layout.
func FormatNAVDate(t time.Time) string {
	return t.Format(NAVDateLayout)
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}
