// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"
	"time"

	"github.com/iwvelando/mf-returns/pkg/datetime"
	"github.com/iwvelando/mf-returns/pkg/navseries"
)

// MonthlyRecords returns one NAV record per month starting at start (a
// dd-mm-yyyy date), taking successive values from navs.
func MonthlyRecords(start string, navs ...float64) []navseries.Record {
	records := make([]navseries.Record, 0, len(navs))
	for i, nav := range navs {
		date, err := datetime.OffsetDate(start, datetime.NAVDateLayout, i)
		if err != nil {
			panic(err)
		}
		records = append(records, navseries.Record{Date: date, NAV: nav})
	}
	return records
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// FlatNAVs returns n copies of nav.
func FlatNAVs(n int, nav float64) []float64 {
	navs := make([]float64, n)
	for i := range navs {
		navs[i] = nav
	}
	return navs
}

// MustSeries aggregates records, failing the test on error.
func MustSeries(t testing.TB, records []navseries.Record) *navseries.MonthlySeries {
	t.Helper()
	series, err := navseries.Aggregate(records)
	if err != nil {
		t.Fatalf("failed to aggregate NAV records: %v", err)
	}
	return series
}
