// Package navseries turns raw per-date NAV records into one NAV per calendar
// month in chronological order.
package navseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/iwvelando/mf-returns/pkg/datetime"
)

// Record is a single NAV observation. Date uses the dd-mm-yyyy layout.
type Record struct {
	Date string  `json:"date"`
	NAV  float64 `json:"nav"`
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// KeyOf returns the month containing t.
func KeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// String renders the key as yyyy-mm.
func (k MonthKey) String() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format(datetime.MonthKeyLayout)
}

// MonthlyNAV is the NAV retained for one month along with the date of the
// record it came from.
type MonthlyNAV struct {
	Key  MonthKey
	NAV  float64
	Date time.Time
}

// MonthlySeries holds at most one NAV per month, ordered chronologically.
type MonthlySeries struct {
	entries    []MonthlyNAV
	index      map[MonthKey]int
	latestNAV  float64
	latestDate time.Time
}

// MalformedDateError reports a record whose date does not match the NAV layout.
type MalformedDateError struct {
	Index int
	Value string
	Err   error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed NAV date %q at record %d: expected dd-mm-yyyy", e.Value, e.Index)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

type datedRecord struct {
	date time.Time
	nav  float64
}

// Aggregate parses, sorts and folds records into a MonthlySeries. Records are
// stably sorted by date so that, within a month, the chronologically last
// record wins and same-day ties go to the record that appeared last in input.
// Any unparseable date aborts the aggregation.
func Aggregate(records []Record) (*MonthlySeries, error) {
	dated := make([]datedRecord, 0, len(records))
	for i, rec := range records {
		t, err := datetime.ParseNAVDate(rec.Date)
		if err != nil {
			return nil, &MalformedDateError{Index: i, Value: rec.Date, Err: err}
		}
		dated = append(dated, datedRecord{date: t, nav: rec.NAV})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})

	series := &MonthlySeries{index: make(map[MonthKey]int)}
	for _, rec := range dated {
		key := KeyOf(rec.date)
		if pos, ok := series.index[key]; ok {
			series.entries[pos].NAV = rec.nav
			series.entries[pos].Date = rec.date
			continue
		}
		series.index[key] = len(series.entries)
		series.entries = append(series.entries, MonthlyNAV{Key: key, NAV: rec.nav, Date: rec.date})
	}

	if n := len(dated); n > 0 {
		series.latestNAV = dated[n-1].nav
		series.latestDate = dated[n-1].date
	}
	return series, nil
}

// Len returns the number of months in the series.
func (s *MonthlySeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entries returns a copy of all months in chronological order.
func (s *MonthlySeries) Entries() []MonthlyNAV {
	if s == nil {
		return nil
	}
	return append([]MonthlyNAV(nil), s.entries...)
}

// Get returns the NAV recorded for key.
func (s *MonthlySeries) Get(key MonthKey) (float64, bool) {
	if s == nil {
		return 0, false
	}
	pos, ok := s.index[key]
	if !ok {
		return 0, false
	}
	return s.entries[pos].NAV, true
}

// Latest returns the most recent n months in chronological order. When n
// exceeds the series length every month is returned.
func (s *MonthlySeries) Latest(n int) []MonthlyNAV {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]MonthlyNAV(nil), s.entries[len(s.entries)-n:]...)
}

// LatestNAV is the NAV of the chronologically last record in the dataset.
func (s *MonthlySeries) LatestNAV() float64 {
	if s == nil {
		return 0
	}
	return s.latestNAV
}

// LatestDate is the date of the chronologically last record in the dataset.
func (s *MonthlySeries) LatestDate() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.latestDate
}
