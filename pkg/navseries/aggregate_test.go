package navseries

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestAggregateLastRecordInMonthWins(t *testing.T) {
	records := []Record{
		{Date: "28-02-2024", NAV: 12.0},
		{Date: "02-01-2024", NAV: 10.0},
		{Date: "31-01-2024", NAV: 10.5},
		{Date: "15-01-2024", NAV: 10.2},
		{Date: "01-02-2024", NAV: 11.0},
		{Date: "01-03-2024", NAV: 13.0},
	}

	series, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if series.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", series.Len())
	}

	want := []struct {
		key string
		nav float64
	}{
		{"2024-01", 10.5},
		{"2024-02", 12.0},
		{"2024-03", 13.0},
	}
	for i, entry := range series.Entries() {
		if entry.Key.String() != want[i].key {
			t.Errorf("entry %d key = %s, want %s", i, entry.Key, want[i].key)
		}
		if entry.NAV != want[i].nav {
			t.Errorf("entry %d NAV = %v, want %v", i, entry.NAV, want[i].nav)
		}
	}

	if series.LatestNAV() != 13.0 {
		t.Errorf("LatestNAV() = %v, want 13.0", series.LatestNAV())
	}
	if got := series.LatestDate(); !got.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("LatestDate() = %v, want 2024-03-01", got)
	}
}

func TestAggregateSameDayTieKeepsLastInInput(t *testing.T) {
	records := []Record{
		{Date: "10-05-2023", NAV: 20.0},
		{Date: "10-05-2023", NAV: 21.0},
		{Date: "09-05-2023", NAV: 19.0},
	}

	series, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	nav, ok := series.Get(MonthKey{Year: 2023, Month: time.May})
	if !ok {
		t.Fatal("expected an entry for 2023-05")
	}
	if nav != 21.0 {
		t.Errorf("NAV for 2023-05 = %v, want 21.0", nav)
	}
}

func TestAggregateOrderIndependence(t *testing.T) {
	var sorted []Record
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i += 3 {
		d := start.AddDate(0, 0, i)
		sorted = append(sorted, Record{Date: d.Format("02-01-2006"), NAV: 10 + float64(i)/10})
	}

	want, err := Aggregate(sorted)
	if err != nil {
		t.Fatalf("Aggregate(sorted) error = %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]Record(nil), sorted...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := Aggregate(shuffled)
		if err != nil {
			t.Fatalf("Aggregate(shuffled) error = %v", err)
		}
		if !reflect.DeepEqual(got.Entries(), want.Entries()) {
			t.Fatalf("trial %d: shuffled input produced a different series", trial)
		}
		if got.LatestNAV() != want.LatestNAV() {
			t.Fatalf("trial %d: LatestNAV() = %v, want %v", trial, got.LatestNAV(), want.LatestNAV())
		}
	}
}

func TestAggregateAtMostOneEntryPerMonth(t *testing.T) {
	var records []Record
	start := time.Date(2019, time.June, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 900; i++ {
		d := start.AddDate(0, 0, i)
		records = append(records, Record{Date: d.Format("02-01-2006"), NAV: float64(i + 1)})
	}

	series, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	seen := make(map[MonthKey]bool)
	var previous time.Time
	for _, entry := range series.Entries() {
		if seen[entry.Key] {
			t.Fatalf("duplicate month %s", entry.Key)
		}
		seen[entry.Key] = true
		if !previous.IsZero() && !entry.Date.After(previous) {
			t.Fatalf("entries not chronological at %s", entry.Key)
		}
		previous = entry.Date

		// Each entry must carry the last day of its month present in the data.
		next := entry.Date.AddDate(0, 0, 1)
		if KeyOf(next) == entry.Key && next.Before(start.AddDate(0, 0, 900)) {
			t.Errorf("month %s kept %s, but later data exists", entry.Key, entry.Date.Format("02-01-2006"))
		}
	}
}

func TestAggregateUnpaddedDates(t *testing.T) {
	records := []Record{
		{Date: "1-2-2024", NAV: 11.0},
		{Date: "28-02-2024", NAV: 12.0},
		{Date: "9-1-2024", NAV: 10.0},
	}

	series, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", series.Len())
	}
	if nav, _ := series.Get(MonthKey{Year: 2024, Month: time.February}); nav != 12.0 {
		t.Errorf("NAV for 2024-02 = %v, want 12.0", nav)
	}
	if nav, _ := series.Get(MonthKey{Year: 2024, Month: time.January}); nav != 10.0 {
		t.Errorf("NAV for 2024-01 = %v, want 10.0", nav)
	}
}

func TestAggregateMalformedDate(t *testing.T) {
	records := []Record{
		{Date: "01-01-2024", NAV: 10},
		{Date: "2024-02-01", NAV: 11},
	}

	series, err := Aggregate(records)
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if series != nil {
		t.Errorf("expected no series on error, got %d months", series.Len())
	}

	var dateErr *MalformedDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected MalformedDateError, got %T", err)
	}
	if dateErr.Index != 1 || dateErr.Value != "2024-02-01" {
		t.Errorf("MalformedDateError = %+v, want index 1 value 2024-02-01", dateErr)
	}
	if dateErr.Unwrap() == nil {
		t.Error("expected wrapped parse error")
	}
	if !strings.Contains(err.Error(), "2024-02-01") {
		t.Errorf("error message %q should include the bad value", err.Error())
	}
}

func TestAggregateEmpty(t *testing.T) {
	series, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("Aggregate(nil) error = %v", err)
	}
	if series.Len() != 0 {
		t.Errorf("Len() = %d, want 0", series.Len())
	}
	if series.LatestNAV() != 0 {
		t.Errorf("LatestNAV() = %v, want 0", series.LatestNAV())
	}
	if got := series.Latest(3); len(got) != 0 {
		t.Errorf("Latest(3) returned %d entries, want 0", len(got))
	}
}

func TestMonthlySeriesLatest(t *testing.T) {
	records := []Record{
		{Date: "15-01-2024", NAV: 1},
		{Date: "15-02-2024", NAV: 2},
		{Date: "15-03-2024", NAV: 3},
		{Date: "15-04-2024", NAV: 4},
	}
	series, err := Aggregate(records)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	tests := []struct {
		name string
		n    int
		want []float64
	}{
		{"Last two", 2, []float64{3, 4}},
		{"All", 4, []float64{1, 2, 3, 4}},
		{"More than available", 10, []float64{1, 2, 3, 4}},
		{"Zero", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := series.Latest(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Latest(%d) returned %d entries, want %d", tt.n, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].NAV != tt.want[i] {
					t.Errorf("Latest(%d)[%d] = %v, want %v", tt.n, i, got[i].NAV, tt.want[i])
				}
			}
		})
	}

	// Mutating the returned slice must not affect the series.
	window := series.Latest(1)
	window[0].NAV = 99
	if nav, _ := series.Get(MonthKey{Year: 2024, Month: time.April}); nav != 4 {
		t.Errorf("series mutated through Latest(), NAV = %v", nav)
	}
}

func TestNilSeries(t *testing.T) {
	var series *MonthlySeries
	if series.Len() != 0 || series.Entries() != nil || series.Latest(1) != nil {
		t.Error("nil series should behave as empty")
	}
	if _, ok := series.Get(MonthKey{Year: 2024, Month: time.January}); ok {
		t.Error("nil series should not contain keys")
	}
}
