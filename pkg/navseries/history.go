package navseries

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// SchemeMeta describes the fund a history belongs to.
type SchemeMeta struct {
	SchemeCode     string `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
}

// History is a scheme's NAV history in provider order (newest first).
type History struct {
	Meta    SchemeMeta
	Records []Record
}

type historyDocument struct {
	Meta SchemeMeta `json:"meta"`
	Data []struct {
		Date string          `json:"date"`
		NAV  json.RawMessage `json:"nav"`
	} `json:"data"`
}

// DecodeHistory reads a history document of the form
//
//	{"meta": {...}, "data": [{"date": "dd-mm-yyyy", "nav": "12.3456"}, ...]}
//
// NAV values may be JSON strings or numbers and must be positive. Dates are
// not validated here; Aggregate does that.
func DecodeHistory(r io.Reader) (*History, error) {
	var doc historyDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode NAV history: %w", err)
	}

	history := &History{Meta: doc.Meta, Records: make([]Record, 0, len(doc.Data))}
	for i, entry := range doc.Data {
		nav, err := parseNAV(entry.NAV)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, entry.Date, err)
		}
		history.Records = append(history.Records, Record{Date: entry.Date, NAV: nav})
	}
	return history, nil
}

func parseNAV(raw json.RawMessage) (float64, error) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return 0, fmt.Errorf("missing NAV")
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("invalid NAV %q: %w", text, err)
	}
	if !value.IsPositive() {
		return 0, fmt.Errorf("NAV must be positive, got %s", value.String())
	}
	return value.InexactFloat64(), nil
}

// Recent returns the first days records as provided, which for provider
// histories are the most recent ones.
func (h *History) Recent(days int) []Record {
	if h == nil || days <= 0 {
		return nil
	}
	if days > len(h.Records) {
		days = len(h.Records)
	}
	return append([]Record(nil), h.Records[:days]...)
}

// Monthly aggregates the history into a MonthlySeries.
func (h *History) Monthly() (*MonthlySeries, error) {
	if h == nil {
		return Aggregate(nil)
	}
	return Aggregate(h.Records)
}
