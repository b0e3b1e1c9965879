package output

import (
	"strconv"

	"github.com/iwvelando/mf-returns/pkg/format"
	"golang.org/x/text/message"
)

type valueKind int

const (
	kindText valueKind = iota
	kindCount
	kindMoney
	kindNAV
	kindUnits
	kindPercent
)

// metric is one labelled value of a report section. A nil Value is shown as
// "n/a" and left empty in machine-readable output.
type metric struct {
	Name  string
	Kind  valueKind
	Value any
}

type section struct {
	Name    string
	Metrics []metric
}

const (
	sectionSIP        = "SIP"
	sectionSIPTax     = "SIP Tax"
	sectionLumpsum    = "Lumpsum"
	sectionLumpsumTax = "Lumpsum Tax"
	sectionTax        = "Capital Gains Tax"
)

func sectionsOf(view ReportView) []section {
	var sections []section
	if view.SIP != nil {
		s := view.SIP
		var irr any
		if s.IRRAnnualizedPct != nil {
			irr = *s.IRRAnnualizedPct
		}
		metrics := []metric{
			{"First month", kindText, s.FirstMonth},
			{"Last month", kindText, s.LastMonth},
			{"Months", kindCount, s.MonthsConsidered},
			{"Monthly SIP", kindMoney, s.MonthlySIP},
			{"Total invested", kindMoney, s.TotalInvested},
			{"Units", kindUnits, s.Units},
			{"Current NAV", kindNAV, s.CurrentNAV},
		}
		if s.ValuationDate != "" {
			metrics = append(metrics, metric{"Valuation date", kindText, s.ValuationDate})
		}
		metrics = append(metrics,
			metric{"Current value", kindMoney, s.CurrentValue},
			metric{"Absolute gain", kindMoney, s.AbsoluteGain},
			metric{"Absolute return", kindPercent, s.AbsoluteReturnPct},
			metric{"Annualized IRR", kindPercent, irr},
		)
		sections = append(sections, section{Name: sectionSIP, Metrics: metrics})
	}
	if view.SIPTax != nil {
		sections = append(sections, section{Name: sectionSIPTax, Metrics: taxMetrics(*view.SIPTax)})
	}
	if view.Lumpsum != nil {
		l := view.Lumpsum
		sections = append(sections, section{Name: sectionLumpsum, Metrics: []metric{
			{"Invested amount", kindMoney, l.InvestedAmount},
			{"Purchase NAV", kindNAV, l.PurchaseNAV},
			{"Current NAV", kindNAV, l.CurrentNAV},
			{"Holding years", kindNAV, l.HoldingYears},
			{"Units", kindUnits, l.Units},
			{"Current value", kindMoney, l.CurrentValue},
			{"Gain", kindMoney, l.Gain},
			{"Absolute return", kindPercent, l.AbsoluteReturnPct},
			{"CAGR", kindPercent, l.CAGRPct},
		}})
	}
	if view.LumpsumTax != nil {
		sections = append(sections, section{Name: sectionLumpsumTax, Metrics: taxMetrics(*view.LumpsumTax)})
	}
	if view.Tax != nil {
		sections = append(sections, section{Name: sectionTax, Metrics: taxMetrics(*view.Tax)})
	}
	return sections
}

func taxMetrics(t TaxView) []metric {
	metrics := []metric{
		{"Fund type", kindText, t.FundType},
		{"Holding months", kindCount, t.HoldingMonths},
		{"Total gain", kindMoney, t.TotalGain},
	}
	if t.TaxAmount == nil {
		return append(metrics, metric{"Note", kindText, t.Note})
	}
	return append(metrics,
		metric{"Tax type", kindText, t.TaxType},
		metric{"Tax rate", kindPercent, *t.TaxRatePct},
		metric{"Exempt amount", kindMoney, *t.ExemptAmount},
		metric{"Taxable gain", kindMoney, *t.TaxableGain},
		metric{"Tax", kindMoney, *t.TaxAmount},
		metric{"Post-tax gain", kindMoney, *t.PostTaxGain},
	)
}

// display renders m for people.
func (m metric) display(p *message.Printer) string {
	if m.Value == nil {
		return "n/a"
	}
	switch v := m.Value.(type) {
	case float64:
		switch m.Kind {
		case kindMoney:
			return format.Currency(v)
		case kindUnits:
			return p.Sprintf("%.3f", v)
		case kindPercent:
			return format.Percent(v)
		default:
			return p.Sprintf("%.4f", v)
		}
	case int:
		return p.Sprintf("%d", v)
	case string:
		return v
	}
	return p.Sprint(m.Value)
}

// raw renders m for CSV, without grouping or symbols.
func (m metric) raw() string {
	switch v := m.Value.(type) {
	case nil:
		return ""
	case float64:
		switch m.Kind {
		case kindMoney, kindPercent:
			return strconv.FormatFloat(v, 'f', 2, 64)
		case kindUnits:
			return strconv.FormatFloat(v, 'f', 3, 64)
		default:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	}
	return ""
}
