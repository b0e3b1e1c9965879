package output

import (
	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/pkg/datetime"
	"github.com/iwvelando/mf-returns/pkg/finance"
	"github.com/iwvelando/mf-returns/pkg/mathutil"
)

// SIPView is the rounded, serializable form of a SIP result.
type SIPView struct {
	MonthlySIP        float64  `json:"monthlySip"`
	MonthsConsidered  int      `json:"monthsConsidered"`
	FirstMonth        string   `json:"firstMonth"`
	LastMonth         string   `json:"lastMonth"`
	TotalInvested     float64  `json:"totalInvested"`
	Units             float64  `json:"units"`
	CurrentNAV        float64  `json:"currentNav"`
	ValuationDate     string   `json:"valuationDate,omitempty"`
	CurrentValue      float64  `json:"currentValue"`
	AbsoluteGain      float64  `json:"absoluteGain"`
	AbsoluteReturnPct float64  `json:"absoluteReturnPct"`
	IRRAnnualizedPct  *float64 `json:"irrAnnualizedPct"`
}

// NewSIPView rounds money to two decimals and units to three.
func NewSIPView(r finance.SIPResult) SIPView {
	view := SIPView{
		MonthlySIP:        mathutil.Round(r.MonthlySIP),
		MonthsConsidered:  r.MonthsConsidered,
		FirstMonth:        r.FirstMonth.String(),
		LastMonth:         r.LastMonth.String(),
		TotalInvested:     mathutil.Round(r.TotalInvested),
		Units:             mathutil.RoundUnits(r.Units),
		CurrentNAV:        r.CurrentNAV,
		CurrentValue:      mathutil.Round(r.CurrentValue),
		AbsoluteGain:      mathutil.Round(r.AbsoluteGain),
		AbsoluteReturnPct: mathutil.Round(r.AbsoluteReturnPct),
	}
	if !r.ValuationDate.IsZero() {
		view.ValuationDate = datetime.FormatNAVDate(r.ValuationDate)
	}
	if r.AnnualizedIRRPct != nil {
		irr := mathutil.Round(*r.AnnualizedIRRPct)
		view.IRRAnnualizedPct = &irr
	}
	return view
}

// LumpsumView is the rounded, serializable form of a lumpsum result.
type LumpsumView struct {
	InvestedAmount    float64 `json:"investedAmount"`
	PurchaseNAV       float64 `json:"purchaseNav"`
	CurrentNAV        float64 `json:"currentNav"`
	HoldingYears      float64 `json:"holdingYears"`
	Units             float64 `json:"units"`
	CurrentValue      float64 `json:"currentValue"`
	Gain              float64 `json:"gain"`
	AbsoluteReturnPct float64 `json:"absoluteReturnPct"`
	CAGRPct           float64 `json:"cagrPct"`
}

// NewLumpsumView rounds money to two decimals and units to three.
func NewLumpsumView(r finance.LumpsumResult) LumpsumView {
	return LumpsumView{
		InvestedAmount:    mathutil.Round(r.InvestedAmount),
		PurchaseNAV:       r.PurchaseNAV,
		CurrentNAV:        r.CurrentNAV,
		HoldingYears:      r.HoldingYears,
		Units:             mathutil.RoundUnits(r.Units),
		CurrentValue:      mathutil.Round(r.CurrentValue),
		Gain:              mathutil.Round(r.Gain),
		AbsoluteReturnPct: mathutil.Round(r.AbsoluteReturnPct),
		CAGRPct:           mathutil.Round(r.CAGRPct),
	}
}

// TaxView is the serializable form of a tax result. Only fundType,
// holdingMonths, totalGain and note are set for unsupported fund types.
type TaxView struct {
	FundType      string   `json:"fundType"`
	HoldingMonths int      `json:"holdingMonths"`
	TotalGain     float64  `json:"totalGain"`
	Note          string   `json:"note,omitempty"`
	TaxType       string   `json:"taxType,omitempty"`
	TaxRatePct    *float64 `json:"taxRatePct,omitempty"`
	ExemptAmount  *float64 `json:"exemptAmount,omitempty"`
	TaxableGain   *float64 `json:"taxableGain,omitempty"`
	TaxAmount     *float64 `json:"taxAmount,omitempty"`
	PostTaxGain   *float64 `json:"postTaxGain,omitempty"`
}

// NewTaxView rounds amounts to two decimals.
func NewTaxView(r finance.TaxResult) TaxView {
	view := TaxView{
		FundType:      r.FundType,
		HoldingMonths: r.HoldingMonths,
		TotalGain:     mathutil.Round(r.TotalGain),
		Note:          r.Note,
	}
	if !r.Supported {
		return view
	}
	rounded := func(v float64) *float64 {
		v = mathutil.Round(v)
		return &v
	}
	view.TaxType = r.Term.Label()
	view.TaxRatePct = rounded(mathutil.CalculatePercentage(r.Rate, 1))
	view.ExemptAmount = rounded(r.ExemptAmount)
	view.TaxableGain = rounded(r.TaxableGain)
	view.TaxAmount = rounded(r.Tax)
	view.PostTaxGain = rounded(r.PostTaxGain)
	return view
}

// ReportView is the serializable form of an analysis report.
type ReportView struct {
	SchemeCode string       `json:"schemeCode,omitempty"`
	SchemeName string       `json:"schemeName,omitempty"`
	SIP        *SIPView     `json:"sip,omitempty"`
	SIPTax     *TaxView     `json:"sipTax,omitempty"`
	Lumpsum    *LumpsumView `json:"lumpsum,omitempty"`
	LumpsumTax *TaxView     `json:"lumpsumTax,omitempty"`
	Tax        *TaxView     `json:"tax,omitempty"`
	Notes      []string     `json:"notes,omitempty"`
}

// NewReportView converts every present section of report.
func NewReportView(report analysis.Report) ReportView {
	view := ReportView{
		SchemeCode: report.SchemeCode,
		SchemeName: report.SchemeName,
		Notes:      report.Notes,
	}
	if report.SIP != nil {
		sip := NewSIPView(*report.SIP)
		view.SIP = &sip
	}
	if report.SIPTax != nil {
		tax := NewTaxView(*report.SIPTax)
		view.SIPTax = &tax
	}
	if report.Lumpsum != nil {
		lumpsum := NewLumpsumView(*report.Lumpsum)
		view.Lumpsum = &lumpsum
	}
	if report.LumpsumTax != nil {
		tax := NewTaxView(*report.LumpsumTax)
		view.LumpsumTax = &tax
	}
	if report.Tax != nil {
		tax := NewTaxView(*report.Tax)
		view.Tax = &tax
	}
	return view
}

// NewReportViews converts reports in order.
func NewReportViews(reports []analysis.Report) []ReportView {
	views := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		views = append(views, NewReportView(report))
	}
	return views
}
