// Package output provides utilities for formatting and displaying analysis
// reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/mf-returns/internal/analysis"
	"github.com/iwvelando/mf-returns/pkg/constants"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders reports in outputFormat. The xlsx format is written to file;
// every other format goes to w.
func Write(w io.Writer, outputFormat, file string, reports []analysis.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, reports)
	case constants.OutputFormatCSV:
		return CsvFormat(w, reports)
	case constants.OutputFormatJSON:
		return JSONFormat(w, reports)
	case constants.OutputFormatXLSX:
		return XLSXFormat(file, reports)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, reports []analysis.Report) error {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		view := NewReportView(report)
		if _, err := fmt.Fprintf(w, "--- Results for %s ---\n", title(view)); err != nil {
			return err
		}
		for _, s := range sectionsOf(view) {
			if _, err := fmt.Fprintf(w, "%s\n", s.Name); err != nil {
				return err
			}
			for _, m := range s.Metrics {
				if _, err := p.Fprintf(w, "  %-16s | %s\n", m.Name, m.display(p)); err != nil {
					return err
				}
			}
		}
		for _, note := range view.Notes {
			if _, err := fmt.Fprintf(w, "Note: %s\n", note); err != nil {
				return err
			}
		}
		if len(reports) > 1 && i < len(reports)-1 {
			if _, err := fmt.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat outputs one row per reported value in comma-separated value
// format.
func CsvFormat(w io.Writer, reports []analysis.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"scheme_code", "scheme_name", "section", "metric", "value"}); err != nil {
		return err
	}
	for _, report := range reports {
		view := NewReportView(report)
		for _, s := range sectionsOf(view) {
			for _, m := range s.Metrics {
				if err := cw.Write([]string{view.SchemeCode, view.SchemeName, s.Name, m.Name, m.raw()}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the rounded report views as an indented JSON array.
func JSONFormat(w io.Writer, reports []analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReportViews(reports))
}

// XLSXFormat writes a workbook to path with one sheet per report section and
// one row per report that has that section.
func XLSXFormat(path string, reports []analysis.Report) (err error) {
	if path == "" {
		return fmt.Errorf("an output file is required for the %s format", constants.OutputFormatXLSX)
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	sheets := make(map[string]*sheetLayout)
	var order []string
	for _, report := range reports {
		view := NewReportView(report)
		for _, s := range sectionsOf(view) {
			layout, ok := sheets[s.Name]
			if !ok {
				layout = &sheetLayout{columns: map[string]int{}}
				sheets[s.Name] = layout
				order = append(order, s.Name)
			}
			layout.add(view, s)
		}
	}
	if len(order) == 0 {
		return f.SaveAs(path)
	}

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := sheets[name].write(f, name); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

type sheetLayout struct {
	header  []string
	columns map[string]int
	rows    [][]any
}

func (l *sheetLayout) add(view ReportView, s section) {
	if len(l.header) == 0 {
		l.header = []string{"Scheme Code", "Scheme Name"}
	}
	row := make([]any, len(l.header))
	row[0], row[1] = view.SchemeCode, view.SchemeName
	for _, m := range s.Metrics {
		col, ok := l.columns[m.Name]
		if !ok {
			col = len(l.header)
			l.columns[m.Name] = col
			l.header = append(l.header, m.Name)
		}
		for len(row) <= col {
			row = append(row, nil)
		}
		row[col] = m.Value
	}
	l.rows = append(l.rows, row)
}

func (l *sheetLayout) write(f *excelize.File, sheet string) error {
	header := make([]any, len(l.header))
	for i, h := range l.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range l.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func title(view ReportView) string {
	switch {
	case view.SchemeName != "" && view.SchemeCode != "":
		return fmt.Sprintf("%s (%s)", view.SchemeName, view.SchemeCode)
	case view.SchemeName != "":
		return view.SchemeName
	case view.SchemeCode != "":
		return "scheme " + view.SchemeCode
	}
	return "investment"
}
