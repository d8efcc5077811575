// Package csvexport renders a user's filings as CSV for spreadsheet use.
package csvexport

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"time"

	"taxsage/internal/domain"
	"taxsage/internal/itr"
)

// BOM holds the UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Assessment Year",
	"Status",
	"Tax Regime",
	"Gross Total Income",
	"Total Deductions",
	"Taxable Income",
	"Tax Liability",
	"Taxes Paid",
	"Balance Payable",
	"Refund Due",
	"Submitted At",
	"Created At",
}

// Writer wraps csv.Writer for exporting filings as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteFilings recomputes each filing's totals from its stored input and
// writes one row per filing. Filings with corrupt input get a row with the
// money columns blank rather than aborting the export.
func (w *Writer) WriteFilings(filings []domain.Filing) error {
	for i := range filings {
		if err := w.csv.Write(filingRow(&filings[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func filingRow(filing *domain.Filing) []string {
	row := []string{
		filing.AssessmentYear,
		string(filing.Status),
		filing.TaxRegime,
		"", "", "", "", "", "", "",
		formatTime(filing.SubmittedAt),
		filing.CreatedAt.Format(time.RFC3339),
	}

	var in itr.FilingInput
	if len(filing.Input) == 0 || json.Unmarshal(filing.Input, &in) != nil {
		return row
	}
	if !in.TaxRegime.Valid() {
		in.TaxRegime = itr.TaxRegime(filing.TaxRegime)
	}

	totals := itr.Aggregate(in)
	tax := itr.Compute(totals, in.TaxRegime)

	row[3] = totals.GrossTotalIncome.StringFixed(2)
	row[4] = totals.TotalDeductions.StringFixed(2)
	row[5] = totals.TaxableIncome.StringFixed(2)
	row[6] = tax.TotalLiability.StringFixed(2)
	row[7] = totals.TotalTaxPaid.StringFixed(2)
	row[8] = tax.NetPayable.StringFixed(2)
	row[9] = tax.RefundDue.StringFixed(2)
	return row
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
