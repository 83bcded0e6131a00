package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"paymax/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row.
var columns = []string{
	"Name",
	"Account Number",
	"PAN",
	"Month",
	"Year",
	"Credits",
	"Debits",
	"Tax",
	"Provident Fund",
	"Earnings Count",
	"Deductions Count",
	"Parser",
	"Confidence",
	"Document Hash",
	"Page Count",
	"Parsed At",
	"Created At",
}

// Writer wraps csv.Writer for exporting payslip records as CSV.
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

// WritePayslips converts a batch of records to CSV rows and writes them.
func (w *Writer) WritePayslips(slips []domain.Payslip) error {
	for i := range slips {
		if err := w.csv.Write(payslipToRow(&slips[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func payslipToRow(p *domain.Payslip) []string {
	return []string{
		p.Name,
		p.AccountNumber,
		p.PANNumber,
		p.Month,
		strconv.Itoa(p.Year),
		formatMoney(p.Credits),
		formatMoney(p.Debits),
		formatMoney(p.Tax),
		formatMoney(p.ProvidentFund),
		strconv.Itoa(len(p.Earnings)),
		strconv.Itoa(len(p.Deductions)),
		p.ParserName,
		string(p.Confidence),
		p.DocumentHash,
		strconv.Itoa(p.PageCount),
		p.ParsedAt.Format(time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized export filename with a date suffix.
func BuildFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), time.Now().Format("2006-01-02"), ext)
}
