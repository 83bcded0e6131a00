package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymax/internal/domain"
	"paymax/internal/export"
)

func samplePayslip() domain.Payslip {
	return domain.Payslip{
		Name:          "John Doe",
		AccountNumber: "12345678",
		PANNumber:     "ABCDE1234F",
		Month:         "MARCH",
		Year:          2024,
		Credits:       85500,
		Debits:        15500,
		Tax:           10000,
		ProvidentFund: 5000,
		Earnings:      map[string]float64{"Basic Pay": 50000, "Dearness Allowance": 35500},
		Deductions:    map[string]float64{"DSOP Fund": 5000},
		ParserName:    "military",
		Confidence:    domain.ConfidenceHigh,
		DocumentHash:  "abc123",
		PageCount:     2,
		ParsedAt:      time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriter_WritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(export.BOM)

	w := export.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WritePayslips([]domain.Payslip{samplePayslip()}))
	w.Flush()
	require.NoError(t, w.Error())

	raw := buf.Bytes()
	assert.True(t, bytes.HasPrefix(raw, export.BOM))

	records, err := csv.NewReader(bytes.NewReader(raw[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	assert.Equal(t, "Name", header[0])
	assert.Equal(t, "Confidence", header[12])

	row := records[1]
	assert.Equal(t, "John Doe", row[0])
	assert.Equal(t, "MARCH", row[3])
	assert.Equal(t, "2024", row[4])
	assert.Equal(t, "85500.00", row[5])
	assert.Equal(t, "15500.00", row[6])
	assert.Equal(t, "2", row[9])  // earnings count
	assert.Equal(t, "1", row[10]) // deductions count
	assert.Equal(t, "military", row[11])
	assert.Equal(t, "high", row[12])
	assert.Equal(t, "2024-04-01T12:00:00Z", row[15])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "payslips_2024", export.SanitizeFilename("payslips 2024"))
	assert.Equal(t, "a_b_c", export.SanitizeFilename("a//b::c"))
	assert.Equal(t, "report", export.SanitizeFilename("__report__"))
}

func TestBuildFilename(t *testing.T) {
	name := export.BuildFilename("pay slips", "csv")
	assert.Regexp(t, `^pay_slips_\d{4}-\d{2}-\d{2}\.csv$`, name)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, []domain.Payslip{samplePayslip()}))
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
