package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paymax/internal/domain"
	"paymax/internal/parser"
)

func fullRecord() *domain.Payslip {
	return &domain.Payslip{
		Name:       "John Doe",
		Month:      "MARCH",
		Year:       2024,
		Credits:    85500,
		Debits:     15500,
		Earnings:   map[string]float64{"Basic Pay": 50000},
		Deductions: map[string]float64{"DSOP Fund": 5000},
	}
}

func TestScorePayslip(t *testing.T) {
	assert.Equal(t, 9, parser.ScorePayslip(fullRecord()))
	assert.Equal(t, 0, parser.ScorePayslip(nil))
	assert.Equal(t, 0, parser.ScorePayslip(&domain.Payslip{}))

	// A placeholder name earns nothing.
	assert.Equal(t, 0, parser.ScorePayslip(&domain.Payslip{Name: "Unknown"}))
	// Pre-2000 years are treated as parse noise.
	assert.Equal(t, 0, parser.ScorePayslip(&domain.Payslip{Year: 1999}))
	// Month must be a real month token.
	assert.Equal(t, 0, parser.ScorePayslip(&domain.Payslip{Month: "SMARCH"}))
	assert.Equal(t, 1, parser.ScorePayslip(&domain.Payslip{Month: "mar"}))
}

func TestScorePayslip_PartialRecords(t *testing.T) {
	// Credits + debits + month: 2 + 1 + 1 = 4, the medium floor.
	p := &domain.Payslip{Month: "JUNE", Credits: 1000, Debits: 200}
	assert.Equal(t, 4, parser.ScorePayslip(p))
	assert.Equal(t, domain.ConfidenceMedium, parser.Grade(p))
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, domain.ConfidenceLow, parser.BandFor(0))
	assert.Equal(t, domain.ConfidenceLow, parser.BandFor(3))
	assert.Equal(t, domain.ConfidenceMedium, parser.BandFor(4))
	assert.Equal(t, domain.ConfidenceMedium, parser.BandFor(6))
	assert.Equal(t, domain.ConfidenceHigh, parser.BandFor(7))
	assert.Equal(t, domain.ConfidenceHigh, parser.BandFor(9))
}

func TestGrade_FullRecordIsHigh(t *testing.T) {
	assert.Equal(t, domain.ConfidenceHigh, parser.Grade(fullRecord()))
}
