package parser

import (
	"strings"

	"paymax/internal/domain"
)

// Additive confidence points. The scheme is pure and deterministic so it can
// be tested independently of any parser.
const (
	pointsName       = 2
	pointsMonth      = 1
	pointsYear       = 1
	pointsCredits    = 2
	pointsDebits     = 1
	pointsEarnings   = 1
	pointsDeductions = 1

	// Band thresholds over the 0..9 score range.
	highBandFloor   = 7
	mediumBandFloor = 4
)

var validMonths = map[string]bool{
	"JANUARY": true, "FEBRUARY": true, "MARCH": true, "APRIL": true,
	"MAY": true, "JUNE": true, "JULY": true, "AUGUST": true,
	"SEPTEMBER": true, "OCTOBER": true, "NOVEMBER": true, "DECEMBER": true,
	"JAN": true, "FEB": true, "MAR": true, "APR": true, "JUN": true,
	"JUL": true, "AUG": true, "SEP": true, "SEPT": true, "OCT": true,
	"NOV": true, "DEC": true,
}

// ScorePayslip computes the additive confidence score for a candidate record.
func ScorePayslip(p *domain.Payslip) int {
	if p == nil {
		return 0
	}
	score := 0
	if name := strings.TrimSpace(p.Name); name != "" && !strings.EqualFold(name, "unknown") {
		score += pointsName
	}
	if validMonths[strings.ToUpper(strings.TrimSpace(p.Month))] {
		score += pointsMonth
	}
	if p.Year > 2000 {
		score += pointsYear
	}
	if p.Credits > 0 {
		score += pointsCredits
	}
	if p.Debits > 0 {
		score += pointsDebits
	}
	if len(p.Earnings) > 0 {
		score += pointsEarnings
	}
	if len(p.Deductions) > 0 {
		score += pointsDeductions
	}
	return score
}

// BandFor partitions a score into the confidence tiers.
func BandFor(score int) domain.Confidence {
	switch {
	case score >= highBandFloor:
		return domain.ConfidenceHigh
	case score >= mediumBandFloor:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// Grade scores a record and returns its confidence tier.
func Grade(p *domain.Payslip) domain.Confidence {
	return BandFor(ScorePayslip(p))
}
