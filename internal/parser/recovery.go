package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"paymax/internal/domain"
)

// recoveryPatterns is the reduced set of robust numeric patterns applied
// directly to raw text when no full parser reaches medium confidence.
var recoveryPatterns = []struct {
	field string
	re    *regexp.Regexp
}{
	{"credits", regexp.MustCompile(`(?i)(?:gross|total\s+credit|total\s+earnings?)\D{0,10}?((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`)},
	{"debits", regexp.MustCompile(`(?i)(?:total\s+deduction|total\s+debit)s?\D{0,10}?((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`)},
	{"net", regexp.MustCompile(`(?i)net\s+(?:pay|amount|remittance)\D{0,10}?((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`)},
}

var recoveryYear = regexp.MustCompile(`\b(20\d{2})\b`)

// RecoveryExtractor synthesizes a minimal record from raw text. It exists so
// a payslip-looking document can still produce a best-effort answer after
// every full parser has failed.
type RecoveryExtractor struct{}

// NewRecoveryExtractor creates a RecoveryExtractor.
func NewRecoveryExtractor() *RecoveryExtractor {
	return &RecoveryExtractor{}
}

// Extract applies the robust numeric patterns to raw text. The synthesized
// record is assigned medium confidence by convention; returns nil when not
// even the recovery patterns find anything.
func (r *RecoveryExtractor) Extract(text string) *domain.Payslip {
	record := &domain.Payslip{
		ParserName: "recovery",
		Earnings:   map[string]float64{},
		Deductions: map[string]float64{},
		ParsedAt:   time.Now().UTC(),
	}

	found := false
	var net float64
	for _, rp := range recoveryPatterns {
		m := rp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil || amount <= 0 {
			continue
		}
		found = true
		switch rp.field {
		case "credits":
			record.Credits = amount
		case "debits":
			record.Debits = amount
		case "net":
			net = amount
		}
	}
	if !found {
		return nil
	}

	// A net figure alone still anchors the record.
	if record.Credits == 0 && net > 0 {
		record.Credits = net + record.Debits
	}
	if m := recoveryYear.FindStringSubmatch(text); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			record.Year = year
		}
	}

	record.Confidence = domain.ConfidenceMedium
	return record
}
