package parser

import (
	"strings"

	"paymax/internal/domain"
)

// formatSignals lists the keyword signature of each known payslip format.
// Match ratio = present signals / total signals.
var formatSignals = map[domain.PayslipFormat][]string{
	domain.FormatMilitary: {
		"pcda", "principal controller", "defence", "army no", "service no",
		"dsop", "agif", "msp",
	},
	domain.FormatCorporate: {
		"employee id", "emp code", "hra", "provident fund", "esi",
		"gratuity", "ctc", "net pay",
	},
	domain.FormatGeneric: {
		"payslip", "salary", "earnings", "deductions", "gross", "net",
	},
}

// dominantRatio is the match ratio above which a format is considered
// detected and capability-declaring parsers are preferred.
const dominantRatio = 0.5

// domainSignals are the payslip keywords whose presence justifies recovery
// extraction when no parser reaches medium confidence.
var domainSignals = []string{
	"pay", "salary", "earnings", "deductions", "credit", "debit",
	"dsop", "basic", "gross", "net",
}

// DetectFormat computes the keyword match ratio for each known format and
// returns the dominant one. FormatUnknown is returned when no ratio clears
// the dominance threshold.
func DetectFormat(text string) (domain.PayslipFormat, float64) {
	lower := strings.ToLower(text)

	best := domain.FormatUnknown
	bestRatio := 0.0
	// Fixed evaluation order keeps detection deterministic.
	for _, format := range []domain.PayslipFormat{domain.FormatMilitary, domain.FormatCorporate, domain.FormatGeneric} {
		signals := formatSignals[format]
		present := 0
		for _, kw := range signals {
			if strings.Contains(lower, kw) {
				present++
			}
		}
		ratio := float64(present) / float64(len(signals))
		if ratio > bestRatio {
			best, bestRatio = format, ratio
		}
	}

	if bestRatio > dominantRatio {
		return best, bestRatio
	}
	return domain.FormatUnknown, bestRatio
}

// HasDomainSignals reports whether the text looks payslip-like at all.
func HasDomainSignals(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range domainSignals {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func countKeywords(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
