package pattern

import (
	"regexp"
	"strings"
)

// Step is a named text transformation applied before matching (on the search
// text) or after matching (on the captured value).
type Step string

const (
	// StepNormalizeWhitespace collapses runs of spaces and tabs and trims
	// line edges; intended as a preprocessing step.
	StepNormalizeWhitespace Step = "normalize_whitespace"
	// StepTrim removes surrounding whitespace from a captured value.
	StepTrim Step = "trim"
	// StepStripNonNumeric keeps only digits, sign and decimal point.
	StepStripNonNumeric Step = "strip_non_numeric"
	// StepLowercase case-folds the captured value.
	StepLowercase Step = "lowercase"
	// StepUppercase upper-cases the captured value.
	StepUppercase Step = "uppercase"
	// StepNormalizeCurrency strips currency symbols and thousands separators
	// and unifies the decimal separator.
	StepNormalizeCurrency Step = "normalize_currency"
)

var (
	whitespaceRun = regexp.MustCompile(`[ \t]+`)
	nonNumeric    = regexp.MustCompile(`[^0-9.\-]`)
	currencyNoise = regexp.MustCompile(`(?i)(₹|\$|€|£|rs\.?|inr)`)
)

func applySteps(s string, steps []Step) string {
	for _, step := range steps {
		s = applyStep(s, step)
	}
	return s
}

func applyStep(s string, step Step) string {
	switch step {
	case StepNormalizeWhitespace:
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " "))
		}
		return strings.Join(lines, "\n")
	case StepTrim:
		return strings.TrimSpace(s)
	case StepStripNonNumeric:
		return nonNumeric.ReplaceAllString(s, "")
	case StepLowercase:
		return strings.ToLower(s)
	case StepUppercase:
		return strings.ToUpper(s)
	case StepNormalizeCurrency:
		return NormalizeCurrency(s)
	}
	return s
}

// NormalizeCurrency reduces a noisy money string to a plain decimal number:
// currency symbols and thousands separators are removed, a comma acting as
// the decimal separator becomes a point, and when multiple decimal points
// survive only the last one is kept as the true separator.
func NormalizeCurrency(s string) string {
	s = currencyNoise.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// A single trailing comma group of 1-2 digits is a decimal separator
	// (European style); every other comma is a thousands separator.
	if idx := strings.LastIndex(s, ","); idx >= 0 {
		frac := s[idx+1:]
		if len(frac) > 0 && len(frac) <= 2 && !strings.Contains(s, ".") && isDigits(frac) {
			s = s[:idx] + "." + frac
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = nonNumeric.ReplaceAllString(s, "")

	// Collapse multiple decimal points, keeping the last as the separator.
	if strings.Count(s, ".") > 1 {
		last := strings.LastIndex(s, ".")
		intPart := strings.ReplaceAll(s[:last], ".", "")
		s = intPart + s[last:]
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
