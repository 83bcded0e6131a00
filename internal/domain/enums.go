package domain

import "fmt"

// Confidence is the ordinal quality rating attached to a parsed payslip.
// The set is closed and totally ordered: low < medium < high.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

var confidenceRank = map[Confidence]int{
	ConfidenceLow:    0,
	ConfidenceMedium: 1,
	ConfidenceHigh:   2,
}

// Compare returns -1, 0 or 1 as c is below, equal to or above other.
// This is the single comparison point for confidence ordering.
func (c Confidence) Compare(other Confidence) int {
	a, b := confidenceRank[c], confidenceRank[other]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether c is equal to or above other.
func (c Confidence) AtLeast(other Confidence) bool {
	return c.Compare(other) >= 0
}

// PayslipFormat identifies the structural template a document follows.
type PayslipFormat string

const (
	FormatMilitary  PayslipFormat = "military"
	FormatCorporate PayslipFormat = "corporate"
	FormatGeneric   PayslipFormat = "generic"
	FormatUnknown   PayslipFormat = "unknown"
)

// ParseHint is an optional caller-supplied bias for parser selection.
// It reorders which parser runs first but never overrides extracted values.
type ParseHint string

const (
	HintAuto      ParseHint = "auto"
	HintMilitary  ParseHint = "military"
	HintCorporate ParseHint = "corporate"
)

// ParseHintFromString converts a raw string into a ParseHint, defaulting to auto.
func ParseHintFromString(s string) (ParseHint, error) {
	switch ParseHint(s) {
	case HintMilitary:
		return HintMilitary, nil
	case HintCorporate:
		return HintCorporate, nil
	case HintAuto, "":
		return HintAuto, nil
	default:
		return HintAuto, fmt.Errorf("invalid parse hint %q; allowed: auto, military, corporate", s)
	}
}

// ExtractionStrategy is the closed set of text extraction approaches.
type ExtractionStrategy string

const (
	StrategyNativeText ExtractionStrategy = "native_text"
	StrategyOCR        ExtractionStrategy = "ocr"
	StrategyHybrid     ExtractionStrategy = "hybrid"
	StrategyTable      ExtractionStrategy = "table"
	StrategyStreaming  ExtractionStrategy = "streaming"
	StrategyPreview    ExtractionStrategy = "preview"
)

// ExtractionPurpose states why a document is being processed; it drives
// strategy selection before any content heuristic is consulted.
type ExtractionPurpose string

const (
	PurposeFull     ExtractionPurpose = "full"
	PurposePreview  ExtractionPurpose = "preview"
	PurposeMetadata ExtractionPurpose = "metadata"
)

// QualityTier tunes how aggressively an extraction strategy trades fidelity
// for speed.
type QualityTier string

const (
	QualityFast     QualityTier = "fast"
	QualityStandard QualityTier = "standard"
	QualityAccurate QualityTier = "accurate"
)

// ComponentCategory classifies a pay component abbreviation.
type ComponentCategory string

const (
	CategoryBasicPay     ComponentCategory = "basic_pay"
	CategoryAllowance    ComponentCategory = "allowance"
	CategoryBonus        ComponentCategory = "bonus"
	CategoryArrears      ComponentCategory = "arrears"
	CategoryReimburse    ComponentCategory = "reimbursement"
	CategoryTax          ComponentCategory = "tax"
	CategoryFund         ComponentCategory = "fund"
	CategoryInsurance    ComponentCategory = "insurance"
	CategoryLoanAdvance  ComponentCategory = "loan_advance"
	CategorySubscription ComponentCategory = "subscription"
	CategoryCharge       ComponentCategory = "charge"
)

// componentCategories is the closed category set accepted by the catalog loader.
var componentCategories = map[ComponentCategory]bool{
	CategoryBasicPay:     true,
	CategoryAllowance:    true,
	CategoryBonus:        true,
	CategoryArrears:      true,
	CategoryReimburse:    true,
	CategoryTax:          true,
	CategoryFund:         true,
	CategoryInsurance:    true,
	CategoryLoanAdvance:  true,
	CategorySubscription: true,
	CategoryCharge:       true,
}

// ParseComponentCategory validates a raw category string from the catalog.
func ParseComponentCategory(s string) (ComponentCategory, error) {
	c := ComponentCategory(s)
	if !componentCategories[c] {
		return "", fmt.Errorf("unknown component category %q", s)
	}
	return c, nil
}

// IsCredit reports whether components in this category add money for the
// employee (earnings side of the slip).
func (c ComponentCategory) IsCredit() bool {
	switch c {
	case CategoryBasicPay, CategoryAllowance, CategoryBonus, CategoryArrears, CategoryReimburse:
		return true
	}
	return false
}

// Polarity states which side of the ledger an abbreviation may appear on.
type Polarity string

const (
	PolarityCredit Polarity = "credit"
	PolarityDebit  Polarity = "debit"
	PolarityEither Polarity = "either"
)

// ParsePolarity validates a raw polarity string from the catalog.
// An empty value defaults to either.
func ParsePolarity(s string) (Polarity, error) {
	switch Polarity(s) {
	case PolarityCredit:
		return PolarityCredit, nil
	case PolarityDebit:
		return PolarityDebit, nil
	case PolarityEither, "":
		return PolarityEither, nil
	default:
		return "", fmt.Errorf("unknown polarity %q", s)
	}
}
