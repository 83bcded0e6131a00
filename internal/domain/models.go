package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payslip is the structured record extracted from one payslip document.
type Payslip struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"account_number"`
	PANNumber     string    `json:"pan_number"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`

	// Aggregates. Credits must equal the sum of Earnings within rounding
	// tolerance whenever both are present.
	Credits       float64 `json:"credits"`
	Debits        float64 `json:"debits"`
	Tax           float64 `json:"tax"`
	ProvidentFund float64 `json:"provident_fund"`

	Earnings   map[string]float64 `json:"earnings"`
	Deductions map[string]float64 `json:"deductions"`

	// Source metadata.
	ParserName   string     `json:"parser_name"`
	Confidence   Confidence `json:"confidence"`
	DocumentHash string     `json:"document_hash"`
	PageCount    int        `json:"page_count"`
	ParsedAt     time.Time  `json:"parsed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// SumEarnings returns the total of all named earnings.
func (p *Payslip) SumEarnings() float64 {
	var total float64
	for _, v := range p.Earnings {
		total += v
	}
	return total
}

// SumDeductions returns the total of all named deductions.
func (p *Payslip) SumDeductions() float64 {
	var total float64
	for _, v := range p.Deductions {
		total += v
	}
	return total
}

// ValidationMessage is a human-readable observation about a parsed record,
// surfaced alongside the result rather than failing the parse.
type ValidationMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DocumentProfile captures the structural signals derived from sampling a
// document. Profiles are created per analysis call and never persisted.
type DocumentProfile struct {
	PageCount         int
	ByteSize          int64
	HasScannedContent bool
	HasComplexLayout  bool
	TextDensity       float64 // 0..1, characters per unit area against an empirical ceiling
	EstimatedMemoryMB float64
	ContainsTables    bool
	ContainsFormField bool
}

// IsLarge reports whether the document crosses the size thresholds that make
// whole-document processing expensive.
func (p *DocumentProfile) IsLarge(maxPages int, maxMemoryMB float64) bool {
	return p.PageCount > maxPages || p.EstimatedMemoryMB > maxMemoryMB
}

// IsTextHeavy reports whether the document carries enough native text that
// OCR alone would discard usable content.
func (p *DocumentProfile) IsTextHeavy(densityFloor float64) bool {
	return p.TextDensity >= densityFloor
}

// ExtractionParameters tune how a chosen strategy reads the document.
type ExtractionParameters struct {
	Quality          QualityTier
	ExtractImages    bool
	ExtractVectors   bool
	BatchSize        int
	Pages            []int   // nil means all pages
	PreviewDownscale float64 // 0 means no downscaling
}

// ParseAttempt is an ephemeral diagnostic record of one parser invocation.
type ParseAttempt struct {
	ID         uuid.UUID     `json:"id"`
	ParserName string        `json:"parser_name"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Confidence Confidence    `json:"confidence"`
	Success    bool          `json:"success"`
	ItemCount  int           `json:"item_count"`
	TextLength int           `json:"text_length"`
	At         time.Time     `json:"at"`
}
