package port

import (
	"context"

	"paymax/internal/domain"
)

// ParseInput carries the data needed to parse one payslip document.
type ParseInput struct {
	Text     string
	Document Document // optional; vision-style parsers read page images from it
	Hint     domain.ParseHint
}

// ParseOutput is a candidate record plus the parser's self-reported confidence.
type ParseOutput struct {
	Record     *domain.Payslip
	Confidence domain.Confidence
	Messages   []domain.ValidationMessage
}

// PayslipParser is the shared contract every format parser implements.
// The set of implementations is sealed at composition time via the registry.
type PayslipParser interface {
	// Name identifies the parser in telemetry and cached results.
	Name() string
	// Format returns the structural template this parser targets.
	Format() domain.PayslipFormat
	// Score estimates, cheaply and without a full parse, how well this
	// parser fits the given text. Higher is better; 0 means no fit.
	Score(text string) int
	// Parse produces a candidate record from the input.
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
