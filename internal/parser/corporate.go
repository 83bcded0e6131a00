package parser

import (
	"context"
	"fmt"
	"strings"

	"paymax/internal/abbrev"
	"paymax/internal/domain"
	"paymax/internal/pattern"
	"paymax/internal/port"
	"paymax/internal/section"
)

// CorporateParser targets private-sector payslips: employee-code identity
// fields, HRA/PF style components, and a "Net Pay" summary.
type CorporateParser struct {
	engine    *pattern.Engine
	processor *section.Processor
}

// NewCorporateParser creates a CorporateParser.
func NewCorporateParser(resolver *abbrev.Resolver, tracker *abbrev.Tracker) (*CorporateParser, error) {
	engine := pattern.NewEngine()
	if err := pattern.StandardDefinitions(engine); err != nil {
		return nil, fmt.Errorf("registering standard patterns: %w", err)
	}
	if err := registerCorporatePatterns(engine); err != nil {
		return nil, fmt.Errorf("registering corporate patterns: %w", err)
	}
	return &CorporateParser{
		engine:    engine,
		processor: section.NewProcessor(resolver, tracker),
	}, nil
}

func registerCorporatePatterns(e *pattern.Engine) error {
	if err := e.Register(pattern.KeyName,
		pattern.ExtractorPattern{
			Pattern: `(?i)Employee\s+Name\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`,
			Type:    pattern.TypeRegex, Priority: 20,
			Preprocess:  []pattern.Step{pattern.StepNormalizeWhitespace},
			Postprocess: []pattern.Step{pattern.StepTrim},
		},
		pattern.ExtractorPattern{
			Pattern: `(?i)Name\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`,
			Type:    pattern.TypeRegex, Priority: 10,
			Preprocess:  []pattern.Step{pattern.StepNormalizeWhitespace},
			Postprocess: []pattern.Step{pattern.StepTrim},
		},
	); err != nil {
		return err
	}
	return e.Register(pattern.KeyAccount,
		pattern.ExtractorPattern{
			Pattern: `(?i)Emp(?:loyee)?\s*(?:Code|ID|No\.?)\s*[:\-]?\s*([0-9A-Z\-]{3,20})`,
			Type:    pattern.TypeRegex, Priority: 20,
			Postprocess: []pattern.Step{pattern.StepTrim, pattern.StepUppercase},
		},
		pattern.ExtractorPattern{
			Pattern: `(?i)Account\s*(?:Number|No\.?)\s*[:\-]?\s*([0-9\/\-A-Z]{6,20})`,
			Type:    pattern.TypeRegex, Priority: 10,
			Postprocess: []pattern.Step{pattern.StepTrim},
		},
	)
}

func (c *CorporateParser) Name() string {
	return "corporate"
}

func (c *CorporateParser) Format() domain.PayslipFormat {
	return domain.FormatCorporate
}

func (c *CorporateParser) Score(text string) int {
	return 2 * countKeywords(strings.ToLower(text), formatSignals[domain.FormatCorporate])
}

func (c *CorporateParser) Parse(_ context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	return parseWithEngine(c.engine, c.processor, c.Name(), input.Text)
}
