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

// MilitaryParser targets PCDA-style defence pay statements. It layers
// service-specific field patterns over the standard set; the PCDA layout
// labels identity fields differently and lists DSOP/AGIF style components.
type MilitaryParser struct {
	engine    *pattern.Engine
	processor *section.Processor
}

// NewMilitaryParser creates a MilitaryParser.
func NewMilitaryParser(resolver *abbrev.Resolver, tracker *abbrev.Tracker) (*MilitaryParser, error) {
	engine := pattern.NewEngine()
	if err := pattern.StandardDefinitions(engine); err != nil {
		return nil, fmt.Errorf("registering standard patterns: %w", err)
	}
	if err := registerMilitaryPatterns(engine); err != nil {
		return nil, fmt.Errorf("registering military patterns: %w", err)
	}
	return &MilitaryParser{
		engine:    engine,
		processor: section.NewProcessor(resolver, tracker),
	}, nil
}

// registerMilitaryPatterns overrides identity fields with PCDA labels at a
// higher priority than the standard candidates.
func registerMilitaryPatterns(e *pattern.Engine) error {
	if err := e.Register(pattern.KeyName,
		pattern.ExtractorPattern{
			Pattern: `(?i)(?:Name|Rank\s*&\s*Name)\s*[:\-]\s*(?-i:[A-Z]{2,4}\s+)?([A-Za-z][A-Za-z .]+)`,
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
	if err := e.Register(pattern.KeyAccount,
		pattern.ExtractorPattern{
			Pattern: `(?i)(?:Army|Service)\s+No\.?\s*[:\-]?\s*([0-9A-Z\/\-]{5,20})`,
			Type:    pattern.TypeRegex, Priority: 20,
			Postprocess: []pattern.Step{pattern.StepTrim, pattern.StepUppercase},
		},
		pattern.ExtractorPattern{
			Pattern: `(?i)A\/?C\s*No\.?\s*[:\-]?\s*([0-9\/\-A-Z]{6,20})`,
			Type:    pattern.TypeRegex, Priority: 10,
			Postprocess: []pattern.Step{pattern.StepTrim},
		},
	); err != nil {
		return err
	}
	return e.Register(pattern.KeyCredits,
		pattern.ExtractorPattern{
			Pattern: `(?i)Total\s+Credit\s*[:\-]?\s*` + `((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`,
			Type:    pattern.TypeRegex, Priority: 20,
			Preprocess:  []pattern.Step{pattern.StepNormalizeWhitespace},
			Postprocess: []pattern.Step{pattern.StepNormalizeCurrency},
		},
		pattern.ExtractorPattern{
			Pattern: `(?i)(?:Gross\s+Pay|Total\s+Credits?|Total\s+Earnings?)\s*[:\-]?\s*` + `((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`,
			Type:    pattern.TypeRegex, Priority: 10,
			Preprocess:  []pattern.Step{pattern.StepNormalizeWhitespace},
			Postprocess: []pattern.Step{pattern.StepNormalizeCurrency},
		},
	)
}

func (m *MilitaryParser) Name() string {
	return "military"
}

func (m *MilitaryParser) Format() domain.PayslipFormat {
	return domain.FormatMilitary
}

// Score weights military signal keywords double; a PCDA slip should beat the
// generic parser decisively.
func (m *MilitaryParser) Score(text string) int {
	return 2 * countKeywords(strings.ToLower(text), formatSignals[domain.FormatMilitary])
}

func (m *MilitaryParser) Parse(_ context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	return parseWithEngine(m.engine, m.processor, m.Name(), input.Text)
}
