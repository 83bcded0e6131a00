package parser

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"paymax/internal/abbrev"
	"paymax/internal/domain"
	"paymax/internal/pattern"
	"paymax/internal/port"
	"paymax/internal/section"
)

// GenericParser handles payslips with no recognizable structural template.
// It relies entirely on the standard pattern definitions and section
// processors, which makes it the broadest but least precise parser.
type GenericParser struct {
	engine    *pattern.Engine
	processor *section.Processor
}

// NewGenericParser creates a GenericParser with the standard field patterns.
func NewGenericParser(resolver *abbrev.Resolver, tracker *abbrev.Tracker) (*GenericParser, error) {
	engine := pattern.NewEngine()
	if err := pattern.StandardDefinitions(engine); err != nil {
		return nil, fmt.Errorf("registering standard patterns: %w", err)
	}
	return &GenericParser{
		engine:    engine,
		processor: section.NewProcessor(resolver, tracker),
	}, nil
}

func (g *GenericParser) Name() string {
	return "generic"
}

func (g *GenericParser) Format() domain.PayslipFormat {
	return domain.FormatGeneric
}

// Score counts generic payslip keywords; the generic parser fits anything
// that mentions pay at all, but only weakly.
func (g *GenericParser) Score(text string) int {
	return countKeywords(strings.ToLower(text), formatSignals[domain.FormatGeneric])
}

func (g *GenericParser) Parse(_ context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	return parseWithEngine(g.engine, g.processor, g.Name(), input.Text)
}

// parseWithEngine is the shared text-parsing flow: field patterns, section
// split, item classification, aggregate resolution. Format parsers differ in
// the pattern set they bring, not in this flow.
func parseWithEngine(engine *pattern.Engine, processor *section.Processor, parserName, text string) (*port.ParseOutput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoExtractableText
	}

	fields := engine.ExtractData(text)
	sections := section.Split(text)
	earningsRes := section.ExtractItems(sections.Earnings)
	deductionsRes := section.ExtractItems(sections.Deductions)

	earnClass := processor.ProcessItems(earningsRes.Items, abbrev.SideEarning)
	dedClass := processor.ProcessItems(deductionsRes.Items, abbrev.SideDeduction)

	record := &domain.Payslip{
		Name:          fields[pattern.KeyName],
		AccountNumber: fields[pattern.KeyAccount],
		PANNumber:     fields[pattern.KeyPAN],
		Month:         strings.ToUpper(fields[pattern.KeyMonth]),
		Earnings:      mergeItems(earnClass.Earnings, dedClass.Earnings),
		Deductions:    mergeItems(earnClass.Deductions, dedClass.Deductions),
		ParserName:    parserName,
		ParsedAt:      time.Now().UTC(),
	}
	if year, err := strconv.Atoi(fields[pattern.KeyYear]); err == nil {
		record.Year = year
	}

	// Aggregates: an explicit gross/total line wins, then a pattern match,
	// then the component sum.
	record.Credits = firstPositive(
		earningsRes.Gross,
		parseFloat(fields[pattern.KeyCredits]),
		sumItems(record.Earnings),
	)
	record.Debits = firstPositive(
		deductionsRes.Total,
		parseFloat(fields[pattern.KeyDebits]),
		sumItems(record.Deductions),
	)
	record.Tax = firstPositive(
		parseFloat(fields[pattern.KeyTax]),
		findComponent(record.Deductions, "tax"),
	)
	record.ProvidentFund = firstPositive(
		parseFloat(fields[pattern.KeyDSOP]),
		findComponent(record.Deductions, "dsop"),
		findComponent(record.Deductions, "provident"),
	)

	score := ScorePayslip(record)
	if score == 0 {
		return nil, domain.ErrNoParserOutput
	}
	record.Confidence = BandFor(score)

	return &port.ParseOutput{
		Record:     record,
		Confidence: record.Confidence,
		Messages:   section.Reconcile(record),
	}, nil
}

func mergeItems(maps ...section.Items) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range maps {
		for k, v := range m {
			out[k] += v
		}
	}
	return out
}

func sumItems(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// findComponent returns the amount of the first component whose name
// contains the needle, scanning names in sorted order for determinism.
func findComponent(m map[string]float64, needle string) float64 {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			return m[name]
		}
	}
	return 0
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
