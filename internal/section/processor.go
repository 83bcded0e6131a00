package section

import (
	"regexp"
	"strconv"
	"strings"

	"paymax/internal/abbrev"
)

// Items maps component names to amounts.
type Items map[string]float64

// aliasSides routes high-frequency known codes before the catalog is
// consulted. Exact matches here always win.
var aliasSides = map[string]abbrev.Side{
	"BPAY":  abbrev.SideEarning,
	"BASIC": abbrev.SideEarning,
	"DA":    abbrev.SideEarning,
	"MSP":   abbrev.SideEarning,
	"HRA":   abbrev.SideEarning,
	"TPTA":  abbrev.SideEarning,
	"DSOP":  abbrev.SideDeduction,
	"AGIF":  abbrev.SideDeduction,
	"ITAX":  abbrev.SideDeduction,
	"CGHS":  abbrev.SideDeduction,
	"CGEIS": abbrev.SideDeduction,
	"GPF":   abbrev.SideDeduction,
	"NPS":   abbrev.SideDeduction,
}

var (
	earningsHeader   = regexp.MustCompile(`(?im)^\s*(EARNINGS?|CREDITS?|PAY\s+AND\s+ALLOWANCES)\b`)
	deductionsHeader = regexp.MustCompile(`(?im)^\s*(DEDUCTIONS?|DEBITS?|RECOVERIES)\b`)
	grossLine        = regexp.MustCompile(`(?i)^\s*(?:GROSS\s+PAY|GROSS|TOTAL\s+EARNINGS?|TOTAL\s+CREDITS?)\b`)
	totalDebitsLine  = regexp.MustCompile(`(?i)^\s*(?:TOTAL\s+DEDUCTIONS?|TOTAL\s+DEBITS?|NET\s+RECOVERIES)\b`)
	trailingAmount   = regexp.MustCompile(`((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)\s*$`)
)

// Sections is the text split into semantic line-item regions.
type Sections struct {
	Earnings   string
	Deductions string
}

// Split locates the earnings and deductions regions of a payslip text. A
// region runs from its header to the next known header or end of text.
func Split(text string) Sections {
	type marker struct {
		start, end int
		name       string
	}
	var markers []marker
	if loc := earningsHeader.FindStringIndex(text); loc != nil {
		markers = append(markers, marker{loc[0], loc[1], "earnings"})
	}
	if loc := deductionsHeader.FindStringIndex(text); loc != nil {
		markers = append(markers, marker{loc[0], loc[1], "deductions"})
	}

	var s Sections
	for i, m := range markers {
		end := len(text)
		for _, other := range markers {
			if other.start > m.start && other.start < end {
				end = other.start
			}
		}
		body := text[m.end:end]
		switch markers[i].name {
		case "earnings":
			s.Earnings = body
		case "deductions":
			s.Deductions = body
		}
	}
	return s
}

// ExtractResult carries the line items of one section plus any aggregate
// total detected there. Aggregates never appear as line items.
type ExtractResult struct {
	Items Items
	// Gross is the "GROSS PAY"-style aggregate, 0 when absent.
	Gross float64
	// Total is the "TOTAL DEDUCTIONS"-style aggregate, 0 when absent.
	Total float64
}

// ExtractItems parses one section's lines into named amounts. A line needs
// at least two whitespace tokens and a trailing numeric amount; the leading
// tokens form the raw component name.
func ExtractItems(sectionText string) ExtractResult {
	result := ExtractResult{Items: make(Items)}
	for _, line := range strings.Split(sectionText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if grossLine.MatchString(line) {
			if amount, ok := trailingNumber(line); ok {
				result.Gross = amount
			}
			continue
		}
		if totalDebitsLine.MatchString(line) {
			if amount, ok := trailingNumber(line); ok {
				result.Total = amount
			}
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 2 {
			continue
		}
		amount, ok := parseAmount(tokens[len(tokens)-1])
		if !ok {
			continue
		}
		name := strings.Join(tokens[:len(tokens)-1], " ")
		result.Items[name] = amount
	}
	return result
}

// Classification is the routed output of ProcessItems. Maps are fresh values;
// inputs are never mutated.
type Classification struct {
	Earnings   Items
	Deductions Items
	Unknown    Items
}

// Processor routes extracted items onto ledger sides using the alias table
// and the abbreviation resolver, and records unknowns for learning.
type Processor struct {
	resolver *abbrev.Resolver
	tracker  *abbrev.Tracker
}

// NewProcessor creates a Processor. tracker may be nil when unknown-code
// learning is not wanted.
func NewProcessor(resolver *abbrev.Resolver, tracker *abbrev.Tracker) *Processor {
	return &Processor{resolver: resolver, tracker: tracker}
}

// ProcessItems classifies items onto earning/deduction sides. defaultSide is
// applied to unknown items when the section they came from implies a side;
// pass abbrev.SideUnknown to leave them unrouted.
func (p *Processor) ProcessItems(items Items, defaultSide abbrev.Side) Classification {
	c := Classification{
		Earnings:   make(Items),
		Deductions: make(Items),
		Unknown:    make(Items),
	}
	for name, amount := range items {
		side := p.classify(name)
		if side == abbrev.SideUnknown {
			if p.tracker != nil {
				p.tracker.Record(name, amount)
			}
			side = defaultSide
		}
		standardized := p.resolver.Normalize(name)
		switch side {
		case abbrev.SideEarning:
			c.Earnings[standardized] += amount
		case abbrev.SideDeduction:
			c.Deductions[standardized] += amount
		default:
			c.Unknown[name] += amount
		}
	}
	return c
}

func (p *Processor) classify(name string) abbrev.Side {
	code := strings.ToUpper(strings.TrimSpace(name))
	if side, ok := aliasSides[code]; ok {
		return side
	}
	return p.resolver.SideFor(name)
}

func trailingNumber(line string) (float64, bool) {
	m := trailingAmount.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return parseAmount(m[1])
}

func parseAmount(token string) (float64, bool) {
	cleaned := strings.ReplaceAll(token, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
