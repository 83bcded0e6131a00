package parser

import (
	"sync"

	"paymax/internal/domain"
	"paymax/internal/port"
)

// Registry holds the sealed set of payslip parsers. Registration order is
// significant: it is the documented tie-break for parser selection.
type Registry struct {
	mu      sync.RWMutex
	parsers []port.PayslipParser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a parser. Parsers registered earlier win selection ties.
func (r *Registry) Register(p port.PayslipParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers = append(r.parsers, p)
}

// Parsers returns the registered parsers in registration order.
func (r *Registry) Parsers() []port.PayslipParser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]port.PayslipParser, len(r.parsers))
	copy(out, r.parsers)
	return out
}

// Len returns the number of registered parsers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parsers)
}

// SelectBestParser picks the parser to run first for the given text. When
// format detection finds a dominant format, the first parser declaring that
// format wins; otherwise every parser's lightweight score is compared and
// the maximum wins, with earlier registration breaking ties.
func (r *Registry) SelectBestParser(text string) port.PayslipParser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.parsers) == 0 {
		return nil
	}

	if format, _ := DetectFormat(text); format != domain.FormatUnknown {
		for _, p := range r.parsers {
			if p.Format() == format {
				return p
			}
		}
	}

	var best port.PayslipParser
	bestScore := -1
	for _, p := range r.parsers {
		// Strict greater-than keeps the first registered parser on ties.
		if score := p.Score(text); score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

// SelectByFormat returns the first registered parser declaring the format,
// or nil. Used to honor caller hints.
func (r *Registry) SelectByFormat(format domain.PayslipFormat) port.PayslipParser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.parsers {
		if p.Format() == format {
			return p
		}
	}
	return nil
}
