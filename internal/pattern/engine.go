package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Type distinguishes how an ExtractorPattern locates its value.
type Type string

const (
	TypeRegex    Type = "regex"
	TypeKeyword  Type = "keyword"
	TypePosition Type = "position"
)

// ExtractorPattern is one candidate way of extracting a field value.
type ExtractorPattern struct {
	// Pattern is a regular expression for TypeRegex, a label for TypeKeyword,
	// or a positional selector (first_line, last_line, line:N) for TypePosition.
	Pattern  string
	Type     Type
	Priority int
	// Preprocess steps run on the whole search text before matching.
	Preprocess []Step
	// Postprocess steps run on the captured value.
	Postprocess []Step

	re *regexp.Regexp
}

// Definition is an ordered set of candidate patterns for one field key.
type Definition struct {
	Key      string
	Patterns []ExtractorPattern
}

// Engine is a registry of prioritized named patterns. Candidates for a field
// are evaluated highest priority first; the first non-empty post-processed
// match wins and no lower-priority candidate is evaluated.
type Engine struct {
	mu    sync.RWMutex
	defs  map[string]*Definition
	order []string
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{defs: make(map[string]*Definition)}
}

// Register adds (or replaces) the candidate patterns for a field key.
// Regex patterns are compiled eagerly so a malformed pattern fails here,
// not during extraction.
func (e *Engine) Register(key string, patterns ...ExtractorPattern) error {
	if key == "" {
		return fmt.Errorf("pattern key must not be empty")
	}
	if len(patterns) == 0 {
		return fmt.Errorf("pattern key %q has no candidates", key)
	}
	for i := range patterns {
		p := &patterns[i]
		if p.Type == TypeRegex {
			re, err := regexp.Compile(p.Pattern)
			if err != nil {
				return fmt.Errorf("compiling pattern for %q: %w", key, err)
			}
			p.re = re
		}
	}
	// Stable sort keeps declaration order among equal priorities.
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Priority > patterns[j].Priority
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.defs[key]; !exists {
		e.order = append(e.order, key)
	}
	e.defs[key] = &Definition{Key: key, Patterns: patterns}
	return nil
}

// Keys returns the registered field keys in registration order.
func (e *Engine) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// ExtractData runs every registered definition against text and returns the
// winning value per field key. Fields with no match are absent from the map.
func (e *Engine) ExtractData(text string) map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(map[string]string, len(e.order))
	for _, key := range e.order {
		if value, ok := e.extractField(e.defs[key], text); ok {
			out[key] = value
		}
	}
	return out
}

// ExtractField runs a single field's candidates against text.
func (e *Engine) ExtractField(key, text string) (string, bool) {
	e.mu.RLock()
	def := e.defs[key]
	e.mu.RUnlock()
	if def == nil {
		return "", false
	}
	return e.extractField(def, text)
}

func (e *Engine) extractField(def *Definition, text string) (string, bool) {
	for i := range def.Patterns {
		p := &def.Patterns[i]
		search := applySteps(text, p.Preprocess)

		var raw string
		switch p.Type {
		case TypeRegex:
			raw = matchRegex(p.re, search)
		case TypeKeyword:
			raw = matchKeyword(p.Pattern, search)
		case TypePosition:
			raw = matchPosition(p.Pattern, search)
		}
		if raw == "" {
			continue
		}
		value := applySteps(raw, p.Postprocess)
		if value != "" {
			return value, true
		}
	}
	return "", false
}

func matchRegex(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

// matchKeyword finds a label on a line and returns the free text after it.
// A separating colon or dash after the label is consumed.
func matchKeyword(label, text string) string {
	lowerLabel := strings.ToLower(label)
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(strings.ToLower(line), lowerLabel)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(label):]
		rest = strings.TrimLeft(rest, " \t:-")
		if rest != "" {
			return rest
		}
	}
	return ""
}

// matchPosition resolves a structural selector against the text layout.
func matchPosition(selector, text string) string {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return ""
	}
	switch {
	case selector == "first_line":
		return lines[0]
	case selector == "last_line":
		return lines[len(lines)-1]
	case strings.HasPrefix(selector, "line:"):
		n, err := strconv.Atoi(strings.TrimPrefix(selector, "line:"))
		if err != nil || n < 0 || n >= len(lines) {
			return ""
		}
		return lines[n]
	}
	return ""
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
