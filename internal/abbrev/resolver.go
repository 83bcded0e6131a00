package abbrev

import (
	"sort"
	"strings"

	"paymax/internal/domain"
)

// Side is the ledger side an item routes to after classification.
type Side string

const (
	SideEarning   Side = "earning"
	SideDeduction Side = "deduction"
	SideUnknown   Side = "unknown"
)

// Resolver matches raw pay-component codes and descriptions against a
// catalog and standardizes component names.
type Resolver struct {
	catalog *Catalog

	// containsKeys holds the component-name mapping keys sorted longest
	// first (ties broken lexicographically) so the substring fallback is
	// deterministic: the longest matching key always wins.
	containsKeys []string
}

// NewResolver creates a Resolver over a catalog.
func NewResolver(catalog *Catalog) *Resolver {
	keys := make([]string, 0, len(catalog.componentNames))
	for k := range catalog.componentNames {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return &Resolver{catalog: catalog, containsKeys: keys}
}

// Catalog returns the catalog the resolver was built over.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Match looks up a raw token as an exact code first, then as a
// case-insensitive description. Returns nil when neither matches.
func (r *Resolver) Match(raw string) *Abbreviation {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil
	}
	if a := r.catalog.ByCode(token); a != nil {
		return a
	}
	if a := r.catalog.ByCode(strings.ToUpper(token)); a != nil {
		return a
	}
	return r.catalog.ByDescription(token)
}

// MatchCode looks up only the exact code index.
func (r *Resolver) MatchCode(code string) *Abbreviation {
	return r.catalog.ByCode(strings.TrimSpace(code))
}

// MatchDescription looks up only the case-insensitive description index.
func (r *Resolver) MatchDescription(desc string) *Abbreviation {
	return r.catalog.ByDescription(strings.TrimSpace(desc))
}

// SideFor classifies a raw component name onto the earning or deduction side
// using the catalog, or SideUnknown when the catalog has no opinion.
func (r *Resolver) SideFor(raw string) Side {
	a := r.Match(raw)
	if a == nil {
		return SideUnknown
	}
	switch a.Polarity {
	case domain.PolarityCredit:
		return SideEarning
	case domain.PolarityDebit:
		return SideDeduction
	}
	if a.Category.IsCredit() {
		return SideEarning
	}
	return SideDeduction
}

// Normalize standardizes a raw component name. Lookup order: canonical
// standardized names (so normalization is idempotent), exact lower-cased
// mapping, longest-substring mapping, then a Title Case fallback.
func (r *Resolver) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)

	if std, ok := r.catalog.standardized[lower]; ok {
		return std
	}
	if std, ok := r.catalog.componentNames[lower]; ok {
		return std
	}
	for _, key := range r.containsKeys {
		if strings.Contains(lower, key) {
			return r.catalog.componentNames[key]
		}
	}
	return titleCase(lower)
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		for j, c := range runes {
			if j == 0 {
				runes[j] = toUpperRune(c)
			} else {
				runes[j] = toLowerRune(c)
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func toUpperRune(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}

func toLowerRune(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}
