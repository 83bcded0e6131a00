package abbrev

import (
	"strings"

	"paymax/internal/domain"
)

// Abbreviation is one catalog entry mapping a short pay-component code to its
// meaning.
type Abbreviation struct {
	Code        string                   `json:"code"`
	Description string                   `json:"description"`
	Category    domain.ComponentCategory `json:"category"`
	Polarity    domain.Polarity          `json:"polarity"`
}

// Catalog is an immutable, versioned abbreviation lookup table plus a
// component-name standardization mapping. Build one through the Loader.
type Catalog struct {
	Version int

	abbreviations []Abbreviation
	byCode        map[string]*Abbreviation
	byDescription map[string]*Abbreviation // keyed by lower-cased description

	// componentNames maps lower-cased raw names to standardized names.
	componentNames map[string]string
	// standardized holds the canonical output names, keyed lower-cased, so
	// normalization is idempotent.
	standardized map[string]string
}

func newCatalog(version int, abbrs []Abbreviation, names map[string]string) *Catalog {
	c := &Catalog{
		Version:        version,
		abbreviations:  abbrs,
		byCode:         make(map[string]*Abbreviation, len(abbrs)),
		byDescription:  make(map[string]*Abbreviation, len(abbrs)),
		componentNames: make(map[string]string, len(names)),
		standardized:   make(map[string]string, len(names)),
	}
	for i := range abbrs {
		a := &c.abbreviations[i]
		c.byCode[a.Code] = a
		c.byDescription[strings.ToLower(a.Description)] = a
	}
	for raw, std := range names {
		c.componentNames[strings.ToLower(raw)] = std
		c.standardized[strings.ToLower(std)] = std
	}
	return c
}

// EmptyCatalog returns a valid catalog with no entries; every lookup misses.
// The pipeline degrades to this when the catalog source fails to load.
func EmptyCatalog() *Catalog {
	return newCatalog(1, nil, nil)
}

// Len returns the number of abbreviations in the catalog.
func (c *Catalog) Len() int {
	return len(c.abbreviations)
}

// ByCode returns the abbreviation with the exact code, or nil.
func (c *Catalog) ByCode(code string) *Abbreviation {
	return c.byCode[code]
}

// ByDescription returns the abbreviation whose description equals desc
// case-insensitively, or nil.
func (c *Catalog) ByDescription(desc string) *Abbreviation {
	return c.byDescription[strings.ToLower(desc)]
}

// Abbreviations returns a copy of all entries.
func (c *Catalog) Abbreviations() []Abbreviation {
	out := make([]Abbreviation, len(c.abbreviations))
	copy(out, c.abbreviations)
	return out
}
