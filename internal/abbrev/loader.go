package abbrev

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"paymax/internal/domain"
)

// LoadError indicates the catalog source was missing, malformed, carried a
// bad version, or contained an invalid category or polarity.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loading abbreviation catalog: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("loading abbreviation catalog: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// catalogSchema validates the persisted catalog document before decoding.
const catalogSchema = `{
	"type": "object",
	"required": ["version", "abbreviations"],
	"properties": {
		"version": {"type": "integer"},
		"abbreviations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["code", "description", "category"],
				"properties": {
					"code": {"type": "string", "minLength": 1},
					"description": {"type": "string", "minLength": 1},
					"category": {"type": "string"},
					"polarity": {"type": "string"}
				}
			}
		},
		"component_names": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		}
	}
}`

var compiledCatalogSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog.json", strings.NewReader(catalogSchema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("catalog.json")
}

// catalogFile is the wire shape of the persisted catalog document.
type catalogFile struct {
	Version       int               `json:"version"`
	Abbreviations []abbrevEntry     `json:"abbreviations"`
	ComponentName map[string]string `json:"component_names"`
}

type abbrevEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Polarity    string `json:"polarity"`
}

// Loader reads the versioned catalog document from disk and caches it in
// memory. Reloads within the freshness window are suppressed unless forced.
type Loader struct {
	path      string
	freshness time.Duration

	mu       sync.Mutex
	catalog  *Catalog
	loadedAt time.Time
}

// NewLoader creates a Loader for the catalog at path.
func NewLoader(path string, freshness time.Duration) *Loader {
	return &Loader{path: path, freshness: freshness}
}

// Load returns the cached catalog when it is still fresh, otherwise reads
// the source. The first call always reads.
func (l *Loader) Load() (*Catalog, error) {
	return l.load(false)
}

// Reload bypasses the freshness window and reads the source unconditionally.
func (l *Loader) Reload() (*Catalog, error) {
	return l.load(true)
}

func (l *Loader) load(force bool) (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !force && l.catalog != nil && time.Since(l.loadedAt) < l.freshness {
		return l.catalog, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, &LoadError{Reason: "reading source", Err: err}
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	l.catalog = catalog
	l.loadedAt = time.Now()
	return catalog, nil
}

// ParseCatalog validates and decodes a catalog document. The version must be
// at least 1; a version-1 catalog with zero abbreviations is valid.
func ParseCatalog(data []byte) (*Catalog, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &LoadError{Reason: "malformed JSON", Err: err}
	}
	if err := compiledCatalogSchema.Validate(probe); err != nil {
		return nil, &LoadError{Reason: "schema validation", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, &LoadError{Reason: "decoding document", Err: err}
	}
	if file.Version < 1 {
		return nil, &LoadError{Reason: fmt.Sprintf("unsupported version %d (must be >= 1)", file.Version)}
	}

	abbrs := make([]Abbreviation, 0, len(file.Abbreviations))
	for _, entry := range file.Abbreviations {
		category, err := domain.ParseComponentCategory(entry.Category)
		if err != nil {
			return nil, &LoadError{Reason: fmt.Sprintf("entry %q", entry.Code), Err: err}
		}
		polarity, err := domain.ParsePolarity(entry.Polarity)
		if err != nil {
			return nil, &LoadError{Reason: fmt.Sprintf("entry %q", entry.Code), Err: err}
		}
		abbrs = append(abbrs, Abbreviation{
			Code:        entry.Code,
			Description: entry.Description,
			Category:    category,
			Polarity:    polarity,
		})
	}

	return newCatalog(file.Version, abbrs, file.ComponentName), nil
}
