package extraction

import (
	"context"
	"fmt"
	"strings"

	"paymax/internal/domain"
	"paymax/internal/port"
)

// TextExtractor reads raw per-page text from a document, honoring the page
// subset chosen by the strategy selector.
type TextExtractor struct{}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads the selected pages and returns their texts plus the joined
// full text. A page that fails to read yields an empty entry rather than
// aborting the whole document. Extraction is cancellable between pages.
func (e *TextExtractor) Extract(ctx context.Context, doc port.Document, params domain.ExtractionParameters) (string, []string, error) {
	pageCount := doc.PageCount()
	pages := params.Pages
	if pages == nil {
		pages = make([]int, pageCount)
		for i := range pages {
			pages[i] = i
		}
	}

	texts := make([]string, 0, len(pages))
	for _, pageNr := range pages {
		if err := ctx.Err(); err != nil {
			return "", nil, fmt.Errorf("extraction cancelled: %w", err)
		}
		if pageNr < 0 || pageNr >= pageCount {
			continue
		}
		text, err := doc.PageText(pageNr)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, text)
	}

	full := strings.TrimSpace(strings.Join(texts, "\n"))
	return full, texts, nil
}
