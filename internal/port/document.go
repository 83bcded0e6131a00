package port

// Document abstracts the page model supplied by the rendering layer. The
// parsing core consumes per-page text and raw bytes; it never renders.
type Document interface {
	// PageCount returns the number of pages, 0 for an empty document.
	PageCount() int
	// PageText returns the raw text of the 0-indexed page.
	PageText(page int) (string, error)
	// PageImage returns a rendered bitmap of the 0-indexed page, used by
	// vision-style parsing. Implementations without rendering support may
	// return an error.
	PageImage(page int) ([]byte, error)
	// Bytes returns the document's raw serialized content, used for hashing
	// and size estimation.
	Bytes() ([]byte, error)
	// Title returns the document title, or "" when absent.
	Title() string
}
