package extraction

import (
	"fmt"
	"strings"

	"paymax/internal/config"
	"paymax/internal/domain"
	"paymax/internal/port"
)

// Analyzer samples a bounded page subset and derives the structural signals
// that drive strategy selection.
type Analyzer struct {
	cfg config.AnalyzerConfig
}

// NewAnalyzer creates an Analyzer with the given thresholds.
func NewAnalyzer(cfg config.AnalyzerConfig) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze derives a DocumentProfile from the document. It fails only when
// the document cannot be opened at all; heuristics degrade per page.
func (a *Analyzer) Analyze(doc port.Document) (*domain.DocumentProfile, error) {
	raw, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentUnreadable, err)
	}

	profile := &domain.DocumentProfile{
		PageCount: doc.PageCount(),
		ByteSize:  int64(len(raw)),
	}
	profile.EstimatedMemoryMB = float64(profile.ByteSize) * a.cfg.MemoryPerByteFactor / (1024 * 1024)

	if profile.PageCount == 0 {
		return profile, nil
	}

	pages := samplePages(profile.PageCount, a.cfg.MaxSampledPages)
	bytesPerPage := float64(profile.ByteSize) / float64(profile.PageCount)

	var totalChars int
	var lowTextPages int
	var complexPages int
	for _, pageNr := range pages {
		text, err := doc.PageText(pageNr)
		if err != nil {
			// Unreadable page text is the strongest scanned-content signal.
			lowTextPages++
			continue
		}
		totalChars += len(text)

		if bytesPerPage > 0 && float64(len(text))/bytesPerPage < a.cfg.ScannedTextByteRatio {
			// A single near-empty page on a non-trivial byte budget means
			// rendered images, classify immediately.
			profile.HasScannedContent = true
			lowTextPages++
		}

		lines := splitLines(text)
		if a.columnCount(lines) >= a.cfg.ComplexColumnCount || lineLengthBimodal(lines) {
			complexPages++
		}
		if a.detectTables(lines) {
			profile.ContainsTables = true
		}
		if detectFormFields(text) {
			profile.ContainsFormField = true
		}
	}

	sampled := len(pages)
	if sampled > 0 {
		if float64(lowTextPages)/float64(sampled) > a.cfg.ScannedImageRatio {
			profile.HasScannedContent = true
		}
		profile.HasComplexLayout = float64(complexPages)/float64(sampled) >= 0.5
		avgChars := float64(totalChars) / float64(sampled)
		profile.TextDensity = clamp01(avgChars / a.cfg.DensityCeiling)
	}

	return profile, nil
}

// IsLarge applies the analyzer's size thresholds to a profile.
func (a *Analyzer) IsLarge(p *domain.DocumentProfile) bool {
	return p.IsLarge(a.cfg.LargePageCount, a.cfg.LargeMemoryMB)
}

// IsTextHeavy applies the analyzer's density floor to a profile.
func (a *Analyzer) IsTextHeavy(p *domain.DocumentProfile) bool {
	return p.IsTextHeavy(a.cfg.TextHeavyDensity)
}

// samplePages returns a bounded representative subset: first page, last page,
// and evenly spaced middle pages, capped at maxPages.
func samplePages(pageCount, maxPages int) []int {
	if maxPages <= 0 {
		maxPages = 1
	}
	if pageCount <= maxPages {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i
		}
		return pages
	}

	pages := []int{0}
	middle := maxPages - 2
	if middle > 0 {
		step := float64(pageCount-1) / float64(middle+1)
		for i := 1; i <= middle; i++ {
			pages = append(pages, int(step*float64(i)))
		}
	}
	pages = append(pages, pageCount-1)

	// Deduplicate while preserving order; step rounding can repeat a page.
	seen := make(map[int]bool, len(pages))
	out := pages[:0]
	for _, p := range pages {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// columnCount estimates the number of text columns on a page from internal
// wide-gap runs appearing in a majority of lines.
func (a *Analyzer) columnCount(lines []string) int {
	if len(lines) == 0 {
		return 0
	}
	gapped := 0
	maxGroups := 1
	for _, line := range lines {
		groups := strings.Count(line, "   ") // 3+ spaces separate columns
		if groups > 0 {
			gapped++
			if groups+1 > maxGroups {
				maxGroups = groups + 1
			}
		}
	}
	if float64(gapped)/float64(len(lines)) >= 0.5 {
		return maxGroups
	}
	return 1
}

// lineLengthBimodal reports whether line lengths split into distinct short
// and long clusters, a sign of mixed label/value layout.
func lineLengthBimodal(lines []string) bool {
	if len(lines) < 6 {
		return false
	}
	var short, long int
	for _, line := range lines {
		n := len(line)
		switch {
		case n <= 20:
			short++
		case n >= 60:
			long++
		}
	}
	total := len(lines)
	return float64(short)/float64(total) >= 0.3 && float64(long)/float64(total) >= 0.3
}

// detectTables looks for a run of consecutive lines with tab separators or a
// statistically consistent multi-space group count.
func (a *Analyzer) detectTables(lines []string) bool {
	run := 0
	prevGroups := -1
	for _, line := range lines {
		groups := 0
		if strings.Contains(line, "\t") {
			groups = strings.Count(line, "\t")
		} else {
			groups = strings.Count(line, "   ")
		}
		if groups >= 1 && (prevGroups == -1 || groups == prevGroups) {
			run++
			prevGroups = groups
			if run >= a.cfg.TableMinConsecutive {
				return true
			}
		} else {
			run = 0
			prevGroups = -1
		}
	}
	return false
}

var formLabelKeywords = []string{
	"signature", "date of birth", "fill in", "tick", "applicant",
}

// detectFormFields looks for label keywords, blank-rule sequences, checkbox
// glyphs and date masks.
func detectFormFields(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range formLabelKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	if strings.Contains(text, "____") {
		return true
	}
	for _, glyph := range []string{"[ ]", "[x]", "☐", "☑"} {
		if strings.Contains(lower, glyph) {
			return true
		}
	}
	for _, mask := range []string{"dd/mm/yyyy", "mm/dd/yyyy", "dd-mm-yyyy"} {
		if strings.Contains(lower, mask) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
