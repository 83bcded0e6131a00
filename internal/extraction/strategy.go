package extraction

import (
	"paymax/internal/config"
	"paymax/internal/domain"
)

// StrategySelector maps a document profile and a processing purpose to an
// extraction strategy with tuned parameters.
type StrategySelector struct {
	cfg      config.StrategyConfig
	analyzer *Analyzer
}

// NewStrategySelector creates a selector sharing the analyzer's thresholds.
func NewStrategySelector(cfg config.StrategyConfig, analyzer *Analyzer) *StrategySelector {
	return &StrategySelector{cfg: cfg, analyzer: analyzer}
}

// DetermineStrategy picks the extraction strategy. Priority order: preview
// purpose short-circuits everything; then oversized documents stream; then
// scanned content goes to OCR (hybrid when the document also carries native
// text); then complex layouts with tabular signal use table extraction;
// everything else reads native text.
func (s *StrategySelector) DetermineStrategy(profile *domain.DocumentProfile, purpose domain.ExtractionPurpose) domain.ExtractionStrategy {
	if purpose == domain.PurposePreview {
		return domain.StrategyPreview
	}
	if s.analyzer.IsLarge(profile) {
		return domain.StrategyStreaming
	}
	if profile.HasScannedContent {
		if s.analyzer.IsTextHeavy(profile) {
			return domain.StrategyHybrid
		}
		return domain.StrategyOCR
	}
	if profile.HasComplexLayout && profile.ContainsTables {
		return domain.StrategyTable
	}
	return domain.StrategyNativeText
}

// ExtractionParameters tunes the chosen strategy against the profile.
func (s *StrategySelector) ExtractionParameters(strategy domain.ExtractionStrategy, profile *domain.DocumentProfile) domain.ExtractionParameters {
	params := domain.ExtractionParameters{
		Quality:   domain.QualityStandard,
		BatchSize: s.batchSize(profile),
	}

	switch strategy {
	case domain.StrategyPreview:
		params.Quality = domain.QualityFast
		params.PreviewDownscale = s.cfg.PreviewDownscale
		params.Pages = firstPages(profile.PageCount, s.cfg.PreviewPageCount)
	case domain.StrategyStreaming:
		params.Quality = domain.QualityFast
	case domain.StrategyOCR:
		params.Quality = domain.QualityAccurate
		params.ExtractImages = true
	case domain.StrategyHybrid:
		params.Quality = domain.QualityAccurate
		params.ExtractImages = true
	case domain.StrategyTable:
		params.ExtractVectors = true
	}

	return params
}

// batchSize derives a page batch size from the per-page memory estimate,
// clamped to a sane range.
func (s *StrategySelector) batchSize(profile *domain.DocumentProfile) int {
	if profile.PageCount == 0 || profile.EstimatedMemoryMB <= 0 {
		return s.cfg.MaxBatchSize
	}
	perPageMB := profile.EstimatedMemoryMB / float64(profile.PageCount)
	if perPageMB <= 0 {
		return s.cfg.MaxBatchSize
	}
	size := int(s.cfg.BatchMemoryMB / perPageMB)
	if size < s.cfg.MinBatchSize {
		return s.cfg.MinBatchSize
	}
	if size > s.cfg.MaxBatchSize {
		return s.cfg.MaxBatchSize
	}
	return size
}

func firstPages(pageCount, n int) []int {
	if n <= 0 || pageCount == 0 {
		return nil
	}
	if n > pageCount {
		n = pageCount
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i
	}
	return pages
}
