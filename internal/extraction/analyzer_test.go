package extraction_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymax/internal/config"
	"paymax/internal/domain"
	"paymax/internal/extraction"
	"paymax/mocks"
)

func analyzerConfig() config.AnalyzerConfig {
	return config.AnalyzerConfig{
		MaxSampledPages:      10,
		ScannedImageRatio:    0.5,
		ScannedTextByteRatio: 0.001,
		DensityCeiling:       3000,
		TextHeavyDensity:     0.4,
		ComplexColumnCount:   2,
		TableMinConsecutive:  3,
		LargePageCount:       50,
		LargeMemoryMB:        200,
		MemoryPerByteFactor:  2.5,
	}
}

func TestAnalyzer_NativeTextDocument(t *testing.T) {
	text := strings.Repeat("salary line with words\n", 60)

	doc := new(mocks.MockDocument)
	doc.On("Bytes").Return([]byte(strings.Repeat("x", 2000)), nil)
	doc.On("PageCount").Return(1)
	doc.On("PageText", 0).Return(text, nil)

	a := extraction.NewAnalyzer(analyzerConfig())
	profile, err := a.Analyze(doc)
	require.NoError(t, err)

	assert.Equal(t, 1, profile.PageCount)
	assert.Equal(t, int64(2000), profile.ByteSize)
	assert.False(t, profile.HasScannedContent)
	assert.False(t, a.IsLarge(profile))
	assert.Greater(t, profile.TextDensity, 0.0)
}

func TestAnalyzer_ScannedContent(t *testing.T) {
	// A megabyte of document with one near-empty text page means the
	// content is rendered imagery.
	doc := new(mocks.MockDocument)
	doc.On("Bytes").Return(make([]byte, 1<<20), nil)
	doc.On("PageCount").Return(1)
	doc.On("PageText", 0).Return("", nil)

	a := extraction.NewAnalyzer(analyzerConfig())
	profile, err := a.Analyze(doc)
	require.NoError(t, err)
	assert.True(t, profile.HasScannedContent)
}

func TestAnalyzer_UnreadableDocument(t *testing.T) {
	doc := new(mocks.MockDocument)
	doc.On("Bytes").Return(nil, errors.New("corrupt"))

	a := extraction.NewAnalyzer(analyzerConfig())
	_, err := a.Analyze(doc)
	assert.ErrorIs(t, err, domain.ErrDocumentUnreadable)
}

func TestAnalyzer_TableDetection(t *testing.T) {
	table := strings.Repeat("BPAY   50000   credited\n", 5)

	doc := new(mocks.MockDocument)
	doc.On("Bytes").Return([]byte(strings.Repeat("x", 500)), nil)
	doc.On("PageCount").Return(1)
	doc.On("PageText", 0).Return(table, nil)

	a := extraction.NewAnalyzer(analyzerConfig())
	profile, err := a.Analyze(doc)
	require.NoError(t, err)
	assert.True(t, profile.ContainsTables)
	assert.True(t, profile.HasComplexLayout)
}

func TestStrategySelector_Priorities(t *testing.T) {
	a := extraction.NewAnalyzer(analyzerConfig())
	s := extraction.NewStrategySelector(config.StrategyConfig{
		MinBatchSize:     1,
		MaxBatchSize:     50,
		BatchMemoryMB:    64,
		PreviewDownscale: 0.5,
		PreviewPageCount: 1,
	}, a)

	cases := []struct {
		name    string
		profile domain.DocumentProfile
		purpose domain.ExtractionPurpose
		want    domain.ExtractionStrategy
	}{
		{"preview wins over everything", domain.DocumentProfile{PageCount: 100, HasScannedContent: true}, domain.PurposePreview, domain.StrategyPreview},
		{"large documents stream", domain.DocumentProfile{PageCount: 100}, domain.PurposeFull, domain.StrategyStreaming},
		{"scanned goes to OCR", domain.DocumentProfile{PageCount: 2, HasScannedContent: true}, domain.PurposeFull, domain.StrategyOCR},
		{"scanned with dense text is hybrid", domain.DocumentProfile{PageCount: 2, HasScannedContent: true, TextDensity: 0.6}, domain.PurposeFull, domain.StrategyHybrid},
		{"complex tabular layout", domain.DocumentProfile{PageCount: 2, HasComplexLayout: true, ContainsTables: true}, domain.PurposeFull, domain.StrategyTable},
		{"plain text documents read natively", domain.DocumentProfile{PageCount: 2}, domain.PurposeFull, domain.StrategyNativeText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.DetermineStrategy(&tc.profile, tc.purpose)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStrategySelector_Parameters(t *testing.T) {
	a := extraction.NewAnalyzer(analyzerConfig())
	s := extraction.NewStrategySelector(config.StrategyConfig{
		MinBatchSize:     1,
		MaxBatchSize:     50,
		BatchMemoryMB:    64,
		PreviewDownscale: 0.5,
		PreviewPageCount: 1,
	}, a)

	profile := &domain.DocumentProfile{PageCount: 4, EstimatedMemoryMB: 8}

	preview := s.ExtractionParameters(domain.StrategyPreview, profile)
	assert.Equal(t, domain.QualityFast, preview.Quality)
	assert.Equal(t, 0.5, preview.PreviewDownscale)
	assert.Equal(t, []int{0}, preview.Pages)

	ocr := s.ExtractionParameters(domain.StrategyOCR, profile)
	assert.Equal(t, domain.QualityAccurate, ocr.Quality)
	assert.True(t, ocr.ExtractImages)

	table := s.ExtractionParameters(domain.StrategyTable, profile)
	assert.True(t, table.ExtractVectors)

	native := s.ExtractionParameters(domain.StrategyNativeText, profile)
	assert.Equal(t, domain.QualityStandard, native.Quality)
	// 2 MB per page against a 64 MB batch budget.
	assert.Equal(t, 32, native.BatchSize)
}

func TestStrategySelector_BatchSizeClamped(t *testing.T) {
	a := extraction.NewAnalyzer(analyzerConfig())
	s := extraction.NewStrategySelector(config.StrategyConfig{
		MinBatchSize:  1,
		MaxBatchSize:  50,
		BatchMemoryMB: 64,
	}, a)

	heavy := &domain.DocumentProfile{PageCount: 2, EstimatedMemoryMB: 400}
	assert.Equal(t, 1, s.ExtractionParameters(domain.StrategyNativeText, heavy).BatchSize)

	light := &domain.DocumentProfile{PageCount: 500, EstimatedMemoryMB: 1}
	assert.Equal(t, 50, s.ExtractionParameters(domain.StrategyNativeText, light).BatchSize)
}

func TestTextExtractor(t *testing.T) {
	doc := new(mocks.MockDocument)
	doc.On("PageCount").Return(3)
	doc.On("PageText", 0).Return("page one", nil)
	doc.On("PageText", 1).Return("", errors.New("unreadable"))
	doc.On("PageText", 2).Return("page three", nil)

	e := extraction.NewTextExtractor()
	full, pages, err := e.Extract(context.Background(), doc, domain.ExtractionParameters{})
	require.NoError(t, err)

	assert.Equal(t, []string{"page one", "", "page three"}, pages)
	assert.Equal(t, "page one\n\npage three", full)
}

func TestTextExtractor_PageSubset(t *testing.T) {
	doc := new(mocks.MockDocument)
	doc.On("PageCount").Return(5)
	doc.On("PageText", 1).Return("second", nil)

	e := extraction.NewTextExtractor()
	full, pages, err := e.Extract(context.Background(), doc, domain.ExtractionParameters{Pages: []int{1, 9}})
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, pages)
	assert.Equal(t, "second", full)
}

func TestTextExtractor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := new(mocks.MockDocument)
	doc.On("PageCount").Return(1)

	e := extraction.NewTextExtractor()
	_, _, err := e.Extract(ctx, doc, domain.ExtractionParameters{})
	assert.ErrorIs(t, err, context.Canceled)
}
