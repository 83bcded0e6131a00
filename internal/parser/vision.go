package parser

import (
	"context"
	"fmt"
	"strings"

	"paymax/internal/abbrev"
	"paymax/internal/domain"
	"paymax/internal/port"
)

// VisionParser recovers text from page bitmaps through the OCR recognizer
// and then parses it like a generic payslip. It is the fallback for scanned
// documents whose native text extraction yielded nothing useful.
type VisionParser struct {
	recognizer port.TextRecognizer
	inner      *GenericParser
}

// NewVisionParser creates a VisionParser over an OCR recognizer.
func NewVisionParser(recognizer port.TextRecognizer, resolver *abbrev.Resolver, tracker *abbrev.Tracker) (*VisionParser, error) {
	inner, err := NewGenericParser(resolver, tracker)
	if err != nil {
		return nil, err
	}
	return &VisionParser{recognizer: recognizer, inner: inner}, nil
}

func (v *VisionParser) Name() string {
	return "vision"
}

func (v *VisionParser) Format() domain.PayslipFormat {
	return domain.FormatGeneric
}

// Score is deliberately minimal: OCR is expensive and only worth running
// when the native text carries almost nothing.
func (v *VisionParser) Score(text string) int {
	if len(strings.TrimSpace(text)) < 40 {
		return 1
	}
	return 0
}

func (v *VisionParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if input.Document == nil {
		return nil, fmt.Errorf("vision parsing requires the source document")
	}
	if v.recognizer == nil {
		return nil, fmt.Errorf("no OCR recognizer configured")
	}

	var ocrText strings.Builder
	pageCount := input.Document.PageCount()
	for pageNr := 0; pageNr < pageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("OCR cancelled: %w", err)
		}
		image, err := input.Document.PageImage(pageNr)
		if err != nil {
			continue
		}
		text, err := v.recognizer.RecognizeText(ctx, image)
		if err != nil {
			continue
		}
		ocrText.WriteString(text)
		ocrText.WriteString("\n")
	}

	combined := strings.TrimSpace(ocrText.String())
	if combined == "" {
		return nil, domain.ErrNoExtractableText
	}
	return parseWithEngine(v.inner.engine, v.inner.processor, v.Name(), combined)
}
