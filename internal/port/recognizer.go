package port

import "context"

// TextRecognizer abstracts the bitmap OCR engine used by vision-style parsing
// and the OCR extraction strategy.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}
