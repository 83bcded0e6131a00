package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"paymax/internal/domain"
	"paymax/internal/parser"
	"paymax/internal/port"
	"paymax/mocks"
)

func TestVisionParser_Score(t *testing.T) {
	v, err := parser.NewVisionParser(new(mocks.MockTextRecognizer), testResolver(t), nil)
	require.NoError(t, err)

	// OCR only competes when native text is nearly empty.
	assert.Equal(t, 1, v.Score("  \n "))
	assert.Equal(t, 1, v.Score("short scan artifact"))
	assert.Equal(t, 0, v.Score(pcdaSlip))
}

func TestVisionParser_OCRsPageImages(t *testing.T) {
	doc := new(mocks.MockDocument)
	doc.On("PageCount").Return(2)
	doc.On("PageImage", 0).Return([]byte{0x1}, nil)
	doc.On("PageImage", 1).Return(nil, errors.New("render failed"))

	rec := new(mocks.MockTextRecognizer)
	rec.On("RecognizeText", mock.Anything, []byte{0x1}).
		Return("Name: Jane Roe\nGross Pay 40000", nil)

	v, err := parser.NewVisionParser(rec, testResolver(t), nil)
	require.NoError(t, err)

	out, err := v.Parse(context.Background(), port.ParseInput{Text: "", Document: doc})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", out.Record.Name)
	assert.Equal(t, 40000.0, out.Record.Credits)
	assert.Equal(t, "vision", out.Record.ParserName)
	rec.AssertNumberOfCalls(t, "RecognizeText", 1)
}

func TestVisionParser_RequiresDocument(t *testing.T) {
	v, err := parser.NewVisionParser(new(mocks.MockTextRecognizer), testResolver(t), nil)
	require.NoError(t, err)

	_, err = v.Parse(context.Background(), port.ParseInput{Text: "x"})
	assert.Error(t, err)
}

func TestVisionParser_NoRecognizedText(t *testing.T) {
	doc := new(mocks.MockDocument)
	doc.On("PageCount").Return(1)
	doc.On("PageImage", 0).Return(nil, errors.New("no imagery"))

	v, err := parser.NewVisionParser(new(mocks.MockTextRecognizer), testResolver(t), nil)
	require.NoError(t, err)

	_, err = v.Parse(context.Background(), port.ParseInput{Document: doc})
	assert.ErrorIs(t, err, domain.ErrNoExtractableText)
}
