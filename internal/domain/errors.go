package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmptyDocument      = errors.New("document has no pages")
	ErrDocumentUnreadable = errors.New("document could not be opened")
	ErrNoExtractableText  = errors.New("no text could be extracted from document")
	ErrNoParserOutput     = errors.New("no parser produced a usable result")
	ErrProcessingTimeout  = errors.New("document processing deadline exceeded")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
)
