package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"paymax/internal/domain"
	"paymax/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "EMPTY_DOCUMENT", "document has no pages"
	case errors.Is(err, domain.ErrDocumentUnreadable):
		return http.StatusBadRequest, "DOCUMENT_UNREADABLE", "document content could not be read"
	case errors.Is(err, domain.ErrNoExtractableText):
		return http.StatusUnprocessableEntity, "NO_EXTRACTABLE_TEXT", "no text could be extracted from the document"
	case errors.Is(err, domain.ErrNoParserOutput):
		return http.StatusUnprocessableEntity, "NO_PARSER_OUTPUT", "no parser produced a usable result for this document"
	case errors.Is(err, domain.ErrProcessingTimeout):
		return http.StatusGatewayTimeout, "PROCESSING_TIMEOUT", "document processing exceeded the time limit; retry later"
	case errors.Is(err, domain.ErrUnsupportedFile):
		return http.StatusBadRequest, "UNSUPPORTED_FILE", "unsupported file; a valid PDF is required"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("handler: internal error: %v request_id=%s", err, middleware.RequestIDFrom(c))
	}
	RespondError(c, status, code, msg)
}
