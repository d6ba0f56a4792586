package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON         ErrorCode = "INVALID_JSON"
	ErrorCodeDegenerateInput     ErrorCode = "DEGENERATE_INPUT"
	ErrorCodeUnsupportedDocument ErrorCode = "UNSUPPORTED_DOCUMENT"
	ErrorCodeEmptyDocument       ErrorCode = "EMPTY_DOCUMENT"
	ErrorCodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	ErrorCodeRequestTooLarge     ErrorCode = "REQUEST_TOO_LARGE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendRequestTooLargeError sends a 413 for a body that exceeded limit bytes
func SendRequestTooLargeError(c *gin.Context, limit int64) {
	SendError(c, http.StatusRequestEntityTooLarge, ErrorCodeRequestTooLarge,
		fmt.Sprintf("Request body exceeds the %d byte limit", limit))
}

// SendBindError sends a 413 when the body hit the size limit, an invalid JSON error otherwise
func SendBindError(c *gin.Context, err error) {
	if tooLarge, ok := asRequestTooLarge(err); ok {
		SendRequestTooLargeError(c, tooLarge.Limit)
		return
	}
	SendInvalidJSONError(c, err)
}

// asRequestTooLarge extracts the error http.MaxBytesReader returns once the limit is hit
func asRequestTooLarge(err error) (*http.MaxBytesError, bool) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return tooLarge, true
	}
	return nil, false
}

// SendInvalidRequestError sends a standardized invalid request error
func SendInvalidRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, message)
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendAnalysisError maps an analysis or extraction error to the matching response
func SendAnalysisError(c *gin.Context, err error) {
	var validation *ierrors.ValidationError
	switch {
	case errors.Is(err, ierrors.ErrDegenerateInput):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeDegenerateInput,
			"Cannot analyze: neither document contains comparable words")
	case errors.Is(err, ierrors.ErrUnsupportedDocument):
		SendError(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedDocument, err.Error())
	case errors.Is(err, ierrors.ErrEmptyDocument):
		SendError(c, http.StatusBadRequest, ErrorCodeEmptyDocument, "Uploaded document is empty")
	case errors.As(err, &validation):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validation.Field, Message: validation.Message, Code: "VALIDATION_ERROR"})
	case isExtractionError(err):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeExtractionFailed,
			"Could not extract text from document: "+err.Error())
	default:
		SendInternalError(c, "analysis", err)
	}
}

// extractionError marks failures raised while reading an uploaded document
type extractionError struct {
	err error
}

func (e *extractionError) Error() string { return e.err.Error() }
func (e *extractionError) Unwrap() error { return e.err }

func isExtractionError(err error) bool {
	var target *extractionError
	return errors.As(err, &target)
}
