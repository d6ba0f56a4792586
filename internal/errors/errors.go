package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions
var (
	// ErrDegenerateInput is returned when similarity cannot be computed because
	// neither text contains a vectorizable term
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrUnsupportedDocument is returned when a document type cannot be extracted
	ErrUnsupportedDocument = errors.New("unsupported document")

	// ErrEmptyDocument is returned when a document payload has no bytes
	ErrEmptyDocument = errors.New("empty document")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// DegenerateInputError represents a similarity request over an empty shared vocabulary
type DegenerateInputError struct {
	MinTermLength int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("cannot compute similarity: no terms of at least %d characters in either text", e.MinTermLength)
}

func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}

// NewDegenerateInputError creates a new DegenerateInputError
func NewDegenerateInputError(minTermLength int) *DegenerateInputError {
	return &DegenerateInputError{MinTermLength: minTermLength}
}

// UnsupportedDocumentError represents a document whose content type has no extractor.
// Supported, when set, lists the types that would have been accepted.
type UnsupportedDocumentError struct {
	MIMEType  string
	Filename  string
	Supported []string
}

func (e *UnsupportedDocumentError) Error() string {
	msg := fmt.Sprintf("unsupported document type '%s'", e.MIMEType)
	if e.Filename != "" {
		msg += fmt.Sprintf(" for file '%s'", e.Filename)
	}
	if len(e.Supported) > 0 {
		msg += " (supported: " + strings.Join(e.Supported, ", ") + ")"
	}
	return msg
}

func (e *UnsupportedDocumentError) Is(target error) bool {
	return target == ErrUnsupportedDocument
}

// NewUnsupportedDocumentError creates a new UnsupportedDocumentError
func NewUnsupportedDocumentError(mimeType string, filename ...string) *UnsupportedDocumentError {
	err := &UnsupportedDocumentError{MIMEType: mimeType}
	if len(filename) > 0 {
		err.Filename = filename[0]
	}
	return err
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
