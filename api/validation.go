// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gcbaptista/go-ats-scanner/services"
)

// maxLimit caps the number of missing keywords a client can ask for
const maxLimit = 1000

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateAnalysisRequest validates a text analysis request.
// An empty resume is allowed and scores 0; the job description is required.
func ValidateAnalysisRequest(req *services.AnalysisRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Analysis request is required")
		return result
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		result.AddError("job_description", "Job description is required")
	}

	return result
}

// ValidateText validates a free-text field
func ValidateText(field, text string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(text) == "" {
		result.AddError(field, "Text is required")
	}

	return result
}

// ParseLimit parses the optional "limit" query parameter.
// An empty value yields defaultLimit; 0 means no truncation.
func ParseLimit(raw string, defaultLimit int) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		return defaultLimit, result
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("limit", "Limit must be an integer")
		return 0, result
	}
	if limit < 0 || limit > maxLimit {
		result.AddError("limit", fmt.Sprintf("Limit must be between 0 and %d", maxLimit))
		return 0, result
	}

	return limit, result
}
