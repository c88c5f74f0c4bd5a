package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationErrorType classifies a field problem
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
)

// fieldLabels maps form and query parameter names to the words shown to users
var fieldLabels = map[string]string{
	"current_rate":  "Hourly rate",
	"date":          "Date",
	"start_time":    "Start time",
	"end_time":      "End time",
	"start_date":    "Start date",
	"end_date":      "End date",
	"date_range":    "Date range",
	"time_entry_id": "Entry ID",
}

// FieldLabel returns the user-facing name of a field
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return strings.ReplaceAll(field, "_", " ")
}

// FieldError is one problem with one submitted field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError collects every field problem found in one submission
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation error"
	}

	parts := make([]string, 0, len(ve.Errors))
	for i := range ve.Errors {
		parts = append(parts, ve.Errors[i].Error())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HasErrors returns true if any field problem was recorded
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// AddError records a field problem
func (ve *ValidationError) AddError(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Type:    errorType,
		Message: message,
		Value:   value,
	})
}

// AddRequiredError records a missing field
func (ve *ValidationError) AddRequiredError(field string) {
	ve.AddError(field, ErrorTypeRequired, FieldLabel(field)+" is required", nil)
}

// AddInvalidFormatError records a value that could not be parsed
func (ve *ValidationError) AddInvalidFormatError(field string, value interface{}, expectedFormat string) {
	ve.AddError(field, ErrorTypeInvalidFormat, fmt.Sprintf("%s must look like %s", FieldLabel(field), expectedFormat), value)
}

// AddInvalidValueError records a parsed value that is not acceptable
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidValue, fmt.Sprintf("%s %s", FieldLabel(field), reason), value)
}

// AddInvalidRangeError records a value outside its allowed bounds
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	ve.AddError(field, ErrorTypeInvalidRange, fmt.Sprintf("%s %s", FieldLabel(field), reason), value)
}

// GetFieldErrors returns the problems recorded for one field
func (ve *ValidationError) GetFieldErrors(field string) []FieldError {
	var fieldErrors []FieldError
	for _, err := range ve.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// GetUserFriendlyMessage joins the messages of every field problem for display
func (ve *ValidationError) GetUserFriendlyMessage() string {
	if len(ve.Errors) == 0 {
		return "Please check your input."
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, err.Message+".")
	}
	return strings.Join(messages, " ")
}
