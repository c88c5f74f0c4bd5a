// Package errors defines the application error taxonomy shared by the
// repository, services and both front ends.
package errors

import (
	"errors"
	"fmt"
)

const (
	// CodeUnknown is reported for errors that are not AppErrors
	CodeUnknown = "UNKNOWN_ERROR"

	genericDatabaseMessage   = "A database error occurred. Please try again."
	genericTimeoutMessage    = "The operation timed out. Please try again."
	genericUnexpectedMessage = "An unexpected error occurred. Please try again."
)

func newAppError(errorType ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewValidationError creates an error for input that breaks a business rule
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, "VALIDATION_FAILED", message, cause)
}

// NewNotFoundError creates an error for a missing record
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found: %s", resource, identifier), nil).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewDatabaseError wraps a storage failure
func NewDatabaseError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeDatabase, "DATABASE_ERROR", "database operation failed: "+operation, cause).
		WithContext("operation", operation)
}

// NewInvalidInputError creates an error for a malformed argument
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, "INVALID_INPUT", fmt.Sprintf("invalid input for %s: %s", field, reason), nil).
		WithContext("field", field).
		WithContext("value", value)
}

// NewTimeoutError creates an error for an operation that ran past its deadline
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, "TIMEOUT", "operation timed out: "+operation, nil).
		WithContext("operation", operation).
		WithContext("timeout", timeout)
}

// NewEmptyResultError signals that an operation had nothing to act on.
// Callers short-circuit instead of producing an artifact.
func NewEmptyResultError(message string) *AppError {
	return newAppError(ErrorTypeEmptyResult, "EMPTY_RESULT", message, nil)
}

// IsAppError checks if the error is or wraps an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// IsEmptyResult reports whether err is an empty result signal
func IsEmptyResult(err error) bool {
	return IsErrorType(err, ErrorTypeEmptyResult)
}

// GetUserMessage returns the text to show the user. System failures get a
// generic message; their details only go to the log.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type.UserCaused() {
		return appErr.Message
	}
	switch appErr.Type {
	case ErrorTypeDatabase:
		return genericDatabaseMessage
	case ErrorTypeTimeout:
		return genericTimeoutMessage
	default:
		return genericUnexpectedMessage
	}
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// ShouldLogError reports whether err is a system failure worth logging
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.UserCaused()
	}
	return true
}
