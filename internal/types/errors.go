package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for Fortress framework errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

// Graph store error codes
const (
	GRAPH_CONNECTION_FAILED ErrorCode = "GRAPH_CONNECTION_FAILED"
	GRAPH_QUERY_FAILED      ErrorCode = "GRAPH_QUERY_FAILED"
	GRAPH_CONNECTION_CLOSED ErrorCode = "GRAPH_CONNECTION_CLOSED"
)

// Pipeline error codes
const (
	PIPELINE_GENERATION_FAILED ErrorCode = "PIPELINE_GENERATION_FAILED"
	PIPELINE_EXECUTION_FAILED  ErrorCode = "PIPELINE_EXECUTION_FAILED"
	PIPELINE_EXHAUSTED         ErrorCode = "PIPELINE_EXHAUSTED"
)

// Company registration error codes
const (
	COMPANY_EXTRACTION_FAILED   ErrorCode = "COMPANY_EXTRACTION_FAILED"
	COMPANY_ALREADY_EXISTS      ErrorCode = "COMPANY_ALREADY_EXISTS"
	COMPANY_NOT_FOUND           ErrorCode = "COMPANY_NOT_FOUND"
	COMPANY_REGISTRATION_FAILED ErrorCode = "COMPANY_REGISTRATION_FAILED"
)

// Ingest error codes
const (
	INGEST_EXTRACTION_FAILED ErrorCode = "INGEST_EXTRACTION_FAILED"
	INGEST_WRITE_FAILED      ErrorCode = "INGEST_WRITE_FAILED"
)

// FortressError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type FortressError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *FortressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *FortressError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a FortressError with the same Code.
func (e *FortressError) Is(target error) bool {
	var fortressErr *FortressError
	if errors.As(target, &fortressErr) {
		return e.Code == fortressErr.Code
	}
	return false
}

// NewError creates a new non-retryable FortressError with the given code and message.
func NewError(code ErrorCode, message string) *FortressError {
	return &FortressError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable FortressError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *FortressError {
	return &FortressError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable FortressError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *FortressError {
	return &FortressError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}
