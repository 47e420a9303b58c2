package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Event errors
	ErrEventParse ErrorCode = "EVENT_PARSE"

	// Template errors
	ErrTemplate ErrorCode = "TEMPLATE"

	// Handler errors
	ErrHandlerNotFound ErrorCode = "HANDLER_NOT_FOUND"
	ErrHandlerInvalid  ErrorCode = "HANDLER_INVALID"
	ErrHandlerExecute  ErrorCode = "HANDLER_EXECUTE"
)

// BoopError represents a structured error with code and details
type BoopError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BoopError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BoopError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BoopError) Is(target error) bool {
	var targetErr *BoopError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BoopError with the given code and message
func New(code ErrorCode, message string) *BoopError {
	return &BoopError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BoopError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BoopError {
	return &BoopError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BoopError
func Wrap(err error, code ErrorCode, message string) *BoopError {
	if err == nil {
		return nil
	}
	return &BoopError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BoopError {
	if err == nil {
		return nil
	}
	return &BoopError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BoopError) WithDetail(key string, value interface{}) *BoopError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var boopErr *BoopError
	if errors.As(err, &boopErr) {
		return boopErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BoopError
func GetErrorCode(err error) ErrorCode {
	var boopErr *BoopError
	if errors.As(err, &boopErr) {
		return boopErr.Code
	}
	return ErrUnknown
}
