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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Rule evaluation errors
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrMatchFailed    ErrorCode = "MATCH_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// Exit statuses, following sysexits(3)
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitIOErr    = 74
	ExitConfig   = 78
)

// LogpeekError represents a structured error with code and details
type LogpeekError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LogpeekError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LogpeekError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LogpeekError) Is(target error) bool {
	var targetErr *LogpeekError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LogpeekError with the given code and message
func New(code ErrorCode, message string) *LogpeekError {
	return &LogpeekError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LogpeekError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LogpeekError {
	return &LogpeekError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LogpeekError
func Wrap(err error, code ErrorCode, message string) *LogpeekError {
	if err == nil {
		return nil
	}
	return &LogpeekError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LogpeekError {
	if err == nil {
		return nil
	}
	return &LogpeekError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LogpeekError) WithDetail(key string, value interface{}) *LogpeekError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Locate returns err with where prepended to its message and the detail
// key set, keeping the error code. A LogpeekError is copied rather than
// wrapped so the code tag appears once in the message.
func Locate(err error, where, key string, value interface{}) *LogpeekError {
	if err == nil {
		return nil
	}
	var lpErr *LogpeekError
	if !errors.As(err, &lpErr) {
		return Wrap(err, ErrUnknown, where).WithDetail(key, value)
	}
	located := &LogpeekError{
		Code:    lpErr.Code,
		Message: where + ": " + lpErr.Message,
		Details: make(map[string]interface{}, len(lpErr.Details)+1),
		Wrapped: lpErr.Wrapped,
	}
	for k, v := range lpErr.Details {
		located.Details[k] = v
	}
	located.Details[key] = value
	return located
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var lpErr *LogpeekError
	if errors.As(err, &lpErr) {
		return lpErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LogpeekError
func GetErrorCode(err error) ErrorCode {
	var lpErr *LogpeekError
	if errors.As(err, &lpErr) {
		return lpErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LogpeekError
func GetErrorDetails(err error) map[string]interface{} {
	var lpErr *LogpeekError
	if errors.As(err, &lpErr) {
		return lpErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit status for its kind.
// Every code gets a stable status so scripts can tell a bad pattern
// from a bad document from a missing file.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetErrorCode(err) {
	case ErrInvalidPattern, ErrMatchFailed:
		return ExitDataErr
	case ErrConfigParse, ErrConfigLoad:
		return ExitConfig
	case ErrFileAccess:
		return ExitNoInput
	case ErrFileWrite:
		return ExitIOErr
	case ErrInvalidInput:
		return ExitUsage
	default:
		return ExitSoftware
	}
}
