// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrTimeout          = errors.New("operation timed out")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrInputValidation  = errors.New("input validation failed")
	ErrRunInFlight      = errors.New("analysis already running")

	// ErrAnalysisTimeout carries the exact banner text the workspace
	// surfaces when the pipeline deadline elapses.
	ErrAnalysisTimeout = errors.New("Analysis timed out (>5 min). Try again.")
)

// APIError represents a failure talking to the dashboard API. Kind
// distinguishes the three layers of the error taxonomy: transport failures,
// HTTP non-success, and application-level errors carried in a 200 body.
type APIError struct {
	Kind       APIErrorKind
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// APIErrorKind classifies an APIError.
type APIErrorKind string

const (
	// KindTransport covers DNS, dial, and context failures from the
	// platform's HTTP primitive.
	KindTransport APIErrorKind = "transport"
	// KindHTTP covers non-2xx responses; Message is the body's detail,
	// message, or raw text, falling back to the status code.
	KindHTTP APIErrorKind = "http"
	// KindApplication covers 200 responses whose status field is not
	// "success"; Message is the server's error_message.
	KindApplication APIErrorKind = "application"
)

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api error [%s] %s: %s: %v", e.Kind, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("api error [%s] %s: %s", e.Kind, e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError.
func NewAPIError(kind APIErrorKind, endpoint string, statusCode int, message string, err error) *APIError {
	return &APIError{
		Kind:       kind,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// Surface returns the message the UI should display for any error. API
// errors surface only their server-supplied message; everything else
// surfaces its Error text.
func Surface(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ExtractionError represents a failure reconstructing structured data from
// a pipeline reply. Extraction that simply finds nothing is not an error;
// this type is reserved for malformed typed payloads.
type ExtractionError struct {
	Section string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error [%s]: %v", e.Section, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(section string, err error) *ExtractionError {
	return &ExtractionError{Section: section, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
