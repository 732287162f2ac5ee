// Package errors provides structured error types for labreport.
// Errors carry a code, context, the underlying cause, and actionable suggestions.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryConfig     Category = "config"     // Report definition loading/parsing errors
	CategoryValidation Category = "validation" // Definition schema violations
	CategoryIO         Category = "io"         // Input and output file errors
	CategoryLayout     Category = "layout"     // Content that cannot be paginated
	CategoryInternal   Category = "internal"   // PDF engine and unexpected errors
)

// ReportError is a structured error with context and suggestions.
// It implements the error interface and supports error wrapping.
type ReportError struct {
	// Code is a unique identifier for this error type (e.g., "SOURCE_NOT_FOUND")
	Code string

	// Category classifies this error for consistent handling
	Category Category

	// Message is the primary error message describing what went wrong
	Message string

	// Context provides additional key-value details about the error
	Context map[string]string

	// Cause is the underlying error that triggered this error
	Cause error

	// Suggestions are actionable remediation steps for the user
	Suggestions []string
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through it.
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// Is reports whether e matches target. Two ReportErrors match if they have the same Code.
func (e *ReportError) Is(target error) bool {
	if t, ok := target.(*ReportError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new ReportError with the given code, category, and message.
func New(code string, category Category, message string) *ReportError {
	return &ReportError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Wrap wraps an existing error with a ReportError.
func Wrap(err error, code string, category Category, message string) *ReportError {
	return New(code, category, message).WithCause(err)
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *ReportError) WithContext(key, value string) *ReportError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *ReportError) WithCause(cause error) *ReportError {
	e.Cause = cause
	return e
}

// WithSuggestions appends remediation suggestions.
func (e *ReportError) WithSuggestions(suggestions ...string) *ReportError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// HasContext returns true if the error has context information.
func (e *ReportError) HasContext() bool {
	return len(e.Context) > 0
}

// HasSuggestions returns true if the error has suggestions.
func (e *ReportError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// ContextString returns the context entries as key="value" pairs sorted by key.
func (e *ReportError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, e.Context[k]))
	}
	return strings.Join(parts, ", ")
}

// AsReportError finds the first ReportError in err's chain.
func AsReportError(err error) (*ReportError, bool) {
	for err != nil {
		if re, ok := err.(*ReportError); ok {
			return re, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// IsCategory checks if an error is a ReportError with the given category.
func IsCategory(err error, category Category) bool {
	if re, ok := AsReportError(err); ok {
		return re.Category == category
	}
	return false
}

// IsCode checks if an error is a ReportError with the given code.
func IsCode(err error, code string) bool {
	if re, ok := AsReportError(err); ok {
		return re.Code == code
	}
	return false
}

// -----------------------------------------------------------------------------
// Constructors with Auto-Attached Suggestions
// -----------------------------------------------------------------------------

// Config creates a definition error with registry suggestions attached.
func Config(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryConfig, message))
}

// Validation creates a validation error with registry suggestions attached.
func Validation(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryValidation, message))
}

// IO wraps a file error with registry suggestions attached.
func IO(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryIO, message))
}

// Layout creates a layout error with registry suggestions attached.
func Layout(code, format string, args ...interface{}) *ReportError {
	return AttachSuggestions(New(code, CategoryLayout, fmt.Sprintf(format, args...)))
}

// Internal wraps an unexpected error with registry suggestions attached.
func Internal(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryInternal, message))
}
