package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeRead indicates the layout file could not be read
	ErrTypeRead ErrorType = iota
	// ErrTypeParse indicates malformed YAML, JSON or JSONC
	ErrTypeParse
	// ErrTypeValidation indicates a well-formed layout with invalid contents
	ErrTypeValidation
	// ErrTypeFormat indicates an unsupported file format
	ErrTypeFormat
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeRead:
		return "Read Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeFormat:
		return "Format Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// LayoutError is returned by Load and Parse.
type LayoutError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Path    string    // Layout file path (if known)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *LayoutError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *LayoutError) Unwrap() error {
	return e.Err
}

func newReadError(path string, err error) *LayoutError {
	return &LayoutError{Type: ErrTypeRead, Message: "cannot read layout file", Path: path, Err: err}
}

func newParseError(format Format, err error) *LayoutError {
	return &LayoutError{Type: ErrTypeParse, Message: fmt.Sprintf("malformed %s layout", format), Err: err}
}

func newValidationError(format string, args ...any) *LayoutError {
	return &LayoutError{Type: ErrTypeValidation, Message: fmt.Sprintf(format, args...)}
}

func isType(err error, t ErrorType) bool {
	var le *LayoutError
	if errors.As(err, &le) {
		return le.Type == t
	}
	return false
}

// IsReadError checks if an error is a read error
func IsReadError(err error) bool { return isType(err, ErrTypeRead) }

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool { return isType(err, ErrTypeParse) }

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrTypeValidation) }

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var le *LayoutError
	if !errors.As(err, &le) {
		return "An unexpected error occurred. Please try again."
	}

	switch le.Type {
	case ErrTypeRead:
		return strings.Join([]string{
			"The layout file could not be opened.",
			"Troubleshooting:",
			"  • Check the path is spelled correctly",
			"  • Verify the file is readable by the current user",
		}, "\n")

	case ErrTypeParse:
		return strings.Join([]string{
			"The layout file is not well-formed.",
			"Troubleshooting:",
			"  • YAML files must use spaces, not tabs, for indentation",
			"  • JSON files may not contain comments; rename them to .jsonc",
			"  • Check the line and column reported in the error",
		}, "\n")

	case ErrTypeValidation:
		return strings.Join([]string{
			"The layout is well-formed but describes an invalid notebook.",
			"Troubleshooting:",
			"  • Mark at most one tab as selected",
			"  • Give each tab a unique id, or leave ids out",
			"  • Use either content or page on a tab, not both",
		}, "\n")

	case ErrTypeFormat:
		return "Use a .yaml, .yml, .json or .jsonc file, or pass --format explicitly."

	default:
		return "An error occurred. Please check the error message for details."
	}
}
