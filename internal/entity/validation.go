package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is wrapped by every error Load returns, so callers can
// distinguish a bad input document from other failures.
var ErrInvalidSchema = errors.New("invalid entity schema")

// ErrInvalidContext is wrapped by NewContext validation failures.
var ErrInvalidContext = errors.New("invalid generation context")

// ValidationError represents a schema validation error with context
type ValidationError struct {
	Field      string // Field path (e.g., "fields[0].name")
	Message    string // Error message
	Suggestion string // Helpful suggestion (optional)
}

// Error returns a formatted error message
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// isIdentifier reports whether s is usable as (part of) a class name in every
// supported stack: ASCII letters, digits and underscores, not starting with a digit.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isIdentifierFragment is isIdentifier without the leading-digit rule,
// for suffixes such as "V2".
func isIdentifierFragment(s string) bool {
	return isIdentifier("_" + s)
}
