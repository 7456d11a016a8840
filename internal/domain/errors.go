package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when an assessment does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnknownStrategy is returned when a scoring strategy name is not recognized.
var ErrUnknownStrategy = errors.New("unknown scoring strategy")

// MalformedInputError reports statement input the pipeline cannot absorb.
// It always fails the whole run.
type MalformedInputError struct {
	// Index is the transaction index, or -1 for document-level problems.
	Index  int
	Field  string
	Value  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	loc := e.Field
	if e.Index >= 0 {
		loc = fmt.Sprintf("transactions[%d].%s", e.Index, e.Field)
	}
	if e.Value != "" {
		return fmt.Sprintf("malformed input at %s (%q): %s", loc, e.Value, e.Reason)
	}
	return fmt.Sprintf("malformed input at %s: %s", loc, e.Reason)
}

// IsMalformedInput reports whether err wraps a MalformedInputError.
func IsMalformedInput(err error) bool {
	var m *MalformedInputError
	return errors.As(err, &m)
}

// ValidationError reports a request parameter outside its allowed values.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError returns a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrFeatureUnavailable is returned when an optional feature lacks the
// configuration it needs, such as an API key.
var ErrFeatureUnavailable = errors.New("feature unavailable: not configured")
