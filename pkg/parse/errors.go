package parse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every parse failure.
	ErrInvalidInput = errors.New("parse: invalid input")
	// ErrNoLocale is returned when Options carries no locale.
	ErrNoLocale = errors.New("parse: locale is required")
	// ErrNoFormats is returned for a Layouts input without candidates.
	ErrNoFormats = errors.New("parse: no candidate formats")
)

// Error describes why an input could not be turned into a valid instant.
type Error struct {
	Input  string
	Format string
	// Field is the first offending field, or NoField.
	Field  Field
	Reason string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("parse: invalid input %q", e.Input)
	if e.Format != "" {
		msg += fmt.Sprintf(" for format %q", e.Format)
	}
	msg += ": " + e.Reason
	if e.Field != NoField {
		msg += " (" + e.Field.String() + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return ErrInvalidInput }
