package tz

import "errors"

var (
	// ErrUnknownTimezone is returned when a zone name is neither a known
	// zone nor a link to one.
	ErrUnknownTimezone = errors.New("tz: unknown timezone")

	// ErrInvalidPacked is returned when a packed zone record is malformed.
	ErrInvalidPacked = errors.New("tz: invalid packed zone")

	// ErrInvalidBase60 is returned for characters outside the base-60 alphabet.
	ErrInvalidBase60 = errors.New("tz: invalid base-60 digit")
)
