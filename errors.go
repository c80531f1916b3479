package tempo

import (
	"errors"

	"github.com/dmitrymomot/tempo/pkg/parse"
)

var (
	// ErrInvalidInput is returned when text or fields do not describe a
	// valid instant. It is the same sentinel as parse.ErrInvalidInput, so
	// errors.Is works against either.
	ErrInvalidInput = parse.ErrInvalidInput

	// ErrInvalidDuration is returned when a duration string is malformed.
	ErrInvalidDuration = errors.New("tempo: invalid duration")

	// ErrInvalidUnit is returned for unit names that are not recognised.
	ErrInvalidUnit = errors.New("tempo: invalid unit")
)
