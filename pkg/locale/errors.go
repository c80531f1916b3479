package locale

import "errors"

var (
	// ErrUnknownLocale is returned when no registered locale matches a tag.
	ErrUnknownLocale = errors.New("locale: unknown locale")

	// ErrParentNotLoaded is returned by Define when the parent locale is not
	// registered yet. The definition is queued and applied once the parent
	// is defined.
	ErrParentNotLoaded = errors.New("locale: parent locale not loaded")

	// ErrInvalidConfig is returned when a config carries malformed data
	// such as a bad era date or an uncompilable pattern.
	ErrInvalidConfig = errors.New("locale: invalid config")

	// ErrInvalidFile is returned when a locale file cannot be decoded.
	ErrInvalidFile = errors.New("locale: invalid locale file")
)
