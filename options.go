package tempo

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/tempo/pkg/layout"
	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/tz"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. It is also handed to the registries
// the engine creates itself.
// Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLocales sets the locale registry. Registries may be shared between
// engines.
func WithLocales(r *locale.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.locales = r
		}
	}
}

// WithLocale sets the default locale tag for instants the engine creates.
// Defaults to the registry's current locale.
func WithLocale(tag string) Option {
	return func(e *Engine) {
		e.tag = locale.Normalize(tag)
	}
}

// WithTimezones sets the timezone database.
// Defaults to the embedded dataset.
func WithTimezones(db *tz.Database) Option {
	return func(e *Engine) {
		if db != nil {
			e.zones = db
		}
	}
}

// WithFormatter sets the formatter and with it the compiled pattern cache.
func WithFormatter(f *layout.Formatter) Option {
	return func(e *Engine) {
		if f != nil {
			e.formatter = f
		}
	}
}

// WithHost sets the location used for local time.
// Defaults to time.Local.
func WithHost(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.host = loc
		}
	}
}

// WithClock sets the source of the current time.
// Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithThresholds replaces the humanize thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
	}
}

// WithThreshold changes one humanize threshold; see Thresholds.With.
// Unknown keys are ignored.
func WithThreshold(key string, limit int) Option {
	return func(e *Engine) {
		if t, ok := e.thresholds.With(key, limit); ok {
			e.thresholds = t
		}
	}
}

// ParseOption configures a single parse call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	zone       string
	tags       []string
	strict     bool
	utc        bool
	keepOffset bool
}

// ParseStrict requires the input to match exactly: no leftover text, no
// unmatched tokens and no free-form fallback.
func ParseStrict() ParseOption {
	return func(c *parseConfig) { c.strict = true }
}

// ParseLocale reads names with the best locale match for tags. The locale
// is also bound to the result.
func ParseLocale(tags ...string) ParseOption {
	return func(c *parseConfig) { c.tags = tags }
}

// ParseUTC reads wall clocks without an offset as UTC and returns a UTC
// instant.
func ParseUTC() ParseOption {
	return func(c *parseConfig) { c.utc = true }
}

// ParseIn reads wall clocks without an offset in the named zone and
// returns an instant bound to it.
func ParseIn(zone string) ParseOption {
	return func(c *parseConfig) { c.zone = zone }
}

// ParseZone keeps the offset found in the input as a fixed offset ("Z"
// and +00:00 give UTC).
func ParseZone() ParseOption {
	return func(c *parseConfig) { c.keepOffset = true }
}
