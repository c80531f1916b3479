package tempo

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/tempo/pkg/calendar"
	"github.com/dmitrymomot/tempo/pkg/layout"
	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/logger"
	"github.com/dmitrymomot/tempo/pkg/parse"
	"github.com/dmitrymomot/tempo/pkg/tz"
)

// Engine owns the locale registry, the timezone database, the formatter and
// the parser. Instants remember the engine that created them. An Engine is
// safe for concurrent use.
type Engine struct {
	logger     *slog.Logger
	locales    *locale.Registry
	zones      *tz.Database
	formatter  *layout.Formatter
	parser     *parse.Parser
	host       *time.Location
	clock      func() time.Time
	tag        string
	thresholds Thresholds
}

// New creates an Engine. Without WithTimezones the embedded zone dataset
// is loaded; without WithLocales a registry with the built-in locales is
// created.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:     logger.NewNope(),
		host:       time.Local,
		clock:      time.Now,
		thresholds: DefaultThresholds,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.locales == nil {
		e.locales = locale.NewRegistry(locale.WithLogger(e.logger))
	}
	if e.zones == nil {
		db, err := tz.NewEmbedded(tz.WithLogger(e.logger))
		if err != nil {
			return nil, fmt.Errorf("tempo: load embedded timezones: %w", err)
		}
		e.zones = db
	}
	if e.formatter == nil {
		e.formatter = layout.New()
	}
	e.parser = parse.New(parse.WithLogger(e.logger), parse.WithClock(e.clock))

	if e.tag != "" {
		if _, ok := e.locales.Get(e.tag); !ok {
			return nil, fmt.Errorf("%w: %s", locale.ErrUnknownLocale, e.tag)
		}
	}
	return e, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// defaultEngine backs zero Instants and Durations humanized without a
// locale.
var defaultEngine = sync.OnceValue(func() *Engine { return MustNew() })

// Locales returns the locale registry.
func (e *Engine) Locales() *locale.Registry { return e.locales }

// Timezones returns the timezone database.
func (e *Engine) Timezones() *tz.Database { return e.zones }

// Thresholds returns the humanize thresholds.
func (e *Engine) Thresholds() Thresholds { return e.thresholds }

// Locale returns the best registered match for tags. With no tags it is
// the engine's default locale, or the registry's current one.
func (e *Engine) Locale(tags ...string) *locale.Locale {
	if len(tags) == 0 || (len(tags) == 1 && tags[0] == "") {
		if e.tag != "" {
			return e.locales.Resolve(e.tag)
		}
		return e.locales.Current()
	}
	return e.locales.Resolve(tags...)
}

// Zone looks up a named zone.
func (e *Engine) Zone(name string) (*tz.Zone, bool) { return e.zones.Zone(name) }

// Guess returns the zone that best matches the host location. It is a
// heuristic; see tz.Database.Guess.
func (e *Engine) Guess() (*tz.Zone, bool) {
	return e.zones.Guess(tz.WithHost(e.host), tz.WithNow(e.clock()))
}

func (e *Engine) instant(ms int64, f frame) Instant {
	return Instant{ms: ms, frame: f, loc: e.Locale(), engine: e}
}

// Now returns the current instant in host local time.
func (e *Engine) Now() Instant {
	return e.instant(e.clock().UnixMilli(), localFrame(e.host))
}

// FromUnixMilli returns the instant ms milliseconds after the Unix epoch,
// in host local time.
func (e *Engine) FromUnixMilli(ms int64) Instant {
	return e.instant(ms, localFrame(e.host))
}

// FromTime converts a time.Time, keeping its frame: UTC stays UTC, the host
// location stays local, a location whose name is a known zone becomes that
// zone, and anything else becomes a fixed offset. Sub-millisecond precision
// is dropped.
func (e *Engine) FromTime(t time.Time) Instant {
	ms := t.UnixMilli()
	switch loc := t.Location(); {
	case loc == time.UTC:
		return e.instant(ms, utcFrame())
	case loc == e.host || loc == time.Local:
		return e.instant(ms, localFrame(e.host))
	default:
		if z, ok := e.zones.Zone(loc.String()); ok {
			return e.instant(ms, namedFrame(z))
		}
	}
	_, off := t.Zone()
	return e.instant(ms, fixedFrame(off/60))
}

// Parse reads text as ASP.NET JSON date, ISO-8601 or RFC 2822 and, unless
// ParseStrict is given, falls back to a free-form English reading.
func (e *Engine) Parse(text string, opts ...ParseOption) (Instant, error) {
	return e.parse(parse.Text(text), opts)
}

// ParseFormat reads text with an explicit format pattern. The names
// parse.ISO8601 and parse.RFC2822 select those grammars.
func (e *Engine) ParseFormat(text, format string, opts ...ParseOption) (Instant, error) {
	return e.parse(parse.Layout{Text: text, Format: format}, opts)
}

// ParseFormats tries every format and keeps the first valid reading, or
// the closest one when none is valid.
func (e *Engine) ParseFormats(text string, formats []string, opts ...ParseOption) (Instant, error) {
	return e.parse(parse.Layouts{Text: text, Formats: formats}, opts)
}

// FromFields builds an instant from calendar fields. Missing leading
// fields come from the current date and missing trailing fields are zero.
func (e *Engine) FromFields(fields parse.Fields, opts ...ParseOption) (Instant, error) {
	return e.parse(fields, opts)
}

func (e *Engine) parse(in parse.Input, opts []ParseOption) (Instant, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	base := e.instant(0, localFrame(e.host))
	base.loc = e.Locale(cfg.tags...)
	switch {
	case cfg.utc:
		base.frame = utcFrame()
	case cfg.zone != "":
		if z, ok := e.zones.Zone(cfg.zone); ok {
			base.frame = namedFrame(z)
		} else {
			e.logger.Warn("unknown timezone, parsing in local time",
				slog.String("zone", cfg.zone),
			)
		}
	}

	r, err := e.parser.Parse(in, parse.Options{
		Locale: base.loc,
		Strict: cfg.strict,
		Now:    base.frame.clock(e.clock()),
	})
	if err != nil {
		base.err = err
		return base, err
	}
	return base.fromResult(r, cfg.keepOffset), nil
}

// fromResult places parsed fields on the timeline. Wall clocks without an
// offset are read in i's frame.
func (i Instant) fromResult(r parse.Result, keepOffset bool) Instant {
	if r.HasUnix {
		i.ms = r.UnixMilli
		return i
	}
	wall := calendar.DaysFromCivil(r.Year, r.Month, r.Day)*calendar.MillisPerDay +
		int64(r.Hour)*calendar.MillisPerHour +
		int64(r.Minute)*calendar.MillisPerMinute +
		int64(r.Second)*calendar.MillisPerSecond +
		int64(r.Millisecond)
	if r.NextDay {
		wall += calendar.MillisPerDay
	}
	if !r.HasOffset {
		return i.atWall(wall)
	}
	i.ms = wall - int64(r.Offset)*calendar.MillisPerMinute
	if keepOffset {
		i.frame = fixedFrame(r.Offset)
		if r.Offset == 0 {
			i.frame = utcFrame()
		}
	}
	return i
}

// Format renders i in the best locale match for tag, or in i's own locale
// when tag is empty.
func (e *Engine) Format(i Instant, pattern, tag string) string {
	if tag != "" {
		i.loc = e.Locale(tag)
	}
	if pattern == "" {
		return i.Format("")
	}
	return e.formatter.Format(i, pattern, i.Locale())
}

// Humanize renders a Duration as a relative-time phrase in the best locale
// match for tag, using the engine's thresholds.
func (e *Engine) Humanize(d Duration, withSuffix bool, tag string) string {
	return d.Humanize(e.Locale(tag), withSuffix, e.thresholds)
}
