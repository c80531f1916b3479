package layout

import (
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tempo/internal/token"
	"github.com/dmitrymomot/tempo/pkg/cache"
	"github.com/dmitrymomot/tempo/pkg/locale"
)

// Default patterns used when no pattern is given.
const (
	DefaultFormat    = "YYYY-MM-DDTHH:mm:ssZ"
	DefaultFormatUTC = "YYYY-MM-DDTHH:mm:ss[Z]"
	ISO8601          = "YYYY-MM-DDTHH:mm:ss.SSS[Z]"
)

// DefaultCacheSize bounds the number of compiled patterns kept by a
// Formatter.
const DefaultCacheSize = 512

// Value is the wall-clock view of an instant the formatter renders.
// Month is zero-based; UTCOffset is in minutes east of UTC.
type Value interface {
	Valid() bool
	Year() int
	Month() int
	Date() int
	Hour() int
	Minute() int
	Second() int
	Millisecond() int
	UTCOffset() int
	ZoneAbbr() string
	ZoneName() string
	UnixMilli() int64
}

// Formatter renders values with format patterns. Compiled patterns are
// memoized. A Formatter is safe for concurrent use.
type Formatter struct {
	compiled cache.Cache[*Compiled]
	group    singleflight.Group
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithCache replaces the compiled pattern cache.
func WithCache(c cache.Cache[*Compiled]) Option {
	return func(f *Formatter) {
		if c != nil {
			f.compiled = c
		}
	}
}

// WithCacheSize sets the capacity of the default compiled pattern cache.
func WithCacheSize(n int) Option {
	return func(f *Formatter) {
		f.compiled = cache.NewMemory[*Compiled](cache.WithMaxEntries(n))
	}
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	if f.compiled == nil {
		f.compiled = cache.NewMemory[*Compiled](cache.WithMaxEntries(DefaultCacheSize))
	}
	return f
}

// Tokenize splits a pattern into tokens and literal runs.
func Tokenize(pattern string) []string {
	return token.Split(pattern)
}

// Expand replaces the long date format macros of loc (LT, LTS, L, LL, LLL,
// LLLL and their lowercase forms) in pattern.
func Expand(pattern string, loc *locale.Locale) string {
	return token.Expand(pattern, loc.LongDateFormat)
}

// Compile returns the compiled form of an already expanded pattern.
func (f *Formatter) Compile(pattern string) *Compiled {
	c, err := cache.GetOrSet(f.compiled, &f.group, pattern, func() (*Compiled, error) {
		return Compile(pattern), nil
	})
	if err != nil {
		return Compile(pattern)
	}
	return c
}

// Format expands pattern for loc, renders v and applies the locale's
// post-formatting. Invalid values render the locale's invalid date text.
func (f *Formatter) Format(v Value, pattern string, loc *locale.Locale) string {
	if !v.Valid() {
		return loc.Postformat(loc.InvalidDate())
	}
	return loc.Postformat(f.Compile(Expand(pattern, loc)).Render(v, loc))
}

// Compiled is a pattern split into literal text and field renderers.
type Compiled struct {
	pattern  string
	segments []segment
}

type segment struct {
	literal string
	render  renderer
}

// Compile compiles an expanded pattern without caching it.
func Compile(pattern string) *Compiled {
	c := &Compiled{pattern: pattern}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			c.segments = append(c.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}
	for _, tok := range token.Split(pattern) {
		if r, ok := renderers[tok]; ok {
			flush()
			c.segments = append(c.segments, segment{render: r})
			continue
		}
		lit.WriteString(token.Unescape(tok))
	}
	flush()
	return c
}

// Pattern returns the pattern the Compiled was built from.
func (c *Compiled) Pattern() string { return c.pattern }

// Render renders v. Invalid values render the locale's invalid date text.
func (c *Compiled) Render(v Value, loc *locale.Locale) string {
	if !v.Valid() {
		return loc.InvalidDate()
	}
	fv := read(v)
	var b strings.Builder
	for _, s := range c.segments {
		if s.render == nil {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(s.render(&fv, loc, c.pattern))
	}
	return b.String()
}
