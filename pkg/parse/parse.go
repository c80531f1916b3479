package parse

import (
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/tkuchiki/go-timezone"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tempo/pkg/cache"
	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/logger"
)

// Special format names accepted in Layout and Layouts. They select the
// ISO-8601 and RFC 2822 strategies instead of token matching.
const (
	ISO8601 = "ISO_8601"
	RFC2822 = "RFC_2822"
)

// Field identifies a calendar field of the parsed vector.
type Field int

const (
	NoField Field = iota - 1
	Year
	Month
	Day
	Hour
	Minute
	Second
	Millisecond
	Week
	Weekday
)

var fieldNames = [...]string{"year", "month", "day", "hour", "minute", "second", "millisecond", "week", "weekday"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "none"
	}
	return fieldNames[f]
}

// Strategy names the parsing strategy that produced a Result.
type Strategy int

const (
	StrategyFields Strategy = iota
	StrategyASPNet
	StrategyISO8601
	StrategyRFC2822
	StrategyFormat
	StrategyFreeForm
)

func (s Strategy) String() string {
	switch s {
	case StrategyFields:
		return "fields"
	case StrategyASPNet:
		return "aspnet"
	case StrategyISO8601:
		return "iso8601"
	case StrategyRFC2822:
		return "rfc2822"
	case StrategyFormat:
		return "format"
	case StrategyFreeForm:
		return "free-form"
	}
	return "unknown"
}

// Input is a parse request. It is one of Text, Layout, Layouts or Fields.
type Input interface{ input() }

// Text is a string of unspecified shape. ASP.NET JSON dates, ISO-8601 and
// RFC 2822 are tried in that order, then free-form text unless strict.
type Text string

// Layout is a string together with the format it was written in.
type Layout struct {
	Text   string
	Format string
}

// Layouts is a string with candidate formats. The first candidate that
// yields a valid result wins; otherwise the best scoring one is returned.
type Layouts struct {
	Text    string
	Formats []string
}

// Fields is a partial calendar field vector. Leading fields that are absent
// default to the current date and trailing ones to their minimum.
type Fields map[Field]int

func (Text) input()    {}
func (Layout) input()  {}
func (Layouts) input() {}
func (Fields) input()  {}

// Options controls a single parse.
type Options struct {
	// Locale supplies month, weekday, meridiem and era names. Required.
	Locale *locale.Locale
	// Strict rejects leftover input, unmatched tokens and lenient number
	// widths.
	Strict bool
	// Now is the reference time whose wall-clock date fills omitted leading
	// fields. The zero value means the parser clock in its location.
	Now time.Time
}

// Result is the calendar field vector extracted from an input.
type Result struct {
	Year, Month, Day                  int
	Hour, Minute, Second, Millisecond int

	// Offset is the parsed UTC offset in minutes east when HasOffset is set.
	Offset    int
	HasOffset bool

	// UnixMilli is set when the input named an absolute instant (X, x or an
	// ASP.NET JSON date). The calendar fields are then meaningless.
	UnixMilli int64
	HasUnix   bool

	// NextDay is set when the input read 24:00:00.000. The fields hold
	// midnight of the parsed day and the caller moves one day forward.
	NextDay bool

	Strategy Strategy
	Format   string

	CharsLeftOver int
	UnusedTokens  []string
	UnusedInput   []string
}

// Score ranks a format candidate: lower is a closer fit.
func (r Result) Score() int {
	return r.CharsLeftOver + 10*len(r.UnusedTokens)
}

// Parser turns inputs into calendar field vectors. A Parser is safe for
// concurrent use.
type Parser struct {
	logger   *slog.Logger
	clock    func() time.Time
	literals cache.Cache[*regexp.Regexp]
	group    singleflight.Group
	zones    func() *timezone.Timezone
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the clock used when Options.Now is zero.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.clock = now
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger:   logger.NewNope(),
		clock:    time.Now,
		literals: cache.NewMemory[*regexp.Regexp](cache.WithMaxEntries(1024)),
		zones:    sync.OnceValue(timezone.New),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse dispatches on the input shape. On failure it returns the best
// result it could build together with an *Error wrapping ErrInvalidInput.
func (p *Parser) Parse(in Input, o Options) (Result, error) {
	if o.Locale == nil {
		return Result{}, ErrNoLocale
	}
	if o.Now.IsZero() {
		o.Now = p.clock()
	}

	switch in := in.(type) {
	case Text:
		return p.parseText(o.Locale.Preparse(string(in)), o)
	case Layout:
		return p.parseLayout(o.Locale.Preparse(in.Text), in.Format, o)
	case Layouts:
		return p.parseLayouts(o.Locale.Preparse(in.Text), in.Formats, o)
	case Fields:
		return p.parseFields(in, o)
	}
	return Result{}, &Error{Field: NoField, Reason: "unsupported input"}
}

func (p *Parser) parseText(s string, o Options) (Result, error) {
	if r, ok := parseASPNet(s); ok {
		return r, nil
	}
	if r, ok, err := p.parseISO(s, o); ok {
		return r, err
	}
	if r, ok, err := parseRFC2822(s); ok {
		return r, err
	}
	if o.Strict {
		return Result{}, &Error{Input: s, Field: NoField, Reason: "not ISO-8601 or RFC 2822"}
	}
	return p.parseFreeForm(s, o)
}

func (p *Parser) parseLayout(s, format string, o Options) (Result, error) {
	switch format {
	case ISO8601:
		r, ok, err := p.parseISO(s, o)
		if !ok {
			return r, &Error{Input: s, Format: format, Field: NoField, Reason: "not ISO-8601"}
		}
		return r, err
	case RFC2822:
		r, ok, err := parseRFC2822(s)
		if !ok {
			return r, &Error{Input: s, Format: format, Field: NoField, Reason: "not RFC 2822"}
		}
		return r, err
	}
	return p.parseFormat(s, format, o)
}

// literal returns the pattern matching a literal format token.
func (p *Parser) literal(text string) *regexp.Regexp {
	re, err := cache.GetOrSet(p.literals, &p.group, text, func() (*regexp.Regexp, error) {
		return regexp.Compile(regexp.QuoteMeta(text))
	})
	if err != nil {
		return regexp.MustCompile(regexp.QuoteMeta(text))
	}
	return re
}
