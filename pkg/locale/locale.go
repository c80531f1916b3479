package locale

import (
	"cmp"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/tempo/internal/token"
	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Width selects one of the name lists of a locale.
type Width int

const (
	// Long selects full names: "January", "Sunday", era names.
	Long Width = iota
	// Short selects abbreviations: "Jan", "Sun", era abbreviations.
	Short
	// Min selects the shortest weekday names ("Su") and narrow era names.
	Min
)

// monthsInFormat picks the format (genitive) month names when a day of
// month precedes the month in a pattern.
const monthsInFormat = `D[oD]?(\[[^\[\]]*\]|\s)+MMMM?`

var longKeys = []string{"LTS", "LT", "L", "LL", "LLL", "LLLL"}

// Locale is an immutable, fully resolved locale. It is safe for concurrent
// use.
type Locale struct {
	tag      string
	cfg      *Config
	plural   PluralRule
	eras     []Era
	long     map[string]string
	months   [2]nameTable
	weekdays [3]nameTable
	isPM     *regexp.Regexp
	match    matchers
	previous *Locale
}

type nameTable struct {
	set      *NameSet
	isFormat *regexp.Regexp
}

func (t nameTable) pick(pattern string) []string {
	if len(t.set.Standalone) == 0 {
		return t.set.Format
	}
	if t.isFormat != nil && t.isFormat.MatchString(pattern) {
		return t.set.Format
	}
	return t.set.Standalone
}

func newLocale(tag string, cfg *Config) (*Locale, error) {
	l := &Locale{tag: tag, cfg: cfg}

	sets := []struct {
		name  string
		set   *NameSet
		size  int
		month bool
		dst   *nameTable
	}{
		{"months", cfg.Months, 12, true, &l.months[Long]},
		{"months_short", cfg.MonthsShort, 12, true, &l.months[Short]},
		{"weekdays", cfg.Weekdays, 7, false, &l.weekdays[Long]},
		{"weekdays_short", cfg.WeekdaysShort, 7, false, &l.weekdays[Short]},
		{"weekdays_min", cfg.WeekdaysMin, 7, false, &l.weekdays[Min]},
	}
	for _, s := range sets {
		if s.set == nil || len(s.set.Format) != s.size {
			return nil, fmt.Errorf("%w: %s needs %d names", ErrInvalidConfig, s.name, s.size)
		}
		if len(s.set.Standalone) != 0 && len(s.set.Standalone) != s.size {
			return nil, fmt.Errorf("%w: %s standalone needs %d names", ErrInvalidConfig, s.name, s.size)
		}
		s.dst.set = s.set

		pattern := s.set.IsFormat
		if pattern == "" && s.month {
			pattern = monthsInFormat
		}
		if pattern != "" {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: %s is_format: %s", ErrInvalidConfig, s.name, err)
			}
			s.dst.isFormat = re
		}
	}

	if cfg.Week == nil {
		cfg.Week = &Week{Dow: 0, Doy: 6}
	}
	if cfg.Meridiem == nil {
		return nil, fmt.Errorf("%w: meridiem is required", ErrInvalidConfig)
	}
	if cfg.Meridiem.PMPattern != "" {
		re, err := regexp.Compile(cfg.Meridiem.PMPattern)
		if err != nil {
			return nil, fmt.Errorf("%w: meridiem pm_pattern: %s", ErrInvalidConfig, err)
		}
		l.isPM = re
	}

	l.eras = slices.Clone(cfg.Eras)
	for i := range l.eras {
		if err := l.eras[i].resolve(); err != nil {
			return nil, err
		}
	}

	l.long = make(map[string]string, 2*len(longKeys))
	maps.Copy(l.long, cfg.LongDateFormat)
	for _, k := range longKeys[2:] {
		lower := strings.ToLower(k)
		if _, ok := l.long[lower]; !ok && l.long[k] != "" {
			l.long[lower] = token.Shorten(l.long[k])
		}
	}

	plural := cfg.Plural
	if plural == "" {
		plural = tag
	}
	l.plural = PluralRuleFor(plural)

	if err := l.buildMatchers(); err != nil {
		return nil, err
	}
	return l, nil
}

// Tag returns the normalized tag the locale is registered under.
func (l *Locale) Tag() string { return l.tag }

// Parent returns the tag of the locale this one was derived from, or an
// empty string for locales built on the base config.
func (l *Locale) Parent() string { return l.cfg.Parent }

// Config returns a copy of the resolved config.
func (l *Locale) Config() *Config { return l.cfg.clone() }

// Week returns the week numbering rule.
func (l *Locale) Week() Week { return *l.cfg.Week }

// PluralRule returns the rule used to pick relative-time forms.
func (l *Locale) PluralRule() PluralRule { return l.plural }

// MonthName returns the name of a zero-based month. pattern is the format
// pattern being rendered; it selects between format and standalone forms.
// Min is treated as Short.
func (l *Locale) MonthName(month int, width Width, pattern string) string {
	if width > Short {
		width = Short
	}
	return l.months[width].pick(pattern)[calendar.Mod(month, 12)]
}

// WeekdayName returns the name of a weekday (0 = Sunday).
func (l *Locale) WeekdayName(day int, width Width, pattern string) string {
	return l.weekdays[width].pick(pattern)[calendar.Mod(day, 7)]
}

// Ordinal renders n as an ordinal for the given pattern token.
func (l *Locale) Ordinal(n int, token string) string {
	if f := l.cfg.OrdinalFunc; f != nil {
		return f(n, token)
	}
	return strings.Replace(l.cfg.Ordinal, "%d", strconv.Itoa(n), 1)
}

// Meridiem returns the AM/PM marker for the time of day.
func (l *Locale) Meridiem(hour, minute int, lower bool) string {
	if f := l.cfg.MeridiemFunc; f != nil {
		return f(hour, minute, lower)
	}
	m := l.cfg.Meridiem
	if hour > 11 {
		if lower {
			return cmp.Or(m.LowerPM, strings.ToLower(m.PM))
		}
		return m.PM
	}
	if lower {
		return cmp.Or(m.LowerAM, strings.ToLower(m.AM))
	}
	return m.AM
}

// IsPM reports whether parsed meridiem text denotes the afternoon.
func (l *Locale) IsPM(input string) bool {
	if f := l.cfg.IsPMFunc; f != nil {
		return f(input)
	}
	if l.isPM != nil {
		return l.isPM.MatchString(input)
	}
	return strings.HasPrefix(strings.ToLower(input), "p")
}

// LongDateFormat returns the pattern for a long date format key (LT, LTS,
// L, LL, LLL, LLLL or their lowercase forms), or an empty string.
func (l *Locale) LongDateFormat(key string) string {
	return l.long[key]
}

// CalendarFormat returns the calendar pattern for key (sameDay, nextDay,
// nextWeek, lastDay, lastWeek, sameElse). hour is the hour of the instant
// being rendered.
func (l *Locale) CalendarFormat(key string, hour int) string {
	if f := l.cfg.CalendarFunc; f != nil {
		if s := f(key, hour); s != "" {
			return s
		}
	}
	if s, ok := l.cfg.Calendar[key]; ok {
		return s
	}
	return l.cfg.Calendar["sameElse"]
}

// RelativeTime renders the phrase for key (s, ss, m, mm, ...) and count n.
// withoutSuffix is false when the phrase will be wrapped by PastFuture.
func (l *Locale) RelativeTime(n int, withoutSuffix bool, key string, future bool) string {
	if f := l.cfg.RelativeTimeFunc; f != nil {
		if s := f(n, withoutSuffix, key, future); s != "" {
			return s
		}
	}
	p, ok := l.cfg.RelativeTime[key]
	if !ok {
		return strconv.Itoa(n)
	}
	if !withoutSuffix && p.Suffixed != nil {
		p = *p.Suffixed
	}
	text := p.Text
	if len(p.Forms) > 0 {
		text = pickForm(p.Forms, l.plural(n), text)
	}
	return strings.Replace(text, "%d", strconv.Itoa(n), 1)
}

// PastFuture wraps a relative phrase with the future or past template.
func (l *Locale) PastFuture(future bool, output string) string {
	key := "past"
	if future {
		key = "future"
	}
	p, ok := l.cfg.RelativeTime[key]
	if !ok {
		return output
	}
	return strings.Replace(p.Text, "%s", output, 1)
}

// Eras returns the resolved era table.
func (l *Locale) Eras() []Era { return slices.Clone(l.eras) }

// EraAt returns the first era containing the day number.
func (l *Locale) EraAt(day int64) (Era, bool) {
	for _, e := range l.eras {
		if e.Contains(day) {
			return e, true
		}
	}
	return Era{}, false
}

// InvalidDate is the text rendered for invalid instants.
func (l *Locale) InvalidDate() string { return l.cfg.InvalidDate }

// Preparse transforms parser input (for example native digits to ASCII).
func (l *Locale) Preparse(s string) string {
	if f := l.cfg.Preparse; f != nil {
		return f(s)
	}
	return s
}

// Postformat transforms formatter output.
func (l *Locale) Postformat(s string) string {
	if f := l.cfg.Postformat; f != nil {
		return f(s)
	}
	return s
}

func pickForm(forms map[string]string, category, fallback string) string {
	for _, k := range []string{category, PluralOther, PluralMany} {
		if s, ok := forms[k]; ok {
			return s
		}
	}
	return fallback
}
