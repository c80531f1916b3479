package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/tempo/internal/token"
	"github.com/dmitrymomot/tempo/pkg/calendar"
	"github.com/dmitrymomot/tempo/pkg/locale"
)

// matcher returns the pattern a token is matched with.
type matcher func(loc *locale.Locale) *regexp.Regexp

// tokenSpec describes how a format token reads input.
type tokenSpec struct {
	loose  matcher
	strict matcher
	apply  func(st *state, tok, in string)
}

func fixed(expr string) matcher {
	re := regexp.MustCompile(expr)
	return func(*locale.Locale) *regexp.Regexp { return re }
}

var (
	match1                 = fixed(`\d`)
	match2                 = fixed(`\d\d`)
	match3                 = fixed(`\d{3}`)
	match4                 = fixed(`\d{4}`)
	match6                 = fixed(`[+-]?\d{6}`)
	matchYear              = fixed(`[+-]\d{4,6}|\d{1,4}`)
	matchYearStrict        = fixed(`[+-]\d{4,6}|\d{4}`)
	match1to2              = fixed(`\d\d?`)
	match3to4              = fixed(`\d\d\d\d?`)
	match5to6              = fixed(`\d\d\d\d\d\d?`)
	match1to3              = fixed(`\d{1,3}`)
	match1to4              = fixed(`\d{1,4}`)
	match1to6              = fixed(`[+-]?\d{1,6}`)
	matchUnsigned          = fixed(`\d+`)
	matchSigned            = fixed(`[+-]?\d+`)
	matchShortOffset       = fixed(`(?i)Z|[+-]\d\d(?::?\d\d)?`)
	matchTimestamp         = fixed(`[+-]?\d+(?:\.\d{1,3})?`)
	match1to2NoLeadingZero = fixed(`^[1-9]\d?`)
	match1to2HasZero       = fixed(`^(?:[1-9]\d|\d)`)

	leadingDigits = regexp.MustCompile(`\d\d?`)
)

// tokens maps every parseable format token to its spec.
var tokens = map[string]tokenSpec{}

func register(spec tokenSpec, toks ...string) {
	if spec.strict == nil {
		spec.strict = spec.loose
	}
	for _, t := range toks {
		tokens[t] = spec
	}
}

func numeric(f Field) func(st *state, _, in string) {
	return func(st *state, _, in string) { st.put(f, toInt(in)) }
}

func weekToken(key func(tok string) string, value func(in string) int) func(st *state, tok, in string) {
	return func(st *state, tok, in string) { st.setWeek(key(tok), value(in)) }
}

func init() {
	month := func(st *state, _, in string) { st.put(Month, toInt(in)-1) }
	register(tokenSpec{loose: match1to2, strict: match1to2NoLeadingZero, apply: month}, "M")
	register(tokenSpec{loose: match1to2, strict: match2, apply: month}, "MM")
	for tok, width := range map[string]locale.Width{"MMM": locale.Short, "MMMM": locale.Long} {
		register(tokenSpec{
			loose:  func(l *locale.Locale) *regexp.Regexp { return l.MonthPattern(width, false) },
			strict: func(l *locale.Locale) *regexp.Regexp { return l.MonthPattern(width, true) },
			apply: func(st *state, _, in string) {
				if m, ok := st.loc.ParseMonth(in, width, st.strict); ok {
					st.put(Month, m)
					return
				}
				st.invalidMonth = in
			},
		}, tok)
	}
	register(tokenSpec{loose: match1, apply: func(st *state, _, in string) {
		st.put(Month, (toInt(in)-1)*3)
	}}, "Q")

	register(tokenSpec{loose: match1to2, strict: match1to2NoLeadingZero, apply: numeric(Day)}, "D")
	register(tokenSpec{loose: match1to2, strict: match2, apply: numeric(Day)}, "DD")
	register(tokenSpec{
		loose:  func(l *locale.Locale) *regexp.Regexp { return l.OrdinalPattern(false) },
		strict: func(l *locale.Locale) *regexp.Regexp { return l.OrdinalPattern(true) },
		apply: func(st *state, _, in string) {
			st.put(Day, toInt(leadingDigits.FindString(in)))
		},
	}, "Do")
	dayOfYear := func(st *state, _, in string) { st.dayOfYear, st.hasDOY = toInt(in), true }
	register(tokenSpec{loose: match1to3, apply: dayOfYear}, "DDD")
	register(tokenSpec{loose: match3, apply: dayOfYear}, "DDDD")

	self := func(tok string) string { return tok }
	first := func(tok string) string { return tok[:1] }
	firstTwo := func(tok string) string { return tok[:2] }
	register(tokenSpec{loose: match1to2, apply: weekToken(self, toInt)}, "d", "e", "E")
	for tok, width := range map[string]locale.Width{"dd": locale.Min, "ddd": locale.Short, "dddd": locale.Long} {
		register(tokenSpec{
			loose:  func(l *locale.Locale) *regexp.Regexp { return l.WeekdayPattern(width, false) },
			strict: func(l *locale.Locale) *regexp.Regexp { return l.WeekdayPattern(width, true) },
			apply: func(st *state, _, in string) {
				if d, ok := st.loc.ParseWeekday(in, width, st.strict); ok {
					st.setWeek("d", d)
					return
				}
				st.invalidWeekday = in
			},
		}, tok)
	}
	register(tokenSpec{loose: match1to2, strict: match1to2NoLeadingZero, apply: weekToken(first, toInt)}, "w", "W")
	register(tokenSpec{loose: match1to2, strict: match2, apply: weekToken(first, toInt)}, "ww", "WW")
	register(tokenSpec{loose: match1to2, strict: match2, apply: weekToken(self, twoDigitYear)}, "gg", "GG")
	register(tokenSpec{loose: match1to4, strict: match4, apply: weekToken(firstTwo, toInt)}, "gggg", "GGGG")
	register(tokenSpec{loose: match1to6, strict: match6, apply: weekToken(firstTwo, toInt)}, "ggggg", "GGGGG")

	register(tokenSpec{loose: matchSigned, apply: numeric(Year)}, "Y")
	register(tokenSpec{loose: match1to2, strict: match2, apply: func(st *state, _, in string) {
		st.put(Year, twoDigitYear(in))
	}}, "YY")
	register(tokenSpec{loose: matchYear, strict: matchYearStrict, apply: func(st *state, _, in string) {
		if len(in) == 2 {
			st.put(Year, twoDigitYear(in))
			return
		}
		st.put(Year, toInt(in))
	}}, "YYYY")
	register(tokenSpec{loose: match1to6, strict: match6, apply: numeric(Year)}, "YYYYY", "YYYYYY")

	for tok, width := range map[string]locale.Width{
		"N": locale.Short, "NN": locale.Short, "NNN": locale.Short,
		"NNNN": locale.Long, "NNNNN": locale.Min,
	} {
		register(tokenSpec{
			loose:  func(l *locale.Locale) *regexp.Regexp { return l.EraPattern(width, false) },
			strict: func(l *locale.Locale) *regexp.Regexp { return l.EraPattern(width, true) },
			apply: func(st *state, _, in string) {
				if e, ok := st.loc.ParseEra(in, width, st.strict); ok {
					st.era = &e
					return
				}
				st.invalidEra = in
			},
		}, tok)
	}
	register(tokenSpec{loose: matchUnsigned, apply: numeric(Year)}, "y", "yy", "yyy", "yyyy")
	register(tokenSpec{
		loose: func(l *locale.Locale) *regexp.Regexp { return l.EraYearPattern() },
		apply: func(st *state, _, in string) {
			if n, ok := st.loc.ParseEraYear(in); ok {
				st.put(Year, n)
			}
		},
	}, "yo")

	register(tokenSpec{
		loose: func(l *locale.Locale) *regexp.Regexp { return l.MeridiemPattern() },
		apply: func(st *state, _, in string) { st.meridiem, st.hasMeridiem = in, true },
	}, "a", "A")

	register(tokenSpec{loose: match1to2, strict: match1to2HasZero, apply: numeric(Hour)}, "H")
	register(tokenSpec{loose: match1to2, strict: match2, apply: numeric(Hour)}, "HH")
	twelve := func(st *state, _, in string) {
		st.put(Hour, toInt(in))
		st.bigHour = true
	}
	register(tokenSpec{loose: match1to2, strict: match1to2HasZero, apply: twelve}, "h")
	register(tokenSpec{loose: match1to2, strict: match2, apply: twelve}, "hh")
	clock24 := func(st *state, _, in string) {
		h := toInt(in)
		if h == 24 {
			h = 0
		}
		st.put(Hour, h)
	}
	register(tokenSpec{loose: match1to2, strict: match1to2HasZero, apply: clock24}, "k")
	register(tokenSpec{loose: match1to2, strict: match2, apply: clock24}, "kk")
	register(tokenSpec{loose: match3to4, apply: compactTime(true, false)}, "hmm")
	register(tokenSpec{loose: match5to6, apply: compactTime(true, true)}, "hmmss")
	register(tokenSpec{loose: match3to4, apply: compactTime(false, false)}, "Hmm")
	register(tokenSpec{loose: match5to6, apply: compactTime(false, true)}, "Hmmss")

	register(tokenSpec{loose: match1to2, strict: match1to2HasZero, apply: numeric(Minute)}, "m")
	register(tokenSpec{loose: match1to2, strict: match2, apply: numeric(Minute)}, "mm")
	register(tokenSpec{loose: match1to2, strict: match1to2HasZero, apply: numeric(Second)}, "s")
	register(tokenSpec{loose: match1to2, strict: match2, apply: numeric(Second)}, "ss")

	fraction := func(st *state, _, in string) {
		st.put(Millisecond, toInt((in + "000")[:3]))
	}
	register(tokenSpec{loose: match1to3, strict: match1, apply: fraction}, "S")
	register(tokenSpec{loose: match1to3, strict: match2, apply: fraction}, "SS")
	register(tokenSpec{loose: match1to3, strict: match3, apply: fraction}, "SSS")
	for n := 4; n <= 9; n++ {
		register(tokenSpec{loose: matchUnsigned, apply: fraction}, strings.Repeat("S", n))
	}

	register(tokenSpec{loose: matchShortOffset, apply: func(st *state, _, in string) {
		st.offset, st.hasOffset = offsetFromString(in), true
	}}, "Z", "ZZ")
	register(tokenSpec{loose: matchTimestamp, apply: func(st *state, _, in string) {
		st.unix, st.hasUnix = secondsToMillis(in), true
	}}, "X")
	register(tokenSpec{loose: matchSigned, apply: func(st *state, _, in string) {
		st.unix, st.hasUnix = int64(toInt(in)), true
	}}, "x")
}

// compactTime reads hmm, hmmss, Hmm and Hmmss runs from the right.
func compactTime(twelve, seconds bool) func(st *state, _, in string) {
	return func(st *state, _, in string) {
		n := len(in)
		if seconds {
			st.put(Hour, toInt(in[:n-4]))
			st.put(Minute, toInt(in[n-4:n-2]))
			st.put(Second, toInt(in[n-2:]))
		} else {
			st.put(Hour, toInt(in[:n-2]))
			st.put(Minute, toInt(in[n-2:]))
		}
		if twelve {
			st.bigHour = true
		}
	}
}

// offsetFromString converts Z, ±HH, ±HHMM or ±HH:MM to minutes east.
func offsetFromString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == 'Z' || s[0] == 'z' {
		return 0
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	minutes := toInt(digits[:2]) * 60
	if len(digits) >= 4 {
		minutes += toInt(digits[2:4])
	}
	if s[0] == '-' {
		return -minutes
	}
	return minutes
}

// secondsToMillis converts a decimal Unix timestamp to milliseconds.
func secondsToMillis(s string) int64 {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	whole, frac, _ := strings.Cut(s, ".")
	ms := int64(toInt(whole))*1000 + int64(toInt((frac + "000")[:3]))
	if neg {
		return -ms
	}
	return ms
}

// parseFormat matches s against an explicit format.
func (p *Parser) parseFormat(s, format string, o Options) (Result, error) {
	st := newState(s, o)
	st.format = format
	p.match(st, format)
	return st.finish(StrategyFormat)
}

// match walks the expanded format, consuming input token by token.
func (p *Parser) match(st *state, format string) {
	rest := st.input
	parsed := 0

	for _, tok := range token.Split(token.Expand(format, st.loc.LongDateFormat)) {
		spec, known := tokens[tok]

		var re *regexp.Regexp
		switch {
		case known && st.strict:
			re = spec.strict(st.loc)
		case known:
			re = spec.loose(st.loc)
		default:
			if lit := token.Unescape(tok); lit != "" {
				re = p.literal(lit)
			}
		}

		var got string
		if re != nil {
			if loc := re.FindStringIndex(rest); loc != nil && loc[1] > loc[0] {
				got = rest[loc[0]:loc[1]]
				if loc[0] > 0 {
					st.unusedInput = append(st.unusedInput, rest[:loc[0]])
				}
				rest = rest[loc[1]:]
				parsed += utf8.RuneCountInString(got)
			}
		}

		switch {
		case known && got != "":
			st.empty = false
			spec.apply(st, tok, got)
		case known:
			st.unusedTokens = append(st.unusedTokens, tok)
		case st.strict && got == "":
			st.unusedTokens = append(st.unusedTokens, tok)
		}
	}

	st.charsLeftOver = utf8.RuneCountInString(st.input) - parsed
	if rest != "" {
		st.unusedInput = append(st.unusedInput, rest)
	}

	if st.bigHour && st.set[Hour] && st.a[Hour] > 0 && st.a[Hour] <= 12 {
		st.bigHour = false
	}
	if st.hasMeridiem && st.set[Hour] {
		st.a[Hour] = fixMeridiem(st.loc, st.a[Hour], st.meridiem)
	}
	if st.era != nil {
		year := st.era.SinceYear()
		if st.set[Year] {
			year = st.era.CalendarYear(st.a[Year])
		}
		st.put(Year, year)
	}
}

func fixMeridiem(loc *locale.Locale, hour int, meridiem string) int {
	pm := loc.IsPM(meridiem)
	switch {
	case pm && hour < 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	}
	return hour
}

// weekdayOf returns the weekday of a civil date.
func weekdayOf(year, month, day int) int {
	return calendar.Weekday(calendar.DaysFromCivil(year, month, day))
}
