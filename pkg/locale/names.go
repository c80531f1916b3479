package locale

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const (
	defaultOrdinalParse  = `\d{1,2}`
	defaultMeridiemParse = `(?i)[ap]\.?m?\.?`
	defaultEraYearParse  = `\d+`
)

// matchers holds the compiled input patterns of a locale. Index 3 of each
// array is the loose pattern accepting any width.
type matchers struct {
	months   [4]*regexp.Regexp
	weekdays [4]*regexp.Regexp
	eras     [4]*regexp.Regexp

	meridiem       *regexp.Regexp
	ordinal        *regexp.Regexp
	ordinalLenient *regexp.Regexp
	eraYear        *regexp.Regexp

	// folded names per width, indexed by month, weekday or era
	monthNames   [2][][]string
	weekdayNames [3][][]string
	eraNames     [3][]string
}

const loose = 3

func (l *Locale) buildMatchers() error {
	m := &l.match

	var mixed []string
	for w := Long; w <= Short; w++ {
		names := nameVariants(l.months[w].set, 12)
		m.monthNames[w] = foldAll(names)
		m.months[w] = anchored(flatten(names))
		mixed = append(mixed, flatten(names)...)
	}
	m.months[Min] = m.months[Short]
	m.months[loose] = anchored(mixed)

	mixed = nil
	for w := Long; w <= Min; w++ {
		names := nameVariants(l.weekdays[w].set, 7)
		m.weekdayNames[w] = foldAll(names)
		m.weekdays[w] = anchored(flatten(names))
		mixed = append(mixed, flatten(names)...)
	}
	m.weekdays[loose] = anchored(mixed)

	var names, abbrs, narrows []string
	for _, e := range l.eras {
		names = append(names, e.Name)
		abbrs = append(abbrs, e.Abbr)
		narrows = append(narrows, e.Narrow)
	}
	m.eraNames = [3][]string{foldEach(names), foldEach(abbrs), foldEach(narrows)}
	m.eras[Long] = anchored(names)
	m.eras[Short] = anchored(abbrs)
	m.eras[Min] = anchored(narrows)
	m.eras[loose] = anchored(slices.Concat(names, abbrs, narrows))

	var err error
	compile := func(name, pattern, fallback string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		if pattern == "" {
			pattern = fallback
		}
		re, cerr := regexp.Compile(pattern)
		if cerr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInvalidConfig, name, cerr)
		}
		return re
	}

	meridiem := defaultMeridiemParse
	if p := l.cfg.Meridiem.Parse; p != "" {
		meridiem = "(?i)" + p
	}
	m.meridiem = compile("meridiem parse", meridiem, "")
	m.ordinal = compile("ordinal_parse", l.cfg.OrdinalParse, defaultOrdinalParse)
	if m.ordinal != nil {
		m.ordinalLenient = compile("ordinal_parse", m.ordinal.String()+"|"+defaultOrdinalParse, "")
	}
	m.eraYear = compile("era_year_ordinal_parse", l.cfg.EraYearOrdinalParse, defaultEraYearParse)
	return err
}

// MonthPattern returns the pattern matching month names at the start of
// input. Strict patterns only accept the given width.
func (l *Locale) MonthPattern(width Width, strict bool) *regexp.Regexp {
	if !strict {
		return l.match.months[loose]
	}
	return l.match.months[width]
}

// ParseMonth maps a month name to its zero-based index. Matching is case
// insensitive. Strict matching requires a full name of the given width;
// loose matching accepts any width and ignores periods.
func (l *Locale) ParseMonth(input string, width Width, strict bool) (int, bool) {
	if width > Short {
		width = Short
	}
	if strict {
		return exactIndex(l.match.monthNames[width], fold(input))
	}
	return prefixIndex(fold(input), l.match.monthNames[Long], l.match.monthNames[Short])
}

// WeekdayPattern returns the pattern matching weekday names at the start of
// input.
func (l *Locale) WeekdayPattern(width Width, strict bool) *regexp.Regexp {
	if !strict {
		return l.match.weekdays[loose]
	}
	return l.match.weekdays[width]
}

// ParseWeekday maps a weekday name to its index (0 = Sunday).
func (l *Locale) ParseWeekday(input string, width Width, strict bool) (int, bool) {
	if strict {
		return exactIndex(l.match.weekdayNames[width], fold(input))
	}
	w := l.match.weekdayNames
	return prefixIndex(fold(input), w[Long], w[Short], w[Min])
}

// EraPattern returns the pattern matching era names (Long), abbreviations
// (Short) or narrow names (Min) at the start of input.
func (l *Locale) EraPattern(width Width, strict bool) *regexp.Regexp {
	if !strict {
		return l.match.eras[loose]
	}
	return l.match.eras[width]
}

// ParseEra finds the era named by input.
func (l *Locale) ParseEra(input string, width Width, strict bool) (Era, bool) {
	in := fold(input)
	for i, e := range l.eras {
		if strict {
			if l.match.eraNames[width][i] == in {
				return e, true
			}
			continue
		}
		for _, names := range l.match.eraNames {
			if names[i] == in {
				return e, true
			}
		}
	}
	return Era{}, false
}

// MeridiemPattern returns the pattern matching AM/PM markers.
func (l *Locale) MeridiemPattern() *regexp.Regexp { return l.match.meridiem }

// OrdinalPattern returns the pattern matching a day of month ordinal. The
// lenient form also accepts plain numbers.
func (l *Locale) OrdinalPattern(strict bool) *regexp.Regexp {
	if strict {
		return l.match.ordinal
	}
	return l.match.ordinalLenient
}

// EraYearPattern returns the pattern matching an era year ordinal.
func (l *Locale) EraYearPattern() *regexp.Regexp { return l.match.eraYear }

// ParseEraYear converts an era year ordinal to a year of era.
func (l *Locale) ParseEraYear(input string) (int, bool) {
	if f := l.cfg.EraYearOrdinalFunc; f != nil {
		return f(input)
	}
	end := strings.IndexFunc(input, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(input)
	}
	n, err := strconv.Atoi(input[:end])
	return n, err == nil
}

// nameVariants returns, for each index, the distinct format and standalone
// names.
func nameVariants(set *NameSet, size int) [][]string {
	out := make([][]string, size)
	for i := range size {
		out[i] = []string{set.Format[i]}
		if s := set.standalone()[i]; s != set.Format[i] {
			out[i] = append(out[i], s)
		}
	}
	return out
}

func flatten(names [][]string) []string {
	var out []string
	for _, n := range names {
		out = append(out, n...)
	}
	return out
}

func foldAll(names [][]string) [][]string {
	out := make([][]string, len(names))
	for i, n := range names {
		out[i] = foldEach(n)
	}
	return out
}

func foldEach(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fold(n)
	}
	return out
}

// fold normalizes a name for case-insensitive comparison. A Caser keeps
// state, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// anchored builds a case-insensitive pattern matching any of the names at
// the start of input, longest names first.
func anchored(names []string) *regexp.Regexp {
	pieces := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" && !slices.Contains(pieces, regexp.QuoteMeta(n)) {
			pieces = append(pieces, regexp.QuoteMeta(n))
		}
	}
	slices.SortStableFunc(pieces, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})
	if len(pieces) == 0 {
		return regexp.MustCompile(`^\b\B`)
	}
	return regexp.MustCompile(`(?i)^(` + strings.Join(pieces, "|") + `)`)
}

func exactIndex(names [][]string, in string) (int, bool) {
	for i, variants := range names {
		if slices.Contains(variants, in) {
			return i, true
		}
	}
	return 0, false
}

func prefixIndex(in string, tables ...[][]string) (int, bool) {
	in = strings.ReplaceAll(in, ".", "")
	for i := range tables[0] {
		for _, table := range tables {
			for _, name := range table[i] {
				name = strings.ReplaceAll(name, ".", "")
				if name != "" && strings.HasPrefix(in, name) {
					return i, true
				}
			}
		}
	}
	return 0, false
}
