package layout

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/tempo/pkg/calendar"
	"github.com/dmitrymomot/tempo/pkg/locale"
)

// fields is the wall-clock reading of a value plus derived calendar data.
type fields struct {
	year, month, date    int
	hour, minute, second int
	ms                   int
	offset               int
	abbr, name           string
	unix                 int64
	day                  int64
}

func read(v Value) fields {
	f := fields{
		year:   v.Year(),
		month:  v.Month(),
		date:   v.Date(),
		hour:   v.Hour(),
		minute: v.Minute(),
		second: v.Second(),
		ms:     v.Millisecond(),
		offset: v.UTCOffset(),
		abbr:   v.ZoneAbbr(),
		name:   v.ZoneName(),
		unix:   v.UnixMilli(),
	}
	f.day = calendar.DaysFromCivil(f.year, f.month, f.date)
	return f
}

func (f *fields) weekday() int   { return calendar.Weekday(f.day) }
func (f *fields) dayOfYear() int { return calendar.DayOfYear(f.year, f.month, f.date) }
func (f *fields) quarter() int   { return f.month/3 + 1 }

func (f *fields) localeWeek(loc *locale.Locale) (int, int) {
	w := loc.Week()
	return calendar.WeekOfYear(f.year, f.month, f.date, w.Dow, w.Doy)
}

func (f *fields) isoWeek() (int, int) {
	return calendar.ISOWeek(f.year, f.month, f.date)
}

func (f *fields) era(loc *locale.Locale) (locale.Era, bool) {
	return loc.EraAt(f.day)
}

func (f *fields) eraYear(loc *locale.Locale) int {
	if e, ok := f.era(loc); ok {
		return e.Year(f.year)
	}
	return f.year
}

func (f *fields) hour12() int {
	if h := f.hour % 12; h != 0 {
		return h
	}
	return 12
}

func (f *fields) hour24() int {
	if f.hour == 0 {
		return 24
	}
	return f.hour
}

type renderer func(f *fields, loc *locale.Locale, pattern string) string

// renderers maps every formatting token to its renderer.
var renderers = map[string]renderer{}

func init() {
	num := func(tok string, width int, get func(f *fields, loc *locale.Locale) int) {
		renderers[tok] = func(f *fields, loc *locale.Locale, _ string) string {
			return ZeroFill(get(f, loc), width, false)
		}
	}
	ordinal := func(tok, period string, get func(f *fields, loc *locale.Locale) int) {
		renderers[tok] = func(f *fields, loc *locale.Locale, _ string) string {
			return loc.Ordinal(get(f, loc), period)
		}
	}

	month := func(f *fields, _ *locale.Locale) int { return f.month + 1 }
	num("M", 1, month)
	num("MM", 2, month)
	ordinal("Mo", "M", month)
	renderers["MMM"] = func(f *fields, loc *locale.Locale, p string) string {
		return loc.MonthName(f.month, locale.Short, p)
	}
	renderers["MMMM"] = func(f *fields, loc *locale.Locale, p string) string {
		return loc.MonthName(f.month, locale.Long, p)
	}

	quarter := func(f *fields, _ *locale.Locale) int { return f.quarter() }
	num("Q", 1, quarter)
	ordinal("Qo", "Q", quarter)

	date := func(f *fields, _ *locale.Locale) int { return f.date }
	num("D", 1, date)
	num("DD", 2, date)
	ordinal("Do", "D", date)

	doy := func(f *fields, _ *locale.Locale) int { return f.dayOfYear() }
	num("DDD", 1, doy)
	num("DDDD", 3, doy)
	ordinal("DDDo", "DDD", doy)

	weekday := func(f *fields, _ *locale.Locale) int { return f.weekday() }
	num("d", 1, weekday)
	ordinal("do", "d", weekday)
	for tok, width := range map[string]locale.Width{"dd": locale.Min, "ddd": locale.Short, "dddd": locale.Long} {
		renderers[tok] = func(f *fields, loc *locale.Locale, p string) string {
			return loc.WeekdayName(f.weekday(), width, p)
		}
	}
	num("e", 1, func(f *fields, loc *locale.Locale) int {
		return calendar.Mod(f.weekday()-loc.Week().Dow, 7)
	})
	num("E", 1, func(f *fields, _ *locale.Locale) int {
		if d := f.weekday(); d != 0 {
			return d
		}
		return 7
	})

	week := func(f *fields, loc *locale.Locale) int { w, _ := f.localeWeek(loc); return w }
	num("w", 1, week)
	num("ww", 2, week)
	ordinal("wo", "w", week)
	isoWeek := func(f *fields, _ *locale.Locale) int { w, _ := f.isoWeek(); return w }
	num("W", 1, isoWeek)
	num("WW", 2, isoWeek)
	ordinal("Wo", "W", isoWeek)

	weekYear := func(f *fields, loc *locale.Locale) int { _, y := f.localeWeek(loc); return y }
	isoWeekYear := func(f *fields, _ *locale.Locale) int { _, y := f.isoWeek(); return y }
	num("gg", 2, func(f *fields, loc *locale.Locale) int { return weekYear(f, loc) % 100 })
	num("gggg", 4, weekYear)
	num("ggggg", 5, weekYear)
	num("GG", 2, func(f *fields, loc *locale.Locale) int { return isoWeekYear(f, loc) % 100 })
	num("GGGG", 4, isoWeekYear)
	num("GGGGG", 5, isoWeekYear)

	year := func(f *fields, _ *locale.Locale) int { return f.year }
	renderers["Y"] = func(f *fields, _ *locale.Locale, _ string) string {
		if f.year <= 9999 {
			return ZeroFill(f.year, 4, false)
		}
		return "+" + strconv.Itoa(f.year)
	}
	num("YY", 2, func(f *fields, _ *locale.Locale) int { return f.year % 100 })
	renderers["YYYY"] = func(f *fields, _ *locale.Locale, _ string) string {
		return ZeroFill(f.year, 4, f.year > 9999)
	}
	num("YYYYY", 5, year)
	renderers["YYYYYY"] = func(f *fields, _ *locale.Locale, _ string) string {
		return ZeroFill(f.year, 6, true)
	}

	eraYear := func(f *fields, loc *locale.Locale) int { return f.eraYear(loc) }
	num("y", 1, eraYear)
	num("yy", 2, eraYear)
	num("yyy", 3, eraYear)
	num("yyyy", 4, eraYear)
	ordinal("yo", "y", eraYear)

	era := func(pick func(locale.Era) string) renderer {
		return func(f *fields, loc *locale.Locale, _ string) string {
			if e, ok := f.era(loc); ok {
				return pick(e)
			}
			return ""
		}
	}
	abbr := era(func(e locale.Era) string { return e.Abbr })
	renderers["N"], renderers["NN"], renderers["NNN"] = abbr, abbr, abbr
	renderers["NNNN"] = era(func(e locale.Era) string { return e.Name })
	renderers["NNNNN"] = era(func(e locale.Era) string { return e.Narrow })

	renderers["a"] = func(f *fields, loc *locale.Locale, _ string) string {
		return loc.Meridiem(f.hour, f.minute, true)
	}
	renderers["A"] = func(f *fields, loc *locale.Locale, _ string) string {
		return loc.Meridiem(f.hour, f.minute, false)
	}

	hour := func(f *fields, _ *locale.Locale) int { return f.hour }
	hour12 := func(f *fields, _ *locale.Locale) int { return f.hour12() }
	hour24 := func(f *fields, _ *locale.Locale) int { return f.hour24() }
	num("H", 1, hour)
	num("HH", 2, hour)
	num("h", 1, hour12)
	num("hh", 2, hour12)
	num("k", 1, hour24)
	num("kk", 2, hour24)
	renderers["hmm"] = func(f *fields, _ *locale.Locale, _ string) string {
		return strconv.Itoa(f.hour12()) + ZeroFill(f.minute, 2, false)
	}
	renderers["hmmss"] = func(f *fields, _ *locale.Locale, _ string) string {
		return strconv.Itoa(f.hour12()) + ZeroFill(f.minute, 2, false) + ZeroFill(f.second, 2, false)
	}
	renderers["Hmm"] = func(f *fields, _ *locale.Locale, _ string) string {
		return strconv.Itoa(f.hour) + ZeroFill(f.minute, 2, false)
	}
	renderers["Hmmss"] = func(f *fields, _ *locale.Locale, _ string) string {
		return strconv.Itoa(f.hour) + ZeroFill(f.minute, 2, false) + ZeroFill(f.second, 2, false)
	}

	minute := func(f *fields, _ *locale.Locale) int { return f.minute }
	second := func(f *fields, _ *locale.Locale) int { return f.second }
	num("m", 1, minute)
	num("mm", 2, minute)
	num("s", 1, second)
	num("ss", 2, second)

	// Fractional seconds: S is tenths, SS hundredths, SSS milliseconds and
	// longer runs pad the milliseconds with zeros.
	for n := 1; n <= 9; n++ {
		num(strings.Repeat("S", n), n, func(f *fields, _ *locale.Locale) int {
			switch n {
			case 1:
				return f.ms / 100
			case 2:
				return f.ms / 10
			}
			return f.ms * pow10(n-3)
		})
	}

	renderers["Z"] = func(f *fields, _ *locale.Locale, _ string) string { return Offset(f.offset, ":") }
	renderers["ZZ"] = func(f *fields, _ *locale.Locale, _ string) string { return Offset(f.offset, "") }
	renderers["z"] = func(f *fields, _ *locale.Locale, _ string) string { return f.abbr }
	renderers["zz"] = func(f *fields, _ *locale.Locale, _ string) string { return f.name }
	renderers["X"] = func(f *fields, _ *locale.Locale, _ string) string {
		return strconv.FormatInt(calendar.FloorDiv64(f.unix, 1000), 10)
	}
	renderers["x"] = func(f *fields, _ *locale.Locale, _ string) string {
		return strconv.FormatInt(f.unix, 10)
	}
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// ZeroFill renders n padded with zeros to width digits. The sign is
// written before the padding; forceSign adds "+" for non-negative numbers.
func ZeroFill(n, width int, forceSign bool) string {
	digits := strconv.Itoa(abs(n))
	sign := ""
	switch {
	case n < 0:
		sign = "-"
	case forceSign:
		sign = "+"
	}
	if pad := width - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return sign + digits
}

// Offset renders a UTC offset in minutes as ±HH<sep>MM.
func Offset(minutes int, sep string) string {
	sign := "+"
	if minutes < 0 {
		minutes = -minutes
		sign = "-"
	}
	return sign + ZeroFill(minutes/60, 2, false) + sep + ZeroFill(minutes%60, 2, false)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
